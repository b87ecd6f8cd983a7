package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// =============================================================================
// Split configs
// =============================================================================

// GetSplitConfig retrieves the split of a model
func (s *pgStore) GetSplitConfig(ctx context.Context, modelID uint64) (*schema.SplitConfig, error) {
	var config schema.SplitConfig
	found, err := s.firstWithPrimaryFallback(func(db *gorm.DB) error {
		return db.WithContext(ctx).Where("model_id = ?", modelID).First(&config).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get split config: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &config, nil
}

// CreateSplitConfig inserts a split for a model that has none
func (s *pgStore) CreateSplitConfig(ctx context.Context, config *schema.SplitConfig) (bool, error) {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}},
		DoNothing: true,
	}).Create(config)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create split config: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// UpdateSplitConfig overwrites an existing split and bumps its re-configuration counter
func (s *pgStore) UpdateSplitConfig(ctx context.Context, config *schema.SplitConfig) error {
	result := s.db.WithContext(ctx).
		Model(&schema.SplitConfig{}).
		Where("model_id = ?", config.ModelID).
		Updates(map[string]any{
			"seller":             config.Seller,
			"creator":            config.Creator,
			"marketplace":        config.Marketplace,
			"royalty_bps":        config.RoyaltyBps,
			"marketplace_bps":    config.MarketplaceBps,
			"payout_address":     config.PayoutAddress,
			"reconfigured_count": gorm.Expr("reconfigured_count + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update split config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update split config: %w", gorm.ErrRecordNotFound)
	}

	return nil
}

// =============================================================================
// Pending payments
// =============================================================================

// CreatePendingPayment enqueues a payment keyed by its source transaction hash
func (s *pgStore) CreatePendingPayment(ctx context.Context, payment *schema.PendingPayment) (bool, error) {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_tx_hash"}},
		DoNothing: true,
	}).Create(payment)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create pending payment: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetPendingPaymentBySourceTx looks up a queued payment by its idempotency key
func (s *pgStore) GetPendingPaymentBySourceTx(ctx context.Context, sourceTxHash string) (*schema.PendingPayment, error) {
	db := s.db
	if hasDBResolver(db) {
		db = db.Clauses(dbresolver.Write)
	}

	var payment schema.PendingPayment
	err := db.WithContext(ctx).Where("source_tx_hash = ?", sourceTxHash).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending payment: %w", err)
	}

	return &payment, nil
}

// ListUnprocessedPayments returns the oldest unprocessed payments, always read from the primary
func (s *pgStore) ListUnprocessedPayments(ctx context.Context, limit int) ([]schema.PendingPayment, error) {
	db := s.db
	if hasDBResolver(db) {
		db = db.Clauses(dbresolver.Write)
	}

	var payments []schema.PendingPayment
	err := db.WithContext(ctx).
		Where("processed = ?", false).
		Order("sequence_id ASC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed payments: %w", err)
	}

	return payments, nil
}

// MarkPaymentProcessed is a compare-and-set on the processed flag
func (s *pgStore) MarkPaymentProcessed(ctx context.Context, sequenceID uint64, at time.Time) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.PendingPayment{}).
		Where("sequence_id = ? AND processed = ?", sequenceID, false).
		Updates(map[string]any{
			"processed":    true,
			"processed_at": at.UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark payment processed: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// CountPayments returns the queue counters of a model
func (s *pgStore) CountPayments(ctx context.Context, modelID uint64) (int64, int64, error) {
	var pending, processed int64
	if err := s.db.WithContext(ctx).
		Model(&schema.PendingPayment{}).
		Where("model_id = ? AND processed = ?", modelID, false).
		Count(&pending).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count pending payments: %w", err)
	}
	if err := s.db.WithContext(ctx).
		Model(&schema.PendingPayment{}).
		Where("model_id = ? AND processed = ?", modelID, true).
		Count(&processed).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count processed payments: %w", err)
	}

	return pending, processed, nil
}

// =============================================================================
// Balances
// =============================================================================

// GetBalance retrieves the balance row of an address
func (s *pgStore) GetBalance(ctx context.Context, address string) (*schema.RecipientBalance, error) {
	var balance schema.RecipientBalance
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &balance, nil
}

// GetBalances retrieves the balance rows of several addresses
func (s *pgStore) GetBalances(ctx context.Context, addresses []string) (map[string]schema.RecipientBalance, error) {
	balances := make(map[string]schema.RecipientBalance, len(addresses))
	if len(addresses) == 0 {
		return balances, nil
	}

	var rows []schema.RecipientBalance
	if err := s.db.WithContext(ctx).Where("address IN ?", addresses).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	for _, row := range rows {
		balances[row.Address] = row
	}

	return balances, nil
}

// EnsureBalance creates a zero balance row for an address
func (s *pgStore) EnsureBalance(ctx context.Context, address string) error {
	balance := schema.RecipientBalance{
		Address:            address,
		AccumulatedBalance: "0",
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("failed to ensure balance: %w", err)
	}

	return nil
}

// CompareAndSwapBalance writes a new balance when nobody changed the row since it was read
func (s *pgStore) CompareAndSwapBalance(ctx context.Context, address string, version uint64, balance string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.RecipientBalance{}).
		Where("address = ? AND version = ?", address, version).
		Updates(map[string]any{
			"accumulated_balance": balance,
			"version":             gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update balance: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// =============================================================================
// Withdrawals
// =============================================================================

// CreateWithdrawal inserts a withdrawal audit row
func (s *pgStore) CreateWithdrawal(ctx context.Context, withdrawal *schema.Withdrawal) error {
	if err := s.db.WithContext(ctx).Create(withdrawal).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

// TransitionWithdrawal records the payout outcome of a withdrawal still in the expected status
func (s *pgStore) TransitionWithdrawal(ctx context.Context, id uint64, from, to schema.WithdrawalStatus, txHash *string, errMsg *string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Withdrawal{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":  to,
			"tx_hash": txHash,
			"error":   errMsg,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update withdrawal: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListWithdrawalsByStatus lists withdrawals of a status that have not changed since updatedBefore
func (s *pgStore) ListWithdrawalsByStatus(ctx context.Context, status schema.WithdrawalStatus, updatedBefore time.Time, limit int) ([]schema.Withdrawal, error) {
	db := s.db
	if hasDBResolver(db) {
		db = db.Clauses(dbresolver.Write)
	}

	var withdrawals []schema.Withdrawal
	err := db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", status, updatedBefore).
		Order("updated_at ASC, id ASC").
		Limit(limit).
		Find(&withdrawals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}
