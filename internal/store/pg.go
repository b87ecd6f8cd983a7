package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates every table used by the indexer
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&schema.ChainCursor{},
		&schema.Model{},
		&schema.Agent{},
		&schema.License{},
		&schema.MetadataCache{},
		&schema.SplitConfig{},
		&schema.PendingPayment{},
		&schema.RecipientBalance{},
		&schema.Withdrawal{},
		&schema.DeferredEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// UseReadReplica routes reads to a replica through dbresolver. Writes and
// transactions stay on the primary.
func UseReadReplica(db *gorm.DB, replica gorm.Dialector) error {
	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{replica},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replica: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Transaction runs fn in a transaction. Nested calls on a transaction-bound store use savepoints.
func (s *pgStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// newerThan restricts an update to rows whose stored position is older than pos
func newerThan(pos domain.Position) clause.Expr {
	return clause.Expr{
		SQL:  "(updated_block < ? OR (updated_block = ? AND updated_log_index < ?))",
		Vars: []any{pos.Block, pos.Block, pos.LogIndex},
	}
}

// firstWithPrimaryFallback runs query against the default connection and, when
// a read replica is registered and nothing was found, once more against the primary.
func (s *pgStore) firstWithPrimaryFallback(query func(db *gorm.DB) error) (bool, error) {
	err := query(s.db)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if !hasDBResolver(s.db) {
		return false, nil
	}

	// Replica can lag behind primary; retry on primary before returning not found.
	err = query(s.db.Clauses(dbresolver.Write))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// =============================================================================
// Models
// =============================================================================

// GetModel retrieves a model by chain and id
func (s *pgStore) GetModel(ctx context.Context, chain domain.Chain, modelID uint64) (*schema.Model, error) {
	var model schema.Model
	found, err := s.firstWithPrimaryFallback(func(db *gorm.DB) error {
		return db.WithContext(ctx).
			Where("chain_id = ? AND model_id = ?", string(chain), modelID).
			First(&model).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &model, nil
}

// UpsertModel creates a model, or overwrites it when the input position is newer
func (s *pgStore) UpsertModel(ctx context.Context, input UpsertModelInput) (bool, error) {
	model := schema.Model{
		ChainID:           string(input.Chain),
		ModelID:           input.ModelID,
		Owner:             input.Owner,
		Creator:           input.Creator,
		Listed:            input.Listed,
		URI:               input.URI,
		Version:           input.Version,
		PricePerpetual:    input.Params.PricePerpetual,
		PriceSubscription: input.Params.PriceSubscription,
		PriceInference:    input.Params.PriceInference,
		RoyaltyBps:        input.Params.RoyaltyBps,
		DeliveryRights:    input.Params.DeliveryRights,
		DeliveryMode:      input.Params.DeliveryMode,
		TermsHash:         input.TermsHash,
		UpdatedBlock:      input.Position.Block,
		UpdatedLogIndex:   input.Position.LogIndex,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "model_id"}},
		DoNothing: true,
	}).Create(&model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create model: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	result = s.db.WithContext(ctx).
		Model(&schema.Model{}).
		Where("chain_id = ? AND model_id = ?", string(input.Chain), input.ModelID).
		Where(newerThan(input.Position)).
		Updates(map[string]any{
			"owner":              input.Owner,
			"creator":            input.Creator,
			"listed":             input.Listed,
			"uri":                input.URI,
			"version":            input.Version,
			"price_perpetual":    input.Params.PricePerpetual,
			"price_subscription": input.Params.PriceSubscription,
			"price_inference":    input.Params.PriceInference,
			"royalty_bps":        input.Params.RoyaltyBps,
			"delivery_rights":    input.Params.DeliveryRights,
			"delivery_mode":      input.Params.DeliveryMode,
			"terms_hash":         input.TermsHash,
			"updated_block":      input.Position.Block,
			"updated_log_index":  input.Position.LogIndex,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update model: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// UpgradeModel applies an upgrade only when the version strictly increases
func (s *pgStore) UpgradeModel(ctx context.Context, input UpgradeModelInput) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Model{}).
		Where("chain_id = ? AND model_id = ? AND version < ?", string(input.Chain), input.ModelID, input.Version).
		Where(newerThan(input.Position)).
		Updates(map[string]any{
			"version":           input.Version,
			"uri":               input.URI,
			"terms_hash":        input.TermsHash,
			"updated_block":     input.Position.Block,
			"updated_log_index": input.Position.LogIndex,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to upgrade model: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// SetModelListed updates the listed flag of a model
func (s *pgStore) SetModelListed(ctx context.Context, chain domain.Chain, modelID uint64, listed bool, pos domain.Position) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Model{}).
		Where("chain_id = ? AND model_id = ?", string(chain), modelID).
		Where(newerThan(pos)).
		Updates(map[string]any{
			"listed":            listed,
			"updated_block":     pos.Block,
			"updated_log_index": pos.LogIndex,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to set model listed status: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// UpdateLicensingParams updates the prices and delivery terms of a model
func (s *pgStore) UpdateLicensingParams(ctx context.Context, chain domain.Chain, modelID uint64, params domain.LicensingParams, pos domain.Position) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Model{}).
		Where("chain_id = ? AND model_id = ?", string(chain), modelID).
		Where(newerThan(pos)).
		Updates(map[string]any{
			"price_perpetual":    params.PricePerpetual,
			"price_subscription": params.PriceSubscription,
			"price_inference":    params.PriceInference,
			"royalty_bps":        params.RoyaltyBps,
			"delivery_rights":    params.DeliveryRights,
			"delivery_mode":      params.DeliveryMode,
			"updated_block":      pos.Block,
			"updated_log_index":  pos.LogIndex,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update licensing params: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// CreateAgent inserts an agent and sets the agent id of its model
func (s *pgStore) CreateAgent(ctx context.Context, input CreateAgentInput) (bool, error) {
	agent := schema.Agent{
		ChainID:  string(input.Chain),
		AgentID:  input.AgentID,
		ModelID:  input.ModelID,
		Owner:    input.Owner,
		URI:      input.URI,
		BlockNum: input.BlockNumber,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "agent_id"}},
		DoNothing: true,
	}).Create(&agent)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create agent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := s.db.WithContext(ctx).
		Model(&schema.Model{}).
		Where("chain_id = ? AND model_id = ?", string(input.Chain), input.ModelID).
		Update("agent_id", input.AgentID).Error; err != nil {
		return false, fmt.Errorf("failed to link agent to model: %w", err)
	}

	return true, nil
}

// =============================================================================
// Licenses
// =============================================================================

// GetLicense retrieves a license by chain and id
func (s *pgStore) GetLicense(ctx context.Context, chain domain.Chain, licenseID uint64) (*schema.License, error) {
	var license schema.License
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND license_id = ?", string(chain), licenseID).
		First(&license).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get license: %w", err)
	}

	return &license, nil
}

// CreateLicense inserts a license, a replayed purchase is a no-op
func (s *pgStore) CreateLicense(ctx context.Context, input CreateLicenseInput) (bool, error) {
	license := schema.License{
		ChainID:         string(input.Chain),
		LicenseID:       input.LicenseID,
		ModelID:         input.ModelID,
		Owner:           input.Owner,
		Kind:            string(input.Kind),
		Rights:          input.Rights,
		MintedAt:        input.MintedAt.UTC(),
		ExpiresAt:       input.ExpiresAt,
		Transferable:    input.Transferable,
		UpdatedBlock:    input.Position.Block,
		UpdatedLogIndex: input.Position.LogIndex,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "license_id"}},
		DoNothing: true,
	}).Create(&license)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create license: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// TransferLicense changes the holder of a license
func (s *pgStore) TransferLicense(ctx context.Context, chain domain.Chain, licenseID uint64, to string, pos domain.Position) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.License{}).
		Where("chain_id = ? AND license_id = ?", string(chain), licenseID).
		Where(newerThan(pos)).
		Updates(map[string]any{
			"owner":             to,
			"updated_block":     pos.Block,
			"updated_log_index": pos.LogIndex,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to transfer license: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// RevokeLicense marks a license revoked
func (s *pgStore) RevokeLicense(ctx context.Context, chain domain.Chain, licenseID uint64, pos domain.Position) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.License{}).
		Where("chain_id = ? AND license_id = ?", string(chain), licenseID).
		Where(newerThan(pos)).
		Updates(map[string]any{
			"revoked":           true,
			"updated_block":     pos.Block,
			"updated_log_index": pos.LogIndex,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to revoke license: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// ListLatestLicenses returns the newest licenses of a chain
func (s *pgStore) ListLatestLicenses(ctx context.Context, chain domain.Chain, limit int) ([]schema.License, error) {
	var licenses []schema.License
	err := s.db.WithContext(ctx).
		Where("chain_id = ?", string(chain)).
		Order("license_id DESC").
		Limit(limit).
		Find(&licenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}

	return licenses, nil
}

// =============================================================================
// Deferred events
// =============================================================================

// CreateDeferredEvent parks an event until its parent entity exists
func (s *pgStore) CreateDeferredEvent(ctx context.Context, event *schema.DeferredEvent) (bool, error) {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "tx_hash"}, {Name: "log_index"}},
		DoNothing: true,
	}).Create(event)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create deferred event: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// ListDeferredEvents returns parked events of a stream. Ordering by attempts first rotates
// events that never resolve to the back so they cannot starve the rest.
func (s *pgStore) ListDeferredEvents(ctx context.Context, chain domain.Chain, stream domain.Stream, limit int) ([]schema.DeferredEvent, error) {
	var events []schema.DeferredEvent
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND stream_name = ?", string(chain), string(stream)).
		Order("attempts ASC, block_number ASC, log_index ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list deferred events: %w", err)
	}

	return events, nil
}

// ListDeferredEventsByModels returns parked events of a stream for the given models in ledger order
func (s *pgStore) ListDeferredEventsByModels(ctx context.Context, chain domain.Chain, stream domain.Stream, modelIDs []uint64, limit int) ([]schema.DeferredEvent, error) {
	if len(modelIDs) == 0 {
		return nil, nil
	}

	var events []schema.DeferredEvent
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND stream_name = ? AND model_id IN ?", string(chain), string(stream), modelIDs).
		Order("block_number ASC, log_index ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list deferred events by models: %w", err)
	}

	return events, nil
}

// MarkDeferredEventsAttempted increments the attempt counter of the given events
func (s *pgStore) MarkDeferredEventsAttempted(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.DeferredEvent{}).
		Where("id IN ?", ids).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to mark deferred events attempted: %w", err)
	}

	return nil
}

// DeleteDeferredEvent removes a parked event
func (s *pgStore) DeleteDeferredEvent(ctx context.Context, id uint64) error {
	if err := s.db.WithContext(ctx).Delete(&schema.DeferredEvent{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete deferred event: %w", err)
	}
	return nil
}
