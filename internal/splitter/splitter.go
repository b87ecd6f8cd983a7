package splitter

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/contracts"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/metrics"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// Registry manages split configurations, the pending payment queue and recipient balances
//
//go:generate mockgen -source=splitter.go -destination=../mocks/splitter.go -package=mocks -mock_names=Registry=MockSplitterRegistry
type Registry interface {
	// PredictAddress returns the deterministic splitter address of a model
	PredictAddress(modelID *big.Int) common.Address
	// ConfigureSplit creates the split of a model that has none
	ConfigureSplit(ctx context.Context, modelID string, seller, creator string, royaltyBps, marketplaceBps uint16) error
	// ReconfigureSplit replaces the split of a configured model without touching queued payments
	ReconfigureSplit(ctx context.Context, modelID string, seller, creator string, royaltyBps, marketplaceBps uint16) error
	// RegisterPendingPayment enqueues a payment and returns its sequence id
	RegisterPendingPayment(ctx context.Context, modelID string, amount string, sourceTxHash string) (uint64, error)
	// RegisterLedgerPayment enqueues a payment observed on the ledger, remembering the log that carried it
	RegisterLedgerPayment(ctx context.Context, event *domain.PaymentRegistered) (uint64, error)
	// ProcessPendingPayments distributes up to limit queued payments
	ProcessPendingPayments(ctx context.Context, limit int) (*ProcessResult, error)
	// Withdraw zeroes the balance of an address and returns the withdrawn amount
	Withdraw(ctx context.Context, address string) (string, error)
	// RecoverStaleWithdrawals fails payouts left pending longer than staleAfter and re-credits their amounts
	RecoverStaleWithdrawals(ctx context.Context, staleAfter time.Duration, limit int) (int, error)
	// Status returns the split, balances and queue counters of a model
	Status(ctx context.Context, modelID string) (*Status, error)
	// WithStore returns a registry operating on the given store, typically a transaction
	WithStore(s store.Store) Registry
}

// Config holds splitter configuration
type Config struct {
	// Factory deploys splitters with CREATE2
	Factory common.Address
	// InitCodeHash is the keccak256 of the splitter init code
	InitCodeHash common.Hash
	// Marketplace receives the marketplace share of every split
	Marketplace string
	// MaxCASRetries bounds optimistic balance update attempts
	MaxCASRetries int
	// PayoutEnabled sends withdrawn amounts through the payout vault
	PayoutEnabled bool
	// PayoutVault is the contract paying recipients out
	PayoutVault common.Address
}

// ProcessResult summarizes a queue processing pass
type ProcessResult struct {
	Processed int `json:"processed"`
	// Skipped payments were processed by a concurrent caller
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Status is the payout state of a model
type Status struct {
	Config        *schema.SplitConfig `json:"config"`
	PayoutAddress string              `json:"payout_address"`
	// Balances maps each recipient to its withdrawable balance
	Balances  map[string]string `json:"balances"`
	Pending   int64             `json:"pending"`
	Processed int64             `json:"processed"`
}

const defaultMaxCASRetries = 5

type registry struct {
	store  store.Store
	ledger ethereum.LedgerClient
	clock  adapter.Clock
	config Config
}

// NewRegistry creates a splitter registry. ledger may be nil when payouts are disabled.
func NewRegistry(st store.Store, ledger ethereum.LedgerClient, clock adapter.Clock, config Config) Registry {
	if config.MaxCASRetries <= 0 {
		config.MaxCASRetries = defaultMaxCASRetries
	}
	if config.Marketplace != "" {
		config.Marketplace = domain.NormalizeAddress(config.Marketplace)
	}
	return &registry{
		store:  st,
		ledger: ledger,
		clock:  clock,
		config: config,
	}
}

func (r *registry) WithStore(s store.Store) Registry {
	clone := *r
	clone.store = s
	return &clone
}

// PredictAddress computes the CREATE2 address with salt keccak256(uint256(modelID))
func (r *registry) PredictAddress(modelID *big.Int) common.Address {
	salt := crypto.Keccak256Hash(common.LeftPadBytes(modelID.Bytes(), 32))
	return crypto.CreateAddress2(r.config.Factory, salt, r.config.InitCodeHash.Bytes())
}

func (r *registry) predictAddress(modelID uint64) string {
	return domain.NormalizeAddress(r.PredictAddress(new(big.Int).SetUint64(modelID)).Hex())
}

// ConfigureSplit creates the split of a model
func (r *registry) ConfigureSplit(ctx context.Context, modelID string, seller, creator string, royaltyBps, marketplaceBps uint16) error {
	config, err := r.buildConfig(modelID, seller, creator, royaltyBps, marketplaceBps)
	if err != nil {
		return err
	}

	created, err := r.store.CreateSplitConfig(ctx, config)
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("%w: model %d is already configured", domain.ErrInvalidSplit, config.ModelID)
	}

	logger.InfoCtx(ctx, "Split configured",
		zap.Uint64("modelID", config.ModelID),
		zap.String("payoutAddress", config.PayoutAddress))
	return nil
}

// ReconfigureSplit replaces the recipients and shares of a configured model
func (r *registry) ReconfigureSplit(ctx context.Context, modelID string, seller, creator string, royaltyBps, marketplaceBps uint16) error {
	config, err := r.buildConfig(modelID, seller, creator, royaltyBps, marketplaceBps)
	if err != nil {
		return err
	}

	existing, err := r.store.GetSplitConfig(ctx, config.ModelID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: model %d", domain.ErrSplitNotConfigured, config.ModelID)
	}

	if err := r.store.UpdateSplitConfig(ctx, config); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Split reconfigured",
		zap.Uint64("modelID", config.ModelID),
		zap.Int("reconfiguredCount", existing.ReconfiguredCount+1))
	return nil
}

func (r *registry) buildConfig(modelID string, seller, creator string, royaltyBps, marketplaceBps uint16) (*schema.SplitConfig, error) {
	id, err := domain.ParseModelID(modelID)
	if err != nil {
		return nil, err
	}
	if uint32(royaltyBps)+uint32(marketplaceBps) > domain.BPS_DENOMINATOR {
		return nil, fmt.Errorf("%w: royalty %d + marketplace %d exceeds %d bps",
			domain.ErrInvalidSplit, royaltyBps, marketplaceBps, domain.BPS_DENOMINATOR)
	}
	if !domain.IsValidAddress(seller) || !domain.IsValidAddress(creator) {
		return nil, fmt.Errorf("%w: seller %q creator %q", domain.ErrInvalidAddress, seller, creator)
	}

	seller = domain.NormalizeAddress(seller)
	creator = domain.NormalizeAddress(creator)
	if seller == domain.ETHEREUM_ZERO_ADDRESS || creator == domain.ETHEREUM_ZERO_ADDRESS {
		return nil, fmt.Errorf("%w: zero address recipient", domain.ErrInvalidSplit)
	}
	if marketplaceBps > 0 && r.config.Marketplace == "" {
		return nil, fmt.Errorf("%w: no marketplace address configured", domain.ErrInvalidSplit)
	}

	return &schema.SplitConfig{
		ModelID:        id,
		Seller:         seller,
		Creator:        creator,
		Marketplace:    r.config.Marketplace,
		RoyaltyBps:     royaltyBps,
		MarketplaceBps: marketplaceBps,
		PayoutAddress:  r.predictAddress(id),
	}, nil
}

// RegisterPendingPayment snapshots the current split into a queued payment
func (r *registry) RegisterPendingPayment(ctx context.Context, modelID string, amount string, sourceTxHash string) (uint64, error) {
	return r.register(ctx, modelID, amount, sourceTxHash, nil)
}

// RegisterLedgerPayment is RegisterPendingPayment for a payment log. Replaying the same log is a
// duplicate; another payment already queued for the transaction is a collision and is reported.
func (r *registry) RegisterLedgerPayment(ctx context.Context, event *domain.PaymentRegistered) (uint64, error) {
	logIndex := event.LogIndex
	sequenceID, err := r.register(ctx, strconv.FormatUint(event.ModelID, 10), event.Amount, event.TxHash, &logIndex)
	if !errors.Is(err, domain.ErrDuplicatePayment) {
		return sequenceID, err
	}

	txHash, _ := domain.NormalizeTxHash(event.TxHash)
	existing, lookupErr := r.store.GetPendingPaymentBySourceTx(ctx, txHash)
	if lookupErr != nil {
		return 0, lookupErr
	}
	if existing == nil || sameLedgerPayment(existing, event) {
		return 0, err
	}

	collision := fmt.Errorf("%w: %w: %s", domain.ErrDuplicatePayment, domain.ErrPaymentCollision, txHash)
	metrics.Splitter().PaymentCollision()
	logger.ErrorCtx(ctx, collision,
		zap.Uint64("modelID", event.ModelID),
		zap.String("amount", event.Amount),
		zap.Uint64("logIndex", event.LogIndex),
		zap.Uint64("queuedSequenceID", existing.SequenceID),
		zap.Uint64("queuedModelID", existing.ModelID),
		zap.String("queuedAmount", existing.Amount))
	return 0, collision
}

// sameLedgerPayment reports whether a queued payment is the one carried by the event.
// A payment registered through the API has no log index and matches on model and amount.
func sameLedgerPayment(existing *schema.PendingPayment, event *domain.PaymentRegistered) bool {
	if existing.SourceLogIndex != nil && *existing.SourceLogIndex != event.LogIndex {
		return false
	}
	amount, err := parseAmount(event.Amount)
	if err != nil {
		return false
	}
	return existing.ModelID == event.ModelID && existing.Amount == amount.Dec()
}

func (r *registry) register(ctx context.Context, modelID string, amount string, sourceTxHash string, logIndex *uint64) (uint64, error) {
	id, err := domain.ParseModelID(modelID)
	if err != nil {
		return 0, err
	}
	value, err := parseAmount(amount)
	if err != nil {
		return 0, err
	}
	txHash, err := domain.NormalizeTxHash(sourceTxHash)
	if err != nil {
		return 0, err
	}

	config, err := r.store.GetSplitConfig(ctx, id)
	if err != nil {
		return 0, err
	}
	if config == nil {
		return 0, fmt.Errorf("%w: model %d", domain.ErrSplitNotConfigured, id)
	}

	payment := &schema.PendingPayment{
		ModelID:        id,
		Amount:         value.Dec(),
		SourceTxHash:   txHash,
		SourceLogIndex: logIndex,
		Seller:         config.Seller,
		Creator:        config.Creator,
		Marketplace:    config.Marketplace,
		RoyaltyBps:     config.RoyaltyBps,
		MarketplaceBps: config.MarketplaceBps,
	}
	created, err := r.store.CreatePendingPayment(ctx, payment)
	if err != nil {
		return 0, err
	}
	if !created {
		return 0, fmt.Errorf("%w: %s", domain.ErrDuplicatePayment, txHash)
	}

	metrics.Splitter().PaymentRegistered()
	logger.InfoCtx(ctx, "Payment registered",
		zap.Uint64("modelID", id),
		zap.Uint64("sequenceID", payment.SequenceID),
		zap.String("amount", payment.Amount),
		zap.String("sourceTxHash", txHash))

	return payment.SequenceID, nil
}

// ProcessPendingPayments claims each payment with a compare-and-set and credits its
// shares in the same transaction. A payment claimed by another caller is skipped.
func (r *registry) ProcessPendingPayments(ctx context.Context, limit int) (*ProcessResult, error) {
	if limit <= 0 {
		return &ProcessResult{}, nil
	}

	payments, err := r.store.ListUnprocessedPayments(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{}
	for _, payment := range payments {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		claimed := false
		err := r.store.Transaction(ctx, func(tx store.Store) error {
			ok, err := tx.MarkPaymentProcessed(ctx, payment.SequenceID, r.clock.Now())
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			claimed = true
			return r.distribute(ctx, tx, &payment)
		})
		switch {
		case err != nil:
			result.Failed++
			logger.ErrorCtx(ctx, fmt.Errorf("failed to process payment: %w", err),
				zap.Uint64("sequenceID", payment.SequenceID),
				zap.Uint64("modelID", payment.ModelID))
		case claimed:
			result.Processed++
		default:
			result.Skipped++
		}
	}

	metrics.Splitter().PaymentsProcessed(result.Processed)
	if result.Processed > 0 || result.Failed > 0 {
		logger.InfoCtx(ctx, "Processed pending payments",
			zap.Int("processed", result.Processed),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed))
	}

	return result, nil
}

// distribute credits the shares of a claimed payment using its split snapshot
func (r *registry) distribute(ctx context.Context, tx store.Store, payment *schema.PendingPayment) error {
	amount, err := parseBalance(payment.Amount)
	if err != nil {
		return err
	}

	shares, err := ComputeShares(amount, payment.RoyaltyBps, payment.MarketplaceBps)
	if err != nil {
		return err
	}

	credits := []struct {
		address string
		amount  *uint256.Int
	}{
		{payment.Marketplace, shares.Marketplace},
		{payment.Creator, shares.Creator},
		{payment.Seller, shares.Seller},
	}
	for _, c := range credits {
		if c.amount.IsZero() {
			continue
		}
		if err := r.credit(ctx, tx, c.address, c.amount); err != nil {
			return err
		}
	}

	return nil
}

// credit adds amount to the balance of address with a bounded optimistic retry loop
func (r *registry) credit(ctx context.Context, st store.Store, address string, amount *uint256.Int) error {
	if err := st.EnsureBalance(ctx, address); err != nil {
		return err
	}

	for attempt := 0; attempt < r.config.MaxCASRetries; attempt++ {
		balance, err := st.GetBalance(ctx, address)
		if err != nil {
			return err
		}
		if balance == nil {
			return fmt.Errorf("balance row of %s disappeared", address)
		}

		current, err := parseBalance(balance.AccumulatedBalance)
		if err != nil {
			return err
		}
		next, overflow := new(uint256.Int).AddOverflow(current, amount)
		if overflow {
			return fmt.Errorf("%w: balance of %s overflows", domain.ErrInvalidAmount, address)
		}

		ok, err := st.CompareAndSwapBalance(ctx, address, balance.Version, next.Dec())
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		metrics.Splitter().BalanceConflict()
	}

	return fmt.Errorf("%w: crediting %s", domain.ErrBalanceConflict, address)
}

// Withdraw debits the whole balance of an address and records the withdrawal.
// With payouts enabled the withdrawal stays pending until the payout vault transaction is sent.
func (r *registry) Withdraw(ctx context.Context, address string) (string, error) {
	if !domain.IsValidAddress(address) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidAddress, address)
	}
	address = domain.NormalizeAddress(address)

	var (
		withdrawn  *uint256.Int
		withdrawal *schema.Withdrawal
	)
	err := r.store.Transaction(ctx, func(tx store.Store) error {
		for attempt := 0; attempt < r.config.MaxCASRetries; attempt++ {
			balance, err := tx.GetBalance(ctx, address)
			if err != nil {
				return err
			}
			if balance == nil {
				withdrawn = new(uint256.Int)
				return nil
			}

			current, err := parseBalance(balance.AccumulatedBalance)
			if err != nil {
				return err
			}
			if current.IsZero() {
				withdrawn = current
				return nil
			}

			ok, err := tx.CompareAndSwapBalance(ctx, address, balance.Version, "0")
			if err != nil {
				return err
			}
			if !ok {
				metrics.Splitter().BalanceConflict()
				continue
			}

			withdrawn = current
			withdrawal = &schema.Withdrawal{
				Address: address,
				Amount:  current.Dec(),
				Status:  schema.WithdrawalStatusCompleted,
			}
			if r.payoutEnabled() {
				withdrawal.Status = schema.WithdrawalStatusPending
			}
			return tx.CreateWithdrawal(ctx, withdrawal)
		}
		return fmt.Errorf("%w: withdrawing %s", domain.ErrBalanceConflict, address)
	})
	if err != nil {
		return "", fmt.Errorf("failed to withdraw: %w", err)
	}

	if withdrawal == nil {
		return "0", nil
	}

	if r.payoutEnabled() {
		if err := r.payout(ctx, withdrawal, withdrawn); err != nil {
			return "", err
		}
	} else {
		metrics.Splitter().Withdrawal(string(schema.WithdrawalStatusCompleted))
	}

	logger.InfoCtx(ctx, "Balance withdrawn",
		zap.String("address", address),
		zap.String("amount", withdrawal.Amount),
		zap.String("status", string(withdrawal.Status)))

	return withdrawal.Amount, nil
}

func (r *registry) payoutEnabled() bool {
	return r.config.PayoutEnabled && r.ledger != nil
}

// payout submits a pending withdrawal on the ledger. On failure the amount is credited back.
func (r *registry) payout(ctx context.Context, withdrawal *schema.Withdrawal, amount *uint256.Int) error {
	txHash, sendErr := r.ledger.SendTransaction(ctx, r.config.PayoutVault, contracts.PayoutVault, "payout",
		common.HexToAddress(withdrawal.Address), amount.ToBig())
	if sendErr == nil {
		hash := txHash.Hex()
		withdrawal.Status = schema.WithdrawalStatusSubmitted
		withdrawal.TxHash = &hash
		metrics.Splitter().Withdrawal(string(withdrawal.Status))
		moved, err := r.store.TransitionWithdrawal(ctx, withdrawal.ID, schema.WithdrawalStatusPending, withdrawal.Status, &hash, nil)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.Uint64("withdrawalID", withdrawal.ID), zap.String("txHash", hash))
		} else if !moved {
			logger.ErrorCtx(ctx, errors.New("payout sent for a withdrawal that is no longer pending"),
				zap.Uint64("withdrawalID", withdrawal.ID), zap.String("txHash", hash))
		}
		return nil
	}

	message := sendErr.Error()
	withdrawal.Status = schema.WithdrawalStatusFailed
	withdrawal.Error = &message
	metrics.Splitter().Withdrawal(string(withdrawal.Status))

	if _, err := r.failWithdrawal(ctx, withdrawal, amount, message); err != nil {
		return fmt.Errorf("payout failed and re-credit failed: %w", errors.Join(sendErr, err))
	}

	return fmt.Errorf("failed to submit payout: %w", sendErr)
}

// failWithdrawal marks a pending withdrawal failed and credits its amount back in one transaction.
// It returns false when the withdrawal already left the pending status.
func (r *registry) failWithdrawal(ctx context.Context, withdrawal *schema.Withdrawal, amount *uint256.Int, message string) (bool, error) {
	var moved bool
	err := r.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		moved, err = tx.TransitionWithdrawal(ctx, withdrawal.ID, schema.WithdrawalStatusPending, schema.WithdrawalStatusFailed, nil, &message)
		if err != nil || !moved {
			return err
		}
		return r.credit(ctx, tx, withdrawal.Address, amount)
	})
	return moved, err
}

// RecoverStaleWithdrawals handles withdrawals whose process stopped between the debit and the payout.
// A withdrawal is only stale once staleAfter is well past the ledger call timeout.
func (r *registry) RecoverStaleWithdrawals(ctx context.Context, staleAfter time.Duration, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	stale, err := r.store.ListWithdrawalsByStatus(ctx, schema.WithdrawalStatusPending, r.clock.Now().Add(-staleAfter), limit)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for i := range stale {
		withdrawal := &stale[i]
		amount, err := parseBalance(withdrawal.Amount)
		if err != nil {
			return recovered, err
		}

		moved, err := r.failWithdrawal(ctx, withdrawal, amount, "payout not submitted before restart")
		if err != nil {
			return recovered, fmt.Errorf("failed to recover withdrawal %d: %w", withdrawal.ID, err)
		}
		if !moved {
			continue
		}

		recovered++
		metrics.Splitter().Withdrawal(string(schema.WithdrawalStatusFailed))
		logger.WarnCtx(ctx, "Re-credited stale pending withdrawal",
			zap.Uint64("withdrawalID", withdrawal.ID),
			zap.String("address", withdrawal.Address),
			zap.String("amount", withdrawal.Amount))
	}

	return recovered, nil
}

// Status reports the split of a model together with recipient balances and queue counters
func (r *registry) Status(ctx context.Context, modelID string) (*Status, error) {
	id, err := domain.ParseModelID(modelID)
	if err != nil {
		return nil, err
	}

	config, err := r.store.GetSplitConfig(ctx, id)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("%w: model %d", domain.ErrSplitNotConfigured, id)
	}

	recipients := []string{config.Seller, config.Creator}
	if config.Marketplace != "" {
		recipients = append(recipients, config.Marketplace)
	}
	rows, err := r.store.GetBalances(ctx, recipients)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]string, len(recipients))
	for _, address := range recipients {
		balances[address] = "0"
		if row, ok := rows[address]; ok && row.AccumulatedBalance != "" {
			balances[address] = row.AccumulatedBalance
		}
	}

	pending, processed, err := r.store.CountPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Status{
		Config:        config,
		PayoutAddress: r.predictAddress(id),
		Balances:      balances,
		Pending:       pending,
		Processed:     processed,
	}, nil
}
