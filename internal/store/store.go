package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Transaction runs fn inside a database transaction with a Store bound to it
	Transaction(ctx context.Context, fn func(tx Store) error) error

	CursorStore

	// GetModel retrieves a model by chain and id, nil when absent
	GetModel(ctx context.Context, chain domain.Chain, modelID uint64) (*schema.Model, error)
	// UpsertModel creates a model or overwrites it when the input position is newer than the stored one
	UpsertModel(ctx context.Context, input UpsertModelInput) (bool, error)
	// UpgradeModel applies a version upgrade when the version is greater and the position is newer
	UpgradeModel(ctx context.Context, input UpgradeModelInput) (bool, error)
	// SetModelListed updates the listed flag when the position is newer
	SetModelListed(ctx context.Context, chain domain.Chain, modelID uint64, listed bool, pos domain.Position) (bool, error)
	// UpdateLicensingParams updates prices and delivery terms when the position is newer
	UpdateLicensingParams(ctx context.Context, chain domain.Chain, modelID uint64, params domain.LicensingParams, pos domain.Position) (bool, error)
	// CreateAgent inserts an agent and links it to its model
	CreateAgent(ctx context.Context, input CreateAgentInput) (bool, error)

	// GetLicense retrieves a license by chain and id, nil when absent
	GetLicense(ctx context.Context, chain domain.Chain, licenseID uint64) (*schema.License, error)
	// CreateLicense inserts a license, a no-op when it already exists
	CreateLicense(ctx context.Context, input CreateLicenseInput) (bool, error)
	// TransferLicense changes the license holder when the position is newer
	TransferLicense(ctx context.Context, chain domain.Chain, licenseID uint64, to string, pos domain.Position) (bool, error)
	// RevokeLicense marks a license revoked when the position is newer
	RevokeLicense(ctx context.Context, chain domain.Chain, licenseID uint64, pos domain.Position) (bool, error)
	// ListLatestLicenses returns up to limit licenses of a chain ordered by license id descending
	ListLatestLicenses(ctx context.Context, chain domain.Chain, limit int) ([]schema.License, error)

	// GetMetadataCache retrieves a cache entry, nil when absent
	GetMetadataCache(ctx context.Context, entityID string) (*schema.MetadataCache, error)
	// UpsertMetadataCache writes every column of a cache entry in one statement
	UpsertMetadataCache(ctx context.Context, entry *schema.MetadataCache) error
	// SetMetadataCacheError records the last refresh failure of an entry
	SetMetadataCacheError(ctx context.Context, entityID string, message string) error
	// ListExpiredMetadataCache returns up to limit entries whose TTL elapsed before now, oldest first
	ListExpiredMetadataCache(ctx context.Context, now time.Time, limit int) ([]schema.MetadataCache, error)

	// GetSplitConfig retrieves the split of a model, nil when absent
	GetSplitConfig(ctx context.Context, modelID uint64) (*schema.SplitConfig, error)
	// CreateSplitConfig inserts a split, returns false when the model is already configured
	CreateSplitConfig(ctx context.Context, config *schema.SplitConfig) (bool, error)
	// UpdateSplitConfig overwrites the recipients and shares of an existing split
	UpdateSplitConfig(ctx context.Context, config *schema.SplitConfig) error

	// CreatePendingPayment enqueues a payment, returns false when the source tx hash is already queued
	CreatePendingPayment(ctx context.Context, payment *schema.PendingPayment) (bool, error)
	// GetPendingPaymentBySourceTx returns the payment queued for a source tx hash, nil when there is none
	GetPendingPaymentBySourceTx(ctx context.Context, sourceTxHash string) (*schema.PendingPayment, error)
	// ListUnprocessedPayments returns up to limit unprocessed payments ordered by sequence id
	ListUnprocessedPayments(ctx context.Context, limit int) ([]schema.PendingPayment, error)
	// MarkPaymentProcessed flips processed from false to true, returns false when already processed
	MarkPaymentProcessed(ctx context.Context, sequenceID uint64, at time.Time) (bool, error)
	// CountPayments returns the pending and processed counts of a model
	CountPayments(ctx context.Context, modelID uint64) (pending int64, processed int64, err error)

	// GetBalance retrieves the balance of an address, nil when absent
	GetBalance(ctx context.Context, address string) (*schema.RecipientBalance, error)
	// GetBalances retrieves balances keyed by address
	GetBalances(ctx context.Context, addresses []string) (map[string]schema.RecipientBalance, error)
	// EnsureBalance creates a zero balance row when absent
	EnsureBalance(ctx context.Context, address string) error
	// CompareAndSwapBalance sets the balance when the stored version matches, bumping the version
	CompareAndSwapBalance(ctx context.Context, address string, version uint64, balance string) (bool, error)

	// CreateWithdrawal inserts a withdrawal audit row
	CreateWithdrawal(ctx context.Context, withdrawal *schema.Withdrawal) error
	// TransitionWithdrawal moves a withdrawal from one status to another and records its tx hash and error.
	// It returns false when the withdrawal is no longer in the expected status.
	TransitionWithdrawal(ctx context.Context, id uint64, from, to schema.WithdrawalStatus, txHash *string, errMsg *string) (bool, error)
	// ListWithdrawalsByStatus returns withdrawals in a status last updated before the given time, oldest first
	ListWithdrawalsByStatus(ctx context.Context, status schema.WithdrawalStatus, updatedBefore time.Time, limit int) ([]schema.Withdrawal, error)

	// CreateDeferredEvent parks an event whose parent is unknown, a no-op for an already parked event
	CreateDeferredEvent(ctx context.Context, event *schema.DeferredEvent) (bool, error)
	// ListDeferredEvents returns parked events of a stream, least attempted first, then by ledger position
	ListDeferredEvents(ctx context.Context, chain domain.Chain, stream domain.Stream, limit int) ([]schema.DeferredEvent, error)
	// ListDeferredEventsByModels returns parked events of a stream that belong to any of the given models
	ListDeferredEventsByModels(ctx context.Context, chain domain.Chain, stream domain.Stream, modelIDs []uint64, limit int) ([]schema.DeferredEvent, error)
	// MarkDeferredEventsAttempted bumps the attempt counter of events that stayed parked after a replay
	MarkDeferredEventsAttempted(ctx context.Context, ids []uint64) error
	// DeleteDeferredEvent removes a parked event once applied
	DeleteDeferredEvent(ctx context.Context, id uint64) error
}

// UpsertModelInput holds the full state of a model at a ledger position
type UpsertModelInput struct {
	Chain     domain.Chain
	ModelID   uint64
	Owner     string
	Creator   string
	Listed    bool
	URI       string
	Version   uint64
	TermsHash string
	Params    domain.LicensingParams
	Position  domain.Position
}

// UpgradeModelInput holds a model upgrade
type UpgradeModelInput struct {
	Chain     domain.Chain
	ModelID   uint64
	Version   uint64
	URI       string
	TermsHash string
	Position  domain.Position
}

// CreateAgentInput holds an agent registration
type CreateAgentInput struct {
	Chain       domain.Chain
	AgentID     uint64
	ModelID     uint64
	Owner       string
	URI         string
	BlockNumber uint64
}

// CreateLicenseInput holds a license purchase
type CreateLicenseInput struct {
	Chain        domain.Chain
	LicenseID    uint64
	ModelID      uint64
	Owner        string
	Kind         domain.LicenseKind
	Rights       uint8
	MintedAt     time.Time
	ExpiresAt    *time.Time
	Transferable bool
	Position     domain.Position
}
