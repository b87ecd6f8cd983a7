package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-model-indexer/internal/splitter"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// snapshotLogIndex positions a state read at the end of a block, after every log in it
const snapshotLogIndex = math.MaxInt32

type status int

const (
	// statusNoop means the event was already reflected in the store
	statusNoop status = iota
	statusApplied
	statusDeferred
)

type outcome struct {
	status  status
	reason  string
	modelID *uint64
}

func appliedOutcome(modelID *uint64) outcome {
	return outcome{status: statusApplied, modelID: modelID}
}

func changed(ok bool, modelID *uint64) outcome {
	if ok {
		return appliedOutcome(modelID)
	}
	return outcome{status: statusNoop}
}

func deferred(format string, args ...any) outcome {
	return outcome{status: statusDeferred, reason: fmt.Sprintf(format, args...)}
}

// applier applies events against a store bound to one transaction
type applier struct {
	chain    domain.Chain
	store    store.Store
	splitter splitter.Registry
}

// apply applies a single event idempotently. Events whose parent entity is unknown are reported
// as deferred; replays of events already reflected in the store are no-ops.
func (a *applier) apply(ctx context.Context, event domain.Event) (outcome, error) {
	switch e := event.(type) {
	case *domain.ModelListed:
		ok, err := a.store.UpsertModel(ctx, store.UpsertModelInput{
			Chain:     a.chain,
			ModelID:   e.ModelID,
			Owner:     e.Owner,
			Creator:   e.Creator,
			Listed:    true,
			URI:       e.URI,
			Version:   e.Version,
			TermsHash: e.TermsHash,
			Params:    e.LicensingParams,
			Position:  e.Position(),
		})
		return changed(ok, &e.ModelID), err

	case *domain.ModelUpgraded:
		if known, err := a.modelExists(ctx, e.ModelID); err != nil || !known {
			return deferred("model %d unknown", e.ModelID), err
		}
		ok, err := a.store.UpgradeModel(ctx, store.UpgradeModelInput{
			Chain:     a.chain,
			ModelID:   e.ModelID,
			Version:   e.Version,
			URI:       e.URI,
			TermsHash: e.TermsHash,
			Position:  e.Position(),
		})
		return changed(ok, &e.ModelID), err

	case *domain.ListedStatusChanged:
		if known, err := a.modelExists(ctx, e.ModelID); err != nil || !known {
			return deferred("model %d unknown", e.ModelID), err
		}
		ok, err := a.store.SetModelListed(ctx, a.chain, e.ModelID, e.Listed, e.Position())
		return changed(ok, &e.ModelID), err

	case *domain.LicensingParamsChanged:
		if known, err := a.modelExists(ctx, e.ModelID); err != nil || !known {
			return deferred("model %d unknown", e.ModelID), err
		}
		ok, err := a.store.UpdateLicensingParams(ctx, a.chain, e.ModelID, e.LicensingParams, e.Position())
		return changed(ok, &e.ModelID), err

	case *domain.AgentRegistered:
		if known, err := a.modelExists(ctx, e.ModelID); err != nil || !known {
			return deferred("model %d unknown", e.ModelID), err
		}
		ok, err := a.store.CreateAgent(ctx, store.CreateAgentInput{
			Chain:       a.chain,
			AgentID:     e.AgentID,
			ModelID:     e.ModelID,
			Owner:       e.Owner,
			URI:         e.URI,
			BlockNumber: e.BlockNumber,
		})
		return changed(ok, &e.ModelID), err

	case *domain.LicensePurchased:
		if known, err := a.modelExists(ctx, e.ModelID); err != nil || !known {
			return deferred("model %d unknown", e.ModelID), err
		}
		var expiresAt *time.Time
		if e.Kind == domain.LicenseKindSubscription && e.ExpiresAt > 0 {
			t := time.Unix(int64(e.ExpiresAt), 0).UTC()
			expiresAt = &t
		}
		ok, err := a.store.CreateLicense(ctx, store.CreateLicenseInput{
			Chain:        a.chain,
			LicenseID:    e.LicenseID,
			ModelID:      e.ModelID,
			Owner:        e.Buyer,
			Kind:         e.Kind,
			Rights:       e.Rights,
			MintedAt:     e.MintedAt,
			ExpiresAt:    expiresAt,
			Transferable: e.Transferable,
			Position:     e.Position(),
		})
		return changed(ok, nil), err

	case *domain.LicenseTransferred:
		if known, err := a.licenseExists(ctx, e.LicenseID); err != nil || !known {
			return deferred("license %d unknown", e.LicenseID), err
		}
		ok, err := a.store.TransferLicense(ctx, a.chain, e.LicenseID, e.To, e.Position())
		return changed(ok, nil), err

	case *domain.LicenseRevoked:
		if known, err := a.licenseExists(ctx, e.LicenseID); err != nil || !known {
			return deferred("license %d unknown", e.LicenseID), err
		}
		ok, err := a.store.RevokeLicense(ctx, a.chain, e.LicenseID, e.Position())
		return changed(ok, nil), err

	case *domain.SplitConfigured:
		return a.applySplit(ctx, e)

	case *domain.PaymentRegistered:
		return a.applyPayment(ctx, e)

	default:
		return outcome{}, fmt.Errorf("%w: %s", domain.ErrUnknownSignature, event.Name())
	}
}

// applySplit mirrors a ledger split. The ledger is the authorized actor so a differing
// configuration goes through the re-configuration path.
func (a *applier) applySplit(ctx context.Context, e *domain.SplitConfigured) (outcome, error) {
	modelID := strconv.FormatUint(e.ModelID, 10)

	existing, err := a.store.GetSplitConfig(ctx, e.ModelID)
	if err != nil {
		return outcome{}, err
	}

	switch {
	case existing == nil:
		err = a.splitter.ConfigureSplit(ctx, modelID, e.Seller, e.Creator, e.RoyaltyBps, e.MarketplaceBps)
	case existing.Seller == domain.NormalizeAddress(e.Seller) &&
		existing.Creator == domain.NormalizeAddress(e.Creator) &&
		existing.RoyaltyBps == e.RoyaltyBps &&
		existing.MarketplaceBps == e.MarketplaceBps:
		return outcome{status: statusNoop}, nil
	default:
		err = a.splitter.ReconfigureSplit(ctx, modelID, e.Seller, e.Creator, e.RoyaltyBps, e.MarketplaceBps)
	}

	if errors.Is(err, domain.ErrInvalidSplit) || errors.Is(err, domain.ErrInvalidAddress) {
		logger.WarnCtx(ctx, "Ignoring invalid split from ledger",
			zap.Uint64("modelID", e.ModelID),
			zap.String("txHash", e.TxHash),
			zap.Error(err))
		return outcome{status: statusNoop}, nil
	}
	if err != nil {
		return outcome{}, err
	}

	return appliedOutcome(&e.ModelID), nil
}

func (a *applier) applyPayment(ctx context.Context, e *domain.PaymentRegistered) (outcome, error) {
	_, err := a.splitter.RegisterLedgerPayment(ctx, e)
	switch {
	case err == nil:
		return appliedOutcome(&e.ModelID), nil
	case errors.Is(err, domain.ErrDuplicatePayment):
		// collisions were reported by the registry, neither case may block the window
		return outcome{status: statusNoop}, nil
	case errors.Is(err, domain.ErrSplitNotConfigured):
		return deferred("split of model %d not configured", e.ModelID), nil
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidTxHash):
		logger.WarnCtx(ctx, "Ignoring invalid payment from ledger",
			zap.Uint64("modelID", e.ModelID),
			zap.String("txHash", e.TxHash),
			zap.Error(err))
		return outcome{status: statusNoop}, nil
	default:
		return outcome{}, err
	}
}

// upsertSnapshot writes a model read from the ledger at head, positioned after every log of that block
func (a *applier) upsertSnapshot(ctx context.Context, view *ethereum.ModelView, head uint64) (bool, error) {
	return a.store.UpsertModel(ctx, store.UpsertModelInput{
		Chain:     a.chain,
		ModelID:   view.ModelID,
		Owner:     view.Owner,
		Creator:   view.Creator,
		Listed:    view.Listed,
		URI:       view.URI,
		Version:   view.Version,
		TermsHash: view.TermsHash,
		Params:    view.Params,
		Position:  domain.Position{Block: head, LogIndex: snapshotLogIndex},
	})
}

func (a *applier) deferEvent(ctx context.Context, event domain.Event, reason string) (bool, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("failed to marshal deferred event: %w", err)
	}

	meta := event.Metadata()
	row := &schema.DeferredEvent{
		ChainID:     string(meta.Chain),
		StreamName:  string(meta.Stream),
		EventName:   string(event.Name()),
		BlockNumber: meta.BlockNumber,
		LogIndex:    meta.LogIndex,
		TxHash:      meta.TxHash,
		Reason:      reason,
		Payload:     datatypes.JSON(payload),
	}
	if modelID, ok := domain.ParentModelID(event); ok {
		row.ModelID = &modelID
	}
	switch e := event.(type) {
	case *domain.LicenseTransferred:
		row.LicenseID = &e.LicenseID
	case *domain.LicenseRevoked:
		row.LicenseID = &e.LicenseID
	case *domain.PaymentRegistered:
		row.ModelID = &e.ModelID
	}

	created, err := a.store.CreateDeferredEvent(ctx, row)
	if err != nil {
		return false, err
	}
	if created {
		logger.InfoCtx(ctx, "Event deferred",
			zap.String("event", row.EventName),
			zap.String("txHash", row.TxHash),
			zap.Uint64("logIndex", row.LogIndex),
			zap.String("reason", reason))
	}

	return created, nil
}

func (a *applier) modelExists(ctx context.Context, modelID uint64) (bool, error) {
	model, err := a.store.GetModel(ctx, a.chain, modelID)
	if err != nil {
		return false, err
	}
	return model != nil, nil
}

func (a *applier) licenseExists(ctx context.Context, licenseID uint64) (bool, error) {
	license, err := a.store.GetLicense(ctx, a.chain, licenseID)
	if err != nil {
		return false, err
	}
	return license != nil, nil
}
