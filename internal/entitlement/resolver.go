// Package entitlement answers whether a user holds a license on a model, and with which rights
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/block"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// Resolver resolves the entitlement of a user on a model
//
//go:generate mockgen -source=resolver.go -destination=../mocks/entitlement.go -package=mocks -mock_names=Resolver=MockEntitlementResolver
type Resolver interface {
	Resolve(ctx context.Context, chain domain.Chain, modelID string, user string) (*domain.Entitlement, error)
}

// Config holds resolver configuration
type Config struct {
	// MaxScanDepth bounds the licenses examined per resolution
	MaxScanDepth int
	// MaxCursorLag is how far behind the head the license stream may be for the store to be trusted
	MaxCursorLag uint64
}

type resolver struct {
	store     store.Store
	registry  ethereum.RegistryReader
	blocks    block.BlockProvider
	canonical adapter.Canonicalizer
	clock     adapter.Clock
	config    Config
}

// NewResolver creates an entitlement resolver
func NewResolver(
	st store.Store,
	registry ethereum.RegistryReader,
	blocks block.BlockProvider,
	canonical adapter.Canonicalizer,
	clock adapter.Clock,
	config Config,
) Resolver {
	if config.MaxScanDepth <= 0 {
		config.MaxScanDepth = 500
	}
	return &resolver{
		store:     st,
		registry:  registry,
		blocks:    blocks,
		canonical: canonical,
		clock:     clock,
		config:    config,
	}
}

// candidate is a license seen during a scan, from either source
type candidate struct {
	licenseID uint64
	kind      domain.LicenseKind
	rights    uint8
	expiresAt *time.Time
	revoked   bool
}

// Resolve picks the store when the license stream is caught up, otherwise the ledger
func (r *resolver) Resolve(ctx context.Context, chain domain.Chain, modelID string, user string) (*domain.Entitlement, error) {
	id, err := domain.ParseModelID(modelID)
	if err != nil {
		return nil, err
	}
	if !domain.IsValidAddress(user) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, user)
	}
	user = domain.NormalizeAddress(user)

	entitlement := &domain.Entitlement{
		Chain:   chain,
		ModelID: id,
		User:    user,
	}

	var (
		match   *candidate
		scanned int
	)
	useLedger := !r.storeIsFresh(ctx, chain)
	if !useLedger {
		match, scanned, err = r.scanStore(ctx, chain, id, user)
		if err == nil {
			entitlement.Source = domain.EntitlementSourceStore
			entitlement.Version, err = r.storeVersion(ctx, chain, id)
		}
		if err != nil {
			logger.WarnCtx(ctx, "Store entitlement lookup failed, falling back to ledger",
				zap.Error(err), zap.Uint64("modelID", id))
			useLedger = true
		}
	}

	if useLedger {
		match, scanned, err = r.scanLedger(ctx, id, user)
		if err != nil {
			return nil, err
		}
		entitlement.Source = domain.EntitlementSourceLedger
		entitlement.Version, err = r.ledgerVersion(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	entitlement.Scanned = scanned
	if match != nil {
		r.apply(entitlement, match)
	}

	hash, err := r.canonical.Hash(entitlement.Facts())
	if err != nil {
		return nil, fmt.Errorf("failed to hash entitlement: %w", err)
	}
	entitlement.ContentHash = hash

	return entitlement, nil
}

// storeIsFresh reports whether the license cursor is within the allowed lag of the head
func (r *resolver) storeIsFresh(ctx context.Context, chain domain.Chain) bool {
	cursor, err := r.store.GetCursor(ctx, chain, domain.StreamLicenses)
	if err != nil || cursor == nil {
		return false
	}

	head, err := r.blocks.GetLatestBlock(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to get head for entitlement source selection", zap.Error(err))
		return false
	}

	return head <= cursor.LastBlock || head-cursor.LastBlock <= r.config.MaxCursorLag
}

func (r *resolver) scanStore(ctx context.Context, chain domain.Chain, modelID uint64, user string) (*candidate, int, error) {
	licenses, err := r.store.ListLatestLicenses(ctx, chain, r.config.MaxScanDepth)
	if err != nil {
		return nil, 0, err
	}

	for i, license := range licenses {
		if license.ModelID == modelID && license.Owner == user {
			return fromRecord(&license), i + 1, nil
		}
	}

	return nil, len(licenses), nil
}

func fromRecord(license *schema.License) *candidate {
	return &candidate{
		licenseID: license.LicenseID,
		kind:      domain.LicenseKind(license.Kind),
		rights:    license.Rights,
		expiresAt: license.ExpiresAt,
		revoked:   license.Revoked,
	}
}

// scanLedger walks license ids downwards from the newest, never reading more than the scan depth
func (r *resolver) scanLedger(ctx context.Context, modelID uint64, user string) (*candidate, int, error) {
	total, err := r.registry.TotalLicenses(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read total licenses: %w", err)
	}

	scanned := 0
	for id := total; id >= 1 && scanned < r.config.MaxScanDepth; id-- {
		scanned++
		license, err := r.registry.GetLicense(ctx, id)
		if err != nil {
			return nil, scanned, fmt.Errorf("failed to read license %d: %w", id, err)
		}
		if license.ModelID == modelID && license.Owner == user {
			return &candidate{
				licenseID: license.LicenseID,
				kind:      license.Kind,
				rights:    license.Rights,
				expiresAt: license.ExpiresAt,
				revoked:   license.Revoked,
			}, scanned, nil
		}
	}

	return nil, scanned, nil
}

func (r *resolver) storeVersion(ctx context.Context, chain domain.Chain, modelID uint64) (uint64, error) {
	model, err := r.store.GetModel(ctx, chain, modelID)
	if err != nil {
		return 0, err
	}
	if model == nil {
		return 0, nil
	}
	return model.Version, nil
}

func (r *resolver) ledgerVersion(ctx context.Context, modelID uint64) (uint64, error) {
	model, err := r.registry.GetModel(ctx, modelID)
	if err != nil {
		if errors.Is(err, domain.ErrModelNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read model version: %w", err)
	}
	return model.Version, nil
}

// apply copies a matched license into the entitlement.
// Revoked or expired licenses keep their identity but grant no rights.
func (r *resolver) apply(entitlement *domain.Entitlement, match *candidate) {
	licenseID := match.licenseID
	kind := match.kind

	entitlement.LicenseID = &licenseID
	entitlement.Kind = &kind
	entitlement.RightsMask = match.rights
	entitlement.Revoked = match.revoked
	if match.expiresAt != nil {
		expiresAt := match.expiresAt.UTC()
		entitlement.ExpiresAt = &expiresAt
	}

	expired := entitlement.ExpiresAt != nil && !entitlement.ExpiresAt.After(r.clock.Now())
	if !match.revoked && !expired {
		entitlement.Rights = domain.RightsFromMask(match.rights)
	}
}
