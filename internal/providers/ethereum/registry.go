package ethereum

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-model-indexer/internal/contracts"
	"github.com/feral-file/ff-model-indexer/internal/domain"
)

// ModelView is the on-ledger state of a model as returned by getModel
type ModelView struct {
	ModelID   uint64
	Owner     string
	Creator   string
	Listed    bool
	URI       string
	Version   uint64
	TermsHash string
	Params    domain.LicensingParams
}

// LicenseView is the on-ledger state of a license as returned by getLicense
type LicenseView struct {
	LicenseID    uint64
	ModelID      uint64
	Owner        string
	Kind         domain.LicenseKind
	MintedAt     time.Time
	ExpiresAt    *time.Time
	Rights       uint8
	Transferable bool
	Revoked      bool
}

// RegistryReader reads model and license state from the registry contracts
//
//go:generate mockgen -source=registry.go -destination=../../mocks/registry_reader.go -package=mocks -mock_names=RegistryReader=MockRegistryReader
type RegistryReader interface {
	// GetModel returns the current state of a model, domain.ErrModelNotFound when it does not exist
	GetModel(ctx context.Context, modelID uint64) (*ModelView, error)
	// TotalLicenses returns the highest license id issued
	TotalLicenses(ctx context.Context) (uint64, error)
	// GetLicense returns the current state of a license
	GetLicense(ctx context.Context, licenseID uint64) (*LicenseView, error)
}

type registryReader struct {
	client          LedgerClient
	modelRegistry   common.Address
	licenseRegistry common.Address
}

// NewRegistryReader creates a reader over the model and license registries
func NewRegistryReader(client LedgerClient, modelRegistry, licenseRegistry common.Address) RegistryReader {
	return &registryReader{
		client:          client,
		modelRegistry:   modelRegistry,
		licenseRegistry: licenseRegistry,
	}
}

func (r *registryReader) GetModel(ctx context.Context, modelID uint64) (*ModelView, error) {
	out, err := r.client.ReadView(ctx, r.modelRegistry, contracts.ModelRegistry, "getModel", new(big.Int).SetUint64(modelID))
	if err != nil {
		return nil, err
	}
	if len(out) != 12 {
		return nil, fmt.Errorf("getModel returned %d values", len(out))
	}

	owner, ok1 := out[0].(common.Address)
	creator, ok2 := out[1].(common.Address)
	listed, ok3 := out[2].(bool)
	uri, ok4 := out[3].(string)
	version, ok5 := out[4].(*big.Int)
	perpetual, ok6 := out[5].(*big.Int)
	subscription, ok7 := out[6].(*big.Int)
	inference, ok8 := out[7].(*big.Int)
	royaltyBps, ok9 := out[8].(uint16)
	deliveryRights, ok10 := out[9].(uint8)
	deliveryMode, ok11 := out[10].(uint8)
	termsHash, ok12 := out[11].([32]byte)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 || !ok7 || !ok8 || !ok9 || !ok10 || !ok11 || !ok12 {
		return nil, fmt.Errorf("getModel returned unexpected types")
	}

	if owner == (common.Address{}) {
		return nil, fmt.Errorf("%w: %d", domain.ErrModelNotFound, modelID)
	}
	if !version.IsUint64() {
		return nil, fmt.Errorf("model %d version %s exceeds 64 bits", modelID, version)
	}

	return &ModelView{
		ModelID:   modelID,
		Owner:     strings.ToLower(owner.Hex()),
		Creator:   strings.ToLower(creator.Hex()),
		Listed:    listed,
		URI:       uri,
		Version:   version.Uint64(),
		TermsHash: "0x" + hex.EncodeToString(termsHash[:]),
		Params: domain.LicensingParams{
			PricePerpetual:    perpetual.String(),
			PriceSubscription: subscription.String(),
			PriceInference:    inference.String(),
			RoyaltyBps:        royaltyBps,
			DeliveryRights:    deliveryRights,
			DeliveryMode:      deliveryMode,
		},
	}, nil
}

func (r *registryReader) TotalLicenses(ctx context.Context) (uint64, error) {
	out, err := r.client.ReadView(ctx, r.licenseRegistry, contracts.LicenseRegistry, "totalLicenses")
	if err != nil {
		return 0, err
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("totalLicenses returned %d values", len(out))
	}
	total, ok := out[0].(*big.Int)
	if !ok || !total.IsUint64() {
		return 0, fmt.Errorf("totalLicenses returned an invalid value")
	}
	return total.Uint64(), nil
}

func (r *registryReader) GetLicense(ctx context.Context, licenseID uint64) (*LicenseView, error) {
	out, err := r.client.ReadView(ctx, r.licenseRegistry, contracts.LicenseRegistry, "getLicense", new(big.Int).SetUint64(licenseID))
	if err != nil {
		return nil, err
	}
	if len(out) != 8 {
		return nil, fmt.Errorf("getLicense returned %d values", len(out))
	}

	modelID, ok1 := out[0].(*big.Int)
	owner, ok2 := out[1].(common.Address)
	kind, ok3 := out[2].(uint8)
	mintedAt, ok4 := out[3].(uint64)
	expiresAt, ok5 := out[4].(uint64)
	rights, ok6 := out[5].(uint8)
	transferable, ok7 := out[6].(bool)
	revoked, ok8 := out[7].(bool)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 || !ok7 || !ok8 {
		return nil, fmt.Errorf("getLicense returned unexpected types")
	}
	if !modelID.IsUint64() {
		return nil, fmt.Errorf("license %d model id %s exceeds 64 bits", licenseID, modelID)
	}

	licenseKind, err := domain.LicenseKindFromUint8(kind)
	if err != nil {
		return nil, err
	}

	view := &LicenseView{
		LicenseID:    licenseID,
		ModelID:      modelID.Uint64(),
		Owner:        strings.ToLower(owner.Hex()),
		Kind:         licenseKind,
		MintedAt:     time.Unix(int64(mintedAt), 0).UTC(), //nolint:gosec,G115 // unix timestamp
		Rights:       rights,
		Transferable: transferable,
		Revoked:      revoked,
	}
	if licenseKind == domain.LicenseKindSubscription && expiresAt > 0 {
		expiry := time.Unix(int64(expiresAt), 0).UTC() //nolint:gosec,G115 // unix timestamp
		view.ExpiresAt = &expiry
	}

	return view, nil
}
