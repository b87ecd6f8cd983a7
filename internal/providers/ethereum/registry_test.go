package ethereum_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/mocks"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
)

var (
	modelRegistry   = common.HexToAddress("0x6666666666666666666666666666666666666666")
	licenseRegistry = common.HexToAddress("0x7777777777777777777777777777777777777777")
)

func TestRegistryReader_GetModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	reader := ethereum.NewRegistryReader(ledger, modelRegistry, licenseRegistry)

	owner := common.HexToAddress("0xAAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa")
	ledger.EXPECT().ReadView(gomock.Any(), modelRegistry, gomock.Any(), "getModel", big.NewInt(3)).
		Return([]any{
			owner, owner, true, "ipfs://model", big.NewInt(2),
			big.NewInt(100), big.NewInt(10), big.NewInt(1),
			uint16(1000), uint8(3), uint8(1), [32]byte{0x01},
		}, nil)

	model, err := reader.GetModel(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", model.Owner)
	assert.Equal(t, uint64(2), model.Version)
	assert.Equal(t, "100", model.Params.PricePerpetual)
	assert.Equal(t, uint16(1000), model.Params.RoyaltyBps)
	assert.Equal(t, "0x01"+"00000000000000000000000000000000000000000000000000000000000000", model.TermsHash)
}

func TestRegistryReader_GetModel_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	reader := ethereum.NewRegistryReader(ledger, modelRegistry, licenseRegistry)

	ledger.EXPECT().ReadView(gomock.Any(), modelRegistry, gomock.Any(), "getModel", gomock.Any()).
		Return([]any{
			common.Address{}, common.Address{}, false, "", big.NewInt(0),
			big.NewInt(0), big.NewInt(0), big.NewInt(0),
			uint16(0), uint8(0), uint8(0), [32]byte{},
		}, nil)

	_, err := reader.GetModel(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestRegistryReader_GetLicense(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	reader := ethereum.NewRegistryReader(ledger, modelRegistry, licenseRegistry)

	owner := common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	ledger.EXPECT().ReadView(gomock.Any(), licenseRegistry, gomock.Any(), "getLicense", big.NewInt(7)).
		Return([]any{big.NewInt(3), owner, uint8(1), uint64(1_700_000_000), uint64(1_800_000_000), uint8(3), true, false}, nil)
	ledger.EXPECT().ReadView(gomock.Any(), licenseRegistry, gomock.Any(), "totalLicenses").
		Return([]any{big.NewInt(12)}, nil)

	license, err := reader.GetLicense(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), license.ModelID)
	assert.Equal(t, domain.LicenseKindSubscription, license.Kind)
	require.NotNil(t, license.ExpiresAt)
	assert.Equal(t, time.Unix(1_800_000_000, 0).UTC(), *license.ExpiresAt)

	total, err := reader.TotalLicenses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(12), total)
}
