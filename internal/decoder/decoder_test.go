package decoder_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/contracts"
	"github.com/feral-file/ff-model-indexer/internal/decoder"
	"github.com/feral-file/ff-model-indexer/internal/domain"
)

var (
	owner   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	creator = common.HexToAddress("0x2222222222222222222222222222222222222222")
	txHash  = common.HexToHash("0xabc")
)

func idTopic(id int64) common.Hash {
	return common.BigToHash(big.NewInt(id))
}

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func buildLog(t *testing.T, eventID common.Hash, data []byte, topics ...common.Hash) types.Log {
	t.Helper()
	return types.Log{
		Address:     common.HexToAddress("0x9999999999999999999999999999999999999999"),
		Topics:      append([]common.Hash{eventID}, topics...),
		Data:        data,
		BlockNumber: 120,
		TxHash:      txHash,
		Index:       4,
	}
}

func TestDecodeModelListed(t *testing.T) {
	event := contracts.ModelRegistry.Events["ModelListed"]
	terms := [32]byte{1}
	data, err := event.Inputs.NonIndexed().Pack(
		"ipfs://bafymodel", big.NewInt(1), big.NewInt(1000), big.NewInt(100), big.NewInt(1),
		uint16(1000), uint8(3), uint8(1), terms,
	)
	require.NoError(t, err)

	log := buildLog(t, event.ID, data, idTopic(3), addressTopic(owner), addressTopic(creator))
	decoded, err := decoder.New(domain.ChainEthereumMainnet).Decode(log)
	require.NoError(t, err)

	listed, ok := decoded.(*domain.ModelListed)
	require.True(t, ok)
	assert.Equal(t, uint64(3), listed.ModelID)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", listed.Owner)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", listed.Creator)
	assert.Equal(t, "ipfs://bafymodel", listed.URI)
	assert.Equal(t, uint64(1), listed.Version)
	assert.Equal(t, "1000", listed.PricePerpetual)
	assert.Equal(t, uint16(1000), listed.RoyaltyBps)
	assert.Equal(t, uint8(3), listed.DeliveryRights)
	assert.Equal(t, common.Hash(terms).Hex(), listed.TermsHash)

	meta := listed.Metadata()
	assert.Equal(t, domain.StreamModels, meta.Stream)
	assert.Equal(t, domain.ChainEthereumMainnet, meta.Chain)
	assert.Equal(t, uint64(120), meta.BlockNumber)
	assert.Equal(t, uint64(4), meta.LogIndex)
	assert.Equal(t, txHash.Hex(), meta.TxHash)
	assert.Equal(t, "0x9999999999999999999999999999999999999999", meta.Contract)
}

func TestDecodeLicensePurchased(t *testing.T) {
	event := contracts.LicenseRegistry.Events["LicensePurchased"]
	data, err := event.Inputs.NonIndexed().Pack(uint8(0), uint64(0), uint8(3), true, big.NewInt(1000))
	require.NoError(t, err)

	log := buildLog(t, event.ID, data, idTopic(7), idTopic(3), addressTopic(owner))
	decoded, err := decoder.New(domain.ChainEthereumMainnet).Decode(log)
	require.NoError(t, err)

	purchased, ok := decoded.(*domain.LicensePurchased)
	require.True(t, ok)
	assert.Equal(t, uint64(7), purchased.LicenseID)
	assert.Equal(t, uint64(3), purchased.ModelID)
	assert.Equal(t, domain.LicenseKindPerpetual, purchased.Kind)
	assert.Equal(t, uint8(3), purchased.Rights)
	assert.True(t, purchased.Transferable)
	assert.Equal(t, "1000", purchased.Price)
	assert.Equal(t, domain.StreamLicenses, purchased.Stream)

	parent, ok := domain.ParentModelID(decoded)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), parent)
}

func TestDecodeIndexedOnlyEvents(t *testing.T) {
	d := decoder.New(domain.ChainBaseMainnet)

	transferred := contracts.LicenseRegistry.Events["LicenseTransferred"]
	decoded, err := d.Decode(buildLog(t, transferred.ID, nil, idTopic(7), addressTopic(owner), addressTopic(creator)))
	require.NoError(t, err)
	transfer := decoded.(*domain.LicenseTransferred)
	assert.Equal(t, uint64(7), transfer.LicenseID)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", transfer.To)

	revoked := contracts.LicenseRegistry.Events["LicenseRevoked"]
	decoded, err = d.Decode(buildLog(t, revoked.ID, nil, idTopic(8)))
	require.NoError(t, err)
	assert.Equal(t, uint64(8), decoded.(*domain.LicenseRevoked).LicenseID)
}

func TestDecodePaymentEvents(t *testing.T) {
	d := decoder.New(domain.ChainEthereumMainnet)

	configured := contracts.PaymentRouter.Events["SplitConfigured"]
	data, err := configured.Inputs.NonIndexed().Pack(uint16(1000), uint16(250))
	require.NoError(t, err)
	decoded, err := d.Decode(buildLog(t, configured.ID, data, idTopic(3), addressTopic(owner), addressTopic(creator)))
	require.NoError(t, err)
	split := decoded.(*domain.SplitConfigured)
	assert.Equal(t, uint16(1000), split.RoyaltyBps)
	assert.Equal(t, uint16(250), split.MarketplaceBps)
	assert.Equal(t, domain.StreamPayments, split.Stream)

	registered := contracts.PaymentRouter.Events["PaymentRegistered"]
	data, err = registered.Inputs.NonIndexed().Pack(big.NewInt(1_000_000))
	require.NoError(t, err)
	decoded, err = d.Decode(buildLog(t, registered.ID, data, idTopic(3), addressTopic(owner)))
	require.NoError(t, err)
	assert.Equal(t, "1000000", decoded.(*domain.PaymentRegistered).Amount)
}

func TestDecodeErrors(t *testing.T) {
	d := decoder.New(domain.ChainEthereumMainnet)

	t.Run("no topics", func(t *testing.T) {
		_, err := d.Decode(types.Log{TxHash: txHash})
		assert.ErrorIs(t, err, domain.ErrUnknownSignature)
	})

	t.Run("unknown signature", func(t *testing.T) {
		_, err := d.Decode(buildLog(t, common.HexToHash("0xdeadbeef"), nil))
		assert.ErrorIs(t, err, domain.ErrUnknownSignature)

		var decodeErr *decoder.DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, uint(4), decodeErr.LogIndex)
	})

	t.Run("malformed data", func(t *testing.T) {
		event := contracts.ModelRegistry.Events["ModelUpgraded"]
		_, err := d.Decode(buildLog(t, event.ID, []byte{0x01}, idTopic(3)))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUnknownSignature)

		var decodeErr *decoder.DecodeError
		assert.True(t, errors.As(err, &decodeErr))
	})

	t.Run("wrong topic count", func(t *testing.T) {
		event := contracts.LicenseRegistry.Events["LicenseRevoked"]
		_, err := d.Decode(buildLog(t, event.ID, nil))
		require.Error(t, err)
	})
}
