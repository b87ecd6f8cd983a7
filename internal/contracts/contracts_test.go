package contracts

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/domain"
)

func TestEventSignatures(t *testing.T) {
	tests := []struct {
		event     string
		signature string
	}{
		{"ModelUpgraded", "ModelUpgraded(uint256,uint256,string,bytes32)"},
		{"ListedStatusChanged", "ListedStatusChanged(uint256,bool)"},
		{"AgentRegistered", "AgentRegistered(uint256,uint256,address,string)"},
	}
	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			assert.Equal(t, crypto.Keccak256Hash([]byte(tt.signature)), ModelRegistry.Events[tt.event].ID)
		})
	}

	assert.Equal(t,
		crypto.Keccak256Hash([]byte("LicenseTransferred(uint256,address,address)")),
		LicenseRegistry.Events["LicenseTransferred"].ID)
	assert.Equal(t,
		crypto.Keccak256Hash([]byte("PaymentRegistered(uint256,address,uint256)")),
		PaymentRouter.Events["PaymentRegistered"].ID)
}

func TestStreamTopics(t *testing.T) {
	topics, err := StreamTopics(domain.StreamModels)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Len(t, topics[0], 5)

	topics, err = StreamTopics(domain.StreamLicenses)
	require.NoError(t, err)
	assert.Len(t, topics[0], 3)

	topics, err = StreamTopics(domain.StreamPayments)
	require.NoError(t, err)
	assert.Len(t, topics[0], 2)

	_, err = StreamTopics(domain.Stream("unknown"))
	assert.ErrorIs(t, err, domain.ErrUnknownStream)
}

func TestPayoutMethod(t *testing.T) {
	method, ok := PayoutVault.Methods["payout"]
	require.True(t, ok)
	assert.Equal(t, "payout(address,uint256)", method.Sig)
}
