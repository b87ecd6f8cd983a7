// Package contracts holds the ABIs of the marketplace contracts the indexer reads and reconciles
package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-model-indexer/internal/domain"
)

const ModelRegistryABI = `[
	{"type":"event","name":"ModelListed","anonymous":false,"inputs":[
		{"name":"modelId","type":"uint256","indexed":true},
		{"name":"owner","type":"address","indexed":true},
		{"name":"creator","type":"address","indexed":true},
		{"name":"uri","type":"string","indexed":false},
		{"name":"version","type":"uint256","indexed":false},
		{"name":"pricePerpetual","type":"uint256","indexed":false},
		{"name":"priceSubscription","type":"uint256","indexed":false},
		{"name":"priceInference","type":"uint256","indexed":false},
		{"name":"royaltyBps","type":"uint16","indexed":false},
		{"name":"deliveryRights","type":"uint8","indexed":false},
		{"name":"deliveryMode","type":"uint8","indexed":false},
		{"name":"termsHash","type":"bytes32","indexed":false}]},
	{"type":"event","name":"ModelUpgraded","anonymous":false,"inputs":[
		{"name":"modelId","type":"uint256","indexed":true},
		{"name":"version","type":"uint256","indexed":false},
		{"name":"uri","type":"string","indexed":false},
		{"name":"termsHash","type":"bytes32","indexed":false}]},
	{"type":"event","name":"ListedStatusChanged","anonymous":false,"inputs":[
		{"name":"modelId","type":"uint256","indexed":true},
		{"name":"listed","type":"bool","indexed":false}]},
	{"type":"event","name":"LicensingParamsChanged","anonymous":false,"inputs":[
		{"name":"modelId","type":"uint256","indexed":true},
		{"name":"pricePerpetual","type":"uint256","indexed":false},
		{"name":"priceSubscription","type":"uint256","indexed":false},
		{"name":"priceInference","type":"uint256","indexed":false},
		{"name":"royaltyBps","type":"uint16","indexed":false},
		{"name":"deliveryRights","type":"uint8","indexed":false},
		{"name":"deliveryMode","type":"uint8","indexed":false}]},
	{"type":"event","name":"AgentRegistered","anonymous":false,"inputs":[
		{"name":"agentId","type":"uint256","indexed":true},
		{"name":"modelId","type":"uint256","indexed":true},
		{"name":"owner","type":"address","indexed":true},
		{"name":"uri","type":"string","indexed":false}]},
	{"type":"function","name":"getModel","stateMutability":"view","inputs":[
		{"name":"modelId","type":"uint256"}],"outputs":[
		{"name":"owner","type":"address"},
		{"name":"creator","type":"address"},
		{"name":"listed","type":"bool"},
		{"name":"uri","type":"string"},
		{"name":"version","type":"uint256"},
		{"name":"pricePerpetual","type":"uint256"},
		{"name":"priceSubscription","type":"uint256"},
		{"name":"priceInference","type":"uint256"},
		{"name":"royaltyBps","type":"uint16"},
		{"name":"deliveryRights","type":"uint8"},
		{"name":"deliveryMode","type":"uint8"},
		{"name":"termsHash","type":"bytes32"}]}
]`

const LicenseRegistryABI = `[
	{"type":"event","name":"LicensePurchased","anonymous":false,"inputs":[
		{"name":"licenseId","type":"uint256","indexed":true},
		{"name":"modelId","type":"uint256","indexed":true},
		{"name":"buyer","type":"address","indexed":true},
		{"name":"kind","type":"uint8","indexed":false},
		{"name":"expiresAt","type":"uint64","indexed":false},
		{"name":"rights","type":"uint8","indexed":false},
		{"name":"transferable","type":"bool","indexed":false},
		{"name":"price","type":"uint256","indexed":false}]},
	{"type":"event","name":"LicenseTransferred","anonymous":false,"inputs":[
		{"name":"licenseId","type":"uint256","indexed":true},
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true}]},
	{"type":"event","name":"LicenseRevoked","anonymous":false,"inputs":[
		{"name":"licenseId","type":"uint256","indexed":true}]},
	{"type":"function","name":"totalLicenses","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"uint256"}]},
	{"type":"function","name":"getLicense","stateMutability":"view","inputs":[
		{"name":"licenseId","type":"uint256"}],"outputs":[
		{"name":"modelId","type":"uint256"},
		{"name":"owner","type":"address"},
		{"name":"kind","type":"uint8"},
		{"name":"mintedAt","type":"uint64"},
		{"name":"expiresAt","type":"uint64"},
		{"name":"rights","type":"uint8"},
		{"name":"transferable","type":"bool"},
		{"name":"revoked","type":"bool"}]}
]`

const PaymentRouterABI = `[
	{"type":"event","name":"SplitConfigured","anonymous":false,"inputs":[
		{"name":"modelId","type":"uint256","indexed":true},
		{"name":"seller","type":"address","indexed":true},
		{"name":"creator","type":"address","indexed":true},
		{"name":"royaltyBps","type":"uint16","indexed":false},
		{"name":"marketplaceBps","type":"uint16","indexed":false}]},
	{"type":"event","name":"PaymentRegistered","anonymous":false,"inputs":[
		{"name":"modelId","type":"uint256","indexed":true},
		{"name":"payer","type":"address","indexed":true},
		{"name":"amount","type":"uint256","indexed":false}]}
]`

const PayoutVaultABI = `[
	{"type":"function","name":"payout","stateMutability":"nonpayable","inputs":[
		{"name":"recipient","type":"address"},
		{"name":"amount","type":"uint256"}],"outputs":[]}
]`

var (
	ModelRegistry   = mustParse(ModelRegistryABI)
	LicenseRegistry = mustParse(LicenseRegistryABI)
	PaymentRouter   = mustParse(PaymentRouterABI)
	PayoutVault     = mustParse(PayoutVaultABI)
)

func mustParse(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid contract ABI: %v", err))
	}
	return parsed
}

// StreamABI returns the ABI whose events make up a stream
func StreamABI(stream domain.Stream) (abi.ABI, error) {
	switch stream {
	case domain.StreamModels:
		return ModelRegistry, nil
	case domain.StreamLicenses:
		return LicenseRegistry, nil
	case domain.StreamPayments:
		return PaymentRouter, nil
	default:
		return abi.ABI{}, fmt.Errorf("%w: %s", domain.ErrUnknownStream, stream)
	}
}

// StreamTopics returns the topic0 filter of a stream, one entry per event signature
func StreamTopics(stream domain.Stream) ([][]common.Hash, error) {
	contractABI, err := StreamABI(stream)
	if err != nil {
		return nil, err
	}

	ids := make([]common.Hash, 0, len(contractABI.Events))
	for _, event := range contractABI.Events {
		ids = append(ids, event.ID)
	}

	return [][]common.Hash{ids}, nil
}
