package decoder

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-model-indexer/internal/contracts"
	"github.com/feral-file/ff-model-indexer/internal/domain"
)

var (
	modelListedSignature            = contracts.ModelRegistry.Events["ModelListed"].ID
	modelUpgradedSignature          = contracts.ModelRegistry.Events["ModelUpgraded"].ID
	listedStatusChangedSignature    = contracts.ModelRegistry.Events["ListedStatusChanged"].ID
	licensingParamsChangedSignature = contracts.ModelRegistry.Events["LicensingParamsChanged"].ID
	agentRegisteredSignature        = contracts.ModelRegistry.Events["AgentRegistered"].ID
	licensePurchasedSignature       = contracts.LicenseRegistry.Events["LicensePurchased"].ID
	licenseTransferredSignature     = contracts.LicenseRegistry.Events["LicenseTransferred"].ID
	licenseRevokedSignature         = contracts.LicenseRegistry.Events["LicenseRevoked"].ID
	splitConfiguredSignature        = contracts.PaymentRouter.Events["SplitConfigured"].ID
	paymentRegisteredSignature      = contracts.PaymentRouter.Events["PaymentRegistered"].ID
)

// DecodeError describes a log that could not be turned into an event
type DecodeError struct {
	TxHash   string
	LogIndex uint
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode log %s:%d: %v", e.TxHash, e.LogIndex, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder turns raw ledger logs into typed events
//
//go:generate mockgen -source=decoder.go -destination=../mocks/decoder.go -package=mocks -mock_names=Decoder=MockDecoder
type Decoder interface {
	// Decode decodes a single log. It has no side effects.
	Decode(log types.Log) (domain.Event, error)
}

type decoder struct {
	chain domain.Chain
}

// New creates a decoder for a chain
func New(chain domain.Chain) Decoder {
	return &decoder{chain: chain}
}

// Decode decodes a log emitted by one of the marketplace contracts
func (d *decoder) Decode(log types.Log) (domain.Event, error) {
	if len(log.Topics) == 0 {
		return nil, d.fail(log, domain.ErrUnknownSignature)
	}

	event, err := d.decode(log)
	if err != nil {
		return nil, d.fail(log, err)
	}

	return event, nil
}

func (d *decoder) fail(log types.Log, err error) error {
	return &DecodeError{TxHash: log.TxHash.Hex(), LogIndex: log.Index, Err: err}
}

func (d *decoder) meta(log types.Log, stream domain.Stream) domain.EventMeta {
	return domain.EventMeta{
		Chain:       d.chain,
		Stream:      stream,
		Contract:    strings.ToLower(log.Address.Hex()),
		BlockNumber: log.BlockNumber,
		LogIndex:    uint64(log.Index),
		TxHash:      log.TxHash.Hex(),
	}
}

func (d *decoder) decode(log types.Log) (domain.Event, error) {
	switch log.Topics[0] {
	case modelListedSignature:
		// ModelListed(uint256 indexed modelId, address indexed owner, address indexed creator, ...)
		data, err := unpack(contracts.ModelRegistry, "ModelListed", log, 4)
		if err != nil {
			return nil, err
		}
		modelID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		version, err := toUint64(data["version"])
		if err != nil {
			return nil, err
		}
		params, err := licensingParams(data)
		if err != nil {
			return nil, err
		}
		return &domain.ModelListed{
			EventMeta:       d.meta(log, domain.StreamModels),
			LicensingParams: params,
			ModelID:         modelID,
			Owner:           topicAddress(log.Topics[2]),
			Creator:         topicAddress(log.Topics[3]),
			URI:             data["uri"].(string),
			Version:         version,
			TermsHash:       bytes32Hex(data["termsHash"]),
		}, nil

	case modelUpgradedSignature:
		// ModelUpgraded(uint256 indexed modelId, uint256 version, string uri, bytes32 termsHash)
		data, err := unpack(contracts.ModelRegistry, "ModelUpgraded", log, 2)
		if err != nil {
			return nil, err
		}
		modelID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		version, err := toUint64(data["version"])
		if err != nil {
			return nil, err
		}
		return &domain.ModelUpgraded{
			EventMeta: d.meta(log, domain.StreamModels),
			ModelID:   modelID,
			Version:   version,
			URI:       data["uri"].(string),
			TermsHash: bytes32Hex(data["termsHash"]),
		}, nil

	case listedStatusChangedSignature:
		// ListedStatusChanged(uint256 indexed modelId, bool listed)
		data, err := unpack(contracts.ModelRegistry, "ListedStatusChanged", log, 2)
		if err != nil {
			return nil, err
		}
		modelID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		return &domain.ListedStatusChanged{
			EventMeta: d.meta(log, domain.StreamModels),
			ModelID:   modelID,
			Listed:    data["listed"].(bool),
		}, nil

	case licensingParamsChangedSignature:
		data, err := unpack(contracts.ModelRegistry, "LicensingParamsChanged", log, 2)
		if err != nil {
			return nil, err
		}
		modelID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		params, err := licensingParams(data)
		if err != nil {
			return nil, err
		}
		return &domain.LicensingParamsChanged{
			EventMeta:       d.meta(log, domain.StreamModels),
			LicensingParams: params,
			ModelID:         modelID,
		}, nil

	case agentRegisteredSignature:
		// AgentRegistered(uint256 indexed agentId, uint256 indexed modelId, address indexed owner, string uri)
		data, err := unpack(contracts.ModelRegistry, "AgentRegistered", log, 4)
		if err != nil {
			return nil, err
		}
		agentID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		modelID, err := topicUint64(log.Topics[2])
		if err != nil {
			return nil, err
		}
		return &domain.AgentRegistered{
			EventMeta: d.meta(log, domain.StreamModels),
			AgentID:   agentID,
			ModelID:   modelID,
			Owner:     topicAddress(log.Topics[3]),
			URI:       data["uri"].(string),
		}, nil

	case licensePurchasedSignature:
		// LicensePurchased(uint256 indexed licenseId, uint256 indexed modelId, address indexed buyer,
		// uint8 kind, uint64 expiresAt, uint8 rights, bool transferable, uint256 price)
		data, err := unpack(contracts.LicenseRegistry, "LicensePurchased", log, 4)
		if err != nil {
			return nil, err
		}
		licenseID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		modelID, err := topicUint64(log.Topics[2])
		if err != nil {
			return nil, err
		}
		kind, err := domain.LicenseKindFromUint8(data["kind"].(uint8))
		if err != nil {
			return nil, err
		}
		return &domain.LicensePurchased{
			EventMeta:    d.meta(log, domain.StreamLicenses),
			LicenseID:    licenseID,
			ModelID:      modelID,
			Buyer:        topicAddress(log.Topics[3]),
			Kind:         kind,
			ExpiresAt:    data["expiresAt"].(uint64),
			Rights:       data["rights"].(uint8),
			Transferable: data["transferable"].(bool),
			Price:        data["price"].(*big.Int).String(),
		}, nil

	case licenseTransferredSignature:
		// LicenseTransferred(uint256 indexed licenseId, address indexed from, address indexed to)
		if len(log.Topics) != 4 {
			return nil, fmt.Errorf("invalid LicenseTransferred event: expected 4 topics, got %d", len(log.Topics))
		}
		licenseID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		return &domain.LicenseTransferred{
			EventMeta: d.meta(log, domain.StreamLicenses),
			LicenseID: licenseID,
			From:      topicAddress(log.Topics[2]),
			To:        topicAddress(log.Topics[3]),
		}, nil

	case licenseRevokedSignature:
		if len(log.Topics) != 2 {
			return nil, fmt.Errorf("invalid LicenseRevoked event: expected 2 topics, got %d", len(log.Topics))
		}
		licenseID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		return &domain.LicenseRevoked{
			EventMeta: d.meta(log, domain.StreamLicenses),
			LicenseID: licenseID,
		}, nil

	case splitConfiguredSignature:
		// SplitConfigured(uint256 indexed modelId, address indexed seller, address indexed creator, uint16 royaltyBps, uint16 marketplaceBps)
		data, err := unpack(contracts.PaymentRouter, "SplitConfigured", log, 4)
		if err != nil {
			return nil, err
		}
		modelID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		return &domain.SplitConfigured{
			EventMeta:      d.meta(log, domain.StreamPayments),
			ModelID:        modelID,
			Seller:         topicAddress(log.Topics[2]),
			Creator:        topicAddress(log.Topics[3]),
			RoyaltyBps:     data["royaltyBps"].(uint16),
			MarketplaceBps: data["marketplaceBps"].(uint16),
		}, nil

	case paymentRegisteredSignature:
		// PaymentRegistered(uint256 indexed modelId, address indexed payer, uint256 amount)
		data, err := unpack(contracts.PaymentRouter, "PaymentRegistered", log, 3)
		if err != nil {
			return nil, err
		}
		modelID, err := topicUint64(log.Topics[1])
		if err != nil {
			return nil, err
		}
		return &domain.PaymentRegistered{
			EventMeta: d.meta(log, domain.StreamPayments),
			ModelID:   modelID,
			Payer:     topicAddress(log.Topics[2]),
			Amount:    data["amount"].(*big.Int).String(),
		}, nil

	default:
		return nil, domain.ErrUnknownSignature
	}
}

// unpack checks the topic count and decodes the non-indexed fields of an event
func unpack(contractABI abi.ABI, event string, log types.Log, topics int) (map[string]any, error) {
	if len(log.Topics) != topics {
		return nil, fmt.Errorf("invalid %s event: expected %d topics, got %d", event, topics, len(log.Topics))
	}

	data := make(map[string]any)
	if err := contractABI.UnpackIntoMap(data, event, log.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", event, err)
	}

	return data, nil
}

func licensingParams(data map[string]any) (domain.LicensingParams, error) {
	perpetual, ok1 := data["pricePerpetual"].(*big.Int)
	subscription, ok2 := data["priceSubscription"].(*big.Int)
	inference, ok3 := data["priceInference"].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return domain.LicensingParams{}, errors.New("invalid licensing prices")
	}

	return domain.LicensingParams{
		PricePerpetual:    perpetual.String(),
		PriceSubscription: subscription.String(),
		PriceInference:    inference.String(),
		RoyaltyBps:        data["royaltyBps"].(uint16),
		DeliveryRights:    data["deliveryRights"].(uint8),
		DeliveryMode:      data["deliveryMode"].(uint8),
	}, nil
}

func topicAddress(topic common.Hash) string {
	return strings.ToLower(common.BytesToAddress(topic.Bytes()).Hex())
}

func topicUint64(topic common.Hash) (uint64, error) {
	return toUint64(new(big.Int).SetBytes(topic.Bytes()))
}

// toUint64 narrows an on-chain uint256 id; ids beyond uint64 are rejected
func toUint64(value any) (uint64, error) {
	v, ok := value.(*big.Int)
	if !ok {
		return 0, fmt.Errorf("expected uint256, got %T", value)
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("value out of range: %s", v.String())
	}
	return v.Uint64(), nil
}

func bytes32Hex(value any) string {
	b, ok := value.([32]byte)
	if !ok {
		return ""
	}
	return common.Hash(b).Hex()
}
