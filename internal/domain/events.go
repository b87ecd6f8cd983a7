package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventName identifies a decoded ledger event
type EventName string

const (
	EventModelListed            EventName = "ModelListed"
	EventModelUpgraded          EventName = "ModelUpgraded"
	EventListedStatusChanged    EventName = "ListedStatusChanged"
	EventLicensingParamsChanged EventName = "LicensingParamsChanged"
	EventAgentRegistered        EventName = "AgentRegistered"
	EventLicensePurchased       EventName = "LicensePurchased"
	EventLicenseTransferred     EventName = "LicenseTransferred"
	EventLicenseRevoked         EventName = "LicenseRevoked"
	EventSplitConfigured        EventName = "SplitConfigured"
	EventPaymentRegistered      EventName = "PaymentRegistered"
)

// Event is a typed ledger event
type Event interface {
	// Name returns the event name
	Name() EventName
	// Metadata returns where the event was observed on the ledger
	Metadata() EventMeta
}

// EventMeta holds the ledger location of an event
type EventMeta struct {
	Chain       Chain  `json:"chain"`
	Stream      Stream `json:"stream"`
	Contract    string `json:"contract"`
	BlockNumber uint64 `json:"block_number"`
	LogIndex    uint64 `json:"log_index"`
	TxHash      string `json:"tx_hash"`
}

func (m EventMeta) Metadata() EventMeta {
	return m
}

// Position returns the ledger position of the event
func (m EventMeta) Position() Position {
	return Position{Block: m.BlockNumber, LogIndex: m.LogIndex}
}

// LicensingParams holds the pricing and delivery terms of a model
type LicensingParams struct {
	PricePerpetual    string `json:"price_perpetual"`
	PriceSubscription string `json:"price_subscription"`
	PriceInference    string `json:"price_inference"`
	RoyaltyBps        uint16 `json:"royalty_bps"`
	DeliveryRights    uint8  `json:"delivery_rights"`
	DeliveryMode      uint8  `json:"delivery_mode"`
}

type ModelListed struct {
	EventMeta
	LicensingParams
	ModelID   uint64 `json:"model_id"`
	Owner     string `json:"owner"`
	Creator   string `json:"creator"`
	URI       string `json:"uri"`
	Version   uint64 `json:"version"`
	TermsHash string `json:"terms_hash"`
}

func (ModelListed) Name() EventName { return EventModelListed }

type ModelUpgraded struct {
	EventMeta
	ModelID   uint64 `json:"model_id"`
	Version   uint64 `json:"version"`
	URI       string `json:"uri"`
	TermsHash string `json:"terms_hash"`
}

func (ModelUpgraded) Name() EventName { return EventModelUpgraded }

type ListedStatusChanged struct {
	EventMeta
	ModelID uint64 `json:"model_id"`
	Listed  bool   `json:"listed"`
}

func (ListedStatusChanged) Name() EventName { return EventListedStatusChanged }

type LicensingParamsChanged struct {
	EventMeta
	LicensingParams
	ModelID uint64 `json:"model_id"`
}

func (LicensingParamsChanged) Name() EventName { return EventLicensingParamsChanged }

type AgentRegistered struct {
	EventMeta
	AgentID uint64 `json:"agent_id"`
	ModelID uint64 `json:"model_id"`
	Owner   string `json:"owner"`
	URI     string `json:"uri"`
}

func (AgentRegistered) Name() EventName { return EventAgentRegistered }

type LicensePurchased struct {
	EventMeta
	LicenseID    uint64      `json:"license_id"`
	ModelID      uint64      `json:"model_id"`
	Buyer        string      `json:"buyer"`
	Kind         LicenseKind `json:"kind"`
	ExpiresAt    uint64      `json:"expires_at"` // unix seconds, 0 for perpetual licenses
	Rights       uint8       `json:"rights"`
	Transferable bool        `json:"transferable"`
	Price        string      `json:"price"`
	// MintedAt is the timestamp of the block the purchase was included in
	MintedAt time.Time `json:"minted_at"`
}

func (LicensePurchased) Name() EventName { return EventLicensePurchased }

type LicenseTransferred struct {
	EventMeta
	LicenseID uint64 `json:"license_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

func (LicenseTransferred) Name() EventName { return EventLicenseTransferred }

type LicenseRevoked struct {
	EventMeta
	LicenseID uint64 `json:"license_id"`
}

func (LicenseRevoked) Name() EventName { return EventLicenseRevoked }

type SplitConfigured struct {
	EventMeta
	ModelID        uint64 `json:"model_id"`
	Seller         string `json:"seller"`
	Creator        string `json:"creator"`
	RoyaltyBps     uint16 `json:"royalty_bps"`
	MarketplaceBps uint16 `json:"marketplace_bps"`
}

func (SplitConfigured) Name() EventName { return EventSplitConfigured }

type PaymentRegistered struct {
	EventMeta
	ModelID uint64 `json:"model_id"`
	Payer   string `json:"payer"`
	Amount  string `json:"amount"`
}

func (PaymentRegistered) Name() EventName { return EventPaymentRegistered }

// ParentModelID returns the model an event depends on, if any.
// License transfers and revocations depend on a license, not a model.
func ParentModelID(event Event) (uint64, bool) {
	switch e := event.(type) {
	case *ModelUpgraded:
		return e.ModelID, true
	case *ListedStatusChanged:
		return e.ModelID, true
	case *LicensingParamsChanged:
		return e.ModelID, true
	case *AgentRegistered:
		return e.ModelID, true
	case *LicensePurchased:
		return e.ModelID, true
	default:
		return 0, false
	}
}

// ReconciledEvent is the envelope published to the message broker after an event is applied
type ReconciledEvent struct {
	ID        string    `json:"id"`
	EventName EventName `json:"event_name"`
	EventMeta
	Payload Event `json:"payload"`
}

// UnmarshalEvent rebuilds a typed event from its stored JSON payload
func UnmarshalEvent(name EventName, payload []byte) (Event, error) {
	var event Event
	switch name {
	case EventModelListed:
		event = &ModelListed{}
	case EventModelUpgraded:
		event = &ModelUpgraded{}
	case EventListedStatusChanged:
		event = &ListedStatusChanged{}
	case EventLicensingParamsChanged:
		event = &LicensingParamsChanged{}
	case EventAgentRegistered:
		event = &AgentRegistered{}
	case EventLicensePurchased:
		event = &LicensePurchased{}
	case EventLicenseTransferred:
		event = &LicenseTransferred{}
	case EventLicenseRevoked:
		event = &LicenseRevoked{}
	case EventSplitConfigured:
		event = &SplitConfigured{}
	case EventPaymentRegistered:
		event = &PaymentRegistered{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSignature, name)
	}

	if err := json.Unmarshal(payload, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %w", name, err)
	}
	return event, nil
}
