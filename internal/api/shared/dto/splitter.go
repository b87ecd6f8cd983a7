package dto

import (
	"time"

	"github.com/feral-file/ff-model-indexer/internal/splitter"
)

// SplitterResponse is the payout state of a model
type SplitterResponse struct {
	ModelID           uint64            `json:"model_id"`
	Seller            string            `json:"seller"`
	Creator           string            `json:"creator"`
	Marketplace       string            `json:"marketplace"`
	SellerBps         uint16            `json:"seller_bps"`
	RoyaltyBps        uint16            `json:"royalty_bps"`
	MarketplaceBps    uint16            `json:"marketplace_bps"`
	PayoutAddress     string            `json:"payout_address"`
	ReconfiguredCount int               `json:"reconfigured_count"`
	Balances          map[string]string `json:"balances"`
	PendingPayments   int64             `json:"pending_payments"`
	ProcessedPayments int64             `json:"processed_payments"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// MapSplitterStatusToDTO maps a splitter status to a response
func MapSplitterStatusToDTO(status *splitter.Status) *SplitterResponse {
	config := status.Config
	return &SplitterResponse{
		ModelID:           config.ModelID,
		Seller:            config.Seller,
		Creator:           config.Creator,
		Marketplace:       config.Marketplace,
		SellerBps:         config.SellerBps(),
		RoyaltyBps:        config.RoyaltyBps,
		MarketplaceBps:    config.MarketplaceBps,
		PayoutAddress:     status.PayoutAddress,
		ReconfiguredCount: config.ReconfiguredCount,
		Balances:          status.Balances,
		PendingPayments:   status.Pending,
		ProcessedPayments: status.Processed,
		UpdatedAt:         config.UpdatedAt,
	}
}

// PayoutAddressResponse is the deterministic splitter address of a model
type PayoutAddressResponse struct {
	ModelID       uint64 `json:"model_id"`
	PayoutAddress string `json:"payout_address"`
	// Configured tells whether a split exists for the model yet
	Configured bool `json:"configured"`
}

// RegisterPaymentResponse is returned when a payment is queued
type RegisterPaymentResponse struct {
	SequenceID uint64 `json:"sequence_id"`
}

// ProcessPaymentsResponse summarizes a queue processing pass
type ProcessPaymentsResponse struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// WithdrawResponse is the amount withdrawn from an address
type WithdrawResponse struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}
