package dto

// ConfigureSplitRequest configures or re-configures the split of a model
type ConfigureSplitRequest struct {
	Seller         string `json:"seller" binding:"required"`
	Creator        string `json:"creator" binding:"required"`
	RoyaltyBps     uint16 `json:"royalty_bps"`
	MarketplaceBps uint16 `json:"marketplace_bps"`
	// Reconfigure must be set to replace an existing split
	Reconfigure bool `json:"reconfigure"`
}

// RegisterPaymentRequest enqueues a payment for distribution
type RegisterPaymentRequest struct {
	ModelID      string `json:"model_id" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	SourceTxHash string `json:"source_tx_hash" binding:"required"`
}

// ProcessPaymentsRequest bounds a queue processing pass
type ProcessPaymentsRequest struct {
	Limit int `json:"limit"`
}

// ResetCursorRequest moves a stream cursor to any block
type ResetCursorRequest struct {
	LastBlock *uint64 `json:"last_block" binding:"required"`
	Confirm   bool    `json:"confirm"`
}
