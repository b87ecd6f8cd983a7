package schema

import "time"

// PendingPayment represents the pending_payments table - the append-only distribution queue.
// The split is snapshotted at registration so later re-configuration never changes queued payments.
type PendingPayment struct {
	// SequenceID is assigned monotonically at registration
	SequenceID uint64 `gorm:"column:sequence_id;primaryKey;autoIncrement"`
	// ModelID is the model the revenue belongs to
	ModelID uint64 `gorm:"column:model_id;not null;index:idx_pending_payments_model"`
	// Amount is the gross amount in the smallest payment-token unit
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// SourceTxHash is the idempotency key
	SourceTxHash string `gorm:"column:source_tx_hash;not null;type:text;uniqueIndex:idx_pending_payments_source_tx"`
	// SourceLogIndex is the ledger log that registered the payment, nil for payments registered through the API
	SourceLogIndex *uint64 `gorm:"column:source_log_index"`
	// Processed flips to true exactly once, via compare-and-set
	Processed   bool       `gorm:"column:processed;not null;default:false;index:idx_pending_payments_processed"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`

	Seller         string `gorm:"column:seller;not null;type:text"`
	Creator        string `gorm:"column:creator;not null;type:text"`
	Marketplace    string `gorm:"column:marketplace;not null;type:text"`
	RoyaltyBps     uint16 `gorm:"column:royalty_bps;not null"`
	MarketplaceBps uint16 `gorm:"column:marketplace_bps;not null"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the PendingPayment model
func (PendingPayment) TableName() string {
	return "pending_payments"
}
