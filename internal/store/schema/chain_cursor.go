package schema

import "time"

// ChainCursor represents the chain_cursors table - the last fully processed block per (chain, stream)
type ChainCursor struct {
	// ChainID is the CAIP-2 chain identifier (e.g., "eip155:1")
	ChainID string `gorm:"column:chain_id;primaryKey;type:text"`
	// StreamName is the event stream tracked by this cursor (models, licenses, payments)
	StreamName string `gorm:"column:stream_name;primaryKey;type:text"`
	// LastBlock is the last block whose events are fully applied
	LastBlock uint64 `gorm:"column:last_block;not null"`
	// CreatedAt is the timestamp when the cursor was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when the cursor last moved
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the ChainCursor model
func (ChainCursor) TableName() string {
	return "chain_cursors"
}
