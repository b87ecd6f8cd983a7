package schema

import (
	"time"

	"gorm.io/datatypes"
)

// DeferredEvent represents the deferred_events table - events observed before their parent entity
type DeferredEvent struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	ChainID     string         `gorm:"column:chain_id;not null;type:text;uniqueIndex:idx_deferred_events_position,priority:1"`
	StreamName  string         `gorm:"column:stream_name;not null;type:text"`
	EventName   string         `gorm:"column:event_name;not null;type:text"`
	ModelID     *uint64        `gorm:"column:model_id;index:idx_deferred_events_model"`
	LicenseID   *uint64        `gorm:"column:license_id;index:idx_deferred_events_license"`
	BlockNumber uint64         `gorm:"column:block_number;not null"`
	LogIndex    uint64         `gorm:"column:log_index;not null;uniqueIndex:idx_deferred_events_position,priority:3"`
	TxHash      string         `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_deferred_events_position,priority:2"`
	Reason      string         `gorm:"column:reason;not null;type:text"`
	// Attempts counts replays that left the event parked
	Attempts    uint32         `gorm:"column:attempts;not null;default:0"`
	Payload     datatypes.JSON `gorm:"column:payload;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the DeferredEvent model
func (DeferredEvent) TableName() string {
	return "deferred_events"
}
