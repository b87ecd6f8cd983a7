package schema

import "time"

// License represents the licenses table - licenses minted by the license registry contract
type License struct {
	// ChainID is the CAIP-2 chain identifier
	ChainID string `gorm:"column:chain_id;primaryKey;type:text;index:idx_licenses_owner_model,priority:1"`
	// LicenseID is the on-chain license id, issued sequentially
	LicenseID uint64 `gorm:"column:license_id;primaryKey;autoIncrement:false"`
	// ModelID is the licensed model
	ModelID uint64 `gorm:"column:model_id;not null;index:idx_licenses_owner_model,priority:3"`
	// Owner is the current license holder
	Owner string `gorm:"column:owner;not null;type:text;index:idx_licenses_owner_model,priority:2"`
	// Kind is perpetual or subscription
	Kind string `gorm:"column:kind;not null;type:text"`
	// Rights is the rights bitmask recorded at mint time (bit0 api, bit1 download)
	Rights uint8 `gorm:"column:rights;not null"`
	// MintedAt is the block time of the purchase
	MintedAt time.Time `gorm:"column:minted_at;not null"`
	// ExpiresAt is set only for subscriptions
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	// Transferable indicates whether the license may change hands
	Transferable bool `gorm:"column:transferable;not null;default:false"`
	// Revoked indicates the license was revoked by the registry
	Revoked bool `gorm:"column:revoked;not null;default:false"`
	// UpdatedBlock and UpdatedLogIndex are the ledger position of the last applied mutation
	UpdatedBlock    uint64    `gorm:"column:updated_block;not null"`
	UpdatedLogIndex uint64    `gorm:"column:updated_log_index;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the License model
func (License) TableName() string {
	return "licenses"
}
