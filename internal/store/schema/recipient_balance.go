package schema

import "time"

// RecipientBalance represents the recipient_balances table - withdrawable balance per address
type RecipientBalance struct {
	// Address is the recipient
	Address string `gorm:"column:address;primaryKey;type:text"`
	// AccumulatedBalance is never negative
	AccumulatedBalance string `gorm:"column:accumulated_balance;not null;type:numeric(78,0)"`
	// Version is bumped on every change and used for compare-and-set updates
	Version   uint64    `gorm:"column:version;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the RecipientBalance model
func (RecipientBalance) TableName() string {
	return "recipient_balances"
}
