package schema

import "time"

// WithdrawalStatus is the payout state of a withdrawal
type WithdrawalStatus string

const (
	// WithdrawalStatusPending means the balance was debited and the payout transaction is not sent yet
	WithdrawalStatusPending WithdrawalStatus = "pending"
	// WithdrawalStatusCompleted means the balance was debited and no on-chain payout is required
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	// WithdrawalStatusSubmitted means the payout transaction was sent
	WithdrawalStatusSubmitted WithdrawalStatus = "submitted"
	// WithdrawalStatusFailed means the payout failed and the amount was re-credited
	WithdrawalStatusFailed WithdrawalStatus = "failed"
)

// Withdrawal represents the withdrawals table - audit trail of debits
type Withdrawal struct {
	ID        uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	Address   string           `gorm:"column:address;not null;type:text;index:idx_withdrawals_address"`
	Amount    string           `gorm:"column:amount;not null;type:numeric(78,0)"`
	Status    WithdrawalStatus `gorm:"column:status;not null;type:text;index:idx_withdrawals_status"`
	TxHash    *string          `gorm:"column:tx_hash;type:text"`
	Error     *string          `gorm:"column:error;type:text"`
	CreatedAt time.Time        `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the Withdrawal model
func (Withdrawal) TableName() string {
	return "withdrawals"
}
