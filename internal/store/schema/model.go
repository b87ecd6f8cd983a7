package schema

import "time"

// Model represents the models table - a listed model mirrored from the model registry contract
type Model struct {
	// ChainID is the CAIP-2 chain identifier
	ChainID string `gorm:"column:chain_id;primaryKey;type:text"`
	// ModelID is the on-chain model id
	ModelID uint64 `gorm:"column:model_id;primaryKey;autoIncrement:false"`
	// Owner is the current owner (seller) address
	Owner string `gorm:"column:owner;not null;type:text;index:idx_models_owner"`
	// Creator is the original creator address, receiver of royalties
	Creator string `gorm:"column:creator;not null;type:text"`
	// Listed indicates whether the model is currently offered for licensing
	Listed bool `gorm:"column:listed;not null;default:true"`
	// URI points to the off-chain metadata document
	URI string `gorm:"column:uri;not null;type:text"`
	// Version is strictly increasing per model
	Version uint64 `gorm:"column:version;not null"`
	// PricePerpetual is the perpetual license price in the smallest payment-token unit
	PricePerpetual string `gorm:"column:price_perpetual;not null;type:numeric(78,0)"`
	// PriceSubscription is the subscription license price
	PriceSubscription string `gorm:"column:price_subscription;not null;type:numeric(78,0)"`
	// PriceInference is the pay-per-use price
	PriceInference string `gorm:"column:price_inference;not null;type:numeric(78,0)"`
	// RoyaltyBps is the creator royalty in basis points
	RoyaltyBps uint16 `gorm:"column:royalty_bps;not null"`
	// DeliveryRights is the delivery rights bitmask offered with licenses
	DeliveryRights uint8 `gorm:"column:delivery_rights;not null"`
	// DeliveryMode is the on-chain delivery mode enum
	DeliveryMode uint8 `gorm:"column:delivery_mode;not null"`
	// TermsHash is the hash of the license terms document
	TermsHash string `gorm:"column:terms_hash;not null;type:text"`
	// AgentID is the agent registered for this model, if any
	AgentID *uint64 `gorm:"column:agent_id"`
	// UpdatedBlock and UpdatedLogIndex are the ledger position of the last applied mutation
	UpdatedBlock    uint64 `gorm:"column:updated_block;not null"`
	UpdatedLogIndex uint64 `gorm:"column:updated_log_index;not null"`
	// CreatedAt is the timestamp when this record was first indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the Model model
func (Model) TableName() string {
	return "models"
}
