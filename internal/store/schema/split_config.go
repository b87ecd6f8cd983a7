package schema

import "time"

// SplitConfig represents the split_configs table - payout shares per model
type SplitConfig struct {
	// ModelID is the revenue-bearing model
	ModelID uint64 `gorm:"column:model_id;primaryKey;autoIncrement:false"`
	// Seller receives the remainder after royalty and marketplace shares
	Seller string `gorm:"column:seller;not null;type:text"`
	// Creator receives RoyaltyBps of each payment
	Creator string `gorm:"column:creator;not null;type:text"`
	// Marketplace receives MarketplaceBps of each payment
	Marketplace    string `gorm:"column:marketplace;not null;type:text"`
	RoyaltyBps     uint16 `gorm:"column:royalty_bps;not null"`
	MarketplaceBps uint16 `gorm:"column:marketplace_bps;not null"`
	// PayoutAddress is the deterministic splitter address predicted for the model
	PayoutAddress string `gorm:"column:payout_address;not null;type:text"`
	// ReconfiguredCount counts explicit re-configurations
	ReconfiguredCount int       `gorm:"column:reconfigured_count;not null;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the SplitConfig model
func (SplitConfig) TableName() string {
	return "split_configs"
}

// SellerBps returns the share left to the seller
func (s *SplitConfig) SellerBps() uint16 {
	return 10_000 - s.RoyaltyBps - s.MarketplaceBps
}
