package schema

import "time"

// Agent represents the agents table - agents registered against a model
type Agent struct {
	ChainID   string    `gorm:"column:chain_id;primaryKey;type:text"`
	AgentID   uint64    `gorm:"column:agent_id;primaryKey;autoIncrement:false"`
	ModelID   uint64    `gorm:"column:model_id;not null;index:idx_agents_model"`
	Owner     string    `gorm:"column:owner;not null;type:text"`
	URI       string    `gorm:"column:uri;not null;type:text"`
	BlockNum  uint64    `gorm:"column:block_number;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the Agent model
func (Agent) TableName() string {
	return "agents"
}
