package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MetadataCache represents the metadata_cache table - fetched off-chain metadata keyed by entity
type MetadataCache struct {
	// EntityID identifies the cached entity (e.g., "eip155:1/model/3")
	EntityID string `gorm:"column:entity_id;primaryKey;type:text"`
	// URI is the source the document was fetched from
	URI string `gorm:"column:uri;not null;type:text"`
	// MetadataJSON is the raw document
	MetadataJSON datatypes.JSON `gorm:"column:metadata_json"`
	// ContentHash is the sha256 of the canonical JSON form
	ContentHash string `gorm:"column:content_hash;not null;type:text"`
	// Tags, Categories and ImageRef are derived from the document
	Tags       datatypes.JSON `gorm:"column:tags"`
	Categories datatypes.JSON `gorm:"column:categories"`
	ImageRef   *string        `gorm:"column:image_ref;type:text"`
	// CachedAt is when the document was fetched
	CachedAt time.Time `gorm:"column:cached_at;not null;index:idx_metadata_cache_cached_at"`
	// TTLSeconds is how long the entry is fresh after CachedAt
	TTLSeconds int64 `gorm:"column:ttl_seconds;not null"`
	// LastError is the last refresh failure, cleared on success
	LastError *string `gorm:"column:last_error;type:text"`
}

// TableName specifies the table name for the MetadataCache model
func (MetadataCache) TableName() string {
	return "metadata_cache"
}

// ExpiresAt returns when the entry stops being fresh
func (m *MetadataCache) ExpiresAt() time.Time {
	return m.CachedAt.Add(time.Duration(m.TTLSeconds) * time.Second)
}
