package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// GetMetadataCache retrieves a metadata cache entry
func (s *pgStore) GetMetadataCache(ctx context.Context, entityID string) (*schema.MetadataCache, error) {
	var entry schema.MetadataCache
	err := s.db.WithContext(ctx).Where("entity_id = ?", entityID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get metadata cache: %w", err)
	}

	return &entry, nil
}

// UpsertMetadataCache writes a cache entry in a single statement so readers never see a partial row
func (s *pgStore) UpsertMetadataCache(ctx context.Context, entry *schema.MetadataCache) error {
	entry.CachedAt = entry.CachedAt.UTC()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_id"}},
		UpdateAll: true,
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert metadata cache: %w", err)
	}

	return nil
}

// SetMetadataCacheError records why the last refresh of an entry failed
func (s *pgStore) SetMetadataCacheError(ctx context.Context, entityID string, message string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.MetadataCache{}).
		Where("entity_id = ?", entityID).
		Update("last_error", message).Error
	if err != nil {
		return fmt.Errorf("failed to set metadata cache error: %w", err)
	}

	return nil
}

// ListExpiredMetadataCache returns entries past their TTL, oldest first.
// Expiry depends on a per-row TTL so it is evaluated after loading a window of the oldest rows.
func (s *pgStore) ListExpiredMetadataCache(ctx context.Context, now time.Time, limit int) ([]schema.MetadataCache, error) {
	var rows []schema.MetadataCache
	err := s.db.WithContext(ctx).
		Where("cached_at <= ?", now.UTC()).
		Order("cached_at ASC").
		Limit(limit * 4).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata cache: %w", err)
	}

	expired := make([]schema.MetadataCache, 0, limit)
	for _, row := range rows {
		if len(expired) == limit {
			break
		}
		if !row.ExpiresAt().After(now) {
			expired = append(expired, row)
		}
	}

	return expired, nil
}
