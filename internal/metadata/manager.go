package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/metrics"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
	"github.com/feral-file/ff-model-indexer/internal/uri"
)

// CacheEntry is a cached metadata document with its derived fields
type CacheEntry struct {
	EntityID    string          `json:"entity_id"`
	URI         string          `json:"uri"`
	Metadata    json.RawMessage `json:"metadata"`
	ContentHash string          `json:"content_hash"`
	Tags        []string        `json:"tags"`
	Categories  []string        `json:"categories"`
	ImageRef    *string         `json:"image_ref,omitempty"`
	CachedAt    time.Time       `json:"cached_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
	LastError   *string         `json:"last_error,omitempty"`
	// Stale is set when a refresh failed and the previous document is served
	Stale bool `json:"stale"`
}

// Config holds configuration for the cache manager
type Config struct {
	TTL          time.Duration
	FetchTimeout time.Duration
	// RefreshConcurrency bounds concurrent fetches in RefreshStale
	RefreshConcurrency int
}

// Manager keeps off-chain metadata documents cached in the store
//
//go:generate mockgen -source=manager.go -destination=../mocks/metadata_manager.go -package=mocks -mock_names=Manager=MockMetadataManager
type Manager interface {
	// EnsureCached returns a fresh entry for entityID, fetching uri when the cache is missing, expired or points elsewhere.
	// When the fetch fails and a previous entry exists, that entry is returned with Stale set alongside domain.ErrStaleMetadata.
	EnsureCached(ctx context.Context, entityID, uri string) (*CacheEntry, error)

	// RefreshStale refetches up to limit expired entries and returns how many were refreshed
	RefreshStale(ctx context.Context, limit int) (int, error)
}

type manager struct {
	store         store.Store
	fetcher       uri.Fetcher
	canonicalizer adapter.Canonicalizer
	clock         adapter.Clock
	config        Config
	group         singleflight.Group
}

// NewManager creates a new metadata cache manager
func NewManager(st store.Store, fetcher uri.Fetcher, canonicalizer adapter.Canonicalizer, clock adapter.Clock, config Config) Manager {
	if config.TTL <= 0 {
		config.TTL = time.Hour
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 10 * time.Second
	}
	if config.RefreshConcurrency <= 0 {
		config.RefreshConcurrency = 4
	}

	return &manager{
		store:         st,
		fetcher:       fetcher,
		canonicalizer: canonicalizer,
		clock:         clock,
		config:        config,
	}
}

// ModelEntityID returns the cache key of a model's metadata document
func ModelEntityID(chain domain.Chain, modelID uint64) string {
	return fmt.Sprintf("%s/model/%d", chain, modelID)
}

func (m *manager) EnsureCached(ctx context.Context, entityID, uri string) (*CacheEntry, error) {
	if entityID == "" || uri == "" {
		return nil, fmt.Errorf("entity id and uri are required")
	}

	existing, err := m.store.GetMetadataCache(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata cache: %w", err)
	}

	if existing != nil && existing.URI == uri && existing.ExpiresAt().After(m.clock.Now()) {
		return toCacheEntry(existing, false), nil
	}

	// the caller may go away while others wait on the same fetch
	result, err, _ := m.group.Do(flightKey(entityID, uri), func() (any, error) {
		return m.refresh(context.WithoutCancel(ctx), entityID, uri, existing)
	})
	if err != nil {
		var stale *staleError
		if errors.As(err, &stale) {
			return stale.entry, domain.ErrStaleMetadata
		}
		return nil, err
	}

	return result.(*CacheEntry), nil
}

// flightKey shares a fetch only between callers asking for the same document
func flightKey(entityID, uri string) string {
	return entityID + "|" + uri
}

func (m *manager) refresh(ctx context.Context, entityID, uri string, existing *schema.MetadataCache) (*CacheEntry, error) {
	entry, err := m.fetchAndStore(ctx, entityID, uri)
	if err == nil {
		metrics.Metadata().Fetch("ok")
		return entry, nil
	}

	if existing == nil {
		metrics.Metadata().Fetch("error")
		return nil, err
	}

	logger.WarnCtx(ctx, "Serving stale metadata", zap.String("entityID", entityID), zap.Error(err))
	metrics.Metadata().Fetch("stale")

	message := err.Error()
	if setErr := m.store.SetMetadataCacheError(ctx, entityID, message); setErr != nil {
		logger.ErrorCtx(ctx, setErr, zap.String("entityID", entityID))
	}
	existing.LastError = &message

	return nil, &staleError{entry: toCacheEntry(existing, true), cause: err}
}

func (m *manager) fetchAndStore(ctx context.Context, entityID, uri string) (*CacheEntry, error) {
	document, err := m.fetcher.Fetch(ctx, uri, m.config.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata: %w", err)
	}

	derived, err := Extract(document)
	if err != nil {
		return nil, err
	}

	contentHash, err := m.canonicalizer.Hash(json.RawMessage(document))
	if err != nil {
		return nil, fmt.Errorf("failed to hash metadata: %w", err)
	}

	tags, err := json.Marshal(derived.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	categories, err := json.Marshal(derived.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal categories: %w", err)
	}

	row := &schema.MetadataCache{
		EntityID:     entityID,
		URI:          uri,
		MetadataJSON: datatypes.JSON(document),
		ContentHash:  contentHash,
		Tags:         datatypes.JSON(tags),
		Categories:   datatypes.JSON(categories),
		ImageRef:     derived.ImageRef,
		CachedAt:     m.clock.Now().UTC(),
		TTLSeconds:   int64(m.config.TTL / time.Second),
	}
	if err := m.store.UpsertMetadataCache(ctx, row); err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Metadata cached", zap.String("entityID", entityID), zap.String("contentHash", contentHash))

	return toCacheEntry(row, false), nil
}

func (m *manager) RefreshStale(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	rows, err := m.store.ListExpiredMetadataCache(ctx, m.clock.Now(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired metadata: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	var refreshed atomic.Int32
	pool := pond.NewPool(m.config.RefreshConcurrency, pond.WithContext(ctx))
	for _, row := range rows {
		pool.Submit(func() {
			// the row is already known to be expired, skip the freshness check
			_, err, _ := m.group.Do(flightKey(row.EntityID, row.URI), func() (any, error) {
				return m.refresh(ctx, row.EntityID, row.URI, &row)
			})
			if err != nil {
				logger.DebugCtx(ctx, "Metadata refresh failed", zap.String("entityID", row.EntityID), zap.Error(err))
				return
			}
			refreshed.Add(1)
		})
	}
	pool.StopAndWait()

	logger.InfoCtx(ctx, "Refreshed stale metadata", zap.Int("candidates", len(rows)), zap.Int32("refreshed", refreshed.Load()))

	return int(refreshed.Load()), ctx.Err()
}

type staleError struct {
	entry *CacheEntry
	cause error
}

func (e *staleError) Error() string {
	return e.cause.Error()
}

func (e *staleError) Unwrap() error {
	return e.cause
}

func toCacheEntry(row *schema.MetadataCache, stale bool) *CacheEntry {
	entry := &CacheEntry{
		EntityID:    row.EntityID,
		URI:         row.URI,
		Metadata:    json.RawMessage(row.MetadataJSON),
		ContentHash: row.ContentHash,
		Tags:        decodeList(row.Tags),
		Categories:  decodeList(row.Categories),
		ImageRef:    row.ImageRef,
		CachedAt:    row.CachedAt,
		ExpiresAt:   row.ExpiresAt(),
		LastError:   row.LastError,
		Stale:       stale,
	}
	return entry
}

func decodeList(raw datatypes.JSON) []string {
	list := []string{}
	if len(raw) == 0 {
		return list
	}
	_ = json.Unmarshal(raw, &list)
	return list
}
