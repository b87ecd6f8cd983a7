package metadata_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/mocks"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/testutil"
)

const modelURI = "ipfs://QmModel"

var document = []byte(`{"name":"sentiment-v2","keywords":["nlp","text"],"category":"classification","image_url":"ipfs://QmImage"}`)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testManagerMocks struct {
	ctrl    *gomock.Controller
	store   store.Store
	fetcher *mocks.MockFetcher
	clock   *mocks.MockClock
	now     time.Time
	mu      sync.Mutex
	manager metadata.Manager
}

func (tm *testManagerMocks) advance(d time.Duration) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.now = tm.now.Add(d)
}

func setupManager(t *testing.T) *testManagerMocks {
	ctrl := gomock.NewController(t)
	tm := &testManagerMocks{
		ctrl:    ctrl,
		store:   testutil.OpenSQLiteStore(t),
		fetcher: mocks.NewMockFetcher(ctrl),
		clock:   mocks.NewMockClock(ctrl),
		now:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	tm.clock.EXPECT().Now().DoAndReturn(func() time.Time {
		tm.mu.Lock()
		defer tm.mu.Unlock()
		return tm.now
	}).AnyTimes()

	tm.manager = metadata.NewManager(tm.store, tm.fetcher, adapter.NewCanonicalizer(), tm.clock, metadata.Config{
		TTL:          time.Hour,
		FetchTimeout: time.Second,
	})
	return tm
}

func TestEnsureCached_FetchesAndDerives(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, time.Second).Return(document, nil)

	entityID := metadata.ModelEntityID(domain.ChainEthereumMainnet, 3)
	entry, err := tm.manager.EnsureCached(context.Background(), entityID, modelURI)
	require.NoError(t, err)

	assert.Equal(t, "eip155:1/model/3", entry.EntityID)
	assert.Equal(t, []string{"nlp", "text"}, entry.Tags)
	assert.Equal(t, []string{"classification"}, entry.Categories)
	require.NotNil(t, entry.ImageRef)
	assert.Equal(t, "ipfs://QmImage", *entry.ImageRef)
	assert.False(t, entry.Stale)

	expectedHash, err := adapter.NewCanonicalizer().Hash(document)
	require.NoError(t, err)
	assert.Equal(t, expectedHash, entry.ContentHash)

	row, err := tm.store.GetMetadataCache(context.Background(), entityID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, expectedHash, row.ContentHash)
	assert.Equal(t, int64(3600), row.TTLSeconds)
}

func TestEnsureCached_FreshEntryIsNotRefetched(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).Return(document, nil).Times(1)

	_, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
	require.NoError(t, err)

	tm.advance(30 * time.Minute)
	entry, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
	require.NoError(t, err)
	assert.False(t, entry.Stale)
}

func TestEnsureCached_ChangedURIRefetches(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	upgraded := []byte(`{"name":"sentiment-v3","tags":["nlp"]}`)
	tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).Return(document, nil)
	tm.fetcher.EXPECT().Fetch(gomock.Any(), "ipfs://QmModelV3", gomock.Any()).Return(upgraded, nil)

	first, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
	require.NoError(t, err)
	second, err := tm.manager.EnsureCached(context.Background(), "model-3", "ipfs://QmModelV3")
	require.NoError(t, err)

	assert.NotEqual(t, first.ContentHash, second.ContentHash)
	assert.Equal(t, []string{"nlp"}, second.Tags)
	assert.Equal(t, []string{}, second.Categories)
	assert.Nil(t, second.ImageRef)
}

func TestEnsureCached_ServesStaleOnFailure(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	gomock.InOrder(
		tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).Return(document, nil),
		tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).Return(nil, errors.New("gateway timeout")),
	)

	original, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
	require.NoError(t, err)

	tm.advance(2 * time.Hour)
	entry, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
	require.ErrorIs(t, err, domain.ErrStaleMetadata)
	require.NotNil(t, entry)
	assert.True(t, entry.Stale)
	assert.Equal(t, original.ContentHash, entry.ContentHash)
	require.NotNil(t, entry.LastError)
	assert.Contains(t, *entry.LastError, "gateway timeout")

	row, err := tm.store.GetMetadataCache(context.Background(), "model-3")
	require.NoError(t, err)
	require.NotNil(t, row.LastError)
	assert.Contains(t, *row.LastError, "gateway timeout")
}

func TestEnsureCached_HashFailureKeepsCachedDocument(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	canonical := mocks.NewMockCanonicalizer(tm.ctrl)
	manager := metadata.NewManager(tm.store, tm.fetcher, canonical, tm.clock, metadata.Config{
		TTL:          time.Hour,
		FetchTimeout: time.Second,
	})

	tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).Return(document, nil).Times(2)
	gomock.InOrder(
		canonical.EXPECT().Hash(gomock.Any()).Return("cafe", nil),
		canonical.EXPECT().Hash(gomock.Any()).Return("", errors.New("invalid utf-8")),
	)

	_, err := manager.EnsureCached(context.Background(), "model-3", modelURI)
	require.NoError(t, err)

	tm.advance(2 * time.Hour)
	entry, err := manager.EnsureCached(context.Background(), "model-3", modelURI)
	require.ErrorIs(t, err, domain.ErrStaleMetadata)
	require.NotNil(t, entry)
	assert.Equal(t, "cafe", entry.ContentHash)
	require.NotNil(t, entry.LastError)
	assert.Contains(t, *entry.LastError, "failed to hash metadata")
}

func TestEnsureCached_FailureWithoutEntry(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	fetchErr := errors.New("gateway timeout")
	tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).Return(nil, fetchErr)

	entry, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, fetchErr)
	assert.NotErrorIs(t, err, domain.ErrStaleMetadata)
}

func TestEnsureCached_InvalidDocument(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).Return([]byte(`[1,2`), nil)

	_, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
	assert.Error(t, err)

	_, err = tm.manager.EnsureCached(context.Background(), "", modelURI)
	assert.Error(t, err)
}

func TestEnsureCached_SingleFlight(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	release := make(chan struct{})
	var calls atomic.Int32
	tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).
		DoAndReturn(func(ctx context.Context, uri string, timeout time.Duration) ([]byte, error) {
			calls.Add(1)
			<-release
			return document, nil
		}).
		MinTimes(1)

	var wg sync.WaitGroup
	results := make([]*metadata.CacheEntry, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
			assert.NoError(t, err)
			results[i] = entry
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	// late callers may see the committed row instead of joining the flight
	assert.LessOrEqual(t, calls.Load(), int32(len(results)))
	for _, entry := range results {
		require.NotNil(t, entry)
		assert.Equal(t, results[0].ContentHash, entry.ContentHash)
	}
}

func TestEnsureCached_NewURIDoesNotJoinOldFetch(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	const newURI = "ipfs://QmModelV2"
	newDocument := []byte(`{"name":"sentiment-v3","keywords":["nlp"]}`)

	started := make(chan struct{})
	release := make(chan struct{})
	tm.fetcher.EXPECT().Fetch(gomock.Any(), modelURI, gomock.Any()).
		DoAndReturn(func(ctx context.Context, uri string, timeout time.Duration) ([]byte, error) {
			close(started)
			<-release
			return document, nil
		})
	tm.fetcher.EXPECT().Fetch(gomock.Any(), newURI, gomock.Any()).Return(newDocument, nil)

	oldDone := make(chan struct{})
	go func() {
		defer close(oldDone)
		_, err := tm.manager.EnsureCached(context.Background(), "model-3", modelURI)
		assert.NoError(t, err)
	}()
	<-started

	newEntry := make(chan *metadata.CacheEntry, 1)
	go func() {
		entry, err := tm.manager.EnsureCached(context.Background(), "model-3", newURI)
		assert.NoError(t, err)
		newEntry <- entry
	}()

	select {
	case entry := <-newEntry:
		require.NotNil(t, entry)
		expectedHash, err := adapter.NewCanonicalizer().Hash(newDocument)
		require.NoError(t, err)
		assert.Equal(t, expectedHash, entry.ContentHash)
		assert.Equal(t, newURI, entry.URI)
	case <-time.After(5 * time.Second):
		t.Fatal("fetch of the new uri waited on the old one")
	}

	close(release)
	<-oldDone
}

func TestRefreshStale(t *testing.T) {
	tm := setupManager(t)
	defer tm.ctrl.Finish()

	tm.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(document, nil).Times(2)
	_, err := tm.manager.EnsureCached(context.Background(), "model-1", "ipfs://QmOne")
	require.NoError(t, err)
	_, err = tm.manager.EnsureCached(context.Background(), "model-2", "ipfs://QmTwo")
	require.NoError(t, err)

	refreshed, err := tm.manager.RefreshStale(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, refreshed)

	tm.advance(2 * time.Hour)
	tm.fetcher.EXPECT().Fetch(gomock.Any(), "ipfs://QmOne", gomock.Any()).Return(document, nil)
	tm.fetcher.EXPECT().Fetch(gomock.Any(), "ipfs://QmTwo", gomock.Any()).Return(nil, errors.New("not found"))

	refreshed, err = tm.manager.RefreshStale(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed)

	row, err := tm.store.GetMetadataCache(context.Background(), "model-1")
	require.NoError(t, err)
	assert.True(t, row.CachedAt.Equal(tm.now))
	assert.Nil(t, row.LastError)

	row, err = tm.store.GetMetadataCache(context.Background(), "model-2")
	require.NoError(t, err)
	require.NotNil(t, row.LastError)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		tags       []string
		categories []string
		image      *string
	}{
		{
			name:       "primary keys",
			doc:        `{"tags":["a","b"],"categories":["x"],"image":"ipfs://img"}`,
			tags:       []string{"a", "b"},
			categories: []string{"x"},
			image:      strPtr("ipfs://img"),
		},
		{
			name:       "fallback keys",
			doc:        `{"keywords":"a, b","category":"x","imageUrl":"https://img"}`,
			tags:       []string{"a", "b"},
			categories: []string{"x"},
			image:      strPtr("https://img"),
		},
		{
			name:       "empty tags fall through",
			doc:        `{"tags":[],"keywords":["k"]}`,
			tags:       []string{"k"},
			categories: []string{},
		},
		{
			name:       "nothing derived",
			doc:        `{"name":"plain"}`,
			tags:       []string{},
			categories: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived, err := metadata.Extract([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.tags, derived.Tags)
			assert.Equal(t, tt.categories, derived.Categories)
			assert.Equal(t, tt.image, derived.ImageRef)
		})
	}

	_, err := metadata.Extract([]byte(`"just a string"`))
	assert.Error(t, err)
}

func strPtr(s string) *string {
	return &s
}
