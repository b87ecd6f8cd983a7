package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/block"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBlockProviderMocks contains all the mocks needed for testing the block provider
type testBlockProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockBlockFetcher
	clock    *mocks.MockClock
	provider block.BlockProvider
}

func setupTest(t *testing.T, maxTimestamps int) *testBlockProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	provider := block.NewBlockProvider(mockFetcher, block.Config{
		TTL:           10 * time.Second,
		StaleWindow:   2 * time.Minute,
		MaxTimestamps: maxTimestamps,
	}, mockClock)

	return &testBlockProviderMocks{
		ctrl:     ctrl,
		fetcher:  mockFetcher,
		clock:    mockClock,
		provider: provider,
	}
}

func TestBlockProvider_GetLatestBlock_UsesCache_WithinTTL(t *testing.T) {
	tm := setupTest(t, 0)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	blockNum, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)

	// fetcher is called only once
	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))
	blockNum, err = tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestBlockProvider_GetLatestBlock_RefreshesCache_AfterTTL(t *testing.T) {
	tm := setupTest(t, 0)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(15 * time.Second))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1100), nil)

	blockNum, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), blockNum)
}

func TestBlockProvider_GetLatestBlock_StaleWindow(t *testing.T) {
	tm := setupTest(t, 0)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fetchError := errors.New("network error")

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	// beyond TTL but within the stale window
	tm.clock.EXPECT().Now().Return(now.Add(30 * time.Second))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), fetchError)
	blockNum, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)

	// beyond the stale window
	tm.clock.EXPECT().Now().Return(now.Add(3 * time.Minute))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), fetchError)
	_, err = tm.provider.GetLatestBlock(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchError)
}

func TestBlockProvider_GetLatestBlock_NoCache_FetchFails(t *testing.T) {
	tm := setupTest(t, 0)
	ctx := context.Background()

	tm.clock.EXPECT().Now().Return(time.Now())
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("network error"))

	_, err := tm.provider.GetLatestBlock(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch latest block and no valid cache available")
}

func TestBlockProvider_GetBlockTimestamp_CachesAndEvicts(t *testing.T) {
	tm := setupTest(t, 2)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1)).Return(base, nil).Times(2)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(2)).Return(base.Add(12*time.Second), nil)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(3)).Return(base.Add(24*time.Second), nil)

	ts, err := tm.provider.GetBlockTimestamp(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, base, ts)

	// cached
	ts, err = tm.provider.GetBlockTimestamp(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, base, ts)

	_, err = tm.provider.GetBlockTimestamp(ctx, 2)
	require.NoError(t, err)
	_, err = tm.provider.GetBlockTimestamp(ctx, 3)
	require.NoError(t, err)

	// block 1 was evicted by capacity and is fetched again
	ts, err = tm.provider.GetBlockTimestamp(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, base, ts)
}

func TestBlockProvider_GetBlockTimestamp_Error(t *testing.T) {
	tm := setupTest(t, 0)
	ctx := context.Background()

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(5)).Return(time.Time{}, errors.New("boom"))

	_, err := tm.provider.GetBlockTimestamp(ctx, 5)
	require.Error(t, err)
}
