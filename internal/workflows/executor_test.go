package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/mocks"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
	"github.com/feral-file/ff-model-indexer/internal/workflows"
)

type testExecutorMocks struct {
	ctrl       *gomock.Controller
	reconciler *mocks.MockReconciler
	metadata   *mocks.MockMetadataManager
	executor   workflows.Executor
}

func setupExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		ctrl:       ctrl,
		reconciler: mocks.NewMockReconciler(ctrl),
		metadata:   mocks.NewMockMetadataManager(ctrl),
	}
	tm.executor = workflows.NewExecutor(tm.reconciler, tm.metadata)
	return tm
}

func TestStoreLedgerModel(t *testing.T) {
	ctx := context.Background()
	tm := setupExecutor(t)
	defer tm.ctrl.Finish()

	tm.reconciler.EXPECT().ReindexModel(gomock.Any(), chain, uint64(4)).Return(&schema.Model{
		ChainID: string(chain), ModelID: 4, Version: 2, URI: "ipfs://QmDoc", Listed: true,
		Owner: "0x1111111111111111111111111111111111111111",
	}, nil)

	snapshot, err := tm.executor.StoreLedgerModel(ctx, chain, 4)
	require.NoError(t, err)
	assert.Equal(t, &workflows.ModelSnapshot{
		Chain: chain, ModelID: 4, Version: 2, URI: "ipfs://QmDoc", Listed: true,
		Owner: "0x1111111111111111111111111111111111111111",
	}, snapshot)
}

func TestStoreLedgerModel_NonRetryableErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "model not found", err: domain.ErrModelNotFound},
		{name: "unknown chain", err: domain.ErrUnknownStream},
		{name: "transient", err: errors.New("rpc unavailable"), retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupExecutor(t)
			defer tm.ctrl.Finish()

			tm.reconciler.EXPECT().ReindexModel(gomock.Any(), chain, uint64(4)).Return(nil, tt.err)

			_, err := tm.executor.StoreLedgerModel(context.Background(), chain, 4)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var appErr *temporal.ApplicationError
			if tt.retryable {
				assert.False(t, errors.As(err, &appErr))
			} else {
				require.True(t, errors.As(err, &appErr))
				assert.True(t, appErr.NonRetryable())
			}
		})
	}
}

func TestWarmModelMetadata(t *testing.T) {
	ctx := context.Background()
	entityID := metadata.ModelEntityID(chain, 4)

	t.Run("fresh", func(t *testing.T) {
		tm := setupExecutor(t)
		defer tm.ctrl.Finish()

		tm.metadata.EXPECT().EnsureCached(gomock.Any(), entityID, "ipfs://QmDoc").Return(&metadata.CacheEntry{EntityID: entityID}, nil)

		cached, err := tm.executor.WarmModelMetadata(ctx, chain, 4, "ipfs://QmDoc")
		require.NoError(t, err)
		assert.True(t, cached)
	})

	t.Run("stale", func(t *testing.T) {
		tm := setupExecutor(t)
		defer tm.ctrl.Finish()

		tm.metadata.EXPECT().EnsureCached(gomock.Any(), entityID, "ipfs://QmDoc").
			Return(&metadata.CacheEntry{EntityID: entityID, Stale: true}, domain.ErrStaleMetadata)

		cached, err := tm.executor.WarmModelMetadata(ctx, chain, 4, "ipfs://QmDoc")
		require.NoError(t, err)
		assert.False(t, cached)
	})

	t.Run("failure", func(t *testing.T) {
		tm := setupExecutor(t)
		defer tm.ctrl.Finish()

		tm.metadata.EXPECT().EnsureCached(gomock.Any(), entityID, "ipfs://QmDoc").Return(nil, errors.New("all gateways failed"))

		_, err := tm.executor.WarmModelMetadata(ctx, chain, 4, "ipfs://QmDoc")
		assert.Error(t, err)
	})

	t.Run("empty uri", func(t *testing.T) {
		tm := setupExecutor(t)
		defer tm.ctrl.Finish()

		cached, err := tm.executor.WarmModelMetadata(ctx, chain, 4, "")
		require.NoError(t, err)
		assert.False(t, cached)
	})
}
