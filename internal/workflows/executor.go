package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/reconciler"
)

const (
	// errTypeModelNotFound is the application error type for models missing on the ledger
	errTypeModelNotFound = "ModelNotFound"
	// errTypeUnknownChain is the application error type for chains this worker does not reconcile
	errTypeUnknownChain = "UnknownChain"
)

// Executor defines the activities used by the worker workflows
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_core.go -package=mocks -mock_names=Executor=MockCoreExecutor
type Executor interface {
	// StoreLedgerModel reads the model from the ledger at the current head and stores it
	StoreLedgerModel(ctx context.Context, chain domain.Chain, modelID uint64) (*ModelSnapshot, error)

	// WarmModelMetadata fetches and caches the metadata document of a model.
	// Returns true when the cached entry is fresh.
	WarmModelMetadata(ctx context.Context, chain domain.Chain, modelID uint64, uri string) (bool, error)
}

// ModelSnapshot is the activity result of a reindex, kept small for workflow history
type ModelSnapshot struct {
	Chain   domain.Chain `json:"chain"`
	ModelID uint64       `json:"model_id"`
	Version uint64       `json:"version"`
	URI     string       `json:"uri"`
	Listed  bool         `json:"listed"`
	Owner   string       `json:"owner"`
}

type executor struct {
	reconciler reconciler.Reconciler
	metadata   metadata.Manager
}

// NewExecutor creates a new executor instance
func NewExecutor(rec reconciler.Reconciler, metadataManager metadata.Manager) Executor {
	return &executor{
		reconciler: rec,
		metadata:   metadataManager,
	}
}

func (e *executor) StoreLedgerModel(ctx context.Context, chain domain.Chain, modelID uint64) (*ModelSnapshot, error) {
	model, err := e.reconciler.ReindexModel(ctx, chain, modelID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrModelNotFound):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), errTypeModelNotFound, err)
		case errors.Is(err, domain.ErrUnknownStream):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), errTypeUnknownChain, err)
		}
		return nil, fmt.Errorf("failed to reindex model: %w", err)
	}

	return &ModelSnapshot{
		Chain:   chain,
		ModelID: model.ModelID,
		Version: model.Version,
		URI:     model.URI,
		Listed:  model.Listed,
		Owner:   model.Owner,
	}, nil
}

func (e *executor) WarmModelMetadata(ctx context.Context, chain domain.Chain, modelID uint64, uri string) (bool, error) {
	if uri == "" {
		return false, nil
	}

	_, err := e.metadata.EnsureCached(ctx, metadata.ModelEntityID(chain, modelID), uri)
	if err != nil {
		if errors.Is(err, domain.ErrStaleMetadata) {
			logger.WarnCtx(ctx, "Serving stale model metadata", zap.Uint64("modelID", modelID), zap.Error(err))
			return false, nil
		}
		return false, fmt.Errorf("failed to cache model metadata: %w", err)
	}

	return true, nil
}
