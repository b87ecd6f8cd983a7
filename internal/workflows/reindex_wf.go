package workflows

import (
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-model-indexer/internal/logger"
)

// ReindexModel refreshes a model from the ledger and warms its metadata
func (w *workerCore) ReindexModel(ctx workflow.Context, request ReindexRequest) (*ReindexResult, error) {
	logger.InfoWf(ctx, "Reindexing model",
		zap.String("chain", string(request.Chain)),
		zap.Uint64("modelID", request.ModelID))

	reindexCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ReindexTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: w.config.MaxAttempts,
		},
	})

	var snapshot *ModelSnapshot
	err := workflow.ExecuteActivity(reindexCtx, w.executor.StoreLedgerModel, request.Chain, request.ModelID).Get(ctx, &snapshot)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to reindex model: %w", err), zap.Uint64("modelID", request.ModelID))
		return nil, err
	}

	result := &ReindexResult{Model: snapshot}
	if snapshot == nil || snapshot.URI == "" {
		return result, nil
	}

	// The model row is already committed, a metadata failure is reported but not fatal
	metadataCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.MetadataTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: w.config.MaxAttempts,
		},
	})
	var cached bool
	err = workflow.ExecuteActivity(metadataCtx, w.executor.WarmModelMetadata, request.Chain, request.ModelID, snapshot.URI).Get(ctx, &cached)
	if err != nil {
		logger.WarnWf(ctx, "Failed to warm model metadata (non-fatal)",
			zap.Uint64("modelID", request.ModelID),
			zap.Error(err))
		return result, nil
	}
	result.MetadataCached = cached

	logger.InfoWf(ctx, "Model reindexed",
		zap.Uint64("modelID", request.ModelID),
		zap.Uint64("version", snapshot.Version),
		zap.Bool("metadataCached", cached))

	return result, nil
}
