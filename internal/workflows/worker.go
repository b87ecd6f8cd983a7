package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-model-indexer/internal/domain"
)

// WorkerCore defines the workflows executed by the worker
type WorkerCore interface {
	// ReindexModel refreshes a single model from the ledger, then warms its metadata cache
	ReindexModel(ctx workflow.Context, request ReindexRequest) (*ReindexResult, error)
}

// ReindexRequest is the input of the ReindexModel workflow
type ReindexRequest struct {
	Chain   domain.Chain `json:"chain"`
	ModelID uint64       `json:"model_id"`
}

// ReindexResult is the output of the ReindexModel workflow
type ReindexResult struct {
	Model *ModelSnapshot `json:"model"`
	// MetadataCached is false when the metadata step failed or served a stale document
	MetadataCached bool `json:"metadata_cached"`
}

type WorkerCoreConfig struct {
	// ReindexTimeout bounds the ledger read and store write
	ReindexTimeout time.Duration
	// MetadataTimeout bounds the metadata fetch, gateways can be slow
	MetadataTimeout time.Duration
	// MaxAttempts is the retry budget of each activity
	MaxAttempts int32
}

type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if config.ReindexTimeout <= 0 {
		config.ReindexTimeout = 2 * time.Minute
	}
	if config.MetadataTimeout <= 0 {
		config.MetadataTimeout = 5 * time.Minute
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	return &workerCore{
		executor: executor,
		config:   config,
	}
}

// ReindexWorkflowID returns the workflow id prefix for a model reindex
func ReindexWorkflowID(chain domain.Chain, modelID uint64) string {
	return fmt.Sprintf("reindex-model-%s-%d", chain, modelID)
}
