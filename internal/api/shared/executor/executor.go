package executor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-model-indexer/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-model-indexer/internal/api/shared/errors"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/entitlement"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/providers/temporal"
	"github.com/feral-file/ff-model-indexer/internal/splitter"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/workflows"
)

const (
	defaultProcessLimit = 100
	maxProcessLimit     = 1000
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetModel retrieves a model with its cached metadata, nil when the model is unknown
	GetModel(ctx context.Context, chain domain.Chain, modelID string) (*dto.ModelResponse, error)

	// GetEntitlement resolves the entitlement of an address on a model
	GetEntitlement(ctx context.Context, chain domain.Chain, modelID string, address string) (*domain.Entitlement, error)

	// GetSplitter retrieves the split, balances and queue counters of a model
	GetSplitter(ctx context.Context, modelID string) (*dto.SplitterResponse, error)

	// GetPayoutAddress predicts the splitter address of a model
	GetPayoutAddress(ctx context.Context, modelID string) (*dto.PayoutAddressResponse, error)

	// TriggerReindex starts a ReindexModel workflow
	TriggerReindex(ctx context.Context, chain domain.Chain, modelID string) (*dto.TriggerReindexResponse, error)

	// ConfigureSplit configures or re-configures the split of a model
	ConfigureSplit(ctx context.Context, modelID string, req *dto.ConfigureSplitRequest) (*dto.SplitterResponse, error)

	// RegisterPayment enqueues a payment
	RegisterPayment(ctx context.Context, req *dto.RegisterPaymentRequest) (*dto.RegisterPaymentResponse, error)

	// ProcessPayments distributes queued payments
	ProcessPayments(ctx context.Context, limit int) (*dto.ProcessPaymentsResponse, error)

	// Withdraw zeroes the balance of an address
	Withdraw(ctx context.Context, address string) (*dto.WithdrawResponse, error)

	// ListCursors lists every stream cursor
	ListCursors(ctx context.Context) (*dto.CursorListResponse, error)

	// ResetCursor moves a stream cursor, backwards included
	ResetCursor(ctx context.Context, chain domain.Chain, stream domain.Stream, req *dto.ResetCursorRequest) (*dto.CursorResponse, error)
}

// Config holds the executor configuration
type Config struct {
	// Chain is the chain reconciled by this deployment
	Chain                 domain.Chain
	OrchestratorTaskQueue string
	ReindexTimeout        time.Duration
}

type executor struct {
	store        store.Store
	resolver     entitlement.Resolver
	splitter     splitter.Registry
	metadata     metadata.Manager
	orchestrator temporal.TemporalOrchestrator
	config       Config
}

// NewExecutor creates the API executor. metadataManager may be nil to serve raw model fields only.
func NewExecutor(
	st store.Store,
	resolver entitlement.Resolver,
	splitterRegistry splitter.Registry,
	metadataManager metadata.Manager,
	orchestrator temporal.TemporalOrchestrator,
	config Config,
) Executor {
	if config.ReindexTimeout <= 0 {
		config.ReindexTimeout = 15 * time.Minute
	}
	return &executor{
		store:        st,
		resolver:     resolver,
		splitter:     splitterRegistry,
		metadata:     metadataManager,
		orchestrator: orchestrator,
		config:       config,
	}
}

func (e *executor) checkChain(chain domain.Chain) error {
	if !domain.IsValidChain(chain) {
		return apierrors.NewBadRequestError("Invalid chain", string(chain))
	}
	if e.config.Chain != "" && chain != e.config.Chain {
		return apierrors.NewNotFoundError("Chain is not indexed", string(chain))
	}
	return nil
}

func (e *executor) GetModel(ctx context.Context, chain domain.Chain, modelID string) (*dto.ModelResponse, error) {
	if err := e.checkChain(chain); err != nil {
		return nil, err
	}
	id, err := domain.ParseModelID(modelID)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Invalid model id")
	}

	model, err := e.store.GetModel(ctx, chain, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get model: %v", err))
	}
	if model == nil {
		return nil, nil
	}

	var entry *metadata.CacheEntry
	if model.URI != "" && e.metadata != nil {
		entry, err = e.metadata.EnsureCached(ctx, metadata.ModelEntityID(chain, id), model.URI)
		if err != nil && !errors.Is(err, domain.ErrStaleMetadata) {
			// raw model fields are still served
			logger.WarnCtx(ctx, "Model metadata unavailable", zap.Uint64("modelID", id), zap.Error(err))
			entry = nil
		}
	}

	return dto.MapModelToDTO(model, entry), nil
}

func (e *executor) GetEntitlement(ctx context.Context, chain domain.Chain, modelID string, address string) (*domain.Entitlement, error) {
	if err := e.checkChain(chain); err != nil {
		return nil, err
	}

	result, err := e.resolver.Resolve(ctx, chain, modelID, address)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Failed to resolve entitlement")
	}
	return result, nil
}

func (e *executor) GetSplitter(ctx context.Context, modelID string) (*dto.SplitterResponse, error) {
	status, err := e.splitter.Status(ctx, modelID)
	if err != nil {
		if errors.Is(err, domain.ErrSplitNotConfigured) {
			return nil, apierrors.NewNotFoundError("Split not configured", err.Error())
		}
		return nil, apierrors.FromDomainError(err, "Failed to get splitter")
	}
	return dto.MapSplitterStatusToDTO(status), nil
}

func (e *executor) GetPayoutAddress(ctx context.Context, modelID string) (*dto.PayoutAddressResponse, error) {
	id, err := domain.ParseModelID(modelID)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Invalid model id")
	}

	config, err := e.store.GetSplitConfig(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get split config: %v", err))
	}

	address := e.splitter.PredictAddress(new(big.Int).SetUint64(id))
	return &dto.PayoutAddressResponse{
		ModelID:       id,
		PayoutAddress: domain.NormalizeAddress(address.Hex()),
		Configured:    config != nil,
	}, nil
}

func (e *executor) TriggerReindex(ctx context.Context, chain domain.Chain, modelID string) (*dto.TriggerReindexResponse, error) {
	if err := e.checkChain(chain); err != nil {
		return nil, err
	}
	id, err := domain.ParseModelID(modelID)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Invalid model id")
	}

	w := workflows.NewWorkerCore(nil, workflows.WorkerCoreConfig{})
	options := client.StartWorkflowOptions{
		ID:                       fmt.Sprintf("%s-%s", workflows.ReindexWorkflowID(chain, id), uuid.NewString()),
		TaskQueue:                e.config.OrchestratorTaskQueue,
		WorkflowExecutionTimeout: e.config.ReindexTimeout,
		WorkflowIDReusePolicy:    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}
	wfRun, err := e.orchestrator.ExecuteWorkflow(ctx, options, w.ReindexModel, workflows.ReindexRequest{
		Chain:   chain,
		ModelID: id,
	})
	if err != nil {
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to trigger reindex: %v", err))
	}

	logger.InfoCtx(ctx, "Triggered model reindex",
		zap.Uint64("modelID", id),
		zap.String("workflowID", wfRun.GetID()),
		zap.String("runID", wfRun.GetRunID()))

	return &dto.TriggerReindexResponse{
		WorkflowID: wfRun.GetID(),
		RunID:      wfRun.GetRunID(),
	}, nil
}

func (e *executor) ConfigureSplit(ctx context.Context, modelID string, req *dto.ConfigureSplitRequest) (*dto.SplitterResponse, error) {
	configure := e.splitter.ConfigureSplit
	if req.Reconfigure {
		configure = e.splitter.ReconfigureSplit
	}

	err := configure(ctx, modelID, req.Seller, req.Creator, req.RoyaltyBps, req.MarketplaceBps)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Failed to configure split")
	}

	return e.GetSplitter(ctx, modelID)
}

func (e *executor) RegisterPayment(ctx context.Context, req *dto.RegisterPaymentRequest) (*dto.RegisterPaymentResponse, error) {
	sequenceID, err := e.splitter.RegisterPendingPayment(ctx, req.ModelID, req.Amount, req.SourceTxHash)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Failed to register payment")
	}
	return &dto.RegisterPaymentResponse{SequenceID: sequenceID}, nil
}

func (e *executor) ProcessPayments(ctx context.Context, limit int) (*dto.ProcessPaymentsResponse, error) {
	if limit <= 0 {
		limit = defaultProcessLimit
	}
	if limit > maxProcessLimit {
		return nil, apierrors.NewValidationError("limit must be at most " + strconv.Itoa(maxProcessLimit))
	}

	result, err := e.splitter.ProcessPendingPayments(ctx, limit)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Failed to process payments")
	}
	return &dto.ProcessPaymentsResponse{
		Processed: result.Processed,
		Skipped:   result.Skipped,
		Failed:    result.Failed,
	}, nil
}

func (e *executor) Withdraw(ctx context.Context, address string) (*dto.WithdrawResponse, error) {
	amount, err := e.splitter.Withdraw(ctx, address)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Failed to withdraw")
	}
	return &dto.WithdrawResponse{
		Address: domain.NormalizeAddress(address),
		Amount:  amount,
	}, nil
}

func (e *executor) ListCursors(ctx context.Context) (*dto.CursorListResponse, error) {
	cursors, err := e.store.ListCursors(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list cursors: %v", err))
	}

	resp := &dto.CursorListResponse{Cursors: make([]dto.CursorResponse, len(cursors))}
	for i := range cursors {
		resp.Cursors[i] = dto.MapCursorToDTO(&cursors[i])
	}
	return resp, nil
}

func (e *executor) ResetCursor(ctx context.Context, chain domain.Chain, stream domain.Stream, req *dto.ResetCursorRequest) (*dto.CursorResponse, error) {
	if err := e.checkChain(chain); err != nil {
		return nil, err
	}
	if !stream.Valid() {
		return nil, apierrors.FromDomainError(fmt.Errorf("%w: %s", domain.ErrUnknownStream, stream), "Invalid stream")
	}
	if !req.Confirm {
		return nil, apierrors.FromDomainError(domain.ErrCursorResetNotConfirmed, "Cursor reset not confirmed")
	}

	if err := e.store.ResetCursor(ctx, chain, stream, *req.LastBlock); err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to reset cursor: %v", err))
	}
	cursor, err := e.store.GetCursor(ctx, chain, stream)
	if err != nil || cursor == nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to read cursor: %v", err))
	}

	logger.WarnCtx(ctx, "Cursor reset",
		zap.String("chain", string(chain)),
		zap.String("stream", string(stream)),
		zap.Uint64("lastBlock", *req.LastBlock))

	resp := dto.MapCursorToDTO(cursor)
	return &resp, nil
}
