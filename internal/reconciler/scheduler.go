package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/splitter"
	"github.com/feral-file/ff-model-indexer/internal/store"
)

// SchedulerConfig holds the configuration for the scheduler loop
type SchedulerConfig struct {
	Chain        domain.Chain
	PollInterval time.Duration
	MaxBlocks    uint64
	// ProcessBatch is the number of pending payments processed per tick
	ProcessBatch int
	// MetadataRefreshMax bounds metadata fetches per tick
	MetadataRefreshMax int
	// WithdrawalStaleAfter is how long a withdrawal may stay pending before it is failed and re-credited
	WithdrawalStaleAfter time.Duration
	// MaxRetryInterval caps the backoff after failing ticks
	MaxRetryInterval time.Duration
}

// Scheduler periodically advances every stream, processes the payment queue and warms metadata
type Scheduler interface {
	// Run runs ticks until the context is canceled
	Run(ctx context.Context) error
	// Tick runs a single pass
	Tick(ctx context.Context) error
}

type scheduler struct {
	reconciler Reconciler
	splitter   splitter.Registry
	metadata   metadata.Manager
	store      store.Store
	clock      adapter.Clock
	config     SchedulerConfig
}

// NewScheduler creates a new scheduler. metadataManager may be nil to skip metadata warming.
func NewScheduler(
	rec Reconciler,
	splitterRegistry splitter.Registry,
	metadataManager metadata.Manager,
	st store.Store,
	clock adapter.Clock,
	config SchedulerConfig,
) Scheduler {
	if config.PollInterval <= 0 {
		config.PollInterval = 15 * time.Second
	}
	if config.MaxRetryInterval <= 0 {
		config.MaxRetryInterval = 5 * time.Minute
	}
	return &scheduler{
		reconciler: rec,
		splitter:   splitterRegistry,
		metadata:   metadataManager,
		store:      st,
		clock:      clock,
		config:     config,
	}
}

func (s *scheduler) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting scheduler",
		zap.String("chain", string(s.config.Chain)),
		zap.Duration("pollInterval", s.config.PollInterval))

	// failing ticks back off instead of hammering the ledger
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = s.config.PollInterval
	retry.MaxInterval = s.config.MaxRetryInterval
	retry.MaxElapsedTime = 0

	for {
		wait := s.config.PollInterval
		if err := s.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			wait = retry.NextBackOff()
			logger.ErrorCtx(ctx, fmt.Errorf("scheduler tick failed: %w", err), zap.Duration("retryIn", wait))
		} else {
			retry.Reset()
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Scheduler stopped")
			return nil
		case <-s.clock.After(wait):
		}
	}
}

func (s *scheduler) Tick(ctx context.Context) error {
	var errs []error

	results, err := s.reconciler.AdvanceAll(ctx, s.config.MaxBlocks)
	if err != nil {
		errs = append(errs, err)
	}

	if s.config.ProcessBatch > 0 {
		processed, err := s.splitter.ProcessPendingPayments(ctx, s.config.ProcessBatch)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to process payments: %w", err))
		} else if processed.Processed > 0 || processed.Failed > 0 {
			logger.InfoCtx(ctx, "Processed pending payments",
				zap.Int("processed", processed.Processed),
				zap.Int("skipped", processed.Skipped),
				zap.Int("failed", processed.Failed))
		}
	}

	if s.config.WithdrawalStaleAfter > 0 {
		if _, err := s.splitter.RecoverStaleWithdrawals(ctx, s.config.WithdrawalStaleAfter, s.config.ProcessBatch); err != nil {
			errs = append(errs, fmt.Errorf("failed to recover withdrawals: %w", err))
		}
	}

	s.warmMetadata(ctx, results)

	return errors.Join(errs...)
}

// warmMetadata caches documents of models touched by this tick, then refreshes expired entries.
// Failures only delay warming to the next tick.
func (s *scheduler) warmMetadata(ctx context.Context, results []*AdvanceResult) {
	if s.metadata == nil || s.config.MetadataRefreshMax <= 0 {
		return
	}

	budget := s.config.MetadataRefreshMax
	for _, result := range results {
		for _, modelID := range result.TouchedModels {
			if budget == 0 {
				return
			}

			model, err := s.store.GetModel(ctx, result.Chain, modelID)
			if err != nil {
				logger.WarnCtx(ctx, "Failed to load touched model", zap.Uint64("modelID", modelID), zap.Error(err))
				continue
			}
			if model == nil || model.URI == "" {
				continue
			}

			budget--
			_, err = s.metadata.EnsureCached(ctx, metadata.ModelEntityID(result.Chain, modelID), model.URI)
			if err != nil && !errors.Is(err, domain.ErrStaleMetadata) {
				logger.WarnCtx(ctx, "Failed to warm model metadata", zap.Uint64("modelID", modelID), zap.Error(err))
			}
		}
	}

	if budget > 0 {
		if _, err := s.metadata.RefreshStale(ctx, budget); err != nil {
			logger.WarnCtx(ctx, "Failed to refresh stale metadata", zap.Error(err))
		}
	}
}
