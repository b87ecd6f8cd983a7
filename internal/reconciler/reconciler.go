package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/block"
	"github.com/feral-file/ff-model-indexer/internal/contracts"
	"github.com/feral-file/ff-model-indexer/internal/decoder"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/messaging"
	"github.com/feral-file/ff-model-indexer/internal/metrics"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-model-indexer/internal/splitter"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

const (
	defaultMaxBlocks   = 2_000
	defaultReplayLimit = 500
)

// Config holds configuration for the reconciler
type Config struct {
	Chain         domain.Chain
	GenesisBlock  uint64
	Confirmations uint64
	// MaxBlocks is the default block window of a single advance
	MaxBlocks uint64
	// Contracts maps each stream to the contract emitting its events
	Contracts map[domain.Stream]common.Address
	// ReplayLimit bounds how many deferred events are retried per advance
	ReplayLimit int
}

// AdvanceResult reports the outcome of a single advance
type AdvanceResult struct {
	Chain     domain.Chain  `json:"chain"`
	Stream    domain.Stream `json:"stream"`
	FromBlock uint64        `json:"from_block"`
	ToBlock   uint64        `json:"to_block"`
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Deferred  int           `json:"deferred"`
	Replayed  int           `json:"replayed"`
	// NewCursor is the next block to process
	NewCursor uint64 `json:"new_cursor"`
	HeadBlock uint64 `json:"head_block"`
	// TouchedModels lists models whose state changed in this advance
	TouchedModels []uint64 `json:"touched_models,omitempty"`
}

// Reconciler mirrors ledger state into the store one stream at a time
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// Advance processes the next window of confirmed blocks of a stream. The cursor only moves after
	// every event of the window is applied. Concurrent calls for the same stream fail with domain.ErrStreamBusy.
	Advance(ctx context.Context, chain domain.Chain, stream domain.Stream, maxBlocks uint64) (*AdvanceResult, error)

	// AdvanceAll advances every configured stream concurrently. A failing stream does not stop the others.
	AdvanceAll(ctx context.Context, maxBlocks uint64) ([]*AdvanceResult, error)

	// ReindexModel reads a model from the ledger at the current head and overwrites the stored record
	ReindexModel(ctx context.Context, chain domain.Chain, modelID uint64) (*schema.Model, error)
}

type reconciler struct {
	store     store.Store
	ledger    ethereum.LedgerClient
	registry  ethereum.RegistryReader
	decoder   decoder.Decoder
	splitter  splitter.Registry
	publisher messaging.Publisher
	blocks    block.BlockProvider
	clock     adapter.Clock
	config    Config
	locks     map[domain.Stream]*sync.Mutex
}

// New creates a reconciler for a single chain
func New(
	st store.Store,
	ledger ethereum.LedgerClient,
	registry ethereum.RegistryReader,
	dec decoder.Decoder,
	splitterRegistry splitter.Registry,
	publisher messaging.Publisher,
	blocks block.BlockProvider,
	clock adapter.Clock,
	config Config,
) Reconciler {
	if config.MaxBlocks == 0 {
		config.MaxBlocks = defaultMaxBlocks
	}
	if config.ReplayLimit <= 0 {
		config.ReplayLimit = defaultReplayLimit
	}
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}

	locks := make(map[domain.Stream]*sync.Mutex, len(config.Contracts))
	for stream := range config.Contracts {
		locks[stream] = &sync.Mutex{}
	}

	return &reconciler{
		store:     st,
		ledger:    ledger,
		registry:  registry,
		decoder:   dec,
		splitter:  splitterRegistry,
		publisher: publisher,
		blocks:    blocks,
		clock:     clock,
		config:    config,
		locks:     locks,
	}
}

func (r *reconciler) Advance(ctx context.Context, chain domain.Chain, stream domain.Stream, maxBlocks uint64) (*AdvanceResult, error) {
	if chain != r.config.Chain {
		return nil, fmt.Errorf("%w: chain %s is not reconciled", domain.ErrUnknownStream, chain)
	}
	contract, ok := r.config.Contracts[stream]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStream, stream)
	}

	lock := r.locks[stream]
	if !lock.TryLock() {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrStreamBusy, chain, stream)
	}
	defer lock.Unlock()

	start := r.clock.Now()
	result, err := r.advance(ctx, stream, contract, maxBlocks)

	var cursor, head uint64
	if result != nil {
		head = result.HeadBlock
		if result.NewCursor > 0 {
			cursor = result.NewCursor - 1
		}
	}
	metrics.Reconciler().ObserveAdvance(string(chain), string(stream), cursor, head, r.clock.Since(start), err)

	return result, err
}

func (r *reconciler) advance(ctx context.Context, stream domain.Stream, contract common.Address, maxBlocks uint64) (*AdvanceResult, error) {
	chain := r.config.Chain
	if maxBlocks == 0 {
		maxBlocks = r.config.MaxBlocks
	}

	cursor, err := r.store.GetCursor(ctx, chain, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to get cursor: %w", err)
	}
	fromBlock := r.config.GenesisBlock
	if cursor != nil {
		fromBlock = cursor.LastBlock + 1
	}

	head, err := r.ledger.LatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get head block: %w", err)
	}

	result := &AdvanceResult{
		Chain:     chain,
		Stream:    stream,
		FromBlock: fromBlock,
		NewCursor: fromBlock,
		HeadBlock: head,
	}

	if head < r.config.Confirmations || fromBlock > head-r.config.Confirmations {
		logger.DebugCtx(ctx, "Stream is caught up",
			zap.String("stream", string(stream)),
			zap.Uint64("fromBlock", fromBlock),
			zap.Uint64("head", head))
		return result, nil
	}

	safeHead := head - r.config.Confirmations
	toBlock := min(safeHead, fromBlock+maxBlocks-1)
	result.ToBlock = toBlock

	topics, err := contracts.StreamTopics(stream)
	if err != nil {
		return nil, err
	}
	logs, err := r.ledger.GetLogs(ctx, fromBlock, toBlock, []common.Address{contract}, topics)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs for blocks %d-%d: %w", fromBlock, toBlock, err)
	}

	events := r.decodeLogs(ctx, stream, logs, result)

	parents, err := r.prepare(ctx, events)
	if err != nil {
		return nil, err
	}

	var applied []domain.Event
	touched := make(map[uint64]struct{})

	err = r.store.Transaction(ctx, func(tx store.Store) error {
		a := &applier{chain: chain, store: tx, splitter: r.splitter.WithStore(tx)}

		for _, view := range parents {
			if _, err := a.upsertSnapshot(ctx, view, head); err != nil {
				return err
			}
		}

		for _, event := range events {
			outcome, err := a.apply(ctx, event)
			if err != nil {
				return err
			}
			switch outcome.status {
			case statusApplied:
				result.Processed++
				applied = append(applied, event)
				if outcome.modelID != nil {
					touched[*outcome.modelID] = struct{}{}
				}
			case statusDeferred:
				created, err := a.deferEvent(ctx, event, outcome.reason)
				if err != nil {
					return err
				}
				if created {
					result.Deferred++
				}
			default:
				result.Skipped++
			}
		}

		replayed, err := r.replayDeferred(ctx, a, stream, touched)
		if err != nil {
			return err
		}
		result.Replayed = len(replayed)
		applied = append(applied, replayed...)

		// the cursor is written last so a failed window is retried in full
		return tx.SetCursor(ctx, chain, stream, toBlock)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply blocks %d-%d: %w", fromBlock, toBlock, err)
	}

	result.NewCursor = toBlock + 1
	for modelID := range touched {
		result.TouchedModels = append(result.TouchedModels, modelID)
	}
	sort.Slice(result.TouchedModels, func(i, j int) bool { return result.TouchedModels[i] < result.TouchedModels[j] })

	r.publish(ctx, applied)
	if result.Deferred > 0 {
		metrics.Reconciler().Deferred(string(chain), string(stream), result.Deferred)
	}

	logger.InfoCtx(ctx, "Stream advanced",
		zap.String("stream", string(stream)),
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock),
		zap.Int("logs", len(logs)),
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped),
		zap.Int("deferred", result.Deferred),
		zap.Int("replayed", result.Replayed))

	return result, nil
}

// decodeLogs decodes and orders a window of logs. Undecodable logs are counted as skipped.
func (r *reconciler) decodeLogs(ctx context.Context, stream domain.Stream, logs []types.Log, result *AdvanceResult) []domain.Event {
	events := make([]domain.Event, 0, len(logs))
	for _, log := range logs {
		event, err := r.decoder.Decode(log)
		if err != nil {
			var decodeErr *decoder.DecodeError
			if errors.As(err, &decodeErr) && errors.Is(err, domain.ErrUnknownSignature) {
				logger.DebugCtx(ctx, "Skipping log with unknown signature", zap.String("txHash", log.TxHash.Hex()), zap.Uint("logIndex", log.Index))
			} else {
				logger.WarnCtx(ctx, "Skipping undecodable log", zap.String("txHash", log.TxHash.Hex()), zap.Uint("logIndex", log.Index), zap.Error(err))
			}
			metrics.Reconciler().DecodeError(string(r.config.Chain), string(stream))
			result.Skipped++
			continue
		}
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].Metadata().Position(), events[j].Metadata().Position()
		return b.After(a)
	})

	return events
}

// prepare performs the network reads a window needs before its transaction: parent models
// unknown to the store and block timestamps of license purchases
func (r *reconciler) prepare(ctx context.Context, events []domain.Event) (map[uint64]*ethereum.ModelView, error) {
	listed := make(map[uint64]struct{})
	for _, event := range events {
		if e, ok := event.(*domain.ModelListed); ok {
			listed[e.ModelID] = struct{}{}
		}
	}

	parents := make(map[uint64]*ethereum.ModelView)
	checked := make(map[uint64]struct{})
	for _, event := range events {
		if e, ok := event.(*domain.LicensePurchased); ok && e.MintedAt.IsZero() {
			timestamp, err := r.blocks.GetBlockTimestamp(ctx, e.BlockNumber)
			if err != nil {
				return nil, fmt.Errorf("failed to get timestamp of block %d: %w", e.BlockNumber, err)
			}
			e.MintedAt = timestamp.UTC()
		}

		modelID, ok := domain.ParentModelID(event)
		if !ok {
			continue
		}
		if _, ok := listed[modelID]; ok {
			continue
		}
		if _, ok := checked[modelID]; ok {
			continue
		}
		checked[modelID] = struct{}{}

		model, err := r.store.GetModel(ctx, r.config.Chain, modelID)
		if err != nil {
			return nil, fmt.Errorf("failed to get model %d: %w", modelID, err)
		}
		if model != nil {
			continue
		}

		view, err := r.registry.GetModel(ctx, modelID)
		if err != nil {
			// the event is deferred until the listing is observed
			logger.WarnCtx(ctx, "Failed to fetch parent model", zap.Uint64("modelID", modelID), zap.Error(err))
			continue
		}
		parents[modelID] = view
	}

	return parents, nil
}

// replayDeferred retries parked events of a stream now that their parents may exist. Events of models
// touched in this window go first, the remaining budget rotates through the least attempted events.
func (r *reconciler) replayDeferred(ctx context.Context, a *applier, stream domain.Stream, touched map[uint64]struct{}) ([]domain.Event, error) {
	modelIDs := make([]uint64, 0, len(touched))
	for modelID := range touched {
		modelIDs = append(modelIDs, modelID)
	}

	targeted, err := a.store.ListDeferredEventsByModels(ctx, r.config.Chain, stream, modelIDs, r.config.ReplayLimit)
	if err != nil {
		return nil, err
	}
	rotated, err := a.store.ListDeferredEvents(ctx, r.config.Chain, stream, r.config.ReplayLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(targeted)+len(rotated))
	parked := make([]schema.DeferredEvent, 0, len(targeted)+len(rotated))
	for _, row := range append(targeted, rotated...) {
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = struct{}{}
		parked = append(parked, row)
	}
	sort.Slice(parked, func(i, j int) bool {
		if parked[i].BlockNumber != parked[j].BlockNumber {
			return parked[i].BlockNumber < parked[j].BlockNumber
		}
		return parked[i].LogIndex < parked[j].LogIndex
	})

	var replayed []domain.Event
	var stillParked []uint64
	for _, row := range parked {
		event, err := domain.UnmarshalEvent(domain.EventName(row.EventName), row.Payload)
		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("dropping unreadable deferred event: %w", err), zap.Uint64("id", row.ID))
			if err := a.store.DeleteDeferredEvent(ctx, row.ID); err != nil {
				return nil, err
			}
			continue
		}

		outcome, err := a.apply(ctx, event)
		if err != nil {
			return nil, err
		}
		if outcome.status == statusDeferred {
			stillParked = append(stillParked, row.ID)
			continue
		}

		if err := a.store.DeleteDeferredEvent(ctx, row.ID); err != nil {
			return nil, err
		}
		if outcome.status == statusApplied {
			replayed = append(replayed, event)
			if outcome.modelID != nil {
				touched[*outcome.modelID] = struct{}{}
			}
		}
	}

	if err := a.store.MarkDeferredEventsAttempted(ctx, stillParked); err != nil {
		return nil, err
	}

	return replayed, nil
}

// publish sends applied events to the broker. Failures are logged and never undo the commit.
func (r *reconciler) publish(ctx context.Context, events []domain.Event) {
	for _, event := range events {
		meta := event.Metadata()
		metrics.Reconciler().EventApplied(string(meta.Chain), string(meta.Stream), string(event.Name()))

		err := r.publisher.PublishEvent(ctx, &domain.ReconciledEvent{
			EventName: event.Name(),
			EventMeta: meta,
			Payload:   event,
		})
		if err != nil {
			logger.WarnCtx(ctx, "Failed to publish reconciled event",
				zap.String("event", string(event.Name())),
				zap.String("txHash", meta.TxHash),
				zap.Error(err))
		}
	}
}

func (r *reconciler) AdvanceAll(ctx context.Context, maxBlocks uint64) ([]*AdvanceResult, error) {
	streams := make([]domain.Stream, 0, len(r.config.Contracts))
	for _, stream := range domain.AllStreams {
		if _, ok := r.config.Contracts[stream]; ok {
			streams = append(streams, stream)
		}
	}
	if len(streams) == 0 {
		return nil, nil
	}

	results := make([]*AdvanceResult, len(streams))
	errs := make([]error, len(streams))

	pool := pond.NewPool(len(streams), pond.WithContext(ctx))
	for i, stream := range streams {
		pool.Submit(func() {
			result, err := r.Advance(ctx, r.config.Chain, stream, maxBlocks)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", stream, err)
				return
			}
			results[i] = result
		})
	}
	pool.StopAndWait()

	advanced := make([]*AdvanceResult, 0, len(results))
	for _, result := range results {
		if result != nil {
			advanced = append(advanced, result)
		}
	}

	return advanced, errors.Join(errs...)
}

func (r *reconciler) ReindexModel(ctx context.Context, chain domain.Chain, modelID uint64) (*schema.Model, error) {
	if chain != r.config.Chain {
		return nil, fmt.Errorf("%w: chain %s is not reconciled", domain.ErrUnknownStream, chain)
	}

	head, err := r.ledger.LatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get head block: %w", err)
	}

	view, err := r.registry.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}

	var model *schema.Model
	err = r.store.Transaction(ctx, func(tx store.Store) error {
		a := &applier{chain: chain, store: tx, splitter: r.splitter.WithStore(tx)}
		updated, err := a.upsertSnapshot(ctx, view, head)
		if err != nil {
			return err
		}
		if !updated {
			logger.InfoCtx(ctx, "Stored model is newer than the snapshot", zap.Uint64("modelID", modelID), zap.Uint64("head", head))
		}

		model, err = tx.GetModel(ctx, chain, modelID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reindex model %d: %w", modelID, err)
	}

	logger.InfoCtx(ctx, "Model reindexed", zap.Uint64("modelID", modelID), zap.Uint64("head", head), zap.Uint64("version", model.Version))

	return model, nil
}
