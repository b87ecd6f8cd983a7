package reconciler_test

import (
	"context"
	"errors"
	"math"
	"math/big"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/contracts"
	"github.com/feral-file/ff-model-indexer/internal/decoder"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/mocks"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-model-indexer/internal/reconciler"
	"github.com/feral-file/ff-model-indexer/internal/splitter"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/testutil"
)

const chain = domain.ChainEthereumMainnet

var (
	modelRegistry   = common.HexToAddress("0x1000000000000000000000000000000000000001")
	licenseRegistry = common.HexToAddress("0x1000000000000000000000000000000000000002")
	paymentRouter   = common.HexToAddress("0x1000000000000000000000000000000000000003")
	seller          = common.HexToAddress("0x1111111111111111111111111111111111111111")
	creator         = common.HexToAddress("0x2222222222222222222222222222222222222222")
	buyer           = common.HexToAddress("0x3333333333333333333333333333333333333333")
	marketplace     = "0x4444444444444444444444444444444444444444"
	now             = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testReconcilerMocks struct {
	ctrl       *gomock.Controller
	store      store.Store
	ledger     *mocks.MockLedgerClient
	registry   *mocks.MockRegistryReader
	blocks     *mocks.MockBlockProvider
	publisher  *mocks.MockPublisher
	clock      *mocks.MockClock
	splitter   splitter.Registry
	reconciler reconciler.Reconciler
}

func setupReconciler(t *testing.T) *testReconcilerMocks {
	ctrl := gomock.NewController(t)
	tm := &testReconcilerMocks{
		ctrl:      ctrl,
		store:     testutil.OpenSQLiteStore(t),
		ledger:    mocks.NewMockLedgerClient(ctrl),
		registry:  mocks.NewMockRegistryReader(ctrl),
		blocks:    mocks.NewMockBlockProvider(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Millisecond).AnyTimes()
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tm.splitter = splitter.NewRegistry(tm.store, nil, tm.clock, splitter.Config{
		Factory:      common.HexToAddress("0x5000000000000000000000000000000000000005"),
		InitCodeHash: common.HexToHash("0x01"),
		Marketplace:  marketplace,
	})
	tm.reconciler = reconciler.New(tm.store, tm.ledger, tm.registry, decoder.New(chain), tm.splitter, tm.publisher, tm.blocks, tm.clock, reconciler.Config{
		Chain:         chain,
		GenesisBlock:  100,
		Confirmations: 2,
		MaxBlocks:     10,
		Contracts: map[domain.Stream]common.Address{
			domain.StreamModels:   modelRegistry,
			domain.StreamLicenses: licenseRegistry,
			domain.StreamPayments: paymentRouter,
		},
	})
	return tm
}

func (tm *testReconcilerMocks) expectWindow(head, from, to uint64, logs ...types.Log) {
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(head, nil)
	tm.ledger.EXPECT().GetLogs(gomock.Any(), from, to, gomock.Any(), gomock.Any()).Return(logs, nil)
}

func idTopic(id int64) common.Hash {
	return common.BigToHash(big.NewInt(id))
}

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func txHash(n int64) common.Hash {
	return common.BigToHash(big.NewInt(0xabc000 + n))
}

func buildLog(t *testing.T, contract common.Address, eventID common.Hash, block uint64, index uint, tx common.Hash, data []byte, topics ...common.Hash) types.Log {
	t.Helper()
	return types.Log{
		Address:     contract,
		Topics:      append([]common.Hash{eventID}, topics...),
		Data:        data,
		BlockNumber: block,
		TxHash:      tx,
		Index:       index,
	}
}

func modelListedLog(t *testing.T, modelID int64, block uint64, index uint) types.Log {
	event := contracts.ModelRegistry.Events["ModelListed"]
	data, err := event.Inputs.NonIndexed().Pack(
		"ipfs://QmModel", big.NewInt(1), big.NewInt(1000), big.NewInt(100), big.NewInt(1),
		uint16(1000), uint8(3), uint8(1), [32]byte{1},
	)
	require.NoError(t, err)
	return buildLog(t, modelRegistry, event.ID, block, index, txHash(int64(block)), data, idTopic(modelID), addressTopic(seller), addressTopic(creator))
}

func listedStatusLog(t *testing.T, modelID int64, listed bool, block uint64, index uint) types.Log {
	event := contracts.ModelRegistry.Events["ListedStatusChanged"]
	data, err := event.Inputs.NonIndexed().Pack(listed)
	require.NoError(t, err)
	return buildLog(t, modelRegistry, event.ID, block, index, txHash(int64(block)), data, idTopic(modelID))
}

func licensePurchasedLog(t *testing.T, licenseID, modelID int64, block uint64) types.Log {
	event := contracts.LicenseRegistry.Events["LicensePurchased"]
	data, err := event.Inputs.NonIndexed().Pack(uint8(0), uint64(0), uint8(3), true, big.NewInt(1000))
	require.NoError(t, err)
	return buildLog(t, licenseRegistry, event.ID, block, 0, txHash(int64(block)), data, idTopic(licenseID), idTopic(modelID), addressTopic(buyer))
}

func licenseRevokedLog(t *testing.T, licenseID int64, block uint64) types.Log {
	event := contracts.LicenseRegistry.Events["LicenseRevoked"]
	return buildLog(t, licenseRegistry, event.ID, block, 0, txHash(int64(block)), nil, idTopic(licenseID))
}

func splitConfiguredLog(t *testing.T, modelID int64, royaltyBps, marketplaceBps uint16, block uint64) types.Log {
	event := contracts.PaymentRouter.Events["SplitConfigured"]
	data, err := event.Inputs.NonIndexed().Pack(royaltyBps, marketplaceBps)
	require.NoError(t, err)
	return buildLog(t, paymentRouter, event.ID, block, 0, txHash(int64(block)), data, idTopic(modelID), addressTopic(seller), addressTopic(creator))
}

func paymentRegisteredLog(t *testing.T, modelID int64, amount int64, block uint64) types.Log {
	event := contracts.PaymentRouter.Events["PaymentRegistered"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(amount))
	require.NoError(t, err)
	return buildLog(t, paymentRouter, event.ID, block, 0, txHash(int64(block)), data, idTopic(modelID), addressTopic(buyer))
}

func TestAdvance_AppliesWindowAndMovesCursor(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	// logs arrive out of order and are applied by position
	tm.expectWindow(112, 100, 109,
		listedStatusLog(t, 3, false, 105, 0),
		modelListedLog(t, 3, 101, 2),
	)

	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 0)
	require.NoError(t, err)

	assert.Equal(t, uint64(100), result.FromBlock)
	assert.Equal(t, uint64(109), result.ToBlock)
	assert.Equal(t, uint64(110), result.NewCursor)
	assert.Equal(t, uint64(112), result.HeadBlock)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, []uint64{3}, result.TouchedModels)

	cursor, err := tm.store.GetCursor(ctx, chain, domain.StreamModels)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(109), cursor.LastBlock)

	model, err := tm.store.GetModel(ctx, chain, 3)
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.False(t, model.Listed)
	assert.Equal(t, "ipfs://QmModel", model.URI)
	assert.Equal(t, uint64(105), model.UpdatedBlock)
}

func TestAdvance_ReplayingWindowIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	logs := []types.Log{
		modelListedLog(t, 3, 101, 0),
		listedStatusLog(t, 3, false, 105, 0),
		modelListedLog(t, 4, 106, 1),
	}

	tm.expectWindow(112, 100, 109, logs...)
	_, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 0)
	require.NoError(t, err)

	first3, err := tm.store.GetModel(ctx, chain, 3)
	require.NoError(t, err)
	first4, err := tm.store.GetModel(ctx, chain, 4)
	require.NoError(t, err)

	require.NoError(t, tm.store.ResetCursor(ctx, chain, domain.StreamModels, 99))

	tm.expectWindow(112, 100, 109, logs...)
	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 3, result.Skipped)

	second3, err := tm.store.GetModel(ctx, chain, 3)
	require.NoError(t, err)
	second4, err := tm.store.GetModel(ctx, chain, 4)
	require.NoError(t, err)

	second3.UpdatedAt, second4.UpdatedAt = first3.UpdatedAt, first4.UpdatedAt
	assert.Equal(t, first3, second3)
	assert.Equal(t, first4, second4)
}

func TestAdvance_CaughtUp(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	require.NoError(t, tm.store.SetCursor(ctx, chain, domain.StreamModels, 110))
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(111), nil)

	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, uint64(111), result.NewCursor)

	// head below the confirmation depth
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(1), nil)
	result, err = tm.reconciler.Advance(ctx, chain, domain.StreamLicenses, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), result.NewCursor)
}

func TestAdvance_LedgerErrorLeavesCursor(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	require.NoError(t, tm.store.SetCursor(ctx, chain, domain.StreamModels, 104))
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(200), nil)
	tm.ledger.EXPECT().GetLogs(gomock.Any(), uint64(105), uint64(109), gomock.Any(), gomock.Any()).Return(nil, errors.New("rpc unavailable"))

	_, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 5)
	require.Error(t, err)

	cursor, err := tm.store.GetCursor(ctx, chain, domain.StreamModels)
	require.NoError(t, err)
	assert.Equal(t, uint64(104), cursor.LastBlock)
}

func TestAdvance_SameStreamIsSerialized(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	started := make(chan struct{})
	release := make(chan struct{})
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(112), nil)
	tm.ledger.EXPECT().GetLogs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, from, to uint64, addresses []common.Address, topics [][]common.Hash) ([]types.Log, error) {
			close(started)
			<-release
			return nil, nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 0)
		assert.NoError(t, err)
	}()

	<-started
	_, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 0)
	assert.ErrorIs(t, err, domain.ErrStreamBusy)

	close(release)
	wg.Wait()
}

func TestAdvance_UnknownLogsAreSkipped(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	unknown := buildLog(t, modelRegistry, common.HexToHash("0xdeadbeef"), 102, 0, txHash(102), nil)
	tm.expectWindow(112, 100, 109, unknown, modelListedLog(t, 3, 103, 0))

	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, uint64(110), result.NewCursor)
}

func TestAdvance_FetchesUnknownParent(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	mintedAt := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	tm.expectWindow(112, 100, 109, licensePurchasedLog(t, 7, 3, 104))
	tm.blocks.EXPECT().GetBlockTimestamp(gomock.Any(), uint64(104)).Return(mintedAt, nil)
	tm.registry.EXPECT().GetModel(gomock.Any(), uint64(3)).Return(&ethereum.ModelView{
		ModelID: 3, Owner: "0x1111111111111111111111111111111111111111", Creator: "0x2222222222222222222222222222222222222222",
		Listed: true, URI: "ipfs://QmModel", Version: 2, TermsHash: "0x01",
		Params: domain.LicensingParams{PricePerpetual: "1000", PriceSubscription: "100", PriceInference: "1", RoyaltyBps: 1000},
	}, nil)

	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamLicenses, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Deferred)

	model, err := tm.store.GetModel(ctx, chain, 3)
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, uint64(2), model.Version)
	assert.Equal(t, uint64(112), model.UpdatedBlock)
	assert.Equal(t, uint64(math.MaxInt32), model.UpdatedLogIndex)

	license, err := tm.store.GetLicense(ctx, chain, 7)
	require.NoError(t, err)
	require.NotNil(t, license)
	assert.Equal(t, "0x3333333333333333333333333333333333333333", license.Owner)
	assert.True(t, license.MintedAt.Equal(mintedAt))
	assert.Nil(t, license.ExpiresAt)
}

func TestAdvance_DefersAndReplaysLicenseEvents(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	// the purchase references a model the ledger cannot return yet, the revocation an unseen license
	tm.expectWindow(112, 100, 109,
		licensePurchasedLog(t, 7, 3, 104),
		licenseRevokedLog(t, 7, 106),
	)
	tm.blocks.EXPECT().GetBlockTimestamp(gomock.Any(), uint64(104)).Return(now, nil)
	tm.registry.EXPECT().GetModel(gomock.Any(), uint64(3)).Return(nil, domain.ErrModelNotFound)

	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamLicenses, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 2, result.Deferred)
	assert.Equal(t, 0, result.Replayed)
	assert.Equal(t, uint64(110), result.NewCursor)

	_, err = tm.store.UpsertModel(ctx, store.UpsertModelInput{
		Chain: chain, ModelID: 3, Owner: "0x1111111111111111111111111111111111111111", Creator: "0x2222222222222222222222222222222222222222",
		Listed: true, Version: 1, Position: domain.Position{Block: 101},
	})
	require.NoError(t, err)

	tm.expectWindow(122, 110, 119)
	result, err = tm.reconciler.Advance(ctx, chain, domain.StreamLicenses, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Replayed)

	license, err := tm.store.GetLicense(ctx, chain, 7)
	require.NoError(t, err)
	require.NotNil(t, license)
	assert.True(t, license.Revoked)
	assert.True(t, license.MintedAt.Equal(now))

	parked, err := tm.store.ListDeferredEvents(ctx, chain, domain.StreamLicenses, 10)
	require.NoError(t, err)
	assert.Empty(t, parked)
}

func TestAdvance_PaymentWaitsForSplit(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	tm.expectWindow(112, 100, 109, paymentRegisteredLog(t, 3, 1_000_000, 101))
	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deferred)

	tm.expectWindow(122, 110, 119,
		splitConfiguredLog(t, 3, 1000, 250, 111),
		paymentRegisteredLog(t, 3, 500, 112),
	)
	result, err = tm.reconciler.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Replayed)

	pending, processed, err := tm.store.CountPayments(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)
	assert.Equal(t, int64(0), processed)

	// a replayed window never queues a payment twice
	require.NoError(t, tm.store.ResetCursor(ctx, chain, domain.StreamPayments, 109))
	tm.expectWindow(122, 110, 119,
		splitConfiguredLog(t, 3, 1000, 250, 111),
		paymentRegisteredLog(t, 3, 500, 112),
	)
	result, err = tm.reconciler.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 2, result.Skipped)

	pending, _, err = tm.store.CountPayments(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)
}

func (tm *testReconcilerMocks) withReplayLimit(limit int) reconciler.Reconciler {
	return reconciler.New(tm.store, tm.ledger, tm.registry, decoder.New(chain), tm.splitter, tm.publisher, tm.blocks, tm.clock, reconciler.Config{
		Chain:         chain,
		GenesisBlock:  100,
		Confirmations: 2,
		MaxBlocks:     10,
		Contracts:     map[domain.Stream]common.Address{domain.StreamPayments: paymentRouter},
		ReplayLimit:   limit,
	})
}

func TestAdvance_StuckDeferredEventsDoNotStarveReplay(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()
	rec := tm.withReplayLimit(2)

	// model 5 never gets a split, model 3 gets one outside the ledger window
	tm.expectWindow(112, 100, 109,
		paymentRegisteredLog(t, 5, 100, 101),
		paymentRegisteredLog(t, 5, 200, 102),
		paymentRegisteredLog(t, 3, 1_000_000, 103),
	)
	result, err := rec.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Deferred)

	require.NoError(t, tm.splitter.ConfigureSplit(ctx, "3", seller.Hex(), creator.Hex(), 1000, 250))

	// the two oldest events were retried once already, the untried one goes first
	tm.expectWindow(122, 110, 119)
	result, err = rec.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Replayed)

	pending, _, err := tm.store.CountPayments(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	parked, err := tm.store.ListDeferredEvents(ctx, chain, domain.StreamPayments, 10)
	require.NoError(t, err)
	require.Len(t, parked, 2)
	for _, row := range parked {
		assert.Equal(t, uint64(5), *row.ModelID)
	}
}

func TestAdvance_ReplaysDeferredEventsOfTouchedModels(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()
	rec := tm.withReplayLimit(1)

	tm.expectWindow(112, 100, 109,
		paymentRegisteredLog(t, 5, 100, 101),
		paymentRegisteredLog(t, 5, 200, 102),
		paymentRegisteredLog(t, 3, 1_000_000, 103),
	)
	_, err := rec.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)

	// the split of model 3 arrives in the next window, its parked payment replays right away
	tm.expectWindow(122, 110, 119, splitConfiguredLog(t, 3, 1000, 250, 111))
	result, err := rec.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Replayed)

	pending, _, err := tm.store.CountPayments(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

func TestAdvance_SplitReconfiguredFromLedger(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	tm.expectWindow(112, 100, 109,
		splitConfiguredLog(t, 3, 1000, 250, 101),
		splitConfiguredLog(t, 3, 1000, 250, 102),
		splitConfiguredLog(t, 3, 500, 0, 103),
		splitConfiguredLog(t, 4, 9000, 2000, 104),
	)
	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Skipped)

	config, err := tm.store.GetSplitConfig(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, uint16(500), config.RoyaltyBps)
	assert.Equal(t, uint16(0), config.MarketplaceBps)
	assert.Equal(t, 1, config.ReconfiguredCount)

	invalid, err := tm.store.GetSplitConfig(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, invalid)
}

func TestAdvance_SecondPaymentInTransactionDoesNotBlockWindow(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	second := paymentRegisteredLog(t, 3, 500, 101)
	second.Index = 3
	tm.expectWindow(112, 100, 109,
		splitConfiguredLog(t, 3, 1000, 250, 100),
		paymentRegisteredLog(t, 3, 1_000_000, 101),
		second,
	)
	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamPayments, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Deferred)
	assert.Equal(t, uint64(110), result.NewCursor)

	queued, err := tm.store.GetPendingPaymentBySourceTx(ctx, strings.ToLower(txHash(101).Hex()))
	require.NoError(t, err)
	require.NotNil(t, queued)
	assert.Equal(t, "1000000", queued.Amount)
	require.NotNil(t, queued.SourceLogIndex)
	assert.Equal(t, uint64(0), *queued.SourceLogIndex)

	pending, _, err := tm.store.CountPayments(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

func TestAdvance_UndecodableLogIsSkipped(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	abiDecoder := decoder.New(chain)
	dec := mocks.NewMockDecoder(tm.ctrl)
	dec.EXPECT().Decode(gomock.Any()).DoAndReturn(func(log types.Log) (domain.Event, error) {
		if log.Index == 7 {
			return nil, errors.New("abi: cannot unmarshal")
		}
		return abiDecoder.Decode(log)
	}).Times(2)

	rec := reconciler.New(tm.store, tm.ledger, tm.registry, dec, tm.splitter, tm.publisher, tm.blocks, tm.clock, reconciler.Config{
		Chain:         chain,
		GenesisBlock:  100,
		Confirmations: 2,
		MaxBlocks:     10,
		Contracts:     map[domain.Stream]common.Address{domain.StreamModels: modelRegistry},
	})

	tm.expectWindow(112, 100, 109,
		listedStatusLog(t, 3, false, 102, 7),
		modelListedLog(t, 3, 101, 0),
	)
	result, err := rec.Advance(ctx, chain, domain.StreamModels, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, uint64(110), result.NewCursor)

	model, err := tm.store.GetModel(ctx, chain, 3)
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.True(t, model.Listed)
}

func TestAdvance_PublishesAppliedEvents(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tm := setupReconciler(t)
	publisher := mocks.NewMockPublisher(ctrl)
	rec := reconciler.New(tm.store, tm.ledger, tm.registry, decoder.New(chain), tm.splitter, publisher, tm.blocks, tm.clock, reconciler.Config{
		Chain:        chain,
		GenesisBlock: 100,
		Contracts:    map[domain.Stream]common.Address{domain.StreamModels: modelRegistry},
	})

	tm.expectWindow(101, 100, 101, modelListedLog(t, 3, 100, 0))
	publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.ReconciledEvent) error {
			assert.Equal(t, domain.EventModelListed, event.EventName)
			assert.Equal(t, uint64(100), event.BlockNumber)
			return errors.New("broker down")
		})

	// a publish failure never fails the advance
	result, err := rec.Advance(ctx, chain, domain.StreamModels, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
}

func TestAdvance_UnknownStreamOrChain(t *testing.T) {
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	_, err := tm.reconciler.Advance(context.Background(), domain.ChainBaseMainnet, domain.StreamModels, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownStream)

	_, err = tm.reconciler.Advance(context.Background(), chain, domain.Stream("agents"), 0)
	assert.ErrorIs(t, err, domain.ErrUnknownStream)
}

func TestAdvanceAll_OneFailingStream(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(112), nil).Times(3)
	tm.ledger.EXPECT().GetLogs(gomock.Any(), gomock.Any(), gomock.Any(), []common.Address{modelRegistry}, gomock.Any()).Return(nil, nil)
	tm.ledger.EXPECT().GetLogs(gomock.Any(), gomock.Any(), gomock.Any(), []common.Address{licenseRegistry}, gomock.Any()).Return(nil, errors.New("timeout"))
	tm.ledger.EXPECT().GetLogs(gomock.Any(), gomock.Any(), gomock.Any(), []common.Address{paymentRouter}, gomock.Any()).Return(nil, nil)

	results, err := tm.reconciler.AdvanceAll(ctx, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "licenses")
	assert.Len(t, results, 2)
	for _, result := range results {
		assert.Equal(t, uint64(110), result.NewCursor)
	}
}

func TestReindexModel(t *testing.T) {
	ctx := context.Background()
	tm := setupReconciler(t)
	defer tm.ctrl.Finish()

	_, err := tm.store.UpsertModel(ctx, store.UpsertModelInput{
		Chain: chain, ModelID: 3, Owner: "0x1111111111111111111111111111111111111111", Creator: "0x2222222222222222222222222222222222222222",
		Listed: true, Version: 1, URI: "ipfs://QmOld", Position: domain.Position{Block: 101},
	})
	require.NoError(t, err)

	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(500), nil)
	tm.registry.EXPECT().GetModel(gomock.Any(), uint64(3)).Return(&ethereum.ModelView{
		ModelID: 3, Owner: "0x1111111111111111111111111111111111111111", Creator: "0x2222222222222222222222222222222222222222",
		Listed: false, URI: "ipfs://QmNew", Version: 4, TermsHash: "0x02",
	}, nil)

	model, err := tm.reconciler.ReindexModel(ctx, chain, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), model.Version)
	assert.Equal(t, "ipfs://QmNew", model.URI)
	assert.False(t, model.Listed)
	assert.Equal(t, uint64(500), model.UpdatedBlock)

	// older events replayed after the snapshot are no-ops
	tm.expectWindow(112, 100, 109, listedStatusLog(t, 3, true, 105, 0))
	result, err := tm.reconciler.Advance(ctx, chain, domain.StreamModels, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)

	model, err = tm.store.GetModel(ctx, chain, 3)
	require.NoError(t, err)
	assert.False(t, model.Listed)

	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(501), nil)
	tm.registry.EXPECT().GetModel(gomock.Any(), uint64(9)).Return(nil, domain.ErrModelNotFound)
	_, err = tm.reconciler.ReindexModel(ctx, chain, 9)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}
