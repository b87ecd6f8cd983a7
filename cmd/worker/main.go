package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/block"
	"github.com/feral-file/ff-model-indexer/internal/config"
	"github.com/feral-file/ff-model-indexer/internal/decoder"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
	temporal "github.com/feral-file/ff-model-indexer/internal/providers/temporal"
	"github.com/feral-file/ff-model-indexer/internal/reconciler"
	"github.com/feral-file/ff-model-indexer/internal/splitter"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/uri"
	"github.com/feral-file/ff-model-indexer/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "model-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Model Worker")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	// Route reads to the replica when one is configured
	if readDSN := cfg.Database.ReadDSN(); readDSN != "" {
		if err := store.UseReadReplica(db, postgres.Open(readDSN)); err != nil {
			logger.FatalCtx(ctx, "Failed to configure read replica", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Read replica configured", zap.String("read_host", cfg.Database.ReadHost))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	canonicalizer := adapter.NewCanonicalizer()
	httpClient := adapter.NewHTTPClient(cfg.Metadata.FetchTimeout, adapter.DefaultRetryPolicy)

	adapterEthClient, err := ethereum.Dial(ctx, adapter.NewEthClientDialer(), cfg.Ethereum.RPCURL, cfg.Ethereum.ChainID)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer adapterEthClient.Close()

	ledgerClient, err := ethereum.NewClient(cfg.Ethereum.ChainID, adapterEthClient, ethereum.ClientConfig{
		CallTimeout:    cfg.Ethereum.CallTimeout,
		RateLimitRPS:   cfg.Ethereum.RateLimitRPS,
		RateLimitBurst: cfg.Ethereum.RateLimitBurst,
		Retry:          adapter.DefaultRetryPolicy,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger client", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.String("chain_id", string(cfg.Ethereum.ChainID)))

	registryReader := ethereum.NewRegistryReader(ledgerClient,
		common.HexToAddress(cfg.Contracts.ModelRegistry),
		common.HexToAddress(cfg.Contracts.LicenseRegistry))
	blockProvider := block.NewBlockProvider(
		ethereum.NewBlockFetcher(adapterEthClient, clockAdapter),
		block.Config{
			TTL:         cfg.Ethereum.BlockHeadTTL,
			StaleWindow: cfg.Ethereum.BlockHeadStaleWindow,
		},
		clockAdapter)

	contracts := make(map[domain.Stream]common.Address, len(domain.AllStreams))
	for _, stream := range domain.AllStreams {
		if address, err := cfg.Contracts.StreamContract(stream); err == nil {
			contracts[stream] = common.HexToAddress(address)
		}
	}

	// The worker only reindexes single models, it never advances cursors or publishes
	rec := reconciler.New(
		dataStore,
		ledgerClient,
		registryReader,
		decoder.New(cfg.Ethereum.ChainID),
		splitter.NewRegistry(dataStore, ledgerClient, clockAdapter, splitter.Config{
			Factory:      common.HexToAddress(cfg.Contracts.SplitterFactory),
			InitCodeHash: common.HexToHash(cfg.Contracts.SplitterInitCodeHash),
			Marketplace:  cfg.Contracts.MarketplaceTreasury,
		}),
		nil,
		blockProvider,
		clockAdapter,
		reconciler.Config{
			Chain:         cfg.Ethereum.ChainID,
			GenesisBlock:  cfg.Ethereum.GenesisBlock,
			Confirmations: cfg.Ethereum.Confirmations,
			Contracts:     contracts,
		})

	metadataManager := metadata.NewManager(dataStore,
		uri.NewFetcher(httpClient, uri.Config{
			IPFSGateways:    cfg.Metadata.IPFSGateways,
			ArweaveGateways: cfg.Metadata.ArweaveGateways,
			MaxBodySize:     cfg.Metadata.MaxBodySize,
		}),
		canonicalizer,
		clockAdapter,
		metadata.Config{
			TTL:          cfg.Metadata.TTL,
			FetchTimeout: cfg.Metadata.FetchTimeout,
		})

	executor := workflows.NewExecutor(rec, metadataManager)

	// Connect to Temporal
	temporalClient, err := client.Dial(temporal.ClientOptions(cfg.Temporal.HostPort, cfg.Temporal.Namespace, logger.Default()))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.TaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			Interceptors: []interceptor.WorkerInterceptor{
				temporal.NewSentryActivityInterceptor(),
			},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("taskQueue", cfg.Temporal.TaskQueue))

	workerCore := workflows.NewWorkerCore(executor, workflows.WorkerCoreConfig{
		ReindexTimeout:  cfg.Reindex.LedgerTimeout,
		MetadataTimeout: cfg.Reindex.MetadataTimeout,
		MaxAttempts:     cfg.Reindex.MaxAttempts,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.ReindexModel)

	// Register activities
	temporalWorker.RegisterActivity(executor.StoreLedgerModel)
	temporalWorker.RegisterActivity(executor.WarmModelMetadata)

	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))

	temporalWorker.Stop()
	logger.Info("Worker stopped")
}
