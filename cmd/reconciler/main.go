package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
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
	"github.com/feral-file/ff-model-indexer/internal/messaging"
	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/metrics"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-model-indexer/internal/providers/jetstream"
	"github.com/feral-file/ff-model-indexer/internal/reconciler"
	"github.com/feral-file/ff-model-indexer/internal/splitter"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	migrate    = flag.Bool("migrate", false, "Run schema migrations before starting")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcilerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "model-reconciler",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Model Reconciler")

	if !domain.IsValidChain(cfg.Ethereum.ChainID) {
		logger.FatalCtx(ctx, "Invalid chain id", zap.String("chain_id", string(cfg.Ethereum.ChainID)))
	}

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
	if *migrate {
		if err := store.Migrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Database schema migrated")
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	canonicalizer := adapter.NewCanonicalizer()
	httpClient := adapter.NewHTTPClient(cfg.Metadata.FetchTimeout, adapter.DefaultRetryPolicy)

	// Initialize ledger client
	adapterEthClient, err := ethereum.Dial(ctx, adapter.NewEthClientDialer(), cfg.Ethereum.RPCURL, cfg.Ethereum.ChainID)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer adapterEthClient.Close()

	ledgerClient, err := ethereum.NewClient(cfg.Ethereum.ChainID, adapterEthClient, ethereum.ClientConfig{
		CallTimeout:    cfg.Ethereum.CallTimeout,
		RateLimitRPS:   cfg.Ethereum.RateLimitRPS,
		RateLimitBurst: cfg.Ethereum.RateLimitBurst,
		PayerKey:       cfg.Ethereum.PayerKey,
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

	// Initialize NATS publisher, events are only logged when no broker is configured
	var publisher messaging.Publisher = messaging.NoopPublisher{}
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS url not configured, reconciled events will not be published")
	}
	defer publisher.Close()

	// Initialize domain components
	splitterRegistry := splitter.NewRegistry(dataStore, ledgerClient, clockAdapter, splitter.Config{
		Factory:       common.HexToAddress(cfg.Contracts.SplitterFactory),
		InitCodeHash:  common.HexToHash(cfg.Contracts.SplitterInitCodeHash),
		Marketplace:   cfg.Contracts.MarketplaceTreasury,
		MaxCASRetries: cfg.Splitter.MaxCASRetries,
		PayoutEnabled: cfg.Splitter.PayoutEnabled,
		PayoutVault:   common.HexToAddress(cfg.Contracts.PayoutVault),
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
			TTL:                cfg.Metadata.TTL,
			FetchTimeout:       cfg.Metadata.FetchTimeout,
			RefreshConcurrency: cfg.Worker.WorkerPoolSize,
		})

	contracts := make(map[domain.Stream]common.Address, len(domain.AllStreams))
	for _, stream := range domain.AllStreams {
		address, err := cfg.Contracts.StreamContract(stream)
		if err != nil {
			logger.WarnCtx(ctx, "Stream disabled", zap.String("stream", string(stream)), zap.Error(err))
			continue
		}
		contracts[stream] = common.HexToAddress(address)
	}
	if len(contracts) == 0 {
		logger.FatalCtx(ctx, "No stream contracts configured")
	}

	rec := reconciler.New(
		dataStore,
		ledgerClient,
		registryReader,
		decoder.New(cfg.Ethereum.ChainID),
		splitterRegistry,
		publisher,
		blockProvider,
		clockAdapter,
		reconciler.Config{
			Chain:         cfg.Ethereum.ChainID,
			GenesisBlock:  cfg.Ethereum.GenesisBlock,
			Confirmations: cfg.Ethereum.Confirmations,
			MaxBlocks:     cfg.Reconciler.MaxBlocks,
			Contracts:     contracts,
		})

	scheduler := reconciler.NewScheduler(rec, splitterRegistry, metadataManager, dataStore, clockAdapter,
		reconciler.SchedulerConfig{
			Chain:                cfg.Ethereum.ChainID,
			PollInterval:         cfg.Reconciler.PollInterval,
			MaxBlocks:            cfg.Reconciler.MaxBlocks,
			ProcessBatch:         cfg.Splitter.ProcessBatch,
			WithdrawalStaleAfter: cfg.Splitter.WithdrawalStaleAfter,
			MetadataRefreshMax:   cfg.Reconciler.MetadataRefreshMax,
		})

	// Serve prometheus metrics
	metricsServer := &http.Server{
		Addr:              cfg.Metrics.ListenAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.InfoCtx(ctx, "Serving metrics", zap.String("address", cfg.Metrics.ListenAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	go func() {
		if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "reconciler"))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.WarnCtx(shutdownCtx, "Failed to shutdown metrics server", zap.Error(err))
	}

	logger.Info("Model reconciler stopped")
}
