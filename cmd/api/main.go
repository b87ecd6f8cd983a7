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
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/api/middleware"
	"github.com/feral-file/ff-model-indexer/internal/api/server"
	"github.com/feral-file/ff-model-indexer/internal/api/shared/executor"
	"github.com/feral-file/ff-model-indexer/internal/block"
	"github.com/feral-file/ff-model-indexer/internal/config"
	"github.com/feral-file/ff-model-indexer/internal/entitlement"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
	temporal "github.com/feral-file/ff-model-indexer/internal/providers/temporal"
	"github.com/feral-file/ff-model-indexer/internal/splitter"
	"github.com/feral-file/ff-model-indexer/internal/store"
	"github.com/feral-file/ff-model-indexer/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "model-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Model Indexer API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
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
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

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

	// Initialize domain components
	resolver := entitlement.NewResolver(dataStore, registryReader, blockProvider, canonicalizer, clockAdapter,
		entitlement.Config{
			MaxScanDepth: cfg.Entitlement.MaxScanDepth,
			MaxCursorLag: cfg.Entitlement.MaxCursorLag,
		})
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
			TTL:          cfg.Metadata.TTL,
			FetchTimeout: cfg.Metadata.FetchTimeout,
		})

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(temporal.ClientOptions(cfg.Temporal.HostPort, cfg.Temporal.Namespace, logger.Default()))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

	exec := executor.NewExecutor(dataStore, resolver, splitterRegistry, metadataManager, temporalClient,
		executor.Config{
			Chain:                 cfg.Ethereum.ChainID,
			OrchestratorTaskQueue: cfg.Temporal.TaskQueue,
			ReindexTimeout:        cfg.Temporal.WorkflowExecutionTimeout,
		})

	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			JWTIssuer:    cfg.Auth.JWTIssuer,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, exec)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// The original ctx is canceled, shut down on a fresh one
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
