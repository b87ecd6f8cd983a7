package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadReconcilerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *ReconcilerServiceConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5433
  user: testuser
  password: testpass
  dbname: testdb
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
ethereum:
  rpc_url: "http://localhost:8545"
  chain_id: "eip155:11155111"
  genesis_block: 1000
  confirmations: 3
contracts:
  model_registry: "0x1111111111111111111111111111111111111111"
  license_registry: "0x2222222222222222222222222222222222222222"
  payment_router: "0x3333333333333333333333333333333333333333"
reconciler:
  poll_interval: "5s"
  max_blocks: 500
`,
			validate: func(t *testing.T, cfg *ReconcilerServiceConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, domain.ChainEthereumSepolia, cfg.Ethereum.ChainID)
				assert.Equal(t, uint64(1000), cfg.Ethereum.GenesisBlock)
				assert.Equal(t, uint64(3), cfg.Ethereum.Confirmations)
				assert.Equal(t, 5*time.Second, cfg.Reconciler.PollInterval)
				assert.Equal(t, uint64(500), cfg.Reconciler.MaxBlocks)

				contract, err := cfg.Contracts.StreamContract(domain.StreamLicenses)
				require.NoError(t, err)
				assert.Equal(t, "0x2222222222222222222222222222222222222222", contract)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
`,
			validate: func(t *testing.T, cfg *ReconcilerServiceConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "MODEL_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, domain.ChainEthereumMainnet, cfg.Ethereum.ChainID)
				assert.Equal(t, uint64(6), cfg.Ethereum.Confirmations)
				assert.Equal(t, 30*time.Second, cfg.Ethereum.CallTimeout)
				assert.Equal(t, uint64(2000), cfg.Reconciler.MaxBlocks)
				assert.Equal(t, 100, cfg.Splitter.ProcessBatch)
				assert.Equal(t, 10*time.Minute, cfg.Splitter.WithdrawalStaleAfter)
				assert.Equal(t, time.Hour, cfg.Metadata.TTL)
				assert.Equal(t, []string{domain.DEFAULT_IPFS_GATEWAY, "https://dweb.link"}, cfg.Metadata.IPFSGateways)
				assert.Equal(t, ":9090", cfg.Metrics.ListenAddr)
			},
		},
		{
			name: "invalid value type",
			configFile: `
database:
  port: invalid
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadReconcilerConfig(writeConfig(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadAPIConfig(t *testing.T) {
	configFile := writeConfig(t, `
server:
  port: 9000
auth:
  api_keys:
    - key-1
    - key-2
entitlement:
  max_scan_depth: 25
`)

	cfg, err := LoadAPIConfig(configFile, "")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"key-1", "key-2"}, cfg.Auth.APIKeys)
	assert.Equal(t, 25, cfg.Entitlement.MaxScanDepth)
	assert.Equal(t, uint64(50), cfg.Entitlement.MaxCursorLag)
	assert.Equal(t, "model-reindex", cfg.Temporal.TaskQueue)
}

func TestLoadWorkerConfig_EnvOverride(t *testing.T) {
	t.Setenv("FF_MODEL_INDEXER_DATABASE_HOST", "db.internal")
	t.Setenv("FF_MODEL_INDEXER_TEMPORAL_TASK_QUEUE", "custom-queue")

	cfg, err := LoadWorkerConfig(writeConfig(t, "debug: false\n"), "")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "custom-queue", cfg.Temporal.TaskQueue)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "primary",
		Port:     5432,
		User:     "u",
		Password: "p",
		DBName:   "models",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=primary port=5432 user=u password=p dbname=models sslmode=disable", cfg.DSN())
	assert.Equal(t, "", cfg.ReadDSN())

	cfg.ReadHost = "replica"
	assert.Equal(t, "host=replica port=5432 user=u password=p dbname=models sslmode=disable", cfg.ReadDSN())

	cfg.ReadPort = 6432
	assert.Equal(t, "host=replica port=6432 user=u password=p dbname=models sslmode=disable", cfg.ReadDSN())
}

func TestContractsConfig_StreamContract(t *testing.T) {
	cfg := ContractsConfig{ModelRegistry: "0x1111111111111111111111111111111111111111"}

	address, err := cfg.StreamContract(domain.StreamModels)
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", address)

	_, err = cfg.StreamContract(domain.StreamPayments)
	assert.ErrorIs(t, err, domain.ErrUnknownStream)

	_, err = cfg.StreamContract(domain.Stream("unknown"))
	assert.ErrorIs(t, err, domain.ErrUnknownStream)
}

func TestLoadAPIConfig_ServerAndAuth(t *testing.T) {
	configFile := writeConfig(t, `
server:
  allowed_origins:
    - https://app.feralfile.com
auth:
  jwt_issuer: ff-admin
`)

	cfg, err := LoadAPIConfig(configFile, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://app.feralfile.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "ff-admin", cfg.Auth.JWTIssuer)
	assert.Equal(t, 15*time.Minute, cfg.Temporal.WorkflowExecutionTimeout)
}

func TestLoadWorkerConfig_ReindexDefaults(t *testing.T) {
	cfg, err := LoadWorkerConfig(writeConfig(t, "reindex:\n  max_attempts: 5\n"), "")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Reindex.LedgerTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Reindex.MetadataTimeout)
	assert.Equal(t, int32(5), cfg.Reindex.MaxAttempts)
}
