package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-model-indexer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// EthereumConfig holds ledger connection configuration
type EthereumConfig struct {
	RPCURL               string        `mapstructure:"rpc_url"`
	ChainID              domain.Chain  `mapstructure:"chain_id"`
	GenesisBlock         uint64        `mapstructure:"genesis_block"`
	Confirmations        uint64        `mapstructure:"confirmations"`
	CallTimeout          time.Duration `mapstructure:"call_timeout"`
	RateLimitRPS         float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst       int           `mapstructure:"rate_limit_burst"`
	PayerKey             string        `mapstructure:"payer_key"` // hex private key used for payouts, optional
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
}

// ContractsConfig holds the ledger contract addresses
type ContractsConfig struct {
	ModelRegistry        string `mapstructure:"model_registry"`
	LicenseRegistry      string `mapstructure:"license_registry"`
	PaymentRouter        string `mapstructure:"payment_router"`
	PayoutVault          string `mapstructure:"payout_vault"`
	SplitterFactory      string `mapstructure:"splitter_factory"`
	SplitterInitCodeHash string `mapstructure:"splitter_init_code_hash"`
	MarketplaceTreasury  string `mapstructure:"marketplace_treasury"`
}

// ReconcilerConfig holds scheduler configuration
type ReconcilerConfig struct {
	PollInterval       time.Duration `mapstructure:"poll_interval"`
	MaxBlocks          uint64        `mapstructure:"max_blocks"`
	MetadataRefreshMax int           `mapstructure:"metadata_refresh_max"`
}

// SplitterConfig holds splitter registry configuration
type SplitterConfig struct {
	ProcessBatch  int  `mapstructure:"process_batch"`
	MaxCASRetries int  `mapstructure:"max_cas_retries"`
	PayoutEnabled bool `mapstructure:"payout_enabled"`
	// WithdrawalStaleAfter fails and re-credits withdrawals left pending this long
	WithdrawalStaleAfter time.Duration `mapstructure:"withdrawal_stale_after"`
}

// MetadataConfig holds metadata fetcher and cache configuration
type MetadataConfig struct {
	IPFSGateways    []string      `mapstructure:"ipfs_gateways"`
	ArweaveGateways []string      `mapstructure:"arweave_gateways"`
	TTL             time.Duration `mapstructure:"ttl"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
}

// EntitlementConfig holds entitlement resolver configuration
type EntitlementConfig struct {
	MaxScanDepth int    `mapstructure:"max_scan_depth"`
	MaxCursorLag uint64 `mapstructure:"max_cursor_lag"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string        `mapstructure:"host_port"`
	Namespace                          string        `mapstructure:"namespace"`
	TaskQueue                          string        `mapstructure:"task_queue"`
	MaxConcurrentActivityExecutionSize int           `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64       `mapstructure:"worker_activities_per_second"`
	WorkflowExecutionTimeout           time.Duration `mapstructure:"workflow_execution_timeout"`
}

// ReindexConfig holds the reindex workflow activity settings
type ReindexConfig struct {
	LedgerTimeout   time.Duration `mapstructure:"ledger_timeout"`
	MetadataTimeout time.Duration `mapstructure:"metadata_timeout"`
	MaxAttempts     int32         `mapstructure:"max_attempts"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	JWTIssuer    string   `mapstructure:"jwt_issuer"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// MetricsConfig holds the prometheus endpoint configuration
type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// ReconcilerServiceConfig holds configuration for the reconciler binary
type ReconcilerServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum"`
	Contracts  ContractsConfig  `mapstructure:"contracts"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	Splitter   SplitterConfig   `mapstructure:"splitter"`
	Metadata   MetadataConfig   `mapstructure:"metadata"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Worker     WorkerConfig     `mapstructure:"worker"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Temporal    TemporalConfig    `mapstructure:"temporal"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Ethereum    EthereumConfig    `mapstructure:"ethereum"`
	Contracts   ContractsConfig   `mapstructure:"contracts"`
	Splitter    SplitterConfig    `mapstructure:"splitter"`
	Metadata    MetadataConfig    `mapstructure:"metadata"`
	Entitlement EntitlementConfig `mapstructure:"entitlement"`
}

// WorkerServiceConfig holds configuration for the Temporal worker
type WorkerServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Temporal   TemporalConfig  `mapstructure:"temporal"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Metadata   MetadataConfig  `mapstructure:"metadata"`
	Reindex    ReindexConfig   `mapstructure:"reindex"`
}

// LoadReconcilerConfig loads configuration for the reconciler
func LoadReconcilerConfig(configFile string, envPath string) (*ReconcilerServiceConfig, error) {
	v := configureViper("reconciler", configFile, envPath)

	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	setMetadataDefaults(v)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "MODEL_EVENTS")
	v.SetDefault("nats.subject_prefix", "models")
	v.SetDefault("nats.connection_name", "model-reconciler")
	v.SetDefault("reconciler.poll_interval", "15s")
	v.SetDefault("reconciler.max_blocks", 2000)
	v.SetDefault("reconciler.metadata_refresh_max", 50)
	v.SetDefault("splitter.process_batch", 100)
	v.SetDefault("splitter.max_cas_retries", 5)
	v.SetDefault("splitter.withdrawal_stale_after", "10m")
	v.SetDefault("metrics.listen_addr", ":9090")
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("worker.queue_size", 64)

	var cfg ReconcilerServiceConfig
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	setMetadataDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("splitter.max_cas_retries", 5)
	v.SetDefault("splitter.process_batch", 100)
	v.SetDefault("entitlement.max_scan_depth", 500)
	v.SetDefault("entitlement.max_cursor_lag", 50)

	var cfg APIConfig
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWorkerConfig loads configuration for the Temporal worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerServiceConfig, error) {
	v := configureViper("worker", configFile, envPath)

	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	setMetadataDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("reindex.ledger_timeout", "2m")
	v.SetDefault("reindex.metadata_timeout", "5m")
	v.SetDefault("reindex.max_attempts", 3)

	var cfg WorkerServiceConfig
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setEthereumDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.chain_id", string(domain.ChainEthereumMainnet))
	v.SetDefault("ethereum.confirmations", 6)
	v.SetDefault("ethereum.call_timeout", "30s")
	v.SetDefault("ethereum.rate_limit_rps", 10)
	v.SetDefault("ethereum.rate_limit_burst", 5)
	v.SetDefault("ethereum.block_head_ttl", "12s")
	v.SetDefault("ethereum.block_head_stale_window", "60s")
}

func setMetadataDefaults(v *viper.Viper) {
	v.SetDefault("metadata.ipfs_gateways", []string{domain.DEFAULT_IPFS_GATEWAY, "https://dweb.link"})
	v.SetDefault("metadata.arweave_gateways", []string{domain.DEFAULT_ARWEAVE_GATEWAY})
	v.SetDefault("metadata.ttl", "1h")
	v.SetDefault("metadata.fetch_timeout", "10s")
	v.SetDefault("metadata.max_body_size", 2*1024*1024)
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "model-reindex")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 20)
	v.SetDefault("temporal.workflow_execution_timeout", "15m")
}

// readAndUnmarshal reads the config file, falling back to environment variables when it is missing
func readAndUnmarshal(v *viper.Viper, out interface{}) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_MODEL_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.genesis_block",
		"ethereum.confirmations",
		"ethereum.call_timeout",
		"ethereum.rate_limit_rps",
		"ethereum.rate_limit_burst",
		"ethereum.payer_key",
		"ethereum.block_head_ttl",
		"ethereum.block_head_stale_window",
		// Contracts
		"contracts.model_registry",
		"contracts.license_registry",
		"contracts.payment_router",
		"contracts.payout_vault",
		"contracts.splitter_factory",
		"contracts.splitter_init_code_hash",
		"contracts.marketplace_treasury",
		// Reconciler
		"reconciler.poll_interval",
		"reconciler.max_blocks",
		"reconciler.metadata_refresh_max",
		// Splitter
		"splitter.process_batch",
		"splitter.max_cas_retries",
		"splitter.withdrawal_stale_after",
		"splitter.payout_enabled",
		// Metadata
		"metadata.ipfs_gateways",
		"metadata.arweave_gateways",
		"metadata.ttl",
		"metadata.fetch_timeout",
		"metadata.max_body_size",
		// Entitlement
		"entitlement.max_scan_depth",
		"entitlement.max_cursor_lag",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.workflow_execution_timeout",
		// Reindex
		"reindex.ledger_timeout",
		"reindex.metadata_timeout",
		"reindex.max_attempts",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.jwt_issuer",
		"auth.api_keys",
		// Metrics
		"metrics.listen_addr",
		// Worker pool
		"worker.pool_size",
		"worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		// Overload lets later files override earlier ones
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica connection string, or "" when no replica is configured.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	if c.ReadHost == "" {
		return ""
	}

	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StreamContract returns the contract address emitting the events of a stream
func (c *ContractsConfig) StreamContract(stream domain.Stream) (string, error) {
	var address string
	switch stream {
	case domain.StreamModels:
		address = c.ModelRegistry
	case domain.StreamLicenses:
		address = c.LicenseRegistry
	case domain.StreamPayments:
		address = c.PaymentRouter
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownStream, stream)
	}

	if address == "" {
		return "", fmt.Errorf("%w: no contract configured for %s", domain.ErrUnknownStream, stream)
	}

	return address, nil
}
