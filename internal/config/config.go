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

	"github.com/noah-protocol/noah-client/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// EthereumConfig holds chain endpoint configuration
type EthereumConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	ChainID             domain.Chain  `mapstructure:"chain_id"`
	NoahAddress         string        `mapstructure:"noah_address"`
	ReceiptPollInterval time.Duration `mapstructure:"receipt_poll_interval"`
}

// IndexerConfig holds the backend indexer API configuration
type IndexerConfig struct {
	URL               string        `mapstructure:"url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	// MaxPollAttempts bounds the confirmation poller; 0 polls until cancelled
	MaxPollAttempts int `mapstructure:"max_poll_attempts"`
}

// WalletConfig selects how the connected account signs
type WalletConfig struct {
	// Mode is "key" for a local key or "rpc" for a remote EIP-1193 wallet
	Mode         string `mapstructure:"mode"`
	PrivateKey   string `mapstructure:"private_key"`
	KeystorePath string `mapstructure:"keystore_path"`
	Passphrase   string `mapstructure:"passphrase"`
	RPCURL       string `mapstructure:"rpc_url"`
	// Confirm asks on the terminal before every signature
	Confirm bool `mapstructure:"confirm"`
}

// CacheConfig holds local cache configuration
type CacheConfig struct {
	Dir            string        `mapstructure:"dir"`
	TTL            time.Duration `mapstructure:"ttl"`
	StaleWindow    time.Duration `mapstructure:"stale_window"`
	AllowanceTTL   time.Duration `mapstructure:"allowance_ttl"`
	AllowanceSize  int           `mapstructure:"allowance_size"`
	MemoryEntries  int           `mapstructure:"memory_entries"`
	CheckPoolSize  int           `mapstructure:"check_pool_size"`
	RefreshTimeout time.Duration `mapstructure:"refresh_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
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
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// KeeperSettings holds flood keeper settings
type KeeperSettings struct {
	Owners   []string      `mapstructure:"owners"`
	Interval time.Duration `mapstructure:"interval"`
	PoolSize int           `mapstructure:"pool_size"`
}

// CLIConfig holds configuration for the noah CLI
type CLIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Indexer    IndexerConfig  `mapstructure:"indexer"`
	Wallet     WalletConfig   `mapstructure:"wallet"`
	Cache      CacheConfig    `mapstructure:"cache"`
	NATS       NATSConfig     `mapstructure:"nats"`
}

// APIConfig holds configuration for the REST gateway
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Indexer    IndexerConfig  `mapstructure:"indexer"`
	Cache      CacheConfig    `mapstructure:"cache"`
	Database   DatabaseConfig `mapstructure:"database"`
	// WarmOwners are refreshed into the activity cache periodically
	WarmOwners   []string      `mapstructure:"warm_owners"`
	WarmInterval time.Duration `mapstructure:"warm_interval"`
}

// KeeperConfig holds configuration for the flood keeper
type KeeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Wallet     WalletConfig   `mapstructure:"wallet"`
	Keeper     KeeperSettings `mapstructure:"keeper"`
}

// LoadCLIConfig loads configuration for the noah CLI
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("noah", configFile, envPath)

	setEthereumDefaults(v)
	setIndexerDefaults(v)
	setCacheDefaults(v)
	v.SetDefault("wallet.mode", "key")
	v.SetDefault("wallet.confirm", true)
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("nats.stream_name", "NOAH_PROGRESS")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "noah-cli")

	if err := readConfig(v, configFile); err != nil {
		return nil, err
	}

	var config CLIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Wallet.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadAPIConfig loads configuration for the REST gateway
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setEthereumDefaults(v)
	setIndexerDefaults(v)
	setCacheDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("warm_interval", "1m")

	if err := readConfig(v, configFile); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadKeeperConfig loads configuration for the flood keeper
func LoadKeeperConfig(configFile string, envPath string) (*KeeperConfig, error) {
	v := configureViper("keeper", configFile, envPath)

	setEthereumDefaults(v)
	v.SetDefault("wallet.mode", "key")
	v.SetDefault("wallet.confirm", false)
	v.SetDefault("keeper.interval", "5m")
	v.SetDefault("keeper.pool_size", 8)

	if err := readConfig(v, configFile); err != nil {
		return nil, err
	}

	var config KeeperConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Wallet.Validate(); err != nil {
		return nil, err
	}
	if config.Wallet.Mode != "key" {
		return nil, fmt.Errorf("keeper requires wallet.mode=key, got %q", config.Wallet.Mode)
	}

	return &config, nil
}

// Validate checks that the selected wallet mode has what it needs
func (w WalletConfig) Validate() error {
	switch w.Mode {
	case "key":
		if w.PrivateKey == "" && w.KeystorePath == "" {
			return nil // read-only use; signing commands fail later with a clear error
		}
		if w.PrivateKey != "" && w.KeystorePath != "" {
			return errors.New("wallet.private_key and wallet.keystore_path are mutually exclusive")
		}
		return nil
	case "rpc":
		if w.RPCURL == "" {
			return errors.New("wallet.rpc_url is required when wallet.mode=rpc")
		}
		return nil
	default:
		return fmt.Errorf("unknown wallet.mode %q", w.Mode)
	}
}

func setEthereumDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.rpc_url", "http://127.0.0.1:8545")
	v.SetDefault("ethereum.chain_id", uint64(domain.ChainAnvil))
	v.SetDefault("ethereum.noah_address", domain.DEFAULT_NOAH_ADDRESS)
	v.SetDefault("ethereum.receipt_poll_interval", "2s")
}

func setIndexerDefaults(v *viper.Viper) {
	v.SetDefault("indexer.url", "http://127.0.0.1:3001")
	v.SetDefault("indexer.timeout", "10s")
	v.SetDefault("indexer.requests_per_second", 5.0)
	v.SetDefault("indexer.poll_interval", "3s")
	v.SetDefault("indexer.max_poll_attempts", 0)
}

func setCacheDefaults(v *viper.Viper) {
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("cache.stale_window", "24h")
	v.SetDefault("cache.allowance_ttl", "30s")
	v.SetDefault("cache.allowance_size", 512)
	v.SetDefault("cache.memory_entries", 256)
	v.SetDefault("cache.check_pool_size", 4)
	v.SetDefault("cache.refresh_timeout", "15s")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "noah")
	}
	return filepath.Join(dir, "noah")
}

// readConfig reads the config file; a missing file is fine when none was requested explicitly
func readConfig(v *viper.Viper, configFile string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
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

	v.SetEnvPrefix("NOAH")
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
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.noah_address",
		"ethereum.receipt_poll_interval",
		// Indexer
		"indexer.url",
		"indexer.timeout",
		"indexer.requests_per_second",
		"indexer.poll_interval",
		"indexer.max_poll_attempts",
		// Wallet
		"wallet.mode",
		"wallet.private_key",
		"wallet.keystore_path",
		"wallet.passphrase",
		"wallet.rpc_url",
		"wallet.confirm",
		// Cache
		"cache.dir",
		"cache.ttl",
		"cache.stale_window",
		"cache.allowance_ttl",
		"cache.allowance_size",
		"cache.memory_entries",
		"cache.check_pool_size",
		"cache.refresh_timeout",
		// Database
		"database.host",
		"database.port",
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
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// API
		"warm_owners",
		"warm_interval",
		// Keeper
		"keeper.owners",
		"keeper.interval",
		"keeper.pool_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
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

// Configured reports whether a database host is set
func (c *DatabaseConfig) Configured() bool {
	return c.Host != ""
}
