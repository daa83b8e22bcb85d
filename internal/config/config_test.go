package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-protocol/noah-client/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCLIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		missingFile bool
		expectError bool
		validate    func(*testing.T, *CLIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
ethereum:
  rpc_url: "https://sepolia.example.com"
  chain_id: 11155111
  noah_address: "0x1111111111111111111111111111111111111111"
  receipt_poll_interval: "500ms"
indexer:
  url: "https://indexer.example.com"
  poll_interval: "1s"
  max_poll_attempts: 20
wallet:
  mode: rpc
  rpc_url: "http://127.0.0.1:9545"
cache:
  dir: "/tmp/noah-test"
  ttl: "10s"
  stale_window: "1h"
`,
			validate: func(t *testing.T, cfg *CLIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "https://sepolia.example.com", cfg.Ethereum.RPCURL)
				assert.Equal(t, domain.ChainSepolia, cfg.Ethereum.ChainID)
				assert.Equal(t, "0x1111111111111111111111111111111111111111", cfg.Ethereum.NoahAddress)
				assert.Equal(t, 500*time.Millisecond, cfg.Ethereum.ReceiptPollInterval)
				assert.Equal(t, "https://indexer.example.com", cfg.Indexer.URL)
				assert.Equal(t, time.Second, cfg.Indexer.PollInterval)
				assert.Equal(t, 20, cfg.Indexer.MaxPollAttempts)
				assert.Equal(t, "rpc", cfg.Wallet.Mode)
				assert.Equal(t, "http://127.0.0.1:9545", cfg.Wallet.RPCURL)
				assert.Equal(t, "/tmp/noah-test", cfg.Cache.Dir)
				assert.Equal(t, 10*time.Second, cfg.Cache.TTL)
				assert.Equal(t, time.Hour, cfg.Cache.StaleWindow)
			},
		},
		{
			name: "config with defaults",
			configFile: `
ethereum:
  rpc_url: "http://localhost:8545"
`,
			validate: func(t *testing.T, cfg *CLIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, domain.ChainAnvil, cfg.Ethereum.ChainID)
				assert.Equal(t, domain.DEFAULT_NOAH_ADDRESS, cfg.Ethereum.NoahAddress)
				assert.Equal(t, 2*time.Second, cfg.Ethereum.ReceiptPollInterval)
				assert.Equal(t, 3*time.Second, cfg.Indexer.PollInterval)
				assert.Equal(t, 0, cfg.Indexer.MaxPollAttempts)
				assert.Equal(t, "key", cfg.Wallet.Mode)
				assert.True(t, cfg.Wallet.Confirm)
				assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
				assert.Equal(t, 24*time.Hour, cfg.Cache.StaleWindow)
				assert.Equal(t, 512, cfg.Cache.AllowanceSize)
				assert.Equal(t, "NOAH_PROGRESS", cfg.NATS.StreamName)
				assert.NotEmpty(t, cfg.Cache.Dir)
			},
		},
		{
			name: "rpc wallet without url",
			configFile: `
wallet:
  mode: rpc
`,
			expectError: true,
		},
		{
			name: "both key sources",
			configFile: `
wallet:
  private_key: "0xabc"
  keystore_path: "/tmp/keystore.json"
`,
			expectError: true,
		},
		{
			name: "unknown wallet mode",
			configFile: `
wallet:
  mode: ledger
`,
			expectError: true,
		},
		{
			name:        "missing explicit config file",
			missingFile: true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var configFile string
			if tt.missingFile {
				configFile = filepath.Join(t.TempDir(), "nonexistent.yaml")
			} else {
				configFile = writeConfig(t, tt.configFile)
			}

			cfg, err := LoadCLIConfig(configFile, t.TempDir())

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
  port: 9090
database:
  host: localhost
  user: noah
  password: secret
  dbname: noah
indexer:
  url: "https://indexer.example.com"
warm_owners:
  - "0x1111111111111111111111111111111111111111"
`)

	cfg, err := LoadAPIConfig(configFile, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Database.Configured())
	assert.Equal(t, []string{"0x1111111111111111111111111111111111111111"}, cfg.WarmOwners)
	assert.Equal(t, time.Minute, cfg.WarmInterval)
}

func TestLoadKeeperConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		configFile := writeConfig(t, `
wallet:
  private_key: "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
keeper:
  owners:
    - "0x1111111111111111111111111111111111111111"
    - "0x2222222222222222222222222222222222222222"
`)

		cfg, err := LoadKeeperConfig(configFile, t.TempDir())
		require.NoError(t, err)
		assert.Len(t, cfg.Keeper.Owners, 2)
		assert.Equal(t, 5*time.Minute, cfg.Keeper.Interval)
		assert.Equal(t, 8, cfg.Keeper.PoolSize)
		assert.False(t, cfg.Wallet.Confirm)
	})

	t.Run("rejects remote wallet", func(t *testing.T) {
		configFile := writeConfig(t, `
wallet:
  mode: rpc
  rpc_url: "http://127.0.0.1:9545"
`)

		cfg, err := LoadKeeperConfig(configFile, t.TempDir())
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// godotenv.Overload sets real process variables; clear them for other tests
	envKeys := []string{
		"NOAH_DEBUG",
		"NOAH_ETHEREUM_CHAIN_ID",
		"NOAH_INDEXER_URL",
		"NOAH_CACHE_TTL",
	}
	for _, key := range envKeys {
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}

	envContent := `NOAH_DEBUG=true
NOAH_ETHEREUM_CHAIN_ID=42161
NOAH_INDEXER_URL=https://env-indexer.example.com
NOAH_CACHE_TTL=45s
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	configPath := writeConfig(t, `
debug: false
ethereum:
  chain_id: 31337
indexer:
  url: "https://file-indexer.example.com"
`)

	cfg, err := LoadCLIConfig(configPath, envDir)
	require.NoError(t, err)

	// values from the .env file override the config file
	assert.True(t, cfg.Debug)
	assert.Equal(t, domain.ChainArbitrum, cfg.Ethereum.ChainID)
	assert.Equal(t, "https://env-indexer.example.com", cfg.Indexer.URL)
	assert.Equal(t, 45*time.Second, cfg.Cache.TTL)
}
