package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests.
// Without TEST_DB_HOST or a reachable docker daemon the PostgreSQL tests are skipped.
func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn, err := testDSN(ctx)
	if err != nil {
		fmt.Printf("PostgreSQL unavailable, skipping database tests: %v\n", err)
	} else {
		testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			err = Migrate(testDB)
		}
		if err != nil {
			fmt.Printf("Failed to initialize database: %v\n", err)
			terminateContainer(ctx)
			os.Exit(1)
		}
	}

	code := m.Run()

	terminateContainer(ctx)
	os.Exit(code)
}

// testDSN uses an external database when TEST_DB_HOST is set, otherwise starts a container
func testDSN(ctx context.Context) (dsn string, err error) {
	if dbHost := os.Getenv("TEST_DB_HOST"); dbHost != "" {
		dbPort := envOr("TEST_DB_PORT", "5432")
		dbUser := envOr("TEST_DB_USER", "postgres")
		dbPassword := envOr("TEST_DB_PASSWORD", "postgres")
		dbName := envOr("TEST_DB_NAME", "test_db")

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName), nil
	}

	defer func() {
		// testcontainers panics on some hosts without a docker socket
		if r := recover(); r != nil {
			pgContainer = nil
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	pgContainer, err = postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		pgContainer = nil
		return "", fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	return pgContainer.ConnectionString(ctx, "sslmode=disable")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func terminateContainer(ctx context.Context) {
	if pgContainer == nil {
		return
	}
	if err := pgContainer.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

// initPGTestDB returns a store inside a transaction that is rolled back after the test
func initPGTestDB(t *testing.T) CacheStore {
	if testDB == nil {
		t.Skip("PostgreSQL not available")
	}

	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

func TestPGStore_CacheEntry(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()
	key := "activity:0x1111111111111111111111111111111111111111:1"
	fetchedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	entry, err := s.GetCacheEntry(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, s.SetCacheEntry(ctx, key, json.RawMessage(`[{"type":"create"}]`), fetchedAt))

	entry, err = s.GetCacheEntry(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.JSONEq(t, `[{"type":"create"}]`, string(entry.Value))
	assert.True(t, fetchedAt.Equal(entry.FetchedAt))

	// upsert replaces the value
	later := fetchedAt.Add(30 * time.Second)
	require.NoError(t, s.SetCacheEntry(ctx, key, json.RawMessage(`[]`), later))
	entry, err = s.GetCacheEntry(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(entry.Value))
	assert.True(t, later.Equal(entry.FetchedAt))

	require.NoError(t, s.DeleteCacheEntry(ctx, key))
	entry, err = s.GetCacheEntry(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 10, open)
	assert.Equal(t, 2, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(4, 8, time.Minute, time.Minute)
	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}
