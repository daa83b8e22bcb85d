package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/noah-protocol/noah-client/internal/activity"
	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/allowance"
	"github.com/noah-protocol/noah-client/internal/api/server"
	"github.com/noah-protocol/noah-client/internal/api/shared/executor"
	"github.com/noah-protocol/noah-client/internal/config"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/providers/ethereum"
	"github.com/noah-protocol/noah-client/internal/providers/indexer"
	"github.com/noah-protocol/noah-client/internal/store"
	"github.com/noah-protocol/noah-client/internal/sweeper"
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
			"service": "noah-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Noah API")

	// Connect to the chain
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()

	noahAddress, err := domain.ParseAddress(cfg.Ethereum.NoahAddress)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid Noah contract address", zap.Error(err))
	}

	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Activity cache: postgres when configured, local files otherwise
	var cacheStore store.CacheStore
	if cfg.Database.Configured() {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		if err := store.Migrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to database",
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
			zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		)
		cacheStore = store.NewPGStore(db)
	} else {
		cacheStore, err = store.NewFileStore(cfg.Cache.Dir, adapter.NewFileSystem(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to open cache directory", zap.Error(err), zap.String("dir", cfg.Cache.Dir))
		}
		logger.WarnCtx(ctx, "Database not configured, caching activity on disk", zap.String("dir", cfg.Cache.Dir))
	}

	// Initialize services
	noah := ethereum.NewNoahClient(noahAddress, ethClient, clock)
	checker := allowance.NewChecker(allowance.Config{
		PoolSize: cfg.Cache.CheckPoolSize,
		TTL:      cfg.Cache.AllowanceTTL,
		Size:     cfg.Cache.AllowanceSize,
	}, ethereum.NewERC20Client(ethClient))
	defer checker.Close()

	indexerClient := indexer.NewClient(indexer.Config{
		BaseURL:           cfg.Indexer.URL,
		RequestsPerSecond: cfg.Indexer.RequestsPerSecond,
	}, adapter.NewHTTPClientWithRetry(cfg.Indexer.Timeout, adapter.DefaultRetryConfig), jsonAdapter)

	activitySvc := activity.NewService(activity.Config{
		TTL:            cfg.Cache.TTL,
		StaleWindow:    cfg.Cache.StaleWindow,
		MemoryEntries:  cfg.Cache.MemoryEntries,
		RefreshTimeout: cfg.Cache.RefreshTimeout,
	}, indexerClient, cacheStore, clock, jsonAdapter)
	defer activitySvc.Close()

	exec := executor.NewExecutor(cfg.Ethereum.ChainID, noah, activitySvc, checker, clock)

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, exec)

	warmOwners, err := domain.ParseAddresses(cfg.WarmOwners)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid warm_owners", zap.Error(err))
	}
	var warmer sweeper.Sweeper
	if len(warmOwners) > 0 {
		warmer = sweeper.NewActivityWarmer(sweeper.ActivityWarmerConfig{
			Owners:   warmOwners,
			Chain:    cfg.Ethereum.ChainID,
			Interval: cfg.WarmInterval,
		}, activitySvc, clock)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start()
	})
	if warmer != nil {
		g.Go(func() error {
			return warmer.Start(gctx)
		})
	}

	// Wait for interrupt signal or a component failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case <-gctx.Done():
		logger.WarnCtx(ctx, "Component exited, shutting down")
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, fmt.Errorf("server forced to shutdown: %w", err))
	}
	if warmer != nil {
		if err := warmer.Stop(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err)
		}
	}
	if err := g.Wait(); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
