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

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/config"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/providers/ethereum"
	"github.com/noah-protocol/noah-client/internal/sweeper"
	"github.com/noah-protocol/noah-client/internal/wallet"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadKeeperConfig(*configFile, *envPath)
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
			"service": "flood-keeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting flood keeper")

	owners, err := domain.ParseAddresses(cfg.Keeper.Owners)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid keeper owners", zap.Error(err))
	}
	if len(owners) == 0 {
		logger.FatalCtx(ctx, "No owners configured to watch")
	}

	noahAddress, err := domain.ParseAddress(cfg.Ethereum.NoahAddress)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid Noah contract address", zap.Error(err))
	}

	// Connect to the chain
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()

	// The keeper signs unattended, so terminal confirmation is never wired
	cfg.Wallet.Confirm = false
	signer, closeWallet, err := wallet.Open(ctx, cfg.Wallet, cfg.Ethereum.ChainID, ethClient, wallet.Deps{
		FileSystem: adapter.NewFileSystem(),
		RPCDialer:  adapter.NewRPCDialer(),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open keeper wallet", zap.Error(err))
	}
	defer closeWallet()
	logger.InfoCtx(ctx, "Keeper wallet ready", zap.String("account", signer.Address().Hex()))

	clock := adapter.NewClock()
	keeper := sweeper.NewFloodKeeper(sweeper.FloodKeeperConfig{
		Owners:              owners,
		Chain:               cfg.Ethereum.ChainID,
		Interval:            cfg.Keeper.Interval,
		PoolSize:            cfg.Keeper.PoolSize,
		ReceiptPollInterval: cfg.Ethereum.ReceiptPollInterval,
	}, ethereum.NewNoahClient(noahAddress, ethClient, clock), signer, ethClient, clock)

	// Start the keeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := keeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Give an in-flight flood time to finish before cancelling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := keeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}
	cancel()

	logger.InfoCtx(shutdownCtx, "Flood keeper stopped")
}
