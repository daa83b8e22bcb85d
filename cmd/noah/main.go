package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-protocol/noah-client/internal/activity"
	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/allowance"
	"github.com/noah-protocol/noah-client/internal/cli"
	"github.com/noah-protocol/noah-client/internal/config"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/messaging"
	"github.com/noah-protocol/noah-client/internal/orchestrator"
	"github.com/noah-protocol/noah-client/internal/poller"
	"github.com/noah-protocol/noah-client/internal/providers/ethereum"
	"github.com/noah-protocol/noah-client/internal/providers/indexer"
	"github.com/noah-protocol/noah-client/internal/providers/jetstream"
	"github.com/noah-protocol/noah-client/internal/store"
	"github.com/noah-protocol/noah-client/internal/wallet"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()
	os.Exit(run(flag.Args()))
}

func run(args []string) int {
	cfg, err := config.LoadCLIConfig(*configFile, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "noah-cli",
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Flush(2 * time.Second)

	app, cleanup, err := newApp(ctx, cfg)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer cleanup()

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// newApp wires the read side eagerly and defers wallet setup until a command needs to sign
func newApp(ctx context.Context, cfg *config.CLIConfig) (*cli.App, func(), error) {
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.Ethereum.RPCURL, err)
	}

	chain := cfg.Ethereum.ChainID
	if chain == 0 {
		id, err := ethClient.ChainID(ctx)
		if err != nil {
			ethClient.Close()
			return nil, nil, fmt.Errorf("failed to read chain id: %w", err)
		}
		chain = domain.Chain(id.Uint64())
	}
	if !domain.IsKnownChain(chain) {
		logger.WarnCtx(ctx, "Chain is not in the supported set", zap.Uint64("chain_id", uint64(chain)))
	}

	noahAddress, err := domain.ParseAddress(cfg.Ethereum.NoahAddress)
	if err != nil {
		ethClient.Close()
		return nil, nil, fmt.Errorf("noah_address: %w", err)
	}

	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	fs := adapter.NewFileSystem()

	noah := ethereum.NewNoahClient(noahAddress, ethClient, clock)
	erc20 := ethereum.NewERC20Client(ethClient)
	checker := allowance.NewChecker(allowance.Config{
		PoolSize: cfg.Cache.CheckPoolSize,
		TTL:      cfg.Cache.AllowanceTTL,
		Size:     cfg.Cache.AllowanceSize,
	}, erc20)

	httpClient := adapter.NewHTTPClientWithRetry(cfg.Indexer.Timeout, adapter.DefaultRetryConfig)
	indexerClient := indexer.NewClient(indexer.Config{
		BaseURL:           cfg.Indexer.URL,
		RequestsPerSecond: cfg.Indexer.RequestsPerSecond,
	}, httpClient, jsonAdapter)

	cacheStore, err := store.NewFileStore(cfg.Cache.Dir, fs, jsonAdapter)
	if err != nil {
		checker.Close()
		ethClient.Close()
		return nil, nil, err
	}
	activitySvc := activity.NewService(activity.Config{
		TTL:            cfg.Cache.TTL,
		StaleWindow:    cfg.Cache.StaleWindow,
		MemoryEntries:  cfg.Cache.MemoryEntries,
		RefreshTimeout: cfg.Cache.RefreshTimeout,
	}, indexerClient, cacheStore, clock, jsonAdapter)

	waiter := poller.New(poller.Config{
		Interval:    cfg.Indexer.PollInterval,
		MaxAttempts: cfg.Indexer.MaxPollAttempts,
	}, indexerClient, clock)

	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			// progress events are optional; commands still work without them
			logger.WarnCtx(ctx, "Progress publishing disabled", zap.Error(err))
			publisher = nil
		}
	}

	observers := orchestrator.Observers{cli.NewProgressPrinter(os.Stdout)}
	if publisher != nil {
		observers = append(observers, messaging.NewObserver(publisher))
	}

	open := func(ctx context.Context) (*cli.Session, error) {
		w, closeWallet, err := wallet.Open(ctx, cfg.Wallet, chain, ethClient, wallet.Deps{
			FileSystem: fs,
			Terminal:   adapter.NewTerminal(),
			RPCDialer:  adapter.NewRPCDialer(),
		})
		if err != nil {
			return nil, err
		}
		logger.InfoCtx(ctx, "Wallet connected", zap.String("account", w.Address().Hex()))

		orch := orchestrator.New(ctx, orchestrator.Config{
			PollInterval: cfg.Ethereum.ReceiptPollInterval,
		}, orchestrator.Deps{
			Wallet:   w,
			Checker:  checker,
			ERC20:    erc20,
			Receipts: ethClient,
			Clock:    clock,
			Indexer:  waiter,
			Observer: observers,
		})
		return &cli.Session{Account: w.Address(), Runner: orch, Close: closeWallet}, nil
	}

	app := cli.New(cli.Deps{
		Chain:    chain,
		Noah:     noah,
		Checker:  checker,
		Activity: activitySvc,
		Clock:    clock,
		Open:     open,
		Out:      os.Stdout,
	})

	cleanup := func() {
		app.Close()
		activitySvc.Close()
		checker.Close()
		if publisher != nil {
			publisher.Close()
		}
		ethClient.Close()
	}
	return app, cleanup, nil
}
