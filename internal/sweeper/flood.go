package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/metrics"
	ethprovider "github.com/noah-protocol/noah-client/internal/providers/ethereum"
)

// FloodKeeperConfig holds configuration for the flood keeper
type FloodKeeperConfig struct {
	Owners   []common.Address
	Chain    domain.Chain
	Interval time.Duration // Time to sleep between cycles
	PoolSize int           // Concurrent ark reads

	ReceiptPollInterval time.Duration
	// ReceiptAttempts bounds how long a flood receipt is awaited within a cycle
	ReceiptAttempts uint64
}

// Sender submits a single call, satisfied by wallet.Wallet
type Sender interface {
	SendTransaction(ctx context.Context, call domain.Call) (common.Hash, error)
}

// ReceiptReader reads mined transaction receipts, satisfied by adapter.EthClient
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// floodKeeper implements the Sweeper interface for flooding expired arks
type floodKeeper struct {
	config   FloodKeeperConfig
	noah     ethprovider.NoahClient
	sender   Sender
	receipts ReceiptReader
	clock    adapter.Clock

	pool pond.Pool
	// sendMu serializes submissions so the signer's nonces stay ordered
	sendMu sync.Mutex

	// pending holds floods whose receipt was not seen before ReceiptAttempts ran out
	pendingMu sync.Mutex
	pending   map[common.Address]common.Hash

	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewFloodKeeper creates a new flood keeper
func NewFloodKeeper(
	config FloodKeeperConfig,
	noah ethprovider.NoahClient,
	sender Sender,
	receipts ReceiptReader,
	clock adapter.Clock,
) Sweeper {
	if config.Interval <= 0 {
		config.Interval = 5 * time.Minute
	}
	if config.PoolSize <= 0 {
		config.PoolSize = 8
	}
	if config.ReceiptPollInterval <= 0 {
		config.ReceiptPollInterval = 2 * time.Second
	}
	if config.ReceiptAttempts == 0 {
		config.ReceiptAttempts = 90
	}

	return &floodKeeper{
		config:    config,
		noah:      noah,
		sender:    sender,
		receipts:  receipts,
		clock:     clock,
		pending:   make(map[common.Address]common.Hash),
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *floodKeeper) Name() string {
	return "flood-keeper"
}

// Start runs a cycle, then sleeps for the configured interval, until stopped
func (s *floodKeeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting flood keeper",
		zap.Int("owners", len(s.config.Owners)),
		zap.Int("pool_size", s.config.PoolSize),
		zap.Duration("interval", s.config.Interval),
	)

	s.pool = pond.NewPool(s.config.PoolSize, pond.WithContext(ctx))
	defer s.pool.StopAndWait()

	for {
		s.runCycle(ctx)

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Flood keeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Flood keeper stop requested")
			return nil
		case <-s.clock.After(s.config.Interval):
		}
	}
}

// Stop gracefully stops the keeper with timeout support
func (s *floodKeeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping flood keeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Flood keeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Flood keeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runCycle checks every watched owner once
func (s *floodKeeper) runCycle(ctx context.Context) {
	startTime := s.clock.Now()
	defer metrics.KeeperCyclesTotal.Inc()

	var expired, flooded, failed atomic.Int32

	group := s.pool.NewGroup()
	for _, owner := range s.config.Owners {
		group.Submit(func() {
			ok, err := s.checkOwner(ctx, owner, startTime)
			if !ok {
				return
			}
			expired.Add(1)
			if err != nil {
				failed.Add(1)
				logger.ErrorCtx(ctx, err, zap.String("owner", owner.Hex()))
				return
			}
			flooded.Add(1)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorCtx(ctx, fmt.Errorf("flood cycle interrupted: %w", err))
	}

	logger.InfoCtx(ctx, "Flood cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("owners", len(s.config.Owners)),
		zap.Int32("expired", expired.Load()),
		zap.Int32("flooded", flooded.Load()),
		zap.Int32("failed", failed.Load()),
	)
}

// checkOwner floods owner's ark when its deadline has passed.
// The boolean reports whether the ark was expired. An owner whose previous flood
// is still unmined is skipped.
func (s *floodKeeper) checkOwner(ctx context.Context, owner common.Address, now time.Time) (bool, error) {
	if s.floodPending(ctx, owner) {
		return false, nil
	}

	ark, err := s.noah.GetArk(ctx, owner)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read ark", zap.String("owner", owner.Hex()), zap.Error(err))
		return false, nil
	}
	if !ark.Expired(now) {
		return false, nil
	}

	logger.InfoCtx(ctx, "Ark expired, flooding",
		zap.String("owner", owner.Hex()),
		zap.Time("deadline", ark.Deadline),
		zap.Int("tokens", len(ark.Tokens)))

	if err := s.flood(ctx, owner); err != nil {
		metrics.KeeperFloodsTotal.WithLabelValues(s.config.Chain.String(), metrics.OutcomeFailed).Inc()
		return true, err
	}

	metrics.KeeperFloodsTotal.WithLabelValues(s.config.Chain.String(), metrics.OutcomeConfirmed).Inc()
	return true, nil
}

func (s *floodKeeper) flood(ctx context.Context, owner common.Address) error {
	call, err := s.noah.FloodCall(owner)
	if err != nil {
		return err
	}

	s.sendMu.Lock()
	hash, err := s.sender.SendTransaction(ctx, call)
	s.sendMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to send flood for %s: %w", owner.Hex(), err)
	}

	logger.InfoCtx(ctx, "Flood submitted", zap.String("owner", owner.Hex()), zap.String("txHash", hash.Hex()))

	err = s.waitReceipt(ctx, hash)
	if err != nil && !errors.Is(err, domain.ErrTransactionFailed) {
		s.setPending(owner, hash)
	}
	return err
}

// floodPending reports whether owner has an unmined flood from an earlier cycle.
// A mined one, successful or reverted, is forgotten so the ark is checked again.
func (s *floodKeeper) floodPending(ctx context.Context, owner common.Address) bool {
	s.pendingMu.Lock()
	hash, ok := s.pending[owner]
	s.pendingMu.Unlock()
	if !ok {
		return false
	}

	receipt, err := s.receipts.TransactionReceipt(ctx, hash)
	if err != nil {
		if !errors.Is(err, ethereum.NotFound) {
			logger.WarnCtx(ctx, "Receipt lookup failed", zap.String("txHash", hash.Hex()), zap.Error(err))
		}
		logger.InfoCtx(ctx, "Flood still pending, skipping owner",
			zap.String("owner", owner.Hex()),
			zap.String("txHash", hash.Hex()))
		return true
	}

	s.pendingMu.Lock()
	delete(s.pending, owner)
	s.pendingMu.Unlock()

	logger.InfoCtx(ctx, "Pending flood mined",
		zap.String("owner", owner.Hex()),
		zap.String("txHash", hash.Hex()),
		zap.Bool("success", receipt.Status == types.ReceiptStatusSuccessful))
	return false
}

func (s *floodKeeper) setPending(owner common.Address, hash common.Hash) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending[owner] = hash
}

// waitReceipt polls the receipt of hash at a fixed interval
func (s *floodKeeper) waitReceipt(ctx context.Context, hash common.Hash) error {
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.config.ReceiptPollInterval), s.config.ReceiptAttempts),
		ctx,
	)

	return backoff.Retry(func() error {
		receipt, err := s.receipts.TransactionReceipt(ctx, hash)
		if err != nil {
			if !errors.Is(err, ethereum.NotFound) {
				logger.WarnCtx(ctx, "Receipt lookup failed, retrying", zap.String("txHash", hash.Hex()), zap.Error(err))
			}
			return fmt.Errorf("receipt for %s unavailable: %w", hash.Hex(), err)
		}
		if receipt.Status != types.ReceiptStatusSuccessful {
			return backoff.Permanent(fmt.Errorf("%w: flood %s reverted", domain.ErrTransactionFailed, hash.Hex()))
		}
		return nil
	}, b)
}
