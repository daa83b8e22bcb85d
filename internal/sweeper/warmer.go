package sweeper

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/activity"
	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
)

// ActivityWarmerConfig holds configuration for the activity warmer
type ActivityWarmerConfig struct {
	Owners   []common.Address
	Chain    domain.Chain
	Interval time.Duration
}

// activityWarmer keeps the activity cache of a fixed set of owners fresh
type activityWarmer struct {
	config   ActivityWarmerConfig
	activity activity.Service
	clock    adapter.Clock

	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewActivityWarmer creates a sweeper that refreshes each owner's activity every interval
func NewActivityWarmer(config ActivityWarmerConfig, activitySvc activity.Service, clock adapter.Clock) Sweeper {
	if config.Interval <= 0 {
		config.Interval = 30 * time.Second
	}
	return &activityWarmer{
		config:    config,
		activity:  activitySvc,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (s *activityWarmer) Name() string {
	return "activity-warmer"
}

func (s *activityWarmer) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting activity warmer",
		zap.Int("owners", len(s.config.Owners)),
		zap.Duration("interval", s.config.Interval))

	for {
		s.warm(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-s.stopChan:
			return nil
		case <-s.clock.After(s.config.Interval):
		}
	}
}

func (s *activityWarmer) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// warm refreshes owners one at a time; the indexer client is already rate limited
func (s *activityWarmer) warm(ctx context.Context) {
	refreshed := 0
	for _, owner := range s.config.Owners {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.activity.Refresh(ctx, owner, s.config.Chain); err != nil {
			logger.WarnCtx(ctx, "Failed to warm activity", zap.String("owner", owner.Hex()), zap.Error(err))
			continue
		}
		refreshed++
	}
	logger.DebugCtx(ctx, "Activity warmed", zap.Int("refreshed", refreshed), zap.Int("owners", len(s.config.Owners)))
}
