package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/metrics"
)

// Expectation is the post-action state the indexer must reflect
type Expectation int

const (
	// ExpectNone skips indexer confirmation
	ExpectNone Expectation = iota
	// ExpectCreated waits until a record for the account and chain is present
	ExpectCreated
	// ExpectDestroyed waits until no record for the account and chain is present
	ExpectDestroyed
)

func (e Expectation) String() string {
	switch e {
	case ExpectCreated:
		return "created"
	case ExpectDestroyed:
		return "destroyed"
	default:
		return "none"
	}
}

// ArkLister lists an account's ark records, satisfied by the indexer client
type ArkLister interface {
	GetArks(ctx context.Context, account common.Address) ([]domain.ArkRecord, error)
}

// Waiter blocks until the indexer reflects an expectation
type Waiter interface {
	Wait(ctx context.Context, account common.Address, chain domain.Chain, expect Expectation) error
}

// Config holds configuration for the poller
type Config struct {
	Interval time.Duration

	// MaxAttempts bounds the number of polls; 0 polls until ctx is cancelled
	MaxAttempts int
}

type poller struct {
	arks  ArkLister
	clock adapter.Clock
	cfg   Config
}

// New creates a Waiter polling arks at a fixed interval
func New(cfg Config, arks ArkLister, clock adapter.Clock) Waiter {
	if cfg.Interval <= 0 {
		cfg.Interval = 3 * time.Second
	}
	return &poller{arks: arks, clock: clock, cfg: cfg}
}

// Wait polls until the expectation holds, ctx is done, or MaxAttempts is exhausted.
// Indexer errors are logged and polling continues on the next interval.
func (p *poller) Wait(ctx context.Context, account common.Address, chain domain.Chain, expect Expectation) error {
	if expect == ExpectNone {
		return nil
	}

	for attempt := 1; ; attempt++ {
		records, err := p.arks.GetArks(ctx, account)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			metrics.IndexerPollsTotal.WithLabelValues(chain.String(), metrics.PollError).Inc()
			logger.WarnCtx(ctx, "Indexer poll failed, retrying",
				zap.String("account", account.Hex()),
				zap.Int("attempt", attempt),
				zap.Error(err))
		case Satisfied(records, account, chain, expect):
			metrics.IndexerPollsTotal.WithLabelValues(chain.String(), metrics.PollSatisfied).Inc()
			logger.InfoCtx(ctx, "Indexer reflects expected state",
				zap.String("account", account.Hex()),
				zap.Stringer("expect", expect),
				zap.Int("attempts", attempt))
			return nil
		default:
			metrics.IndexerPollsTotal.WithLabelValues(chain.String(), metrics.PollPending).Inc()
		}

		if p.cfg.MaxAttempts > 0 && attempt >= p.cfg.MaxAttempts {
			return fmt.Errorf("%w: %s after %d attempts", domain.ErrPollingTimeout, expect, attempt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.clock.After(p.cfg.Interval):
		}
	}
}

// Satisfied reports whether records reflect expect for exactly the (account, chain) pair
func Satisfied(records []domain.ArkRecord, account common.Address, chain domain.Chain, expect Expectation) bool {
	present := false
	for _, r := range records {
		if r.Owner == account && r.ChainID == chain {
			present = true
			break
		}
	}

	switch expect {
	case ExpectCreated:
		return present
	case ExpectDestroyed:
		return !present
	default:
		return true
	}
}
