package activity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/metrics"
	"github.com/noah-protocol/noah-client/internal/providers/indexer"
	"github.com/noah-protocol/noah-client/internal/store"
)

// View is the activity shown for one account and chain
type View struct {
	Events    []domain.ActivityEvent `json:"events"`
	FetchedAt time.Time              `json:"fetched_at"`
	// Cached is true when the events came from the local cache
	Cached bool `json:"cached"`
	// Stale is true when the cached events are older than the TTL and a refresh was started
	Stale bool `json:"stale"`
}

// Service serves ark activity from a local cache backed by the indexer
type Service interface {
	// Get returns cached events immediately when present within the stale window.
	// When the entry is older than the TTL a background refresh is started and its
	// result is delivered once on the returned channel, which is then closed.
	// The channel is nil when no refresh was started.
	Get(ctx context.Context, account common.Address, chain domain.Chain) (*View, <-chan *View, error)

	// Refresh fetches from the indexer and overwrites the cache entry
	Refresh(ctx context.Context, account common.Address, chain domain.Chain) (*View, error)

	// Invalidate drops the cache entry
	Invalidate(ctx context.Context, account common.Address, chain domain.Chain) error

	// Close waits for background refreshes to finish
	Close()
}

// Config holds configuration for the activity service
type Config struct {
	// TTL is how long an entry is shown without refreshing
	TTL time.Duration
	// StaleWindow is how long an entry may be shown at all
	StaleWindow time.Duration
	// MemoryEntries bounds the in-memory front cache
	MemoryEntries int
	// RefreshTimeout bounds a background refresh
	RefreshTimeout time.Duration
}

type entry struct {
	Events    []domain.ActivityEvent
	FetchedAt time.Time
}

type service struct {
	cfg     Config
	indexer indexer.Client
	store   store.CacheStore
	clock   adapter.Clock
	json    adapter.JSON

	memory   *expirable.LRU[string, entry]
	inflight singleflight.Group
	wg       sync.WaitGroup
}

// NewService creates an activity service
func NewService(cfg Config, indexerClient indexer.Client, cacheStore store.CacheStore, clock adapter.Clock, json adapter.JSON) Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	if cfg.StaleWindow < cfg.TTL {
		cfg.StaleWindow = cfg.TTL
	}
	if cfg.MemoryEntries <= 0 {
		cfg.MemoryEntries = 256
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 15 * time.Second
	}

	return &service{
		cfg:     cfg,
		indexer: indexerClient,
		store:   cacheStore,
		clock:   clock,
		json:    json,
		memory:  expirable.NewLRU[string, entry](cfg.MemoryEntries, nil, cfg.StaleWindow),
	}
}

// CacheKey returns the cache key for an account on a chain
func CacheKey(account common.Address, chain domain.Chain) string {
	return fmt.Sprintf("activity:%s:%s", strings.ToLower(account.Hex()), chain.String())
}

func (s *service) Get(ctx context.Context, account common.Address, chain domain.Chain) (*View, <-chan *View, error) {
	key := CacheKey(account, chain)

	cached, ok := s.lookup(ctx, key)
	if ok {
		age := s.clock.Since(cached.FetchedAt)
		if age <= s.cfg.TTL {
			metrics.ActivityCacheTotal.WithLabelValues("fresh").Inc()
			return &View{Events: cached.Events, FetchedAt: cached.FetchedAt, Cached: true}, nil, nil
		}
		if age <= s.cfg.StaleWindow {
			metrics.ActivityCacheTotal.WithLabelValues("stale").Inc()
			updates := s.refreshInBackground(ctx, account, chain)
			return &View{Events: cached.Events, FetchedAt: cached.FetchedAt, Cached: true, Stale: true}, updates, nil
		}
	}

	metrics.ActivityCacheTotal.WithLabelValues("miss").Inc()
	view, err := s.Refresh(ctx, account, chain)
	if err != nil {
		return nil, nil, err
	}
	return view, nil, nil
}

// Refresh joins an in-flight fetch for the same key. The fetch is bounded by RefreshTimeout and
// outlives the caller that started it; each caller stops waiting when its own ctx is done.
func (s *service) Refresh(ctx context.Context, account common.Address, chain domain.Chain) (*View, error) {
	key := CacheKey(account, chain)

	results := s.inflight.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.RefreshTimeout)
		defer cancel()

		events, err := s.indexer.GetActivity(fetchCtx, account, chain)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch activity: %w", err)
		}

		fetched := entry{Events: events, FetchedAt: s.clock.Now()}
		s.save(fetchCtx, key, fetched)
		return fetched, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		fetched := res.Val.(entry)
		return &View{Events: fetched.Events, FetchedAt: fetched.FetchedAt}, nil
	}
}

// refreshInBackground starts at most one refresh per key; the caller's cancellation does not stop it
func (s *service) refreshInBackground(ctx context.Context, account common.Address, chain domain.Chain) <-chan *View {
	updates := make(chan *View, 1)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(updates)

		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.RefreshTimeout)
		defer cancel()

		view, err := s.Refresh(refreshCtx, account, chain)
		if err != nil {
			logger.WarnCtx(ctx, "Background activity refresh failed",
				zap.String("account", account.Hex()),
				zap.Uint64("chainID", uint64(chain)),
				zap.Error(err))
			return
		}
		updates <- view
	}()

	return updates
}

func (s *service) Invalidate(ctx context.Context, account common.Address, chain domain.Chain) error {
	key := CacheKey(account, chain)
	s.memory.Remove(key)
	if s.store == nil {
		return nil
	}
	return s.store.DeleteCacheEntry(ctx, key)
}

func (s *service) Close() {
	s.wg.Wait()
}

// lookup reads the memory front, then the persisted store
func (s *service) lookup(ctx context.Context, key string) (entry, bool) {
	if e, ok := s.memory.Get(key); ok {
		return e, true
	}
	if s.store == nil {
		return entry{}, false
	}

	persisted, err := s.store.GetCacheEntry(ctx, key)
	if err != nil {
		logger.WarnCtx(ctx, "Activity cache read failed", zap.String("key", key), zap.Error(err))
		return entry{}, false
	}
	if persisted == nil {
		return entry{}, false
	}

	var events []domain.ActivityEvent
	if err := s.json.Unmarshal(persisted.Value, &events); err != nil {
		logger.WarnCtx(ctx, "Discarding undecodable activity cache entry", zap.String("key", key), zap.Error(err))
		return entry{}, false
	}

	e := entry{Events: events, FetchedAt: persisted.FetchedAt}
	s.memory.Add(key, e)
	return e, true
}

// save writes through to the store; the cache is not authoritative so failures are only logged
func (s *service) save(ctx context.Context, key string, e entry) {
	s.memory.Add(key, e)
	if s.store == nil {
		return
	}

	data, err := s.json.Marshal(e.Events)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to encode activity for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.SetCacheEntry(ctx, key, data, e.FetchedAt); err != nil {
		logger.WarnCtx(ctx, "Activity cache write failed", zap.String("key", key), zap.Error(err))
	}
}
