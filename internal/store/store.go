package store

import (
	"context"
	"encoding/json"
	"time"
)

// CacheEntry is a cached value and the time it was fetched
type CacheEntry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// CacheStore defines the interface for the local persisted cache
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=CacheStore=MockCacheStore
type CacheStore interface {
	// GetCacheEntry returns the entry for key, nil when missing
	GetCacheEntry(ctx context.Context, key string) (*CacheEntry, error)
	// SetCacheEntry replaces the entry for key; the last writer wins
	SetCacheEntry(ctx context.Context, key string, value json.RawMessage, fetchedAt time.Time) error
	// DeleteCacheEntry removes the entry for key, ignoring missing keys
	DeleteCacheEntry(ctx context.Context, key string) error
}
