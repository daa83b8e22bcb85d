package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/noah-protocol/noah-client/internal/adapter"
)

// fileStore keeps one JSON document per key under a directory
type fileStore struct {
	dir  string
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewFileStore creates a file-backed cache store rooted at dir
func NewFileStore(dir string, fileSystem adapter.FileSystem, json adapter.JSON) (CacheStore, error) {
	if err := fileSystem.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &fileStore{dir: dir, fs: fileSystem, json: json}, nil
}

// path maps a key such as activity:0xabc:1 to a safe file name
func (s *fileStore) path(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.dir, name+".json")
}

func (s *fileStore) GetCacheEntry(ctx context.Context, key string) (*CacheEntry, error) {
	data, err := s.fs.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry CacheEntry
	if err := s.json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	// keys that sanitize to the same file name read as a miss
	if entry.Key != key {
		return nil, nil
	}

	return &entry, nil
}

func (s *fileStore) SetCacheEntry(ctx context.Context, key string, value json.RawMessage, fetchedAt time.Time) error {
	data, err := s.json.Marshal(CacheEntry{Key: key, Value: value, FetchedAt: fetchedAt.UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := s.fs.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (s *fileStore) DeleteCacheEntry(ctx context.Context, key string) error {
	if err := s.fs.Remove(s.path(key)); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}
