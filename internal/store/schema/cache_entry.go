package schema

import (
	"time"

	"gorm.io/datatypes"
)

// CacheEntry stores a cached indexer response with the time it was fetched
type CacheEntry struct {
	Key       string         `gorm:"primaryKey;type:text"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	FetchedAt time.Time      `gorm:"not null;index"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}
