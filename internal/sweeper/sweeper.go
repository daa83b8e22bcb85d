package sweeper

import (
	"context"
)

// Sweeper is a periodic background loop run by a long-lived binary
// (the flood keeper, the API's activity warmer)
type Sweeper interface {
	// Start runs cycles until ctx is cancelled or Stop is called; it blocks
	Start(ctx context.Context) error

	// Stop ends the loop after the current cycle, or returns ctx.Err() if that takes too long
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
