package messaging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/orchestrator"
)

// SubjectPrefix is the root of all progress subjects
const SubjectPrefix = "noah.progress"

// Publisher defines the interface for publishing orchestration progress to a message broker
type Publisher interface {
	// PublishProgress publishes a progress event
	PublishProgress(ctx context.Context, p orchestrator.Progress) error
	// Close closes the connection
	Close()
}

// Subject returns noah.progress.{chain}.{owner} for p
func Subject(p orchestrator.Progress) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, p.Chain.String(), strings.ToLower(p.Owner.Hex()))
}

// observer forwards orchestrator progress to a Publisher
type observer struct {
	publisher Publisher
}

// NewObserver returns an orchestrator.Observer that publishes every progress event.
// Publish failures are logged and never interrupt the run.
func NewObserver(publisher Publisher) orchestrator.Observer {
	return &observer{publisher: publisher}
}

func (o *observer) OnProgress(ctx context.Context, p orchestrator.Progress) {
	if err := o.publisher.PublishProgress(ctx, p); err != nil {
		logger.WarnCtx(ctx, "Failed to publish progress",
			zap.String("runID", p.RunID),
			zap.String("step", string(p.Step)),
			zap.Error(err))
	}
}
