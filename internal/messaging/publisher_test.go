package messaging

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/orchestrator"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakePublisher struct {
	published []orchestrator.Progress
	err       error
}

func (f *fakePublisher) PublishProgress(_ context.Context, p orchestrator.Progress) error {
	f.published = append(f.published, p)
	return f.err
}

func (f *fakePublisher) Close() {}

func TestSubject(t *testing.T) {
	p := orchestrator.Progress{
		Owner: common.HexToAddress("0xAbCdEf0000000000000000000000000000000001"),
		Chain: domain.ChainArbitrum,
	}
	assert.Equal(t, "noah.progress.42161.0xabcdef0000000000000000000000000000000001", Subject(p))
}

func TestObserver(t *testing.T) {
	pub := &fakePublisher{}
	obs := NewObserver(pub)

	obs.OnProgress(context.Background(), orchestrator.Progress{RunID: "r1", Step: orchestrator.StepChecked})
	assert.Len(t, pub.published, 1)

	// publish failures never surface to the run
	pub.err = errors.New("nats: no responders")
	assert.NotPanics(t, func() {
		obs.OnProgress(context.Background(), orchestrator.Progress{RunID: "r1", Step: orchestrator.StepDone})
	})
	assert.Len(t, pub.published, 2)
}
