package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-protocol/noah-client/internal/activity"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/mocks"
)

// fakeActivity records refreshed owners and fails for the ones in fail
type fakeActivity struct {
	mu        sync.Mutex
	refreshed []common.Address
	fail      map[common.Address]bool
}

func (f *fakeActivity) Get(context.Context, common.Address, domain.Chain) (*activity.View, <-chan *activity.View, error) {
	return &activity.View{}, nil, nil
}

func (f *fakeActivity) Refresh(_ context.Context, owner common.Address, _ domain.Chain) (*activity.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed = append(f.refreshed, owner)
	if f.fail[owner] {
		return nil, errors.New("indexer unavailable")
	}
	return &activity.View{}, nil
}

func (f *fakeActivity) Invalidate(context.Context, common.Address, domain.Chain) error { return nil }

func (f *fakeActivity) Close() {}

func (f *fakeActivity) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.refreshed)
}

func TestActivityWarmer_WarmContinuesPastFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := &fakeActivity{fail: map[common.Address]bool{ownerA: true}}
	w := NewActivityWarmer(ActivityWarmerConfig{
		Owners: []common.Address{ownerA, ownerB},
		Chain:  domain.ChainArbitrum,
	}, svc, mocks.NewMockClock(ctrl)).(*activityWarmer)

	w.warm(context.Background())
	assert.Equal(t, []common.Address{ownerA, ownerB}, svc.refreshed)
	assert.Equal(t, "activity-warmer", w.Name())
}

func TestActivityWarmer_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().After(time.Minute).Return(make(chan time.Time)).AnyTimes()

	svc := &fakeActivity{}
	w := NewActivityWarmer(ActivityWarmerConfig{
		Owners:   []common.Address{ownerC},
		Chain:    domain.ChainArbitrum,
		Interval: time.Minute,
	}, svc, clock)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	require.Eventually(t, func() bool { return svc.count() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Stop(ctx))
	require.NoError(t, <-done)

	// second stop is a no-op
	assert.NoError(t, w.Stop(ctx))
}
