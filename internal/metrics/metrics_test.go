package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CounterIncrement(t *testing.T) {
	before := testutil.ToFloat64(ApprovalsTotal.WithLabelValues("31337", OutcomeConfirmed))
	ApprovalsTotal.WithLabelValues("31337", OutcomeConfirmed).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ApprovalsTotal.WithLabelValues("31337", OutcomeConfirmed)))
}

func TestMetrics_NoPanic(t *testing.T) {
	assert.NotPanics(t, func() { BatchesTotal.WithLabelValues("1", OutcomeFailed).Inc() })
	assert.NotPanics(t, func() { PrimarySubmissionsTotal.WithLabelValues("1", OutcomeRejected).Inc() })
	assert.NotPanics(t, func() { IndexerPollsTotal.WithLabelValues("1", PollPending).Inc() })
	assert.NotPanics(t, func() { IndexerRequestDuration.WithLabelValues("arks").Observe(0.2) })
	assert.NotPanics(t, func() { ActivityCacheTotal.WithLabelValues("miss").Inc() })
	assert.NotPanics(t, func() { KeeperFloodsTotal.WithLabelValues("1", OutcomeConfirmed).Inc() })
	assert.NotPanics(t, func() { KeeperCyclesTotal.Inc() })
}
