package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/metrics"
)

// batch submits one approve call per missing token, in plan order, followed by the primary call
func (r *run) batch(ctx context.Context) error {
	calls := make([]domain.Call, 0, len(r.result.Approvals)+1)
	for _, a := range r.result.Approvals {
		call, err := r.o.deps.ERC20.ApproveCall(a.Token, r.plan.Spender, domain.MaxUint256)
		if err != nil {
			return fmt.Errorf("failed to build approval for %s: %w", a.Token.Hex(), err)
		}
		calls = append(calls, call)
	}
	calls = append(calls, r.plan.Primary)

	id, err := r.o.deps.Wallet.SendCalls(ctx, calls)
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, domain.ErrUserRejected) {
			outcome = metrics.OutcomeRejected
		}
		metrics.BatchesTotal.WithLabelValues(r.chain.String(), outcome).Inc()
		r.setAll(StateError, err)
		r.notify(ctx, Progress{Step: StepBatch, State: StateError, Error: err.Error()})
		return fmt.Errorf("failed to submit batch: %w", err)
	}

	r.result.BatchID = id
	r.setAll(StateConfirming, nil)
	r.notify(ctx, Progress{Step: StepBatch, State: StateConfirming, BatchID: id})
	logger.InfoCtx(ctx, "Batch submitted",
		zap.String("runID", r.result.RunID),
		zap.String("batchID", id),
		zap.Int("calls", len(calls)))

	status, err := r.o.waitBatch(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionFailed) {
			metrics.BatchesTotal.WithLabelValues(r.chain.String(), metrics.OutcomeFailed).Inc()
			r.setAll(StateError, err)
		}
		r.notify(ctx, Progress{Step: StepBatch, State: StateError, BatchID: id, Error: err.Error()})
		return err
	}

	metrics.BatchesTotal.WithLabelValues(r.chain.String(), metrics.OutcomeConfirmed).Inc()
	r.setAll(StateConfirmed, nil)
	for _, a := range r.result.Approvals {
		r.o.deps.Checker.Invalidate(r.owner, r.plan.Spender, a.Token)
	}
	if n := len(status.TxHashes); n > 0 {
		r.result.PrimaryTxHash = status.TxHashes[n-1]
	}
	r.result.Committed = true
	r.notify(ctx, Progress{Step: StepBatch, State: StateConfirmed, BatchID: id})

	return nil
}

func (r *run) setAll(state TokenState, err error) {
	for i := range r.result.Approvals {
		r.result.Approvals[i].State = state
		r.result.Approvals[i].Err = err
	}
}
