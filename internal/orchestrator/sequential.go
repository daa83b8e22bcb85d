package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/metrics"
)

// sequential requests one approval signature at a time, in plan order.
// Receipts of submitted approvals are awaited concurrently. An explicit rejection or a
// cancelled ctx abandons the rest of the queue, leaving those tokens pending; any other
// signing error moves on to the next token. It returns nil only when every approval confirmed.
func (r *run) sequential(ctx context.Context) error {
	var (
		wg        sync.WaitGroup
		abandoned error
	)

	for i := range r.result.Approvals {
		token := r.result.Approvals[i].Token

		if err := ctx.Err(); err != nil {
			abandoned = err
			logger.InfoCtx(ctx, "Run cancelled, abandoning remaining approvals",
				zap.String("runID", r.result.RunID),
				zap.Int("remaining", len(r.result.Approvals)-i))
			break
		}

		call, err := r.o.deps.ERC20.ApproveCall(token, r.plan.Spender, domain.MaxUint256)
		if err != nil {
			r.fail(ctx, i, fmt.Errorf("failed to build approval: %w", err))
			continue
		}

		r.transition(ctx, i, StateSigning, nil)
		hash, err := r.o.deps.Wallet.SendTransaction(ctx, call)
		if err != nil {
			r.fail(ctx, i, err)
			if abandonsQueue(ctx, err) {
				abandoned = err
				logger.InfoCtx(ctx, "Approval not signed, abandoning remaining approvals",
					zap.String("runID", r.result.RunID),
					zap.String("token", token.Hex()),
					zap.Int("remaining", len(r.result.Approvals)-i-1),
					zap.Error(err))
				break
			}
			logger.WarnCtx(ctx, "Approval failed, continuing with next token",
				zap.String("runID", r.result.RunID),
				zap.String("token", token.Hex()),
				zap.Error(err))
			continue
		}

		r.setHash(i, hash)
		r.transition(ctx, i, StateConfirming, nil)

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.confirm(ctx, i)
		}(i)
	}

	wg.Wait()

	if abandoned != nil {
		return fmt.Errorf("approval queue abandoned: %w", abandoned)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, a := range r.result.Approvals {
		if a.State != StateConfirmed {
			return fmt.Errorf("%w: %d of %d confirmed", ErrApprovalsIncomplete,
				len(r.result.Confirmed()), len(r.result.Approvals))
		}
	}

	return nil
}

// abandonsQueue reports whether a signing error should stop the queue rather than skip one token
func abandonsQueue(ctx context.Context, err error) bool {
	return errors.Is(err, domain.ErrUserRejected) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		ctx.Err() != nil
}

// confirm waits for the approval receipt at index i
func (r *run) confirm(ctx context.Context, i int) {
	token := r.result.Approvals[i].Token
	hash := r.result.Approvals[i].TxHash

	if err := r.o.waitReceipt(ctx, hash); err != nil {
		// a cancelled wait leaves the approval confirming; it may still be mined
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		r.fail(ctx, i, err)
		return
	}

	r.o.deps.Checker.Invalidate(r.owner, r.plan.Spender, token)
	metrics.ApprovalsTotal.WithLabelValues(r.chain.String(), metrics.OutcomeConfirmed).Inc()
	r.transition(ctx, i, StateConfirmed, nil)
}

func (r *run) fail(ctx context.Context, i int, err error) {
	outcome := metrics.OutcomeFailed
	if errors.Is(err, domain.ErrUserRejected) {
		outcome = metrics.OutcomeRejected
	}
	metrics.ApprovalsTotal.WithLabelValues(r.chain.String(), outcome).Inc()
	r.transition(ctx, i, StateError, err)
}

func (r *run) setHash(i int, hash common.Hash) {
	r.result.Approvals[i].TxHash = hash
}

// transition moves the token at index i to state; each index is written by one goroutine at a time
func (r *run) transition(ctx context.Context, i int, state TokenState, err error) {
	a := &r.result.Approvals[i]
	a.State = state
	a.Err = err

	token := a.Token
	p := Progress{Step: StepApproval, Token: &token, State: state}
	if a.TxHash != (common.Hash{}) {
		hash := a.TxHash
		p.TxHash = &hash
	}
	if err != nil {
		p.Error = err.Error()
	}
	r.notify(ctx, p)
}
