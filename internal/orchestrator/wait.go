package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
)

// ReceiptReader reads mined transaction receipts, satisfied by adapter.EthClient
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

var errStillPending = errors.New("still pending")

// poll runs check at the fixed poll interval until it returns nil or a permanent error, or ctx is done
func (o *Orchestrator) poll(ctx context.Context, check func() error) error {
	b := backoff.WithContext(backoff.NewConstantBackOff(o.cfg.PollInterval), ctx)
	return backoff.Retry(check, b)
}

// waitReceipt polls the receipt of hash. Lookup errors are logged and retried.
func (o *Orchestrator) waitReceipt(ctx context.Context, hash common.Hash) error {
	return o.poll(ctx, func() error {
		receipt, err := o.deps.Receipts.TransactionReceipt(ctx, hash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return errStillPending
			}
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			logger.WarnCtx(ctx, "Receipt lookup failed, retrying", zap.String("txHash", hash.Hex()), zap.Error(err))
			return err
		}

		if receipt.Status != types.ReceiptStatusSuccessful {
			return backoff.Permanent(fmt.Errorf("%w: %s reverted", domain.ErrTransactionFailed, hash.Hex()))
		}
		return nil
	})
}

// waitBatch polls the batch status until it is confirmed or failed
func (o *Orchestrator) waitBatch(ctx context.Context, id string) (*domain.CallsStatus, error) {
	var final *domain.CallsStatus

	err := o.poll(ctx, func() error {
		status, err := o.deps.Wallet.GetCallsStatus(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			logger.WarnCtx(ctx, "Batch status lookup failed, retrying", zap.String("batchID", id), zap.Error(err))
			return err
		}

		switch status.State {
		case domain.BatchConfirmed:
			final = status
			return nil
		case domain.BatchFailed:
			final = status
			return backoff.Permanent(fmt.Errorf("%w: batch %s status %d", domain.ErrTransactionFailed, id, status.Code))
		default:
			return errStillPending
		}
	})

	return final, err
}
