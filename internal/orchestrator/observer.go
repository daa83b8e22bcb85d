package orchestrator

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/noah-protocol/noah-client/internal/domain"
)

// Step identifies which phase of a run a progress event belongs to
type Step string

const (
	StepChecked  Step = "checked"
	StepApproval Step = "approval"
	StepBatch    Step = "batch"
	StepPrimary  Step = "primary"
	StepIndexed  Step = "indexed"
	StepDone     Step = "done"
)

// Progress is a single state change reported during a run
type Progress struct {
	RunID   string          `json:"run_id"`
	Owner   common.Address  `json:"owner"`
	Chain   domain.Chain    `json:"chain_id"`
	Mode    Mode            `json:"mode"`
	Step    Step            `json:"step"`
	Token   *common.Address `json:"token,omitempty"`
	State   TokenState      `json:"state,omitempty"`
	TxHash  *common.Hash    `json:"tx_hash,omitempty"`
	BatchID string          `json:"batch_id,omitempty"`
	Missing int             `json:"missing,omitempty"`
	Error   string          `json:"error,omitempty"`
	Time    time.Time       `json:"time"`
}

// Observer receives progress events; calls are serialized by the orchestrator
type Observer interface {
	OnProgress(ctx context.Context, p Progress)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, p Progress)

func (f ObserverFunc) OnProgress(ctx context.Context, p Progress) {
	f(ctx, p)
}

// Observers fans a progress event out to each observer in order
type Observers []Observer

func (o Observers) OnProgress(ctx context.Context, p Progress) {
	for _, obs := range o {
		if obs != nil {
			obs.OnProgress(ctx, p)
		}
	}
}
