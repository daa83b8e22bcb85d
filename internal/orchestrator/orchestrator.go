package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/allowance"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/metrics"
	"github.com/noah-protocol/noah-client/internal/poller"
	"github.com/noah-protocol/noah-client/internal/providers/ethereum"
	"github.com/noah-protocol/noah-client/internal/wallet"
)

// ErrApprovalsIncomplete is returned when some approvals did not confirm and the primary call was not sent
var ErrApprovalsIncomplete = errors.New("not all token approvals confirmed")

// Mode is how missing approvals are acquired, fixed for the lifetime of an Orchestrator
type Mode string

const (
	// ModeBatch submits approvals and the primary call as one atomic unit
	ModeBatch Mode = "batch"
	// ModeSequential signs approvals one at a time, then the primary call
	ModeSequential Mode = "sequential"
)

// TokenState is the per-token approval state
type TokenState string

const (
	StatePending    TokenState = "pending"
	StateSigning    TokenState = "signing"
	StateConfirming TokenState = "confirming"
	StateConfirmed  TokenState = "confirmed"
	StateError      TokenState = "error"
)

// Plan is one state-changing request and the tokens the contract must be able to move
type Plan struct {
	// Spender is the address the approvals are granted to
	Spender common.Address

	// Tokens are checked for an existing allowance, in order
	Tokens []common.Address

	// Primary is the contract call submitted once every approval exists
	Primary domain.Call

	// Expect is the indexer state awaited after the primary call confirms
	Expect poller.Expectation
}

// Approval is the outcome for one token that lacked an allowance
type Approval struct {
	Token  common.Address `json:"token"`
	State  TokenState     `json:"state"`
	TxHash common.Hash    `json:"tx_hash,omitempty"`
	Err    error          `json:"-"`
}

// Result summarizes a run; it is returned even when Run fails
type Result struct {
	RunID string `json:"run_id"`
	Mode  Mode   `json:"mode"`

	// Authorized are tokens whose allowance already sufficed
	Authorized []common.Address `json:"authorized"`

	// Approvals are the tokens that needed an approval, in plan order
	Approvals []Approval `json:"approvals"`

	BatchID       string      `json:"batch_id,omitempty"`
	PrimaryTxHash common.Hash `json:"primary_tx_hash,omitempty"`
	Committed     bool        `json:"committed"`
	Indexed       bool        `json:"indexed"`
}

// Confirmed returns the tokens whose approval confirmed during the run
func (r *Result) Confirmed() []common.Address {
	var tokens []common.Address
	for _, a := range r.Approvals {
		if a.State == StateConfirmed {
			tokens = append(tokens, a.Token)
		}
	}
	return tokens
}

// Config holds configuration for the Orchestrator
type Config struct {
	// PollInterval is the fixed interval between receipt and batch status checks
	PollInterval time.Duration
}

// Deps are the collaborators of the Orchestrator
type Deps struct {
	Wallet   wallet.Wallet
	Checker  allowance.Checker
	ERC20    ethereum.ERC20Client
	Receipts ReceiptReader
	Clock    adapter.Clock

	// Indexer confirms the post-action state, optional
	Indexer poller.Waiter

	// Observer receives progress, optional
	Observer Observer
}

// Orchestrator acquires missing token approvals and submits the primary call
type Orchestrator struct {
	cfg  Config
	deps Deps
	mode Mode

	notifyMu sync.Mutex
}

// New creates an Orchestrator; the wallet's capabilities are queried once here to select the mode
func New(ctx context.Context, cfg Config, deps Deps) *Orchestrator {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if deps.Clock == nil {
		deps.Clock = adapter.NewClock()
	}

	return &Orchestrator{
		cfg:  cfg,
		deps: deps,
		mode: DetectMode(ctx, deps.Wallet),
	}
}

// DetectMode selects ModeBatch when the account supports atomic batching.
// A failed capability query falls back to ModeSequential.
func DetectMode(ctx context.Context, w wallet.Wallet) Mode {
	caps, err := w.Capabilities(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Capability query failed, using sequential approvals",
			zap.String("account", w.Address().Hex()),
			zap.Error(err))
		return ModeSequential
	}
	if caps.AtomicBatch {
		return ModeBatch
	}
	return ModeSequential
}

// Mode returns the approval mode selected for this session
func (o *Orchestrator) Mode() Mode {
	return o.mode
}

// Run checks allowances for plan.Tokens, acquires the missing ones and submits plan.Primary.
// Cancelling ctx stops waiting; transactions already submitted are not cancelled.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) (*Result, error) {
	owner := o.deps.Wallet.Address()
	result := &Result{
		RunID: ulid.Make().String(),
		Mode:  o.mode,
	}
	run := &run{o: o, plan: plan, owner: owner, chain: o.deps.Wallet.ChainID(), result: result}

	statuses := o.deps.Checker.Check(ctx, owner, plan.Spender, plan.Tokens)
	for _, s := range statuses {
		if s.Sufficient {
			result.Authorized = append(result.Authorized, s.Token)
			continue
		}
		result.Approvals = append(result.Approvals, Approval{Token: s.Token, State: StatePending})
	}
	run.notify(ctx, Progress{Step: StepChecked, Missing: len(result.Approvals)})

	logger.InfoCtx(ctx, "Allowances checked",
		zap.String("runID", result.RunID),
		zap.String("owner", owner.Hex()),
		zap.String("mode", string(o.mode)),
		zap.Int("tokens", len(plan.Tokens)),
		zap.Int("missing", len(result.Approvals)))

	var err error
	switch {
	case len(result.Approvals) == 0:
		err = run.submitPrimary(ctx)
	case o.mode == ModeBatch:
		err = run.batch(ctx)
	default:
		err = run.sequential(ctx)
		if err == nil {
			err = run.submitPrimary(ctx)
		}
	}
	if err != nil {
		run.notify(ctx, Progress{Step: StepDone, Error: err.Error()})
		return result, err
	}

	if err := run.awaitIndexer(ctx); err != nil {
		run.notify(ctx, Progress{Step: StepDone, Error: err.Error()})
		return result, err
	}

	run.notify(ctx, Progress{Step: StepDone})
	return result, nil
}

// run is the state of a single Run call
type run struct {
	o      *Orchestrator
	plan   Plan
	owner  common.Address
	chain  domain.Chain
	result *Result
}

func (r *run) notify(ctx context.Context, p Progress) {
	if r.o.deps.Observer == nil {
		return
	}
	p.RunID = r.result.RunID
	p.Owner = r.owner
	p.Chain = r.chain
	p.Mode = r.o.mode
	p.Time = r.o.deps.Clock.Now()

	r.o.notifyMu.Lock()
	defer r.o.notifyMu.Unlock()
	r.o.deps.Observer.OnProgress(ctx, p)
}

// submitPrimary sends the primary call as its own request and waits for its receipt
func (r *run) submitPrimary(ctx context.Context) error {
	hash, err := r.o.deps.Wallet.SendTransaction(ctx, r.plan.Primary)
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, domain.ErrUserRejected) {
			outcome = metrics.OutcomeRejected
		}
		metrics.PrimarySubmissionsTotal.WithLabelValues(r.chain.String(), outcome).Inc()
		return fmt.Errorf("failed to submit %s: %w", r.plan.Primary.Label, err)
	}
	r.result.PrimaryTxHash = hash
	r.notify(ctx, Progress{Step: StepPrimary, State: StateConfirming, TxHash: &hash})

	if err := r.o.waitReceipt(ctx, hash); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			metrics.PrimarySubmissionsTotal.WithLabelValues(r.chain.String(), metrics.OutcomeFailed).Inc()
		}
		r.notify(ctx, Progress{Step: StepPrimary, State: StateError, TxHash: &hash, Error: err.Error()})
		return fmt.Errorf("%s: %w", r.plan.Primary.Label, err)
	}

	metrics.PrimarySubmissionsTotal.WithLabelValues(r.chain.String(), metrics.OutcomeConfirmed).Inc()
	r.result.Committed = true
	r.notify(ctx, Progress{Step: StepPrimary, State: StateConfirmed, TxHash: &hash})
	logger.InfoCtx(ctx, "Primary call confirmed",
		zap.String("runID", r.result.RunID),
		zap.String("txHash", hash.Hex()))

	return nil
}

func (r *run) awaitIndexer(ctx context.Context) error {
	if r.o.deps.Indexer == nil || r.plan.Expect == poller.ExpectNone {
		return nil
	}
	if err := r.o.deps.Indexer.Wait(ctx, r.owner, r.chain, r.plan.Expect); err != nil {
		return fmt.Errorf("waiting for indexer: %w", err)
	}
	r.result.Indexed = true
	r.notify(ctx, Progress{Step: StepIndexed})
	return nil
}
