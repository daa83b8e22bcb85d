package executor

import (
	"context"
	"fmt"

	"github.com/noah-protocol/noah-client/internal/activity"
	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/allowance"
	"github.com/noah-protocol/noah-client/internal/api/shared/constants"
	"github.com/noah-protocol/noah-client/internal/api/shared/dto"
	apierrors "github.com/noah-protocol/noah-client/internal/api/shared/errors"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/providers/ethereum"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetArk reads the owner's ark from the contract; nil when the owner has none
	GetArk(ctx context.Context, address string) (*dto.ArkResponse, error)

	// GetActivity returns the owner's activity on chainID, served from the cache when possible.
	// An empty chainID selects the configured chain.
	GetActivity(ctx context.Context, address string, chainID string) (*dto.ActivityResponse, error)

	// GetAllowances reports which tokens allow the Noah contract to move them.
	// No tokens selects the tokens currently in the owner's ark.
	GetAllowances(ctx context.Context, address string, tokens []string) (*dto.AllowanceListResponse, error)
}

type executor struct {
	chain    domain.Chain
	noah     ethereum.NoahClient
	activity activity.Service
	checker  allowance.Checker
	clock    adapter.Clock
}

func NewExecutor(chain domain.Chain, noah ethereum.NoahClient, activitySvc activity.Service, checker allowance.Checker, clock adapter.Clock) Executor {
	return &executor{chain: chain, noah: noah, activity: activitySvc, checker: checker, clock: clock}
}

func (e *executor) GetArk(ctx context.Context, address string) (*dto.ArkResponse, error) {
	owner, err := domain.ParseAddress(address)
	if err != nil {
		return nil, apierrors.NewBadRequestError("Invalid address", err.Error())
	}

	ark, err := e.noah.GetArk(ctx, owner)
	if err != nil {
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to read ark: %v", err))
	}

	if !ark.Exists() {
		return nil, nil
	}

	infos := e.checker.TokenInfos(ctx, ark.Tokens, owner)
	return dto.MapArkToDTO(ark, infos, e.chain, e.clock.Now()), nil
}

func (e *executor) GetActivity(ctx context.Context, address string, chainID string) (*dto.ActivityResponse, error) {
	account, err := domain.ParseAddress(address)
	if err != nil {
		return nil, apierrors.NewBadRequestError("Invalid address", err.Error())
	}

	chain := e.chain
	if chainID != "" {
		chain, err = domain.ParseChain(chainID)
		if err != nil {
			return nil, apierrors.NewBadRequestError("Invalid chain_id", err.Error())
		}
	}

	// A stale view is returned as is; the background refresh writes the cache for the next request
	view, _, err := e.activity.Get(ctx, account, chain)
	if err != nil {
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to get activity: %v", err))
	}

	return &dto.ActivityResponse{
		Address:   account.Hex(),
		ChainID:   chain.String(),
		Events:    dto.MapActivityToDTO(view.Events, chain),
		FetchedAt: view.FetchedAt.UTC(),
		Cached:    view.Cached,
		Stale:     view.Stale,
	}, nil
}

func (e *executor) GetAllowances(ctx context.Context, address string, tokens []string) (*dto.AllowanceListResponse, error) {
	owner, err := domain.ParseAddress(address)
	if err != nil {
		return nil, apierrors.NewBadRequestError("Invalid address", err.Error())
	}

	if len(tokens) > constants.MAX_TOKENS_PER_REQUEST {
		return nil, apierrors.NewValidationError(fmt.Sprintf("at most %d tokens per request", constants.MAX_TOKENS_PER_REQUEST))
	}

	addresses, err := domain.ParseAddresses(tokens)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	if len(addresses) == 0 {
		ark, err := e.noah.GetArk(ctx, owner)
		if err != nil {
			return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to read ark: %v", err))
		}
		if ark.Exists() {
			addresses = ark.Tokens
		}
	}

	spender := e.noah.Address()
	statuses := e.checker.Check(ctx, owner, spender, addresses)

	resp := &dto.AllowanceListResponse{
		Owner:      owner.Hex(),
		Spender:    spender.Hex(),
		Allowances: make([]dto.AllowanceResponse, len(statuses)),
	}
	for i, s := range statuses {
		resp.Allowances[i] = mapStatus(s)
		if !s.Sufficient {
			resp.Missing++
		}
	}
	resp.AllApproved = resp.Missing == 0

	return resp, nil
}

func mapStatus(s allowance.Status) dto.AllowanceResponse {
	r := dto.AllowanceResponse{Token: s.Token.Hex(), Authorized: s.Sufficient}
	if s.Amount != nil {
		r.Amount = s.Amount.String()
	}
	if s.Err != nil {
		r.Error = s.Err.Error()
	}
	return r
}
