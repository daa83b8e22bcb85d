package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/orchestrator"
	"github.com/noah-protocol/noah-client/internal/poller"
)

func (a *App) show(ctx context.Context, args []string) error {
	fs := newFlagSet("show", a.deps.Out)
	ownerFlag := fs.String("owner", "", "ark owner (default: connected account)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	owner, err := a.owner(ctx, *ownerFlag)
	if err != nil {
		return err
	}
	ark, err := a.existingArk(ctx, owner)
	if err != nil {
		return err
	}

	infos := a.deps.Checker.TokenInfos(ctx, ark.Tokens, owner)
	printArk(a.deps.Out, ark, infos, a.deps.Clock.Now())
	return nil
}

func (a *App) build(ctx context.Context, args []string) error {
	fs := newFlagSet("build", a.deps.Out)
	beneficiaryFlag := fs.String("beneficiary", "", "address that receives the tokens after the deadline")
	durationFlag := fs.String("duration", "30 Days", "deadline duration")
	tokensFlag := fs.String("tokens", "", "comma separated token addresses")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	beneficiary, err := domain.ParseAddress(*beneficiaryFlag)
	if err != nil {
		return fmt.Errorf("--beneficiary: %w", err)
	}
	duration, err := ParseDuration(*durationFlag)
	if err != nil {
		return err
	}
	tokens, err := parseTokenList(*tokensFlag)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return domain.ErrNoTokens
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	ark, err := a.deps.Noah.GetArk(ctx, s.Account)
	if err != nil {
		return fmt.Errorf("failed to read ark: %w", err)
	}
	if ark.Exists() {
		return domain.ErrArkAlreadyExists
	}

	call, err := a.deps.Noah.BuildArkCall(beneficiary, duration, tokens)
	if err != nil {
		return err
	}
	return a.submit(ctx, s, orchestrator.Plan{
		Spender: a.deps.Noah.Address(),
		Tokens:  tokens,
		Primary: call,
		Expect:  poller.ExpectCreated,
	})
}

func (a *App) ping(ctx context.Context, args []string) error {
	fs := newFlagSet("ping", a.deps.Out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	if _, err := a.existingArk(ctx, s.Account); err != nil {
		return err
	}

	call, err := a.deps.Noah.PingArkCall()
	if err != nil {
		return err
	}
	return a.submit(ctx, s, orchestrator.Plan{Spender: a.deps.Noah.Address(), Primary: call})
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add", a.deps.Out)
	tokensFlag := fs.String("tokens", "", "comma separated token addresses")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tokens, err := parseTokenList(*tokensFlag)
	if err != nil {
		return err
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	ark, err := a.existingArk(ctx, s.Account)
	if err != nil {
		return err
	}

	var added []common.Address
	for _, token := range tokens {
		if ark.HasToken(token) {
			fmt.Fprintf(a.deps.Out, "%s is already protected, skipping\n", token.Hex())
			continue
		}
		added = append(added, token)
	}
	if len(added) == 0 {
		return domain.ErrNoTokens
	}

	call, err := a.deps.Noah.AddPassengersCall(added)
	if err != nil {
		return err
	}
	return a.submit(ctx, s, orchestrator.Plan{
		Spender: a.deps.Noah.Address(),
		Tokens:  added,
		Primary: call,
	})
}

func (a *App) remove(ctx context.Context, args []string) error {
	fs := newFlagSet("remove", a.deps.Out)
	tokenFlag := fs.String("token", "", "token address to stop protecting")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	token, err := domain.ParseAddress(*tokenFlag)
	if err != nil {
		return fmt.Errorf("--token: %w", err)
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	ark, err := a.existingArk(ctx, s.Account)
	if err != nil {
		return err
	}
	if !ark.HasToken(token) {
		return fmt.Errorf("%s is not protected by this ark", token.Hex())
	}

	call, err := a.deps.Noah.RemovePassengerCall(token)
	if err != nil {
		return err
	}
	return a.submit(ctx, s, orchestrator.Plan{Spender: a.deps.Noah.Address(), Primary: call})
}

func (a *App) duration(ctx context.Context, args []string) error {
	fs := newFlagSet("duration", a.deps.Out)
	durationFlag := fs.String("duration", "", "new deadline duration")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	duration, err := ParseDuration(*durationFlag)
	if err != nil {
		return err
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	ark, err := a.existingArk(ctx, s.Account)
	if err != nil {
		return err
	}
	if ark.DeadlineDuration == duration {
		fmt.Fprintf(a.deps.Out, "Deadline duration is already %s\n", domain.FormatDuration(duration))
		return nil
	}

	call, err := a.deps.Noah.UpdateDeadlineDurationCall(duration)
	if err != nil {
		return err
	}
	return a.submit(ctx, s, orchestrator.Plan{Spender: a.deps.Noah.Address(), Primary: call})
}

func (a *App) destroy(ctx context.Context, args []string) error {
	fs := newFlagSet("destroy", a.deps.Out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	if _, err := a.existingArk(ctx, s.Account); err != nil {
		return err
	}

	call, err := a.deps.Noah.DestroyArkCall()
	if err != nil {
		return err
	}
	return a.submit(ctx, s, orchestrator.Plan{
		Spender: a.deps.Noah.Address(),
		Primary: call,
		Expect:  poller.ExpectDestroyed,
	})
}

func (a *App) flood(ctx context.Context, args []string) error {
	fs := newFlagSet("flood", a.deps.Out)
	ownerFlag := fs.String("owner", "", "owner of the expired ark")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	owner, err := domain.ParseAddress(*ownerFlag)
	if err != nil {
		return fmt.Errorf("--owner: %w", err)
	}
	ark, err := a.existingArk(ctx, owner)
	if err != nil {
		return err
	}
	now := a.deps.Clock.Now()
	if !ark.Expired(now) {
		return fmt.Errorf("deadline not reached: %s", domain.RemainingUntil(ark.Deadline, now).Text)
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	call, err := a.deps.Noah.FloodCall(owner)
	if err != nil {
		return err
	}
	return a.submit(ctx, s, orchestrator.Plan{Spender: a.deps.Noah.Address(), Primary: call})
}

func (a *App) activity(ctx context.Context, args []string) error {
	fs := newFlagSet("activity", a.deps.Out)
	ownerFlag := fs.String("owner", "", "ark owner (default: connected account)")
	chainFlag := fs.String("chain", "", "chain id (default: configured chain)")
	refresh := fs.Bool("refresh", false, "bypass the cache")
	wait := fs.Duration("wait", 10*time.Second, "how long to wait for a background refresh")
	onchain := fs.Bool("onchain", false, "read contract logs instead of the indexer")
	fromBlock := fs.Uint64("from-block", 0, "first block scanned with --onchain")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	owner, err := a.owner(ctx, *ownerFlag)
	if err != nil {
		return err
	}
	if *onchain {
		events, err := a.deps.Noah.GetArkEvents(ctx, owner, *fromBlock)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.deps.Out, "Activity on %s (contract logs from block %d)\n", a.deps.Chain.Name(), *fromBlock)
		printEvents(a.deps.Out, events, a.deps.Clock.Now())
		return nil
	}
	chain := a.deps.Chain
	if *chainFlag != "" {
		if chain, err = domain.ParseChain(*chainFlag); err != nil {
			return err
		}
	}

	if *refresh {
		view, err := a.deps.Activity.Refresh(ctx, owner, chain)
		if err != nil {
			return err
		}
		printActivity(a.deps.Out, view, chain, a.deps.Clock.Now())
		return nil
	}

	view, updates, err := a.deps.Activity.Get(ctx, owner, chain)
	if err != nil {
		return err
	}
	printActivity(a.deps.Out, view, chain, a.deps.Clock.Now())
	if updates == nil {
		return nil
	}

	select {
	case updated, ok := <-updates:
		if ok && updated != nil {
			fmt.Fprintln(a.deps.Out, "\nUpdated:")
			printActivity(a.deps.Out, updated, chain, a.deps.Clock.Now())
		}
	case <-a.deps.Clock.After(*wait):
	case <-ctx.Done():
	}
	return nil
}

func (a *App) allowances(ctx context.Context, args []string) error {
	fs := newFlagSet("allowances", a.deps.Out)
	ownerFlag := fs.String("owner", "", "token owner (default: connected account)")
	tokensFlag := fs.String("tokens", "", "comma separated token addresses (default: the ark's tokens)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	owner, err := a.owner(ctx, *ownerFlag)
	if err != nil {
		return err
	}
	tokens, err := parseTokenList(*tokensFlag)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		ark, err := a.existingArk(ctx, owner)
		if err != nil {
			return err
		}
		tokens = ark.Tokens
	}

	statuses := a.deps.Checker.Check(ctx, owner, a.deps.Noah.Address(), tokens)
	infos := a.deps.Checker.TokenInfos(ctx, tokens, owner)
	printAllowances(a.deps.Out, statuses, infos)
	return nil
}

// submit runs plan, prints the outcome and drops the cached activity once the call is committed
func (a *App) submit(ctx context.Context, s *Session, plan orchestrator.Plan) error {
	fmt.Fprintf(a.deps.Out, "%s (%s approvals)\n", plan.Primary.Label, s.Runner.Mode())

	result, err := s.Runner.Run(ctx, plan)
	if result != nil {
		printResult(a.deps.Out, result, a.deps.Chain)
		if result.Committed && a.deps.Activity != nil {
			if invErr := a.deps.Activity.Invalidate(ctx, s.Account, a.deps.Chain); invErr != nil {
				logger.WarnCtx(ctx, "Failed to invalidate activity cache", zap.Error(invErr))
			}
		}
	}
	return err
}
