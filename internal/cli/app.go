package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/noah-protocol/noah-client/internal/activity"
	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/allowance"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/orchestrator"
	"github.com/noah-protocol/noah-client/internal/providers/ethereum"
)

// ErrUsage is returned for an unknown command or invalid flags
var ErrUsage = errors.New("usage")

// Runner submits a plan through the connected account, satisfied by *orchestrator.Orchestrator
type Runner interface {
	Run(ctx context.Context, plan orchestrator.Plan) (*orchestrator.Result, error)
	Mode() orchestrator.Mode
}

// Session is an opened signing account
type Session struct {
	Account common.Address
	Runner  Runner
	Close   func()
}

// SessionOpener opens the signing account on first use
type SessionOpener func(ctx context.Context) (*Session, error)

// Deps are the collaborators of the CLI
type Deps struct {
	Chain    domain.Chain
	Noah     ethereum.NoahClient
	Checker  allowance.Checker
	Activity activity.Service
	Clock    adapter.Clock
	Open     SessionOpener
	Out      io.Writer
}

// App dispatches noah subcommands
type App struct {
	deps    Deps
	session *Session
}

// New creates an App
func New(deps Deps) *App {
	return &App{deps: deps}
}

type command struct {
	name    string
	summary string
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{"show", "show an ark", (*App).show},
	{"build", "create an ark protecting tokens", (*App).build},
	{"ping", "reset the ark deadline", (*App).ping},
	{"add", "add tokens to the ark", (*App).add},
	{"remove", "remove a token from the ark", (*App).remove},
	{"duration", "update the deadline duration", (*App).duration},
	{"destroy", "destroy the ark", (*App).destroy},
	{"flood", "flood an expired ark to its beneficiary", (*App).flood},
	{"activity", "show ark activity", (*App).activity},
	{"allowances", "show which tokens the contract may move", (*App).allowances},
}

// Run executes the subcommand named by args[0]
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(a, ctx, args[1:])
		}
	}

	a.usage()
	return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
}

// Close releases the signing session, if one was opened
func (a *App) Close() {
	if a.session != nil && a.session.Close != nil {
		a.session.Close()
	}
}

func (a *App) usage() {
	var b strings.Builder
	b.WriteString("usage: noah <command> [flags]\n\ncommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %-11s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprint(a.deps.Out, b.String())
}

// open returns the signing session, opening it on first use
func (a *App) open(ctx context.Context) (*Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	if a.deps.Open == nil {
		return nil, errors.New("no wallet configured")
	}
	s, err := a.deps.Open(ctx)
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

// owner parses flagValue, or falls back to the connected account
func (a *App) owner(ctx context.Context, flagValue string) (common.Address, error) {
	if flagValue != "" {
		return domain.ParseAddress(flagValue)
	}
	s, err := a.open(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("--owner not set and no account available: %w", err)
	}
	return s.Account, nil
}

// existingArk reads owner's ark and fails with ErrArkNotFound when there is none
func (a *App) existingArk(ctx context.Context, owner common.Address) (*domain.Ark, error) {
	ark, err := a.deps.Noah.GetArk(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read ark: %w", err)
	}
	if !ark.Exists() {
		return nil, fmt.Errorf("%w for %s", domain.ErrArkNotFound, owner.Hex())
	}
	return ark, nil
}
