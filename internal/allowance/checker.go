package allowance

import (
	"context"
	"math/big"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/providers/ethereum"
)

// UnknownSymbol is shown when a token's metadata cannot be read
const UnknownSymbol = "?"

// Status is the allowance check result for one token
type Status struct {
	Token      common.Address `json:"token"`
	Amount     *big.Int       `json:"amount,omitempty"`
	Sufficient bool           `json:"sufficient"`
	// Err is set when the read failed; the token is then reported as not authorized
	Err error `json:"-"`
}

// Checker reports which tokens already allow a spender to move them
type Checker interface {
	// Check returns one status per token, in input order
	Check(ctx context.Context, owner, spender common.Address, tokens []common.Address) []Status

	// TokenInfo returns display metadata for token, with owner's balance
	TokenInfo(ctx context.Context, token, owner common.Address) domain.TokenInfo

	// TokenInfos returns TokenInfo for each token, in input order
	TokenInfos(ctx context.Context, tokens []common.Address, owner common.Address) []domain.TokenInfo

	// Invalidate drops the cached allowance so the next check reads the chain
	Invalidate(owner, spender, token common.Address)

	// Close stops the worker pool
	Close()
}

// Config holds configuration for the Checker
type Config struct {
	// PoolSize bounds concurrent token reads
	PoolSize int

	// TTL is how long a sufficient allowance is reused
	TTL time.Duration

	// Size bounds the number of cached entries per cache
	Size int
}

type allowanceKey struct {
	token, owner, spender common.Address
}

type balanceKey struct {
	token, owner common.Address
}

type tokenMeta struct {
	symbol   string
	decimals uint8
}

type checker struct {
	erc20 ethereum.ERC20Client
	pool  pond.ResultPool[Status]
	infos pond.ResultPool[domain.TokenInfo]

	allowances *expirable.LRU[allowanceKey, *big.Int]
	balances   *expirable.LRU[balanceKey, *big.Int]
	metadata   *expirable.LRU[common.Address, tokenMeta]
}

// NewChecker creates a Checker reading through erc20
func NewChecker(cfg Config, erc20 ethereum.ERC20Client) Checker {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 4
	}
	if cfg.Size <= 0 {
		cfg.Size = 512
	}

	return &checker{
		erc20:      erc20,
		pool:       pond.NewResultPool[Status](cfg.PoolSize),
		infos:      pond.NewResultPool[domain.TokenInfo](cfg.PoolSize),
		allowances: expirable.NewLRU[allowanceKey, *big.Int](cfg.Size, nil, cfg.TTL),
		balances:   expirable.NewLRU[balanceKey, *big.Int](cfg.Size, nil, cfg.TTL),
		metadata:   expirable.NewLRU[common.Address, tokenMeta](cfg.Size, nil, cfg.TTL),
	}
}

// Check reads allowance(owner, spender) for every token concurrently
func (c *checker) Check(ctx context.Context, owner, spender common.Address, tokens []common.Address) []Status {
	if len(tokens) == 0 {
		return nil
	}

	group := c.pool.NewGroup()
	for _, token := range tokens {
		group.Submit(func() Status {
			return c.checkOne(ctx, owner, spender, token)
		})
	}

	results, err := group.Wait()
	if err != nil {
		// tasks never return errors; a failure here means the pool was stopped
		logger.ErrorCtx(ctx, err, zap.String("owner", owner.Hex()))
		results = make([]Status, len(tokens))
		for i, token := range tokens {
			results[i] = Status{Token: token, Err: err}
		}
	}

	return results
}

func (c *checker) checkOne(ctx context.Context, owner, spender, token common.Address) Status {
	key := allowanceKey{token: token, owner: owner, spender: spender}
	if amount, ok := c.allowances.Get(key); ok {
		return newStatus(token, amount)
	}

	amount, err := c.erc20.Allowance(ctx, token, owner, spender)
	if err != nil {
		logger.WarnCtx(ctx, "Allowance read failed, treating as not authorized",
			zap.Error(err),
			zap.String("token", token.Hex()),
			zap.String("owner", owner.Hex()))
		return Status{Token: token, Err: err}
	}

	status := newStatus(token, amount)
	// only sufficient allowances are reused; a missing one is re-read every check
	if status.Sufficient {
		c.allowances.Add(key, amount)
	}
	return status
}

func newStatus(token common.Address, amount *big.Int) Status {
	allowance := domain.Allowance{Token: token, Amount: amount}
	return Status{Token: token, Amount: amount, Sufficient: allowance.Sufficient()}
}

func (c *checker) Invalidate(owner, spender, token common.Address) {
	c.allowances.Remove(allowanceKey{token: token, owner: owner, spender: spender})
	c.balances.Remove(balanceKey{token: token, owner: owner})
}

// TokenInfo degrades each failed field independently: symbol "?", decimals 18, balance nil
func (c *checker) TokenInfo(ctx context.Context, token, owner common.Address) domain.TokenInfo {
	info := domain.TokenInfo{Address: token, Symbol: UnknownSymbol, Decimals: 18}

	if meta, ok := c.metadata.Get(token); ok {
		info.Symbol, info.Decimals = meta.symbol, meta.decimals
	} else {
		symbol, symErr := c.erc20.Symbol(ctx, token)
		decimals, decErr := c.erc20.Decimals(ctx, token)
		if symErr == nil {
			info.Symbol = symbol
		}
		if decErr == nil {
			info.Decimals = decimals
		}
		if symErr == nil && decErr == nil {
			c.metadata.Add(token, tokenMeta{symbol: symbol, decimals: decimals})
		} else {
			logger.DebugCtx(ctx, "Token metadata unavailable",
				zap.String("token", token.Hex()),
				zap.NamedError("symbolError", symErr),
				zap.NamedError("decimalsError", decErr))
		}
	}

	key := balanceKey{token: token, owner: owner}
	if balance, ok := c.balances.Get(key); ok {
		info.Balance = balance
		return info
	}
	balance, err := c.erc20.BalanceOf(ctx, token, owner)
	if err != nil {
		logger.DebugCtx(ctx, "Token balance unavailable", zap.String("token", token.Hex()), zap.Error(err))
		return info
	}
	c.balances.Add(key, balance)
	info.Balance = balance

	return info
}

func (c *checker) TokenInfos(ctx context.Context, tokens []common.Address, owner common.Address) []domain.TokenInfo {
	if len(tokens) == 0 {
		return nil
	}

	group := c.infos.NewGroup()
	for _, token := range tokens {
		group.Submit(func() domain.TokenInfo {
			return c.TokenInfo(ctx, token, owner)
		})
	}

	results, err := group.Wait()
	if err != nil {
		results = make([]domain.TokenInfo, len(tokens))
		for i, token := range tokens {
			results[i] = domain.TokenInfo{Address: token, Symbol: UnknownSymbol}
		}
	}
	return results
}

func (c *checker) Close() {
	c.pool.StopAndWait()
	c.infos.StopAndWait()
}
