package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
)

// ERC20Client reads ERC20 token state and encodes approvals
//
//go:generate mockgen -source=erc20.go -destination=../../mocks/erc20_client.go -package=mocks -mock_names=ERC20Client=MockERC20Client
type ERC20Client interface {
	// BalanceOf returns the token balance of account
	BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error)

	// Symbol returns the token symbol
	Symbol(ctx context.Context, token common.Address) (string, error)

	// Decimals returns the token decimals
	Decimals(ctx context.Context, token common.Address) (uint8, error)

	// Allowance returns the amount spender may transfer on behalf of owner
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)

	// ApproveCall encodes approve(spender, amount) on token
	ApproveCall(token, spender common.Address, amount *big.Int) (domain.Call, error)
}

type erc20Client struct {
	client adapter.EthClient
}

// NewERC20Client creates an ERC20 reader over client
func NewERC20Client(client adapter.EthClient) ERC20Client {
	return &erc20Client{client: client}
}

func (c *erc20Client) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	var balance *big.Int
	if err := c.call(ctx, token, &balance, "balanceOf", account); err != nil {
		return nil, err
	}
	return balance, nil
}

func (c *erc20Client) Symbol(ctx context.Context, token common.Address) (string, error) {
	var symbol string
	if err := c.call(ctx, token, &symbol, "symbol"); err != nil {
		return "", err
	}
	return symbol, nil
}

func (c *erc20Client) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	var decimals uint8
	if err := c.call(ctx, token, &decimals, "decimals"); err != nil {
		return 0, err
	}
	return decimals, nil
}

func (c *erc20Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	var amount *big.Int
	if err := c.call(ctx, token, &amount, "allowance", owner, spender); err != nil {
		return nil, err
	}
	return amount, nil
}

func (c *erc20Client) ApproveCall(token, spender common.Address, amount *big.Int) (domain.Call, error) {
	data, err := erc20ABI.Pack("approve", spender, amount)
	if err != nil {
		return domain.Call{}, fmt.Errorf("failed to pack approve: %w", err)
	}
	return domain.Call{
		To:    token,
		Data:  data,
		Label: "Approve " + token.Hex(),
	}, nil
}

// call executes a view method on token and unpacks its single output into out
func (c *erc20Client) call(ctx context.Context, token common.Address, out interface{}, method string, args ...interface{}) error {
	data, err := erc20ABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &token,
		Data: data,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to call %s on %s: %w", method, token.Hex(), err)
	}

	if err := erc20ABI.UnpackIntoInterface(out, method, result); err != nil {
		return fmt.Errorf("failed to unpack %s result: %w", method, err)
	}

	return nil
}
