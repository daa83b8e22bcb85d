package ethereum

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-protocol/noah-client/internal/domain"
)

func packOutput(t *testing.T, method string, values ...interface{}) []byte {
	t.Helper()
	data, err := erc20ABI.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return data
}

func expectERC20Call(tm *testMocks, method string, result []byte, err error) {
	tm.ethClient.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			if !assert.Equal(tm.ctrl.T, erc20ABI.Methods[method].ID, msg.Data[:4]) {
				return nil, errors.New("unexpected method")
			}
			return result, err
		})
}

func TestERC20Client_Reads(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	client := NewERC20Client(tm.ethClient)

	expectERC20Call(tm, "balanceOf", packOutput(t, "balanceOf", big.NewInt(1_500_000)), nil)
	balance, err := client.BalanceOf(ctx, tokenA, owner)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_500_000), balance)

	expectERC20Call(tm, "symbol", packOutput(t, "symbol", "USDC"), nil)
	symbol, err := client.Symbol(ctx, tokenA)
	require.NoError(t, err)
	assert.Equal(t, "USDC", symbol)

	expectERC20Call(tm, "decimals", packOutput(t, "decimals", uint8(6)), nil)
	decimals, err := client.Decimals(ctx, tokenA)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)

	expectERC20Call(tm, "allowance", packOutput(t, "allowance", domain.MaxUint256), nil)
	amount, err := client.Allowance(ctx, tokenA, owner, noahAddress)
	require.NoError(t, err)
	assert.Equal(t, 0, domain.MaxUint256.Cmp(amount))
}

func TestERC20Client_ReadError(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	expectERC20Call(tm, "allowance", nil, errors.New("execution reverted"))

	client := NewERC20Client(tm.ethClient)
	_, err := client.Allowance(context.Background(), tokenA, owner, noahAddress)
	assert.ErrorContains(t, err, "execution reverted")
}

func TestERC20Client_ApproveCall(t *testing.T) {
	client := NewERC20Client(nil)

	call, err := client.ApproveCall(tokenB, noahAddress, domain.MaxUint256)
	require.NoError(t, err)
	assert.Equal(t, tokenB, call.To)

	method := erc20ABI.Methods["approve"]
	assert.Equal(t, method.ID, call.Data[:4])
	args, err := method.Inputs.Unpack(call.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, noahAddress, args[0])
	assert.Equal(t, 0, domain.MaxUint256.Cmp(args[1].(*big.Int)))
}
