package allowance

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/mocks"
)

var (
	owner   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	spender = common.HexToAddress("0xB7b9e0ba2B9748e7B5770AB165D142100DD6e4E3")
	tokenA  = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	tokenB  = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	tokenC  = common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccccc")
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testMocks struct {
	ctrl    *gomock.Controller
	erc20   *mocks.MockERC20Client
	checker Checker
}

func setupTest(t *testing.T) *testMocks {
	ctrl := gomock.NewController(t)
	erc20 := mocks.NewMockERC20Client(ctrl)
	return &testMocks{
		ctrl:    ctrl,
		erc20:   erc20,
		checker: NewChecker(Config{PoolSize: 2, TTL: time.Minute, Size: 16}, erc20),
	}
}

func tearDownTest(tm *testMocks) {
	tm.checker.Close()
	tm.ctrl.Finish()
}

func TestCheck_PreservesOrder(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.erc20.EXPECT().Allowance(gomock.Any(), tokenA, owner, spender).Return(big.NewInt(0), nil)
	tm.erc20.EXPECT().Allowance(gomock.Any(), tokenB, owner, spender).Return(big.NewInt(100), nil)
	tm.erc20.EXPECT().Allowance(gomock.Any(), tokenC, owner, spender).Return(big.NewInt(0), nil)

	statuses := tm.checker.Check(context.Background(), owner, spender, []common.Address{tokenA, tokenB, tokenC})
	require.Len(t, statuses, 3)

	assert.Equal(t, tokenA, statuses[0].Token)
	assert.False(t, statuses[0].Sufficient)
	assert.Equal(t, tokenB, statuses[1].Token)
	assert.True(t, statuses[1].Sufficient)
	assert.Equal(t, big.NewInt(100), statuses[1].Amount)
	assert.Equal(t, tokenC, statuses[2].Token)
	assert.False(t, statuses[2].Sufficient)
}

func TestCheck_FailedReadIsNotAuthorized(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	readErr := errors.New("execution reverted")
	tm.erc20.EXPECT().Allowance(gomock.Any(), tokenA, owner, spender).Return(nil, readErr)
	tm.erc20.EXPECT().Allowance(gomock.Any(), tokenB, owner, spender).Return(big.NewInt(1), nil)

	statuses := tm.checker.Check(context.Background(), owner, spender, []common.Address{tokenA, tokenB})
	require.Len(t, statuses, 2)

	assert.False(t, statuses[0].Sufficient)
	assert.ErrorIs(t, statuses[0].Err, readErr)
	assert.True(t, statuses[1].Sufficient)
	assert.NoError(t, statuses[1].Err)
}

func TestCheck_FailedReadIsNotCached(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	gomock.InOrder(
		tm.erc20.EXPECT().Allowance(gomock.Any(), tokenA, owner, spender).Return(nil, errors.New("timeout")),
		tm.erc20.EXPECT().Allowance(gomock.Any(), tokenA, owner, spender).Return(big.NewInt(5), nil),
	)

	first := tm.checker.Check(context.Background(), owner, spender, []common.Address{tokenA})
	assert.False(t, first[0].Sufficient)

	second := tm.checker.Check(context.Background(), owner, spender, []common.Address{tokenA})
	assert.True(t, second[0].Sufficient)
}

func TestCheck_CachedUntilInvalidated(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	gomock.InOrder(
		tm.erc20.EXPECT().Allowance(gomock.Any(), tokenA, owner, spender).Return(big.NewInt(7), nil),
		tm.erc20.EXPECT().Allowance(gomock.Any(), tokenA, owner, spender).Return(big.NewInt(0), nil),
	)

	tokens := []common.Address{tokenA}
	assert.True(t, tm.checker.Check(context.Background(), owner, spender, tokens)[0].Sufficient)
	// served from cache, no second read
	assert.True(t, tm.checker.Check(context.Background(), owner, spender, tokens)[0].Sufficient)

	tm.checker.Invalidate(owner, spender, tokenA)
	assert.False(t, tm.checker.Check(context.Background(), owner, spender, tokens)[0].Sufficient)
}

func TestCheck_InsufficientIsNotCached(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	// approved elsewhere between the two checks
	gomock.InOrder(
		tm.erc20.EXPECT().Allowance(gomock.Any(), tokenA, owner, spender).Return(big.NewInt(0), nil),
		tm.erc20.EXPECT().Allowance(gomock.Any(), tokenA, owner, spender).Return(big.NewInt(7), nil),
	)

	tokens := []common.Address{tokenA}
	assert.False(t, tm.checker.Check(context.Background(), owner, spender, tokens)[0].Sufficient)
	assert.True(t, tm.checker.Check(context.Background(), owner, spender, tokens)[0].Sufficient)
}

func TestCheck_Empty(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	assert.Empty(t, tm.checker.Check(context.Background(), owner, spender, nil))
}

func TestTokenInfo(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.erc20.EXPECT().Symbol(gomock.Any(), tokenA).Return("USDC", nil)
	tm.erc20.EXPECT().Decimals(gomock.Any(), tokenA).Return(uint8(6), nil)
	tm.erc20.EXPECT().BalanceOf(gomock.Any(), tokenA, owner).Return(big.NewInt(1_500_000), nil)

	info := tm.checker.TokenInfo(context.Background(), tokenA, owner)
	assert.Equal(t, "USDC", info.Symbol)
	assert.Equal(t, uint8(6), info.Decimals)
	assert.Equal(t, "1.5", info.FormatBalance())

	// metadata and balance are cached
	again := tm.checker.TokenInfo(context.Background(), tokenA, owner)
	assert.Equal(t, info, again)
}

func TestTokenInfo_Degrades(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.erc20.EXPECT().Symbol(gomock.Any(), tokenB).Return("", errors.New("no symbol"))
	tm.erc20.EXPECT().Decimals(gomock.Any(), tokenB).Return(uint8(0), errors.New("no decimals"))
	tm.erc20.EXPECT().BalanceOf(gomock.Any(), tokenB, owner).Return(nil, errors.New("reverted"))

	info := tm.checker.TokenInfo(context.Background(), tokenB, owner)
	assert.Equal(t, tokenB, info.Address)
	assert.Equal(t, UnknownSymbol, info.Symbol)
	assert.Equal(t, uint8(18), info.Decimals)
	assert.Nil(t, info.Balance)
	assert.Equal(t, "?", info.FormatBalance())
}

func TestTokenInfos_PreservesOrder(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	for token, symbol := range map[common.Address]string{tokenA: "AAA", tokenB: "BBB", tokenC: "CCC"} {
		tm.erc20.EXPECT().Symbol(gomock.Any(), token).Return(symbol, nil)
		tm.erc20.EXPECT().Decimals(gomock.Any(), token).Return(uint8(18), nil)
		tm.erc20.EXPECT().BalanceOf(gomock.Any(), token, owner).Return(big.NewInt(0), nil)
	}

	infos := tm.checker.TokenInfos(context.Background(), []common.Address{tokenC, tokenA, tokenB}, owner)
	require.Len(t, infos, 3)
	assert.Equal(t, "CCC", infos[0].Symbol)
	assert.Equal(t, "AAA", infos[1].Symbol)
	assert.Equal(t, "BBB", infos[2].Symbol)
}
