package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-protocol/noah-client/internal/domain"
)

var account = common.HexToAddress("0x1111111111111111111111111111111111111111")

func newRPCWallet(tm *testMocks, chain domain.Chain) *RPCWallet {
	return &RPCWallet{client: tm.rpcClient, address: account, chainID: chain}
}

func TestConnectRPCWallet_SwitchesChain(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	gomock.InOrder(
		tm.rpcClient.EXPECT().CallContext(gomock.Any(), gomock.Any(), "eth_requestAccounts").
			DoAndReturn(respond(`["0x1111111111111111111111111111111111111111"]`)),
		tm.rpcClient.EXPECT().CallContext(gomock.Any(), gomock.Any(), "eth_chainId").
			DoAndReturn(respond(`"0x1"`)),
		tm.rpcClient.EXPECT().CallContext(gomock.Any(), nil, "wallet_switchEthereumChain", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, _ string, args ...interface{}) error {
				require.Len(t, args, 1)
				assert.Equal(t, map[string]string{"chainId": "0xa4b1"}, args[0])
				return nil
			}),
	)

	w, err := ConnectRPCWallet(context.Background(), tm.rpcClient, domain.ChainArbitrum)
	require.NoError(t, err)
	assert.Equal(t, account, w.Address())
	assert.Equal(t, domain.ChainArbitrum, w.ChainID())
}

func TestConnectRPCWallet_Rejected(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.rpcClient.EXPECT().CallContext(gomock.Any(), gomock.Any(), "eth_requestAccounts").
		Return(&rpcError{code: 4001, msg: "User rejected the request."})

	_, err := ConnectRPCWallet(context.Background(), tm.rpcClient, domain.ChainAnvil)
	assert.ErrorIs(t, err, domain.ErrUserRejected)
}

func TestRPCWallet_Capabilities(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		expected bool
	}{
		{"atomic supported", `{"0xa4b1":{"atomic":{"status":"supported"}}}`, nil, true},
		{"atomic ready", `{"0xa4b1":{"atomic":{"status":"ready"}}}`, nil, true},
		{"atomic unsupported", `{"0xa4b1":{"atomic":{"status":"unsupported"}}}`, nil, false},
		{"legacy atomicBatch", `{"0xa4b1":{"atomicBatch":{"supported":true}}}`, nil, true},
		{"decimal chain key", `{"42161":{"atomic":{"status":"supported"}}}`, nil, true},
		{"other chain only", `{"0x1":{"atomic":{"status":"supported"}}}`, nil, false},
		{"method not found", ``, &rpcError{code: -32601, msg: "method not found"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			call := tm.rpcClient.EXPECT().CallContext(gomock.Any(), gomock.Any(), "wallet_getCapabilities", account, []string{"0xa4b1"})
			if tt.err != nil {
				call.Return(tt.err)
			} else {
				call.DoAndReturn(respond(tt.response))
			}

			caps, err := newRPCWallet(tm, domain.ChainArbitrum).Capabilities(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, caps.AtomicBatch)
		})
	}
}

func TestRPCWallet_SendTransaction(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	expected := common.HexToHash("0x1234")
	tm.rpcClient.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_sendTransaction", gomock.Any()).
		DoAndReturn(func(_ context.Context, result interface{}, _ string, args ...interface{}) error {
			tx, ok := args[0].(sendTransactionArgs)
			require.True(t, ok)
			assert.Equal(t, account, tx.From)
			assert.Equal(t, noahAddress, tx.To)
			assert.Equal(t, big.NewInt(5), tx.Value.ToInt())
			return json.Unmarshal([]byte(`"`+expected.Hex()+`"`), result)
		})

	hash, err := newRPCWallet(tm, domain.ChainAnvil).SendTransaction(context.Background(),
		domain.Call{To: noahAddress, Data: []byte{1}, Value: big.NewInt(5)})
	require.NoError(t, err)
	assert.Equal(t, expected, hash)
}

func TestRPCWallet_SendTransaction_Rejected(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.rpcClient.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_sendTransaction", gomock.Any()).
		Return(&rpcError{code: 4001, msg: "User denied transaction signature."})

	_, err := newRPCWallet(tm, domain.ChainAnvil).SendTransaction(context.Background(), domain.Call{To: noahAddress})
	assert.ErrorIs(t, err, domain.ErrUserRejected)
}

func TestRPCWallet_SendTransaction_OtherError(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.rpcClient.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_sendTransaction", gomock.Any()).
		Return(&rpcError{code: -32000, msg: "insufficient funds"})

	_, err := newRPCWallet(tm, domain.ChainAnvil).SendTransaction(context.Background(), domain.Call{To: noahAddress})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUserRejected))
}

func TestRPCWallet_SendCalls(t *testing.T) {
	for _, response := range []string{`"0xbatch"`, `{"id":"0xbatch","capabilities":{}}`} {
		t.Run(response, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			tm.rpcClient.EXPECT().
				CallContext(gomock.Any(), gomock.Any(), "wallet_sendCalls", gomock.Any()).
				DoAndReturn(func(_ context.Context, result interface{}, _ string, args ...interface{}) error {
					req, ok := args[0].(sendCallsArgs)
					require.True(t, ok)
					assert.Equal(t, "2.0.0", req.Version)
					assert.True(t, req.AtomicRequired)
					assert.Equal(t, uint64(domain.ChainArbitrum), uint64(req.ChainID))
					require.Len(t, req.Calls, 3)
					assert.Equal(t, tokenA, req.Calls[0].To)
					assert.Equal(t, noahAddress, req.Calls[2].To)
					return json.Unmarshal([]byte(response), result)
				})

			id, err := newRPCWallet(tm, domain.ChainArbitrum).SendCalls(context.Background(), []domain.Call{
				{To: tokenA}, {To: tokenA}, {To: noahAddress},
			})
			require.NoError(t, err)
			assert.Equal(t, "0xbatch", id)
		})
	}
}

func TestRPCWallet_GetCallsStatus(t *testing.T) {
	tests := []struct {
		name     string
		response string
		code     int
		state    domain.BatchState
	}{
		{"pending", `{"status":100,"receipts":[]}`, 100, domain.BatchPending},
		{"confirmed", `{"status":200,"receipts":[{"transactionHash":"0x0000000000000000000000000000000000000000000000000000000000000001","status":"0x1"}]}`, 200, domain.BatchConfirmed},
		{"confirmed with reverted receipt", `{"status":200,"receipts":[{"transactionHash":"0x0000000000000000000000000000000000000000000000000000000000000001","status":"0x0"}]}`, 200, domain.BatchFailed},
		{"offchain failure", `{"status":400}`, 400, domain.BatchFailed},
		{"chain rules failure", `{"status":500}`, 500, domain.BatchFailed},
		{"legacy string", `{"status":"CONFIRMED","receipts":[]}`, 200, domain.BatchConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			tm.rpcClient.EXPECT().
				CallContext(gomock.Any(), gomock.Any(), "wallet_getCallsStatus", "0xbatch").
				DoAndReturn(respond(tt.response))

			status, err := newRPCWallet(tm, domain.ChainAnvil).GetCallsStatus(context.Background(), "0xbatch")
			require.NoError(t, err)
			assert.Equal(t, tt.code, status.Code)
			assert.Equal(t, tt.state, status.State)
		})
	}
}

func TestStateFromCode(t *testing.T) {
	assert.Equal(t, domain.BatchPending, StateFromCode(100))
	assert.Equal(t, domain.BatchConfirmed, StateFromCode(200))
	assert.Equal(t, domain.BatchFailed, StateFromCode(400))
	assert.Equal(t, domain.BatchFailed, StateFromCode(500))
	assert.Equal(t, domain.BatchFailed, StateFromCode(600))
}
