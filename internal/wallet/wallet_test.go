package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-protocol/noah-client/internal/config"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/mocks"
)

const testKeyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

var (
	noahAddress = common.HexToAddress(domain.DEFAULT_NOAH_ADDRESS)
	tokenA      = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testMocks struct {
	ctrl       *gomock.Controller
	ethClient  *mocks.MockEthClient
	rpcClient  *mocks.MockRPCClient
	rpcDialer  *mocks.MockRPCDialer
	terminal   *mocks.MockTerminal
	fileSystem *mocks.MockFileSystem
}

func setupTest(t *testing.T) *testMocks {
	ctrl := gomock.NewController(t)
	return &testMocks{
		ctrl:       ctrl,
		ethClient:  mocks.NewMockEthClient(ctrl),
		rpcClient:  mocks.NewMockRPCClient(ctrl),
		rpcDialer:  mocks.NewMockRPCDialer(ctrl),
		terminal:   mocks.NewMockTerminal(ctrl),
		fileSystem: mocks.NewMockFileSystem(ctrl),
	}
}

func tearDownTest(tm *testMocks) {
	tm.ctrl.Finish()
}

// respond decodes raw into the JSON-RPC result pointer
func respond(raw string) func(context.Context, interface{}, string, ...interface{}) error {
	return func(_ context.Context, result interface{}, _ string, _ ...interface{}) error {
		if result == nil {
			return nil
		}
		return json.Unmarshal([]byte(raw), result)
	}
}

type rpcError struct {
	code int
	msg  string
}

func (e *rpcError) Error() string  { return e.msg }
func (e *rpcError) ErrorCode() int { return e.code }

func TestKeyWallet_SendTransaction_DynamicFee(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	key, err := ParseHexKey("0x" + testKeyHex)
	require.NoError(t, err)
	w := NewKeyWallet(key, domain.ChainArbitrum, tm.ethClient, nil)
	call := domain.Call{To: tokenA, Data: []byte{0x09, 0x5e, 0xa7, 0xb3}, Label: "Approve"}

	tm.ethClient.EXPECT().PendingNonceAt(gomock.Any(), w.Address()).Return(uint64(7), nil)
	tm.ethClient.EXPECT().
		EstimateGas(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
			assert.Equal(t, w.Address(), msg.From)
			assert.Equal(t, tokenA, *msg.To)
			return 100_000, nil
		})
	tm.ethClient.EXPECT().HeaderByNumber(gomock.Any(), nil).Return(&types.Header{BaseFee: big.NewInt(10)}, nil)
	tm.ethClient.EXPECT().SuggestGasTipCap(gomock.Any()).Return(big.NewInt(2), nil)

	var sent *types.Transaction
	tm.ethClient.EXPECT().
		SendTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})

	hash, err := w.SendTransaction(context.Background(), call)
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, sent.Hash(), hash)
	assert.Equal(t, uint8(types.DynamicFeeTxType), sent.Type())
	assert.Equal(t, uint64(7), sent.Nonce())
	assert.Equal(t, uint64(120_000), sent.Gas())
	assert.Equal(t, big.NewInt(22), sent.GasFeeCap())
	assert.Equal(t, big.NewInt(int64(domain.ChainArbitrum)), sent.ChainId())

	sender, err := types.Sender(types.LatestSignerForChainID(sent.ChainId()), sent)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), sender)
}

func TestKeyWallet_SendTransaction_Legacy(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	key, err := ParseHexKey(testKeyHex)
	require.NoError(t, err)
	w := NewKeyWallet(key, domain.ChainAnvil, tm.ethClient, nil)

	tm.ethClient.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(0), nil)
	tm.ethClient.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(50_000), nil)
	tm.ethClient.EXPECT().HeaderByNumber(gomock.Any(), nil).Return(&types.Header{}, nil)
	tm.ethClient.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1_000_000_000), nil)
	tm.ethClient.EXPECT().
		SendTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			assert.Equal(t, uint8(types.LegacyTxType), tx.Type())
			assert.Equal(t, big.NewInt(1_000_000_000), tx.GasPrice())
			return nil
		})

	_, err = w.SendTransaction(context.Background(), domain.Call{To: noahAddress})
	require.NoError(t, err)
}

func TestKeyWallet_SendTransaction_Declined(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	key, err := ParseHexKey(testKeyHex)
	require.NoError(t, err)
	w := NewKeyWallet(key, domain.ChainAnvil, tm.ethClient, tm.terminal)

	tm.terminal.EXPECT().Confirm(gomock.Any()).Return(false, nil)

	_, err = w.SendTransaction(context.Background(), domain.Call{To: noahAddress, Label: "Ping ark"})
	assert.ErrorIs(t, err, domain.ErrUserRejected)
}

func TestKeyWallet_NoBatching(t *testing.T) {
	key, err := ParseHexKey(testKeyHex)
	require.NoError(t, err)
	w := NewKeyWallet(key, domain.ChainAnvil, nil, nil)

	caps, err := w.Capabilities(context.Background())
	require.NoError(t, err)
	assert.False(t, caps.AtomicBatch)

	_, err = w.SendCalls(context.Background(), []domain.Call{{To: noahAddress}})
	assert.ErrorIs(t, err, domain.ErrBatchUnsupported)

	_, err = w.GetCallsStatus(context.Background(), "id")
	assert.ErrorIs(t, err, domain.ErrBatchUnsupported)
}

func TestParseHexKey_Invalid(t *testing.T) {
	_, err := ParseHexKey("0xnothex")
	assert.Error(t, err)
}

func TestDecryptKeystore(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	pk, err := crypto.GenerateKey()
	require.NoError(t, err)
	encrypted, err := keystore.EncryptKey(&keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(pk.PublicKey),
		PrivateKey: pk,
	}, "hunter2", keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	tm.fileSystem.EXPECT().ReadFile("/keys/ark.json").Return(encrypted, nil).Times(2)

	key, err := DecryptKeystore(tm.fileSystem, "/keys/ark.json", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(pk.PublicKey), crypto.PubkeyToAddress(key.PublicKey))

	_, err = DecryptKeystore(tm.fileSystem, "/keys/ark.json", "wrong")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	t.Run("key from hex", func(t *testing.T) {
		tm := setupTest(t)
		defer tearDownTest(tm)

		w, closeFn, err := Open(context.Background(), config.WalletConfig{Mode: "key", PrivateKey: testKeyHex, Confirm: true},
			domain.ChainAnvil, tm.ethClient, Deps{Terminal: tm.terminal})
		require.NoError(t, err)
		defer closeFn()

		kw, ok := w.(*KeyWallet)
		require.True(t, ok)
		assert.NotNil(t, kw.confirmer)
	})

	t.Run("keystore prompts for passphrase", func(t *testing.T) {
		tm := setupTest(t)
		defer tearDownTest(tm)

		tm.terminal.EXPECT().ReadSecret(gomock.Any()).Return("", errors.New("not a terminal"))

		_, _, err := Open(context.Background(), config.WalletConfig{Mode: "key", KeystorePath: "/keys/ark.json"},
			domain.ChainAnvil, tm.ethClient, Deps{Terminal: tm.terminal, FileSystem: tm.fileSystem})
		assert.ErrorContains(t, err, "not a terminal")
	})

	t.Run("no signer", func(t *testing.T) {
		_, _, err := Open(context.Background(), config.WalletConfig{Mode: "key"}, domain.ChainAnvil, nil, Deps{})
		assert.ErrorIs(t, err, ErrNoSigner)
	})

	t.Run("remote wallet", func(t *testing.T) {
		tm := setupTest(t)
		defer tearDownTest(tm)

		tm.rpcDialer.EXPECT().Dial(gomock.Any(), "http://127.0.0.1:9545").Return(tm.rpcClient, nil)
		tm.rpcClient.EXPECT().CallContext(gomock.Any(), gomock.Any(), "eth_requestAccounts").
			DoAndReturn(respond(`["0x1111111111111111111111111111111111111111"]`))
		tm.rpcClient.EXPECT().CallContext(gomock.Any(), gomock.Any(), "eth_chainId").
			DoAndReturn(respond(`"0x7a69"`))
		tm.rpcClient.EXPECT().Close()

		w, closeFn, err := Open(context.Background(), config.WalletConfig{Mode: "rpc", RPCURL: "http://127.0.0.1:9545"},
			domain.ChainAnvil, nil, Deps{RPCDialer: tm.rpcDialer})
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), w.Address())
		closeFn()
	})
}
