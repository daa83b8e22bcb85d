package domain

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Chain
		wantErr  bool
	}{
		{name: "decimal id", input: "42161", expected: ChainArbitrum},
		{name: "caip2 id", input: "eip155:11155111", expected: ChainSepolia},
		{name: "padded", input: " 31337 ", expected: ChainAnvil},
		{name: "zero", input: "0", wantErr: true},
		{name: "garbage", input: "tezos:mainnet", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := ParseChain(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, chain)
		})
	}
}

func TestChain_Helpers(t *testing.T) {
	assert.Equal(t, "eip155:42161", ChainArbitrum.CAIP2())
	assert.Equal(t, "42161", ChainArbitrum.String())
	assert.Equal(t, "Arbitrum One", ChainArbitrum.Name())
	assert.Equal(t, "chain 10", Chain(10).Name())
	assert.True(t, IsKnownChain(ChainAnvil))
	assert.False(t, IsKnownChain(Chain(10)))

	hash := common.HexToHash("0x01")
	assert.Equal(t, "https://arbiscan.io/tx/"+hash.Hex(), ChainArbitrum.TxURL(hash))
	assert.Empty(t, ChainAnvil.TxURL(hash))
}

func TestArk_Exists(t *testing.T) {
	var nilArk *Ark
	assert.False(t, nilArk.Exists())
	assert.False(t, (&Ark{}).Exists())
	assert.False(t, (&Ark{Deadline: time.Unix(0, 0)}).Exists())
	assert.True(t, (&Ark{Deadline: time.Unix(1700000000, 0)}).Exists())
}

func TestArk_Expired(t *testing.T) {
	deadline := time.Unix(1700000000, 0)
	ark := &Ark{Deadline: deadline}

	assert.False(t, ark.Expired(deadline.Add(-time.Second)))
	assert.True(t, ark.Expired(deadline))
	assert.True(t, ark.Expired(deadline.Add(time.Hour)))
	assert.False(t, (&Ark{}).Expired(deadline))
}

func TestArk_HasToken(t *testing.T) {
	a := common.HexToAddress("0x1111111111111111111111111111111111111111")
	b := common.HexToAddress("0x2222222222222222222222222222222222222222")
	ark := &Ark{Tokens: []common.Address{a}}

	assert.True(t, ark.HasToken(a))
	assert.False(t, ark.HasToken(b))
}

func TestAllowance_Sufficient(t *testing.T) {
	assert.False(t, Allowance{}.Sufficient())
	assert.False(t, Allowance{Amount: big.NewInt(0)}.Sufficient())
	assert.True(t, Allowance{Amount: big.NewInt(1)}.Sufficient())
	assert.True(t, Allowance{Amount: MaxUint256}.Sufficient())
}

func TestMaxUint256(t *testing.T) {
	assert.Equal(t, 256, MaxUint256.BitLen())
	assert.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935", MaxUint256.String())
}

func TestEventType_Label(t *testing.T) {
	assert.Equal(t, "Ark Created", EventTypeCreate.Label())
	assert.Equal(t, "Flood Triggered", EventTypeFlood.Label())
	assert.Equal(t, "Ark Destroyed", EventTypeDestroy.Label())
	assert.Equal(t, "custom", EventType("custom").Label())
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x742d35cc6634c0532925a3b844bc9e7595f2bd45")
	require.NoError(t, err)
	assert.Equal(t, "0x742d35Cc6634C0532925a3b844Bc9e7595f2bD45", addr.Hex())

	_, err = ParseAddress("742d35cc6634c0532925a3b844bc9e7595f2bd45")
	assert.True(t, errors.Is(err, ErrInvalidAddress))

	_, err = ParseAddress("0x1234")
	assert.True(t, errors.Is(err, ErrInvalidAddress))

	_, err = ParseAddress(ETHEREUM_ZERO_ADDRESS)
	assert.True(t, errors.Is(err, ErrInvalidAddress))
}

func TestParseAddresses_DedupesKeepingOrder(t *testing.T) {
	addrs, err := ParseAddresses([]string{
		"0x2222222222222222222222222222222222222222",
		"",
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
	})
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.Equal(t, common.HexToAddress("0x2222222222222222222222222222222222222222"), addrs[0])
	assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), addrs[1])

	_, err = ParseAddresses([]string{"nope"})
	assert.Error(t, err)
}
