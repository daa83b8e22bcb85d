package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// ETHEREUM_ZERO_ADDRESS is the zero address
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// DEFAULT_NOAH_ADDRESS is the CREATE2 deployment address of the Noah contract (salt "Noah")
	DEFAULT_NOAH_ADDRESS = "0xB7b9e0ba2B9748e7B5770AB165D142100DD6e4E3"

	// URGENT_THRESHOLD is the remaining time under which an ark is shown as urgent
	URGENT_THRESHOLD = 3 * 24 * time.Hour
)

// MaxUint256 is the approval amount granted to the Noah contract
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// DurationPreset is a selectable deadline duration
type DurationPreset struct {
	Label    string
	Duration time.Duration
}

// DurationPresets are the deadline durations offered when building an ark
var DurationPresets = []DurationPreset{
	{Label: "1 Week", Duration: 7 * 24 * time.Hour},
	{Label: "30 Days", Duration: 30 * 24 * time.Hour},
	{Label: "90 Days", Duration: 90 * 24 * time.Hour},
	{Label: "1 Year", Duration: 365 * 24 * time.Hour},
	{Label: "2 Years", Duration: 2 * 365 * 24 * time.Hour},
}

// DefaultDuration is the preselected deadline duration
const DefaultDuration = 30 * 24 * time.Hour

type chainInfo struct {
	name     string
	explorer string
}

var knownChains = map[Chain]chainInfo{
	ChainEthereumMainnet: {name: "Ethereum", explorer: "https://etherscan.io"},
	ChainSepolia:         {name: "Sepolia", explorer: "https://sepolia.etherscan.io"},
	ChainArbitrum:        {name: "Arbitrum One", explorer: "https://arbiscan.io"},
	ChainAnvil:           {name: "Anvil Local"},
}

// ZeroAddress is the parsed zero address
var ZeroAddress = common.HexToAddress(ETHEREUM_ZERO_ADDRESS)
