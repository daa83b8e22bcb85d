package domain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain is an EVM chain id
type Chain uint64

const (
	ChainEthereumMainnet Chain = 1
	ChainSepolia         Chain = 11155111
	ChainArbitrum        Chain = 42161
	ChainAnvil           Chain = 31337
)

// IsKnownChain reports whether chain is one of the networks the client ships endpoints for
func IsKnownChain(chain Chain) bool {
	_, ok := knownChains[chain]
	return ok
}

// CAIP2 returns the chain in CAIP-2 form, e.g. eip155:42161
func (c Chain) CAIP2() string {
	return fmt.Sprintf("eip155:%d", uint64(c))
}

// String returns the decimal chain id
func (c Chain) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// Name returns a human readable network name
func (c Chain) Name() string {
	if info, ok := knownChains[c]; ok {
		return info.name
	}
	return "chain " + c.String()
}

// TxURL returns the block explorer link for a transaction, empty for local chains
func (c Chain) TxURL(txHash common.Hash) string {
	info, ok := knownChains[c]
	if !ok || info.explorer == "" {
		return ""
	}
	return info.explorer + "/tx/" + txHash.Hex()
}

// ParseChain parses either a decimal id or a CAIP-2 eip155 identifier
func ParseChain(s string) (Chain, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "eip155:")
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid chain id %q", s)
	}
	return Chain(id), nil
}

// Ark is the contract's per-owner protection record
type Ark struct {
	Owner            common.Address   `json:"owner"`
	Beneficiary      common.Address   `json:"beneficiary"`
	Deadline         time.Time        `json:"deadline"`
	DeadlineDuration time.Duration    `json:"deadline_duration"`
	Tokens           []common.Address `json:"tokens"`
}

// Exists reports whether the owner has an ark; the contract zeroes the deadline otherwise
func (a *Ark) Exists() bool {
	return a != nil && !a.Deadline.IsZero() && a.Deadline.Unix() > 0
}

// Expired reports whether the deadline has passed and the ark can be flooded
func (a *Ark) Expired(now time.Time) bool {
	return a.Exists() && !now.Before(a.Deadline)
}

// HasToken reports whether token is protected by the ark
func (a *Ark) HasToken(token common.Address) bool {
	for _, t := range a.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// ArkRecord is the indexer's view of an ark on one chain
type ArkRecord struct {
	Owner   common.Address `json:"owner"`
	ChainID Chain          `json:"chain_id"`
}

// Allowance is an ERC20 approval granted by Owner to Spender
type Allowance struct {
	Token   common.Address `json:"token"`
	Owner   common.Address `json:"owner"`
	Spender common.Address `json:"spender"`
	Amount  *big.Int       `json:"amount"`
}

// Sufficient reports whether any non-zero allowance exists
func (a Allowance) Sufficient() bool {
	return a.Amount != nil && a.Amount.Sign() > 0
}

// TokenInfo is display metadata for an ERC20 token
type TokenInfo struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
	Balance  *big.Int       `json:"balance,omitempty"`
}

// FormatBalance renders Balance with Decimals fractional digits, trailing zeros trimmed
func (t TokenInfo) FormatBalance() string {
	if t.Balance == nil {
		return "?"
	}
	return FormatUnits(t.Balance, t.Decimals)
}

// EventType is the kind of activity recorded for an ark
type EventType string

const (
	EventTypeCreate         EventType = "create"
	EventTypePing           EventType = "ping"
	EventTypeAddToken       EventType = "add_token"
	EventTypeRemoveToken    EventType = "remove_token"
	EventTypeUpdateDuration EventType = "update_duration"
	EventTypeFlood          EventType = "flood"
	EventTypeDestroy        EventType = "destroy"
)

// Label returns the display label of the event type
func (e EventType) Label() string {
	switch e {
	case EventTypeCreate:
		return "Ark Created"
	case EventTypePing:
		return "Ark Pinged"
	case EventTypeAddToken:
		return "Token Added"
	case EventTypeRemoveToken:
		return "Token Removed"
	case EventTypeUpdateDuration:
		return "Duration Updated"
	case EventTypeFlood:
		return "Flood Triggered"
	case EventTypeDestroy:
		return "Ark Destroyed"
	default:
		return string(e)
	}
}

// ActivityEvent is an immutable historical record of an ark mutation
type ActivityEvent struct {
	Type        EventType        `json:"type"`
	Owner       common.Address   `json:"owner"`
	Timestamp   time.Time        `json:"timestamp"`
	TxHash      common.Hash      `json:"tx_hash"`
	BlockNumber uint64           `json:"block_number,omitempty"`
	Beneficiary *common.Address  `json:"beneficiary,omitempty"`
	Deadline    *time.Time       `json:"deadline,omitempty"`
	Duration    *time.Duration   `json:"duration,omitempty"`
	Tokens      []common.Address `json:"tokens,omitempty"`
	Details     string           `json:"details,omitempty"`
}

// Call is a single contract call to be signed by the connected account
type Call struct {
	To    common.Address `json:"to"`
	Data  []byte         `json:"data"`
	Value *big.Int       `json:"value,omitempty"`
	// Label describes the call in prompts and logs
	Label string `json:"label,omitempty"`
}
