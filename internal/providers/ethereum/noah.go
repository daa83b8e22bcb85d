package ethereum

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
)

// NoahClient is the read/write surface of the Noah contract
//
//go:generate mockgen -source=noah.go -destination=../../mocks/noah_client.go -package=mocks -mock_names=NoahClient=MockNoahClient
type NoahClient interface {
	// Address returns the contract address
	Address() common.Address

	// GetArk reads the owner's ark; callers check Exists on the result
	GetArk(ctx context.Context, owner common.Address) (*domain.Ark, error)

	// BuildArkCall encodes buildArk(beneficiary, duration, tokens)
	BuildArkCall(beneficiary common.Address, duration time.Duration, tokens []common.Address) (domain.Call, error)

	// PingArkCall encodes pingArk()
	PingArkCall() (domain.Call, error)

	// AddPassengersCall encodes addPassengers(tokens)
	AddPassengersCall(tokens []common.Address) (domain.Call, error)

	// RemovePassengerCall encodes removePassenger(token)
	RemovePassengerCall(token common.Address) (domain.Call, error)

	// UpdateDeadlineDurationCall encodes updateDeadlineDuration(duration)
	UpdateDeadlineDurationCall(duration time.Duration) (domain.Call, error)

	// FloodCall encodes flood(owner)
	FloodCall(owner common.Address) (domain.Call, error)

	// DestroyArkCall encodes destroyArk()
	DestroyArkCall() (domain.Call, error)

	// ParseEventLog decodes a Noah contract log into an activity event
	ParseEventLog(ctx context.Context, vLog types.Log) (*domain.ActivityEvent, error)

	// GetArkEvents reads the owner's activity straight from contract logs, starting at fromBlock
	GetArkEvents(ctx context.Context, owner common.Address, fromBlock uint64) ([]domain.ActivityEvent, error)
}

type noahClient struct {
	address common.Address
	client  adapter.EthClient
	clock   adapter.Clock
}

// NewNoahClient binds the Noah contract at address
func NewNoahClient(address common.Address, client adapter.EthClient, clock adapter.Clock) NoahClient {
	return &noahClient{address: address, client: client, clock: clock}
}

func (c *noahClient) Address() common.Address {
	return c.address
}

// GetArk reads getArk(owner)
func (c *noahClient) GetArk(ctx context.Context, owner common.Address) (*domain.Ark, error) {
	data, err := noahABI.Pack("getArk", owner)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}

	out, err := noahABI.Unpack("getArk", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}
	if len(out) != 4 {
		return nil, fmt.Errorf("unexpected getArk output length %d", len(out))
	}

	beneficiary, ok1 := out[0].(common.Address)
	deadline, ok2 := out[1].(*big.Int)
	duration, ok3 := out[2].(*big.Int)
	tokens, ok4 := out[3].([]common.Address)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("unexpected getArk output types")
	}

	return &domain.Ark{
		Owner:            owner,
		Beneficiary:      beneficiary,
		Deadline:         c.clock.Unix(clampInt64(deadline), 0),
		DeadlineDuration: secondsToDuration(duration),
		Tokens:           tokens,
	}, nil
}

func (c *noahClient) BuildArkCall(beneficiary common.Address, duration time.Duration, tokens []common.Address) (domain.Call, error) {
	if len(tokens) == 0 {
		return domain.Call{}, domain.ErrNoTokens
	}
	return c.pack(fmt.Sprintf("Build ark for %s", domain.FormatDuration(duration)), "buildArk",
		beneficiary, durationToSeconds(duration), tokens)
}

func (c *noahClient) PingArkCall() (domain.Call, error) {
	return c.pack("Ping ark", "pingArk")
}

func (c *noahClient) AddPassengersCall(tokens []common.Address) (domain.Call, error) {
	if len(tokens) == 0 {
		return domain.Call{}, domain.ErrNoTokens
	}
	return c.pack(fmt.Sprintf("Add %d %s", len(tokens), pluralToken(len(tokens))), "addPassengers", tokens)
}

func (c *noahClient) RemovePassengerCall(token common.Address) (domain.Call, error) {
	return c.pack("Remove token "+token.Hex(), "removePassenger", token)
}

func (c *noahClient) UpdateDeadlineDurationCall(duration time.Duration) (domain.Call, error) {
	return c.pack("Update duration to "+domain.FormatDuration(duration), "updateDeadlineDuration", durationToSeconds(duration))
}

func (c *noahClient) FloodCall(owner common.Address) (domain.Call, error) {
	return c.pack("Flood ark of "+owner.Hex(), "flood", owner)
}

func (c *noahClient) DestroyArkCall() (domain.Call, error) {
	return c.pack("Destroy ark", "destroyArk")
}

func (c *noahClient) pack(label string, method string, args ...interface{}) (domain.Call, error) {
	data, err := noahABI.Pack(method, args...)
	if err != nil {
		return domain.Call{}, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	return domain.Call{To: c.address, Data: data, Label: label}, nil
}

// GetArkEvents filters every Noah event whose indexed user topic is owner
func (c *noahClient) GetArkEvents(ctx context.Context, owner common.Address, fromBlock uint64) ([]domain.ActivityEvent, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{c.address},
		Topics: [][]common.Hash{
			{
				arkBuiltEventSignature,
				arkPingedEventSignature,
				floodTriggeredEventSignature,
				passengersAddedEventSignature,
				passengerRemovedEventSignature,
				deadlineUpdatedEventSignature,
				arkDestroyedEventSignature,
			},
			{common.BytesToHash(owner.Bytes())},
		},
	}

	logs, err := c.client.FilterLogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs: %w", err)
	}

	events := make([]domain.ActivityEvent, 0, len(logs))
	for _, vLog := range logs {
		event, err := c.ParseEventLog(ctx, vLog)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping unparseable Noah log",
				zap.Error(err),
				zap.String("txHash", vLog.TxHash.Hex()),
				zap.Uint("logIndex", vLog.Index))
			continue
		}
		events = append(events, *event)
	}

	// newest first, matching the indexer's ordering
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	return events, nil
}

// ParseEventLog decodes a Noah contract log into an activity event
func (c *noahClient) ParseEventLog(ctx context.Context, vLog types.Log) (*domain.ActivityEvent, error) {
	if len(vLog.Topics) < 2 {
		return nil, fmt.Errorf("invalid Noah event: expected at least 2 topics, got %d", len(vLog.Topics))
	}

	header, err := c.client.HeaderByNumber(ctx, new(big.Int).SetUint64(vLog.BlockNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to get block header: %w", err)
	}

	event := &domain.ActivityEvent{
		Owner:       common.BytesToAddress(vLog.Topics[1].Bytes()),
		Timestamp:   c.clock.Unix(int64(header.Time), 0), //nolint:gosec,G115 // header.Time is a unix timestamp
		TxHash:      vLog.TxHash,
		BlockNumber: vLog.BlockNumber,
	}

	switch vLog.Topics[0] {
	case arkBuiltEventSignature:
		// ArkBuilt(address indexed user, address indexed beneficiary, uint256 deadline)
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("invalid ArkBuilt event: expected 3 topics, got %d", len(vLog.Topics))
		}
		values, err := noahABI.Unpack("ArkBuilt", vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack ArkBuilt: %w", err)
		}
		beneficiary := common.BytesToAddress(vLog.Topics[2].Bytes())
		deadline := c.clock.Unix(clampInt64(values[0].(*big.Int)), 0)
		event.Type = domain.EventTypeCreate
		event.Beneficiary = &beneficiary
		event.Deadline = &deadline
		event.Details = "Ark created, deadline " + deadline.UTC().Format("Jan 2, 2006")

	case arkPingedEventSignature:
		// ArkPinged(address indexed user, uint256 newDeadline)
		values, err := noahABI.Unpack("ArkPinged", vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack ArkPinged: %w", err)
		}
		deadline := c.clock.Unix(clampInt64(values[0].(*big.Int)), 0)
		event.Type = domain.EventTypePing
		event.Deadline = &deadline
		event.Details = "Deadline extended to " + deadline.UTC().Format("Jan 2, 2006")

	case floodTriggeredEventSignature:
		// FloodTriggered(address indexed user, address indexed beneficiary)
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("invalid FloodTriggered event: expected 3 topics, got %d", len(vLog.Topics))
		}
		beneficiary := common.BytesToAddress(vLog.Topics[2].Bytes())
		event.Type = domain.EventTypeFlood
		event.Beneficiary = &beneficiary
		event.Details = "Tokens transferred to " + beneficiary.Hex()

	case passengersAddedEventSignature:
		// PassengersAdded(address indexed user, address[] newPassengers)
		values, err := noahABI.Unpack("PassengersAdded", vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack PassengersAdded: %w", err)
		}
		tokens := values[0].([]common.Address)
		event.Type = domain.EventTypeAddToken
		event.Tokens = tokens
		event.Details = fmt.Sprintf("Added %d %s to protected tokens", len(tokens), pluralToken(len(tokens)))

	case passengerRemovedEventSignature:
		// PassengerRemoved(address indexed user, address passenger)
		values, err := noahABI.Unpack("PassengerRemoved", vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack PassengerRemoved: %w", err)
		}
		token := values[0].(common.Address)
		event.Type = domain.EventTypeRemoveToken
		event.Tokens = []common.Address{token}
		event.Details = "Removed " + token.Hex() + " from protected tokens"

	case deadlineUpdatedEventSignature:
		// DeadlineUpdated(address indexed user, uint256 newDuration, uint256 newDeadline)
		values, err := noahABI.Unpack("DeadlineUpdated", vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack DeadlineUpdated: %w", err)
		}
		duration := secondsToDuration(values[0].(*big.Int))
		deadline := c.clock.Unix(clampInt64(values[1].(*big.Int)), 0)
		event.Type = domain.EventTypeUpdateDuration
		event.Duration = &duration
		event.Deadline = &deadline
		event.Details = "Duration set to " + domain.FormatDuration(duration)

	case arkDestroyedEventSignature:
		// ArkDestroyed(address indexed user)
		event.Type = domain.EventTypeDestroy
		event.Details = "Ark destroyed"

	default:
		return nil, fmt.Errorf("unknown event signature: %s", vLog.Topics[0].Hex())
	}

	return event, nil
}

func durationToSeconds(d time.Duration) *big.Int {
	return big.NewInt(int64(d / time.Second))
}

func secondsToDuration(seconds *big.Int) time.Duration {
	if seconds == nil || seconds.Sign() <= 0 {
		return 0
	}
	maxSeconds := big.NewInt(math.MaxInt64 / int64(time.Second))
	if seconds.Cmp(maxSeconds) > 0 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds.Int64()) * time.Second
}

func clampInt64(v *big.Int) int64 {
	if v == nil {
		return 0
	}
	if !v.IsInt64() {
		if v.Sign() < 0 {
			return 0
		}
		return math.MaxInt64
	}
	return v.Int64()
}

func pluralToken(n int) string {
	if n == 1 {
		return "token"
	}
	return "tokens"
}
