package indexer

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/metrics"
)

// Client defines the interface for the Noah indexer HTTP API to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/indexer_client.go -package=mocks -mock_names=Client=MockIndexerClient
type Client interface {
	// GetActivity returns the account's activity on chain, newest first as served by the indexer
	GetActivity(ctx context.Context, account common.Address, chain domain.Chain) ([]domain.ActivityEvent, error)

	// GetArks returns the account's ark records across all chains
	GetArks(ctx context.Context, account common.Address) ([]domain.ArkRecord, error)
}

// Config holds configuration for the indexer client
type Config struct {
	BaseURL string

	// RequestsPerSecond throttles outgoing requests, 0 disables throttling
	RequestsPerSecond float64
}

// IndexerClient implements Client over HTTP
type IndexerClient struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a new indexer client
func NewClient(cfg Config, httpClient adapter.HTTPClient, json adapter.JSON) Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &IndexerClient{
		httpClient: httpClient,
		json:       json,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    limiter,
	}
}

// activityEvent is the indexer's wire format for one event
type activityEvent struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Owner       string   `json:"owner"`
	Timestamp   int64    `json:"timestamp"` // milliseconds
	TxHash      string   `json:"txHash"`
	BlockNumber uint64   `json:"blockNumber"`
	Details     string   `json:"details"`
	Beneficiary string   `json:"beneficiary"`
	Deadline    int64    `json:"deadline"` // seconds
	Duration    int64    `json:"duration"` // seconds
	Tokens      []string `json:"tokens"`
}

// arkRecord accepts both chain id spellings and either numeric or string values
type arkRecord struct {
	Owner        string      `json:"owner"`
	ChainID      interface{} `json:"chainId"`
	ChainIDSnake interface{} `json:"chain_id"`
}

// GetActivity fetches GET {base}/api/activity/{account}?chain_id={id}
func (c *IndexerClient) GetActivity(ctx context.Context, account common.Address, chain domain.Chain) ([]domain.ActivityEvent, error) {
	endpoint := fmt.Sprintf("%s/api/activity/%s?%s", c.baseURL, account.Hex(),
		url.Values{"chain_id": []string{chain.String()}}.Encode())

	var raw []activityEvent
	if err := c.get(ctx, "activity", endpoint, &raw); err != nil {
		return nil, err
	}

	events := make([]domain.ActivityEvent, 0, len(raw))
	for _, r := range raw {
		events = append(events, toActivityEvent(account, r))
	}

	return events, nil
}

// GetArks fetches GET {base}/api/arks/{account}
func (c *IndexerClient) GetArks(ctx context.Context, account common.Address) ([]domain.ArkRecord, error) {
	endpoint := fmt.Sprintf("%s/api/arks/%s", c.baseURL, account.Hex())

	var raw []arkRecord
	if err := c.get(ctx, "arks", endpoint, &raw); err != nil {
		return nil, err
	}

	records := make([]domain.ArkRecord, 0, len(raw))
	for _, r := range raw {
		chain, err := parseChainField(r.ChainID, r.ChainIDSnake)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping ark record without a usable chain id",
				zap.String("account", account.Hex()),
				zap.Error(err))
			continue
		}

		owner := account
		if common.IsHexAddress(r.Owner) {
			owner = common.HexToAddress(r.Owner)
		}
		records = append(records, domain.ArkRecord{Owner: owner, ChainID: chain})
	}

	return records, nil
}

func (c *IndexerClient) get(ctx context.Context, name, endpoint string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("indexer rate limiter: %w", err)
	}

	start := time.Now()
	body, err := c.httpClient.GetBytes(ctx, endpoint, nil)
	metrics.IndexerRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("failed to call indexer %s: %w", name, err)
	}

	if err := c.json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to unmarshal indexer %s response: %w", name, err)
	}

	return nil
}

func toActivityEvent(account common.Address, r activityEvent) domain.ActivityEvent {
	event := domain.ActivityEvent{
		Type:        domain.EventType(r.Type),
		Owner:       account,
		Timestamp:   time.UnixMilli(r.Timestamp).UTC(),
		TxHash:      common.HexToHash(r.TxHash),
		BlockNumber: r.BlockNumber,
		Details:     r.Details,
	}

	if common.IsHexAddress(r.Owner) {
		event.Owner = common.HexToAddress(r.Owner)
	}
	if common.IsHexAddress(r.Beneficiary) {
		beneficiary := common.HexToAddress(r.Beneficiary)
		event.Beneficiary = &beneficiary
	}
	if r.Deadline > 0 {
		deadline := time.Unix(r.Deadline, 0).UTC()
		event.Deadline = &deadline
	}
	if r.Duration > 0 {
		duration := time.Duration(r.Duration) * time.Second
		event.Duration = &duration
	}
	for _, t := range r.Tokens {
		if common.IsHexAddress(t) {
			event.Tokens = append(event.Tokens, common.HexToAddress(t))
		}
	}

	return event
}

// parseChainField reads the first non-empty chain id, as a JSON number or a decimal/CAIP-2 string
func parseChainField(values ...interface{}) (domain.Chain, error) {
	for _, v := range values {
		switch id := v.(type) {
		case nil:
			continue
		case float64:
			if id <= 0 {
				return 0, fmt.Errorf("invalid chain id %v", id)
			}
			return domain.Chain(id), nil
		case string:
			if strings.HasPrefix(id, "0x") {
				n, err := strconv.ParseUint(id[2:], 16, 64)
				if err != nil || n == 0 {
					return 0, fmt.Errorf("invalid chain id %q", id)
				}
				return domain.Chain(n), nil
			}
			return domain.ParseChain(id)
		default:
			return 0, fmt.Errorf("unsupported chain id type %T", v)
		}
	}
	return 0, fmt.Errorf("missing chain id")
}
