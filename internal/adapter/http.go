package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/logger"
)

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Get performs a GET request and unmarshals the JSON response into result
	Get(ctx context.Context, url string, result interface{}) error

	// GetBytes performs a GET request with the given headers and returns the raw body
	GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// StatusError is returned for non-200 responses that are not retried
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// RetryConfig controls the exponential backoff applied to retryable responses
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig is used by NewHTTPClient
var DefaultRetryConfig = RetryConfig{
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
	MaxElapsedTime:  20 * time.Second,
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client *http.Client
	retry  RetryConfig
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return NewHTTPClientWithRetry(timeout, DefaultRetryConfig)
}

// NewHTTPClientWithRetry creates a new real HTTP client with a custom retry policy
func NewHTTPClientWithRetry(timeout time.Duration, retry RetryConfig) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{Timeout: timeout},
		retry:  retry,
	}
}

// doRequestWithRetry executes req, retrying network errors, 429 and 5xx with exponential backoff
func (c *RealHTTPClient) doRequestWithRetry(ctx context.Context, req *http.Request) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", req.URL.String()))
			}
		}()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			respBody = body
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			logger.Warn("rate limited, retrying with backoff", zap.String("url", req.URL.String()))
			return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		case resp.StatusCode >= http.StatusInternalServerError:
			return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		default:
			return backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, Body: string(body)})
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialInterval
	b.MaxInterval = c.retry.MaxInterval
	b.MaxElapsedTime = c.retry.MaxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}

	return respBody, nil
}

// Get performs a GET request and unmarshals the JSON response into result
func (c *RealHTTPClient) Get(ctx context.Context, url string, result interface{}) error {
	respBody, err := c.GetBytes(ctx, url, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetBytes performs a GET request with the given headers and returns the raw body
func (c *RealHTTPClient) GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.doRequestWithRetry(ctx, req)
}
