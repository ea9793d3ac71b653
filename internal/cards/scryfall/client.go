// Package scryfall implements the external card catalog client.
//
// The client enforces an outbound rate ceiling with a token-bucket limiter
// and honors Retry-After back-off on throttling responses before retrying
// the same request.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.scryfall.com"
	defaultAgent   = "solomon-draft/1.0"

	// Scryfall asks for no more than 10 requests per second.
	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 30 * time.Second

	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client is a catalog API client with rate limiting and retry.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the catalog base URL. Used by tests to point the
// client at a local server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithLimiter replaces the default token bucket. The limiter is owned by
// whoever composes the client, so multiple clients can share one budget.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.rateLimiter = l }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(c *Client) { c.userAgent = agent }
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a catalog client. The default limiter allows one
// request per 100ms (10 req/sec).
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		baseURL:     defaultBaseURL,
		userAgent:   defaultAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetCard retrieves a single card by its catalog ID.
func (c *Client) GetCard(ctx context.Context, id string) (*Card, error) {
	url := fmt.Sprintf("%s/cards/%s", c.baseURL, id)

	var card Card
	if err := c.doRequest(ctx, url, &card); err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}

	return &card, nil
}

// GetCardByName retrieves a single card by its exact name.
func (c *Client) GetCardByName(ctx context.Context, name string) (*Card, error) {
	url := fmt.Sprintf("%s/cards/named?exact=%s", c.baseURL, neturl.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, url, &card); err != nil {
		return nil, fmt.Errorf("failed to get card named %q: %w", name, err)
	}

	return &card, nil
}

// doRequest performs a GET request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, url string, result any) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)

			// Retry on network errors
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		done, err := c.handleResponse(resp, url, result, &backoff)
		if done {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// handleResponse consumes a response. It returns done=true when the result
// is final (success, not-found, or a non-retryable failure) and done=false
// after sleeping for a retryable 429.
func (c *Client) handleResponse(resp *http.Response, url string, result any, backoff *time.Duration) (bool, error) {
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return true, fmt.Errorf("failed to read response body: %w", err)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return true, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return true, nil

	case http.StatusTooManyRequests:
		// Throttled. Honor Retry-After if present, otherwise back off
		// exponentially, then retry the same request.
		wait := *backoff
		if after := resp.Header.Get("Retry-After"); after != "" {
			if secs, err := strconv.Atoi(after); err == nil {
				wait = time.Duration(secs) * time.Second
			}
		}
		if c.logger != nil {
			c.logger.Warn("catalog throttled", "url", url, "wait", wait)
		}
		time.Sleep(wait)
		*backoff = minDuration(*backoff*2, maxBackoff)
		return false, fmt.Errorf("rate limited (HTTP 429)")

	case http.StatusNotFound:
		return true, &NotFoundError{URL: url}

	default:
		body, _ := io.ReadAll(resp.Body)

		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
			return true, &apiErr
		}
		return true, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
