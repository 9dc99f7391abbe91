// Package evegateway is the ESI (EVE Swagger Interface) boundary: a shared
// HTTP client with response caching, retry with backoff and error-limit
// tracking, plus typed accessors for the endpoints the service consumes.
package evegateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go-timers/pkg/config"
	"go-timers/pkg/database"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the shared ESI client.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxRetries   int
	cacheManager CacheManager
	retryClient  RetryClient
	errorLimits  *ESIErrorLimits
	limitsMutex  *sync.RWMutex
}

// NewClient creates an ESI client. A nil redis handle degrades to an
// in-memory response cache.
func NewClient(redis *database.Redis) *Client {
	var transport http.RoundTripper = http.DefaultTransport

	if config.GetBoolEnv("ENABLE_TELEMETRY", false) {
		transport = otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Host)
			}),
		)
	}

	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}

	var cacheManager CacheManager
	if redis != nil {
		cacheManager = NewRedisCacheManager(redis)
	} else {
		cacheManager = NewMemoryCacheManager()
	}

	errorLimits := &ESIErrorLimits{}
	limitsMutex := &sync.RWMutex{}

	return &Client{
		httpClient:   httpClient,
		baseURL:      config.GetEnv("ESI_BASE_URL", "https://esi.evetech.net"),
		userAgent:    config.GetEnv("ESI_USER_AGENT", "go-timers/1.0 (timers maintainers)"),
		maxRetries:   config.GetIntEnv("ESI_MAX_RETRIES", 3),
		cacheManager: cacheManager,
		retryClient:  NewDefaultRetryClient(httpClient, errorLimits, limitsMutex),
		errorLimits:  errorLimits,
		limitsMutex:  limitsMutex,
	}
}

// ErrorLimitRemain reports the last seen ESI error budget.
func (c *Client) ErrorLimitRemain() int {
	c.limitsMutex.RLock()
	defer c.limitsMutex.RUnlock()
	return c.errorLimits.Remain
}

// getJSON performs a cached GET against an ESI endpoint and decodes the
// response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	cacheKey := c.baseURL + endpoint

	if data, found, err := c.cacheManager.Get(cacheKey); err == nil && found {
		if err := json.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	c.cacheManager.SetConditionalHeaders(req, cacheKey)

	resp, err := c.retryClient.DoWithRetry(ctx, req, c.maxRetries)
	if err != nil {
		return fmt.Errorf("ESI request %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		if data, found, err := c.cacheManager.GetForNotModified(cacheKey); err == nil && found {
			return json.Unmarshal(data, out)
		}
		return fmt.Errorf("ESI returned 304 for %s but no cached body exists", endpoint)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ESI request %s returned status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read ESI response: %w", err)
	}

	if err := c.cacheManager.Set(cacheKey, body, resp.Header); err != nil {
		slog.WarnContext(ctx, "Failed to cache ESI response", "endpoint", endpoint, "error", err)
	}

	return json.Unmarshal(body, out)
}

// postJSON performs an uncached POST against an ESI endpoint.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.retryClient.DoWithRetry(ctx, req, c.maxRetries)
	if err != nil {
		return fmt.Errorf("ESI request %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ESI request %s returned status %d", endpoint, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
