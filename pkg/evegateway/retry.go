package evegateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// ESIErrorLimits tracks the rolling error budget ESI reports on every
// response. When the remaining budget runs low we back off harder.
type ESIErrorLimits struct {
	Remain int
	Reset  int
}

// RetryClient makes an HTTP request with retry semantics.
type RetryClient interface {
	DoWithRetry(ctx context.Context, req *http.Request, maxRetries int) (*http.Response, error)
}

// DefaultRetryClient implements retry logic with exponential backoff.
type DefaultRetryClient struct {
	httpClient  *http.Client
	errorLimits *ESIErrorLimits
	limitsMutex *sync.RWMutex
}

func NewDefaultRetryClient(httpClient *http.Client, errorLimits *ESIErrorLimits, limitsMutex *sync.RWMutex) *DefaultRetryClient {
	return &DefaultRetryClient{
		httpClient:  httpClient,
		errorLimits: errorLimits,
		limitsMutex: limitsMutex,
	}
}

// DoWithRetry makes an HTTP request, retrying on network errors, 5xx and
// the ESI rate-limit statuses (420/429).
func (r *DefaultRetryClient) DoWithRetry(ctx context.Context, req *http.Request, maxRetries int) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		reqClone := req.Clone(ctx)

		resp, err = r.httpClient.Do(reqClone)
		if err != nil {
			if attempt == maxRetries {
				return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, err)
			}

			if err := r.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		// 404 does not count against the ESI error limit
		if resp.StatusCode != http.StatusNotFound {
			r.updateErrorLimits(resp.Header)
		}

		if resp.StatusCode >= 500 || resp.StatusCode == 420 || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()

			if attempt == maxRetries {
				return nil, fmt.Errorf("request failed with status %d after %d attempts", resp.StatusCode, maxRetries+1)
			}

			if err := r.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		break
	}

	return resp, nil
}

func (r *DefaultRetryClient) backoff(ctx context.Context, attempt int) error {
	backoffDuration := time.Duration(1<<uint(attempt)) * time.Second
	if backoffDuration > 10*time.Second {
		backoffDuration = 10 * time.Second
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoffDuration):
		return nil
	}
}

func (r *DefaultRetryClient) updateErrorLimits(headers http.Header) {
	r.limitsMutex.Lock()
	defer r.limitsMutex.Unlock()

	if remainStr := headers.Get("X-ESI-Error-Limit-Remain"); remainStr != "" {
		if remain, err := strconv.Atoi(remainStr); err == nil {
			r.errorLimits.Remain = remain
			if remain < 10 {
				slog.Warn("ESI error limit running low", "remain", remain)
			}
		}
	}

	if resetStr := headers.Get("X-ESI-Error-Limit-Reset"); resetStr != "" {
		if reset, err := strconv.Atoi(resetStr); err == nil {
			r.errorLimits.Reset = reset
		}
	}
}
