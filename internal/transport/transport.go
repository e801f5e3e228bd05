// Package transport provides HTTP round trippers shared by the outbound API clients.
package transport

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultMaxRetries bounds how many 429 responses are retried before giving up
	DefaultMaxRetries = 3
	// DefaultMaxWait caps a single Retry-After pause
	DefaultMaxWait = time.Minute
)

// RateLimited retries requests answered with HTTP 429, waiting for the server's Retry-After
type RateLimited struct {
	base       http.RoundTripper
	maxRetries int
	maxWait    time.Duration
}

// WithRateLimiting wraps base (http.DefaultTransport when nil) with 429 handling
func WithRateLimiting(base http.RoundTripper) *RateLimited {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RateLimited{base: base, maxRetries: DefaultMaxRetries, maxWait: DefaultMaxWait}
}

// NewClient returns an http.Client using a rate-limited default transport
func NewClient() *http.Client {
	return &http.Client{Transport: WithRateLimiting(nil)}
}

// RoundTrip implements http.RoundTripper
func (t *RateLimited) RoundTrip(req *http.Request) (*http.Response, error) {
	// Keep the body so it can be replayed on retry
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		if err := req.Body.Close(); err != nil {
			return nil, fmt.Errorf("failed to close request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return resp, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= t.maxRetries {
			return resp, nil
		}

		wait := retryAfter(resp.Header.Get("Retry-After"))
		if wait <= 0 {
			return resp, nil
		}
		if wait > t.maxWait {
			wait = t.maxWait
		}

		if err := resp.Body.Close(); err != nil {
			return nil, fmt.Errorf("failed to close response body: %w", err)
		}

		slog.Warn("Rate limited, waiting before retry", "host", req.URL.Host, "wait", wait, "attempt", attempt+1)
		timer := time.NewTimer(wait)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}
}

// retryAfter parses a Retry-After value given either as seconds or as an HTTP date
func retryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if retryTime, err := http.ParseTime(value); err == nil {
		return time.Until(retryTime)
	}
	return 0
}
