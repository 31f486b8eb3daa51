// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

/*
client.go - Core Tautulli API Client

This file provides the core TautulliClient struct and HTTP communication
layer for interacting with Tautulli's REST API.

Client Features:
  - HTTP client with configurable timeout
  - API key authentication
  - Client-side request pacing for per-item metadata lookups
  - Automatic HTTP 429 rate limit handling with exponential backoff
  - JSON response parsing with generic type support
  - Context support for cancellation and timeouts

Resilience Mechanisms:
  - Rate Limiting: Exponential backoff (1s, 2s, 4s, 8s, 16s) on HTTP 429
  - Retries: Max 5 attempts for rate-limited requests
  - Context: All methods accept context for cancellation

Related Files:
  - api_helpers.go: Request builder and generic execution helpers
  - endpoints.go: Typed endpoint methods
  - circuit_breaker.go: Circuit breaker wrapper
*/

package tautulli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/wrapparr/wrapparr/internal/config"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
// This prevents unbounded memory allocation when reading large error responses
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB)
// Returns the body content or a placeholder message if reading fails
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// maxImageSize caps poster downloads at 10MB to bound memory use
const maxImageSize = 10 * 1024 * 1024

// readAllImage reads an image response body up to maxImageSize
func readAllImage(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image exceeds %d byte limit", maxImageSize)
	}
	return data, nil
}

// TautulliClient handles communication with the Tautulli HTTP API.
//
// It provides access to the endpoints the report generator consumes:
// playback history, the hour-of-day and top-platforms charts, item
// metadata, library listings, user details, and poster image download.
//
// Features:
//   - Configurable request timeout (30s default)
//   - Client-side pacing via a token-bucket limiter, so bulk per-item
//     metadata lookups don't hammer the Tautulli server
//   - Automatic retry on rate limiting (up to 5 retries)
//   - Exponential backoff (1s, 2s, 4s, 8s, 16s delays)
//   - JSON parsing with typed response structs
//
// Thread Safety: Safe for concurrent use. Each request creates its own
// HTTP request; the limiter is internally synchronized.
//
// Example:
//
//	client := tautulli.NewClient(&cfg.Tautulli)
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatal("Tautulli not reachable:", err)
//	}
//	history, err := client.GetHistory(ctx, after, before, 0, 10000)
type TautulliClient struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int           // Maximum retries for rate limiting
	retryBaseDelay time.Duration // Base delay for exponential backoff
}

// NewClient creates a new Tautulli API client with the provided configuration.
//
// The client is configured with:
//   - cfg.Timeout HTTP timeout (30s when unset)
//   - cfg.RequestsPerSecond client-side pacing (unlimited when <= 0)
//   - 5 maximum retries for rate limiting
//   - 1-second base delay for exponential backoff
func NewClient(cfg *config.TautulliConfig) *TautulliClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &TautulliClient{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter:        rate.NewLimiter(limit, 1),
		maxRetries:     5,               // Allow up to 5 retries for rate limiting
		retryBaseDelay: 1 * time.Second, // Start with 1 second, doubles each retry
	}
}

// doRequestWithRateLimit performs an HTTP request with automatic rate limit handling.
// Implements exponential backoff for HTTP 429 responses (1s, 2s, 4s, 8s, 16s).
// The context is used for cancellation during pacing and backoff waits.
func (c *TautulliClient) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	// Client-side pacing before the first attempt
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Check context before attempting request
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		// Success - return response
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited (HTTP 429) - close body and retry with backoff
		_ = resp.Body.Close() // Explicitly ignore error - will retry anyway

		// Last attempt - return error
		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		// Calculate exponential backoff delay: 1s, 2s, 4s, 8s, 16s
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Check for Retry-After header (RFC 6585)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			// Try parsing as seconds (integer)
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		// Use cancellable wait instead of time.Sleep
		select {
		case <-time.After(delay):
			// Continue to next attempt
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// Ping verifies connectivity to Tautulli API.
// The context is used for cancellation and timeout support.
func (c *TautulliClient) Ping(ctx context.Context) error {
	reqURL := newAPIRequest("arnold").buildURL(c.baseURL, c.apiKey)

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("failed to ping Tautulli: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Tautulli ping failed with status: %d", resp.StatusCode)
	}

	return nil
}
