// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package tautulli

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/wrapparr/wrapparr/internal/config"
	"github.com/wrapparr/wrapparr/internal/logging"
	"github.com/wrapparr/wrapparr/internal/metrics"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

// CircuitBreakerClient wraps TautulliClient with the circuit breaker pattern,
// which prevents hammering a Tautulli instance that is down or overloaded.
// A single report run issues hundreds of per-item metadata lookups; once the
// breaker opens, the remaining lookups fail fast and the run degrades to
// zero-value statistics instead of timing out one request at a time.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout calculations. Tests should mock the underlying client rather
// than the breaker.
type CircuitBreakerClient struct {
	client *TautulliClient
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a new Tautulli client with circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(cfg *config.TautulliConfig) *CircuitBreakerClient {
	client := NewClient(cfg)
	cbName := "tautulli-api"

	metrics.CircuitBreakerState.Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,               // Allow 3 concurrent requests in half-open state
		Interval:    time.Minute,     // Reset counts after 1 minute in closed state
		Timeout:     2 * time.Minute, // Wait 2 minutes before transitioning from open to half-open

		// ReadyToTrip determines when to open the circuit
		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false // Need at least 10 requests for statistical significance
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.Set(stateToFloat(to))
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a Tautulli API call with circuit breaker protection
// Returns the result or an error if circuit is open or request fails
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		}
		return nil, err
	}
	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking
// Returns typed result or error if type assertion fails
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Ping verifies connectivity to Tautulli API with circuit breaker protection
func (cbc *CircuitBreakerClient) Ping(ctx context.Context) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Ping(ctx)
	})
	return err
}

// GetHistory retrieves playback history with circuit breaker protection
func (cbc *CircuitBreakerClient) GetHistory(ctx context.Context, after, before time.Time, start, length int) (*tautulli.TautulliHistory, error) {
	return castResult[tautulli.TautulliHistory](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetHistory(ctx, after, before, start, length)
	}))
}

// GetPlaysByHourOfDay retrieves plays by hour of day with circuit breaker protection
func (cbc *CircuitBreakerClient) GetPlaysByHourOfDay(ctx context.Context, timeRange int, yAxis string, userID int, grouping int) (*tautulli.TautulliPlaysByHourOfDay, error) {
	return castResult[tautulli.TautulliPlaysByHourOfDay](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetPlaysByHourOfDay(ctx, timeRange, yAxis, userID, grouping)
	}))
}

// GetPlaysByTop10Platforms retrieves top platforms with circuit breaker protection
func (cbc *CircuitBreakerClient) GetPlaysByTop10Platforms(ctx context.Context, timeRange int, yAxis string, userID int, grouping int) (*tautulli.TautulliPlaysByTop10Platforms, error) {
	return castResult[tautulli.TautulliPlaysByTop10Platforms](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetPlaysByTop10Platforms(ctx, timeRange, yAxis, userID, grouping)
	}))
}

// GetMetadata retrieves item metadata with circuit breaker protection
func (cbc *CircuitBreakerClient) GetMetadata(ctx context.Context, ratingKey string) (*tautulli.TautulliMetadata, error) {
	return castResult[tautulli.TautulliMetadata](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetMetadata(ctx, ratingKey)
	}))
}

// GetLibraries retrieves library sections with circuit breaker protection
func (cbc *CircuitBreakerClient) GetLibraries(ctx context.Context) (*tautulli.TautulliLibraries, error) {
	return castResult[tautulli.TautulliLibraries](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetLibraries(ctx)
	}))
}

// GetLibraryMediaInfo retrieves section record totals with circuit breaker protection
func (cbc *CircuitBreakerClient) GetLibraryMediaInfo(ctx context.Context, sectionID int, start, length int) (*tautulli.TautulliLibraryMediaInfo, error) {
	return castResult[tautulli.TautulliLibraryMediaInfo](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetLibraryMediaInfo(ctx, sectionID, start, length)
	}))
}

// GetUser retrieves user details with circuit breaker protection
func (cbc *CircuitBreakerClient) GetUser(ctx context.Context, userID int) (*tautulli.TautulliUser, error) {
	return castResult[tautulli.TautulliUser](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetUser(ctx, userID)
	}))
}

// DownloadImage fetches poster bytes with circuit breaker protection
func (cbc *CircuitBreakerClient) DownloadImage(ctx context.Context, img string, width int) ([]byte, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.DownloadImage(ctx, img, width)
	})
	if err != nil {
		return nil, err
	}
	data, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return data, nil
}
