// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Package metrics provides Prometheus instrumentation for Wrapparr:
// Tautulli API call latency and errors, per-statistic computation
// failures, reports generated, and thumbnail cache efficiency.
// Collectors are exposed by the serve mode's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tautulli API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wrapparr_tautulli_request_duration_seconds",
			Help:    "Duration of Tautulli API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cmd"},
	)

	APIRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wrapparr_tautulli_request_errors_total",
			Help: "Total number of failed Tautulli API requests",
		},
		[]string{"cmd"},
	)

	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wrapparr_tautulli_circuit_breaker_state",
			Help: "Tautulli circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Report generation metrics
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wrapparr_reports_generated_total",
			Help: "Total number of wrapped reports written",
		},
		[]string{"period"},
	)

	StatisticFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wrapparr_statistic_failures_total",
			Help: "Per-statistic computation failures replaced with zero values",
		},
		[]string{"statistic"},
	)

	// Thumbnail cache metrics
	ThumbnailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wrapparr_thumbnail_cache_hits_total",
			Help: "Thumbnails served from the on-disk cache",
		},
	)

	ThumbnailCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wrapparr_thumbnail_cache_misses_total",
			Help: "Thumbnails that required a download",
		},
	)

	ThumbnailDownloadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wrapparr_thumbnail_download_errors_total",
			Help: "Thumbnail downloads that failed and were skipped",
		},
	)
)
