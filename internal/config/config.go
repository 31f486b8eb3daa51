// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Package config provides layered configuration for Wrapparr.
//
// Settings are loaded with Koanf v2 from three layers, highest priority
// last: built-in defaults, an optional YAML config file, and environment
// variables (TAUTULLI_URL, PLEX_TOKEN, REPORTS_DIR, ...).
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the root configuration for one Wrapparr invocation.
type Config struct {
	Tautulli TautulliConfig `koanf:"tautulli"`
	Plex     PlexConfig     `koanf:"plex"`
	Output   OutputConfig   `koanf:"output"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// TautulliConfig holds Tautulli API connection settings.
// Tautulli is the only history source, so URL and APIKey are required.
type TautulliConfig struct {
	URL               string        `koanf:"url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`             // Per-request HTTP timeout
	HistoryLength     int           `koanf:"history_length"`      // Max history rows per run
	RequestsPerSecond float64       `koanf:"requests_per_second"` // Client-side pacing for per-item lookups
}

// PlexConfig holds the Plex Media Server settings used for poster
// (thumbnail) downloads. Optional: without it top-watched entries simply
// render without artwork.
type PlexConfig struct {
	URL   string `koanf:"url"`
	Token string `koanf:"token"`
}

// OutputConfig controls where reports and cached thumbnails are written.
type OutputConfig struct {
	ReportsDir    string `koanf:"reports_dir"`
	ThumbnailsDir string `koanf:"thumbnails_dir"`

	// GenreEventLimit caps how many events feed the genre-diversity
	// statistic; each one costs a metadata API call.
	GenreEventLimit int `koanf:"genre_event_limit"`

	// TopItemsLimit is how many most-watched items each report shows.
	TopItemsLimit int `koanf:"top_items_limit"`
}

// ServerConfig holds settings for the optional serve mode, which hosts the
// generated reports directory over HTTP.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // console or json
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and well formed.
func (c *Config) Validate() error {
	if err := c.validateTautulli(); err != nil {
		return err
	}
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTautulli() error {
	if c.Tautulli.URL == "" {
		return fmt.Errorf("TAUTULLI_URL is required")
	}
	if _, err := url.ParseRequestURI(c.Tautulli.URL); err != nil {
		return fmt.Errorf("TAUTULLI_URL is not a valid URL: %w", err)
	}
	if c.Tautulli.APIKey == "" {
		return fmt.Errorf("TAUTULLI_API_KEY is required")
	}
	if c.Tautulli.HistoryLength <= 0 {
		return fmt.Errorf("tautulli history_length must be positive, got %d", c.Tautulli.HistoryLength)
	}
	return nil
}

func (c *Config) validatePlex() error {
	// Plex is optional, but a URL without a token (or the reverse) is a
	// misconfiguration that would silently disable every poster.
	if c.Plex.URL == "" && c.Plex.Token == "" {
		return nil
	}
	if c.Plex.URL == "" || c.Plex.Token == "" {
		return fmt.Errorf("PLEX_URL and PLEX_TOKEN must be set together")
	}
	if _, err := url.ParseRequestURI(c.Plex.URL); err != nil {
		return fmt.Errorf("PLEX_URL is not a valid URL: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in [1, 65535], got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "disabled":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", c.Logging.Format)
	}
	return nil
}
