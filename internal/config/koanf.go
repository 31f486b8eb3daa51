// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where a config file is searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"wrapparr.yaml",
	"wrapparr.yml",
	"/etc/wrapparr/wrapparr.yaml",
	"/etc/wrapparr/wrapparr.yml",
}

// ConfigPathEnvVar overrides the config file search with an explicit path.
const ConfigPathEnvVar = "WRAPPARR_CONFIG"

// defaultConfig returns a Config with every default applied. Defaults are
// loaded first, then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Tautulli: TautulliConfig{
			URL:               "",
			APIKey:            "",
			Timeout:           30 * time.Second,
			HistoryLength:     10000,
			RequestsPerSecond: 5,
		},
		Plex: PlexConfig{
			URL:   "",
			Token: "",
		},
		Output: OutputConfig{
			ReportsDir:      "wrapped_reports",
			ThumbnailsDir:   "thumbnails",
			GenreEventLimit: 100,
			TopItemsLimit:   5,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8940,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// Load builds the configuration from layered sources (highest wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables
//
// The result is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Only listed variables are honored, which keeps unrelated environment
// noise (PATH, HOME, ...) out of the configuration tree.
var envMappings = map[string]string{
	"tautulli_url":                 "tautulli.url",
	"tautulli_api_key":             "tautulli.api_key",
	"tautulli_timeout":             "tautulli.timeout",
	"tautulli_history_length":      "tautulli.history_length",
	"tautulli_requests_per_second": "tautulli.requests_per_second",
	"plex_url":                     "plex.url",
	"plex_token":                   "plex.token",
	"plex_api_key":                 "plex.token", // Legacy alias
	"reports_dir":                  "output.reports_dir",
	"thumbnails_dir":               "output.thumbnails_dir",
	"wrapparr_genre_event_limit":   "output.genre_event_limit",
	"wrapparr_top_items_limit":     "output.top_items_limit",
	"wrapparr_host":                "server.host",
	"wrapparr_port":                "server.port",
	"wrapparr_server_timeout":      "server.timeout",
	"wrapparr_cors_origins":        "server.cors_origins",
	"wrapparr_rate_limit_requests": "server.rate_limit_requests",
	"wrapparr_rate_limit_window":   "server.rate_limit_window",
	"log_level":                    "logging.level",
	"log_format":                   "logging.format",
	"log_caller":                   "logging.caller",
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables map to "" and are dropped by the provider.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
