// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Package main is the entry point for the Wrapparr report generator.
//
// Wrapparr pulls per-user playback history from a Tautulli server and
// renders static year-in-review and month-in-review HTML reports, along
// with an index page linking them all. It is designed to run from cron:
// one invocation fetches history, computes statistics, writes report
// pages, and exits.
//
// # Modes
//
// The binary runs in one of four modes selected by flags:
//
//	wrapparr                      # Generate yearly reports (default)
//	wrapparr -period monthly      # Generate reports for the last full month
//	wrapparr -serve               # Host the reports directory over HTTP
//	wrapparr -migrate             # Move legacy flat reports into year dirs
//	wrapparr -optimize-thumbs     # Re-encode oversized cached thumbnails
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, a YAML config file, then
// built-in defaults. The config file is found via the -config flag, the
// WRAPPARR_CONFIG environment variable, or the default search paths.
//
// Required settings:
//   - TAUTULLI_URL: Tautulli server URL (e.g. http://localhost:8181)
//   - TAUTULLI_API_KEY: API key from Tautulli Settings > Web Interface
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run context: in-flight generation stops
// at the next API call, and serve mode shuts down gracefully.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wrapparr/wrapparr/internal/analytics"
	"github.com/wrapparr/wrapparr/internal/config"
	"github.com/wrapparr/wrapparr/internal/logging"
	"github.com/wrapparr/wrapparr/internal/render"
	"github.com/wrapparr/wrapparr/internal/report"
	"github.com/wrapparr/wrapparr/internal/server"
	"github.com/wrapparr/wrapparr/internal/tautulli"
	"github.com/wrapparr/wrapparr/internal/thumbnails"
)

func main() {
	var (
		periodFlag   = flag.String("period", "yearly", "Report period: yearly or monthly")
		configFlag   = flag.String("config", "", "Path to config file")
		serveFlag    = flag.Bool("serve", false, "Host the reports directory over HTTP instead of generating")
		migrateFlag  = flag.Bool("migrate", false, "Move legacy flat report files into per-year directories and exit")
		optimizeFlag = flag.Bool("optimize-thumbs", false, "Re-encode oversized cached thumbnails and exit")
	)
	flag.Parse()

	if *configFlag != "" {
		os.Setenv(config.ConfigPathEnvVar, *configFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *periodFlag, *serveFlag, *migrateFlag, *optimizeFlag); err != nil {
		logging.Fatal().Err(err).Msg("Wrapparr failed")
	}
}

func run(ctx context.Context, cfg *config.Config, period string, serve, migrate, optimize bool) error {
	if migrate {
		moved, err := report.MigrateLegacyReports(cfg.Output.ReportsDir)
		if err != nil {
			return err
		}
		logging.Info().Int("moved", moved).Msg("Legacy report migration complete")
		return nil
	}

	if serve {
		srv := server.New(&cfg.Server, cfg.Output.ReportsDir)
		return srv.ListenAndServe(ctx)
	}

	client := tautulli.NewCircuitBreakerClient(&cfg.Tautulli)

	thumbs, err := thumbnails.NewCache(cfg.Output.ThumbnailsDir, client, &cfg.Plex)
	if err != nil {
		return err
	}

	if optimize {
		changed, err := thumbs.Optimize(ctx)
		if err != nil {
			return err
		}
		logging.Info().Int("changed", changed).Msg("Thumbnail optimization complete")
		return nil
	}

	var periodType report.PeriodType
	switch period {
	case "yearly":
		periodType = report.PeriodYearly
	case "monthly":
		periodType = report.PeriodMonthly
	default:
		return fmt.Errorf("invalid period %q: must be yearly or monthly", period)
	}

	engine := analytics.NewEngine(client, client, client, thumbs, analytics.Options{
		GenreEventLimit: cfg.Output.GenreEventLimit,
		TopItemsLimit:   cfg.Output.TopItemsLimit,
	})

	renderer, err := render.NewRenderer(cfg.Output.ReportsDir)
	if err != nil {
		return err
	}

	assembler := report.NewAssembler(engine, client, nil)
	generator := report.NewGenerator(client, assembler, renderer, cfg.Output.ReportsDir, cfg.Tautulli.HistoryLength, nil)

	result, err := generator.Run(ctx, periodType)
	if err != nil {
		return err
	}

	logging.Info().
		Str("period", result.Period.Label).
		Int("users", result.Users).
		Int("reports", len(result.ReportsWritten)).
		Msg("Report generation complete")
	return nil
}
