// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wrapparr/wrapparr/internal/analytics"
	"github.com/wrapparr/wrapparr/internal/logging"
	"github.com/wrapparr/wrapparr/internal/metrics"
	"github.com/wrapparr/wrapparr/internal/models"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

// HistorySource fetches the base playback history window.
type HistorySource interface {
	GetHistory(ctx context.Context, after, before time.Time, start, length int) (*tautulli.TautulliHistory, error)
}

// Renderer writes assembled reports and the index page to disk.
// Implemented by the HTML render layer.
type Renderer interface {
	RenderUserReport(report *models.UserReport, period Period) (string, error)
	RenderIndex(index IndexData) error
}

// Generator orchestrates one report run: fetch the history window,
// split per user, assemble every statistic, render one report per user
// plus the server summary, and rebuild the index page.
type Generator struct {
	history       HistorySource
	assembler     *Assembler
	renderer      Renderer
	reportsDir    string
	historyLength int
	now           func() time.Time
}

// NewGenerator wires a report generator. historyLength caps the history
// rows fetched per run. nowFn defaults to time.Now.
func NewGenerator(history HistorySource, assembler *Assembler, renderer Renderer, reportsDir string, historyLength int, nowFn func() time.Time) *Generator {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Generator{
		history:       history,
		assembler:     assembler,
		renderer:      renderer,
		reportsDir:    reportsDir,
		historyLength: historyLength,
		now:           nowFn,
	}
}

// RunResult summarizes one completed generation run.
type RunResult struct {
	RunID          string
	Period         Period
	HistoryRecords int
	Users          int
	ReportsWritten []string
}

// Run executes one full generation pass for the period type.
//
// The base history fetch is the only fatal failure; everything after it
// degrades per statistic or per user.
func (g *Generator) Run(ctx context.Context, pt PeriodType) (*RunResult, error) {
	runID := uuid.NewString()
	period := NewPeriod(pt, g.now())

	log := logging.With().Str("run_id", runID).Str("period", string(pt)).Logger()
	log.Info().
		Str("start", period.Start.Format("2006-01-02")).
		Str("end", period.End.Format("2006-01-02")).
		Str("label", period.Label).
		Msg("Starting wrapped report generation")

	// End is inclusive; Tautulli's before parameter is an inclusive date
	history, err := g.history.GetHistory(ctx, period.Start, period.End, 0, g.historyLength)
	if err != nil {
		return nil, fmt.Errorf("fetch history window: %w", err)
	}

	events := EventsFromHistory(history)
	tracked := models.FilterTracked(events)
	byUser := GroupByUser(events)
	aggregates := models.BuildUserAggregates(events)
	rankings := analytics.RankUsers(aggregates)

	log.Info().
		Int("records", len(events)).
		Int("tracked", len(tracked)).
		Int("users", len(aggregates)).
		Msg("History window loaded")

	result := &RunResult{
		RunID:          runID,
		Period:         period,
		HistoryRecords: len(events),
		Users:          len(aggregates),
	}

	// Deterministic processing order
	users := make([]string, 0, len(aggregates))
	for user := range aggregates {
		users = append(users, user)
	}
	sort.Strings(users)

	for _, user := range users {
		userLog := log.With().Str("user", user).Logger()
		userLog.Info().Msg("Assembling user report")

		report := g.assembler.BuildUserReport(ctx, user, aggregates[user], byUser, rankings, period)

		path, err := g.renderer.RenderUserReport(report, period)
		if err != nil {
			// A failed render loses one user's page, not the run
			userLog.Error().Err(err).Msg("Failed to render user report")
			continue
		}
		metrics.ReportsGenerated.WithLabelValues(string(pt)).Inc()
		result.ReportsWritten = append(result.ReportsWritten, path)
		userLog.Info().Str("path", path).Msg("Report written")
	}

	summary := g.assembler.BuildServerSummary(ctx, events, aggregates, rankings, period)
	if path, err := g.renderer.RenderUserReport(summary, period); err != nil {
		log.Error().Err(err).Msg("Failed to render server summary")
	} else {
		metrics.ReportsGenerated.WithLabelValues(string(pt)).Inc()
		result.ReportsWritten = append(result.ReportsWritten, path)
	}

	index, err := ScanReports(g.reportsDir)
	if err != nil {
		log.Error().Err(err).Msg("Failed to scan reports for index")
	} else if err := g.renderer.RenderIndex(index); err != nil {
		log.Error().Err(err).Msg("Failed to render index page")
	}

	log.Info().Int("reports", len(result.ReportsWritten)).Msg("Report generation complete")
	return result, nil
}
