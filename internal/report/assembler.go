// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package report

import (
	"context"
	"time"

	"github.com/wrapparr/wrapparr/internal/analytics"
	"github.com/wrapparr/wrapparr/internal/logging"
	"github.com/wrapparr/wrapparr/internal/metrics"
	"github.com/wrapparr/wrapparr/internal/models"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

// serverSummaryLabel replaces the rank callout on the server-wide report.
const serverSummaryLabel = "\U0001F31F Server Overview"

// UserSource fetches user profile details, used for the report avatar.
type UserSource interface {
	GetUser(ctx context.Context, userID int) (*tautulli.TautulliUser, error)
}

// Assembler runs every analytics operation for a user and merges the
// results into one UserReport.
//
// Failure isolation: each lookup-backed statistic that errors is logged,
// counted, and replaced by its zero value so the report still renders
// with the sections that did succeed. Only the caller's base history
// fetch is fatal to a run.
type Assembler struct {
	engine *analytics.Engine
	users  UserSource
	now    func() time.Time
}

// NewAssembler wires an assembler. users may be nil, which disables
// avatar resolution. nowFn defaults to time.Now.
func NewAssembler(engine *analytics.Engine, users UserSource, nowFn func() time.Time) *Assembler {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Assembler{engine: engine, users: users, now: nowFn}
}

// BuildUserReport assembles the full report for one user.
func (a *Assembler) BuildUserReport(
	ctx context.Context,
	user string,
	agg *models.UserAggregate,
	eventsByUser map[string][]models.WatchEvent,
	rankings []models.RankingEntry,
	period Period,
) *models.UserReport {
	report := &models.UserReport{
		User:        user,
		PeriodLabel: period.Label,
		TotalHours:  analytics.Hours(agg.TotalSeconds),
		TotalDays:   analytics.Days(agg.TotalSeconds),
		MovieHours:  analytics.Hours(agg.MovieSeconds),
		ShowHours:   analytics.Hours(agg.EpisodeSeconds),
	}

	for _, entry := range rankings {
		if entry.User == user {
			report.Ranking = &models.Ranking{
				Rank:       entry.Rank,
				Label:      entry.Label,
				TotalUsers: len(rankings),
			}
			break
		}
	}

	events := agg.Events

	report.TopWatched = a.engine.TopWatchedItems(ctx, events)

	if peak, err := a.engine.PeakWatchingHours(ctx, period.TimeRangeDays, agg.UserID); err != nil {
		a.statisticFailed(user, "peak_hours", err)
	} else {
		report.PeakHours = peak
	}

	if platforms, err := a.engine.PlatformBreakdown(ctx, period.TimeRangeDays, agg.UserID); err != nil {
		a.statisticFailed(user, "platforms", err)
	} else {
		report.Platforms = platforms
	}

	report.FirstLast = analytics.FirstLastWatch(events)
	report.Streak = analytics.WatchStreaks(events, a.now())
	report.BingeSessions = analytics.DetectBingeSessions(events)

	if genres, err := a.engine.GenreDiversity(ctx, events); err != nil {
		a.statisticFailed(user, "genres", err)
	} else {
		report.Genres = genres
	}

	if coverage, err := a.engine.LibraryCoverage(ctx, events); err != nil {
		a.statisticFailed(user, "library_coverage", err)
	} else {
		report.LibraryCoverage = coverage
	}

	report.UniqueContent = analytics.UniqueContent(eventsByUser, user)

	report.UserThumb = a.resolveUserThumb(ctx, user, agg.UserID)

	return report
}

// BuildServerSummary assembles the server-wide report over the union of
// all users' events. The expensive per-item statistics (genres, library
// coverage, unique content) are intentionally omitted, matching what the
// summary page presents.
func (a *Assembler) BuildServerSummary(
	ctx context.Context,
	allEvents []models.WatchEvent,
	aggregates map[string]*models.UserAggregate,
	rankings []models.RankingEntry,
	period Period,
) *models.UserReport {
	var total, movies, episodes int64
	for _, agg := range aggregates {
		total += agg.TotalSeconds
		movies += agg.MovieSeconds
		episodes += agg.EpisodeSeconds
	}

	report := &models.UserReport{
		User:            "Server Summary",
		PeriodLabel:     period.Label,
		IsServerSummary: true,
		TotalHours:      analytics.Hours(total),
		TotalDays:       analytics.Days(total),
		MovieHours:      analytics.Hours(movies),
		ShowHours:       analytics.Hours(episodes),
		Ranking: &models.Ranking{
			Rank:       1,
			Label:      serverSummaryLabel,
			TotalUsers: len(rankings),
		},
	}

	tracked := models.FilterTracked(allEvents)

	// userID 0 requests server-wide chart data
	if peak, err := a.engine.PeakWatchingHours(ctx, period.TimeRangeDays, 0); err != nil {
		a.statisticFailed("server", "peak_hours", err)
	} else {
		report.PeakHours = peak
	}

	if platforms, err := a.engine.PlatformBreakdown(ctx, period.TimeRangeDays, 0); err != nil {
		a.statisticFailed("server", "platforms", err)
	} else {
		report.Platforms = platforms
	}

	report.FirstLast = analytics.FirstLastWatch(tracked)
	report.Streak = analytics.WatchStreaks(tracked, a.now())
	report.BingeSessions = analytics.DetectBingeSessions(tracked)
	report.TopWatched = a.engine.TopWatchedItems(ctx, tracked)

	return report
}

// resolveUserThumb fetches the user's profile picture URL, best effort.
func (a *Assembler) resolveUserThumb(ctx context.Context, user string, userID int) string {
	if a.users == nil || userID == 0 {
		return ""
	}
	data, err := a.users.GetUser(ctx, userID)
	if err != nil {
		logging.Debug().Err(err).Str("user", user).Msg("User profile lookup failed")
		return ""
	}
	return data.Response.Data.UserThumb
}

func (a *Assembler) statisticFailed(user, statistic string, err error) {
	metrics.StatisticFailures.WithLabelValues(statistic).Inc()
	logging.Warn().Err(err).Str("user", user).Str("statistic", statistic).Msg("Statistic failed, substituting zero value")
}
