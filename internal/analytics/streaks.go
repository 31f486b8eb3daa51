// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"sort"
	"time"

	"github.com/wrapparr/wrapparr/internal/models"
)

// streakDateFormat renders streak boundary dates without a year.
const streakDateFormat = "January 2"

// WatchStreaks finds the longest and current runs of consecutive calendar
// days (UTC) with at least one tracked event.
//
// The current streak only counts as ongoing when the last active day is
// today or yesterday relative to now; otherwise it reports 0. now is
// injected so the "is it still running" decision is testable.
func WatchStreaks(events []models.WatchEvent, now time.Time) models.StreakRecord {
	if len(events) == 0 {
		return models.StreakRecord{}
	}

	seen := make(map[time.Time]struct{})
	for _, ev := range events {
		if ev.IsTracked() {
			seen[ev.WatchedDate()] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return models.StreakRecord{}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var (
		longest      = 1
		longestStart = dates[0]
		longestEnd   = dates[0]
		runLen       = 1
		runStart     = dates[0]
	)

	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			runLen++
		} else {
			// Run closed by a gap
			if runLen > longest {
				longest = runLen
				longestStart = runStart
				longestEnd = dates[i-1]
			}
			runLen = 1
			runStart = dates[i]
		}
	}
	// Implicit close at list end
	if runLen > longest {
		longest = runLen
		longestStart = runStart
		longestEnd = dates[len(dates)-1]
	}

	// The final run is the current streak only while it is still reachable
	// from today: last active day no more than 1 day before now.
	current := runLen
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	if today.Sub(dates[len(dates)-1]) > 24*time.Hour {
		current = 0
	}

	return models.StreakRecord{
		LongestStreak:   longest,
		CurrentStreak:   current,
		TotalActiveDays: len(dates),
		StreakStart:     longestStart.Format(streakDateFormat),
		StreakEnd:       longestEnd.Format(streakDateFormat),
	}
}
