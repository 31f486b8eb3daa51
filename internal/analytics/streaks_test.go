// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"testing"
	"time"

	"github.com/wrapparr/wrapparr/internal/models"
)

// eventOn builds a tracked movie event at noon UTC on the given date.
func eventOn(user string, year int, month time.Month, day int) models.WatchEvent {
	return models.WatchEvent{
		User:         user,
		MediaType:    models.MediaTypeMovie,
		Title:        "Some Movie",
		PlayDuration: 3600,
		WatchedAt:    time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Unix(),
	}
}

func TestWatchStreaks(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 20, 15, 0, 0, 0, time.UTC)

	t.Run("empty input yields zero record", func(t *testing.T) {
		got := WatchStreaks(nil, now)
		if got.LongestStreak != 0 || got.CurrentStreak != 0 || got.TotalActiveDays != 0 {
			t.Errorf("expected all-zero record, got %+v", got)
		}
	})

	t.Run("three consecutive days is a streak of 3", func(t *testing.T) {
		events := []models.WatchEvent{
			eventOn("alice", 2026, time.June, 1),
			eventOn("alice", 2026, time.June, 2),
			eventOn("alice", 2026, time.June, 3),
		}

		got := WatchStreaks(events, now)
		if got.LongestStreak != 3 {
			t.Errorf("longest: expected 3, got %d", got.LongestStreak)
		}
		if got.TotalActiveDays != 3 {
			t.Errorf("active days: expected 3, got %d", got.TotalActiveDays)
		}
		if got.StreakStart != "June 1" || got.StreakEnd != "June 3" {
			t.Errorf("streak bounds: got %s - %s", got.StreakStart, got.StreakEnd)
		}
	})

	t.Run("a gap breaks the streak", func(t *testing.T) {
		events := []models.WatchEvent{
			eventOn("alice", 2026, time.June, 1),
			eventOn("alice", 2026, time.June, 3),
		}

		got := WatchStreaks(events, now)
		if got.LongestStreak != 1 {
			t.Errorf("longest: expected 1, got %d", got.LongestStreak)
		}
		if got.TotalActiveDays != 2 {
			t.Errorf("active days: expected 2, got %d", got.TotalActiveDays)
		}
	})

	t.Run("longest run tracked across multiple runs", func(t *testing.T) {
		events := []models.WatchEvent{
			eventOn("alice", 2026, time.May, 1),
			eventOn("alice", 2026, time.May, 2),
			// gap
			eventOn("alice", 2026, time.May, 10),
			eventOn("alice", 2026, time.May, 11),
			eventOn("alice", 2026, time.May, 12),
			eventOn("alice", 2026, time.May, 13),
		}

		got := WatchStreaks(events, now)
		if got.LongestStreak != 4 {
			t.Errorf("longest: expected 4, got %d", got.LongestStreak)
		}
		if got.StreakStart != "May 10" || got.StreakEnd != "May 13" {
			t.Errorf("streak bounds: got %s - %s", got.StreakStart, got.StreakEnd)
		}
	})

	t.Run("current streak counts when last active day is yesterday", func(t *testing.T) {
		events := []models.WatchEvent{
			eventOn("alice", 2026, time.June, 18),
			eventOn("alice", 2026, time.June, 19), // now is June 20
		}

		got := WatchStreaks(events, now)
		if got.CurrentStreak != 2 {
			t.Errorf("current: expected 2, got %d", got.CurrentStreak)
		}
	})

	t.Run("current streak is zero when last active day is stale", func(t *testing.T) {
		events := []models.WatchEvent{
			eventOn("alice", 2026, time.June, 15),
			eventOn("alice", 2026, time.June, 16),
		}

		got := WatchStreaks(events, now)
		if got.CurrentStreak != 0 {
			t.Errorf("current: expected 0, got %d", got.CurrentStreak)
		}
		if got.LongestStreak != 2 {
			t.Errorf("longest should still count, got %d", got.LongestStreak)
		}
	})

	t.Run("duplicate events on one day count once", func(t *testing.T) {
		events := []models.WatchEvent{
			eventOn("alice", 2026, time.June, 1),
			eventOn("alice", 2026, time.June, 1),
			eventOn("alice", 2026, time.June, 2),
		}

		got := WatchStreaks(events, now)
		if got.TotalActiveDays != 2 {
			t.Errorf("active days: expected 2, got %d", got.TotalActiveDays)
		}
		if got.LongestStreak != 2 {
			t.Errorf("longest: expected 2, got %d", got.LongestStreak)
		}
	})

	t.Run("untracked events are ignored", func(t *testing.T) {
		track := eventOn("alice", 2026, time.June, 5)
		track.MediaType = models.MediaTypeTrack

		got := WatchStreaks([]models.WatchEvent{track}, now)
		if got.TotalActiveDays != 0 {
			t.Errorf("music-only day should not count, got %d active days", got.TotalActiveDays)
		}
	})
}
