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

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"zero", 0, "0m"},
		{"negative clamps", -5, "0m"},
		{"sub-minute", 42, "0m"},
		{"minutes only", 180, "3m"},
		{"hours and minutes", 3900, "1h 5m"},
		{"days hours minutes", 90180, "1d 1h 3m"},
		{"exact hour", 7200, "2h"},
		{"exact day", 86400, "1d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d): expected %q, got %q", tt.seconds, tt.want, got)
			}
		})
	}
}

func TestHours(t *testing.T) {
	t.Parallel()

	if got := Hours(5400); got != 1.5 {
		t.Errorf("Hours(5400): expected 1.5, got %v", got)
	}
	if got := Hours(0); got != 0 {
		t.Errorf("Hours(0): expected 0, got %v", got)
	}
	if got := Days(129600); got != 1.5 {
		t.Errorf("Days(129600): expected 1.5, got %v", got)
	}
}

func TestTruncateTitle(t *testing.T) {
	t.Parallel()

	t.Run("short titles untouched", func(t *testing.T) {
		if got := TruncateTitle("Heat", 36); got != "Heat" {
			t.Errorf("expected Heat, got %q", got)
		}
	})

	t.Run("exactly max is untouched", func(t *testing.T) {
		title := "123456789012345678901234567890123456" // 36 chars
		if got := TruncateTitle(title, 36); got != title {
			t.Errorf("boundary title should be untouched, got %q", got)
		}
	})

	t.Run("over max gets ellipsis", func(t *testing.T) {
		title := "1234567890123456789012345678901234567" // 37 chars
		want := title[:36] + "..."
		if got := TruncateTitle(title, 36); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("multi-byte titles cut on rune boundary", func(t *testing.T) {
		title := "さよならの朝に約束の花を飾ろうさよならの朝に約束の花を飾ろうさよならの朝"
		got := TruncateTitle(title, 10)
		want := string([]rune(title)[:10]) + "..."
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}

func TestPercentageGuards(t *testing.T) {
	t.Parallel()

	if got := percentage(500, 0); got != 0 {
		t.Errorf("zero total should yield 0, got %v", got)
	}
	if got := percentage(1, 3); got != 33.3 {
		t.Errorf("expected 33.3, got %v", got)
	}
	if got := percentage(0, 100); got != 0 {
		t.Errorf("zero part should yield 0, got %v", got)
	}
}

func TestFirstLastWatch(t *testing.T) {
	t.Parallel()

	t.Run("empty list yields nil edges", func(t *testing.T) {
		got := FirstLastWatch(nil)
		if got.First != nil || got.Last != nil {
			t.Errorf("expected nil edges, got %+v", got)
		}
	})

	t.Run("reports chronological edges with formatted dates", func(t *testing.T) {
		events := []models.WatchEvent{
			{User: "a", MediaType: models.MediaTypeMovie, Title: "Middle", PlayDuration: 1, WatchedAt: time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC).Unix()},
			{User: "a", MediaType: models.MediaTypeMovie, Title: "First", PlayDuration: 1, WatchedAt: time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC).Unix()},
			{User: "a", MediaType: models.MediaTypeEpisode, Title: "Pilot", GrandparentTitle: "Last Show", GrandparentRatingKey: "s", PlayDuration: 1, WatchedAt: time.Date(2026, time.June, 5, 22, 0, 0, 0, time.UTC).Unix()},
		}

		got := FirstLastWatch(events)
		if got.First == nil || got.Last == nil {
			t.Fatal("expected both edges")
		}
		if got.First.Title != "First" || got.First.Date != "January 2, 2026" {
			t.Errorf("first edge wrong: %+v", got.First)
		}
		if got.Last.Title != "Last Show" || got.Last.Date != "June 5, 2026" {
			t.Errorf("last edge wrong: %+v", got.Last)
		}
	})

	t.Run("single event is both edges", func(t *testing.T) {
		events := []models.WatchEvent{
			{User: "a", MediaType: models.MediaTypeMovie, Title: "Only", PlayDuration: 1, WatchedAt: 1000},
		}

		got := FirstLastWatch(events)
		if got.First == nil || got.Last == nil || got.First.Title != got.Last.Title {
			t.Errorf("single event should be both edges: %+v", got)
		}
	})
}
