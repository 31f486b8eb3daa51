// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"reflect"
	"testing"

	"github.com/wrapparr/wrapparr/internal/models"
)

func aggFor(user string, total int64) *models.UserAggregate {
	return &models.UserAggregate{User: user, TotalSeconds: total}
}

func TestRankUsers(t *testing.T) {
	t.Parallel()

	t.Run("orders by total duration descending", func(t *testing.T) {
		aggs := map[string]*models.UserAggregate{
			"alice": aggFor("alice", 3600),
			"bob":   aggFor("bob", 7200),
			"carol": aggFor("carol", 1800),
		}

		entries := RankUsers(aggs)

		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		for i, want := range []string{"bob", "alice", "carol"} {
			if entries[i].User != want {
				t.Errorf("position %d: expected %s, got %s", i, want, entries[i].User)
			}
		}
	})

	t.Run("ranks are contiguous from 1 and totals non-increasing", func(t *testing.T) {
		aggs := map[string]*models.UserAggregate{
			"u1": aggFor("u1", 100),
			"u2": aggFor("u2", 500),
			"u3": aggFor("u3", 500),
			"u4": aggFor("u4", 50),
		}

		entries := RankUsers(aggs)

		for i, e := range entries {
			if e.Rank != i+1 {
				t.Errorf("entry %d: expected rank %d, got %d", i, i+1, e.Rank)
			}
			if i > 0 && e.TotalSeconds > entries[i-1].TotalSeconds {
				t.Errorf("entry %d: total %d exceeds previous %d", i, e.TotalSeconds, entries[i-1].TotalSeconds)
			}
		}
	})

	t.Run("equal totals tie-break by username", func(t *testing.T) {
		aggs := map[string]*models.UserAggregate{
			"zed":  aggFor("zed", 500),
			"anna": aggFor("anna", 500),
		}

		entries := RankUsers(aggs)

		if entries[0].User != "anna" || entries[1].User != "zed" {
			t.Errorf("expected anna before zed, got %s, %s", entries[0].User, entries[1].User)
		}
	})

	t.Run("labels follow the table then fall back", func(t *testing.T) {
		aggs := make(map[string]*models.UserAggregate)
		for i := 0; i < 12; i++ {
			user := string(rune('a' + i))
			aggs[user] = aggFor(user, int64(12000-i*1000))
		}

		entries := RankUsers(aggs)

		if entries[0].Label != models.RankLabels[0] {
			t.Errorf("rank 1 label: expected %q, got %q", models.RankLabels[0], entries[0].Label)
		}
		if entries[9].Label != models.RankLabels[9] {
			t.Errorf("rank 10 label: expected %q, got %q", models.RankLabels[9], entries[9].Label)
		}
		if entries[10].Label != models.DefaultRankLabel {
			t.Errorf("rank 11 label: expected default, got %q", entries[10].Label)
		}
		if entries[11].Label != models.DefaultRankLabel {
			t.Errorf("rank 12 label: expected default, got %q", entries[11].Label)
		}
	})

	t.Run("sort is idempotent", func(t *testing.T) {
		aggs := map[string]*models.UserAggregate{
			"alice": aggFor("alice", 3600),
			"bob":   aggFor("bob", 3600),
			"carol": aggFor("carol", 1800),
		}

		first := RankUsers(aggs)
		second := RankUsers(aggs)

		if !reflect.DeepEqual(first, second) {
			t.Error("repeated ranking over the same input should produce identical output")
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		entries := RankUsers(map[string]*models.UserAggregate{})
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
	})
}

func TestRankLabel(t *testing.T) {
	t.Parallel()

	if got := RankLabel(1); got != models.RankLabels[0] {
		t.Errorf("rank 1: got %q", got)
	}
	if got := RankLabel(len(models.RankLabels) + 1); got != models.DefaultRankLabel {
		t.Errorf("past-table rank: got %q", got)
	}
	if got := RankLabel(0); got != models.DefaultRankLabel {
		t.Errorf("rank 0: got %q", got)
	}
}
