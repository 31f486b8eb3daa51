// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package report

import (
	"testing"

	"github.com/wrapparr/wrapparr/internal/models"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func TestEventFromRecord(t *testing.T) {
	t.Parallel()

	t.Run("episode record maps all fields", func(t *testing.T) {
		rec := tautulli.TautulliHistoryRecord{
			Date:                 1735729200,
			UserID:               intPtr(7),
			User:                 "alice",
			FriendlyName:         "Alice",
			MediaType:            "episode",
			Title:                "Ep 1",
			GrandparentTitle:     strPtr("The Wire"),
			FullTitle:            "The Wire - Ep 1",
			RatingKey:            intPtr(555),
			GrandparentRatingKey: intPtr(100),
			MediaIndex:           intPtr(1),
			ParentMediaIndex:     intPtr(2),
			PlayDuration:         intPtr(3000),
			Platform:             "Roku",
		}

		ev := EventFromRecord(rec)

		if ev.User != "Alice" {
			t.Errorf("user should be the friendly name, got %s", ev.User)
		}
		if ev.UserID != 7 {
			t.Errorf("user id: expected 7, got %d", ev.UserID)
		}
		if ev.RatingKey != "555" || ev.GrandparentRatingKey != "100" {
			t.Errorf("keys wrong: %s / %s", ev.RatingKey, ev.GrandparentRatingKey)
		}
		if ev.GrandparentTitle != "The Wire" {
			t.Errorf("series title: got %s", ev.GrandparentTitle)
		}
		if ev.PlayDuration != 3000 || ev.WatchedAt != 1735729200 {
			t.Errorf("playback fields wrong: %d / %d", ev.PlayDuration, ev.WatchedAt)
		}
		if ev.MediaIndex != 1 || ev.ParentMediaIndex != 2 {
			t.Errorf("indexes wrong: %d / %d", ev.MediaIndex, ev.ParentMediaIndex)
		}
		if ev.ContentKey() != "100" {
			t.Errorf("content key should prefer series key, got %s", ev.ContentKey())
		}
	})

	t.Run("nullable fields collapse to zero values", func(t *testing.T) {
		rec := tautulli.TautulliHistoryRecord{
			Date:         1735729200,
			FriendlyName: "Bob",
			MediaType:    "movie",
			Title:        "Heat",
		}

		ev := EventFromRecord(rec)

		if ev.UserID != 0 || ev.PlayDuration != 0 {
			t.Errorf("nil pointers should map to zero: %+v", ev)
		}
		if ev.RatingKey != "" || ev.GrandparentRatingKey != "" {
			t.Errorf("nil keys should map to empty: %+v", ev)
		}
	})

	t.Run("negative play duration is clamped", func(t *testing.T) {
		rec := tautulli.TautulliHistoryRecord{
			FriendlyName: "Bob",
			MediaType:    "movie",
			PlayDuration: intPtr(-30),
		}

		if ev := EventFromRecord(rec); ev.PlayDuration != 0 {
			t.Errorf("negative duration should clamp to 0, got %d", ev.PlayDuration)
		}
	})
}

func TestGroupByUser(t *testing.T) {
	t.Parallel()

	events := []models.WatchEvent{
		{User: "Alice", MediaType: models.MediaTypeMovie, Title: "A1", PlayDuration: 1, WatchedAt: 1},
		{User: "Bob", MediaType: models.MediaTypeMovie, Title: "B1", PlayDuration: 1, WatchedAt: 2},
		{User: "Alice", MediaType: models.MediaTypeEpisode, GrandparentTitle: "X", Title: "A2", PlayDuration: 1, WatchedAt: 3},
		{User: "Alice", MediaType: models.MediaTypeTrack, Title: "song", PlayDuration: 1, WatchedAt: 4}, // untracked
		{User: "", MediaType: models.MediaTypeMovie, Title: "orphan", PlayDuration: 1, WatchedAt: 5},    // no user
	}

	byUser := GroupByUser(events)

	if len(byUser) != 2 {
		t.Fatalf("expected 2 users, got %d", len(byUser))
	}
	if len(byUser["Alice"]) != 2 {
		t.Errorf("Alice should have 2 tracked events, got %d", len(byUser["Alice"]))
	}
	if byUser["Alice"][0].Title != "A1" {
		t.Errorf("history order should be preserved, first is %s", byUser["Alice"][0].Title)
	}
}
