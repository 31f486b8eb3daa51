// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"fmt"
	"testing"

	"github.com/wrapparr/wrapparr/internal/models"
)

func movieFor(user, key string) models.WatchEvent {
	return models.WatchEvent{
		User:         user,
		MediaType:    models.MediaTypeMovie,
		RatingKey:    key,
		Title:        "Movie " + key,
		PlayDuration: 600,
		WatchedAt:    1,
	}
}

func TestUniqueContent(t *testing.T) {
	t.Parallel()

	t.Run("set difference against all other users", func(t *testing.T) {
		byUser := map[string][]models.WatchEvent{
			"A": {movieFor("A", "1"), movieFor("A", "2"), movieFor("A", "3")},
			"B": {movieFor("B", "2"), movieFor("B", "3"), movieFor("B", "4")},
		}

		got := UniqueContent(byUser, "A")
		if got.Count != 1 {
			t.Fatalf("count: expected 1, got %d", got.Count)
		}
		if len(got.Items) != 1 || got.Items[0].Title != "Movie 1" {
			t.Errorf("unexpected items: %+v", got.Items)
		}
	})

	t.Run("missing target user yields empty result", func(t *testing.T) {
		byUser := map[string][]models.WatchEvent{
			"B": {movieFor("B", "1")},
		}

		got := UniqueContent(byUser, "A")
		if got.Count != 0 || len(got.Items) != 0 {
			t.Errorf("expected empty result, got %+v", got)
		}
	})

	t.Run("episodes compare by series key", func(t *testing.T) {
		show := func(user, seriesKey string) models.WatchEvent {
			return models.WatchEvent{
				User:                 user,
				MediaType:            models.MediaTypeEpisode,
				RatingKey:            "ep-" + user + seriesKey,
				GrandparentRatingKey: seriesKey,
				GrandparentTitle:     "Show " + seriesKey,
				PlayDuration:         600,
				WatchedAt:            1,
			}
		}
		byUser := map[string][]models.WatchEvent{
			"A": {show("A", "s1"), show("A", "s2")},
			"B": {show("B", "s1")}, // Different episode, same series
		}

		got := UniqueContent(byUser, "A")
		if got.Count != 1 || got.Items[0].Title != "Show s2" {
			t.Errorf("series-key comparison wrong: %+v", got)
		}
	})

	t.Run("items capped at 10 but count is full", func(t *testing.T) {
		var events []models.WatchEvent
		for i := 0; i < 15; i++ {
			events = append(events, movieFor("A", fmt.Sprintf("k%d", i)))
		}
		byUser := map[string][]models.WatchEvent{"A": events, "B": {}}

		got := UniqueContent(byUser, "A")
		if got.Count != 15 {
			t.Errorf("count: expected 15, got %d", got.Count)
		}
		if len(got.Items) != uniqueItemCap {
			t.Errorf("items: expected %d, got %d", uniqueItemCap, len(got.Items))
		}
	})

	t.Run("duplicate watches count once", func(t *testing.T) {
		byUser := map[string][]models.WatchEvent{
			"A": {movieFor("A", "1"), movieFor("A", "1")},
		}

		got := UniqueContent(byUser, "A")
		if got.Count != 1 {
			t.Errorf("rewatches should count once, got %d", got.Count)
		}
	})
}
