// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"context"
	"sort"

	"github.com/wrapparr/wrapparr/internal/logging"
	"github.com/wrapparr/wrapparr/internal/models"
)

// topGenreCount caps the ranked genre list in the result.
const topGenreCount = 5

// GenreDiversity resolves genre tags for the first GenreEventLimit events
// via per-item metadata lookups and accumulates watch seconds per genre.
//
// Each event contributes its full duration to every one of its genre
// tags, so per-genre seconds can sum past total watch time. Individual
// lookup failures are logged at debug and skipped; the statistic itself
// only fails if nothing else does (it returns what it gathered).
func (e *Engine) GenreDiversity(ctx context.Context, events []models.WatchEvent) (models.GenreDiversity, error) {
	limit := e.genreEventLimit
	if len(events) < limit {
		limit = len(events)
	}

	genreSeconds := make(map[string]int64)
	totalTags := 0

	// Metadata responses are cached per content key within the call so a
	// binge of one show costs one lookup, not one per episode.
	genreCache := make(map[string][]string)

	for _, ev := range events[:limit] {
		if !ev.IsTracked() {
			continue
		}
		key := ev.ContentKey()
		if key == "" {
			continue
		}

		genres, ok := genreCache[key]
		if !ok {
			meta, err := e.metadata.GetMetadata(ctx, key)
			if err != nil {
				// Per-item failures are swallowed by contract
				logging.Debug().Err(err).Str("rating_key", key).Msg("Genre lookup failed, skipping item")
				genreCache[key] = nil
				continue
			}
			genres = meta.Response.Data.Genres
			genreCache[key] = genres
		}

		for _, genre := range genres {
			genreSeconds[genre] += int64(ev.PlayDuration)
			totalTags++
		}
	}

	ranked := make([]models.GenreUsage, 0, len(genreSeconds))
	for name, secs := range genreSeconds {
		ranked = append(ranked, models.GenreUsage{Name: name, Seconds: secs, Hours: Hours(secs)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Seconds != ranked[j].Seconds {
			return ranked[i].Seconds > ranked[j].Seconds
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topGenreCount {
		ranked = ranked[:topGenreCount]
	}

	return models.GenreDiversity{
		UniqueGenres:   len(genreSeconds),
		TopGenres:      ranked,
		TotalGenreTags: totalTags,
	}, nil
}
