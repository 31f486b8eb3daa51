// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"sort"

	"github.com/wrapparr/wrapparr/internal/models"
)

// RankUsers orders users by total watch duration descending and assigns
// 1-based ranks with celebratory labels from the fixed label table.
// Equal totals tie-break by username ascending so repeated runs over the
// same window produce identical leaderboards.
func RankUsers(aggregates map[string]*models.UserAggregate) []models.RankingEntry {
	entries := make([]models.RankingEntry, 0, len(aggregates))
	for _, agg := range aggregates {
		entries = append(entries, models.RankingEntry{
			User:           agg.User,
			TotalSeconds:   agg.TotalSeconds,
			MovieSeconds:   agg.MovieSeconds,
			EpisodeSeconds: agg.EpisodeSeconds,
			TotalHours:     Hours(agg.TotalSeconds),
		})
	}

	// Pre-sort by username so the stable duration sort has a deterministic
	// base order regardless of map iteration.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].User < entries[j].User
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalSeconds > entries[j].TotalSeconds
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Label = RankLabel(i + 1)
	}

	return entries
}

// RankLabel returns the celebratory label for a 1-based rank.
func RankLabel(rank int) string {
	if rank >= 1 && rank <= len(models.RankLabels) {
		return models.RankLabels[rank-1]
	}
	return models.DefaultRankLabel
}
