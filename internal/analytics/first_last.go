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

const watchDateFormat = "January 2, 2006"

// FirstLastWatch reports the chronologically first and last watches of
// the period. Both edges are nil when the event list is empty.
func FirstLastWatch(events []models.WatchEvent) models.FirstLastWatch {
	tracked := models.FilterTracked(events)
	if len(tracked) == 0 {
		return models.FirstLastWatch{}
	}

	sorted := make([]models.WatchEvent, len(tracked))
	copy(sorted, tracked)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WatchedAt < sorted[j].WatchedAt
	})

	edge := func(ev models.WatchEvent) *models.WatchEdge {
		return &models.WatchEdge{
			Title:     ev.DisplayTitle(),
			Date:      time.Unix(ev.WatchedAt, 0).UTC().Format(watchDateFormat),
			MediaType: ev.MediaType,
		}
	}

	return models.FirstLastWatch{
		First: edge(sorted[0]),
		Last:  edge(sorted[len(sorted)-1]),
	}
}
