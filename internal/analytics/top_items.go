// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"context"
	"sort"

	"github.com/wrapparr/wrapparr/internal/models"
)

// maxTitleLength is the display-title cap; longer titles get an ellipsis.
const maxTitleLength = 36

// TopWatchedItems ranks content by accumulated watch duration and returns
// up to TopItemsLimit entries. Episodes group under their series key, so a
// show competes as one item. Thumbnail resolution is best effort; entries
// whose thumbnail can't be resolved carry an empty path.
func (e *Engine) TopWatchedItems(ctx context.Context, events []models.WatchEvent) []models.TopItem {
	type itemAccum struct {
		title     string
		mediaType string
		seconds   int64
	}

	items := make(map[string]*itemAccum)
	order := make([]string, 0) // First-seen order for deterministic ties

	for _, ev := range events {
		if !ev.IsTracked() {
			continue
		}
		key := ev.ContentKey()
		if key == "" {
			continue
		}

		acc, ok := items[key]
		if !ok {
			mediaType := ev.MediaType
			if mediaType == models.MediaTypeEpisode {
				mediaType = "show"
			}
			acc = &itemAccum{title: ev.DisplayTitle(), mediaType: mediaType}
			items[key] = acc
			order = append(order, key)
		}
		acc.seconds += int64(ev.PlayDuration)
	}

	ranked := make([]models.TopItem, 0, len(items))
	for _, key := range order {
		acc := items[key]
		ranked = append(ranked, models.TopItem{
			RatingKey: key,
			Title:     TruncateTitle(acc.title, maxTitleLength),
			Seconds:   acc.seconds,
			Hours:     Hours(acc.seconds),
			MediaType: acc.mediaType,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Seconds > ranked[j].Seconds
	})
	if len(ranked) > e.topItemsLimit {
		ranked = ranked[:e.topItemsLimit]
	}

	if e.thumbs != nil {
		for i := range ranked {
			ranked[i].ThumbnailPath = e.thumbs.Resolve(ctx, ranked[i].RatingKey, "")
		}
	}

	return ranked
}
