// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"context"
	"fmt"

	"github.com/wrapparr/wrapparr/internal/logging"
	"github.com/wrapparr/wrapparr/internal/models"
)

// sectionEventType maps a library section type to the event media type
// that counts as "watched" content in that section.
var sectionEventType = map[string]string{
	"movie":  models.MediaTypeMovie,
	"show":   models.MediaTypeEpisode,
	"artist": models.MediaTypeTrack,
}

// LibraryCoverage reports, per library section, how many distinct items
// the events touched against the section's total item count.
//
// Section types map to event media types: movie sections count distinct
// movie keys, show sections distinct series keys from episode events,
// artist sections distinct track keys. A failed size lookup skips that
// one section with a warning rather than failing the statistic.
func (e *Engine) LibraryCoverage(ctx context.Context, events []models.WatchEvent) ([]models.LibraryCoverage, error) {
	libs, err := e.library.GetLibraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	// Distinct content keys per event media type
	watched := make(map[string]map[string]struct{})
	for _, ev := range events {
		key := ev.ContentKey()
		if key == "" {
			continue
		}
		set, ok := watched[ev.MediaType]
		if !ok {
			set = make(map[string]struct{})
			watched[ev.MediaType] = set
		}
		set[key] = struct{}{}
	}

	var coverage []models.LibraryCoverage
	for _, section := range libs.Response.Data {
		mediaType, tracked := sectionEventType[section.SectionType]
		if !tracked || section.IsActive == 0 {
			continue
		}

		total := section.Count
		if total == 0 {
			// get_libraries occasionally reports stale zero counts;
			// fall back to the media info record total.
			info, err := e.library.GetLibraryMediaInfo(ctx, section.SectionID, 0, 1)
			if err != nil {
				logging.Warn().Err(err).Str("library", section.SectionName).Msg("Library size lookup failed, skipping section")
				continue
			}
			total = info.Response.Data.RecordsTotal
		}

		count := len(watched[mediaType])
		pct := percentage(int64(count), int64(total))
		if pct > 100 {
			// Stale library counts can undercount the section
			pct = 100
		}
		coverage = append(coverage, models.LibraryCoverage{
			Name:       section.SectionName,
			Type:       section.SectionType,
			Watched:    count,
			Total:      total,
			Percentage: pct,
		})
	}

	return coverage, nil
}
