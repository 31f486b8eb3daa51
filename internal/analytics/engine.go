// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"context"

	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

// ChartSource provides the two Tautulli chart endpoints the engine
// consumes for time-of-day and platform statistics.
type ChartSource interface {
	GetPlaysByHourOfDay(ctx context.Context, timeRange int, yAxis string, userID int, grouping int) (*tautulli.TautulliPlaysByHourOfDay, error)
	GetPlaysByTop10Platforms(ctx context.Context, timeRange int, yAxis string, userID int, grouping int) (*tautulli.TautulliPlaysByTop10Platforms, error)
}

// MetadataSource resolves per-item metadata (genre tags, thumb paths).
type MetadataSource interface {
	GetMetadata(ctx context.Context, ratingKey string) (*tautulli.TautulliMetadata, error)
}

// LibrarySource lists library sections and their item totals.
type LibrarySource interface {
	GetLibraries(ctx context.Context) (*tautulli.TautulliLibraries, error)
	GetLibraryMediaInfo(ctx context.Context, sectionID int, start, length int) (*tautulli.TautulliLibraryMediaInfo, error)
}

// ThumbnailResolver maps a content item to an on-disk thumbnail path.
// Resolution is best effort: implementations return "" on any failure
// and never propagate an error.
type ThumbnailResolver interface {
	Resolve(ctx context.Context, ratingKey, thumb string) string
}

// Engine computes the lookup-dependent statistics. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	charts   ChartSource
	metadata MetadataSource
	library  LibrarySource
	thumbs   ThumbnailResolver

	genreEventLimit int
	topItemsLimit   int
}

// Options tunes engine limits. Zero fields fall back to defaults.
type Options struct {
	GenreEventLimit int // Events inspected for genre diversity (default 100)
	TopItemsLimit   int // Entries in the top-watched ranking (default 5)
}

const (
	defaultGenreEventLimit = 100
	defaultTopItemsLimit   = 5
)

// NewEngine creates an analytics engine. thumbs may be nil, in which case
// top-watched items carry no thumbnail paths.
func NewEngine(charts ChartSource, metadata MetadataSource, library LibrarySource, thumbs ThumbnailResolver, opts Options) *Engine {
	if opts.GenreEventLimit <= 0 {
		opts.GenreEventLimit = defaultGenreEventLimit
	}
	if opts.TopItemsLimit <= 0 {
		opts.TopItemsLimit = defaultTopItemsLimit
	}

	return &Engine{
		charts:          charts,
		metadata:        metadata,
		library:         library,
		thumbs:          thumbs,
		genreEventLimit: opts.GenreEventLimit,
		topItemsLimit:   opts.TopItemsLimit,
	}
}
