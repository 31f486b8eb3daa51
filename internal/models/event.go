// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package models

import "time"

// Media types reported by Tautulli that Wrapparr understands.
//
// Only movie and episode are tracked for aggregation. Track is recognized
// so that content keys and library coverage can match music libraries, but
// track events are never folded into watch statistics.
const (
	MediaTypeMovie   = "movie"
	MediaTypeEpisode = "episode"
	MediaTypeTrack   = "track"
)

// WatchEvent is one normalized playback record from the history window.
//
// Timestamps are Unix epoch seconds. Tautulli reports them in the server's
// local clock; Wrapparr buckets dates in UTC and assumes the two are
// equivalent for day-granularity statistics.
type WatchEvent struct {
	// User identification
	User   string `json:"user"`    // Friendly name used for grouping
	UserID int    `json:"user_id"` // Stable opaque identifier

	// Media identification
	MediaType            string `json:"media_type"`
	RatingKey            string `json:"rating_key,omitempty"`
	GrandparentRatingKey string `json:"grandparent_rating_key,omitempty"` // Series key, episodes only
	GrandparentTitle     string `json:"grandparent_title,omitempty"`      // Series title, episodes only
	Title                string `json:"title"`
	FullTitle            string `json:"full_title,omitempty"`

	// Playback metrics
	PlayDuration int   `json:"play_duration_seconds"` // Seconds actually played, never negative
	WatchedAt    int64 `json:"watched_at"`            // Epoch seconds

	// Episode/season numbers, zero for movies
	MediaIndex       int `json:"media_index,omitempty"`
	ParentMediaIndex int `json:"parent_media_index,omitempty"`

	// Client platform, used by the server-wide platform breakdown
	Platform string `json:"platform,omitempty"`
}

// IsTracked reports whether the event counts toward watch statistics.
// Events without a user cannot be grouped and are never tracked.
func (e WatchEvent) IsTracked() bool {
	if e.User == "" {
		return false
	}
	return e.MediaType == MediaTypeMovie || e.MediaType == MediaTypeEpisode
}

// ContentKey returns the identifier used to deduplicate watched content:
// the series key for episodic content, the item key otherwise.
func (e WatchEvent) ContentKey() string {
	if e.GrandparentRatingKey != "" {
		return e.GrandparentRatingKey
	}
	return e.RatingKey
}

// DisplayTitle returns the title shown in rankings: the series title for
// episodes, the item title for everything else.
func (e WatchEvent) DisplayTitle() string {
	if (e.MediaType == MediaTypeEpisode || e.MediaType == MediaTypeTrack) && e.GrandparentTitle != "" {
		return e.GrandparentTitle
	}
	return e.Title
}

// WatchedDate returns the calendar date of the event in UTC.
func (e WatchEvent) WatchedDate() time.Time {
	t := time.Unix(e.WatchedAt, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
