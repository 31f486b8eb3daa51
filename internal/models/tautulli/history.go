// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package tautulli

// TautulliHistory represents the API response from the get_history endpoint
type TautulliHistory struct {
	Response TautulliHistoryResponse `json:"response"`
}

type TautulliHistoryResponse struct {
	Result  string              `json:"result"`
	Message *string             `json:"message,omitempty"`
	Data    TautulliHistoryData `json:"data"`
}

type TautulliHistoryData struct {
	RecordsFiltered int                     `json:"recordsFiltered"`
	RecordsTotal    int                     `json:"recordsTotal"`
	Data            []TautulliHistoryRecord `json:"data"`
}

// TautulliHistoryRecord is a single playback history row.
//
// Only the fields the report generator consumes are declared; Tautulli
// returns many more, which the decoder ignores.
//
// Note: Duration and PlayDuration are in SECONDS (unlike get_activity,
// which reports milliseconds).
type TautulliHistoryRecord struct {
	// Timestamps (epoch seconds, server-local clock)
	Date    int64 `json:"date"`
	Started int64 `json:"started"`
	Stopped int64 `json:"stopped"`

	// User information
	// Pointer types distinguish null from zero in Tautulli responses
	UserID       *int   `json:"user_id"` // Nullable in edge cases
	User         string `json:"user"`
	FriendlyName string `json:"friendly_name"`
	UserThumb    string `json:"user_thumb"`

	// Media identification
	MediaType        string  `json:"media_type"`
	Title            string  `json:"title"`
	ParentTitle      *string `json:"parent_title"`      // Null for movies
	GrandparentTitle *string `json:"grandparent_title"` // Null for movies
	FullTitle        string  `json:"full_title"`

	// Rating keys (numeric IDs, null when absent)
	RatingKey            *int `json:"rating_key"`
	ParentRatingKey      *int `json:"parent_rating_key"`
	GrandparentRatingKey *int `json:"grandparent_rating_key"`
	MediaIndex           *int `json:"media_index"`        // Episode number, null for movies
	ParentMediaIndex     *int `json:"parent_media_index"` // Season number, null for movies

	// Playback metrics
	Duration        *int `json:"duration"`         // Seconds, null for live content
	PlayDuration    *int `json:"play_duration"`    // Seconds actually watched
	PercentComplete *int `json:"percent_complete"` // Nullable

	// Client information
	Platform string `json:"platform"`
	Player   string `json:"player"`
	Product  string `json:"product"`

	// Library context
	SectionID   *int   `json:"section_id"` // Null when library info unavailable
	LibraryName string `json:"library_name"`

	// Artwork
	Thumb string `json:"thumb"`
}
