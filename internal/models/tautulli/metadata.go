// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package tautulli

// TautulliMetadata represents the API response from the get_metadata endpoint
type TautulliMetadata struct {
	Response TautulliMetadataResponse `json:"response"`
}

type TautulliMetadataResponse struct {
	Result  string               `json:"result"`
	Message *string              `json:"message,omitempty"`
	Data    TautulliMetadataData `json:"data"`
}

// TautulliMetadataData carries the item fields the generator uses: genre
// tags for the diversity statistic and the thumb path for poster download.
type TautulliMetadataData struct {
	RatingKey            string   `json:"rating_key"`
	ParentRatingKey      string   `json:"parent_rating_key"`
	GrandparentRatingKey string   `json:"grandparent_rating_key"`
	MediaType            string   `json:"media_type"`
	Title                string   `json:"title"`
	GrandparentTitle     string   `json:"grandparent_title"`
	Year                 int      `json:"year"`
	Thumb                string   `json:"thumb"`
	ParentThumb          string   `json:"parent_thumb"`
	GrandparentThumb     string   `json:"grandparent_thumb"`
	Genres               []string `json:"genres"`
	Summary              string   `json:"summary"`
}
