// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package tautulli

// TautulliLibraries represents the API response from the get_libraries endpoint
type TautulliLibraries struct {
	Response TautulliLibrariesResponse `json:"response"`
}

type TautulliLibrariesResponse struct {
	Result  string                  `json:"result"`
	Message *string                 `json:"message,omitempty"`
	Data    []TautulliLibraryDetail `json:"data"`
}

type TautulliLibraryDetail struct {
	SectionID   int    `json:"section_id"`
	SectionName string `json:"section_name"`
	SectionType string `json:"section_type"` // movie, show, artist
	Count       int    `json:"count"`
	IsActive    int    `json:"is_active"`
}

// TautulliLibraryMediaInfo represents the API response from the
// get_library_media_info endpoint. Only the record totals are consumed;
// the row data itself is ignored.
type TautulliLibraryMediaInfo struct {
	Response TautulliLibraryMediaInfoResponse `json:"response"`
}

type TautulliLibraryMediaInfoResponse struct {
	Result  string                       `json:"result"`
	Message *string                      `json:"message,omitempty"`
	Data    TautulliLibraryMediaInfoData `json:"data"`
}

type TautulliLibraryMediaInfoData struct {
	RecordsFiltered int `json:"recordsFiltered"`
	RecordsTotal    int `json:"recordsTotal"`
}
