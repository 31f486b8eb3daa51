// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package tautulli

// TautulliChartSeries is one series of a chart-style endpoint. The same
// shape backs both the hour-of-day and top-platforms responses.
//
// Data values arrive as JSON numbers that may be integers or floats
// depending on the y-axis, so they are decoded as interface{} and
// normalized by the caller.
type TautulliChartSeries struct {
	Name string        `json:"name"` // "Movies", "TV", "Music", "Live TV"
	Data []interface{} `json:"data"`
}

// TautulliPlaysByHourOfDay represents the API response from the
// get_plays_by_hourofday endpoint
type TautulliPlaysByHourOfDay struct {
	Response TautulliPlaysByHourOfDayResponse `json:"response"`
}

type TautulliPlaysByHourOfDayResponse struct {
	Result  string                       `json:"result"`
	Message *string                      `json:"message,omitempty"`
	Data    TautulliPlaysByHourOfDayData `json:"data"`
}

type TautulliPlaysByHourOfDayData struct {
	Categories []string              `json:"categories"` // ["00", "01", ..., "23"]
	Series     []TautulliChartSeries `json:"series"`
}

// TautulliPlaysByTop10Platforms represents the API response from the
// get_plays_by_top_10_platforms endpoint
type TautulliPlaysByTop10Platforms struct {
	Response TautulliPlaysByTop10PlatformsResponse `json:"response"`
}

type TautulliPlaysByTop10PlatformsResponse struct {
	Result  string                            `json:"result"`
	Message *string                           `json:"message,omitempty"`
	Data    TautulliPlaysByTop10PlatformsData `json:"data"`
}

type TautulliPlaysByTop10PlatformsData struct {
	Categories []string              `json:"categories"` // Platform names
	Series     []TautulliChartSeries `json:"series"`
}

// SeriesValue normalizes one chart data point to int64 seconds.
// Unknown value shapes count as zero.
func SeriesValue(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
