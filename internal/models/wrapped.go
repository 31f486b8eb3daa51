// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// This file contains the derived statistic types produced by the analytics
// engine and the report envelope handed to the HTML renderer.

package models

// RankingEntry is one user's position on the server leaderboard.
type RankingEntry struct {
	User           string  `json:"user"`
	Rank           int     `json:"rank"` // 1-based
	Label          string  `json:"label"`
	TotalSeconds   int64   `json:"total_seconds"`
	MovieSeconds   int64   `json:"movie_seconds"`
	EpisodeSeconds int64   `json:"episode_seconds"`
	TotalHours     float64 `json:"total_hours"`
}

// RankLabels is the ordered table of celebratory labels assigned by rank.
// Index rank-1; ranks past the end fall back to DefaultRankLabel.
var RankLabels = []string{
	"\U0001F451 Server Champion",
	"\U0001F948 Runner-Up Extraordinaire",
	"\U0001F949 Bronze Binger",
	"\U0001F3AC Movie Maven",
	"\U0001F4FA TV Enthusiast",
	"\U0001F37F Popcorn Pro",
	"⭐ Rising Star",
	"\U0001F3AA Entertainment Seeker",
	"\U0001F3AD Culture Consumer",
	"\U0001F3A8 Content Connoisseur",
}

// DefaultRankLabel is used for every rank beyond the label table.
const DefaultRankLabel = "\U0001F3AF Dedicated Viewer"

// BingeEpisode is one episode inside a binge session.
type BingeEpisode struct {
	Title     string `json:"title"`
	WatchedAt int64  `json:"watched_at"`
	Episode   int    `json:"episode,omitempty"`
	Season    int    `json:"season,omitempty"`
}

// BingeSession is a run of 3+ episodes of one series where each consecutive
// pair of watches is at most 8 hours apart.
type BingeSession struct {
	Show         string         `json:"show"`
	EpisodeCount int            `json:"episode_count"`
	Date         string         `json:"date"` // Session start, "January 2, 2006"
	Episodes     []BingeEpisode `json:"episodes"`
}

// StreakRecord holds the longest and current runs of consecutive calendar
// days with at least one tracked event.
type StreakRecord struct {
	LongestStreak   int    `json:"longest_streak"`
	CurrentStreak   int    `json:"current_streak"` // 0 unless the last active day is within 1 day of now
	TotalActiveDays int    `json:"total_active_days"`
	StreakStart     string `json:"streak_start,omitempty"` // Longest streak start, "January 2"
	StreakEnd       string `json:"streak_end,omitempty"`
}

// TimeOfDayShare is one band of the peak-hours distribution.
type TimeOfDayShare struct {
	Seconds    int64   `json:"seconds"`
	Percentage float64 `json:"percentage"` // 0-100, 0 when the total is 0
}

// PeakHours is the hourly watch-duration histogram for the period.
type PeakHours struct {
	HourlySeconds [24]int64      `json:"hourly_seconds"`
	PeakHour      int            `json:"peak_hour"` // Earliest hour holding the maximum
	PeakSeconds   int64          `json:"peak_seconds"`
	PeakHourLabel string         `json:"peak_hour_formatted"` // "21:00"
	Night         TimeOfDayShare `json:"night"`               // [00:00, 06:00)
	Morning       TimeOfDayShare `json:"morning"`             // [06:00, 12:00)
	Afternoon     TimeOfDayShare `json:"afternoon"`           // [12:00, 18:00)
	Evening       TimeOfDayShare `json:"evening"`             // [18:00, 24:00)
}

// PlatformUsage is one platform's share of watch time.
type PlatformUsage struct {
	Name       string  `json:"name"`
	Seconds    int64   `json:"seconds"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
}

// PlatformBreakdown ranks platforms by watch duration, highest first.
type PlatformBreakdown struct {
	Platforms []PlatformUsage `json:"platforms"`
	Top       *PlatformUsage  `json:"top_platform,omitempty"` // nil when no data
}

// WatchEdge describes the first or last watch of the period.
type WatchEdge struct {
	Title     string `json:"title"`
	Date      string `json:"date"` // "January 2, 2006"
	MediaType string `json:"type"`
}

// FirstLastWatch holds the chronological edges of the period.
// Both fields are nil when the event list is empty.
type FirstLastWatch struct {
	First *WatchEdge `json:"first"`
	Last  *WatchEdge `json:"last"`
}

// GenreUsage is one genre's accumulated watch time.
type GenreUsage struct {
	Name    string  `json:"name"`
	Seconds int64   `json:"seconds"`
	Hours   float64 `json:"hours"`
}

// GenreDiversity summarizes genre spread across watched content.
//
// An event contributes its full duration to every one of its genre tags,
// so the per-genre seconds may sum to more than total watch time.
type GenreDiversity struct {
	UniqueGenres   int          `json:"unique_genres"`
	TopGenres      []GenreUsage `json:"top_genres"` // Up to 5, by seconds descending
	TotalGenreTags int          `json:"total_genre_tags"`
}

// LibraryCoverage reports how much of one library section was explored.
type LibraryCoverage struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"` // movie, show, artist
	Watched    int     `json:"watched"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"` // 0 when the section is empty
}

// UniqueItem is one piece of content watched only by the target user.
type UniqueItem struct {
	Title     string `json:"title"`
	MediaType string `json:"type"`
}

// UniqueContentResult lists content no other tracked user watched in the
// period. Items is capped at 10; Count is the full number.
type UniqueContentResult struct {
	Items []UniqueItem `json:"unique_items"`
	Count int          `json:"count"`
}

// TopItem is one entry of the most-watched ranking.
type TopItem struct {
	RatingKey     string  `json:"rating_key"`
	Title         string  `json:"title"` // Truncated to 36 chars + ellipsis
	Seconds       int64   `json:"seconds"`
	Hours         float64 `json:"hours"`
	MediaType     string  `json:"type"`
	ThumbnailPath string  `json:"thumbnail"` // On-disk path, "" when unresolved
}

// Ranking is the user's leaderboard context inside their own report.
type Ranking struct {
	Rank       int    `json:"rank"`
	Label      string `json:"label"`
	TotalUsers int    `json:"total_users"`
}

// UserReport is the complete report-data structure for one user, or for
// the server summary when IsServerSummary is set. Every statistic field is
// always present; a failed sub-computation leaves its zero value.
type UserReport struct {
	User            string `json:"user"`
	PeriodLabel     string `json:"period_label"` // "2026" or "January"
	IsServerSummary bool   `json:"is_server_summary"`

	TotalHours float64 `json:"total_hours"`
	TotalDays  float64 `json:"total_days"`
	MovieHours float64 `json:"movie_hours"`
	ShowHours  float64 `json:"show_hours"`

	Ranking         *Ranking            `json:"ranking,omitempty"`
	TopWatched      []TopItem           `json:"top_watched"`
	PeakHours       PeakHours           `json:"peak_hours"`
	Platforms       PlatformBreakdown   `json:"platforms"`
	FirstLast       FirstLastWatch      `json:"first_last"`
	Streak          StreakRecord        `json:"streak"`
	BingeSessions   []BingeSession      `json:"binge_sessions"`
	Genres          GenreDiversity      `json:"genres"`
	LibraryCoverage []LibraryCoverage   `json:"library_coverage"`
	UniqueContent   UniqueContentResult `json:"unique_content"`

	UserThumb string `json:"user_thumb,omitempty"` // Profile picture URL, best effort
}
