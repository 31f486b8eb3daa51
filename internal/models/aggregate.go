// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package models

// UserAggregate accumulates one user's tracked events for a report period.
//
// Aggregates are built once per run by BuildUserAggregates and treated as
// immutable afterwards. Durations are seconds and only ever grow while the
// event list is folded in.
type UserAggregate struct {
	User           string       `json:"user"`
	UserID         int          `json:"user_id"`
	TotalSeconds   int64        `json:"total_seconds"`
	MovieSeconds   int64        `json:"movie_seconds"`
	EpisodeSeconds int64        `json:"episode_seconds"`
	Events         []WatchEvent `json:"-"` // Raw events in history order, for secondary analyses
}

// BuildUserAggregates folds a list of events into per-user aggregates.
//
// Untracked events (media type outside {movie, episode}, or missing user)
// are excluded entirely. The first non-zero user ID seen for a user wins,
// matching how Tautulli history rows repeat the ID on every record.
func BuildUserAggregates(events []WatchEvent) map[string]*UserAggregate {
	aggs := make(map[string]*UserAggregate)

	for _, ev := range events {
		if !ev.IsTracked() {
			continue
		}

		agg, ok := aggs[ev.User]
		if !ok {
			agg = &UserAggregate{User: ev.User}
			aggs[ev.User] = agg
		}
		if agg.UserID == 0 && ev.UserID != 0 {
			agg.UserID = ev.UserID
		}

		d := int64(ev.PlayDuration)
		agg.TotalSeconds += d
		switch ev.MediaType {
		case MediaTypeMovie:
			agg.MovieSeconds += d
		case MediaTypeEpisode:
			agg.EpisodeSeconds += d
		}
		agg.Events = append(agg.Events, ev)
	}

	return aggs
}

// FilterTracked returns the tracked subset of events, preserving order.
func FilterTracked(events []WatchEvent) []WatchEvent {
	tracked := make([]WatchEvent, 0, len(events))
	for _, ev := range events {
		if ev.IsTracked() {
			tracked = append(tracked, ev)
		}
	}
	return tracked
}
