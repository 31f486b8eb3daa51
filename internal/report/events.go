// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package report

import (
	"strconv"

	"github.com/wrapparr/wrapparr/internal/models"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

// EventFromRecord normalizes one Tautulli history row into a WatchEvent.
//
// Users are grouped by friendly name, which is what Tautulli shows in its
// own UI and what report filenames are derived from. Nullable wire fields
// collapse to zero values.
func EventFromRecord(rec tautulli.TautulliHistoryRecord) models.WatchEvent {
	ev := models.WatchEvent{
		User:       rec.FriendlyName,
		MediaType:  rec.MediaType,
		Title:      rec.Title,
		FullTitle:  rec.FullTitle,
		WatchedAt:  rec.Date,
		Platform:   rec.Platform,
		RatingKey:  intKey(rec.RatingKey),
		MediaIndex: intOrZero(rec.MediaIndex),
	}

	if rec.UserID != nil {
		ev.UserID = *rec.UserID
	}
	if rec.PlayDuration != nil && *rec.PlayDuration > 0 {
		ev.PlayDuration = *rec.PlayDuration
	}
	if rec.GrandparentTitle != nil {
		ev.GrandparentTitle = *rec.GrandparentTitle
	}
	ev.GrandparentRatingKey = intKey(rec.GrandparentRatingKey)
	ev.ParentMediaIndex = intOrZero(rec.ParentMediaIndex)

	return ev
}

// EventsFromHistory converts a full history response, dropping nothing:
// tracked-media filtering happens downstream so untracked rows can still
// inform diagnostics.
func EventsFromHistory(history *tautulli.TautulliHistory) []models.WatchEvent {
	records := history.Response.Data.Data
	events := make([]models.WatchEvent, 0, len(records))
	for _, rec := range records {
		events = append(events, EventFromRecord(rec))
	}
	return events
}

// GroupByUser splits tracked events per user, preserving history order.
func GroupByUser(events []models.WatchEvent) map[string][]models.WatchEvent {
	byUser := make(map[string][]models.WatchEvent)
	for _, ev := range events {
		if !ev.IsTracked() {
			continue
		}
		byUser[ev.User] = append(byUser[ev.User], ev)
	}
	return byUser
}

func intKey(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
