// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import "github.com/wrapparr/wrapparr/internal/models"

// uniqueItemCap limits the listed items; Count always reports the full
// set-difference size.
const uniqueItemCap = 10

// UniqueContent finds content the target user watched that no other
// tracked user touched in the same period. Keys are content keys (series
// key for episodes), compared as a set difference. Items are listed in
// the order the target user first watched them, capped at 10.
func UniqueContent(eventsByUser map[string][]models.WatchEvent, targetUser string) models.UniqueContentResult {
	targetEvents := eventsByUser[targetUser]
	if len(targetEvents) == 0 {
		return models.UniqueContentResult{}
	}

	others := make(map[string]struct{})
	for user, events := range eventsByUser {
		if user == targetUser {
			continue
		}
		for _, ev := range events {
			if !ev.IsTracked() {
				continue
			}
			if key := ev.ContentKey(); key != "" {
				others[key] = struct{}{}
			}
		}
	}

	var result models.UniqueContentResult
	seen := make(map[string]struct{})
	for _, ev := range targetEvents {
		if !ev.IsTracked() {
			continue
		}
		key := ev.ContentKey()
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, shared := others[key]; shared {
			continue
		}

		result.Count++
		if len(result.Items) < uniqueItemCap {
			result.Items = append(result.Items, models.UniqueItem{
				Title:     ev.DisplayTitle(),
				MediaType: ev.MediaType,
			})
		}
	}

	return result
}
