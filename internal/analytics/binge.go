// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"sort"
	"time"

	"github.com/wrapparr/wrapparr/internal/models"
)

const (
	// bingeGapSeconds is the maximum gap between consecutive episodes
	// for them to count as one sitting (8 hours).
	bingeGapSeconds = 28800

	// minBingeEpisodes is the minimum run length that qualifies as a binge.
	minBingeEpisodes = 3

	bingeDateFormat = "January 2, 2006"
)

// DetectBingeSessions finds runs of 3+ episodes of the same series where
// consecutive watches are at most 8 hours apart.
//
// Episodes are grouped by series title, sorted by timestamp, then scanned
// greedily: a session extends while the next episode is within the gap
// threshold of the session's most recent episode. Sessions close on a gap
// or at list end, and only runs of minBingeEpisodes or more are emitted.
// One show can contribute several sessions. Results sort by episode count
// descending, ties by show name ascending for stable output.
func DetectBingeSessions(events []models.WatchEvent) []models.BingeSession {
	byShow := make(map[string][]models.WatchEvent)
	for _, ev := range events {
		if ev.MediaType != models.MediaTypeEpisode || ev.GrandparentTitle == "" {
			continue
		}
		byShow[ev.GrandparentTitle] = append(byShow[ev.GrandparentTitle], ev)
	}

	var sessions []models.BingeSession
	for show, episodes := range byShow {
		if len(episodes) < minBingeEpisodes {
			continue
		}

		sort.Slice(episodes, func(i, j int) bool {
			return episodes[i].WatchedAt < episodes[j].WatchedAt
		})

		run := []models.WatchEvent{episodes[0]}
		for _, ep := range episodes[1:] {
			if ep.WatchedAt-run[len(run)-1].WatchedAt <= bingeGapSeconds {
				run = append(run, ep)
				continue
			}
			// Gap closes the session
			if len(run) >= minBingeEpisodes {
				sessions = append(sessions, buildSession(show, run))
			}
			run = []models.WatchEvent{ep}
		}
		if len(run) >= minBingeEpisodes {
			sessions = append(sessions, buildSession(show, run))
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].EpisodeCount != sessions[j].EpisodeCount {
			return sessions[i].EpisodeCount > sessions[j].EpisodeCount
		}
		return sessions[i].Show < sessions[j].Show
	})

	return sessions
}

func buildSession(show string, run []models.WatchEvent) models.BingeSession {
	episodes := make([]models.BingeEpisode, 0, len(run))
	for _, ev := range run {
		episodes = append(episodes, models.BingeEpisode{
			Title:     ev.Title,
			WatchedAt: ev.WatchedAt,
			Episode:   ev.MediaIndex,
			Season:    ev.ParentMediaIndex,
		})
	}

	return models.BingeSession{
		Show:         show,
		EpisodeCount: len(run),
		Date:         time.Unix(run[0].WatchedAt, 0).UTC().Format(bingeDateFormat),
		Episodes:     episodes,
	}
}
