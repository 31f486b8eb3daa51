// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/wrapparr/wrapparr/internal/models"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

// PlatformBreakdown fetches the top-platforms duration chart for the
// window and ranks platforms by total seconds descending with their
// percentage of the grand total. userID 0 requests server-wide data.
func (e *Engine) PlatformBreakdown(ctx context.Context, timeRangeDays, userID int) (models.PlatformBreakdown, error) {
	chart, err := e.charts.GetPlaysByTop10Platforms(ctx, timeRangeDays, "duration", userID, 0)
	if err != nil {
		return models.PlatformBreakdown{}, fmt.Errorf("fetch top-platforms chart: %w", err)
	}

	categories := chart.Response.Data.Categories
	totals := make([]int64, len(categories))

	// Each series (Movies, TV, ...) carries one value per platform
	// category; fold them into per-platform totals.
	for _, series := range chart.Response.Data.Series {
		for i, v := range series.Data {
			if i >= len(totals) {
				break
			}
			totals[i] += tautulli.SeriesValue(v)
		}
	}

	var grandTotal int64
	for _, secs := range totals {
		grandTotal += secs
	}

	platforms := make([]models.PlatformUsage, 0, len(categories))
	for i, name := range categories {
		if totals[i] == 0 {
			continue
		}
		platforms = append(platforms, models.PlatformUsage{
			Name:       name,
			Seconds:    totals[i],
			Hours:      Hours(totals[i]),
			Percentage: percentage(totals[i], grandTotal),
		})
	}

	sort.SliceStable(platforms, func(i, j int) bool {
		return platforms[i].Seconds > platforms[j].Seconds
	})

	result := models.PlatformBreakdown{Platforms: platforms}
	if len(platforms) > 0 {
		result.Top = &platforms[0]
	}

	return result, nil
}
