// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"context"
	"fmt"

	"github.com/wrapparr/wrapparr/internal/models"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

// Time-of-day band boundaries, local hours.
const (
	nightEnd     = 6  // [00:00, 06:00)
	morningEnd   = 12 // [06:00, 12:00)
	afternoonEnd = 18 // [12:00, 18:00)
)

// PeakWatchingHours fetches the hour-of-day duration chart for the window
// and reduces it to a 24-bucket histogram with the peak hour and four
// time-of-day bands. Ties for the peak resolve to the earliest hour.
// userID 0 requests server-wide data.
func (e *Engine) PeakWatchingHours(ctx context.Context, timeRangeDays, userID int) (models.PeakHours, error) {
	chart, err := e.charts.GetPlaysByHourOfDay(ctx, timeRangeDays, "duration", userID, 0)
	if err != nil {
		return models.PeakHours{}, fmt.Errorf("fetch hour-of-day chart: %w", err)
	}

	var result models.PeakHours

	// Sum every series (Movies, TV, Music, ...) into 24 buckets. The
	// categories slice drives the hour index: Tautulli labels them "00"
	// through "23" in order.
	for _, series := range chart.Response.Data.Series {
		for i, v := range series.Data {
			if i >= 24 {
				break
			}
			result.HourlySeconds[i] += tautulli.SeriesValue(v)
		}
	}

	var total int64
	for hour, secs := range result.HourlySeconds {
		total += secs
		// First-max policy: strictly greater keeps the earliest peak hour
		if secs > result.PeakSeconds {
			result.PeakSeconds = secs
			result.PeakHour = hour
		}
	}
	result.PeakHourLabel = fmt.Sprintf("%02d:00", result.PeakHour)

	band := func(from, to int) models.TimeOfDayShare {
		var secs int64
		for h := from; h < to; h++ {
			secs += result.HourlySeconds[h]
		}
		return models.TimeOfDayShare{Seconds: secs, Percentage: percentage(secs, total)}
	}

	result.Night = band(0, nightEnd)
	result.Morning = band(nightEnd, morningEnd)
	result.Afternoon = band(morningEnd, afternoonEnd)
	result.Evening = band(afternoonEnd, 24)

	return result, nil
}
