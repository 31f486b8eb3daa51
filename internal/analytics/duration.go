// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package analytics

import (
	"fmt"
	"math"
	"strings"
)

// Hours converts seconds to hours rounded to one decimal place.
func Hours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*10) / 10
}

// Days converts seconds to days rounded to one decimal place.
func Days(seconds int64) float64 {
	return math.Round(float64(seconds)/86400*10) / 10
}

// FormatDuration renders seconds as a compact "2d 5h 3m" string.
// Zero components are omitted; zero total renders as "0m".
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0m"
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		// Sub-minute durations still deserve a value
		return "0m"
	}
	return strings.Join(parts, " ")
}

// TruncateTitle shortens a display title to max characters, appending an
// ellipsis when truncated. Operates on runes so multi-byte titles don't
// get cut mid-character.
func TruncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}

// percentage returns part/total*100, or 0 when total is 0.
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*10) / 10
}
