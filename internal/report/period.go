// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package report

import (
	"fmt"
	"strings"
	"time"
)

// PeriodType selects the report window.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodYearly  PeriodType = "yearly"
)

// Period is one report window with its display label and output naming.
//
// The window policy is deliberately asymmetric: monthly covers the
// previous full calendar month, while yearly covers January 1 of the
// current year through tomorrow (year-to-date). Both are computed
// relative to tomorrow so that today's watches land in the window.
type Period struct {
	Type  PeriodType
	Start time.Time // First day of the window, inclusive
	End   time.Time // Last day of the window, inclusive

	Label string     // "November" for monthly, "2026" for yearly
	Year  int        // Output year directory
	Month time.Month // Zero value for yearly periods

	TimeRangeDays int // Window length for Tautulli chart calls
}

// NewPeriod computes the report window for the given type relative to now.
func NewPeriod(pt PeriodType, now time.Time) Period {
	tomorrow := now.UTC().AddDate(0, 0, 1)
	tomorrow = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)

	var start, end time.Time
	if pt == PeriodMonthly {
		firstOfMonth := time.Date(tomorrow.Year(), tomorrow.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = firstOfMonth.AddDate(0, -1, 0)
		end = firstOfMonth.AddDate(0, 0, -1)
	} else {
		start = time.Date(tomorrow.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = tomorrow
	}

	p := Period{
		Type:          pt,
		Start:         start,
		End:           end,
		Year:          start.Year(),
		TimeRangeDays: int(end.Sub(start).Hours() / 24),
	}

	if pt == PeriodMonthly {
		p.Month = start.Month()
		p.Label = start.Month().String()
	} else {
		p.Label = fmt.Sprintf("%d", start.Year())
	}

	return p
}

// MonthDir returns the lowercase month directory name ("november"),
// or "" for yearly periods.
func (p Period) MonthDir() string {
	if p.Type != PeriodMonthly {
		return ""
	}
	return strings.ToLower(p.Month.String())
}

// FileSuffix returns the per-report filename suffix: the lowercase month
// for monthly periods, the year for yearly ones.
func (p Period) FileSuffix() string {
	if p.Type == PeriodMonthly {
		return p.MonthDir()
	}
	return p.Label
}
