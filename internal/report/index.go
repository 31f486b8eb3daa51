// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wrapparr/wrapparr/internal/logging"
)

// monthNames in chronological order, used to recognize month directories
// and to order monthly report groups.
var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// IndexEntry is one report link on the index page.
type IndexEntry struct {
	Name            string // Display name ("Alice", "Server Summary")
	Filename        string
	Path            string // Relative to the reports directory
	IsServerSummary bool
}

// MonthGroup bundles one month's reports within a year.
type MonthGroup struct {
	Month   string // Capitalized ("November")
	Dir     string // Directory name ("november")
	Entries []IndexEntry
}

// YearGroup bundles one year's reports: yearly pages plus month folders.
type YearGroup struct {
	Year   string
	Yearly []IndexEntry
	Months []MonthGroup // Most recent month first
}

// IndexData is everything the index page template needs. Years are
// ordered most recent first.
type IndexData struct {
	Years        []YearGroup
	TotalReports int
}

// ScanReports walks the reports directory tree and builds the index data.
//
// Expected layout: <dir>/<year>/<user>_<year>.html for yearly reports and
// <dir>/<year>/<month>/<user>_<month>.html for monthly ones. Anything
// that doesn't match is skipped with a debug log.
func ScanReports(reportsDir string) (IndexData, error) {
	var data IndexData

	yearDirs, err := os.ReadDir(reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return data, fmt.Errorf("read reports directory: %w", err)
	}

	for _, yd := range yearDirs {
		if !yd.IsDir() || !isYearName(yd.Name()) {
			continue
		}
		year := yd.Name()
		group := YearGroup{Year: year}

		entries, err := os.ReadDir(filepath.Join(reportsDir, year))
		if err != nil {
			logging.Debug().Err(err).Str("year", year).Msg("Skipping unreadable year directory")
			continue
		}

		monthGroups := make(map[string][]IndexEntry)
		for _, entry := range entries {
			if entry.IsDir() {
				if !isMonthName(entry.Name()) {
					continue
				}
				month := entry.Name()
				files, err := os.ReadDir(filepath.Join(reportsDir, year, month))
				if err != nil {
					continue
				}
				for _, f := range files {
					if f.IsDir() || !strings.HasSuffix(f.Name(), ".html") {
						continue
					}
					monthGroups[month] = append(monthGroups[month], indexEntry(f.Name(), "_"+month, filepath.ToSlash(filepath.Join(year, month, f.Name()))))
				}
				continue
			}
			if !strings.HasSuffix(entry.Name(), ".html") {
				continue
			}
			group.Yearly = append(group.Yearly, indexEntry(entry.Name(), "_"+year, filepath.ToSlash(filepath.Join(year, entry.Name()))))
		}

		sortEntries(group.Yearly)

		// Most recent month first
		for i := len(monthNames) - 1; i >= 0; i-- {
			month := monthNames[i]
			if list, ok := monthGroups[month]; ok {
				sortEntries(list)
				group.Months = append(group.Months, MonthGroup{
					Month:   capitalize(month),
					Dir:     month,
					Entries: list,
				})
			}
		}

		data.TotalReports += len(group.Yearly)
		for _, mg := range group.Months {
			data.TotalReports += len(mg.Entries)
		}
		data.Years = append(data.Years, group)
	}

	// Most recent year first
	sort.Slice(data.Years, func(i, j int) bool {
		return data.Years[i].Year > data.Years[j].Year
	})

	return data, nil
}

// indexEntry derives the display name from a report filename by stripping
// the period suffix and un-snaking the username.
func indexEntry(filename, suffix, relPath string) IndexEntry {
	base := strings.TrimSuffix(filename, ".html")
	isSummary := strings.Contains(strings.ToLower(base), "server_summary")

	name := strings.TrimSuffix(base, suffix)
	name = strings.ReplaceAll(name, "_", " ")
	name = titleCase(name)

	return IndexEntry{
		Name:            name,
		Filename:        filename,
		Path:            relPath,
		IsServerSummary: isSummary,
	}
}

// sortEntries puts the server summary first, then usernames ascending.
func sortEntries(entries []IndexEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsServerSummary != entries[j].IsServerSummary {
			return entries[i].IsServerSummary
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}

func isYearName(name string) bool {
	if len(name) != 4 {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isMonthName(name string) bool {
	for _, m := range monthNames {
		if name == m {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
