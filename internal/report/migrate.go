// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wrapparr/wrapparr/internal/logging"
)

// MigrateLegacyReports moves flat report files from the root of the
// reports directory into per-year subdirectories, the layout current
// runs produce. The year comes from the filename suffix
// ("alice_2025.html" moves to "2025/alice_2025.html"). Files without a
// recognizable year are left in place with a warning. Idempotent: a
// tree that is already organized is a no-op.
func MigrateLegacyReports(reportsDir string) (int, error) {
	entries, err := os.ReadDir(reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read reports directory: %w", err)
	}

	moved := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		// The index page lives at the root on purpose
		if entry.Name() == "index.html" {
			continue
		}

		year := yearFromFilename(entry.Name())
		if year == "" {
			logging.Warn().Str("file", entry.Name()).Msg("Cannot determine report year, leaving in place")
			continue
		}

		yearDir := filepath.Join(reportsDir, year)
		if err := os.MkdirAll(yearDir, 0o755); err != nil {
			return moved, fmt.Errorf("create year directory %s: %w", year, err)
		}

		src := filepath.Join(reportsDir, entry.Name())
		dst := filepath.Join(yearDir, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return moved, fmt.Errorf("move %s: %w", entry.Name(), err)
		}

		logging.Info().Str("file", entry.Name()).Str("year", year).Msg("Report migrated")
		moved++
	}

	return moved, nil
}

// yearFromFilename finds a 4-digit year among underscore-separated parts.
func yearFromFilename(filename string) string {
	base := strings.TrimSuffix(filename, ".html")
	for _, part := range strings.Split(base, "_") {
		if isYearName(part) {
			return part
		}
	}
	return ""
}
