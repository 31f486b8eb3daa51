// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Package render turns assembled report data into static HTML pages.
//
// Pages are rendered through Go's html/template so all user-supplied
// strings (usernames, titles) are escaped automatically. Styles are
// inlined into each page so a report file is self-contained and can be
// opened straight from disk; only thumbnails are referenced relatively.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/wrapparr/wrapparr/internal/analytics"
	"github.com/wrapparr/wrapparr/internal/logging"
	"github.com/wrapparr/wrapparr/internal/models"
	"github.com/wrapparr/wrapparr/internal/report"
)

// Renderer writes report and index pages under the reports directory.
// It implements report.Renderer.
type Renderer struct {
	reportsDir string
	reportTmpl *template.Template
	indexTmpl  *template.Template
}

// NewRenderer parses the built-in templates and returns a renderer that
// writes into reportsDir.
func NewRenderer(reportsDir string) (*Renderer, error) {
	funcs := buildFuncMap()

	reportTmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	indexTmpl, err := template.New("index").Funcs(funcs).Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	return &Renderer{
		reportsDir: reportsDir,
		reportTmpl: reportTmpl,
		indexTmpl:  indexTmpl,
	}, nil
}

// buildFuncMap creates the template function map.
func buildFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatHours": func(hours float64) string {
			if hours < 1 {
				return fmt.Sprintf("%d min", int(hours*60))
			}
			h := int(hours)
			m := int((hours - float64(h)) * 60)
			if m > 0 {
				return fmt.Sprintf("%d hr %d min", h, m)
			}
			return fmt.Sprintf("%d hr", h)
		},
		"formatPercent": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f)
		},
		"formatSeconds": analytics.FormatDuration,
		"formatFloat": func(f float64) string {
			return fmt.Sprintf("%.1f", f)
		},
		"basename": filepath.Base,
		"add":      func(a, b int) int { return a + b },
	}
}

// reportPage is the data handed to the report template.
type reportPage struct {
	*models.UserReport
	ThumbsPath  string // Relative path from the page to the thumbnails dir
	GeneratedAt string
}

// indexPage is the data handed to the index template.
type indexPage struct {
	report.IndexData
	GeneratedAt string
}

// RenderUserReport writes one report page and returns the written path.
//
// Layout: yearly reports land in <dir>/<year>/<user>_<year>.html,
// monthly ones in <dir>/<year>/<month>/<user>_<month>.html.
func (r *Renderer) RenderUserReport(rep *models.UserReport, period report.Period) (string, error) {
	suffix := period.FileSuffix()
	filename := fmt.Sprintf("%s_%s.html", slugify(rep.User), suffix)

	var outDir, thumbsPath string
	if period.Type == report.PeriodMonthly {
		outDir = filepath.Join(r.reportsDir, fmt.Sprintf("%d", period.Year), period.MonthDir())
		thumbsPath = "../../../thumbnails"
	} else {
		outDir = filepath.Join(r.reportsDir, fmt.Sprintf("%d", period.Year))
		thumbsPath = "../../thumbnails"
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	page := reportPage{
		UserReport:  rep,
		ThumbsPath:  thumbsPath,
		GeneratedAt: time.Now().UTC().Format("January 2, 2006"),
	}

	var buf bytes.Buffer
	if err := r.reportTmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("render report for %s: %w", rep.User, err)
	}

	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	logging.Debug().Str("path", path).Msg("Report page written")
	return path, nil
}

// RenderIndex writes the index page at the root of the reports directory.
func (r *Renderer) RenderIndex(index report.IndexData) error {
	page := indexPage{
		IndexData:   index,
		GeneratedAt: time.Now().UTC().Format("January 2, 2006 15:04 UTC"),
	}

	var buf bytes.Buffer
	if err := r.indexTmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("render index: %w", err)
	}

	if err := os.MkdirAll(r.reportsDir, 0o755); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}
	path := filepath.Join(r.reportsDir, "index.html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	logging.Debug().Str("path", path).Msg("Index page written")
	return nil
}

// slugify converts a username into a safe filename fragment: lowercase,
// spaces to underscores, and everything that is not a letter, digit,
// underscore, or hyphen dropped. Path separators and dots never survive,
// so a hostile name cannot escape the reports directory.
func slugify(user string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(user) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
