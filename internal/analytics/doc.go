// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Package analytics computes every derived statistic that appears in a
// wrapped report: rankings, watch streaks, binge sessions, peak hours,
// platform breakdown, first/last watch, genre diversity, library
// coverage, unique content, and top watched items.
//
// Statistics that need only the event list are pure package-level
// functions. Statistics that consult Tautulli (charts, metadata,
// library sizes) are methods on Engine, which holds narrow source
// interfaces so tests can substitute fakes.
//
// Failure isolation is the caller's job: every operation either
// succeeds or returns an error for that one statistic, and the report
// assembler substitutes a zero value rather than aborting the run.
// Per-item lookup failures inside genre and thumbnail resolution are
// swallowed here, by contract.
package analytics
