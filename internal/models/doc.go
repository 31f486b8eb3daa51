// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Package models provides the data structures for the Wrapparr application.
//
// The package contains two kinds of types:
//
//   - The normalized watch-history event (WatchEvent) and the per-user
//     aggregate built from it (UserAggregate). These are the inputs to
//     the analytics engine.
//   - The derived statistic types (RankingEntry, BingeSession,
//     StreakRecord, ...) and the report envelope (UserReport) produced
//     by one report run and consumed by the HTML renderer.
//
// All derived types are recomputed from scratch on every run. Nothing in
// this package is persisted or shared across runs.
package models
