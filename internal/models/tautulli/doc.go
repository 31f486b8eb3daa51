// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Package tautulli contains typed response structures for the Tautulli
// API v2 endpoints Wrapparr consumes.
//
// Every endpoint wraps its payload in a common envelope:
//
//	{"response": {"result": "success", "message": null, "data": ...}}
//
// so each top-level type here follows the same three-layer pattern:
// TautulliX -> TautulliXResponse (Result/Message) -> data payload.
//
// Fields that Tautulli serializes as JSON null are declared as pointers so
// null and zero can be told apart; plain values use value types.
package tautulli
