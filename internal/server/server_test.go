// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wrapparr/wrapparr/internal/config"
)

func newTestServer(t *testing.T, cfg *config.ServerConfig) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>reports</html>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return New(cfg, dir), dir
}

func TestServerRoutes(t *testing.T) {
	t.Parallel()

	t.Run("serves the report index at the root", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t, &config.ServerConfig{Port: 8080})
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "reports") {
			t.Error("response missing index content")
		}
	})

	t.Run("serves nested report files", func(t *testing.T) {
		t.Parallel()

		srv, dir := newTestServer(t, &config.ServerConfig{Port: 8080})
		sub := filepath.Join(dir, "2026")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(sub, "alice_2026.html"), []byte("wrapped"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/2026/alice_2026.html", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if rec.Body.String() != "wrapped" {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("health endpoint responds ok", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t, &config.ServerConfig{Port: 8080})
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("metrics endpoint is exposed", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t, &config.ServerConfig{Port: 8080})
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "go_goroutines") {
			t.Error("metrics output missing standard collectors")
		}
	})

	t.Run("rate limit rejects once exhausted", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t, &config.ServerConfig{
			Port:            8080,
			RateLimitReqs:   2,
			RateLimitWindow: time.Minute,
		})

		var last int
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.1.2.3:5000"
			srv.Handler().ServeHTTP(rec, req)
			last = rec.Code
		}
		if last != http.StatusTooManyRequests {
			t.Errorf("third request status = %d, want 429", last)
		}
	})

	t.Run("cors headers on allowed origin", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t, &config.ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"https://dash.example.com"},
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://dash.example.com")
		srv.Handler().ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})
}
