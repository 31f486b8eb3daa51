// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package tautulli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wrapparr/wrapparr/internal/config"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

func newTestClient(serverURL string) *TautulliClient {
	return NewClient(&config.TautulliConfig{
		URL:     serverURL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	})
}

// TestReadBodyForError tests the utility function that reads response body for error reporting
func TestReadBodyForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal body content",
			input:    "error message body",
			expected: "error message body",
		},
		{
			name:     "empty body",
			input:    "",
			expected: "",
		},
		{
			name:     "JSON error response",
			input:    `{"error": "something went wrong"}`,
			expected: `{"error": "something went wrong"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := readBodyForError(strings.NewReader(tt.input))
			if string(result) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(result))
			}
		})
	}

	t.Run("oversized body is truncated", func(t *testing.T) {
		huge := strings.Repeat("x", maxErrorBodySize+1000)
		result := string(readBodyForError(strings.NewReader(huge)))
		if !strings.HasSuffix(result, "... (truncated)") {
			t.Error("oversized body should be marked as truncated")
		}
		if len(result) > maxErrorBodySize+100 {
			t.Errorf("truncated body too large: %d bytes", len(result))
		}
	})
}

func TestAPIRequestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("new request has command and empty params", func(t *testing.T) {
		req := newAPIRequest("get_history")
		if req.cmd != "get_history" {
			t.Errorf("cmd: expected get_history, got %s", req.cmd)
		}
		if len(req.params) != 0 {
			t.Errorf("params should be empty, got %d items", len(req.params))
		}
	})

	t.Run("addParam skips empty values", func(t *testing.T) {
		req := newAPIRequest("get_metadata").
			addParam("rating_key", "123").
			addParam("skipped", "")

		if req.params["rating_key"] != "123" {
			t.Errorf("rating_key: expected 123, got %s", req.params["rating_key"])
		}
		if _, exists := req.params["skipped"]; exists {
			t.Error("empty param should not be set")
		}
	})

	t.Run("addIntParam skips zero", func(t *testing.T) {
		req := newAPIRequest("get_user").
			addIntParam("user_id", 42).
			addIntParam("zero", 0)

		if req.params["user_id"] != "42" {
			t.Errorf("user_id: expected 42, got %s", req.params["user_id"])
		}
		if _, exists := req.params["zero"]; exists {
			t.Error("zero int param should not be set")
		}
	})

	t.Run("addIntParamZero keeps zero", func(t *testing.T) {
		req := newAPIRequest("get_history").addIntParamZero("grouping", 0)
		if req.params["grouping"] != "0" {
			t.Errorf("grouping: expected 0, got %s", req.params["grouping"])
		}
	})

	t.Run("buildURL includes apikey and cmd", func(t *testing.T) {
		reqURL := newAPIRequest("get_libraries").buildURL("http://tautulli:8181", "secret")

		parsed, err := url.Parse(reqURL)
		if err != nil {
			t.Fatalf("buildURL produced invalid URL: %v", err)
		}
		q := parsed.Query()
		if q.Get("apikey") != "secret" {
			t.Errorf("apikey: expected secret, got %s", q.Get("apikey"))
		}
		if q.Get("cmd") != "get_libraries" {
			t.Errorf("cmd: expected get_libraries, got %s", q.Get("cmd"))
		}
		if parsed.Path != "/api/v2" {
			t.Errorf("path: expected /api/v2, got %s", parsed.Path)
		}
	})
}

func TestGetHistory(t *testing.T) {
	t.Parallel()

	t.Run("successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("cmd") != "get_history" {
				t.Errorf("cmd: expected get_history, got %s", q.Get("cmd"))
			}
			if q.Get("grouping") != "0" {
				t.Error("session grouping should be disabled")
			}
			if q.Get("after") != "2025-01-01" {
				t.Errorf("after: expected 2025-01-01, got %s", q.Get("after"))
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"response":{"result":"success","data":{"recordsFiltered":1,"recordsTotal":1,"data":[{"date":1735729200,"user":"alice","user_id":7,"media_type":"movie","title":"Heat","full_title":"Heat","rating_key":100,"play_duration":5400,"platform":"Roku"}]}}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		after := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		history, err := client.GetHistory(context.Background(), after, before, 0, 1000)
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		if len(history.Response.Data.Data) != 1 {
			t.Fatalf("expected 1 record, got %d", len(history.Response.Data.Data))
		}
		rec := history.Response.Data.Data[0]
		if rec.User != "alice" {
			t.Errorf("user: expected alice, got %s", rec.User)
		}
		if rec.PlayDuration == nil || *rec.PlayDuration != 5400 {
			t.Error("play_duration should decode to 5400")
		}
	})

	t.Run("error result surfaces message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":{"result":"error","message":"Invalid apikey"}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GetHistory(context.Background(), time.Now(), time.Now(), 0, 10)
		if err == nil {
			t.Fatal("expected error for failed result")
		}
		if !strings.Contains(err.Error(), "Invalid apikey") {
			t.Errorf("error should carry API message, got: %v", err)
		}
	})

	t.Run("non-200 status returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GetHistory(context.Background(), time.Now(), time.Now(), 0, 10)
		if err == nil {
			t.Fatal("expected error for HTTP 500")
		}
	})
}

func TestRateLimitRetry(t *testing.T) {
	t.Parallel()

	t.Run("retries after 429 and succeeds", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		client.retryBaseDelay = time.Millisecond

		if err := client.Ping(context.Background()); err != nil {
			t.Fatalf("Ping should succeed after retry: %v", err)
		}
		if calls.Load() != 2 {
			t.Errorf("expected 2 attempts, got %d", calls.Load())
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		client.retryBaseDelay = time.Millisecond

		err := client.Ping(context.Background())
		if err == nil {
			t.Fatal("expected error after exhausting retries")
		}
		if !strings.Contains(err.Error(), "rate limit exceeded") {
			t.Errorf("unexpected error: %v", err)
		}
		if got := calls.Load(); got != int32(client.maxRetries)+1 {
			t.Errorf("expected %d attempts, got %d", client.maxRetries+1, got)
		}
	})

	t.Run("context cancellation stops backoff wait", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		client.retryBaseDelay = 10 * time.Second

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := client.Ping(ctx)
		if err == nil {
			t.Fatal("expected context error")
		}
	})
}

func TestGetMetadata(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("rating_key") != "2525" {
			t.Errorf("rating_key: expected 2525, got %s", r.URL.Query().Get("rating_key"))
		}
		_, _ = w.Write([]byte(`{"response":{"result":"success","data":{"rating_key":"2525","media_type":"show","title":"The Wire","thumb":"/library/metadata/2525/thumb/1","genres":["Crime","Drama"]}}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	meta, err := client.GetMetadata(context.Background(), "2525")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}

	if meta.Response.Data.Title != "The Wire" {
		t.Errorf("title: expected The Wire, got %s", meta.Response.Data.Title)
	}
	if len(meta.Response.Data.Genres) != 2 {
		t.Errorf("expected 2 genres, got %d", len(meta.Response.Data.Genres))
	}
}

func TestGetLibraries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"result":"success","data":[{"section_id":1,"section_name":"Movies","section_type":"movie","count":812,"is_active":1},{"section_id":2,"section_name":"TV Shows","section_type":"show","count":145,"is_active":1}]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	libs, err := client.GetLibraries(context.Background())
	if err != nil {
		t.Fatalf("GetLibraries failed: %v", err)
	}

	if len(libs.Response.Data) != 2 {
		t.Fatalf("expected 2 libraries, got %d", len(libs.Response.Data))
	}
	if libs.Response.Data[0].SectionType != "movie" {
		t.Errorf("section_type: expected movie, got %s", libs.Response.Data[0].SectionType)
	}
}

func TestGetPlaysByHourOfDay(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("y_axis") != "duration" {
			t.Errorf("y_axis: expected duration, got %s", q.Get("y_axis"))
		}
		if q.Get("user_id") != "7" {
			t.Errorf("user_id: expected 7, got %s", q.Get("user_id"))
		}
		_, _ = w.Write([]byte(`{"response":{"result":"success","data":{"categories":["00","01","02"],"series":[{"name":"Movies","data":[0,3600,7200]},{"name":"TV","data":[120.5,0,60]}]}}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	chart, err := client.GetPlaysByHourOfDay(context.Background(), 365, "duration", 7, 0)
	if err != nil {
		t.Fatalf("GetPlaysByHourOfDay failed: %v", err)
	}

	if len(chart.Response.Data.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(chart.Response.Data.Series))
	}
	// Float values must normalize to whole seconds
	if got := tautulli.SeriesValue(chart.Response.Data.Series[1].Data[0]); got != 120 {
		t.Errorf("float series value: expected 120, got %d", got)
	}
}

func TestDownloadImage(t *testing.T) {
	t.Parallel()

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10} // JPEG magic prefix
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("cmd") != "pms_image_proxy" {
			t.Errorf("cmd: expected pms_image_proxy, got %s", q.Get("cmd"))
		}
		if q.Get("img") != "/library/metadata/100/thumb/1" {
			t.Errorf("unexpected img param: %s", q.Get("img"))
		}
		if q.Get("width") != "300" {
			t.Errorf("width: expected 300, got %s", q.Get("width"))
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	data, err := client.DownloadImage(context.Background(), "/library/metadata/100/thumb/1", 300)
	if err != nil {
		t.Fatalf("DownloadImage failed: %v", err)
	}
	if len(data) != len(payload) {
		t.Errorf("expected %d bytes, got %d", len(payload), len(data))
	}
}
