// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

/*
endpoints.go - Typed Tautulli API Endpoint Methods

This file provides the endpoint methods the report generator consumes:

  - GetHistory(): Paginated playback history for a date window
  - GetPlaysByHourOfDay(): Hourly activity chart
  - GetPlaysByTop10Platforms(): Platform usage chart
  - GetMetadata(): Per-item metadata (genres, thumb paths)
  - GetLibraries(): Library sections with item counts
  - GetLibraryMediaInfo(): Per-section record totals
  - GetUser(): User details including profile thumb
  - DownloadImage(): Raw poster bytes via pms_image_proxy

Time Range Parameters:
Chart methods accept a timeRange parameter (in days):
  - 0: All time
  - 30: Last month
  - 365: Last year

NOTE: History decoding uses encoding/json instead of go-json because
go-json produces "expected comma after object element" parsing errors
on large history responses (500+ records). All other endpoints return
small payloads and use the shared go-json helpers.
*/

//nolint:staticcheck // File documentation, not package doc
package tautulli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/wrapparr/wrapparr/internal/metrics"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

// GetHistory retrieves playback history for the window [after, before].
// Tautulli's after/before parameters are inclusive dates, so callers
// pass the window's first and last day directly.
func (c *TautulliClient) GetHistory(ctx context.Context, after, before time.Time, start, length int) (*tautulli.TautulliHistory, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("cmd", "get_history")
	params.Set("start", fmt.Sprintf("%d", start))
	params.Set("length", fmt.Sprintf("%d", length))
	params.Set("order_column", "started")
	params.Set("order_dir", "desc")
	// Tautulli API expects dates in "YYYY-MM-DD" format, not Unix timestamps
	params.Set("after", after.Format("2006-01-02"))
	params.Set("before", before.Format("2006-01-02"))
	// Disable session grouping to get individual playback records
	// Without this, Tautulli groups consecutive plays of the same content by the same user
	params.Set("grouping", "0")

	return c.doHistoryRequest(ctx, params)
}

// doHistoryRequest executes a get_history request and decodes the response
// with encoding/json (see file note on go-json and large payloads).
func (c *TautulliClient) doHistoryRequest(ctx context.Context, params url.Values) (*tautulli.TautulliHistory, error) {
	startTime := time.Now()
	reqURL := fmt.Sprintf("%s/api/v2?%s", c.baseURL, params.Encode())

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		metrics.APIRequestErrors.WithLabelValues("get_history").Inc()
		return nil, fmt.Errorf("failed to make history request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		metrics.APIRequestErrors.WithLabelValues("get_history").Inc()
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("history request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var history tautulli.TautulliHistory
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		metrics.APIRequestErrors.WithLabelValues("get_history").Inc()
		return nil, fmt.Errorf("failed to decode history response: %w", err)
	}

	if history.Response.Result != "success" {
		msg := "unknown error"
		if history.Response.Message != nil {
			msg = *history.Response.Message
		}
		metrics.APIRequestErrors.WithLabelValues("get_history").Inc()
		return nil, fmt.Errorf("history request failed: %s", msg)
	}

	metrics.APIRequestDuration.WithLabelValues("get_history").Observe(time.Since(startTime).Seconds())
	return &history, nil
}

// GetPlaysByHourOfDay retrieves playback data organized by hour of day
func (c *TautulliClient) GetPlaysByHourOfDay(ctx context.Context, timeRange int, yAxis string, userID int, grouping int) (*tautulli.TautulliPlaysByHourOfDay, error) {
	req := newAPIRequest("get_plays_by_hourofday")
	addTimeRangeParams(req, timeRange, yAxis, userID, grouping)

	return executeAPIRequest(ctx, c, req,
		func(r *tautulli.TautulliPlaysByHourOfDay) string { return r.Response.Result },
		func(r *tautulli.TautulliPlaysByHourOfDay) *string { return r.Response.Message },
	)
}

// GetPlaysByTop10Platforms retrieves top 10 platforms by play duration
func (c *TautulliClient) GetPlaysByTop10Platforms(ctx context.Context, timeRange int, yAxis string, userID int, grouping int) (*tautulli.TautulliPlaysByTop10Platforms, error) {
	req := newAPIRequest("get_plays_by_top_10_platforms")
	addTimeRangeParams(req, timeRange, yAxis, userID, grouping)

	return executeAPIRequest(ctx, c, req,
		func(r *tautulli.TautulliPlaysByTop10Platforms) string { return r.Response.Result },
		func(r *tautulli.TautulliPlaysByTop10Platforms) *string { return r.Response.Message },
	)
}

// GetMetadata retrieves full metadata for a media item by rating key
func (c *TautulliClient) GetMetadata(ctx context.Context, ratingKey string) (*tautulli.TautulliMetadata, error) {
	req := newAPIRequest("get_metadata").
		addParam("rating_key", ratingKey)

	return executeAPIRequest(ctx, c, req,
		func(r *tautulli.TautulliMetadata) string { return r.Response.Result },
		func(r *tautulli.TautulliMetadata) *string { return r.Response.Message },
	)
}

// GetLibraries retrieves all library sections with item counts
func (c *TautulliClient) GetLibraries(ctx context.Context) (*tautulli.TautulliLibraries, error) {
	req := newAPIRequest("get_libraries")

	return executeAPIRequest(ctx, c, req,
		func(r *tautulli.TautulliLibraries) string { return r.Response.Result },
		func(r *tautulli.TautulliLibraries) *string { return r.Response.Message },
	)
}

// GetLibraryMediaInfo retrieves media info record totals for a library section.
// Only the record counts are consumed, so length is kept minimal.
func (c *TautulliClient) GetLibraryMediaInfo(ctx context.Context, sectionID int, start, length int) (*tautulli.TautulliLibraryMediaInfo, error) {
	req := newAPIRequest("get_library_media_info").
		addIntParam("section_id", sectionID).
		addIntParamZero("start", start).
		addIntParam("length", length)

	return executeAPIRequest(ctx, c, req,
		func(r *tautulli.TautulliLibraryMediaInfo) string { return r.Response.Result },
		func(r *tautulli.TautulliLibraryMediaInfo) *string { return r.Response.Message },
	)
}

// GetUser retrieves user details by user ID
func (c *TautulliClient) GetUser(ctx context.Context, userID int) (*tautulli.TautulliUser, error) {
	req := newAPIRequest("get_user").
		addIntParam("user_id", userID)

	return executeAPIRequest(ctx, c, req,
		func(r *tautulli.TautulliUser) string { return r.Response.Result },
		func(r *tautulli.TautulliUser) *string { return r.Response.Message },
	)
}

// DownloadImage fetches raw poster bytes through Tautulli's pms_image_proxy
// endpoint. img is a Plex path like "/library/metadata/123/thumb/456" and
// width constrains the proxied image size server-side.
func (c *TautulliClient) DownloadImage(ctx context.Context, img string, width int) ([]byte, error) {
	startTime := time.Now()
	reqURL := newAPIRequest("pms_image_proxy").
		addParam("img", img).
		addIntParam("width", width).
		buildURL(c.baseURL, c.apiKey)

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		metrics.APIRequestErrors.WithLabelValues("pms_image_proxy").Inc()
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		metrics.APIRequestErrors.WithLabelValues("pms_image_proxy").Inc()
		return nil, fmt.Errorf("image request failed with status %d", resp.StatusCode)
	}

	data, err := readAllImage(resp)
	if err != nil {
		metrics.APIRequestErrors.WithLabelValues("pms_image_proxy").Inc()
		return nil, err
	}

	metrics.APIRequestDuration.WithLabelValues("pms_image_proxy").Observe(time.Since(startTime).Seconds())
	return data, nil
}

// addTimeRangeParams adds time_range, y_axis, user_id, and grouping parameters
func addTimeRangeParams(req *apiRequest, timeRange int, yAxis string, userID int, grouping int) {
	req.addIntParam("time_range", timeRange)
	req.addParam("y_axis", yAxis)
	req.addIntParam("user_id", userID)
	req.addIntParamZero("grouping", grouping)
}
