// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package thumbnails

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxPlexImageSize bounds a single poster download.
const maxPlexImageSize = 10 * 1024 * 1024

// plexFetcher downloads posters straight from a Plex Media Server using
// its photo transcode endpoint, which resizes server-side.
type plexFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

func newPlexFetcher(baseURL, token string) *plexFetcher {
	return &plexFetcher{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// imageURL builds the transcode URL for a Plex thumb path.
func (p *plexFetcher) imageURL(thumb string, width int) string {
	params := url.Values{}
	params.Set("width", fmt.Sprintf("%d", width))
	params.Set("height", fmt.Sprintf("%d", width*3/2)) // Poster aspect ratio 2:3
	params.Set("minSize", "1")
	params.Set("url", thumb)
	params.Set("X-Plex-Token", p.token)
	return fmt.Sprintf("%s/photo/:/transcode?%s", p.baseURL, params.Encode())
}

func (p *plexFetcher) fetch(ctx context.Context, thumb string, width int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.imageURL(thumb, width), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("plex returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPlexImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) > maxPlexImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxPlexImageSize)
	}
	return data, nil
}
