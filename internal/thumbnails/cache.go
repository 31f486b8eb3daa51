// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Package thumbnails maintains an on-disk cache of poster images fetched
// through the Tautulli image proxy. Images are downscaled to a fixed
// maximum width before caching so report pages stay lightweight.
//
// Resolution is best effort throughout: any metadata lookup, download,
// or decode failure yields an empty path and a counter increment, never
// an error that could abort report generation.
package thumbnails

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Tautulli proxies some posters as PNG
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/wrapparr/wrapparr/internal/config"
	"github.com/wrapparr/wrapparr/internal/logging"
	"github.com/wrapparr/wrapparr/internal/metrics"
	"github.com/wrapparr/wrapparr/internal/models/tautulli"
)

const (
	// minValidSize guards against cached Tautulli error pages and
	// placeholder images, which come in well under 5KB.
	minValidSize = 5000

	defaultMaxWidth = 300
	jpegQuality     = 85
)

// ImageSource provides poster paths and image bytes. Both
// tautulli.TautulliClient and tautulli.CircuitBreakerClient satisfy it.
type ImageSource interface {
	GetMetadata(ctx context.Context, ratingKey string) (*tautulli.TautulliMetadata, error)
	DownloadImage(ctx context.Context, img string, width int) ([]byte, error)
}

// Cache is an on-disk thumbnail store keyed by rating key.
// It implements analytics.ThumbnailResolver.
type Cache struct {
	dir      string
	source   ImageSource
	plex     *plexFetcher
	maxWidth int
}

// NewCache creates the cache directory if needed. plex is optional;
// when unset, downloads go through the Tautulli image proxy instead of
// straight to the Plex server.
func NewCache(dir string, source ImageSource, plex *config.PlexConfig) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail directory: %w", err)
	}
	c := &Cache{dir: dir, source: source, maxWidth: defaultMaxWidth}
	if plex != nil && plex.URL != "" && plex.Token != "" {
		c.plex = newPlexFetcher(plex.URL, plex.Token)
	}
	return c, nil
}

// Resolve returns the on-disk path of the thumbnail for ratingKey,
// downloading and caching it if necessary. thumb is the Plex image path
// when the caller already knows it; when empty it is looked up from the
// item's metadata. Returns "" on any failure.
func (c *Cache) Resolve(ctx context.Context, ratingKey, thumb string) string {
	if ratingKey == "" {
		return ""
	}

	path := filepath.Join(c.dir, ratingKey+".jpg")
	if fi, err := os.Stat(path); err == nil && fi.Size() >= minValidSize {
		metrics.ThumbnailCacheHits.Inc()
		return path
	}
	metrics.ThumbnailCacheMisses.Inc()

	if thumb == "" {
		var err error
		thumb, err = c.lookupThumb(ctx, ratingKey)
		if err != nil || thumb == "" {
			if err != nil {
				logging.Debug().Err(err).Str("rating_key", ratingKey).Msg("Thumbnail metadata lookup failed")
			}
			return ""
		}
	}

	data, err := c.download(ctx, thumb)
	if err != nil {
		metrics.ThumbnailDownloadErrors.Inc()
		logging.Warn().Err(err).Str("rating_key", ratingKey).Msg("Thumbnail download failed")
		return ""
	}

	// The image proxy usually honors the width parameter, but downscale
	// locally when it doesn't.
	if shrunk, err := shrinkImage(data, c.maxWidth); err == nil {
		data = shrunk
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Thumbnail write failed")
		return ""
	}
	return path
}

// download fetches the image, preferring the direct Plex transcode
// endpoint when configured.
func (c *Cache) download(ctx context.Context, thumb string) ([]byte, error) {
	if c.plex != nil {
		return c.plex.fetch(ctx, thumb, c.maxWidth)
	}
	return c.source.DownloadImage(ctx, thumb, c.maxWidth)
}

// lookupThumb picks the poster path for a rating key. Episodes use the
// series poster so a binged show gets one recognizable image.
func (c *Cache) lookupThumb(ctx context.Context, ratingKey string) (string, error) {
	meta, err := c.source.GetMetadata(ctx, ratingKey)
	if err != nil {
		return "", err
	}
	data := meta.Response.Data
	if data.GrandparentThumb != "" {
		return data.GrandparentThumb, nil
	}
	return data.Thumb, nil
}

// Optimize re-encodes every cached thumbnail wider than the cache limit
// and removes files too small to be real images. Returns the number of
// files rewritten or removed.
func (c *Cache) Optimize(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("read thumbnail directory: %w", err)
	}

	changed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jpg") {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())

		fi, err := entry.Info()
		if err != nil {
			continue
		}
		if fi.Size() < minValidSize {
			if err := os.Remove(path); err == nil {
				logging.Debug().Str("path", path).Msg("Removed undersized thumbnail")
				changed++
			}
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil || cfg.Width <= c.maxWidth {
			continue
		}

		shrunk, err := shrinkImage(data, c.maxWidth)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Thumbnail re-encode failed")
			continue
		}
		if err := os.WriteFile(path, shrunk, 0o644); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Thumbnail rewrite failed")
			continue
		}
		changed++
	}
	return changed, nil
}

// shrinkImage decodes data and scales it down to maxWidth, preserving
// aspect ratio. Images already within bounds are re-encoded as JPEG
// unchanged in size.
func shrinkImage(data []byte, maxWidth int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxWidth {
		height := bounds.Dy() * maxWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
