// Package imagecache serves catalog artwork, optionally resized, backed by
// an on-disk JPEG cache. Cache entries are keyed by source path, target
// width and file mtime, so replacing an artwork file naturally invalidates
// its resized variants.
package imagecache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/vmunix/medley/internal/metrics"
)

const jpegQuality = 85

// Cache resizes artwork on demand and remembers the results on disk.
type Cache struct {
	dir    string
	logger *slog.Logger
	mu     sync.Mutex
}

// New creates a cache writing to dir. An empty dir disables resizing;
// callers should serve originals instead.
func New(dir string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "imagecache")
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Warn("failed to create image cache dir, serving originals", "dir", dir, "error", err)
			dir = ""
		}
	}
	return &Cache{dir: dir, logger: logger}
}

// Enabled reports whether resizing is available.
func (c *Cache) Enabled() bool {
	return c != nil && c.dir != ""
}

// Get returns the image at path scaled down to width, as JPEG bytes plus
// their content type. Widths at or above the original hand back the
// original file untouched; images are never upscaled.
func (c *Cache) Get(ctx context.Context, path string, width int) ([]byte, string, error) {
	if !c.Enabled() {
		return nil, "", ErrDisabled
	}
	if width <= 0 {
		return nil, "", fmt.Errorf("width must be positive, got %d", width)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	cachePath := filepath.Join(c.dir, cacheKey(path, width, info.ModTime()))
	if data, err := os.ReadFile(cachePath); err == nil {
		metrics.ImageCacheHits.Inc()
		return data, "image/jpeg", nil
	}
	metrics.ImageCacheMisses.Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another request may have produced it while we waited on the lock.
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, "image/jpeg", nil
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}

	if width >= img.Bounds().Dx() {
		return data, http.DetectContentType(data), nil
	}

	resized := imaging.Resize(img, width, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode %s: %w", path, err)
	}
	metrics.ImageResizeDuration.Observe(time.Since(start).Seconds())

	if err := os.WriteFile(cachePath, buf.Bytes(), 0644); err != nil {
		c.logger.Warn("failed to cache resized image", "path", cachePath, "error", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

func cacheKey(path string, width int, mtime time.Time) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d", path, width, mtime.UnixNano()))
	return fmt.Sprintf("%x.jpg", h)
}
