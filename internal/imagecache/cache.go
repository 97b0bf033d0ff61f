// Package imagecache caches decoded images and pre-scaled thumbnails
// keyed by file path, so repeated display does not re-read disk.
package imagecache

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type thumbKey struct {
	path string
	w, h int
}

// Cache holds decoded images and thumbnails for the session. Entries are
// created lazily on first display and only removed by Invalidate or
// PruneUnreferenced; there is no eviction policy.
type Cache struct {
	decoded map[string]image.Image
	thumbs  map[thumbKey]image.Image
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		decoded: make(map[string]image.Image),
		thumbs:  make(map[thumbKey]image.Image),
	}
}

// GetOrLoad returns the cached decoded image for path, decoding from disk
// on first use. Decode failures are returned and never cached.
func (c *Cache) GetOrLoad(path string) (image.Image, error) {
	if img, ok := c.decoded[path]; ok {
		return img, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filepath.Base(path), err)
	}

	c.decoded[path] = img
	return img, nil
}

// Thumbnail returns a display-ready downscaled rendering of the image at
// path, at most maxW x maxH, preserving aspect ratio. Thumbnails are
// cached separately from the full decoded image.
func (c *Cache) Thumbnail(path string, maxW, maxH int) (image.Image, error) {
	key := thumbKey{path: path, w: maxW, h: maxH}
	if thumb, ok := c.thumbs[key]; ok {
		return thumb, nil
	}

	src, err := c.GetOrLoad(path)
	if err != nil {
		return nil, err
	}

	thumb := Scale(src, maxW, maxH)
	c.thumbs[key] = thumb
	return thumb, nil
}

// Invalidate removes both cache entries for a path.
func (c *Cache) Invalidate(path string) {
	delete(c.decoded, path)
	for key := range c.thumbs {
		if key.path == path {
			delete(c.thumbs, key)
		}
	}
}

// PruneUnreferenced drops entries for paths not present in referenced.
// Paths still referenced by any item keep their entries.
func (c *Cache) PruneUnreferenced(referenced map[string]bool) {
	for path := range c.decoded {
		if !referenced[path] {
			delete(c.decoded, path)
		}
	}
	for key := range c.thumbs {
		if !referenced[key.path] {
			delete(c.thumbs, key)
		}
	}
}

// Len reports the number of decoded images held.
func (c *Cache) Len() int {
	return len(c.decoded)
}

// Contains reports whether a decoded image for path is cached.
func (c *Cache) Contains(path string) bool {
	_, ok := c.decoded[path]
	return ok
}

// FitBox returns the dimensions of an image of size w x h scaled to fit
// within maxW x maxH while preserving aspect ratio. Images already inside
// the box are not enlarged.
func FitBox(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := float64(w) / float64(h)
	fitW, fitH := maxW, int(float64(maxW)/ratio)
	if fitH > maxH {
		fitH = maxH
		fitW = int(float64(maxH) * ratio)
	}
	if fitW < 1 {
		fitW = 1
	}
	if fitH < 1 {
		fitH = 1
	}
	return fitW, fitH
}

// Scale resamples src to fit within maxW x maxH.
func Scale(src image.Image, maxW, maxH int) image.Image {
	bounds := src.Bounds()
	w, h := FitBox(bounds.Dx(), bounds.Dy(), maxW, maxH)
	if w == bounds.Dx() && h == bounds.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// SupportedFormats returns the image extensions the cache can decode.
func SupportedFormats() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
