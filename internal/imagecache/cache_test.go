package imagecache

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestPNG writes a solid-color PNG of the given size and returns its path.
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0x58, G: 0xA6, B: 0xFF, A: 0xFF})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestGetOrLoadCaches(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "photo.png", 40, 30)

	c := New()
	img, err := c.GetOrLoad(path)
	require.NoError(t, err)
	require.Equal(t, 40, img.Bounds().Dx())
	require.True(t, c.Contains(path))

	// Second load is served from the cache even if the file disappears.
	require.NoError(t, os.Remove(path))
	again, err := c.GetOrLoad(path)
	require.NoError(t, err)
	require.Equal(t, img, again)
}

func TestGetOrLoadErrorsAreNotCached(t *testing.T) {
	dir := t.TempDir()
	c := New()

	_, err := c.GetOrLoad(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	require.Zero(t, c.Len())

	// Not a valid image.
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = c.GetOrLoad(bad)
	require.Error(t, err)
	require.False(t, c.Contains(bad))
}

func TestThumbnailScalesDown(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "large.png", 400, 300)

	c := New()
	thumb, err := c.Thumbnail(path, 100, 100)
	require.NoError(t, err)
	require.Equal(t, 100, thumb.Bounds().Dx())
	require.Equal(t, 75, thumb.Bounds().Dy())

	// Cached: same object on the second request.
	again, err := c.Thumbnail(path, 100, 100)
	require.NoError(t, err)
	require.Equal(t, thumb, again)
}

func TestThumbnailDoesNotEnlarge(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "small.png", 20, 10)

	c := New()
	thumb, err := c.Thumbnail(path, 100, 100)
	require.NoError(t, err)
	require.Equal(t, 20, thumb.Bounds().Dx())
	require.Equal(t, 10, thumb.Bounds().Dy())
}

func TestInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "photo.png", 40, 30)

	c := New()
	_, err := c.Thumbnail(path, 16, 16)
	require.NoError(t, err)
	require.True(t, c.Contains(path))

	c.Invalidate(path)
	require.False(t, c.Contains(path))
	require.Zero(t, c.Len())
}

func TestPruneUnreferenced(t *testing.T) {
	dir := t.TempDir()
	kept := writeTestPNG(t, dir, "kept.png", 10, 10)
	dropped := writeTestPNG(t, dir, "dropped.png", 10, 10)

	c := New()
	for _, p := range []string{kept, dropped} {
		_, err := c.Thumbnail(p, 8, 8)
		require.NoError(t, err)
	}

	c.PruneUnreferenced(map[string]bool{kept: true})
	require.True(t, c.Contains(kept))
	require.False(t, c.Contains(dropped))
}

func TestFitBox(t *testing.T) {
	tests := []struct {
		name             string
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{"wide", 400, 200, 100, 100, 100, 50},
		{"tall", 200, 400, 100, 100, 50, 100},
		{"fits already", 50, 40, 100, 100, 50, 40},
		{"square", 300, 300, 100, 100, 100, 100},
		{"degenerate", 0, 10, 100, 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := FitBox(tt.w, tt.h, tt.maxW, tt.maxH)
			require.Equal(t, tt.wantW, gotW)
			require.Equal(t, tt.wantH, gotH)
		})
	}
}

func TestIsSupportedFormat(t *testing.T) {
	require.True(t, IsSupportedFormat("/a/b/photo.JPG"))
	require.True(t, IsSupportedFormat("scan.tiff"))
	require.True(t, IsSupportedFormat("x.webp"))
	require.False(t, IsSupportedFormat("doc.pdf"))
	require.False(t, IsSupportedFormat("noext"))
}
