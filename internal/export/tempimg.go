package export

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/yuniancong/repair-report-tool/internal/imagecache"
)

// jpegQuality for staged embed images. Matches photographic content well
// while keeping document sizes sane.
const jpegQuality = 92

// stager loads source photos through a cache, scales them to the embed
// size, and writes them to uniquely named temp files that live only for
// the duration of one export.
type stager struct {
	cache *imagecache.Cache
	files []string
}

func newStager() *stager {
	return &stager{cache: imagecache.New()}
}

// stage decodes the image at src, scales it to fit maxW x maxH pixels,
// and writes it to a temp file in the requested format ("png" or
// "jpeg"). Returns the temp path and the scaled pixel dimensions.
func (s *stager) stage(src string, maxW, maxH int, format string) (string, int, int, error) {
	img, err := s.cache.GetOrLoad(src)
	if err != nil {
		return "", 0, 0, err
	}

	scaled := imagecache.Scale(img, maxW, maxH)
	bounds := scaled.Bounds()

	ext := ".png"
	if format == "jpeg" {
		ext = ".jpg"
	}
	path := filepath.Join(os.TempDir(), "repair_report_"+uuid.NewString()+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, 0, fmt.Errorf("stage image: %w", err)
	}
	defer f.Close()

	switch format {
	case "jpeg":
		err = jpeg.Encode(f, toRGBA(scaled), &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(f, scaled)
	}
	if err != nil {
		os.Remove(path)
		return "", 0, 0, fmt.Errorf("stage image: %w", err)
	}

	s.files = append(s.files, path)
	return path, bounds.Dx(), bounds.Dy(), nil
}

// cleanup removes every staged file. Safe to call multiple times.
func (s *stager) cleanup() {
	for _, path := range s.files {
		os.Remove(path)
	}
	s.files = nil
}

// toRGBA flattens any decoded image into RGBA so the JPEG encoder never
// sees an alpha-only or paletted source.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return rgba
}
