// Package imagemeta extracts photo metadata from image files.
package imagemeta

import (
	"errors"
	"os"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
)

// ErrNoCaptureTime is returned when an image carries no usable EXIF
// timestamp.
var ErrNoCaptureTime = errors.New("no capture time in image metadata")

// exifTimeLayout is the timestamp format EXIF mandates.
const exifTimeLayout = "2006:01:02 15:04:05"

// CaptureTime returns the time the photo at path was taken, from its
// EXIF DateTimeOriginal tag (falling back to DateTimeDigitized and then
// DateTime). Best effort: any parse or read failure means "unknown".
func CaptureTime(path string) (time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, err
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return time.Time{}, ErrNoCaptureTime
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return time.Time{}, ErrNoCaptureTime
	}

	// In preference order.
	candidates := map[string]string{}
	for _, entry := range entries {
		switch entry.TagName {
		case "DateTimeOriginal", "DateTimeDigitized", "DateTime":
			candidates[entry.TagName] = entry.Formatted
		}
	}

	for _, tag := range []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"} {
		raw, ok := candidates[tag]
		if !ok {
			continue
		}
		if ts, err := time.ParseInLocation(exifTimeLayout, raw, time.Local); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, ErrNoCaptureTime
}
