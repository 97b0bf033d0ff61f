package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrBadFormat is returned when a project file does not match the
// expected JSON shape.
var ErrBadFormat = errors.New("invalid project file format")

// projectFile mirrors the on-disk JSON. Items is kept raw so a missing
// key can be told apart from an empty list.
type projectFile struct {
	Title           string          `json:"title"`
	Items           json.RawMessage `json:"items"`
	CreatedTime     time.Time       `json:"created_time,omitempty"`
	MaxImagesPerRow int             `json:"max_images_per_row,omitempty"`
	Version         string          `json:"version,omitempty"`
}

// Save writes the project to path as indented JSON.
func (p *Project) Save(path string) error {
	if p.Version == "" {
		p.Version = FormatVersion
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// Load reads a project from path, validating the file shape. On any
// error the previously loaded project (if the caller holds one) is left
// untouched because the result is built in a fresh value.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return Parse(data)
}

// Parse decodes a project from raw JSON bytes.
func Parse(data []byte) (*Project, error) {
	var file projectFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if file.Items == nil {
		return nil, fmt.Errorf("%w: missing \"items\"", ErrBadFormat)
	}

	var items []*Item
	if err := json.Unmarshal(file.Items, &items); err != nil {
		return nil, fmt.Errorf("%w: \"items\": %v", ErrBadFormat, err)
	}

	proj := New()
	proj.Title = file.Title
	if !file.CreatedTime.IsZero() {
		proj.CreatedTime = file.CreatedTime
	}
	if file.Version != "" {
		proj.Version = file.Version
	}
	for _, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: null item", ErrBadFormat)
		}
		if item.Images == nil {
			item.Images = []string{}
		}
		proj.Items = append(proj.Items, item)
		if item.ID > proj.lastID {
			proj.lastID = item.ID
		}
	}
	if file.MaxImagesPerRow > 0 {
		proj.MaxImagesPerRow = file.MaxImagesPerRow
	} else {
		proj.RecalcMaxImagesPerRow()
	}
	return proj, nil
}
