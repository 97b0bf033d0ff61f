// Package report provides the repair report data model and persistence.
package report

import (
	"errors"
	"fmt"
	"time"
)

// FormatVersion is written into saved project files.
const FormatVersion = "2.0.0"

// ErrIndexRange is returned when an item index is outside the project.
var ErrIndexRange = errors.New("item index out of range")

// Item is a single repair entry: a description plus an ordered list of
// absolute image file paths.
type Item struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// HasImage reports whether the item already references the given path.
func (it *Item) HasImage(path string) bool {
	for _, p := range it.Images {
		if p == path {
			return true
		}
	}
	return false
}

// Project is the top-level saved unit: a title plus an ordered list of Items.
type Project struct {
	Title           string    `json:"title"`
	Items           []*Item   `json:"items"`
	CreatedTime     time.Time `json:"created_time"`
	MaxImagesPerRow int       `json:"max_images_per_row"`
	Version         string    `json:"version"`

	// Highest item id handed out so far. Reconstructed on load, never
	// reused even after deletes.
	lastID int
}

// New creates an empty project.
func New() *Project {
	return &Project{
		Items:           []*Item{},
		CreatedTime:     time.Now(),
		MaxImagesPerRow: 1,
		Version:         FormatVersion,
	}
}

// DefaultDescription returns the placeholder description for the item at
// the given position (1-based in the UI).
func DefaultDescription(position int) string {
	return fmt.Sprintf("维修项目 %d", position)
}

// AddItem appends a new item with the next id and a numbered default
// description, and returns it.
func (p *Project) AddItem() *Item {
	p.lastID++
	item := &Item{
		ID:          p.lastID,
		Description: DefaultDescription(len(p.Items) + 1),
		Images:      []string{},
	}
	p.Items = append(p.Items, item)
	return item
}

// Item returns the item at index, or an error if out of range.
func (p *Project) Item(index int) (*Item, error) {
	if index < 0 || index >= len(p.Items) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexRange, index, len(p.Items))
	}
	return p.Items[index], nil
}

// DeleteItem removes the item at index.
func (p *Project) DeleteItem(index int) error {
	if _, err := p.Item(index); err != nil {
		return err
	}
	p.Items = append(p.Items[:index], p.Items[index+1:]...)
	p.RecalcMaxImagesPerRow()
	return nil
}

// MoveItemUp swaps the item at index with its predecessor.
func (p *Project) MoveItemUp(index int) error {
	if _, err := p.Item(index); err != nil {
		return err
	}
	if index == 0 {
		return fmt.Errorf("%w: already first", ErrIndexRange)
	}
	p.Items[index-1], p.Items[index] = p.Items[index], p.Items[index-1]
	return nil
}

// MoveItemDown swaps the item at index with its successor.
func (p *Project) MoveItemDown(index int) error {
	if _, err := p.Item(index); err != nil {
		return err
	}
	if index == len(p.Items)-1 {
		return fmt.Errorf("%w: already last", ErrIndexRange)
	}
	p.Items[index], p.Items[index+1] = p.Items[index+1], p.Items[index]
	return nil
}

// UpdateDescription sets the description of the item at index. Empty or
// whitespace-only text falls back to the numbered default.
func (p *Project) UpdateDescription(index int, text string) error {
	item, err := p.Item(index)
	if err != nil {
		return err
	}
	if isBlank(text) {
		item.Description = DefaultDescription(index + 1)
	} else {
		item.Description = text
	}
	return nil
}

// AddImages appends paths to the item at index, skipping paths the item
// already references. Returns the number actually added.
func (p *Project) AddImages(index int, paths ...string) (int, error) {
	item, err := p.Item(index)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, path := range paths {
		if item.HasImage(path) {
			continue
		}
		item.Images = append(item.Images, path)
		added++
	}
	if added > 0 {
		p.RecalcMaxImagesPerRow()
	}
	return added, nil
}

// RemoveImage removes a path from the item at index. Returns true if the
// path was present.
func (p *Project) RemoveImage(index int, path string) (bool, error) {
	item, err := p.Item(index)
	if err != nil {
		return false, err
	}
	for i, existing := range item.Images {
		if existing == path {
			item.Images = append(item.Images[:i], item.Images[i+1:]...)
			p.RecalcMaxImagesPerRow()
			return true, nil
		}
	}
	return false, nil
}

// ImagePaths returns the set of paths referenced by any item. Used to
// decide which cache entries are still live.
func (p *Project) ImagePaths() map[string]bool {
	refs := make(map[string]bool)
	for _, item := range p.Items {
		for _, path := range item.Images {
			refs[path] = true
		}
	}
	return refs
}

// Stats reports the item count and total image count across all items.
func (p *Project) Stats() (items, images int) {
	items = len(p.Items)
	for _, item := range p.Items {
		images += len(item.Images)
	}
	return items, images
}

// RecalcMaxImagesPerRow updates the layout hint to the largest image list
// on any item, minimum 1.
func (p *Project) RecalcMaxImagesPerRow() {
	maxPerRow := 1
	for _, item := range p.Items {
		if len(item.Images) > maxPerRow {
			maxPerRow = len(item.Images)
		}
	}
	p.MaxImagesPerRow = maxPerRow
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
