package app

import (
	"errors"
	"fmt"
)

// BatchStrategy selects how a batch of image paths is distributed
// over the project items.
type BatchStrategy int

const (
	// BatchToFirst assigns every image to the first item.
	BatchToFirst BatchStrategy = iota
	// BatchSpreadEvenly deals images round-robin across all items.
	BatchSpreadEvenly
	// BatchToSelected assigns every image to the selected item.
	BatchToSelected
)

// ErrNoItems is returned when a batch assignment has no target item.
var ErrNoItems = errors.New("project has no items")

// BatchAssign distributes paths over the project items according to
// strategy. Returns the number of images actually added (duplicates
// within an item are skipped).
func (s *State) BatchAssign(paths []string, strategy BatchStrategy) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	if len(s.Project.Items) == 0 {
		return 0, ErrNoItems
	}

	added := 0
	switch strategy {
	case BatchToFirst:
		n, err := s.AddImages(0, paths...)
		if err != nil {
			return 0, err
		}
		added = n
	case BatchSpreadEvenly:
		count := len(s.Project.Items)
		for i, path := range paths {
			n, err := s.AddImages(i%count, path)
			if err != nil {
				return added, err
			}
			added += n
		}
	case BatchToSelected:
		index := s.Selected()
		if index < 0 {
			return 0, ErrNoSelection
		}
		n, err := s.AddImages(index, paths...)
		if err != nil {
			return 0, err
		}
		added = n
	default:
		return 0, fmt.Errorf("unknown batch strategy %d", strategy)
	}

	s.Status("批量添加了 %d 张图片", added)
	return added, nil
}
