// Package app provides application state, events, and project lifecycle.
package app

import (
	"errors"
	"fmt"

	"github.com/yuniancong/repair-report-tool/internal/imagecache"
	"github.com/yuniancong/repair-report-tool/internal/report"
)

// ErrNoSelection is returned by operations that need a selected item
// when nothing is selected.
var ErrNoSelection = errors.New("no item selected")

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventItemsChanged
	EventSelectionChanged
	EventImagesChanged
	EventModified
	EventStatus
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the working project, the image cache, and the current
// selection. All access happens on the UI event loop; there is no
// locking discipline because there is exactly one execution context.
type State struct {
	Project     *report.Project
	Cache       *imagecache.Cache
	ProjectPath string
	Modified    bool

	// Index into Project.Items, or -1 when nothing is selected.
	selected int

	listeners map[EventType][]EventListener
}

// NewState creates a state holding a fresh empty project.
func NewState() *State {
	return &State{
		Project:   report.New(),
		Cache:     imagecache.New(),
		selected:  -1,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	for _, listener := range s.listeners[event] {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.Modified = modified
	s.Emit(EventModified, modified)
}

// Status pushes a transient status bar message.
func (s *State) Status(format string, args ...interface{}) {
	s.Emit(EventStatus, fmt.Sprintf(format, args...))
}

// Selected returns the selected item index, or -1.
func (s *State) Selected() int {
	return s.selected
}

// SelectedItem returns the selected item, or an error when nothing is
// selected.
func (s *State) SelectedItem() (*report.Item, error) {
	if s.selected < 0 {
		return nil, ErrNoSelection
	}
	return s.Project.Item(s.selected)
}

// Select changes the selected item index (-1 clears the selection) and
// emits a selection event.
func (s *State) Select(index int) error {
	if index >= 0 {
		if _, err := s.Project.Item(index); err != nil {
			return err
		}
	} else {
		index = -1
	}
	s.selected = index
	s.Emit(EventSelectionChanged, index)
	return nil
}

// NewProject discards the working set and starts over with an empty
// project. The cache is cleared along with it.
func (s *State) NewProject() {
	s.Project = report.New()
	s.Cache = imagecache.New()
	s.ProjectPath = ""
	s.selected = -1
	s.Emit(EventProjectLoaded, "")
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, -1)
	s.SetModified(false)
}

// LoadProject reads a project file. On failure the current in-memory
// project is left untouched.
func (s *State) LoadProject(path string) error {
	proj, err := report.Load(path)
	if err != nil {
		return err
	}

	s.Project = proj
	s.Cache = imagecache.New()
	s.ProjectPath = path
	s.selected = -1
	if len(proj.Items) > 0 {
		s.selected = 0
	}

	s.Emit(EventProjectLoaded, path)
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, s.selected)
	s.SetModified(false)
	return nil
}

// SaveProject writes the project to path and clears the modified flag.
func (s *State) SaveProject(path string) error {
	if err := s.Project.Save(path); err != nil {
		return err
	}
	s.ProjectPath = path
	s.Emit(EventProjectSaved, path)
	s.SetModified(false)
	return nil
}

// AddItem appends a new item and selects it.
func (s *State) AddItem() *report.Item {
	item := s.Project.AddItem()
	s.selected = len(s.Project.Items) - 1
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, s.selected)
	s.SetModified(true)
	return item
}

// DeleteItem removes the item at index, prunes cache entries for paths
// no longer referenced anywhere, and fixes up the selection.
func (s *State) DeleteItem(index int) error {
	if err := s.Project.DeleteItem(index); err != nil {
		return err
	}
	s.Cache.PruneUnreferenced(s.Project.ImagePaths())

	if s.selected >= len(s.Project.Items) {
		s.selected = len(s.Project.Items) - 1
	}
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, s.selected)
	s.SetModified(true)
	return nil
}

// MoveItemUp moves the item at index one position earlier, keeping it
// selected.
func (s *State) MoveItemUp(index int) error {
	if err := s.Project.MoveItemUp(index); err != nil {
		return err
	}
	if s.selected == index {
		s.selected = index - 1
	}
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, s.selected)
	s.SetModified(true)
	return nil
}

// MoveItemDown moves the item at index one position later, keeping it
// selected.
func (s *State) MoveItemDown(index int) error {
	if err := s.Project.MoveItemDown(index); err != nil {
		return err
	}
	if s.selected == index {
		s.selected = index + 1
	}
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, s.selected)
	s.SetModified(true)
	return nil
}

// UpdateDescription edits the description of the item at index.
func (s *State) UpdateDescription(index int, text string) error {
	if err := s.Project.UpdateDescription(index, text); err != nil {
		return err
	}
	s.Emit(EventItemsChanged, nil)
	s.SetModified(true)
	return nil
}

// AddImagesToSelected appends image paths to the selected item,
// skipping duplicates, and returns the count added.
func (s *State) AddImagesToSelected(paths ...string) (int, error) {
	if s.selected < 0 {
		return 0, ErrNoSelection
	}
	return s.AddImages(s.selected, paths...)
}

// AddImages appends image paths to the item at index.
func (s *State) AddImages(index int, paths ...string) (int, error) {
	added, err := s.Project.AddImages(index, paths...)
	if err != nil {
		return 0, err
	}
	if added > 0 {
		s.Emit(EventItemsChanged, nil)
		s.Emit(EventImagesChanged, index)
		s.SetModified(true)
	}
	return added, nil
}

// RemoveImage removes a path from the item at index. When no other item
// references the path its cache entries are dropped; shared paths stay
// cached for the items that still show them.
func (s *State) RemoveImage(index int, path string) error {
	removed, err := s.Project.RemoveImage(index, path)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	if !s.Project.ImagePaths()[path] {
		s.Cache.Invalidate(path)
	}
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventImagesChanged, index)
	s.SetModified(true)
	return nil
}

// SetTitle updates the project title.
func (s *State) SetTitle(title string) {
	if s.Project.Title == title {
		return
	}
	s.Project.Title = title
	s.SetModified(true)
}
