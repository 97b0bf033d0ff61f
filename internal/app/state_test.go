package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yuniancong/repair-report-tool/internal/report"
)

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 0x3F, G: 0xB9, B: 0x50, A: 0xFF})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestAddItemSelectsIt(t *testing.T) {
	s := NewState()
	require.Equal(t, -1, s.Selected())

	var itemsEvents, selectionEvents int
	s.On(EventItemsChanged, func(interface{}) { itemsEvents++ })
	s.On(EventSelectionChanged, func(interface{}) { selectionEvents++ })

	s.AddItem()
	s.AddItem()
	require.Equal(t, 1, s.Selected())
	require.Equal(t, 2, itemsEvents)
	require.Equal(t, 2, selectionEvents)
	require.True(t, s.Modified)
}

func TestDeleteItemFixesSelection(t *testing.T) {
	s := NewState()
	s.AddItem()
	s.AddItem()
	require.Equal(t, 1, s.Selected())

	require.NoError(t, s.DeleteItem(1))
	require.Equal(t, 0, s.Selected())

	require.NoError(t, s.DeleteItem(0))
	require.Equal(t, -1, s.Selected())
}

func TestDeleteItemPrunesOnlyUnreferencedPaths(t *testing.T) {
	dir := t.TempDir()
	shared := writeTestPNG(t, dir, "shared.png")
	solo := writeTestPNG(t, dir, "solo.png")

	s := NewState()
	s.AddItem()
	s.AddItem()
	_, err := s.AddImages(0, shared, solo)
	require.NoError(t, err)
	_, err = s.AddImages(1, shared)
	require.NoError(t, err)

	// Warm the cache for both paths.
	_, err = s.Cache.GetOrLoad(shared)
	require.NoError(t, err)
	_, err = s.Cache.GetOrLoad(solo)
	require.NoError(t, err)

	require.NoError(t, s.DeleteItem(0))

	// The shared path is still referenced by the remaining item and
	// stays displayable; the solo path is gone.
	require.True(t, s.Cache.Contains(shared))
	require.False(t, s.Cache.Contains(solo))
}

func TestRemoveImageKeepsSharedCacheEntry(t *testing.T) {
	dir := t.TempDir()
	shared := writeTestPNG(t, dir, "shared.png")

	s := NewState()
	s.AddItem()
	s.AddItem()
	_, err := s.AddImages(0, shared)
	require.NoError(t, err)
	_, err = s.AddImages(1, shared)
	require.NoError(t, err)
	_, err = s.Cache.GetOrLoad(shared)
	require.NoError(t, err)

	require.NoError(t, s.RemoveImage(0, shared))
	require.True(t, s.Cache.Contains(shared))

	require.NoError(t, s.RemoveImage(1, shared))
	require.False(t, s.Cache.Contains(shared))
}

func TestLoadProjectFailureKeepsCurrentProject(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	s.AddItem()
	require.NoError(t, s.UpdateDescription(0, "原有项目"))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"title":"x"}`), 0o644))

	err := s.LoadProject(bad)
	require.ErrorIs(t, err, report.ErrBadFormat)

	// In-memory state is untouched.
	require.Len(t, s.Project.Items, 1)
	require.Equal(t, "原有项目", s.Project.Items[0].Description)
	require.Equal(t, 0, s.Selected())
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")

	s := NewState()
	s.SetTitle("T")
	s.AddItem()
	require.NoError(t, s.UpdateDescription(0, "电机维修"))
	_, err := s.AddImages(0, "/a.jpg")
	require.NoError(t, err)

	require.NoError(t, s.SaveProject(path))
	require.False(t, s.Modified)

	other := NewState()
	require.NoError(t, other.LoadProject(path))
	require.Equal(t, "T", other.Project.Title)
	require.Len(t, other.Project.Items, 1)
	require.Equal(t, 1, other.Project.Items[0].ID)
	require.Equal(t, "电机维修", other.Project.Items[0].Description)
	require.Equal(t, []string{"/a.jpg"}, other.Project.Items[0].Images)
	require.Equal(t, 0, other.Selected())
}

func TestMoveKeepsSelectionOnItem(t *testing.T) {
	s := NewState()
	s.AddItem()
	s.AddItem()
	s.AddItem()
	require.NoError(t, s.Select(2))

	require.NoError(t, s.MoveItemUp(2))
	require.Equal(t, 1, s.Selected())

	require.NoError(t, s.MoveItemDown(1))
	require.Equal(t, 2, s.Selected())
}

func TestSelectOutOfRange(t *testing.T) {
	s := NewState()
	require.Error(t, s.Select(0))
	s.AddItem()
	require.NoError(t, s.Select(0))
	require.Error(t, s.Select(5))
}

func TestAddImagesWithoutSelection(t *testing.T) {
	s := NewState()
	_, err := s.AddImagesToSelected("/a.jpg")
	require.ErrorIs(t, err, ErrNoSelection)
}
