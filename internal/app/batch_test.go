package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func batchPaths(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		paths = append(paths, writeTestPNG(t, dir, fmt.Sprintf("batch%d.png", i)))
	}
	return paths
}

func TestBatchAssignToFirst(t *testing.T) {
	s := NewState()
	s.AddItem()
	s.AddItem()

	paths := batchPaths(t, 3)
	added, err := s.BatchAssign(paths, BatchToFirst)
	require.NoError(t, err)
	require.Equal(t, 3, added)
	require.Len(t, s.Project.Items[0].Images, 3)
	require.Empty(t, s.Project.Items[1].Images)
}

func TestBatchAssignSpreadEvenly(t *testing.T) {
	s := NewState()
	s.AddItem()
	s.AddItem()
	s.AddItem()

	paths := batchPaths(t, 5)
	added, err := s.BatchAssign(paths, BatchSpreadEvenly)
	require.NoError(t, err)
	require.Equal(t, 5, added)
	require.Len(t, s.Project.Items[0].Images, 2)
	require.Len(t, s.Project.Items[1].Images, 2)
	require.Len(t, s.Project.Items[2].Images, 1)
}

func TestBatchAssignToSelected(t *testing.T) {
	s := NewState()
	s.AddItem()
	s.AddItem()
	require.NoError(t, s.Select(1))

	paths := batchPaths(t, 2)
	added, err := s.BatchAssign(paths, BatchToSelected)
	require.NoError(t, err)
	require.Equal(t, 2, added)
	require.Len(t, s.Project.Items[1].Images, 2)
}

func TestBatchAssignToSelectedWithoutSelection(t *testing.T) {
	s := NewState()
	s.AddItem()
	require.NoError(t, s.Select(-1))

	_, err := s.BatchAssign(batchPaths(t, 1), BatchToSelected)
	require.ErrorIs(t, err, ErrNoSelection)
}

func TestBatchAssignNoItems(t *testing.T) {
	s := NewState()
	_, err := s.BatchAssign(batchPaths(t, 1), BatchToFirst)
	require.ErrorIs(t, err, ErrNoItems)
}

func TestBatchAssignEmptyPaths(t *testing.T) {
	s := NewState()
	s.AddItem()
	added, err := s.BatchAssign(nil, BatchToFirst)
	require.NoError(t, err)
	require.Zero(t, added)
}
