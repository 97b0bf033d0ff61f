package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "preferences.json")

	p := LoadFrom(path)
	p.SetString(KeyLastDir, "/home/tech/photos")
	p.SetFloat(KeyWindowWidth, 1600)
	p.SetBool("confirmDeletes", true)
	require.NoError(t, p.Save())

	loaded := LoadFrom(path)
	require.Equal(t, "/home/tech/photos", loaded.String(KeyLastDir))
	require.Equal(t, 1600.0, loaded.Float(KeyWindowWidth, 0))
	require.True(t, loaded.Bool("confirmDeletes", false))
}

func TestPrefsDefaults(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.Empty(t, p.String(KeyLastDir))
	require.Equal(t, 1000.0, p.Float(KeyWindowHeight, 1000))
	require.False(t, p.Bool("confirmDeletes", false))
}

func TestPrefsTypeMismatchFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	p := LoadFrom(path)
	p.SetString(KeyWindowWidth, "wide")
	require.NoError(t, p.Save())

	loaded := LoadFrom(path)
	require.Equal(t, 1600.0, loaded.Float(KeyWindowWidth, 1600))
}
