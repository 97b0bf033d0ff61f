package mainwindow

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/require"

	"github.com/yuniancong/repair-report-tool/ui/prefs"
)

func TestRememberWindowSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	p := prefs.LoadFrom(path)

	rememberWindowSize(p, fyne.NewSize(1024, 768))
	require.NoError(t, p.Save())

	reloaded := prefs.LoadFrom(path)
	require.Equal(t, 1024.0, reloaded.Float(prefs.KeyWindowWidth, 0))
	require.Equal(t, 768.0, reloaded.Float(prefs.KeyWindowHeight, 0))
}

func TestRememberWindowSizeIgnoresEmptySize(t *testing.T) {
	p := prefs.LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))

	rememberWindowSize(p, fyne.NewSize(0, 0))
	require.Equal(t, 1200.0, p.Float(prefs.KeyWindowWidth, 1200))
	require.Equal(t, 800.0, p.Float(prefs.KeyWindowHeight, 800))
}
