package panels

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yuniancong/repair-report-tool/ui/prefs"
)

func tempPrefs(t *testing.T) *prefs.Prefs {
	t.Helper()
	return prefs.LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))
}

func TestThumbnailEdgeDefault(t *testing.T) {
	p := tempPrefs(t)
	require.Equal(t, float32(defaultThumbEdge), thumbnailEdge(p))
}

func TestThumbnailEdgeFollowsPreference(t *testing.T) {
	p := tempPrefs(t)
	p.SetFloat(prefs.KeyThumbnailEdge, 240)
	require.Equal(t, float32(240), thumbnailEdge(p))
}

func TestThumbnailEdgeClamps(t *testing.T) {
	p := tempPrefs(t)

	p.SetFloat(prefs.KeyThumbnailEdge, 10)
	require.Equal(t, float32(minThumbEdge), thumbnailEdge(p))

	p.SetFloat(prefs.KeyThumbnailEdge, 4096)
	require.Equal(t, float32(maxThumbEdge), thumbnailEdge(p))
}
