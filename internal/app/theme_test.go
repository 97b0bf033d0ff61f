package app

import (
	"os"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	test.NewApp()
	os.Exit(m.Run())
}

func TestThemeForAppearanceForcesVariant(t *testing.T) {
	light := ThemeForAppearance(AppearanceLight)
	dark := ThemeForAppearance(AppearanceDark)

	// A forced theme must ignore the variant the toolkit passes in.
	lightBg := light.Color(theme.ColorNameBackground, theme.VariantDark)
	darkBg := dark.Color(theme.ColorNameBackground, theme.VariantLight)

	require.Equal(t, theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantLight), lightBg)
	require.Equal(t, theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark), darkBg)
	require.NotEqual(t, lightBg, darkBg)
}

func TestThemeForAppearanceSystemKeepsAccent(t *testing.T) {
	for _, mode := range []string{AppearanceSystem, "unknown"} {
		th := ThemeForAppearance(mode)
		accent := th.Color(theme.ColorNamePrimary, theme.VariantDark)
		require.Equal(t, (&RepairTheme{}).Color(theme.ColorNamePrimary, theme.VariantDark), accent)
	}
}
