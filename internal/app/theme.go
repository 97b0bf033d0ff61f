package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Appearance modes selectable in the settings dialog.
const (
	AppearanceSystem = "跟随系统"
	AppearanceLight  = "浅色"
	AppearanceDark   = "深色"
)

// AppearanceModes lists the selectable appearance modes.
var AppearanceModes = []string{AppearanceSystem, AppearanceLight, AppearanceDark}

// RepairTheme provides a custom theme for the application, following
// the blue-accent dark palette of the report documents.
type RepairTheme struct{}

var _ fyne.Theme = (*RepairTheme)(nil)

// ThemeForAppearance returns the application theme for the given
// appearance mode. Unknown modes follow the system variant.
func ThemeForAppearance(mode string) fyne.Theme {
	switch mode {
	case AppearanceLight:
		return &forcedVariantTheme{Theme: &RepairTheme{}, variant: theme.VariantLight}
	case AppearanceDark:
		return &forcedVariantTheme{Theme: &RepairTheme{}, variant: theme.VariantDark}
	default:
		return &RepairTheme{}
	}
}

// forcedVariantTheme pins a theme to one variant regardless of the
// system setting.
type forcedVariantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t *forcedVariantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

func (t *RepairTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x58, G: 0xA6, B: 0xFF, A: 0xFF} // blue accent
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x3F, G: 0xB9, B: 0x50, A: 0xFF}
	case theme.ColorNameError:
		return color.NRGBA{R: 0xF8, G: 0x51, B: 0x49, A: 0xFF}
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // Visible gray scrollbar
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *RepairTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *RepairTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *RepairTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16 // Wider scrollbar for easier grabbing
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
