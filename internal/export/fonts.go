package export

import (
	"errors"
	"os"
	"runtime"
)

// ErrNoFont is returned when no embeddable Unicode font can be found.
// The PDF writer needs a TrueType file it can subset; collection files
// (.ttc) and CFF-flavoured OpenType cannot be embedded, so candidates
// are .ttf only.
var ErrNoFont = errors.New("no usable TrueType font found for PDF export")

// FontOverrideEnv names a font file to use instead of the platform scan.
const FontOverrideEnv = "REPAIR_REPORT_PDF_FONT"

// cjkFontCandidates lists CJK-capable fonts first, then wide-coverage
// fallbacks. With a fallback font Chinese text degrades to missing
// glyphs but the document still builds.
func cjkFontCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Windows\Fonts\simhei.ttf`,
			`C:\Windows\Fonts\simfang.ttf`,
			`C:\Windows\Fonts\simkai.ttf`,
			`C:\Windows\Fonts\arialuni.ttf`,
		}
	case "darwin":
		return []string{
			"/Library/Fonts/Arial Unicode.ttf",
			"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/arphic/ukai.ttf",
			"/usr/share/fonts/truetype/arphic/uming.ttf",
			"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
			"/usr/share/fonts/truetype/droid/DroidSansFallback.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
		}
	}
}

// FindReportFont returns the path of the font the PDF exporter will
// embed, honouring the environment override.
func FindReportFont() (string, error) {
	if override := os.Getenv(FontOverrideEnv); override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", err
		}
		return override, nil
	}
	for _, candidate := range cjkFontCandidates() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", ErrNoFont
}
