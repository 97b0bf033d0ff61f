// Package export renders a project as a formatted document.
//
// Each output format is an Exporter: a pure function of the project
// snapshot plus a destination path. Exporters are feature-gated through
// Available, so a missing backing resource (for PDF, a usable CJK font)
// hides the format instead of breaking item and image management.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuniancong/repair-report-tool/internal/report"
)

// DefaultTitle is used when the project has no title.
const DefaultTitle = "维修检查报告"

// ErrUnavailable is returned when an exporter's backing resource is
// missing at runtime.
var ErrUnavailable = errors.New("export format unavailable")

// Exporter writes a project to a destination file in one output format.
type Exporter interface {
	// Name is the user-visible format name, e.g. "Excel".
	Name() string

	// Ext is the destination file extension including the dot.
	Ext() string

	// Available reports whether the exporter can run on this machine.
	Available() error

	// Export writes the project to path. The project is not modified
	// and no state is retained between calls.
	Export(p *report.Project, path string) error
}

// Registry returns all exporters in menu order, available or not.
// Callers filter on Available when building the UI.
func Registry() []Exporter {
	return []Exporter{
		NewExcelExporter(),
		NewPDFExporter(),
		NewMarkdownExporter(),
	}
}

// AvailableExporters returns the exporters whose Available check passes.
func AvailableExporters() []Exporter {
	var out []Exporter
	for _, e := range Registry() {
		if e.Available() == nil {
			out = append(out, e)
		}
	}
	return out
}

// ByName finds an exporter by case-insensitive format name.
func ByName(name string) (Exporter, error) {
	for _, e := range Registry() {
		if strings.EqualFold(e.Name(), name) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown export format %q", name)
}

func titleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return DefaultTitle
	}
	return title
}
