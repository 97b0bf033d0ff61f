package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yuniancong/repair-report-tool/internal/report"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0xD2, G: 0x99, B: 0x22, A: 0xFF})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// buildProject returns a project with two items: the first has two real
// photos, the second has none.
func buildProject(t *testing.T, dir string) *report.Project {
	t.Helper()
	p := report.New()
	p.Title = "空调维修报告"
	p.AddItem()
	require.NoError(t, p.UpdateDescription(0, "电机维修"))
	one := writeTestPNG(t, dir, "one.png", 320, 240)
	two := writeTestPNG(t, dir, "two.png", 240, 320)
	_, err := p.AddImages(0, one, two)
	require.NoError(t, err)
	p.AddItem()
	require.NoError(t, p.UpdateDescription(1, "更换滤网"))
	return p
}

func TestExcelExport(t *testing.T) {
	dir := t.TempDir()
	p := buildProject(t, dir)
	out := filepath.Join(dir, "report.xlsx")

	exp := NewExcelExporter()
	require.NoError(t, exp.Available())
	require.NoError(t, exp.Export(p, out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(excelSheetName, "A1")
	require.NoError(t, err)
	require.Equal(t, "空调维修报告", title)

	header, err := f.GetCellValue(excelSheetName, "C4")
	require.NoError(t, err)
	require.Equal(t, "图片1", header)

	idx, err := f.GetCellValue(excelSheetName, "A5")
	require.NoError(t, err)
	require.Equal(t, "1", idx)

	desc, err := f.GetCellValue(excelSheetName, "B5")
	require.NoError(t, err)
	require.Equal(t, "电机维修", desc)

	pics, err := f.GetPictures(excelSheetName, "C5")
	require.NoError(t, err)
	require.Len(t, pics, 1)
}

func TestExcelExportZeroItems(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "empty.xlsx")

	p := report.New()
	require.NoError(t, NewExcelExporter().Export(p, out))

	// The document opens and carries the default title and header row.
	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(excelSheetName, "A1")
	require.NoError(t, err)
	require.Equal(t, DefaultTitle, title)

	rows, err := f.GetRows(excelSheetName)
	require.NoError(t, err)
	require.LessOrEqual(t, len(rows), 4)
}

func TestExcelExportMissingImageFile(t *testing.T) {
	dir := t.TempDir()
	p := report.New()
	p.AddItem()
	_, err := p.AddImages(0, filepath.Join(dir, "gone.jpg"))
	require.NoError(t, err)

	out := filepath.Join(dir, "report.xlsx")
	require.NoError(t, NewExcelExporter().Export(p, out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue(excelSheetName, "C5")
	require.NoError(t, err)
	require.Contains(t, cell, "图片文件不存在")
}

func TestPDFExportUnavailableWithoutFont(t *testing.T) {
	exp := NewPDFExporterWithFont("")
	require.ErrorIs(t, exp.Available(), ErrUnavailable)
	require.ErrorIs(t, exp.Export(report.New(), filepath.Join(t.TempDir(), "x.pdf")), ErrUnavailable)
}

func TestPDFExport(t *testing.T) {
	exp := NewPDFExporter()
	if err := exp.Available(); err != nil {
		t.Skipf("skipping, %v", err)
	}

	dir := t.TempDir()
	p := buildProject(t, dir)
	out := filepath.Join(dir, "report.pdf")
	require.NoError(t, exp.Export(p, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, len(data) > 4 && string(data[:5]) == "%PDF-")
}

func TestPDFExportZeroItems(t *testing.T) {
	exp := NewPDFExporter()
	if err := exp.Available(); err != nil {
		t.Skipf("skipping, %v", err)
	}

	out := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, exp.Export(report.New(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, len(data) > 4 && string(data[:5]) == "%PDF-")
}

func TestMarkdownExport(t *testing.T) {
	dir := t.TempDir()
	p := buildProject(t, dir)
	out := filepath.Join(dir, "report.md")

	require.NoError(t, NewMarkdownExporter().Export(p, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "# 空调维修报告")
	require.Contains(t, text, "## 1. 电机维修")
	require.Contains(t, text, "![one.png](")
	require.Contains(t, text, "## 2. 更换滤网")
	require.Contains(t, text, "暂无图片")
}

func TestMarkdownExportZeroItems(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.md")
	require.NoError(t, NewMarkdownExporter().Export(report.New(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "# "+DefaultTitle)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"excel", "PDF", "markdown"} {
		exp, err := ByName(name)
		require.NoError(t, err)
		require.NotNil(t, exp)
	}
	_, err := ByName("docx")
	require.Error(t, err)
}

func TestRegistryExtensions(t *testing.T) {
	exts := map[string]string{}
	for _, e := range Registry() {
		exts[e.Name()] = e.Ext()
	}
	require.Equal(t, map[string]string{
		"Excel":    ".xlsx",
		"PDF":      ".pdf",
		"Markdown": ".md",
	}, exts)
}
