package export

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/yuniancong/repair-report-tool/internal/report"
)

const (
	pdfFontFamily = "report"

	pdfPageW      = 210.0 // A4 portrait, mm
	pdfPageH      = 297.0
	pdfMarginSide = 15.0
	pdfMarginTopB = 20.0

	// Single-photo layout bounds, mm.
	pdfSingleW = 150.0
	pdfSingleH = 100.0

	// Grid cell sizes, mm.
	pdfCell2Col = 70.0
	pdfCell3Col = 50.0
	pdfCellGap  = 5.0
)

// PDFExporter writes the project as an A4 PDF: one section per item
// with the description followed by its photos, single large or in a
// 2-3 column grid.
//
// The exporter embeds a Unicode TrueType font discovered from platform
// font directories. When none exists the format reports itself
// unavailable and the rest of the application keeps working.
type PDFExporter struct {
	fontPath string
	fontErr  error
}

// NewPDFExporter creates the PDF exporter, probing for a usable font.
func NewPDFExporter() *PDFExporter {
	path, err := FindReportFont()
	return &PDFExporter{fontPath: path, fontErr: err}
}

// NewPDFExporterWithFont creates a PDF exporter bound to a specific
// TrueType font file.
func NewPDFExporterWithFont(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

func (e *PDFExporter) Name() string { return "PDF" }
func (e *PDFExporter) Ext() string  { return ".pdf" }

// Available fails when no embeddable font was found at startup.
func (e *PDFExporter) Available() error {
	if e.fontPath == "" {
		if e.fontErr != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, e.fontErr)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, ErrNoFont)
	}
	return nil
}

// Export writes the document to path.
func (e *PDFExporter) Export(p *report.Project, path string) error {
	if err := e.Available(); err != nil {
		return err
	}

	staging := newStager()
	defer staging.cleanup()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginSide, pdfMarginTopB, pdfMarginSide)
	pdf.SetAutoPageBreak(true, pdfMarginTopB)
	pdf.AddUTF8Font(pdfFontFamily, "", e.fontPath)
	if pdf.Err() {
		return fmt.Errorf("pdf export: register font %s: %v", e.fontPath, pdf.Error())
	}
	pdf.AddPage()

	e.writeTitle(pdf, p)

	for i, item := range p.Items {
		e.writeItem(pdf, staging, item, i)
		if i < len(p.Items)-1 {
			pdf.Ln(8)
		}
	}

	if pdf.Err() {
		return fmt.Errorf("pdf export: %v", pdf.Error())
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf export: %w", err)
	}
	return nil
}

func (e *PDFExporter) writeTitle(pdf *fpdf.Fpdf, p *report.Project) {
	pdf.SetFont(pdfFontFamily, "", 20)
	pdf.CellFormat(0, 12, titleOrDefault(p.Title), "", 1, "C", false, 0, "")

	pdf.SetFont(pdfFontFamily, "", 11)
	pdf.SetTextColor(0x66, 0x66, 0x66)
	subtitle := fmt.Sprintf("生成时间：%s", time.Now().Format("2006年01月02日 15:04"))
	pdf.CellFormat(0, 7, subtitle, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(10)
}

func (e *PDFExporter) writeItem(pdf *fpdf.Fpdf, staging *stager, item *report.Item, index int) {
	pdf.SetFont(pdfFontFamily, "", 12)
	pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", index+1, item.Description), "", "L", false)
	pdf.Ln(2)

	if len(item.Images) == 0 {
		pdf.SetFont(pdfFontFamily, "", 10)
		pdf.MultiCell(0, 6, "暂无图片", "", "L", false)
		return
	}

	if len(item.Images) == 1 {
		e.placeSingleImage(pdf, staging, item.Images[0])
		return
	}
	e.placeImageGrid(pdf, staging, item.Images)
}

// placeSingleImage centers one large proportional photo.
func (e *PDFExporter) placeSingleImage(pdf *fpdf.Fpdf, staging *stager, src string) {
	w, h, staged, ok := e.stageForBox(staging, src, pdfSingleW, pdfSingleH)
	if !ok {
		pdf.SetFont(pdfFontFamily, "", 10)
		pdf.MultiCell(0, 6, "图片加载失败", "", "L", false)
		return
	}

	e.breakPageIfNeeded(pdf, h)
	x := (pdfPageW - w) / 2
	pdf.ImageOptions(staged, x, pdf.GetY(), w, h, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	pdf.SetY(pdf.GetY() + h + 3)
}

// placeImageGrid lays photos out 2-up (4 or fewer) or 3-up.
func (e *PDFExporter) placeImageGrid(pdf *fpdf.Fpdf, staging *stager, images []string) {
	cols := 3
	cell := pdfCell3Col
	if len(images) <= 4 {
		cols = 2
		cell = pdfCell2Col
	}

	for start := 0; start < len(images); start += cols {
		end := start + cols
		if end > len(images) {
			end = len(images)
		}

		type placed struct {
			path string
			w, h float64
		}
		row := make([]placed, 0, cols)
		rowH := 0.0
		for _, src := range images[start:end] {
			w, h, staged, ok := e.stageForBox(staging, src, cell, cell)
			if !ok {
				row = append(row, placed{})
				continue
			}
			row = append(row, placed{path: staged, w: w, h: h})
			if h > rowH {
				rowH = h
			}
		}
		if rowH == 0 {
			continue
		}

		e.breakPageIfNeeded(pdf, rowH)
		y := pdf.GetY()
		for i, img := range row {
			if img.path == "" {
				continue
			}
			x := pdfMarginSide + float64(i)*(cell+pdfCellGap) + (cell-img.w)/2
			pdf.ImageOptions(img.path, x, y+(rowH-img.h)/2, img.w, img.h, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
		}
		pdf.SetY(y + rowH + pdfCellGap)
	}
}

// stageForBox prepares a photo for a boxW x boxH mm slot and returns
// its fitted size in mm. Missing or undecodable files report !ok.
func (e *PDFExporter) stageForBox(staging *stager, src string, boxW, boxH float64) (w, h float64, staged string, ok bool) {
	if _, err := os.Stat(src); err != nil {
		return 0, 0, "", false
	}
	// Stage at roughly 180 dpi: 10 px per mm of slot.
	staged, pxW, pxH, err := staging.stage(src, int(boxW*10), int(boxH*10), "jpeg")
	if err != nil {
		return 0, 0, "", false
	}

	ratio := float64(pxW) / float64(pxH)
	w, h = boxW, boxW/ratio
	if h > boxH {
		h = boxH
		w = boxH * ratio
	}
	return w, h, staged, true
}

// breakPageIfNeeded starts a new page when h millimetres do not fit
// above the bottom margin.
func (e *PDFExporter) breakPageIfNeeded(pdf *fpdf.Fpdf, h float64) {
	if pdf.GetY()+h > pdfPageH-pdfMarginTopB {
		pdf.AddPage()
	}
}
