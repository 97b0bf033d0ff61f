package export

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yuniancong/repair-report-tool/internal/report"
)

const (
	excelSheetName = "维修报告"
	excelFontName  = "微软雅黑"

	// Staged embed size in pixels; pictures are inserted at embedScale
	// of that, so a full-size photo lands around 384x288 display px.
	excelEmbedW = 1200
	excelEmbedH = 900
	embedScale  = 0.32
)

// ExcelExporter writes the project as an .xlsx workbook: one row per
// item with the description and its photos embedded side by side.
type ExcelExporter struct{}

// NewExcelExporter creates the Excel exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Name() string { return "Excel" }
func (e *ExcelExporter) Ext() string  { return ".xlsx" }

// Available always succeeds; the spreadsheet writer has no external
// runtime requirements.
func (e *ExcelExporter) Available() error { return nil }

// Export writes the workbook to path.
func (e *ExcelExporter) Export(p *report.Project, path string) error {
	staging := newStager()
	defer staging.cleanup()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheetName); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}

	imageCols := p.MaxImagesPerRow
	if imageCols < 1 {
		imageCols = 1
	}
	totalCols := 2 + imageCols

	styles, err := newExcelStyles(f)
	if err != nil {
		return fmt.Errorf("excel export: %w", err)
	}

	if err := e.writeHeader(f, p, totalCols, imageCols, styles); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}

	for i, item := range p.Items {
		if err := e.writeItemRow(f, staging, item, i, imageCols, styles); err != nil {
			return fmt.Errorf("excel export: %w", err)
		}
	}

	if err := e.applyLayout(f, p, totalCols, imageCols, styles); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}
	return nil
}

type excelStyles struct {
	title    int
	subtitle int
	header   int
	index    int
	desc     int
	imgCell  int
}

func newExcelStyles(f *excelize.File) (*excelStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var s excelStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 20, Bold: true, Family: excelFontName},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	s.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11, Italic: true, Family: excelFontName},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Family: excelFontName},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E6E6FA"}, Pattern: 1},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}
	s.index, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}
	s.desc, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: excelFontName},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}
	s.imgCell, err = f.NewStyle(&excelize.Style{Border: thin})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// writeHeader writes the merged title block and the column header row.
func (e *ExcelExporter) writeHeader(f *excelize.File, p *report.Project, totalCols, imageCols int, styles *excelStyles) error {
	endCol, err := excelize.ColumnNumberToName(totalCols)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(excelSheetName, "A1", titleOrDefault(p.Title)); err != nil {
		return err
	}
	if err := f.MergeCell(excelSheetName, "A1", endCol+"1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(excelSheetName, "A1", endCol+"1", styles.title); err != nil {
		return err
	}

	subtitle := fmt.Sprintf("生成时间：%s", time.Now().Format("2006年01月02日 15:04"))
	if err := f.SetCellValue(excelSheetName, "A2", subtitle); err != nil {
		return err
	}
	if err := f.MergeCell(excelSheetName, "A2", endCol+"2"); err != nil {
		return err
	}
	if err := f.SetCellStyle(excelSheetName, "A2", endCol+"2", styles.subtitle); err != nil {
		return err
	}

	headers := []string{"序号", "维修内容描述"}
	for i := 0; i < imageCols; i++ {
		headers = append(headers, fmt.Sprintf("图片%d", i+1))
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 4)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(excelSheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(excelSheetName, cell, cell, styles.header); err != nil {
			return err
		}
	}
	return nil
}

// writeItemRow writes one item: index, description, embedded photos.
func (e *ExcelExporter) writeItemRow(f *excelize.File, staging *stager, item *report.Item, index, imageCols int, styles *excelStyles) error {
	row := 5 + index

	idxCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(excelSheetName, idxCell, index+1); err != nil {
		return err
	}

	descCell, err := excelize.CoordinatesToCellName(2, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(excelSheetName, descCell, item.Description); err != nil {
		return err
	}

	rowHeight := 40.0
	images := item.Images
	if len(images) > imageCols {
		images = images[:imageCols]
	}
	for i, imgPath := range images {
		cell, err := excelize.CoordinatesToCellName(3+i, row)
		if err != nil {
			return err
		}

		if _, statErr := os.Stat(imgPath); statErr != nil {
			if err := f.SetCellValue(excelSheetName, cell, "图片文件不存在:\n"+imgPath); err != nil {
				return err
			}
			continue
		}

		staged, _, h, stageErr := staging.stage(imgPath, excelEmbedW, excelEmbedH, "png")
		if stageErr != nil {
			if err := f.SetCellValue(excelSheetName, cell, "图片处理失败:\n"+imgPath); err != nil {
				return err
			}
			continue
		}

		err = f.AddPicture(excelSheetName, cell, staged, &excelize.GraphicOptions{
			ScaleX:      embedScale,
			ScaleY:      embedScale,
			Positioning: "oneCell",
		})
		if err != nil {
			return err
		}

		if displayH := float64(h) * embedScale * 0.8; displayH > rowHeight {
			rowHeight = displayH
		}
	}

	return f.SetRowHeight(excelSheetName, row, rowHeight)
}

// applyLayout sets column widths and paints borders over the data grid.
func (e *ExcelExporter) applyLayout(f *excelize.File, p *report.Project, totalCols, imageCols int, styles *excelStyles) error {
	if err := f.SetColWidth(excelSheetName, "A", "A", 8); err != nil {
		return err
	}
	if err := f.SetColWidth(excelSheetName, "B", "B", 45); err != nil {
		return err
	}
	firstImg, err := excelize.ColumnNumberToName(3)
	if err != nil {
		return err
	}
	lastImg, err := excelize.ColumnNumberToName(2 + imageCols)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(excelSheetName, firstImg, lastImg, 52); err != nil {
		return err
	}

	for row := 5; row < 5+len(p.Items); row++ {
		for col := 1; col <= totalCols; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			style := styles.imgCell
			switch col {
			case 1:
				style = styles.index
			case 2:
				style = styles.desc
			}
			if err := f.SetCellStyle(excelSheetName, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}
