package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/yuniancong/repair-report-tool/internal/imagemeta"
	"github.com/yuniancong/repair-report-tool/internal/report"
)

// MarkdownExporter writes the project as a Markdown document: a summary
// table, then one section per item with inline image links and photo
// capture times where the files carry them.
type MarkdownExporter struct{}

// NewMarkdownExporter creates the Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

func (e *MarkdownExporter) Name() string { return "Markdown" }
func (e *MarkdownExporter) Ext() string  { return ".md" }

// Available always succeeds.
func (e *MarkdownExporter) Available() error { return nil }

// Export writes the document to path.
func (e *MarkdownExporter) Export(p *report.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("markdown export: %w", err)
	}
	defer f.Close()

	items, images := p.Stats()

	md := markdown.NewMarkdown(f)
	md.H1(titleOrDefault(p.Title))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"项目", "值"},
		Rows: [][]string{
			{"生成时间", time.Now().Format("2006年01月02日 15:04")},
			{"维修项目数", strconv.Itoa(items)},
			{"图片数", strconv.Itoa(images)},
		},
	})
	md.PlainText("")

	for i, item := range p.Items {
		md.H2(fmt.Sprintf("%d. %s", i+1, item.Description))
		if len(item.Images) == 0 {
			md.PlainText("暂无图片")
			md.PlainText("")
			continue
		}
		for _, imgPath := range item.Images {
			name := filepath.Base(imgPath)
			md.PlainText(fmt.Sprintf("![%s](%s)", name, imgPath))
			if taken, err := imagemeta.CaptureTime(imgPath); err == nil {
				md.PlainText(fmt.Sprintf("拍摄时间：%s", taken.Format("2006-01-02 15:04:05")))
			}
			md.PlainText("")
		}
	}

	if err := md.Build(); err != nil {
		return fmt.Errorf("markdown export: %w", err)
	}
	return nil
}
