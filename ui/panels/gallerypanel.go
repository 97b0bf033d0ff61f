package panels

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/yuniancong/repair-report-tool/internal/app"
	"github.com/yuniancong/repair-report-tool/internal/imagemeta"
	"github.com/yuniancong/repair-report-tool/ui/prefs"
	"github.com/yuniancong/repair-report-tool/ui/preview"
)

const (
	defaultThumbEdge = 160
	minThumbEdge     = 64
	maxThumbEdge     = 512
)

// thumbnailEdge returns the configured thumbnail size, clamped to the
// range the settings dialog accepts.
func thumbnailEdge(p *prefs.Prefs) float32 {
	edge := p.Float(prefs.KeyThumbnailEdge, defaultThumbEdge)
	if edge < minThumbEdge {
		edge = minThumbEdge
	}
	if edge > maxThumbEdge {
		edge = maxThumbEdge
	}
	return float32(edge)
}

// GalleryPanel shows the selected item's description editor and its
// image thumbnails.
type GalleryPanel struct {
	state     *app.State
	prefs     *prefs.Prefs
	window    fyne.Window
	container fyne.CanvasObject

	descEntry *widget.Entry
	grid      *fyne.Container
	hint      *widget.Label

	// OnAddImages is invoked when the user asks to add images to the
	// selected item. The main window wires the file dialog here.
	OnAddImages func()

	suppressDescEvent bool
}

// NewGalleryPanel creates the image gallery bound to state. Thumbnail
// size follows the preference and is re-read on every refresh.
func NewGalleryPanel(state *app.State, p *prefs.Prefs) *GalleryPanel {
	edge := thumbnailEdge(p)
	gp := &GalleryPanel{
		state: state,
		prefs: p,
		grid:  container.NewGridWrap(fyne.NewSize(edge+24, edge+80)),
		hint:  widget.NewLabel("点击「添加图片」为当前项目添加照片"),
	}

	gp.descEntry = widget.NewEntry()
	gp.descEntry.SetPlaceHolder("维修内容描述")
	gp.descEntry.OnChanged = func(text string) {
		if gp.suppressDescEvent {
			return
		}
		index := state.Selected()
		if index < 0 {
			return
		}
		_ = state.UpdateDescription(index, text)
	}

	addBtn := widget.NewButtonWithIcon("添加图片", theme.ContentAddIcon(), func() {
		if gp.OnAddImages != nil {
			gp.OnAddImages()
		}
	})

	header := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("图片", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		addBtn,
	)

	body := container.NewVScroll(container.NewVBox(gp.hint, gp.grid))
	top := container.NewVBox(
		widget.NewLabelWithStyle("描述", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		gp.descEntry,
		header,
	)
	gp.container = container.NewBorder(top, nil, nil, nil, body)

	state.On(app.EventSelectionChanged, func(interface{}) { gp.Refresh() })
	state.On(app.EventImagesChanged, func(interface{}) { gp.Refresh() })
	state.On(app.EventItemsChanged, func(interface{}) { gp.Refresh() })

	return gp
}

// Container returns the panel container.
func (gp *GalleryPanel) Container() fyne.CanvasObject {
	return gp.container
}

// SetWindow sets the parent window for dialogs and previews.
func (gp *GalleryPanel) SetWindow(w fyne.Window) {
	gp.window = w
}

// Refresh rebuilds the thumbnail grid for the selected item.
func (gp *GalleryPanel) Refresh() {
	edge := thumbnailEdge(gp.prefs)
	gp.grid.Layout = layout.NewGridWrapLayout(fyne.NewSize(edge+24, edge+80))
	gp.grid.Objects = nil

	item, err := gp.state.SelectedItem()
	if err != nil {
		gp.setDescription("")
		gp.descEntry.Disable()
		gp.hint.SetText("请先选择或添加一个维修项目")
		gp.hint.Show()
		gp.grid.Refresh()
		return
	}

	gp.descEntry.Enable()
	gp.setDescription(item.Description)

	if len(item.Images) == 0 {
		gp.hint.SetText("点击「添加图片」为当前项目添加照片")
		gp.hint.Show()
	} else {
		gp.hint.Hide()
	}

	for _, path := range item.Images {
		gp.grid.Add(gp.buildCard(path, edge))
	}
	gp.grid.Refresh()
}

func (gp *GalleryPanel) setDescription(text string) {
	gp.suppressDescEvent = true
	gp.descEntry.SetText(text)
	gp.suppressDescEvent = false
}

// buildCard makes one thumbnail card: image, filename, capture time,
// view and delete buttons.
func (gp *GalleryPanel) buildCard(path string, edge float32) fyne.CanvasObject {
	var imgObj fyne.CanvasObject
	thumb, err := gp.state.Cache.Thumbnail(path, int(edge), int(edge))
	if err != nil {
		broken := widget.NewLabelWithStyle("图片加载失败", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
		imgObj = broken
	} else {
		img := fynecanvas.NewImageFromImage(thumb)
		img.FillMode = fynecanvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(edge, edge*3/4))
		imgObj = img
	}

	name := widget.NewLabel(filepath.Base(path))
	name.Truncation = fyne.TextTruncateEllipsis

	meta := widget.NewLabel("")
	if taken, err := imagemeta.CaptureTime(path); err == nil {
		meta.SetText("拍摄: " + taken.Format("2006-01-02 15:04"))
	}

	view := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		gp.openPreview(path)
	})
	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		gp.confirmRemove(path)
	})

	footer := container.NewBorder(nil, nil, nil, container.NewHBox(view, del), name)
	return container.NewVBox(imgObj, footer, meta)
}

func (gp *GalleryPanel) openPreview(path string) {
	index := gp.state.Selected()
	if index < 0 {
		return
	}
	img, err := gp.state.Cache.GetOrLoad(path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("打开图片 %s: %w", filepath.Base(path), err), gp.window)
		return
	}
	preview.Show(fyne.CurrentApp(), filepath.Base(path), img)
}

func (gp *GalleryPanel) confirmRemove(path string) {
	index := gp.state.Selected()
	if index < 0 {
		return
	}
	dialog.ShowConfirm("确认删除",
		fmt.Sprintf("从当前项目移除图片 %s？", filepath.Base(path)),
		func(ok bool) {
			if !ok {
				return
			}
			if err := gp.state.RemoveImage(index, path); err != nil {
				dialog.ShowError(err, gp.window)
			}
		}, gp.window)
}
