// Package preview provides a zoomable full-size image viewer window.
package preview

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// Viewer displays a single image with wheel and toolbar zoom.
type Viewer struct {
	widget.BaseWidget

	source image.Image
	img    *fynecanvas.Image
	zoom   float64

	scroll    *zoomScroll
	zoomLabel *widget.Label
	root      fyne.CanvasObject
}

// zoomScroll wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	viewer *Viewer
}

func newZoomScroll(content fyne.CanvasObject, viewer *Viewer) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, viewer: viewer}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.viewer.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.viewer.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// NewViewer creates a viewer for img at 1:1 zoom.
func NewViewer(img image.Image) *Viewer {
	v := &Viewer{
		source:    img,
		zoom:      1.0,
		zoomLabel: widget.NewLabel("100%"),
	}
	v.ExtendBaseWidget(v)

	v.img = fynecanvas.NewImageFromImage(img)
	v.img.FillMode = fynecanvas.ImageFillContain
	v.img.ScaleMode = fynecanvas.ImageScaleFastest
	v.applyZoom()

	v.scroll = newZoomScroll(container.NewCenter(v.img), v)

	toolbar := container.NewHBox(
		widget.NewButtonWithIcon("", theme.ZoomInIcon(), v.ZoomIn),
		widget.NewButtonWithIcon("", theme.ZoomOutIcon(), v.ZoomOut),
		widget.NewButton("适应窗口", v.FitToWindow),
		widget.NewButton("1:1", func() { v.SetZoom(1.0) }),
		v.zoomLabel,
	)

	v.root = container.NewBorder(toolbar, nil, nil, nil, v.scroll)
	return v
}

func (v *Viewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.root)
}

// SetZoom sets the zoom level, clamped to the allowed range.
func (v *Viewer) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	v.zoom = zoom
	v.applyZoom()
	v.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
}

// Zoom returns the current zoom level.
func (v *Viewer) Zoom() float64 {
	return v.zoom
}

// ZoomIn increases the zoom level.
func (v *Viewer) ZoomIn() {
	v.SetZoom(v.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (v *Viewer) ZoomOut() {
	v.SetZoom(v.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the whole image is visible.
func (v *Viewer) FitToWindow() {
	viewSize := v.scroll.Size()
	bounds := v.source.Bounds()
	if viewSize.Width <= 0 || viewSize.Height <= 0 || bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())
	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	v.SetZoom(zoom * 0.95) // Leave a small margin
}

func (v *Viewer) applyZoom() {
	bounds := v.source.Bounds()
	w := float32(float64(bounds.Dx()) * v.zoom)
	h := float32(float64(bounds.Dy()) * v.zoom)
	v.img.SetMinSize(fyne.NewSize(w, h))
	v.img.Refresh()
}

// Show opens img in a new preview window titled after the file name.
func Show(a fyne.App, title string, img image.Image) fyne.Window {
	w := a.NewWindow("预览 - " + title)
	viewer := NewViewer(img)
	w.SetContent(viewer)
	w.Resize(fyne.NewSize(900, 700))
	w.Show()
	return w
}
