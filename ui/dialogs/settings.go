package dialogs

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/yuniancong/repair-report-tool/internal/app"
	"github.com/yuniancong/repair-report-tool/internal/export"
	"github.com/yuniancong/repair-report-tool/ui/prefs"
)

// SettingsDialog edits application preferences and shows which export
// formats are usable on this machine.
type SettingsDialog struct {
	prefs  *prefs.Prefs
	window fyne.Window

	appearance *widget.Select
	thumbEdge  *widget.Entry

	// onApply is invoked after preferences are saved.
	onApply func()
}

// NewSettingsDialog creates the settings dialog.
func NewSettingsDialog(p *prefs.Prefs, window fyne.Window, onApply func()) *SettingsDialog {
	return &SettingsDialog{prefs: p, window: window, onApply: onApply}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	d.appearance = widget.NewSelect(app.AppearanceModes, nil)
	current := d.prefs.String(prefs.KeyAppearance)
	if current == "" {
		current = app.AppearanceSystem
	}
	d.appearance.SetSelected(current)

	d.thumbEdge = widget.NewEntry()
	d.thumbEdge.SetText(fmt.Sprintf("%.0f", d.prefs.Float(prefs.KeyThumbnailEdge, 160)))

	form := widget.NewForm(
		widget.NewFormItem("外观模式", d.appearance),
		widget.NewFormItem("缩略图尺寸 (像素)", d.thumbEdge),
	)

	content := container.NewVBox(
		widget.NewCard("界面", "", form),
		widget.NewCard("导出功能", "", d.featureList()),
	)

	dlg := dialog.NewCustomConfirm(
		"设置",
		"保存",
		"取消",
		content,
		func(save bool) {
			if !save {
				return
			}
			d.applyChanges()
			if d.onApply != nil {
				d.onApply()
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(460, 480))
	dlg.Show()
}

// featureList shows one line per export format with its availability.
func (d *SettingsDialog) featureList() fyne.CanvasObject {
	box := container.NewVBox()
	for _, exp := range export.Registry() {
		status := "✓ 可用"
		if err := exp.Available(); err != nil {
			status = "✗ 不可用: " + err.Error()
		}
		line := widget.NewLabel(fmt.Sprintf("%s (%s): %s", exp.Name(), exp.Ext(), status))
		line.Wrapping = fyne.TextWrapWord
		box.Add(line)
	}
	return box
}

func (d *SettingsDialog) applyChanges() {
	d.prefs.SetString(prefs.KeyAppearance, d.appearance.Selected)
	if v, err := strconv.ParseFloat(d.thumbEdge.Text, 64); err == nil && v >= 64 && v <= 512 {
		d.prefs.SetFloat(prefs.KeyThumbnailEdge, v)
	}
	if err := d.prefs.Save(); err != nil {
		dialog.ShowError(err, d.window)
	}
}
