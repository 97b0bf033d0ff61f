// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/yuniancong/repair-report-tool/internal/app"
)

// BatchAssignDialog asks how a folder of images should be distributed
// over the project items.
type BatchAssignDialog struct {
	state  *app.State
	window fyne.Window
	paths  []string

	strategy *widget.RadioGroup
}

var batchStrategyLabels = []string{
	"全部添加到第一个项目",
	"平均分配到所有项目",
	"全部添加到当前选中项目",
}

// NewBatchAssignDialog creates a dialog for assigning paths.
func NewBatchAssignDialog(state *app.State, paths []string, window fyne.Window) *BatchAssignDialog {
	return &BatchAssignDialog{
		state:  state,
		window: window,
		paths:  paths,
	}
}

// Show displays the dialog.
func (d *BatchAssignDialog) Show() {
	if len(d.paths) == 0 {
		dialog.ShowInformation("批量添加", "所选文件夹中没有支持的图片文件", d.window)
		return
	}

	d.strategy = widget.NewRadioGroup(batchStrategyLabels, nil)
	d.strategy.SetSelected(batchStrategyLabels[0])

	summary := widget.NewLabel(fmt.Sprintf("共找到 %d 张图片，选择分配方式：", len(d.paths)))
	content := container.NewVBox(summary, d.strategy)

	dlg := dialog.NewCustomConfirm(
		"批量添加图片",
		"添加",
		"取消",
		content,
		func(ok bool) {
			if !ok {
				return
			}
			d.apply()
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(420, 260))
	dlg.Show()
}

func (d *BatchAssignDialog) apply() {
	strategy := app.BatchToFirst
	switch d.strategy.Selected {
	case batchStrategyLabels[1]:
		strategy = app.BatchSpreadEvenly
	case batchStrategyLabels[2]:
		strategy = app.BatchToSelected
	}

	added, err := d.state.BatchAssign(d.paths, strategy)
	if err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	dialog.ShowInformation("批量添加", fmt.Sprintf("已添加 %d 张图片", added), d.window)
}
