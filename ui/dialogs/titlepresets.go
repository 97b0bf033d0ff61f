package dialogs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// TitlePresets are common report titles offered as quick fills.
var TitlePresets = []string{
	"维修检查报告",
	"设备维修报告",
	"空调维修报告",
	"电梯维修报告",
	"管道维修报告",
	"电气维修报告",
}

// ShowTitlePresets lets the user pick a preset report title.
// onPick receives the chosen title.
func ShowTitlePresets(window fyne.Window, onPick func(title string)) {
	list := widget.NewList(
		func() int { return len(TitlePresets) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(TitlePresets[id])
		},
	)

	dlg := dialog.NewCustom("选择报告标题", "关闭", list, window)
	list.OnSelected = func(id widget.ListItemID) {
		onPick(TitlePresets[int(id)])
		dlg.Hide()
	}
	dlg.Resize(fyne.NewSize(360, 320))
	dlg.Show()
}
