// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/yuniancong/repair-report-tool/internal/app"
)

// descriptionPreviewLen bounds the description text shown on a card.
const descriptionPreviewLen = 30

// ItemsPanel shows the repair item list with add, delete, and reorder
// controls, plus the running project statistics.
type ItemsPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	list       *widget.List
	statsLabel *widget.Label
}

// NewItemsPanel creates the sidebar item list bound to state.
func NewItemsPanel(state *app.State) *ItemsPanel {
	ip := &ItemsPanel{
		state:      state,
		statsLabel: widget.NewLabel("0 项目 • 0 图片"),
	}

	ip.list = widget.NewList(
		func() int { return len(state.Project.Items) },
		ip.createCard,
		ip.updateCard,
	)
	ip.list.OnSelected = func(id widget.ListItemID) {
		if err := state.Select(int(id)); err != nil {
			return
		}
	}

	header := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("维修项目", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ip.addButton(),
	)

	controls := container.NewHBox(
		widget.NewButtonWithIcon("", theme.MoveUpIcon(), ip.onMoveUp),
		widget.NewButtonWithIcon("", theme.MoveDownIcon(), ip.onMoveDown),
	)

	bottom := container.NewVBox(controls, ip.statsLabel)
	ip.container = container.NewBorder(header, bottom, nil, nil, ip.list)

	state.On(app.EventItemsChanged, func(interface{}) { ip.Refresh() })
	state.On(app.EventSelectionChanged, func(data interface{}) {
		index, ok := data.(int)
		if !ok {
			return
		}
		if index < 0 {
			ip.list.UnselectAll()
			return
		}
		ip.list.Select(widget.ListItemID(index))
	})

	return ip
}

// Container returns the panel container.
func (ip *ItemsPanel) Container() fyne.CanvasObject {
	return ip.container
}

// SetWindow sets the parent window for dialogs.
func (ip *ItemsPanel) SetWindow(w fyne.Window) {
	ip.window = w
}

// Refresh re-renders the list and the stats line.
func (ip *ItemsPanel) Refresh() {
	ip.list.Refresh()
	items, images := ip.state.Project.Stats()
	ip.statsLabel.SetText(fmt.Sprintf("%d 项目 • %d 图片", items, images))
}

func (ip *ItemsPanel) addButton() *widget.Button {
	return widget.NewButtonWithIcon("添加", theme.ContentAddIcon(), func() {
		ip.state.AddItem()
		ip.state.Status("已添加新项目")
	})
}

// createCard builds the list row template: index badge, description,
// image count, delete button.
func (ip *ItemsPanel) createCard() fyne.CanvasObject {
	badge := widget.NewLabelWithStyle("0", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	desc := widget.NewLabel("")
	desc.Truncation = fyne.TextTruncateEllipsis
	count := widget.NewLabel("")
	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)

	info := container.NewVBox(desc, count)
	return container.NewBorder(nil, nil, badge, del, info)
}

func (ip *ItemsPanel) updateCard(id widget.ListItemID, obj fyne.CanvasObject) {
	index := int(id)
	item, err := ip.state.Project.Item(index)
	if err != nil {
		return
	}

	border := obj.(*fyne.Container)
	badge := border.Objects[1].(*widget.Label)
	del := border.Objects[2].(*widget.Button)
	info := border.Objects[0].(*fyne.Container)
	desc := info.Objects[0].(*widget.Label)
	count := info.Objects[1].(*widget.Label)

	badge.SetText(fmt.Sprintf("%d", index+1))
	desc.SetText(previewText(item.Description))
	count.SetText(fmt.Sprintf("📷 %d 张图片", len(item.Images)))
	del.OnTapped = func() { ip.confirmDelete(index) }
}

func (ip *ItemsPanel) confirmDelete(index int) {
	dialog.ShowConfirm("确认删除",
		fmt.Sprintf("确定要删除项目 %d 吗？", index+1),
		func(ok bool) {
			if !ok {
				return
			}
			if err := ip.state.DeleteItem(index); err != nil {
				dialog.ShowError(err, ip.window)
				return
			}
			ip.state.Status("已删除项目")
		}, ip.window)
}

func (ip *ItemsPanel) onMoveUp() {
	index := ip.state.Selected()
	if index < 0 {
		return
	}
	if err := ip.state.MoveItemUp(index); err != nil {
		return
	}
}

func (ip *ItemsPanel) onMoveDown() {
	index := ip.state.Selected()
	if index < 0 {
		return
	}
	if err := ip.state.MoveItemDown(index); err != nil {
		return
	}
}

func previewText(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionPreviewLen {
		return s
	}
	return string(runes[:descriptionPreviewLen]) + "..."
}
