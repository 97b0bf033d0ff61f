// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/yuniancong/repair-report-tool/internal/app"
	"github.com/yuniancong/repair-report-tool/internal/export"
	"github.com/yuniancong/repair-report-tool/internal/imagecache"
	"github.com/yuniancong/repair-report-tool/internal/version"
	"github.com/yuniancong/repair-report-tool/ui/dialogs"
	"github.com/yuniancong/repair-report-tool/ui/panels"
	"github.com/yuniancong/repair-report-tool/ui/prefs"
)

const appTitle = "维修报告工具"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	titleEntry *widget.Entry
	itemsPanel *panels.ItemsPanel
	gallery    *panels.GalleryPanel
	statusBar  *widget.Label

	suppressTitleEvent bool
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	width := float32(p.Float(prefs.KeyWindowWidth, 1200))
	height := float32(p.Float(prefs.KeyWindowHeight, 800))
	win.Resize(fyne.NewSize(width, height))

	win.SetCloseIntercept(mw.onQuit)

	return mw
}

// onQuit remembers the window size before leaving.
func (mw *MainWindow) onQuit() {
	rememberWindowSize(mw.prefs, mw.Canvas().Size())
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
	mw.app.Quit()
}

// rememberWindowSize stores the window dimensions for the next start.
func rememberWindowSize(p *prefs.Prefs, size fyne.Size) {
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	p.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	p.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.titleEntry = widget.NewEntry()
	mw.titleEntry.SetText(mw.state.Project.Title)
	mw.titleEntry.OnChanged = func(text string) {
		if mw.suppressTitleEvent {
			return
		}
		mw.state.SetTitle(text)
	}

	presetBtn := widget.NewButton("常用标题", func() {
		dialogs.ShowTitlePresets(mw.Window, func(title string) {
			mw.titleEntry.SetText(title)
		})
	})

	topBar := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("报告标题:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(presetBtn, mw.exportButtons()),
		mw.titleEntry,
	)

	mw.itemsPanel = panels.NewItemsPanel(mw.state)
	mw.itemsPanel.SetWindow(mw.Window)

	mw.gallery = panels.NewGalleryPanel(mw.state, mw.prefs)
	mw.gallery.SetWindow(mw.Window)
	mw.gallery.OnAddImages = mw.onAddImages

	mw.statusBar = widget.NewLabel("就绪")
	statusArea := container.NewBorder(nil, nil, nil, featureIndicator(), mw.statusBar)

	split := container.NewHSplit(
		mw.itemsPanel.Container(),
		mw.gallery.Container(),
	)
	split.SetOffset(0.3)

	content := container.NewBorder(
		container.NewPadded(topBar),
		container.NewPadded(statusArea),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// featureIndicator summarizes which export formats work on this machine.
func featureIndicator() fyne.CanvasObject {
	names := make([]string, 0, 4)
	for _, exp := range export.AvailableExporters() {
		names = append(names, exp.Name())
	}
	label := widget.NewLabel("可导出: " + strings.Join(names, ", "))
	label.TextStyle = fyne.TextStyle{Italic: true}
	return label
}

// exportButtons creates one button per usable export format.
func (mw *MainWindow) exportButtons() fyne.CanvasObject {
	box := container.NewHBox()
	for _, exp := range export.AvailableExporters() {
		exp := exp
		box.Add(widget.NewButton("导出"+exp.Name(), func() {
			mw.onExport(exp)
		}))
	}
	return box
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("文件",
		fyne.NewMenuItem("新建项目", mw.onNewProject),
		fyne.NewMenuItem("打开项目...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("保存项目", mw.onSaveProject),
		fyne.NewMenuItem("另存为...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("退出", mw.onQuit),
	)

	editMenu := fyne.NewMenu("编辑",
		fyne.NewMenuItem("添加维修项目", func() { mw.state.AddItem() }),
		fyne.NewMenuItem("删除选中项目", mw.onDeleteSelected),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("上移", mw.onMoveUp),
		fyne.NewMenuItem("下移", mw.onMoveDown),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("批量添加图片...", mw.onBatchAddImages),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("设置...", mw.onSettings),
	)

	exportItems := make([]*fyne.MenuItem, 0, 4)
	for _, exp := range export.Registry() {
		exp := exp
		item := fyne.NewMenuItem("导出为 "+exp.Name()+"...", func() {
			mw.onExport(exp)
		})
		if exp.Available() != nil {
			item.Disabled = true
		}
		exportItems = append(exportItems, item)
	}
	exportMenu := fyne.NewMenu("导出", exportItems...)

	helpMenu := fyne.NewMenu("帮助",
		fyne.NewMenuItem("关于", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, exportMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventStatus, func(data interface{}) {
		if text, ok := data.(string); ok {
			mw.statusBar.SetText(text)
		}
	})

	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		mw.suppressTitleEvent = true
		mw.titleEntry.SetText(mw.state.Project.Title)
		mw.suppressTitleEvent = false

		if path, ok := data.(string); ok && path != "" {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
		} else {
			mw.SetTitle(appTitle)
		}
		mw.itemsPanel.Refresh()
		mw.gallery.Refresh()
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		modified, ok := data.(bool)
		if !ok || !modified {
			return
		}
		title := mw.Title()
		if len(title) > 0 && title[len(title)-1] != '*' {
			mw.SetTitle(title + " *")
		}
	})
}

// lastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) lastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir remembers the directory of path for the next dialog.
func (mw *MainWindow) saveLastDir(path string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(path))
	if err := mw.prefs.Save(); err != nil {
		mw.state.Status("保存偏好设置失败: %v", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onNewProject() {
	start := func() {
		mw.state.NewProject()
		mw.SetTitle(appTitle)
		mw.state.Status("已新建项目")
	}
	if !mw.state.Modified {
		start()
		return
	}
	dialog.ShowConfirm("未保存的修改",
		"当前项目有未保存的修改，确定要新建项目吗？",
		func(ok bool) {
			if ok {
				start()
			}
		}, mw.Window)
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(fmt.Errorf("打开项目失败: %w", err), mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastProject, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(fmt.Errorf("保存项目失败: %w", err), mw.Window)
		return
	}
	mw.state.Status("项目已保存")
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".json" {
			path += ".json"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(fmt.Errorf("保存项目失败: %w", err), mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastProject, path)
		mw.state.Status("项目已保存: %s", filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("维修报告.json")
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onDeleteSelected() {
	index := mw.state.Selected()
	if index < 0 {
		mw.state.Status("请先选择一个项目")
		return
	}
	if err := mw.state.DeleteItem(index); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onMoveUp() {
	index := mw.state.Selected()
	if index < 0 {
		return
	}
	_ = mw.state.MoveItemUp(index)
}

func (mw *MainWindow) onMoveDown() {
	index := mw.state.Selected()
	if index < 0 {
		return
	}
	_ = mw.state.MoveItemDown(index)
}

// onAddImages opens a file picker and adds the chosen image to the
// selected item.
func (mw *MainWindow) onAddImages() {
	if mw.state.Selected() < 0 {
		mw.state.Status("请先选择一个项目")
		return
	}
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		added, err := mw.state.AddImagesToSelected(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if added == 0 {
			mw.state.Status("图片已存在于当前项目")
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imagecache.SupportedFormats()))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onBatchAddImages picks a folder, collects its supported images, and
// opens the assignment dialog.
func (mw *MainWindow) onBatchAddImages() {
	if len(mw.state.Project.Items) == 0 {
		mw.state.Status("请先添加维修项目")
		return
	}
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		dir := uri.Path()
		mw.saveLastDir(dir)
		paths, err := collectImages(dir)
		if err != nil {
			dialog.ShowError(fmt.Errorf("读取文件夹失败: %w", err), mw.Window)
			return
		}
		dialogs.NewBatchAssignDialog(mw.state, paths, mw.Window).Show()
	}, mw.Window)
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSettings() {
	dialogs.NewSettingsDialog(mw.prefs, mw.Window, func() {
		mw.app.Settings().SetTheme(app.ThemeForAppearance(mw.prefs.String(prefs.KeyAppearance)))
		mw.gallery.Refresh()
		mw.state.Status("设置已保存")
	}).Show()
}

// onExport asks for a target path and runs the exporter.
func (mw *MainWindow) onExport(exp export.Exporter) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != exp.Ext() {
			path += exp.Ext()
		}
		mw.saveLastDir(path)

		mw.state.Status("正在导出 %s...", exp.Name())
		if err := exp.Export(mw.state.Project, path); err != nil {
			dialog.ShowError(fmt.Errorf("导出失败: %w", err), mw.Window)
			mw.state.Status("导出失败")
			return
		}
		mw.state.Status("已导出: %s", filepath.Base(path))
		dialog.ShowInformation("导出完成", "报告已保存到:\n"+path, mw.Window)
	}, mw.Window)
	fd.SetFileName(exportFileName(mw.state.Project.Title, exp.Ext()))
	fd.SetFilter(storage.NewExtensionFileFilter([]string{exp.Ext()}))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("关于 "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"维修报告的录入、整理与导出工具。\n\n"+
			"构建时间: %s\n"+
			"提交: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// exportFileName suggests an output file name from the report title.
func exportFileName(title, ext string) string {
	if title == "" {
		title = export.DefaultTitle
	}
	return title + ext
}

// collectImages lists the supported image files directly inside dir,
// sorted by name.
func collectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if imagecache.IsSupportedFormat(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
