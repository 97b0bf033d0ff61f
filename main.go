// Package main provides the entry point for the repair report tool.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/yuniancong/repair-report-tool/internal/app"
	"github.com/yuniancong/repair-report-tool/internal/version"
	"github.com/yuniancong/repair-report-tool/ui/mainwindow"
	"github.com/yuniancong/repair-report-tool/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting 维修报告工具 v%s", version.Version)

	appState := app.NewState()
	appPrefs := prefs.Load()

	fyneApp := fyneapp.NewWithID("com.yuniancong.repairreport")
	fyneApp.Settings().SetTheme(app.ThemeForAppearance(appPrefs.String(prefs.KeyAppearance)))

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Handle command line arguments
	if len(os.Args) > 1 {
		projectPath := os.Args[1]
		if err := appState.LoadProject(projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", projectPath, err)
		}
	}

	win.ShowAndRun()
}
