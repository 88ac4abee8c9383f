package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/pixgrid/pix-catalog/internal/catalog"
	"github.com/pixgrid/pix-catalog/internal/config"
	"github.com/pixgrid/pix-catalog/internal/lazyload"
	"github.com/pixgrid/pix-catalog/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "io.pixgrid.pix-catalog"
	AppName = "Pix Catalog"

	WindowWidth  = 960
	WindowHeight = 640
)

func main() {
	// Log version information
	fmt.Printf("Pix Catalog v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)

	store, err := catalog.NewStore(myApp.Preferences())
	if err != nil {
		fmt.Printf("failed to load catalog: %v\n", err)
		return
	}

	fetcher := lazyload.NewHTTPFetcher(settings.GetFetchTimeout())
	fetcher.SetMaxEdge(uint(settings.GetMaxImageEdge()))
	preloader := lazyload.NewPreloader(fetcher)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, store, fetcher, preloader)

	// Show and run
	myWindow.ShowAndRun()
}
