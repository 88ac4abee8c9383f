package ui

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/pixgrid/pix-catalog/internal/catalog"
	"github.com/pixgrid/pix-catalog/internal/config"
	"github.com/pixgrid/pix-catalog/internal/lazyload"
	"github.com/pixgrid/pix-catalog/internal/model"
)

// UI constants
const (
	RootUIUpdateDebounce = 250 * time.Millisecond

	// RootInitialRecheckDelay waits for the first layout pass before the
	// monitor measures card positions.
	RootInitialRecheckDelay = 100 * time.Millisecond

	TagFilterAll = "All"
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	store    *catalog.Store
	settings *config.Settings

	fetcher   lazyload.Fetcher
	preloader *lazyload.Preloader
	monitor   *lazyload.Monitor

	searchEntry *widget.Entry
	tagSelect   *widget.Select
	warmBtn     *widget.Button
	countLabel  *widget.Label
	grid        *fyne.Container
	scroll      *container.Scroll

	cards []*ProductCard

	// Search debouncing
	debounceMutex sync.Mutex
	debounceTimer *time.Timer
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, store *catalog.Store, fetcher lazyload.Fetcher, preloader *lazyload.Preloader) *RootUI {
	settings := config.NewSettings(app)

	ui := &RootUI{
		window:    window,
		store:     store,
		settings:  settings,
		fetcher:   fetcher,
		preloader: preloader,
	}

	ui.createUI()
	ui.applyFilter()
	window.SetContent(ui.buildLayout())

	// Card positions only exist after the first layout pass.
	time.AfterFunc(RootInitialRecheckDelay, func() {
		fyne.Do(ui.monitor.Recheck)
	})

	return ui
}

// createUI creates the UI components. The grid and monitor come first:
// the tag selector fires its callback during SetSelected, which already
// rebuilds cards.
func (ui *RootUI) createUI() {
	ui.countLabel = widget.NewLabel("")

	ui.grid = container.NewGridWrap(fyne.NewSize(CardWidth, CardHeight))
	ui.scroll = container.NewScroll(ui.grid)

	ui.monitor = lazyload.NewScrollMonitor(ui.scroll)
	ui.monitor.SetDefaults(lazyload.Options{
		ProximityMargin: ui.settings.GetProximityMargin(),
	})

	ui.searchEntry = widget.NewEntry()
	ui.searchEntry.SetPlaceHolder("Search products...")
	ui.searchEntry.OnChanged = ui.onSearchChanged

	ui.warmBtn = widget.NewButton("Warm images", ui.warmCatalog)

	tags := append([]string{TagFilterAll}, ui.store.Tags()...)
	ui.tagSelect = widget.NewSelect(tags, func(string) { ui.applyFilter() })
	ui.tagSelect.SetSelected(TagFilterAll)
}

// buildLayout assembles the window content
func (ui *RootUI) buildLayout() fyne.CanvasObject {
	toolbar := container.NewBorder(nil, nil, nil,
		container.NewHBox(ui.countLabel, ui.tagSelect, ui.warmBtn),
		ui.searchEntry,
	)
	return container.NewBorder(toolbar, nil, nil, nil, ui.scroll)
}

// onSearchChanged debounces free-text search input before filtering
func (ui *RootUI) onSearchChanged(string) {
	ui.debounceMutex.Lock()
	defer ui.debounceMutex.Unlock()

	if ui.debounceTimer != nil {
		ui.debounceTimer.Stop()
	}
	ui.debounceTimer = time.AfterFunc(RootUIUpdateDebounce, func() {
		fyne.Do(ui.applyFilter)
	})
}

// applyFilter rebuilds the card grid from the current query and tag
func (ui *RootUI) applyFilter() {
	query := ""
	if ui.searchEntry != nil {
		query = ui.searchEntry.Text
	}

	tag := ""
	if ui.tagSelect != nil && ui.tagSelect.Selected != TagFilterAll {
		tag = ui.tagSelect.Selected
	}

	products := ui.store.Filter(query, tag)
	ui.rebuildCards(products)
}

// rebuildCards replaces the grid contents. Old cards are detached first
// so their visibility subscriptions are released before the widgets drop
// out of the tree.
func (ui *RootUI) rebuildCards(products []*model.Product) {
	for _, card := range ui.cards {
		card.Detach()
	}
	ui.cards = ui.cards[:0]

	shade := ui.settings.GetPlaceholderShade().Color()
	objects := make([]fyne.CanvasObject, 0, len(products))
	for _, product := range products {
		card := NewProductCard(product, ui.fetcher, ui.monitor, shade)
		card.SetOnOpen(ui.openDetail)
		ui.cards = append(ui.cards, card)
		objects = append(objects, card)
	}

	ui.grid.Objects = objects
	ui.grid.Refresh()
	ui.countLabel.SetText(formatCount(len(products)))

	// New cards get positions on the next layout pass.
	time.AfterFunc(RootInitialRecheckDelay, func() {
		fyne.Do(ui.monitor.Recheck)
	})
}

// openDetail shows the detail dialog for a product
func (ui *RootUI) openDetail(productID string) {
	product, ok := ui.store.Product(productID)
	if !ok {
		log.Printf("Unknown product tapped: %s", productID)
		return
	}
	ShowProductDetail(ui.window, product, ui.fetcher, ui.monitor, ui.settings.GetPlaceholderShade().Color())
}

// warmCatalog preloads every catalog image in the background and logs the
// batch outcome
func (ui *RootUI) warmCatalog() {
	urls := catalog.ImageURLs(ui.store.Products())
	go func() {
		outcomes := ui.preloader.PreloadMany(context.Background(), urls)

		fulfilled := 0
		for _, outcome := range outcomes {
			if outcome.Fulfilled() {
				fulfilled++
			} else {
				log.Printf("Preload failed for %s: %v", outcome.URL, outcome.Err)
			}
		}
		log.Printf("Preload finished: %d/%d fulfilled", fulfilled, len(outcomes))
	}()
}

// formatCount formats the product counter label
func formatCount(count int) string {
	if count == 1 {
		return "1 product"
	}
	return fmt.Sprintf("%d products", count)
}
