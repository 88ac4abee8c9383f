package lazyload

import (
	"context"
	"image"
	"image/color"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Widget sizing constants
const (
	// DefaultAspectRatio is width over height used when a descriptor does
	// not carry one; it keeps the placeholder from collapsing to zero.
	DefaultAspectRatio float32 = 4.0 / 3.0

	ImageMinWidth float32 = 120
)

// Default placeholder shade
var (
	DefaultPlaceholderShade = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
)

// Descriptor describes one asset for the lifetime of a widget binding.
// A changed URL is a brand-new asset: the widget resets its state machine
// rather than transitioning the old one.
type Descriptor struct {
	URL              string
	AltText          string
	AspectRatio      float32     // width / height; zero means DefaultAspectRatio
	PlaceholderShade color.Color // nil means DefaultPlaceholderShade
	Priority         bool        // skip visibility gating, fetch immediately
}

// aspect returns the effective aspect ratio
func (d Descriptor) aspect() float32 {
	if d.AspectRatio <= 0 {
		return DefaultAspectRatio
	}
	return d.AspectRatio
}

// shade returns the effective placeholder fill
func (d Descriptor) shade() color.Color {
	if d.PlaceholderShade == nil {
		return DefaultPlaceholderShade
	}
	return d.PlaceholderShade
}

// LazyImage is an image widget that defers its network fetch until it is
// about to scroll into view. While Pending or Requested it shows a
// placeholder sized by the descriptor's aspect ratio, once Loaded the
// decoded image, and once Errored a fixed broken-image indicator.
type LazyImage struct {
	widget.BaseWidget

	mu          sync.Mutex
	desc        Descriptor
	state       *AssetState
	generation  uint64
	alive       bool
	cancelWatch func()
	decoded     image.Image

	watcher Watcher
	fetcher Fetcher

	// UI components
	placeholder *canvas.Rectangle
	img         *canvas.Image
	fallback    *widget.Icon

	// Callbacks
	onLoadComplete func()
	onLoadError    func(error)
}

// NewLazyImage creates a lazy image bound to desc. Non-priority assets
// register a one-shot visibility subscription on watcher; priority assets
// begin fetching immediately and never touch it.
func NewLazyImage(fetcher Fetcher, watcher Watcher, desc Descriptor) *LazyImage {
	li := &LazyImage{
		desc:    desc,
		state:   NewAssetState(),
		alive:   true,
		watcher: watcher,
		fetcher: fetcher,
	}
	li.ExtendBaseWidget(li)
	li.createUI()
	li.activate()
	return li
}

// SetCallbacks sets the load outcome callbacks. Each fires at most once
// per asset instance, after the corresponding terminal transition.
func (li *LazyImage) SetCallbacks(onLoadComplete func(), onLoadError func(error)) {
	li.mu.Lock()
	li.onLoadComplete = onLoadComplete
	li.onLoadError = onLoadError
	li.mu.Unlock()
}

// State returns the current load state of the bound asset
func (li *LazyImage) State() LoadState {
	li.mu.Lock()
	defer li.mu.Unlock()
	return li.state.State()
}

// Source returns the currently bound descriptor
func (li *LazyImage) Source() Descriptor {
	li.mu.Lock()
	defer li.mu.Unlock()
	return li.desc
}

// SetSource rebinds the widget to a new descriptor. A changed URL resets
// the widget to a fresh Pending state machine; an in-flight fetch for the
// old URL is discarded when it eventually settles. An unchanged URL only
// updates presentation fields.
func (li *LazyImage) SetSource(desc Descriptor) {
	li.mu.Lock()
	if desc.URL == li.desc.URL {
		li.desc = desc
		li.mu.Unlock()
		li.Refresh()
		return
	}

	cancel := li.cancelWatch
	li.cancelWatch = nil
	li.generation++
	li.desc = desc
	li.state = NewAssetState()
	li.decoded = nil
	li.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	li.Refresh()
	li.activate()
}

// Detach tears the widget down. It releases any live visibility
// subscription exactly once and causes later fetch completions to be
// silent no-ops. Call it when the widget leaves the render tree, for
// example when a list recycles its row.
func (li *LazyImage) Detach() {
	li.mu.Lock()
	if !li.alive {
		li.mu.Unlock()
		return
	}
	li.alive = false
	cancel := li.cancelWatch
	li.cancelWatch = nil
	li.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// activate starts the load path for the current descriptor: immediately
// for priority assets, on the one-shot visibility callback otherwise.
// A nil watcher means there is no gating facility, so the load starts
// immediately regardless of priority.
func (li *LazyImage) activate() {
	li.mu.Lock()
	if !li.alive {
		li.mu.Unlock()
		return
	}
	priority := li.desc.Priority
	li.mu.Unlock()

	if priority || li.watcher == nil {
		li.beginFetch()
		return
	}

	// Subscribe may fire synchronously when the surface is already
	// visible; the cancel handle is still stored for the miss case.
	cancel := li.watcher.Subscribe(SurfaceOf(li), Options{}, li.beginFetch)

	li.mu.Lock()
	if li.alive {
		li.cancelWatch = cancel
		cancel = nil
	}
	li.mu.Unlock()

	if cancel != nil {
		// Torn down while subscribing.
		cancel()
	}
}

// beginFetch moves Pending to Requested and launches the fetch. Duplicate
// calls are no-ops thanks to the state machine, so a visibility firing
// that races a re-render cannot issue a second fetch.
func (li *LazyImage) beginFetch() {
	li.mu.Lock()
	if !li.alive || !li.state.Request() {
		li.mu.Unlock()
		return
	}
	gen := li.generation
	state := li.state
	url := li.desc.URL
	li.mu.Unlock()

	go func() {
		img, err := li.fetcher.Fetch(context.Background(), url)
		li.complete(gen, state, img, err)
	}()
}

// complete settles a fetch. Completions for a detached widget or a
// superseded generation are discarded without touching any state.
func (li *LazyImage) complete(gen uint64, state *AssetState, img image.Image, err error) {
	li.mu.Lock()
	if !li.alive || gen != li.generation {
		li.mu.Unlock()
		return
	}

	var notify func()
	if err != nil {
		if !state.MarkError(err) {
			li.mu.Unlock()
			return
		}
		log.Printf("lazyload: asset failed: %v", err)
		if cb := li.onLoadError; cb != nil {
			notify = func() { cb(err) }
		}
	} else {
		if !state.MarkLoaded() {
			li.mu.Unlock()
			return
		}
		li.decoded = img
	}
	onLoadComplete := li.onLoadComplete
	li.mu.Unlock()

	if err == nil && onLoadComplete != nil {
		notify = onLoadComplete
	}

	if notify != nil {
		notify()
	}

	fyne.Do(li.Refresh)
}

// createUI creates the stacked display objects
func (li *LazyImage) createUI() {
	li.placeholder = canvas.NewRectangle(li.desc.shade())

	li.img = canvas.NewImageFromImage(nil)
	li.img.FillMode = canvas.ImageFillContain
	li.img.Hide()

	li.fallback = widget.NewIcon(theme.BrokenImageIcon())
	li.fallback.Hide()
}

// CreateRenderer creates the widget renderer
func (li *LazyImage) CreateRenderer() fyne.WidgetRenderer {
	return &lazyImageRenderer{lazyImage: li}
}

// lazyImageRenderer renders the lazy image widget
type lazyImageRenderer struct {
	lazyImage *LazyImage
}

// Layout stretches every layer over the full widget area
func (r *lazyImageRenderer) Layout(size fyne.Size) {
	for _, obj := range r.Objects() {
		obj.Resize(size)
		obj.Move(fyne.NewPos(0, 0))
	}
}

// MinSize derives the minimum height from the descriptor's aspect ratio
// so the reserved box does not shift when the pixels arrive
func (r *lazyImageRenderer) MinSize() fyne.Size {
	desc := r.lazyImage.Source()
	return fyne.NewSize(ImageMinWidth, ImageMinWidth/desc.aspect())
}

// Refresh toggles the visible layer to match the load state
func (r *lazyImageRenderer) Refresh() {
	li := r.lazyImage

	li.mu.Lock()
	state := li.state.State()
	decoded := li.decoded
	shade := li.desc.shade()
	li.mu.Unlock()

	switch state {
	case StateLoaded:
		li.img.Image = decoded
		li.placeholder.Hide()
		li.fallback.Hide()
		li.img.Show()
		li.img.Refresh()
	case StateErrored:
		li.img.Image = nil
		li.img.Hide()
		li.placeholder.Hide()
		li.fallback.Show()
		li.fallback.Refresh()
	default:
		li.img.Image = nil
		li.img.Hide()
		li.fallback.Hide()
		li.placeholder.FillColor = shade
		li.placeholder.Show()
		li.placeholder.Refresh()
	}
}

// Objects returns the stacked layers
func (r *lazyImageRenderer) Objects() []fyne.CanvasObject {
	li := r.lazyImage
	return []fyne.CanvasObject{li.placeholder, li.img, li.fallback}
}

// Destroy cleans up the renderer
func (r *lazyImageRenderer) Destroy() {}
