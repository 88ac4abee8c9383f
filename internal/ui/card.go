package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/pixgrid/pix-catalog/internal/lazyload"
	"github.com/pixgrid/pix-catalog/internal/model"
)

// Card sizing constants
const (
	CardWidth  float32 = 220
	CardHeight float32 = 250
)

// cardSurfaceWatcher re-targets image subscriptions at the whole card.
// The card sits directly in the scroll content, so its position is in the
// coordinate space the monitor measures against; the image's own position
// is only relative to the card.
type cardSurfaceWatcher struct {
	card  fyne.CanvasObject
	inner lazyload.Watcher
}

func (w cardSurfaceWatcher) Subscribe(_ lazyload.Surface, opts lazyload.Options, fn func()) func() {
	return w.inner.Subscribe(lazyload.SurfaceOf(w.card), opts, fn)
}

// ProductCard is a tappable catalog card with a lazily loaded hero image
type ProductCard struct {
	widget.BaseWidget

	product *model.Product
	hero    *lazyload.LazyImage

	nameLabel    *widget.Label
	summaryLabel *widget.Label

	// Callbacks
	onOpen func(productID string)
}

// NewProductCard creates a card for one product. Featured products load
// their hero image immediately; the rest wait until the card approaches
// the viewport. A nil placeholderShade keeps the package default fill.
func NewProductCard(product *model.Product, fetcher lazyload.Fetcher, watcher lazyload.Watcher, placeholderShade color.Color) *ProductCard {
	pc := &ProductCard{product: product}
	pc.ExtendBaseWidget(pc)
	pc.createUI(fetcher, watcher, placeholderShade)
	return pc
}

// SetOnOpen sets the callback invoked when the card is tapped
func (pc *ProductCard) SetOnOpen(onOpen func(productID string)) {
	pc.onOpen = onOpen
}

// Product returns the product this card renders
func (pc *ProductCard) Product() *model.Product {
	return pc.product
}

// Hero returns the card's lazy image widget
func (pc *ProductCard) Hero() *lazyload.LazyImage {
	return pc.hero
}

// Detach releases the card's visibility subscription. Call it when the
// card leaves the grid, for example after a filter rebuild.
func (pc *ProductCard) Detach() {
	pc.hero.Detach()
}

// Tapped opens the product detail
func (pc *ProductCard) Tapped(_ *fyne.PointEvent) {
	if pc.onOpen != nil {
		pc.onOpen(pc.product.ID)
	}
}

// createUI creates the card components
func (pc *ProductCard) createUI(fetcher lazyload.Fetcher, watcher lazyload.Watcher, placeholderShade color.Color) {
	pc.hero = lazyload.NewLazyImage(fetcher, cardSurfaceWatcher{card: pc, inner: watcher}, lazyload.Descriptor{
		URL:              pc.product.ImageURL,
		AltText:          pc.product.ImageAlt,
		AspectRatio:      pc.product.AspectRatio,
		PlaceholderShade: placeholderShade,
		Priority:         pc.product.Featured,
	})
	pc.hero.SetCallbacks(nil, func(err error) {
		log.Printf("Hero image for product %s failed: %v", pc.product.ID, err)
	})

	pc.nameLabel = widget.NewLabel(pc.product.DisplayName())
	pc.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	pc.nameLabel.Truncation = fyne.TextTruncateEllipsis

	pc.summaryLabel = widget.NewLabel(pc.product.Summary)
	pc.summaryLabel.Wrapping = fyne.TextWrapWord
	pc.summaryLabel.Truncation = fyne.TextTruncateEllipsis
}

// CreateRenderer creates the widget renderer
func (pc *ProductCard) CreateRenderer() fyne.WidgetRenderer {
	return &productCardRenderer{card: pc}
}

// productCardRenderer renders the product card
type productCardRenderer struct {
	card   *ProductCard
	layout *fyne.Container
}

// Layout arranges the components
func (r *productCardRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *productCardRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	min := r.layout.MinSize()
	if min.Width < CardWidth {
		min.Width = CardWidth
	}
	return min
}

// Refresh refreshes the renderer
func (r *productCardRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *productCardRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *productCardRenderer) Destroy() {}

// createLayout creates the card layout
func (r *productCardRenderer) createLayout() {
	pc := r.card
	r.layout = container.NewBorder(nil, container.NewVBox(pc.nameLabel, pc.summaryLabel), nil, nil, pc.hero)
}
