package lazyload

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"github.com/google/uuid"
)

// Visibility defaults: monitoring begins a few hundred pixels before the
// surface reaches the viewport, so the fetch hides its own latency.
const (
	DefaultProximityMargin    float32 = 300
	DefaultMinVisibleFraction float32 = 0.01
)

// Subscription ID prefix
const (
	SubscriptionIDPrefix = "watch-"
)

// Options configures when a visibility subscription fires
type Options struct {
	// ProximityMargin expands the viewport rectangle on every side, in pixels
	ProximityMargin float32

	// MinVisibleFraction is the fraction of the surface area that must fall
	// inside the expanded viewport before the callback fires
	MinVisibleFraction float32
}

// withDefaults fills unset option fields with the package defaults
func (o Options) withDefaults() Options {
	if o.ProximityMargin <= 0 {
		o.ProximityMargin = DefaultProximityMargin
	}
	if o.MinVisibleFraction <= 0 {
		o.MinVisibleFraction = DefaultMinVisibleFraction
	}
	return o
}

// Surface is a rectangular region being watched, in the same coordinate
// space as the viewport content
type Surface interface {
	Bounds() (pos fyne.Position, size fyne.Size)
}

// Viewport is the scrollable window the monitor measures surfaces against
type Viewport interface {
	ContentOffset() fyne.Position
	ViewSize() fyne.Size
}

// Watcher is the subscription surface of Monitor, extracted as an interface
// so widgets can be wired to fakes in tests
type Watcher interface {
	Subscribe(surface Surface, opts Options, fn func()) (cancel func())
}

// subscription is one live one-shot registration
type subscription struct {
	surface Surface
	opts    Options
	fn      func()
}

// Monitor watches surfaces against one viewport and notifies each
// subscriber at most once, the first time its surface's visible fraction
// reaches the subscription threshold. The registration is removed before
// the callback runs, so a second notification is structurally impossible.
type Monitor struct {
	mu       sync.Mutex
	viewport Viewport
	defaults Options
	subs     map[string]*subscription
}

// NewMonitor creates a monitor over the given viewport
func NewMonitor(viewport Viewport) *Monitor {
	return &Monitor{
		viewport: viewport,
		defaults: Options{}.withDefaults(),
		subs:     make(map[string]*subscription),
	}
}

// SetDefaults sets the options applied to subscriptions that leave fields
// unset
func (m *Monitor) SetDefaults(opts Options) {
	m.mu.Lock()
	m.defaults = opts.withDefaults()
	m.mu.Unlock()
}

// Subscribe registers a one-shot callback for the surface. The returned
// cancel function is idempotent and safe to call whether or not the
// callback has fired. A surface already inside the expanded viewport
// fires during the Subscribe call itself.
func (m *Monitor) Subscribe(surface Surface, opts Options, fn func()) (cancel func()) {
	id := generateSubscriptionID()

	m.mu.Lock()
	if opts.ProximityMargin <= 0 {
		opts.ProximityMargin = m.defaults.ProximityMargin
	}
	if opts.MinVisibleFraction <= 0 {
		opts.MinVisibleFraction = m.defaults.MinVisibleFraction
	}
	m.subs[id] = &subscription{
		surface: surface,
		opts:    opts,
		fn:      fn,
	}
	m.mu.Unlock()

	m.Recheck()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Recheck evaluates every live subscription against the current viewport
// geometry. Call it whenever the viewport scrolls or resizes.
func (m *Monitor) Recheck() {
	m.mu.Lock()
	var due []func()
	for id, sub := range m.subs {
		fraction := visibleFraction(m.viewport, sub.surface, sub.opts.ProximityMargin)
		if fraction >= sub.opts.MinVisibleFraction {
			delete(m.subs, id)
			due = append(due, sub.fn)
		}
	}
	m.mu.Unlock()

	// Callbacks run outside the lock; their registrations are already gone.
	for _, fn := range due {
		fn()
	}
}

// Pending returns the number of live subscriptions
func (m *Monitor) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// visibleFraction computes which share of the surface area falls inside
// the viewport expanded by margin on every side
func visibleFraction(vp Viewport, s Surface, margin float32) float32 {
	pos, size := s.Bounds()
	if size.Width <= 0 || size.Height <= 0 {
		return 0
	}

	off := vp.ContentOffset()
	view := vp.ViewSize()

	overlapX := overlap(pos.X, pos.X+size.Width, off.X-margin, off.X+view.Width+margin)
	overlapY := overlap(pos.Y, pos.Y+size.Height, off.Y-margin, off.Y+view.Height+margin)

	return (overlapX * overlapY) / (size.Width * size.Height)
}

// overlap returns the length of the intersection of segments [a0,a1] and [b0,b1]
func overlap(a0, a1, b0, b1 float32) float32 {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// scrollViewport adapts a Fyne scroll container to Viewport
type scrollViewport struct {
	scroll *container.Scroll
}

func (v scrollViewport) ContentOffset() fyne.Position {
	return v.scroll.Offset
}

func (v scrollViewport) ViewSize() fyne.Size {
	return v.scroll.Size()
}

// NewScrollMonitor builds a monitor over a Fyne scroll container and hooks
// its OnScrolled event, chaining any handler already installed
func NewScrollMonitor(scroll *container.Scroll) *Monitor {
	m := NewMonitor(scrollViewport{scroll: scroll})

	previous := scroll.OnScrolled
	scroll.OnScrolled = func(offset fyne.Position) {
		if previous != nil {
			previous(offset)
		}
		m.Recheck()
	}

	return m
}

// objectSurface adapts a canvas object laid out inside the scroll content
type objectSurface struct {
	obj fyne.CanvasObject
}

func (s objectSurface) Bounds() (fyne.Position, fyne.Size) {
	return s.obj.Position(), s.obj.Size()
}

// SurfaceOf wraps a canvas object as a watchable Surface
func SurfaceOf(obj fyne.CanvasObject) Surface {
	return objectSurface{obj: obj}
}

// generateSubscriptionID generates a unique subscription ID using UUID v7
// for uniqueness and time ordering
func generateSubscriptionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(SubscriptionIDPrefix+"%d", time.Now().UnixNano())
	}
	return SubscriptionIDPrefix + id.String()
}
