package lazyload

import (
	"testing"

	"fyne.io/fyne/v2"
)

// fakeViewport is a movable viewport for tests
type fakeViewport struct {
	offset fyne.Position
	size   fyne.Size
}

func (v *fakeViewport) ContentOffset() fyne.Position { return v.offset }
func (v *fakeViewport) ViewSize() fyne.Size          { return v.size }

// fakeSurface is a fixed rectangle in content coordinates
type fakeSurface struct {
	pos  fyne.Position
	size fyne.Size
}

func (s *fakeSurface) Bounds() (fyne.Position, fyne.Size) { return s.pos, s.size }

func TestMonitor_FiresWhenSurfaceScrollsIn(t *testing.T) {
	viewport := &fakeViewport{size: fyne.NewSize(400, 600)}
	monitor := NewMonitor(viewport)

	// Surface far below the initial viewport, outside the default margin.
	surface := &fakeSurface{pos: fyne.NewPos(0, 2000), size: fyne.NewSize(200, 150)}

	fired := 0
	monitor.Subscribe(surface, Options{}, func() { fired++ })

	if fired != 0 {
		t.Fatalf("Expected no firing before scroll, got %d", fired)
	}

	// Still out of reach.
	viewport.offset = fyne.NewPos(0, 600)
	monitor.Recheck()
	if fired != 0 {
		t.Fatalf("Expected no firing while out of reach, got %d", fired)
	}

	// Within the proximity margin now.
	viewport.offset = fyne.NewPos(0, 1200)
	monitor.Recheck()
	if fired != 1 {
		t.Fatalf("Expected exactly one firing, got %d", fired)
	}

	// Further scrolling must not fire again.
	viewport.offset = fyne.NewPos(0, 1900)
	monitor.Recheck()
	monitor.Recheck()
	if fired != 1 {
		t.Errorf("Expected at most one firing, got %d", fired)
	}
	if monitor.Pending() != 0 {
		t.Errorf("Expected subscription to be disposed after firing, got %d pending", monitor.Pending())
	}
}

func TestMonitor_FiresImmediatelyWhenAlreadyVisible(t *testing.T) {
	viewport := &fakeViewport{size: fyne.NewSize(400, 600)}
	monitor := NewMonitor(viewport)

	surface := &fakeSurface{pos: fyne.NewPos(0, 100), size: fyne.NewSize(200, 150)}

	fired := 0
	monitor.Subscribe(surface, Options{}, func() { fired++ })

	if fired != 1 {
		t.Errorf("Expected immediate firing for a visible surface, got %d", fired)
	}
}

func TestMonitor_MinVisibleFraction(t *testing.T) {
	viewport := &fakeViewport{size: fyne.NewSize(400, 400)}
	monitor := NewMonitor(viewport)

	// Surface straddling the bottom edge: only its top half can be inside.
	surface := &fakeSurface{pos: fyne.NewPos(0, 350), size: fyne.NewSize(400, 100)}

	fired := 0
	opts := Options{ProximityMargin: 1, MinVisibleFraction: 0.75}
	monitor.Subscribe(surface, opts, func() { fired++ })

	if fired != 0 {
		t.Fatalf("Expected no firing below the fraction threshold, got %d", fired)
	}

	// Scroll so the whole surface is inside.
	viewport.offset = fyne.NewPos(0, 100)
	monitor.Recheck()
	if fired != 1 {
		t.Errorf("Expected firing once fully visible, got %d", fired)
	}
}

func TestMonitor_UnsubscribeBeforeFiring(t *testing.T) {
	viewport := &fakeViewport{size: fyne.NewSize(400, 600)}
	monitor := NewMonitor(viewport)

	surface := &fakeSurface{pos: fyne.NewPos(0, 5000), size: fyne.NewSize(200, 150)}

	fired := 0
	cancel := monitor.Subscribe(surface, Options{}, func() { fired++ })
	cancel()

	viewport.offset = fyne.NewPos(0, 4900)
	monitor.Recheck()

	if fired != 0 {
		t.Errorf("Expected no firing after cancel, got %d", fired)
	}
	if monitor.Pending() != 0 {
		t.Errorf("Expected no pending subscriptions, got %d", monitor.Pending())
	}
}

func TestMonitor_CancelIsIdempotent(t *testing.T) {
	viewport := &fakeViewport{size: fyne.NewSize(400, 600)}
	monitor := NewMonitor(viewport)

	// Cancel twice after firing.
	visible := &fakeSurface{pos: fyne.NewPos(0, 0), size: fyne.NewSize(100, 100)}
	cancel := monitor.Subscribe(visible, Options{}, func() {})
	cancel()
	cancel()

	// Cancel twice without firing.
	hidden := &fakeSurface{pos: fyne.NewPos(0, 5000), size: fyne.NewSize(100, 100)}
	cancel = monitor.Subscribe(hidden, Options{}, func() {})
	cancel()
	cancel()

	if monitor.Pending() != 0 {
		t.Errorf("Expected no pending subscriptions, got %d", monitor.Pending())
	}
}

func TestMonitor_ZeroSizeSurfaceNeverFires(t *testing.T) {
	viewport := &fakeViewport{size: fyne.NewSize(400, 600)}
	monitor := NewMonitor(viewport)

	surface := &fakeSurface{pos: fyne.NewPos(0, 0), size: fyne.NewSize(0, 0)}

	fired := 0
	monitor.Subscribe(surface, Options{}, func() { fired++ })
	monitor.Recheck()

	if fired != 0 {
		t.Errorf("Expected a zero-size surface never to fire, got %d", fired)
	}
}

func TestMonitor_SetDefaults(t *testing.T) {
	viewport := &fakeViewport{size: fyne.NewSize(400, 600)}
	monitor := NewMonitor(viewport)
	monitor.SetDefaults(Options{ProximityMargin: 5000})

	// Far below the viewport, but inside the widened default margin.
	surface := &fakeSurface{pos: fyne.NewPos(0, 3000), size: fyne.NewSize(200, 150)}

	fired := 0
	monitor.Subscribe(surface, Options{}, func() { fired++ })

	if fired != 1 {
		t.Errorf("Expected widened default margin to fire immediately, got %d", fired)
	}

	// Explicit options still win over the defaults.
	fired = 0
	monitor.Subscribe(surface, Options{ProximityMargin: 10}, func() { fired++ })
	monitor.Recheck()
	if fired != 0 {
		t.Errorf("Expected explicit narrow margin to suppress firing, got %d", fired)
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.ProximityMargin != DefaultProximityMargin {
		t.Errorf("Expected default margin %v, got %v", DefaultProximityMargin, opts.ProximityMargin)
	}
	if opts.MinVisibleFraction != DefaultMinVisibleFraction {
		t.Errorf("Expected default fraction %v, got %v", DefaultMinVisibleFraction, opts.MinVisibleFraction)
	}

	custom := Options{ProximityMargin: 50, MinVisibleFraction: 0.5}.withDefaults()
	if custom.ProximityMargin != 50 || custom.MinVisibleFraction != 0.5 {
		t.Error("Expected explicit options to be preserved")
	}
}
