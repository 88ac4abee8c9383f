package config

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
)

// Placeholder shades for lazy images
type PlaceholderShade string

const (
	ShadeLight PlaceholderShade = "light"
	ShadeDark  PlaceholderShade = "dark"
)

// Color returns the placeholder fill for the shade. Unknown values fall
// back to the light fill.
func (ps PlaceholderShade) Color() color.Color {
	if ps == ShadeDark {
		return color.NRGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xFF}
	}
	return color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
}

// Settings keys for Fyne preferences
const (
	KeyFetchTimeoutSec  = "fetch_timeout_seconds"
	KeyProximityMargin  = "visibility_proximity_margin"
	KeyMaxImageEdge     = "max_image_edge"
	KeyPlaceholderShade = "placeholder_shade"
)

// Default values
const (
	DefaultFetchTimeoutSec  = 30
	DefaultProximityMargin  = 300
	DefaultMaxImageEdge     = 1600
	DefaultPlaceholderShade = ShadeLight
)

// Limits
const (
	MinFetchTimeoutSec = 5
	MaxFetchTimeoutSec = 120
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetFetchTimeout returns the configured asset fetch timeout
func (s *Settings) GetFetchTimeout() time.Duration {
	seconds := s.app.Preferences().Int(KeyFetchTimeoutSec)
	if seconds <= 0 {
		s.SetFetchTimeout(DefaultFetchTimeoutSec * time.Second)
		return DefaultFetchTimeoutSec * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// SetFetchTimeout sets the asset fetch timeout, clamped to sane bounds
func (s *Settings) SetFetchTimeout(timeout time.Duration) {
	seconds := int(timeout / time.Second)
	if seconds < MinFetchTimeoutSec {
		seconds = MinFetchTimeoutSec
	}
	if seconds > MaxFetchTimeoutSec {
		seconds = MaxFetchTimeoutSec
	}
	s.app.Preferences().SetInt(KeyFetchTimeoutSec, seconds)
}

// GetProximityMargin returns how many pixels ahead of the viewport images
// start loading
func (s *Settings) GetProximityMargin() float32 {
	margin := s.app.Preferences().Int(KeyProximityMargin)
	if margin <= 0 {
		s.SetProximityMargin(DefaultProximityMargin)
		return DefaultProximityMargin
	}
	return float32(margin)
}

// SetProximityMargin sets the load-ahead distance in pixels
func (s *Settings) SetProximityMargin(margin int) {
	if margin < 0 {
		margin = 0
	}
	s.app.Preferences().SetInt(KeyProximityMargin, margin)
}

// GetMaxImageEdge returns the longest image edge kept after decode
func (s *Settings) GetMaxImageEdge() int {
	edge := s.app.Preferences().Int(KeyMaxImageEdge)
	if edge <= 0 {
		s.SetMaxImageEdge(DefaultMaxImageEdge)
		return DefaultMaxImageEdge
	}
	return edge
}

// SetMaxImageEdge sets the longest image edge kept after decode
func (s *Settings) SetMaxImageEdge(edge int) {
	if edge < 0 {
		edge = 0
	}
	s.app.Preferences().SetInt(KeyMaxImageEdge, edge)
}

// GetPlaceholderShade returns the configured placeholder shade
func (s *Settings) GetPlaceholderShade() PlaceholderShade {
	shade := s.app.Preferences().String(KeyPlaceholderShade)
	if shade == "" {
		s.SetPlaceholderShade(DefaultPlaceholderShade)
		return DefaultPlaceholderShade
	}
	return PlaceholderShade(shade)
}

// SetPlaceholderShade sets the placeholder shade
func (s *Settings) SetPlaceholderShade(shade PlaceholderShade) {
	s.app.Preferences().SetString(KeyPlaceholderShade, string(shade))
}

// GetPlaceholderShadeOptions returns the available placeholder shades
func (s *Settings) GetPlaceholderShadeOptions() []PlaceholderShade {
	return []PlaceholderShade{ShadeLight, ShadeDark}
}
