package lazyload

// Package lazyload implements visibility-gated loading of remote images.
// It combines a per-asset load state machine, a one-shot viewport
// visibility monitor, a Fyne widget that defers its network fetch until it
// is about to scroll into view, and a preloader for warming assets ahead
// of navigation.
