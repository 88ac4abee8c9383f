package ui

// Package ui contains the Fyne-based desktop user interface for the
// catalog. It renders the searchable product grid, the product detail
// dialog, and wires card images to the shared visibility monitor so they
// load lazily as the grid scrolls.
