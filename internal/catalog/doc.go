package catalog

// Package catalog manages the product content shown by the app. On first
// run it seeds the key-value preference store from an embedded JSON
// payload; afterwards products are read back from preferences, so edits
// survive restarts. It also provides the query/tag filtering the UI
// drives.
