package model

// Package model defines domain data structures used across the app:
// catalog products and their display helpers. Structures are designed for
// direct binding in the UI.
