package model

import "strings"

// Product represents one catalog entry shown as a card and a detail page
type Product struct {
	ID           string
	Name         string
	Summary      string   // short blurb shown on the card
	Tags         []string // free-form filter tags
	ImageURL     string   // hero image fetched lazily
	ImageAlt     string   // accessible description of the hero image
	AspectRatio  float32  // hero image width / height, 0 if unknown
	DatasheetURL string   // optional link to the product datasheet
	Featured     bool     // featured products load their image immediately
}

// MatchesQuery reports whether the product matches a free-text search
// query. An empty query matches everything; matching is case-insensitive
// over name, summary, and tags.
func (p *Product) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Summary), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// HasTag reports whether the product carries the given tag, ignoring case
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// DisplayName returns the name, falling back to the ID for unnamed entries
func (p *Product) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.ID
}
