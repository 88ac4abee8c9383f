package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/pixgrid/pix-catalog/internal/model"
)

//go:embed seed.json
var seedJSON []byte

// Preference keys for catalog content
const (
	KeyCatalogData = "catalog_data"
	KeySeedVersion = "catalog_seed_version"
)

// SeedVersion is bumped when the embedded seed changes shape or content
// enough that stored catalogs should be replaced
const SeedVersion = 1

// Preferences is the key-value store the catalog persists into.
// fyne.Preferences satisfies it.
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
	Int(key string) int
	SetInt(key string, value int)
}

// Store holds the product catalog backed by a key-value preference store
type Store struct {
	prefs    Preferences
	products []*model.Product
}

// NewStore creates a catalog store. On first run, or after a seed version
// bump, the embedded seed is written into the preference store; otherwise
// the previously stored catalog is loaded.
func NewStore(prefs Preferences) (*Store, error) {
	if prefs.String(KeyCatalogData) == "" || prefs.Int(KeySeedVersion) < SeedVersion {
		prefs.SetString(KeyCatalogData, string(seedJSON))
		prefs.SetInt(KeySeedVersion, SeedVersion)
	}

	products, err := decodeProducts([]byte(prefs.String(KeyCatalogData)))
	if err != nil {
		// Stored payload is damaged; re-seed rather than failing startup.
		log.Printf("catalog: stored data unreadable, re-seeding: %v", err)
		products, err = decodeProducts(seedJSON)
		if err != nil {
			return nil, fmt.Errorf("decode embedded seed: %w", err)
		}
		prefs.SetString(KeyCatalogData, string(seedJSON))
		prefs.SetInt(KeySeedVersion, SeedVersion)
	}

	return &Store{prefs: prefs, products: products}, nil
}

// decodeProducts parses a catalog JSON payload
func decodeProducts(data []byte) ([]*model.Product, error) {
	var products []*model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Products returns every product in seed order
func (s *Store) Products() []*model.Product {
	return s.products
}

// Product returns a product by ID
func (s *Store) Product(id string) (*model.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Filter returns the products matching a free-text query and, when tag is
// non-empty, carrying that tag. Order follows the seed order.
func (s *Store) Filter(query, tag string) []*model.Product {
	matched := make([]*model.Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.MatchesQuery(query) {
			continue
		}
		if tag != "" && !p.HasTag(tag) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// Tags returns the distinct tags across the catalog, in first-seen order
func (s *Store) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range s.products {
		for _, tag := range p.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// ImageURLs returns the hero image URLs of the given products, preserving
// order. Used to warm images ahead of navigation.
func ImageURLs(products []*model.Product) []string {
	urls := make([]string, 0, len(products))
	for _, p := range products {
		if p.ImageURL != "" {
			urls = append(urls, p.ImageURL)
		}
	}
	return urls
}
