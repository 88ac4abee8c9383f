package catalog

import (
	"testing"
)

// fakePrefs is an in-memory Preferences for tests
type fakePrefs struct {
	strings map[string]string
	ints    map[string]int
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{
		strings: make(map[string]string),
		ints:    make(map[string]int),
	}
}

func (f *fakePrefs) String(key string) string           { return f.strings[key] }
func (f *fakePrefs) SetString(key string, value string) { f.strings[key] = value }
func (f *fakePrefs) Int(key string) int                 { return f.ints[key] }
func (f *fakePrefs) SetInt(key string, value int)       { f.ints[key] = value }

func TestNewStore_SeedsOnFirstRun(t *testing.T) {
	prefs := newFakePrefs()

	store, err := NewStore(prefs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(store.Products()) == 0 {
		t.Fatal("Expected seeded products, got none")
	}
	if prefs.String(KeyCatalogData) == "" {
		t.Error("Expected catalog data to be written to preferences")
	}
	if prefs.Int(KeySeedVersion) != SeedVersion {
		t.Errorf("Expected seed version %d, got %d", SeedVersion, prefs.Int(KeySeedVersion))
	}
}

func TestNewStore_LoadsStoredCatalog(t *testing.T) {
	prefs := newFakePrefs()
	prefs.SetString(KeyCatalogData, `[{"id":"custom-1","name":"Custom Product","tags":["x"]}]`)
	prefs.SetInt(KeySeedVersion, SeedVersion)

	store, err := NewStore(prefs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(store.Products()) != 1 {
		t.Fatalf("Expected 1 stored product, got %d", len(store.Products()))
	}
	if store.Products()[0].ID != "custom-1" {
		t.Errorf("Expected stored product to survive, got %q", store.Products()[0].ID)
	}
}

func TestNewStore_ReseedsDamagedData(t *testing.T) {
	prefs := newFakePrefs()
	prefs.SetString(KeyCatalogData, "{not json")
	prefs.SetInt(KeySeedVersion, SeedVersion)

	store, err := NewStore(prefs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(store.Products()) == 0 {
		t.Fatal("Expected re-seeded products, got none")
	}
	if prefs.String(KeyCatalogData) == "{not json" {
		t.Error("Expected damaged payload to be replaced")
	}
}

func TestStore_Filter(t *testing.T) {
	store, err := NewStore(newFakePrefs())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	all := store.Filter("", "")
	if len(all) != len(store.Products()) {
		t.Errorf("Expected empty filter to return everything, got %d of %d", len(all), len(store.Products()))
	}

	cameras := store.Filter("", "camera")
	if len(cameras) == 0 {
		t.Fatal("Expected camera-tagged products in the seed")
	}
	for _, p := range cameras {
		if !p.HasTag("camera") {
			t.Errorf("Product %s missing camera tag", p.ID)
		}
	}

	orion := store.Filter("orion", "")
	for _, p := range orion {
		if !p.MatchesQuery("orion") {
			t.Errorf("Product %s does not match query", p.ID)
		}
	}

	none := store.Filter("definitely-not-a-product", "")
	if len(none) != 0 {
		t.Errorf("Expected no matches, got %d", len(none))
	}
}

func TestStore_Product(t *testing.T) {
	store, err := NewStore(newFakePrefs())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first := store.Products()[0]
	found, ok := store.Product(first.ID)
	if !ok || found.ID != first.ID {
		t.Errorf("Expected to find product %s", first.ID)
	}

	if _, ok := store.Product("missing"); ok {
		t.Error("Expected lookup of missing product to fail")
	}
}

func TestImageURLs(t *testing.T) {
	store, err := NewStore(newFakePrefs())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	urls := ImageURLs(store.Products())
	if len(urls) == 0 {
		t.Fatal("Expected image URLs from seed products")
	}
	if urls[0] != store.Products()[0].ImageURL {
		t.Errorf("Expected input order to be preserved, got %q first", urls[0])
	}
}
