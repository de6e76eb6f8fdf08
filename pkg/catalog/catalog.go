// Package catalog manages the product catalog used to instantiate placeable
// items. Entries describe a SKU's physical dimensions, classification, and
// stackability; placing an entry mints a new layout.Item with a unique
// instance ID so the same SKU can appear many times in one layout.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/fixturelab/planogram/pkg/errors"
	"github.com/fixturelab/planogram/pkg/layout"
)

// Entry is one product definition in the catalog.
type Entry struct {
	ID             string  `json:"id" toml:"id" bson:"id"`
	Name           string  `json:"name" toml:"name" bson:"name"`
	Classification string  `json:"classification" toml:"classification" bson:"classification"`
	Width          float64 `json:"width" toml:"width" bson:"width"`
	Height         float64 `json:"height" toml:"height" bson:"height"`
	Stackable      bool    `json:"stackable" toml:"stackable" bson:"stackable"`
}

// Catalog is an immutable set of product entries keyed by SKU.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

// New builds a catalog from entries. Duplicate or empty IDs and
// non-positive dimensions are rejected.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "entry with empty ID")
		}
		if _, dup := c.entries[e.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate entry ID %q", e.ID)
		}
		if e.Width <= 0 || e.Height <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "entry %q: dimensions must be positive", e.ID)
		}
		c.entries[e.ID] = e
		c.order = append(c.order, e.ID)
	}
	return c, nil
}

// Load reads a catalog from a TOML or JSON file, selected by extension.
//
// TOML files use repeated [[product]] tables; JSON files hold a flat array
// of entries.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read catalog %s", path)
	}

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var doc struct {
			Products []Entry `toml:"product"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog %s", path)
		}
		entries = doc.Products
	case ".json":
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "catalog format %q (use .toml or .json)", filepath.Ext(path))
	}

	return New(entries)
}

// Get returns the entry for the given SKU.
func (c *Catalog) Get(id string) (Entry, error) {
	e, ok := c.entries[id]
	if !ok {
		return Entry{}, errors.New(errors.ErrCodeEntryNotFound, "catalog entry %q", id)
	}
	return e, nil
}

// Entries returns all entries in file order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// NewItem mints a placeable item from a catalog entry. Each call produces a
// distinct instance ID so one SKU can be placed many times.
func NewItem(e Entry) layout.Item {
	return layout.Item{
		ID:             uuid.NewString(),
		SKU:            e.ID,
		Name:           e.Name,
		Classification: e.Classification,
		Width:          e.Width,
		Height:         e.Height,
		Stackable:      e.Stackable,
	}
}

// NewPlaceholder mints a blank placeholder item with the given footprint.
// Placeholders reserve space in width and height checks but never trigger
// type conflicts.
func NewPlaceholder(width, height float64) layout.Item {
	return layout.Item{
		ID:             uuid.NewString(),
		SKU:            "",
		Classification: layout.ClassificationBlank,
		Width:          width,
		Height:         height,
	}
}
