package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yellowjack/loyaltybot/internal/domain/model"
)

// Catalog is the fixed, ordered list of purchasable items. It is built once
// at startup and read-only afterwards.
type Catalog struct {
	items []model.CatalogItem
}

// Default returns the built-in shop list.
func Default() *Catalog {
	return &Catalog{items: []model.CatalogItem{
		{Name: "La Calle Taco", Cost: 25},
		{Name: "Fiesta Nachos", Cost: 20},
		{Name: "Chipotle Clucker", Cost: 15},
		{Name: "Double Queso Supreme", Cost: 16},
		{Name: "Side", Cost: 10},
		{Name: "Jarritos", Cost: 8},
	}}
}

// LoadFile reads a catalog from a YAML file, preserving item order.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var items []model.CatalogItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no items", path)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("catalog item %d has empty name", i)
		}
		if item.Cost <= 0 {
			return nil, fmt.Errorf("catalog item %q has non-positive cost %d", item.Name, item.Cost)
		}
	}

	return &Catalog{items: items}, nil
}

// Items returns the catalog in listing order.
func (c *Catalog) Items() []model.CatalogItem {
	out := make([]model.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Find looks an item up by case-insensitive exact name match.
func (c *Catalog) Find(name string) (model.CatalogItem, bool) {
	for _, item := range c.items {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return model.CatalogItem{}, false
}
