package models

import (
	"fmt"
	"strings"
)

// Category classifies a menu item. The set is closed: three shareable-food
// categories and one drink category.
type Category string

const (
	CategoryMain    Category = "main"
	CategorySnack   Category = "snack"
	CategoryDessert Category = "dessert"
	CategoryDrink   Category = "drink"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMain, CategorySnack, CategoryDessert, CategoryDrink:
		return true
	}
	return false
}

// IsShareableFood reports whether the category belongs to the food group
// (everything except drinks).
func (c Category) IsShareableFood() bool {
	return c.Valid() && c != CategoryDrink
}

// MenuItem represents a catalog entry with a per-guest unit cost.
type MenuItem struct {
	Name     string   `json:"name"`
	UnitCost float64  `json:"unit_cost"`
	Category Category `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// NewMenuItem validates and builds a MenuItem.
func NewMenuItem(name string, unitCost float64, category Category, tags []string) (MenuItem, error) {
	if strings.TrimSpace(name) == "" {
		return MenuItem{}, fmt.Errorf("menu item name is required")
	}
	if unitCost < 0 {
		return MenuItem{}, fmt.Errorf("unit cost cannot be negative, got %.2f", unitCost)
	}
	if !category.Valid() {
		return MenuItem{}, fmt.Errorf("unknown category %q", category)
	}
	return MenuItem{
		Name:     strings.TrimSpace(name),
		UnitCost: unitCost,
		Category: category,
		Tags:     append([]string(nil), tags...),
	}, nil
}

// SameName reports whether the item's name matches, ignoring case.
func (m MenuItem) SameName(name string) bool {
	return strings.EqualFold(m.Name, name)
}
