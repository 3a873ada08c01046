package repository

import (
	"log"

	"fete/internal/models"
)

// defaultCatalog is the starter menu used when the catalog is empty.
var defaultCatalog = []struct {
	name     string
	cost     float64
	category models.Category
}{
	{"Fried Chicken", 5.70, models.CategoryMain},
	{"Chips", 2.99, models.CategorySnack},
	{"Sandwich", 4.00, models.CategoryMain},
	{"Cookies", 1.99, models.CategoryDessert},
	{"Candy", 0.99, models.CategoryDessert},
	{"Soda", 2.49, models.CategoryDrink},
	{"Juice", 2.79, models.CategoryDrink},
	{"Tea", 1.89, models.CategoryDrink},
}

// SeedDefaultCatalog inserts the starter menu when no items exist yet, so
// a fresh install has something to optimize against.
func SeedDefaultCatalog(items *ItemRepository) error {
	count, err := items.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, d := range defaultCatalog {
		item, err := models.NewMenuItem(d.name, d.cost, d.category, nil)
		if err != nil {
			return err
		}
		if err := items.Add(item); err != nil {
			return err
		}
	}
	log.Printf("[repository] seeded %d default menu items", len(defaultCatalog))
	return nil
}
