package optimizer

import "fete/internal/models"

// Partition splits a catalog into the shareable-food group and the drink
// group, preserving catalog order within each. Items carrying an unknown
// category are dropped; an empty catalog yields two empty groups.
func Partition(catalog []models.MenuItem) (food, drinks []models.MenuItem) {
	for _, item := range catalog {
		switch {
		case item.Category == models.CategoryDrink:
			drinks = append(drinks, item)
		case item.Category.IsShareableFood():
			food = append(food, item)
		}
	}
	return food, drinks
}
