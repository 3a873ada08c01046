package models

// Recommendation is one scored pairing of a guest subset with its optimal
// feasible menu. Built once by the optimizer and never mutated afterwards;
// the caller owns it for ranking and export.
type Recommendation struct {
	GuestNames     []string            `json:"guest_names"`
	SelectedItems  []string            `json:"selected_items"`
	UnitCosts      map[string]float64  `json:"unit_costs"`
	ItemCategories map[string]Category `json:"item_categories"`
	NumGuests      int                 `json:"num_guests"`
	TotalCost      float64             `json:"total_cost"`
	Satisfaction   float64             `json:"satisfaction"`
	TotalIntimacy  int                 `json:"total_intimacy"`
	Savings        float64             `json:"savings"`
	Efficiency     float64             `json:"efficiency"`
	Happiness      float64             `json:"happiness"`
}

// Foods returns the selected item names that are not drinks, in menu order.
func (r Recommendation) Foods() []string {
	var foods []string
	for _, name := range r.SelectedItems {
		if r.ItemCategories[name] != CategoryDrink {
			foods = append(foods, name)
		}
	}
	return foods
}

// Drinks returns the selected drink names, in menu order.
func (r Recommendation) Drinks() []string {
	var drinks []string
	for _, name := range r.SelectedItems {
		if r.ItemCategories[name] == CategoryDrink {
			drinks = append(drinks, name)
		}
	}
	return drinks
}
