package optimizer

import "fete/internal/models"

// Outcome is the result of a menu feasibility search: the best feasible
// menu for one guest subset, or the zero Outcome when nothing feasible
// exists within the budget and count bounds.
type Outcome struct {
	Satisfaction float64
	Items        []models.MenuItem
	TotalCost    float64
}

// Empty reports whether the search found no feasible menu.
func (o Outcome) Empty() bool {
	return len(o.Items) == 0
}

// menuSatisfaction sums every guest's rating of every item in the menu.
// Unrated items contribute 0; they never disqualify a menu.
func menuSatisfaction(menu []models.MenuItem, guests []models.Guest) float64 {
	total := 0
	for _, item := range menu {
		for _, g := range guests {
			total += g.Preference(item.Name)
		}
	}
	return float64(total)
}

// SearchBestMenu exhaustively enumerates category-constrained item
// combinations for one guest subset and returns the feasible combination
// with the highest satisfaction. Cost scales with the guest count: a menu
// is feasible when len(guests) x sum(unit costs) <= budget.
//
// Tie-break: the first combination reaching a given satisfaction value, in
// enumeration order (food counts ascending, food combinations in
// lexicographic order, then drink counts and combinations likewise), wins.
// Ties are not re-resolved by cost or any secondary key.
//
// The search space is C(|food|,k) x C(|drinks|,m) summed over the allowed
// ranges; there is no pruning beyond the budget filter, so callers bound
// catalog sizes for acceptable runtime.
func SearchBestMenu(guests []models.Guest, budget float64, food, drinks []models.MenuItem, bounds models.MenuBounds) Outcome {
	if len(guests) == 0 || budget <= 0 {
		return Outcome{}
	}
	if len(food) < bounds.MinFood || len(drinks) < bounds.MinDrink {
		return Outcome{}
	}

	numGuests := float64(len(guests))
	best := Outcome{}

	maxFood := bounds.MaxFood
	if maxFood > len(food) {
		maxFood = len(food)
	}
	maxDrink := bounds.MaxDrink
	if maxDrink > len(drinks) {
		maxDrink = len(drinks)
	}

	menu := make([]models.MenuItem, 0, maxFood+maxDrink)

	for numFoods := bounds.MinFood; numFoods <= maxFood; numFoods++ {
		forEachCombination(len(food), numFoods, func(foodIdx []int) {
			menu = menu[:0]
			foodCost := 0.0
			for _, i := range foodIdx {
				menu = append(menu, food[i])
				foodCost += food[i].UnitCost
			}

			for numDrinks := bounds.MinDrink; numDrinks <= maxDrink; numDrinks++ {
				forEachCombination(len(drinks), numDrinks, func(drinkIdx []int) {
					candidate := menu[:numFoods]
					cost := foodCost
					for _, i := range drinkIdx {
						candidate = append(candidate, drinks[i])
						cost += drinks[i].UnitCost
					}

					totalCost := cost * numGuests
					if totalCost > budget {
						return
					}

					satisfaction := menuSatisfaction(candidate, guests)
					if satisfaction > best.Satisfaction {
						best = Outcome{
							Satisfaction: satisfaction,
							Items:        append([]models.MenuItem(nil), candidate...),
							TotalCost:    totalCost,
						}
					}
				})
			}
		})
	}

	return best
}
