package optimizer

import (
	"math"

	"fete/internal/models"
)

// Scorer turns a feasible outcome into the derived scores of a
// recommendation. The normalization scales are fixed once per optimization
// run, derived from the config, so happiness values are comparable across
// every recommendation produced by the same Optimize call:
//
//	satisfaction scale = max rating x max guests x max menu size
//	savings scale      = budget
//	intimacy scale     = max intimacy x max guests
type Scorer struct {
	config            models.OptimizationConfig
	satisfactionScale float64
	intimacyScale     float64
}

// NewScorer derives the per-run scales from a validated config.
func NewScorer(config models.OptimizationConfig) *Scorer {
	return &Scorer{
		config:            config,
		satisfactionScale: float64(models.MaxPreference * config.MaxGuests * config.Bounds.MaxMenuItems()),
		intimacyScale:     float64(models.MaxIntimacy * config.MaxGuests),
	}
}

// Savings returns the unspent budget for a given total cost.
func (s *Scorer) Savings(totalCost float64) float64 {
	return s.config.Budget - totalCost
}

// Efficiency returns satisfaction per dollar, or 0 for a free menu.
func (s *Scorer) Efficiency(satisfaction, totalCost float64) float64 {
	if totalCost == 0 {
		return 0
	}
	return satisfaction / totalCost
}

// Happiness computes the weighted composite objective from the normalized
// satisfaction, savings and intimacy terms.
func (s *Scorer) Happiness(satisfaction, savings float64, intimacy int) float64 {
	return s.config.SatisfactionWeight*(satisfaction/s.satisfactionScale) +
		s.config.SavingsWeight*(savings/s.config.Budget) +
		s.config.IntimacyWeight*(float64(intimacy)/s.intimacyScale)
}

// Score assembles a Recommendation from one guest subset and its optimal
// feasible menu. Monetary fields are rounded to cents, and savings and
// efficiency are computed from the rounded cost so the documented
// identities (savings = budget - total_cost, efficiency =
// satisfaction / total_cost) hold exactly on the stored values.
func (s *Scorer) Score(guests []models.Guest, outcome Outcome) models.Recommendation {
	guestNames := make([]string, len(guests))
	intimacy := 0
	for i, g := range guests {
		guestNames[i] = g.Name
		intimacy += g.Intimacy
	}

	itemNames := make([]string, len(outcome.Items))
	unitCosts := make(map[string]float64, len(outcome.Items))
	categories := make(map[string]models.Category, len(outcome.Items))
	for i, item := range outcome.Items {
		itemNames[i] = item.Name
		unitCosts[item.Name] = item.UnitCost
		categories[item.Name] = item.Category
	}

	totalCost := roundCents(outcome.TotalCost)
	savings := s.Savings(totalCost)
	efficiency := s.Efficiency(outcome.Satisfaction, totalCost)

	return models.Recommendation{
		GuestNames:     guestNames,
		SelectedItems:  itemNames,
		UnitCosts:      unitCosts,
		ItemCategories: categories,
		NumGuests:      len(guests),
		TotalCost:      totalCost,
		Satisfaction:   outcome.Satisfaction,
		TotalIntimacy:  intimacy,
		Savings:        savings,
		Efficiency:     efficiency,
		Happiness:      s.Happiness(outcome.Satisfaction, savings, intimacy),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
