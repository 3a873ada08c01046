package optimizer

import (
	"math"
	"testing"

	"fete/internal/models"
)

func scorerConfig(budget float64) models.OptimizationConfig {
	config := models.NewOptimizationConfig(budget)
	config.MaxGuests = 2
	config.SatisfactionWeight = 0.5
	config.SavingsWeight = 0.3
	config.IntimacyWeight = 0.2
	config.Bounds = models.MenuBounds{MinFood: 1, MaxFood: 1, MinDrink: 1, MaxDrink: 1}
	return config
}

func TestScoreIdentities(t *testing.T) {
	guests, food, drinks := partyCatalog(t)
	config := scorerConfig(30)
	scorer := NewScorer(config)

	outcome := SearchBestMenu(guests, config.Budget, food, drinks, config.Bounds)
	rec := scorer.Score(guests, outcome)

	if math.Abs(rec.TotalCost-16.38) > 1e-9 {
		t.Errorf("expected total cost 16.38, got %v", rec.TotalCost)
	}
	if math.Abs(rec.Savings-(config.Budget-rec.TotalCost)) > 1e-9 {
		t.Errorf("savings identity broken: %v != %v - %v", rec.Savings, config.Budget, rec.TotalCost)
	}
	if math.Abs(rec.Efficiency-rec.Satisfaction/rec.TotalCost) > 1e-9 {
		t.Errorf("efficiency identity broken: %v != %v / %v", rec.Efficiency, rec.Satisfaction, rec.TotalCost)
	}
	if rec.NumGuests != 2 || rec.TotalIntimacy != 13 {
		t.Errorf("expected 2 guests with intimacy 13, got %d/%d", rec.NumGuests, rec.TotalIntimacy)
	}
	if rec.UnitCosts["Chicken"] != 5.70 || rec.ItemCategories["Soda"] != models.CategoryDrink {
		t.Errorf("item detail maps incomplete: %v %v", rec.UnitCosts, rec.ItemCategories)
	}
}

func TestHappinessComposition(t *testing.T) {
	guests, food, drinks := partyCatalog(t)
	config := scorerConfig(30)
	scorer := NewScorer(config)

	outcome := SearchBestMenu(guests, config.Budget, food, drinks, config.Bounds)
	rec := scorer.Score(guests, outcome)

	// Scales: satisfaction 5*2*2 = 20, intimacy 10*2 = 20, savings = budget.
	want := 0.5*(15.0/20.0) + 0.3*(13.62/30.0) + 0.2*(13.0/20.0)
	if math.Abs(rec.Happiness-want) > 1e-9 {
		t.Errorf("expected happiness %v, got %v", want, rec.Happiness)
	}
}

func TestHappinessScalesFixedPerRun(t *testing.T) {
	config := scorerConfig(30)
	scorer := NewScorer(config)

	// The same satisfaction always normalizes against the run-wide scale,
	// independent of how many guests a particular subset holds.
	soloGuests := []models.Guest{mustGuest(t, "Tom", map[string]int{"Chicken": 5, "Soda": 5}, 7)}
	_, food, drinks := partyCatalog(t)
	outcome := SearchBestMenu(soloGuests, config.Budget, food, drinks, config.Bounds)
	rec := scorer.Score(soloGuests, outcome)

	want := 0.5*(10.0/20.0) + 0.3*(rec.Savings/30.0) + 0.2*(7.0/20.0)
	if math.Abs(rec.Happiness-want) > 1e-9 {
		t.Errorf("expected happiness %v, got %v", want, rec.Happiness)
	}
}

func TestEfficiencyZeroCost(t *testing.T) {
	scorer := NewScorer(scorerConfig(30))
	if got := scorer.Efficiency(10, 0); got != 0 {
		t.Errorf("free menu should have efficiency 0, got %v", got)
	}
}

func TestTotalCostRoundedToCents(t *testing.T) {
	guests := []models.Guest{
		mustGuest(t, "A", map[string]int{"Wings": 5, "Water": 5}, 5),
		mustGuest(t, "B", map[string]int{"Wings": 5, "Water": 5}, 5),
		mustGuest(t, "C", map[string]int{"Wings": 5, "Water": 5}, 5),
	}
	food := []models.MenuItem{mustItem(t, "Wings", 3.333, models.CategoryMain)}
	drinks := []models.MenuItem{mustItem(t, "Water", 0.111, models.CategoryDrink)}
	config := models.NewOptimizationConfig(100)
	config.Bounds = models.MenuBounds{MinFood: 1, MaxFood: 1, MinDrink: 1, MaxDrink: 1}
	scorer := NewScorer(config)

	outcome := SearchBestMenu(guests, 100, food, drinks, config.Bounds)
	rec := scorer.Score(guests, outcome)

	// 3 x 3.444 = 10.332, stored as 10.33.
	if rec.TotalCost != 10.33 {
		t.Errorf("expected cost rounded to 10.33, got %v", rec.TotalCost)
	}
	if math.Abs(rec.Savings-(100-10.33)) > 1e-9 {
		t.Errorf("savings must be computed from the rounded cost, got %v", rec.Savings)
	}
}
