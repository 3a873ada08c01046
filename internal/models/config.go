package models

import (
	"fmt"
	"math"
)

// Optimization defaults and validation bounds.
const (
	DefaultSatisfactionWeight = 0.4
	DefaultSavingsWeight      = 0.2
	DefaultIntimacyWeight     = 0.4
	DefaultMaxGuests          = 8
	DefaultTopN               = 5

	MinBudget = 0.01
	MaxBudget = 10000.0

	// WeightTolerance is the allowed deviation of the weight sum from 1.0.
	WeightTolerance = 0.01
)

// MenuBounds holds the category-count constraints for a menu: how many
// shareable-food items and how many drinks a candidate menu may contain.
type MenuBounds struct {
	MinFood  int `json:"min_food" yaml:"min_food"`
	MaxFood  int `json:"max_food" yaml:"max_food"`
	MinDrink int `json:"min_drink" yaml:"min_drink"`
	MaxDrink int `json:"max_drink" yaml:"max_drink"`
}

// DefaultMenuBounds returns the range-based policy: 1-3 foods and 1-2 drinks.
func DefaultMenuBounds() MenuBounds {
	return MenuBounds{MinFood: 1, MaxFood: 3, MinDrink: 1, MaxDrink: 2}
}

// Validate checks that both count ranges are well formed.
func (b MenuBounds) Validate() error {
	if b.MinFood < 1 || b.MaxFood < b.MinFood {
		return fmt.Errorf("food count bounds invalid: min=%d max=%d", b.MinFood, b.MaxFood)
	}
	if b.MinDrink < 1 || b.MaxDrink < b.MinDrink {
		return fmt.Errorf("drink count bounds invalid: min=%d max=%d", b.MinDrink, b.MaxDrink)
	}
	return nil
}

// MaxMenuItems returns the largest menu size the bounds permit.
func (b MenuBounds) MaxMenuItems() int {
	return b.MaxFood + b.MaxDrink
}

// OptimizationConfig carries everything one optimization run needs beyond
// the guest pool and catalog. Validated once at construction; an invalid
// config is rejected before any enumeration begins.
type OptimizationConfig struct {
	Budget             float64    `json:"budget"`
	MinGuests          int        `json:"min_guests"`
	MaxGuests          int        `json:"max_guests"`
	SatisfactionWeight float64    `json:"satisfaction_weight"`
	SavingsWeight      float64    `json:"savings_weight"`
	IntimacyWeight     float64    `json:"intimacy_weight"`
	Bounds             MenuBounds `json:"bounds"`
}

// NewOptimizationConfig builds a config with the default weights, guest
// range 1..DefaultMaxGuests and the default menu bounds.
func NewOptimizationConfig(budget float64) OptimizationConfig {
	return OptimizationConfig{
		Budget:             budget,
		MinGuests:          1,
		MaxGuests:          DefaultMaxGuests,
		SatisfactionWeight: DefaultSatisfactionWeight,
		SavingsWeight:      DefaultSavingsWeight,
		IntimacyWeight:     DefaultIntimacyWeight,
		Bounds:             DefaultMenuBounds(),
	}
}

// Validate checks all construction-time invariants from the config.
func (c OptimizationConfig) Validate() error {
	if c.Budget < MinBudget || c.Budget > MaxBudget {
		return fmt.Errorf("budget must be between $%.2f and $%.2f, got %.2f", MinBudget, MaxBudget, c.Budget)
	}
	if c.MinGuests < 1 {
		return fmt.Errorf("min guests must be at least 1, got %d", c.MinGuests)
	}
	if c.MaxGuests < c.MinGuests {
		return fmt.Errorf("max guests (%d) cannot be below min guests (%d)", c.MaxGuests, c.MinGuests)
	}
	if c.SatisfactionWeight < 0 || c.SavingsWeight < 0 || c.IntimacyWeight < 0 {
		return fmt.Errorf("weights cannot be negative")
	}
	sum := c.SatisfactionWeight + c.SavingsWeight + c.IntimacyWeight
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.3f", sum)
	}
	return c.Bounds.Validate()
}
