package models

import (
	"fmt"
	"strings"
)

// Validation bounds for guest data.
const (
	MinIntimacy   = 1
	MaxIntimacy   = 10
	MinPreference = 1
	MaxPreference = 5
)

// Guest represents a person who may be invited to a party.
// Preferences map item names to ratings; items a guest never rated are
// treated as rating 0. A Guest is validated at construction and never
// mutated by the optimizer.
type Guest struct {
	Name        string         `json:"name"`
	Preferences map[string]int `json:"preferences"`
	Intimacy    int            `json:"intimacy"`
	DietaryTags []string       `json:"dietary_tags,omitempty"`
}

// NewGuest validates and builds a Guest. The preferences map is copied so
// later mutation by the caller cannot leak into stored guests.
func NewGuest(name string, preferences map[string]int, intimacy int, dietaryTags []string) (Guest, error) {
	if strings.TrimSpace(name) == "" {
		return Guest{}, fmt.Errorf("guest name is required")
	}
	if intimacy < MinIntimacy || intimacy > MaxIntimacy {
		return Guest{}, fmt.Errorf("intimacy must be %d-%d, got %d", MinIntimacy, MaxIntimacy, intimacy)
	}

	prefs := make(map[string]int, len(preferences))
	for item, rating := range preferences {
		if rating < MinPreference || rating > MaxPreference {
			return Guest{}, fmt.Errorf("preference must be %d-%d, got %d for %q", MinPreference, MaxPreference, rating, item)
		}
		prefs[item] = rating
	}

	tags := make([]string, 0, len(dietaryTags))
	for _, t := range dietaryTags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return Guest{
		Name:        strings.TrimSpace(name),
		Preferences: prefs,
		Intimacy:    intimacy,
		DietaryTags: tags,
	}, nil
}

// Preference returns the guest's rating for an item, or 0 when unrated.
func (g Guest) Preference(item string) int {
	return g.Preferences[item]
}

// SameName reports whether the guest's name matches, ignoring case.
// Name uniqueness across a guest pool is case-insensitive.
func (g Guest) SameName(name string) bool {
	return strings.EqualFold(g.Name, name)
}
