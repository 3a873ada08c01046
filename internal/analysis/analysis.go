// Package analysis derives descriptive views over stored guests and the
// catalog: per-guest summaries, per-item popularity and value scores, and
// the full guest/item preference matrix.
package analysis

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"fete/internal/models"
)

// GuestSummary condenses one guest's preference data.
type GuestSummary struct {
	Name          string   `json:"name"`
	Intimacy      int      `json:"intimacy"`
	ItemsRated    int      `json:"items_rated"`
	AvgPreference float64  `json:"avg_preference"`
	DietaryTags   []string `json:"dietary_tags,omitempty"`
}

// SummarizeGuests returns one summary per guest, highest intimacy first.
func SummarizeGuests(guests []models.Guest) []GuestSummary {
	summaries := make([]GuestSummary, 0, len(guests))
	for _, g := range guests {
		ratings := make([]float64, 0, len(g.Preferences))
		for _, r := range g.Preferences {
			ratings = append(ratings, float64(r))
		}
		avg := 0.0
		if len(ratings) > 0 {
			avg = stat.Mean(ratings, nil)
		}
		summaries = append(summaries, GuestSummary{
			Name:          g.Name,
			Intimacy:      g.Intimacy,
			ItemsRated:    len(ratings),
			AvgPreference: avg,
			DietaryTags:   g.DietaryTags,
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Intimacy > summaries[j].Intimacy
	})
	return summaries
}

// ItemAnalysis scores one catalog item across the guest pool.
type ItemAnalysis struct {
	Name      string          `json:"name"`
	UnitCost  float64         `json:"unit_cost"`
	Category  models.Category `json:"category"`
	AvgRating float64         `json:"avg_rating"`
	// WeightedAvg weights each rating by the rater's intimacy, favoring
	// the opinions of close friends.
	WeightedAvg float64 `json:"weighted_avg"`
	NumRatings  int     `json:"num_ratings"`
	// Popularity = number of raters x average rating.
	Popularity float64 `json:"popularity"`
	// Value = intimacy-weighted rating per dollar; 0 for free items.
	Value float64 `json:"value"`
}

// AnalyzeItems scores every item that at least one guest rated, most
// popular first. Items nobody rated are omitted.
func AnalyzeItems(guests []models.Guest, catalog []models.MenuItem) []ItemAnalysis {
	var results []ItemAnalysis
	for _, item := range catalog {
		var ratings []float64
		weightedSum, intimacySum := 0.0, 0.0
		for _, g := range guests {
			rating := g.Preference(item.Name)
			if rating == 0 {
				continue
			}
			ratings = append(ratings, float64(rating))
			weightedSum += float64(rating * g.Intimacy)
			intimacySum += float64(g.Intimacy)
		}
		if len(ratings) == 0 {
			continue
		}

		avg := stat.Mean(ratings, nil)
		weightedAvg := 0.0
		if intimacySum > 0 {
			weightedAvg = weightedSum / intimacySum
		}
		value := 0.0
		if item.UnitCost > 0 {
			value = weightedAvg / item.UnitCost
		}
		results = append(results, ItemAnalysis{
			Name:        item.Name,
			UnitCost:    item.UnitCost,
			Category:    item.Category,
			AvgRating:   avg,
			WeightedAvg: weightedAvg,
			NumRatings:  len(ratings),
			Popularity:  float64(len(ratings)) * avg,
			Value:       value,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Popularity > results[j].Popularity
	})
	return results
}

// PreferenceMatrix is the guest x item rating grid. Zero cells mean
// unrated.
type PreferenceMatrix struct {
	Items   []string         `json:"items"`
	Guests  []string         `json:"guests"`
	Ratings map[string][]int `json:"ratings"`
}

// BuildPreferenceMatrix collects every item name any guest rated (sorted,
// case preserved from first appearance) and one rating row per guest.
func BuildPreferenceMatrix(guests []models.Guest) PreferenceMatrix {
	seen := make(map[string]string)
	for _, g := range guests {
		for item := range g.Preferences {
			key := strings.ToLower(item)
			if _, ok := seen[key]; !ok {
				seen[key] = item
			}
		}
	}
	items := make([]string, 0, len(seen))
	for _, item := range seen {
		items = append(items, item)
	}
	sort.Strings(items)

	matrix := PreferenceMatrix{
		Items:   items,
		Guests:  make([]string, len(guests)),
		Ratings: make(map[string][]int, len(guests)),
	}
	for i, g := range guests {
		matrix.Guests[i] = g.Name
		row := make([]int, len(items))
		for j, item := range items {
			row[j] = g.Preference(item)
		}
		matrix.Ratings[g.Name] = row
	}
	return matrix
}
