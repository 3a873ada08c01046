package optimizer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"fete/internal/models"
)

// Summary holds descriptive statistics for one recommendation field.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GuestCountSummary describes the distribution of subset sizes.
type GuestCountSummary struct {
	Mean float64 `json:"mean"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mode int     `json:"mode"`
}

// Stats aggregates descriptive statistics over a recommendation list.
type Stats struct {
	Total        int               `json:"total"`
	Cost         Summary           `json:"cost"`
	Satisfaction Summary           `json:"satisfaction"`
	IntimacyMean float64           `json:"intimacy_mean"`
	Guests       GuestCountSummary `json:"guests"`
}

// Statistics computes aggregate statistics over any recommendation list,
// ranked or not. Returns nil for an empty list: no recommendations is a
// valid outcome, not an error.
func Statistics(recommendations []models.Recommendation) *Stats {
	if len(recommendations) == 0 {
		return nil
	}

	costs := make([]float64, len(recommendations))
	satisfactions := make([]float64, len(recommendations))
	intimacies := make([]float64, len(recommendations))
	guests := make([]float64, len(recommendations))
	for i, r := range recommendations {
		costs[i] = r.TotalCost
		satisfactions[i] = r.Satisfaction
		intimacies[i] = float64(r.TotalIntimacy)
		guests[i] = float64(r.NumGuests)
	}

	sort.Float64s(guests)
	mode, _ := stat.Mode(guests, nil)

	return &Stats{
		Total:        len(recommendations),
		Cost:         summarize(costs),
		Satisfaction: summarize(satisfactions),
		IntimacyMean: stat.Mean(intimacies, nil),
		Guests: GuestCountSummary{
			Mean: stat.Mean(guests, nil),
			Min:  int(guests[0]),
			Max:  int(guests[len(guests)-1]),
			Mode: int(mode),
		},
	}
}

func summarize(values []float64) Summary {
	mean := stat.Mean(values, nil)
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Summary{
		Mean: mean,
		// Population standard deviation, matching the reporting layer's
		// expectations for small result sets.
		StdDev: math.Sqrt(stat.MomentAbout(2, values, mean, nil)),
		Min:    min,
		Max:    max,
	}
}
