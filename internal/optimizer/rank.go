package optimizer

import (
	"sort"

	"fete/internal/models"
)

// Rank returns a copy of the recommendations sorted by happiness
// descending, with satisfaction descending as the tie-break. Entries equal
// on both keys keep their input order (stable sort).
func Rank(recommendations []models.Recommendation) []models.Recommendation {
	ranked := append([]models.Recommendation(nil), recommendations...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Happiness != ranked[j].Happiness {
			return ranked[i].Happiness > ranked[j].Happiness
		}
		return ranked[i].Satisfaction > ranked[j].Satisfaction
	})
	return ranked
}

// TopN ranks the recommendations and returns at most n entries.
func TopN(recommendations []models.Recommendation, n int) []models.Recommendation {
	ranked := Rank(recommendations)
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
