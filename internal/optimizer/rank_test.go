package optimizer

import (
	"testing"

	"fete/internal/models"
)

func rec(name string, happiness, satisfaction float64) models.Recommendation {
	return models.Recommendation{
		GuestNames:   []string{name},
		Happiness:    happiness,
		Satisfaction: satisfaction,
	}
}

func TestRankOrdering(t *testing.T) {
	recs := []models.Recommendation{
		rec("a", 0.5, 10),
		rec("b", 0.8, 5),
		rec("c", 0.5, 12),
	}
	ranked := Rank(recs)

	want := []string{"b", "c", "a"}
	for i, name := range want {
		if ranked[i].GuestNames[0] != name {
			t.Errorf("position %d: expected %s, got %s", i, name, ranked[i].GuestNames[0])
		}
	}
}

func TestRankStableOnFullTie(t *testing.T) {
	recs := []models.Recommendation{
		rec("first", 0.5, 10),
		rec("second", 0.5, 10),
	}
	ranked := Rank(recs)
	if ranked[0].GuestNames[0] != "first" {
		t.Error("equal entries must keep their input order")
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	recs := []models.Recommendation{
		rec("a", 0.1, 1),
		rec("b", 0.9, 2),
	}
	Rank(recs)
	if recs[0].GuestNames[0] != "a" {
		t.Error("Rank must sort a copy, not the input slice")
	}
}

func TestTopN(t *testing.T) {
	recs := []models.Recommendation{
		rec("a", 0.1, 1),
		rec("b", 0.9, 2),
		rec("c", 0.5, 3),
	}
	top := TopN(recs, 2)
	if len(top) != 2 || top[0].GuestNames[0] != "b" || top[1].GuestNames[0] != "c" {
		t.Errorf("unexpected top 2: %v", top)
	}
	if got := TopN(recs, 10); len(got) != 3 {
		t.Errorf("n beyond length should return everything, got %d", len(got))
	}
	if got := TopN(recs, -1); len(got) != 0 {
		t.Errorf("negative n should return nothing, got %d", len(got))
	}
}
