package optimizer

import (
	"math"
	"testing"

	"fete/internal/models"
)

func TestStatisticsEmpty(t *testing.T) {
	if Statistics(nil) != nil {
		t.Error("no recommendations should yield nil stats, not an error value")
	}
	if Statistics([]models.Recommendation{}) != nil {
		t.Error("empty slice should yield nil stats")
	}
}

func TestStatisticsSummaries(t *testing.T) {
	recs := []models.Recommendation{
		{TotalCost: 10, Satisfaction: 5, TotalIntimacy: 6, NumGuests: 2},
		{TotalCost: 20, Satisfaction: 10, TotalIntimacy: 8, NumGuests: 2},
		{TotalCost: 30, Satisfaction: 15, TotalIntimacy: 10, NumGuests: 3},
	}
	stats := Statistics(recs)
	if stats == nil {
		t.Fatal("expected stats")
	}

	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.Cost.Mean != 20 || stats.Cost.Min != 10 || stats.Cost.Max != 30 {
		t.Errorf("unexpected cost summary: %+v", stats.Cost)
	}
	// Population standard deviation of [10 20 30].
	if math.Abs(stats.Cost.StdDev-math.Sqrt(200.0/3.0)) > 1e-9 {
		t.Errorf("expected population std %.6f, got %.6f", math.Sqrt(200.0/3.0), stats.Cost.StdDev)
	}
	if stats.Satisfaction.Mean != 10 {
		t.Errorf("expected satisfaction mean 10, got %v", stats.Satisfaction.Mean)
	}
	if stats.IntimacyMean != 8 {
		t.Errorf("expected intimacy mean 8, got %v", stats.IntimacyMean)
	}
}

func TestStatisticsGuestCounts(t *testing.T) {
	recs := []models.Recommendation{
		{NumGuests: 3},
		{NumGuests: 2},
		{NumGuests: 2},
		{NumGuests: 5},
	}
	stats := Statistics(recs)
	if stats.Guests.Min != 2 || stats.Guests.Max != 5 {
		t.Errorf("unexpected guest range: %+v", stats.Guests)
	}
	if stats.Guests.Mode != 2 {
		t.Errorf("expected mode 2, got %d", stats.Guests.Mode)
	}
	if stats.Guests.Mean != 3 {
		t.Errorf("expected mean 3, got %v", stats.Guests.Mean)
	}
}
