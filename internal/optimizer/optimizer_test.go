package optimizer

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"

	"fete/internal/models"
)

func fullCatalog(t *testing.T) []models.MenuItem {
	t.Helper()
	return []models.MenuItem{
		mustItem(t, "Chicken", 5.70, models.CategoryMain),
		mustItem(t, "Chips", 2.99, models.CategorySnack),
		mustItem(t, "Soda", 2.49, models.CategoryDrink),
		mustItem(t, "Tea", 1.89, models.CategoryDrink),
	}
}

func TestOptimizeWorkedExample(t *testing.T) {
	guests, _, _ := partyCatalog(t)
	opt := New(guests, fullCatalog(t))
	config := scorerConfig(30)

	ranked, err := opt.OptimizeRanked(context.Background(), config)
	if err != nil {
		t.Fatalf("OptimizeRanked failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 recommendations (one per feasible subset), got %d", len(ranked))
	}

	top := ranked[0]
	if !reflect.DeepEqual(top.GuestNames, []string{"Tom", "Ariel"}) {
		t.Errorf("expected both guests in the top plan, got %v", top.GuestNames)
	}
	if !reflect.DeepEqual(top.SelectedItems, []string{"Chicken", "Soda"}) {
		t.Errorf("expected top menu [Chicken Soda], got %v", top.SelectedItems)
	}
	if top.TotalCost != 16.38 || top.Satisfaction != 15 {
		t.Errorf("expected cost 16.38 satisfaction 15, got %v/%v", top.TotalCost, top.Satisfaction)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Happiness > ranked[i-1].Happiness {
			t.Errorf("ranking not descending at %d: %v > %v", i, ranked[i].Happiness, ranked[i-1].Happiness)
		}
	}
}

func TestOptimizeDeterministicOrder(t *testing.T) {
	guests, _, _ := partyCatalog(t)
	config := scorerConfig(30)

	// Unranked output follows subset enumeration order regardless of
	// worker scheduling: sizes ascending, lexicographic within a size.
	var runs [][]models.Recommendation
	for i := 0; i < 5; i++ {
		opt := New(guests, fullCatalog(t))
		opt.Workers = 4
		recs, err := opt.Optimize(context.Background(), config)
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		runs = append(runs, recs)
	}

	first := runs[0]
	if !reflect.DeepEqual(first[0].GuestNames, []string{"Tom"}) ||
		!reflect.DeepEqual(first[1].GuestNames, []string{"Ariel"}) ||
		!reflect.DeepEqual(first[2].GuestNames, []string{"Tom", "Ariel"}) {
		t.Errorf("unexpected enumeration order: %v %v %v",
			first[0].GuestNames, first[1].GuestNames, first[2].GuestNames)
	}
	for i := 1; i < len(runs); i++ {
		if !reflect.DeepEqual(runs[i], first) {
			t.Errorf("run %d differs from run 0", i)
		}
	}
}

func TestOptimizeEmptyPool(t *testing.T) {
	opt := New(nil, fullCatalog(t))
	recs, err := opt.Optimize(context.Background(), scorerConfig(30))
	if err != nil {
		t.Fatalf("empty pool should not error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no recommendations, got %d", len(recs))
	}
}

func TestOptimizeBudgetTooLow(t *testing.T) {
	guests, _, _ := partyCatalog(t)
	opt := New(guests, fullCatalog(t))

	recs, err := opt.Optimize(context.Background(), scorerConfig(1))
	if err != nil {
		t.Fatalf("infeasible budget should not error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no recommendations under a $1 budget, got %d", len(recs))
	}
}

func TestOptimizeInvalidConfig(t *testing.T) {
	guests, _, _ := partyCatalog(t)
	opt := New(guests, fullCatalog(t))

	config := scorerConfig(30)
	config.MinGuests = 0
	if _, err := opt.Optimize(context.Background(), config); err == nil {
		t.Error("expected validation error for min guests 0")
	}
}

func TestOptimizeClampsMaxGuestsToPool(t *testing.T) {
	guests, _, _ := partyCatalog(t)
	opt := New(guests, fullCatalog(t))

	config := scorerConfig(30)
	config.MaxGuests = 50
	recs, err := opt.Optimize(context.Background(), config)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	// Pool has 2 guests, so the largest subset holds both of them.
	for _, r := range recs {
		if r.NumGuests > 2 {
			t.Errorf("subset larger than pool: %d guests", r.NumGuests)
		}
	}
}

func TestOptimizeMinGuestsAbovePool(t *testing.T) {
	guests, _, _ := partyCatalog(t)
	opt := New(guests, fullCatalog(t))

	config := scorerConfig(30)
	config.MinGuests = 5
	config.MaxGuests = 8
	recs, err := opt.Optimize(context.Background(), config)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("min guests above pool size should yield nothing, got %d", len(recs))
	}
}

func TestOptimizeCancellation(t *testing.T) {
	guests, _, _ := partyCatalog(t)
	opt := New(guests, fullCatalog(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := opt.Optimize(ctx, scorerConfig(30)); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOptimizeProgress(t *testing.T) {
	guests, _, _ := partyCatalog(t)
	opt := New(guests, fullCatalog(t))

	var last, total int64
	opt.Progress = func(done, n int64) {
		atomic.StoreInt64(&last, done)
		atomic.StoreInt64(&total, n)
	}
	if _, err := opt.Optimize(context.Background(), scorerConfig(30)); err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	// C(2,1) + C(2,2) = 3 subsets.
	if atomic.LoadInt64(&total) != 3 {
		t.Errorf("expected 3 total subsets, got %d", total)
	}
	if atomic.LoadInt64(&last) != 3 {
		t.Errorf("expected final progress 3, got %d", last)
	}
}

func TestPartition(t *testing.T) {
	catalog := fullCatalog(t)
	catalog = append(catalog, models.MenuItem{Name: "Mystery", Category: "unknown"})
	food, drinks := Partition(catalog)

	if got := itemNames(food); !reflect.DeepEqual(got, []string{"Chicken", "Chips"}) {
		t.Errorf("unexpected food group: %v", got)
	}
	if got := itemNames(drinks); !reflect.DeepEqual(got, []string{"Soda", "Tea"}) {
		t.Errorf("unexpected drink group: %v", got)
	}
}
