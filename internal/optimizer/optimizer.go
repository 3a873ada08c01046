package optimizer

import (
	"context"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"fete/internal/models"
)

// Optimizer evaluates every guest subset in the configured size range
// against the catalog and produces one recommendation per subset that has
// a feasible menu. The catalog is partitioned once at construction.
type Optimizer struct {
	guests []models.Guest
	food   []models.MenuItem
	drinks []models.MenuItem

	// Workers bounds the number of concurrent subset evaluations.
	// Zero means one worker per CPU.
	Workers int

	// Progress, when set, is called after each subset evaluation with the
	// number of subsets done so far and the total. Called from worker
	// goroutines; implementations must be safe for concurrent use.
	Progress func(done, total int64)
}

// New builds an Optimizer over a guest pool and an item catalog.
func New(guests []models.Guest, catalog []models.MenuItem) *Optimizer {
	food, drinks := Partition(catalog)
	return &Optimizer{guests: guests, food: food, drinks: drinks}
}

type subsetJob struct {
	index  int
	guests []models.Guest
}

// Optimize enumerates every guest subset of each size in
// [config.MinGuests, min(config.MaxGuests, pool size)], finds the best
// feasible menu for each, and returns the resulting recommendations in
// subset enumeration order. Subsets with no feasible menu are skipped
// silently; "found nothing" is an empty slice with a nil error.
//
// Subset evaluations are independent, so they run on a worker pool. The
// output order is deterministic regardless of worker scheduling: results
// are merged by enumeration index before being returned. Cancelling ctx
// stops the enumeration and returns ctx.Err().
func (o *Optimizer) Optimize(ctx context.Context, config models.OptimizationConfig) ([]models.Recommendation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(o.guests) == 0 {
		return []models.Recommendation{}, nil
	}

	maxGuests := config.MaxGuests
	if maxGuests > len(o.guests) {
		// Clamping down to the pool size is allowed but never silent.
		log.Printf("[optimizer] clamping max guests %d to pool size %d", maxGuests, len(o.guests))
		maxGuests = len(o.guests)
	}
	minGuests := config.MinGuests
	if minGuests > maxGuests {
		return []models.Recommendation{}, nil
	}

	jobs := o.enumerateSubsets(minGuests, maxGuests)
	if len(jobs) == 0 {
		return []models.Recommendation{}, nil
	}

	scorer := NewScorer(config)
	results := make([]*models.Recommendation, len(jobs))
	total := int64(len(jobs))
	var done int64

	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan subsetJob)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				outcome := SearchBestMenu(job.guests, config.Budget, o.food, o.drinks, config.Bounds)
				if !outcome.Empty() {
					rec := scorer.Score(job.guests, outcome)
					results[job.index] = &rec
				}
				n := atomic.AddInt64(&done, 1)
				if o.Progress != nil {
					o.Progress(n, total)
				}
			}
		}()
	}

	var ctxErr error
feed:
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break feed
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}

	recommendations := make([]models.Recommendation, 0, len(jobs))
	for _, r := range results {
		if r != nil {
			recommendations = append(recommendations, *r)
		}
	}
	log.Printf("[optimizer] evaluated %d subsets, %d feasible", len(jobs), len(recommendations))
	return recommendations, nil
}

// OptimizeRanked runs Optimize and returns the result in ranked order.
func (o *Optimizer) OptimizeRanked(ctx context.Context, config models.OptimizationConfig) ([]models.Recommendation, error) {
	recs, err := o.Optimize(ctx, config)
	if err != nil {
		return nil, err
	}
	return Rank(recs), nil
}

// enumerateSubsets materializes every unordered guest subset of each size
// in [minGuests, maxGuests], smallest sizes first. Materializing up front
// keeps result indexing deterministic for the worker pool.
func (o *Optimizer) enumerateSubsets(minGuests, maxGuests int) []subsetJob {
	capacity := int64(0)
	for size := minGuests; size <= maxGuests; size++ {
		capacity += countCombinations(len(o.guests), size)
	}

	jobs := make([]subsetJob, 0, capacity)
	for size := minGuests; size <= maxGuests; size++ {
		forEachCombination(len(o.guests), size, func(idx []int) {
			subset := make([]models.Guest, len(idx))
			for i, gi := range idx {
				subset[i] = o.guests[gi]
			}
			jobs = append(jobs, subsetJob{index: len(jobs), guests: subset})
		})
	}
	return jobs
}
