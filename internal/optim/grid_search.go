// Package optim searches parameter combinations for the setting that
// minimizes a run metric.
package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
)

// Candidate is one parameter combination with its achieved score.
type Candidate struct {
	Params map[string]float64
	Score  float64
}

// EvalFunc builds and runs one simulation for a parameter set and
// returns the metric being minimized. It must be safe for concurrent
// calls, i.e. construct its own cloth and runner per call.
type EvalFunc func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64

	// Workers caps concurrent evaluations; 0 means NumCPU.
	Workers int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every combination and returns the best one.
// Failed evaluations are skipped; an error is returned only when no
// combination could be evaluated or the context was cancelled.
func (g *GridSearch) Search(ctx context.Context, evaluate EvalFunc) (Candidate, error) {
	combos := g.enumerate()
	if len(combos) == 0 {
		return Candidate{}, fmt.Errorf("empty search space")
	}

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(combos) {
		workers = len(combos)
	}

	jobs := make(chan map[string]float64)
	var mu sync.Mutex
	best := Candidate{Score: math.Inf(1)}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				score, err := evaluate(ctx, params)
				if err != nil {
					continue
				}
				mu.Lock()
				if score < best.Score {
					best = Candidate{Params: params, Score: score}
				}
				mu.Unlock()
			}
		}()
	}

	for _, combo := range combos {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return Candidate{}, ctx.Err()
		case jobs <- combo:
		}
	}
	close(jobs)
	wg.Wait()

	if best.Params == nil {
		return Candidate{}, fmt.Errorf("no parameter combination could be evaluated")
	}
	return best, nil
}

func (g *GridSearch) enumerate() []map[string]float64 {
	combos := []map[string]float64{{}}
	for depth, name := range g.paramNames {
		next := make([]map[string]float64, 0, len(combos)*len(g.ranges[depth]))
		for _, combo := range combos {
			for _, val := range g.ranges[depth] {
				expanded := make(map[string]float64, len(combo)+1)
				for k, v := range combo {
					expanded[k] = v
				}
				expanded[name] = val
				next = append(next, expanded)
			}
		}
		combos = next
	}
	return combos
}
