package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/splashsim/internal/sim"
)

// Objective scores a parameter set. Lower is better.
type Objective func(ctx context.Context, p sim.Params) (float64, error)

// GridSearch tries every combination of the given parameter values on top of
// a base parameter set.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

// Search returns the best parameters and their score. Combinations that fail
// validation or whose objective errors are skipped.
func (g *GridSearch) Search(ctx context.Context, base sim.Params, objective Objective) (sim.Params, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return base, 0, errors.New("optim: parameter names and ranges differ in length")
	}

	best := math.Inf(1)
	bestParams := base
	found := false

	g.searchRecursive(ctx, 0, base, objective, &best, &bestParams, &found)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	if !found {
		return base, 0, errors.New("optim: no valid combination")
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current sim.Params,
	objective Objective,
	best *float64,
	bestParams *sim.Params,
	found *bool,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		val, err := objective(ctx, current)
		if err != nil || math.IsNaN(val) {
			return
		}
		if val < *best {
			*best = val
			*bestParams = current
			*found = true
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := current
		if err := next.Set(paramName, val); err != nil {
			continue
		}
		g.searchRecursive(ctx, depth+1, next, objective, best, bestParams, found)
	}
}
