// Package optim tunes steering gains by exhaustive search over a parameter
// grid, scoring each candidate with a closed-loop run.
package optim

import (
	"context"
	"math"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every grid point and returns the parameter set with the
// lowest score. Candidates whose evaluation fails are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	evaluate func(ctx context.Context, params map[string]float64) (float64, error),
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), evaluate, &best, &bestParams)

	return bestParams, best, ctx.Err()
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	evaluate func(ctx context.Context, params map[string]float64) (float64, error),
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		val, err := evaluate(ctx, current)
		if err != nil {
			return
		}

		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, evaluate, best, bestParams)
	}
}
