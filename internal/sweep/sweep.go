// Package sweep runs exhaustive grid searches over named physical
// parameters, scoring each full simulation by a run metric.
package sweep

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Axis is one swept parameter and its candidate values.
type Axis struct {
	Name   string
	Values []float64
}

// ParseAxis parses a "name=lo:hi:n" flag spec into n evenly spaced values.
func ParseAxis(spec string) (Axis, error) {
	name, rng, ok := strings.Cut(spec, "=")
	if !ok {
		return Axis{}, fmt.Errorf("sweep: spec %q must be name=lo:hi:n", spec)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return Axis{}, fmt.Errorf("sweep: range %q must be lo:hi:n", rng)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Axis{}, fmt.Errorf("sweep: bad lower bound %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Axis{}, fmt.Errorf("sweep: bad upper bound %q: %w", parts[1], err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return Axis{}, fmt.Errorf("sweep: bad count %q", parts[2])
	}

	values := make([]float64, n)
	if n == 1 {
		values[0] = lo
	} else {
		step := (hi - lo) / float64(n-1)
		for i := range values {
			values[i] = lo + float64(i)*step
		}
	}
	return Axis{Name: name, Values: values}, nil
}

// Score runs one simulation for a parameter assignment and returns the
// value being optimized.
type Score func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	axes     []Axis
	maximize bool
}

func New(axes []Axis, maximize bool) *GridSearch {
	return &GridSearch{axes: axes, maximize: maximize}
}

// Search evaluates every combination and returns the best assignment and
// its score. Failed evaluations are skipped; an all-failed search returns
// an error.
func (g *GridSearch) Search(ctx context.Context, score Score) (map[string]float64, float64, error) {
	best := math.Inf(1)
	if g.maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), score, &best, &bestParams)

	if bestParams == nil {
		return nil, 0, fmt.Errorf("sweep: no combination evaluated successfully")
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	score Score,
	best *float64,
	bestParams *map[string]float64,
) {
	if depth == len(g.axes) {
		val, err := score(ctx, current)
		if err != nil {
			return
		}
		better := val < *best
		if g.maximize {
			better = val > *best
		}
		if better {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		next := make(map[string]float64)
		for k, v := range current {
			next[k] = v
		}
		next[axis.Name] = val

		g.searchRecursive(ctx, depth+1, next, score, best, bestParams)
	}
}
