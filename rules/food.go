package rules

import (
	"math/rand"

	"github.com/brensch/snekterm/geom"
)

// FoodMargin keeps spawned food this far from every edge.
const FoodMargin = 10.0

// PlaceFood picks a uniformly random point inside bounds, inset by FoodMargin
// on every side.
//
// Bounds must exceed 2*FoodMargin on both axes; an axis that is too small
// collapses to its midpoint. A nil rng also yields the midpoint so callers
// without a random source stay deterministic.
func PlaceFood(rng *rand.Rand, bounds geom.Vec) geom.Vec {
	return geom.Vec{
		X: uniformInset(rng, bounds.X),
		Y: uniformInset(rng, bounds.Y),
	}
}

func uniformInset(rng *rand.Rand, extent float64) float64 {
	lo, hi := FoodMargin, extent-FoodMargin
	if rng == nil || hi <= lo {
		return extent / 2
	}
	return lo + rng.Float64()*(hi-lo)
}
