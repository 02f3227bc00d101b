package game

import (
	"math/rand"

	"github.com/brensch/snekterm/geom"
	"github.com/brensch/snekterm/rules"
)

const (
	DefaultFoodRadius = 2.0
	// HeadReach approximates the drawn head radius for hit tests.
	HeadReach = 5.0
)

var (
	DefaultFoodPos = geom.V(150, 50)
	ResetFoodPos   = geom.V(70, 70)
)

// Food is the single target on the field.
type Food struct {
	Pos    geom.Vec
	Radius float64
}

func NewFood() Food {
	return Food{Pos: DefaultFoodPos, Radius: DefaultFoodRadius}
}

// Respawn moves the food to a random point inset from bounds.
func (f *Food) Respawn(rng *rand.Rand, bounds geom.Vec) {
	f.Pos = rules.PlaceFood(rng, bounds)
}

// HitBy reports whether a head at p consumes the food.
func (f Food) HitBy(p geom.Vec) bool {
	return geom.Dist(p, f.Pos)-HeadReach < f.Radius
}
