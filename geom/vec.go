// Package geom provides the 2D vector math used by the simulation.
//
// Coordinates are continuous. Y grows upward: Up is (0, 1).
package geom

import "math"

// Vec is a 2D point or displacement. It is a value type and safe to copy.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Unit axis directions.
var (
	Up    = Vec{X: 0, Y: 1}
	Down  = Vec{X: 0, Y: -1}
	Left  = Vec{X: -1, Y: 0}
	Right = Vec{X: 1, Y: 0}
)

func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by f.
func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length.
func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns v scaled to unit length. The zero vector normalizes to
// itself instead of producing NaNs.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec) float64 {
	return b.Sub(a).Len()
}
