package rules

import "math"

// BoundaryPolicy decides what happens when the head leaves the play area.
type BoundaryPolicy int

const (
	// BoundaryWrap teleports the head to the opposite edge.
	BoundaryWrap BoundaryPolicy = iota
	// BoundaryLethal ends the round.
	BoundaryLethal
)

func (p BoundaryPolicy) String() string {
	if p == BoundaryWrap {
		return "wrap"
	}
	return "lethal"
}

// Boundary returns the border behaviour for d. Only Easy wraps.
func (d Difficulty) Boundary() BoundaryPolicy {
	if d.Index() == Easy.Index() {
		return BoundaryWrap
	}
	return BoundaryLethal
}

// Growth is the target length added per food eaten: 5 + 3*index.
func Growth(d Difficulty) float64 {
	return 5 + 3*float64(d.Index())
}

// SpeedGain is the speed added per food eaten at the given current speed.
//
// The denominator grows with speed once it passes 32 + 10*index, so late
// game gains shrink towards zero. It never drops below 1.
func SpeedGain(d Difficulty, speed float64) float64 {
	idx := float64(d.Index())
	return 1.25 * (idx + 1) / math.Max(1, speed-32-10*idx)
}
