// Package game implements the continuous-coordinate snake simulation: the
// snake's movement and collision rules, the food target, and the round that
// ties them together.
//
// The package is single-threaded. A Game is driven by one Update per frame
// and is not safe for concurrent use.
package game

import (
	"fmt"
	"time"

	"github.com/brensch/snekterm/geom"
	"github.com/brensch/snekterm/rules"
)

// LoseCondition records why a round ended.
type LoseCondition int

const (
	LoseNone LoseCondition = iota
	LoseBorder
	LoseSelfIntersect
)

func (c LoseCondition) String() string {
	switch c {
	case LoseNone:
		return "none"
	case LoseBorder:
		return "border"
	case LoseSelfIntersect:
		return "self_intersect"
	default:
		return "unknown"
	}
}

func (c LoseCondition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *LoseCondition) UnmarshalText(b []byte) error {
	for _, v := range []LoseCondition{LoseNone, LoseBorder, LoseSelfIntersect} {
		if string(b) == v.String() {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown lose condition %q", b)
}

// Snake defaults applied on construction and Reset.
const (
	DefaultSpeed        = 25.0
	DefaultTargetLength = 0.0
)

var (
	DefaultHead      = geom.V(50, 50)
	DefaultDirection = Right
)

// Snake is the moving head plus the polyline of turn points it leaves behind.
//
// The body is the path head -> corners[0] -> ... -> corners[n-1]. Each tick
// the oldest end of that path is retracted so its length tracks
// targetLength.
type Snake struct {
	difficulty   rules.Difficulty
	pos          geom.Vec
	dir          Direction
	speed        float64
	targetLength float64
	lose         LoseCondition
	bounds       geom.Vec
	corners      trail
}

// NewSnake returns a snake at the default position inside bounds.
func NewSnake(difficulty rules.Difficulty, bounds geom.Vec) *Snake {
	s := &Snake{difficulty: difficulty, bounds: bounds}
	s.Reset()
	return s
}

// Reset restores position, heading, speed and target length to their
// defaults, clears the corners and revives the snake. Difficulty and bounds
// are kept.
func (s *Snake) Reset() {
	s.pos = DefaultHead
	s.dir = DefaultDirection
	s.speed = DefaultSpeed
	s.targetLength = DefaultTargetLength
	s.corners.clear()
	s.lose = LoseNone
}

func (s *Snake) Head() geom.Vec                   { return s.pos }
func (s *Snake) Direction() Direction             { return s.dir }
func (s *Snake) Speed() float64                   { return s.speed }
func (s *Snake) TargetLength() float64            { return s.targetLength }
func (s *Snake) Lose() LoseCondition              { return s.lose }
func (s *Snake) Dead() bool                       { return s.lose != LoseNone }
func (s *Snake) Bounds() geom.Vec                 { return s.bounds }
func (s *Snake) Difficulty() rules.Difficulty     { return s.difficulty }
func (s *Snake) SetDifficulty(d rules.Difficulty) { s.difficulty = d }

// Corners returns a copy of the turn points, newest first.
func (s *Snake) Corners() []geom.Vec {
	return s.corners.newestFirst()
}

// MeasuredLength is the path length from the head through every corner.
func (s *Snake) MeasuredLength() float64 {
	return geom.PathLength(s.pos, s.corners.newestFirst())
}

// Turn changes heading and records the current head as the newest corner.
//
// Requests along the current axis (reversing, or repeating the current
// heading) are ignored, as is anything after the snake died. A second turn
// before the head has left the newest corner is ignored too, otherwise two
// quick turns would reverse the snake in place. It reports whether the turn
// was applied.
func (s *Snake) Turn(d Direction) bool {
	if s.Dead() || !d.valid() || d.sameAxis(s.dir) {
		return false
	}
	if s.corners.len() > 0 && s.corners.at(0) == s.pos {
		return false
	}
	s.dir = d
	s.corners.pushNewest(s.pos)
	return true
}

// Grow adds to the target length and speed. The body catches up over the
// following ticks since retraction stops trimming until it is long enough.
func (s *Snake) Grow(length, speed float64) {
	s.targetLength += length
	s.speed += speed
}

// Integrate advances the snake by dt: move, retract to target length, apply
// the border policy, then test for self intersection. A dead snake does not
// move.
func (s *Snake) Integrate(dt time.Duration) {
	if s.Dead() {
		return
	}
	s.pos = s.pos.Add(s.dir.Vec().Scale(s.speed * dt.Seconds()))
	s.retract()
	s.checkBorder()
	s.checkSelfIntersect()
}

// retract trims the oldest end of the body until the measured length is no
// longer above the target. Fully consumed segments are dropped; the last
// partial one is shortened by sliding its corner towards the head.
func (s *Snake) retract() {
	current := s.MeasuredLength()
	for current > s.targetLength && s.corners.len() > 0 {
		excess := current - s.targetLength

		last := s.corners.oldest()
		follow := s.pos
		if n := s.corners.len(); n > 1 {
			follow = s.corners.at(n - 2)
		}

		seg := geom.Dist(last, follow)
		if seg <= excess {
			s.corners.popOldest()
			current -= seg
			continue
		}

		// seg > excess > 0 here, so the direction is never the zero vector.
		step := follow.Sub(last).Normalize().Scale(excess)
		s.corners.setOldest(last.Add(step))
		return
	}
}

func (s *Snake) checkBorder() {
	switch s.difficulty.Boundary() {
	case rules.BoundaryWrap:
		s.pos = wrap(s.pos, s.bounds)
	case rules.BoundaryLethal:
		if outside(s.pos, s.bounds) {
			s.setLose(LoseBorder)
		}
	}
}

// checkSelfIntersect tests the segment from the head to the newest corner
// against every older segment. The segment corners[0]->corners[1] shares an
// endpoint with it and is skipped.
func (s *Snake) checkSelfIntersect() {
	n := s.corners.len()
	if n == 0 {
		return
	}
	newest := s.corners.at(0)
	for i := 1; i < n-1; i++ {
		if geom.SegmentsCross(s.pos, newest, s.corners.at(i), s.corners.at(i+1)) {
			s.setLose(LoseSelfIntersect)
			return
		}
	}
}

// setLose keeps the first cause; a lose condition is never overwritten.
func (s *Snake) setLose(c LoseCondition) {
	if s.lose == LoseNone {
		s.lose = c
	}
}

func outside(p, bounds geom.Vec) bool {
	return p.X < 0 || p.X > bounds.X || p.Y < 0 || p.Y > bounds.Y
}

func wrap(p, bounds geom.Vec) geom.Vec {
	if p.X < 0 {
		p.X = bounds.X
	} else if p.X > bounds.X {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = bounds.Y
	} else if p.Y > bounds.Y {
		p.Y = 0
	}
	return p
}
