package game

import (
	"fmt"

	"github.com/brensch/snekterm/geom"
)

// Direction is one of the four axis-aligned headings.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

var directionVecs = [...]geom.Vec{geom.Up, geom.Down, geom.Left, geom.Right}

func (d Direction) valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	if !d.valid() {
		return "invalid"
	}
	return directionNames[d]
}

// Vec returns the unit vector for d.
func (d Direction) Vec() geom.Vec {
	if !d.valid() {
		return geom.Vec{}
	}
	return directionVecs[d]
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// sameAxis is true for equal or opposite directions.
func (d Direction) sameAxis(o Direction) bool {
	return d.Horizontal() == o.Horizontal()
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if string(b) == name {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", b)
}
