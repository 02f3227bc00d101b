// Package rules holds the difficulty-dependent tuning of a round: how fast
// the snake grows and speeds up, what the border does, and where food lands.
//
// Nothing here holds state; the game package applies these rules to its
// snake and food every tick.
package rules

import (
	"fmt"
	"strings"
)

// Difficulty is an ordered level. Its index feeds the growth formulas directly.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// DifficultyCount is the number of selectable levels.
const DifficultyCount = 3

var difficultyNames = [DifficultyCount]string{"Easy", "Normal", "Hard"}

// DifficultyFromIndex maps an index to a level. Out-of-range input maps to Easy.
func DifficultyFromIndex(idx int) Difficulty {
	if idx < 0 || idx >= DifficultyCount {
		return Easy
	}
	return Difficulty(idx)
}

// Index returns the ordinal used by the tuning formulas.
func (d Difficulty) Index() int {
	return int(DifficultyFromIndex(int(d)))
}

// Increase steps to the next level, wrapping from Hard back to Easy.
func (d Difficulty) Increase() Difficulty {
	return DifficultyFromIndex((d.Index() + 1) % DifficultyCount)
}

// Decrease steps to the previous level, stopping at Easy.
func (d Difficulty) Decrease() Difficulty {
	idx := d.Index() - 1
	if idx < 0 {
		idx = 0
	}
	return DifficultyFromIndex(idx)
}

func (d Difficulty) String() string {
	return difficultyNames[d.Index()]
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDifficulty accepts a level name (any case) or its index.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for i, name := range difficultyNames {
		if strings.EqualFold(s, name) || s == fmt.Sprint(i) {
			return Difficulty(i), nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}
