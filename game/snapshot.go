package game

import (
	"time"

	"github.com/brensch/snekterm/geom"
	"github.com/brensch/snekterm/rules"
)

// Snapshot is a read-only copy of everything a renderer or recorder needs
// for one frame. It shares no memory with the Game.
type Snapshot struct {
	RoundID        string           `json:"round_id"`
	Tick           uint64           `json:"tick"`
	Elapsed        time.Duration    `json:"elapsed_ns"`
	Head           geom.Vec         `json:"head"`
	Direction      Direction        `json:"direction"`
	Corners        []geom.Vec       `json:"corners"`
	Food           geom.Vec         `json:"food"`
	FoodRadius     float64          `json:"food_radius"`
	Score          uint             `json:"score"`
	State          State            `json:"state"`
	Lose           LoseCondition    `json:"lose"`
	Speed          float64          `json:"speed"`
	TargetLength   float64          `json:"target_length"`
	MeasuredLength float64          `json:"measured_length"`
	Difficulty     rules.Difficulty `json:"difficulty"`
	Bounds         geom.Vec         `json:"bounds"`
}

// Snapshot copies the current frame.
func (g *Game) Snapshot() Snapshot {
	s := g.snake
	return Snapshot{
		RoundID:        g.roundID,
		Tick:           g.tick,
		Elapsed:        g.elapsed,
		Head:           s.Head(),
		Direction:      s.Direction(),
		Corners:        s.Corners(),
		Food:           g.food.Pos,
		FoodRadius:     g.food.Radius,
		Score:          g.score,
		State:          g.state,
		Lose:           s.Lose(),
		Speed:          s.Speed(),
		TargetLength:   s.TargetLength(),
		MeasuredLength: s.MeasuredLength(),
		Difficulty:     g.difficulty,
		Bounds:         g.screen,
	}
}

// FoodDistance is the distance from the head to the food centre.
func (s Snapshot) FoodDistance() float64 {
	return geom.Dist(s.Head, s.Food)
}
