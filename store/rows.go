// Package store writes finished rounds to Parquet so they can be analysed
// offline. It only ever writes; nothing here is read back into a game.
package store

import (
	"github.com/brensch/snekterm/game"
)

// TickRow is one simulated frame of a round.
//
// Corners are stored newest first as parallel x/y columns, the same order the
// snake reports them.
type TickRow struct {
	RoundID        string    `parquet:"round_id,dict"`
	Tick           int64     `parquet:"tick"`
	ElapsedNS      int64     `parquet:"elapsed_ns"`
	HeadX          float64   `parquet:"head_x"`
	HeadY          float64   `parquet:"head_y"`
	DirX           int32     `parquet:"dir_x"`
	DirY           int32     `parquet:"dir_y"`
	Speed          float64   `parquet:"speed"`
	TargetLength   float64   `parquet:"target_length"`
	MeasuredLength float64   `parquet:"measured_length"`
	CornersX       []float64 `parquet:"corners_x"`
	CornersY       []float64 `parquet:"corners_y"`
	Score          int32     `parquet:"score"`
	State          string    `parquet:"state,dict"`
}

// RoundRow summarises a whole round.
type RoundRow struct {
	RoundID     string  `parquet:"round_id,dict"`
	StartedNS   int64   `parquet:"started_ns"`
	EndedNS     int64   `parquet:"ended_ns"`
	Difficulty  string  `parquet:"difficulty,dict"`
	Score       int32   `parquet:"score"`
	Ticks       int64   `parquet:"ticks"`
	FinalLength float64 `parquet:"final_length"`
	FinalSpeed  float64 `parquet:"final_speed"`
	Cause       string  `parquet:"cause,dict"`
}

// CauseAbandoned marks a round the player left before it was lost.
const CauseAbandoned = "abandoned"

const (
	tickSchema  = "snek_tick_v1"
	roundSchema = "snek_round_v1"
)

func tickRowFromSnapshot(s game.Snapshot) TickRow {
	dir := s.Direction.Vec()
	row := TickRow{
		RoundID:        s.RoundID,
		Tick:           int64(s.Tick),
		ElapsedNS:      s.Elapsed.Nanoseconds(),
		HeadX:          s.Head.X,
		HeadY:          s.Head.Y,
		DirX:           int32(dir.X),
		DirY:           int32(dir.Y),
		Speed:          s.Speed,
		TargetLength:   s.TargetLength,
		MeasuredLength: s.MeasuredLength,
		CornersX:       make([]float64, len(s.Corners)),
		CornersY:       make([]float64, len(s.Corners)),
		Score:          int32(s.Score),
		State:          s.State.String(),
	}
	for i, c := range s.Corners {
		row.CornersX[i] = c.X
		row.CornersY[i] = c.Y
	}
	return row
}

func roundRowFromSnapshot(s game.Snapshot, started, ended int64, ticks int64, abandoned bool) RoundRow {
	cause := s.Lose.String()
	if abandoned {
		cause = CauseAbandoned
	}
	return RoundRow{
		RoundID:     s.RoundID,
		StartedNS:   started,
		EndedNS:     ended,
		Difficulty:  s.Difficulty.String(),
		Score:       int32(s.Score),
		Ticks:       ticks,
		FinalLength: s.MeasuredLength,
		FinalSpeed:  s.Speed,
		Cause:       cause,
	}
}
