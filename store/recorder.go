package store

import (
	"fmt"
	"os"
	"time"

	"github.com/brensch/snekterm/game"
	"github.com/rs/zerolog/log"
)

// Recorder captures rounds into a directory: one round_<id>.parquet with a
// row per tick, and one rounds_<id>.parquet holding the summary row.
//
// A Recorder handles one round at a time and is not safe for concurrent use.
// Write failures are logged and stop the tick trace for that round; the
// round itself keeps going.
type Recorder struct {
	dir string
	now func() time.Time

	roundID string
	started time.Time
	ticks   int64
	ticksW  *tickWriter
}

func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, fmt.Errorf("record dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create record dir: %w", err)
	}
	return &Recorder{dir: dir, now: time.Now}, nil
}

func (r *Recorder) Dir() string { return r.dir }

// Begin opens a new round. A round still open is discarded.
func (r *Recorder) Begin(start game.Snapshot) {
	if r.roundID != "" {
		log.Warn().Str("round", r.roundID).Msg("discarding unfinished recording")
		r.reset()
	}

	r.roundID = start.RoundID
	r.started = r.now()
	r.ticks = 0

	w, err := newTickWriter(r.dir, start.RoundID)
	if err != nil {
		log.Error().Err(err).Str("round", start.RoundID).Msg("open tick recording")
		return
	}
	r.ticksW = w
}

// Record appends one frame. Frames from any other round are ignored.
func (r *Recorder) Record(s game.Snapshot) {
	if r.roundID == "" || s.RoundID != r.roundID {
		return
	}
	r.ticks++
	if r.ticksW == nil {
		return
	}
	if err := r.ticksW.write(tickRowFromSnapshot(s)); err != nil {
		log.Error().Err(err).Str("round", r.roundID).Msg("record tick")
		r.ticksW.discard()
		r.ticksW = nil
	}
}

// End closes the round and writes its summary. The returned path is the
// summary file.
func (r *Recorder) End(final game.Snapshot, abandoned bool) (string, error) {
	if r.roundID == "" {
		return "", fmt.Errorf("no round in progress")
	}
	if final.RoundID != r.roundID {
		return "", fmt.Errorf("end round %s: recording %s", final.RoundID, r.roundID)
	}
	defer r.reset()

	if r.ticksW != nil {
		path, err := r.ticksW.finalize()
		r.ticksW = nil
		if err != nil {
			return "", fmt.Errorf("finalize ticks: %w", err)
		}
		if path != "" {
			log.Debug().Str("round", r.roundID).Str("path", path).Int64("ticks", r.ticks).Msg("tick trace written")
		}
	}

	row := roundRowFromSnapshot(final, r.started.UnixNano(), r.now().UnixNano(), r.ticks, abandoned)
	path, err := writeParquetAtomic(r.dir, summaryFileName(r.roundID), roundSchema, []RoundRow{row})
	if err != nil {
		return "", fmt.Errorf("write round summary: %w", err)
	}
	return path, nil
}

func (r *Recorder) reset() {
	if r.ticksW != nil {
		r.ticksW.discard()
		r.ticksW = nil
	}
	r.roundID = ""
	r.ticks = 0
	r.started = time.Time{}
}
