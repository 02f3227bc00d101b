// Package tui is the terminal frontend: it maps keys to game commands, drives
// the frame loop with bubbletea ticks, and renders snapshots with lipgloss.
package tui

import (
	"time"

	"github.com/brensch/snekterm/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// DefaultFrameInterval is roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Sounds plays feedback for round events.
type Sounds interface {
	OnEat()
	OnGameOver()
}

// Publisher receives every simulated frame, e.g. for spectators.
type Publisher interface {
	Publish(game.Snapshot)
}

// Recorder captures a round tick by tick.
type Recorder interface {
	Begin(game.Snapshot)
	Record(game.Snapshot)
	End(final game.Snapshot, abandoned bool) (string, error)
}

// Options wires optional collaborators into the model. Nil fields are
// skipped.
type Options struct {
	FrameInterval time.Duration
	Sounds        Sounds
	Publisher     Publisher
	Recorder      Recorder
}

type frameMsg time.Time

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model is the bubbletea model for the whole program.
type Model struct {
	game   *game.Game
	opts   Options
	screen Screen

	width, height int

	// Only the latest turn requested between two frames is applied.
	pendingTurn game.Direction
	turnQueued  bool

	lastFrame time.Time
	lastScore uint
	lastState game.State
	recording bool
}

func New(g *game.Game, opts Options) *Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	return &Model{
		game:   g,
		opts:   opts,
		screen: ScreenHome,
		width:  80,
		height: 24,
	}
}

func (m *Model) Screen() Screen { return m.screen }

func (m *Model) Init() tea.Cmd {
	return frameCmd(m.opts.FrameInterval)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.apply(commandFor(m.screen, msg.String()))
	case frameMsg:
		m.frame(time.Time(msg))
		return m, frameCmd(m.opts.FrameInterval)
	}
	return m, nil
}

// apply runs one command. Only Quit produces a bubbletea command.
func (m *Model) apply(c Command) tea.Cmd {
	if d, ok := turnFor(c); ok {
		m.pendingTurn, m.turnQueued = d, true
		return nil
	}

	switch c {
	case CmdQuit:
		if m.screen == ScreenPlay {
			m.endRecording(true)
		}
		return tea.Quit
	case CmdIncreaseDifficulty:
		m.game.IncreaseDifficulty()
		log.Info().Str("difficulty", m.game.Difficulty().String()).Msg("difficulty changed")
	case CmdDecreaseDifficulty:
		m.game.DecreaseDifficulty()
		log.Info().Str("difficulty", m.game.Difficulty().String()).Msg("difficulty changed")
	case CmdStartRound:
		m.startRound()
	case CmdReturnToMenu:
		m.endRecording(true)
		m.screen = ScreenHome
		m.turnQueued = false
	}
	return nil
}

func (m *Model) startRound() {
	m.game.Reset()
	m.screen = ScreenPlay
	m.turnQueued = false
	m.lastFrame = time.Time{}
	m.lastScore = 0
	m.lastState = game.Playing

	snap := m.game.Snapshot()
	log.Info().
		Str("round", snap.RoundID).
		Str("difficulty", snap.Difficulty.String()).
		Msg("round started")
	if m.opts.Recorder != nil {
		m.opts.Recorder.Begin(snap)
		m.recording = true
	}
}

// frame advances the simulation by the wall time since the previous frame.
// The first frame of a round only sets the clock.
func (m *Model) frame(now time.Time) {
	if m.screen != ScreenPlay {
		return
	}
	if m.lastFrame.IsZero() {
		m.lastFrame = now
		return
	}
	dt := now.Sub(m.lastFrame)
	m.lastFrame = now
	if dt <= 0 {
		return
	}
	m.step(dt)
}

func (m *Model) step(dt time.Duration) {
	if m.game.State() == game.GameOver {
		m.turnQueued = false
		return
	}
	if m.turnQueued {
		m.game.Turn(m.pendingTurn)
		m.turnQueued = false
	}
	m.game.Update(dt)
	snap := m.game.Snapshot()

	if m.recording {
		m.opts.Recorder.Record(snap)
	}
	if m.opts.Publisher != nil {
		m.opts.Publisher.Publish(snap)
	}

	if snap.Score > m.lastScore && m.opts.Sounds != nil {
		m.opts.Sounds.OnEat()
	}
	m.lastScore = snap.Score

	if snap.State == game.GameOver && m.lastState != game.GameOver {
		log.Info().
			Str("round", snap.RoundID).
			Str("cause", snap.Lose.String()).
			Uint("score", snap.Score).
			Float64("length", snap.MeasuredLength).
			Float64("speed", snap.Speed).
			Msg("round over")
		if m.opts.Sounds != nil {
			m.opts.Sounds.OnGameOver()
		}
		m.endRecording(false)
	}
	m.lastState = snap.State
}

func (m *Model) endRecording(abandoned bool) {
	if !m.recording {
		return
	}
	m.recording = false
	snap := m.game.Snapshot()
	path, err := m.opts.Recorder.End(snap, abandoned)
	if err != nil {
		log.Error().Err(err).Str("round", snap.RoundID).Msg("write round recording")
		return
	}
	if path != "" {
		log.Info().Str("round", snap.RoundID).Str("path", path).Msg("round recorded")
	}
}
