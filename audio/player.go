// Package audio synthesizes the game's sound effects with beep.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"
)

// SampleRate is the speaker rate used for every effect.
const SampleRate = beep.SampleRate(44100)

// Player plays effects through the system speaker. Until Init succeeds every
// method is a no-op, so a Player is safe to use on machines without audio.
type Player struct {
	Volume float64

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer(volume float64) *Player {
	return &Player{Volume: volume, mixer: &beep.Mixer{}}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	log.Info().Int("rate", int(SampleRate)).Msg("audio ready")
	return nil
}

func (p *Player) OnEat()      { p.play(eatChime(SampleRate, p.Volume)) }
func (p *Player) OnGameOver() { p.play(crashBuzz(SampleRate, p.Volume)) }

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
