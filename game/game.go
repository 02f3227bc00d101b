package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brensch/snekterm/geom"
	"github.com/brensch/snekterm/rules"
	"github.com/google/uuid"
)

// State is the round phase.
type State int

const (
	Playing State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game_over"
	}
	return "playing"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "playing":
		*s = Playing
	case "game_over":
		*s = GameOver
	default:
		return fmt.Errorf("unknown state %q", b)
	}
	return nil
}

// DefaultScreen is the play area used by the terminal frontend.
var DefaultScreen = geom.V(150, 75)

// Game is one round: it owns the snake, the food, the score and the
// difficulty, and decides the order things happen in each tick.
type Game struct {
	difficulty rules.Difficulty
	snake      *Snake
	food       Food
	score      uint
	screen     geom.Vec
	state      State
	rng        *rand.Rand

	roundID string
	tick    uint64
	elapsed time.Duration
}

// New creates a game in the Playing state. A nil rng is replaced with a
// time-seeded source.
func New(difficulty rules.Difficulty, screen geom.Vec, rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		difficulty: difficulty,
		snake:      NewSnake(difficulty, screen),
		food:       NewFood(),
		screen:     screen,
		state:      Playing,
		rng:        rng,
		roundID:    uuid.NewString(),
	}
}

// Reset starts a fresh round with the current difficulty. The food returns
// to a fixed point rather than a random one.
func (g *Game) Reset() {
	g.snake.Reset()
	g.snake.SetDifficulty(g.difficulty)
	g.state = Playing
	g.score = 0
	g.food.Pos = ResetFoodPos
	g.roundID = uuid.NewString()
	g.tick = 0
	g.elapsed = 0
}

// Update advances the round by dt. Once the round is over it does nothing.
func (g *Game) Update(dt time.Duration) {
	if g.state == GameOver {
		return
	}
	g.tick++
	g.elapsed += dt

	g.snake.Integrate(dt)
	if g.snake.Dead() {
		g.state = GameOver
	}

	g.checkFood()
}

func (g *Game) checkFood() {
	if !g.food.HitBy(g.snake.Head()) {
		return
	}
	g.score++
	g.food.Respawn(g.rng, g.screen)
	g.snake.Grow(rules.Growth(g.difficulty), rules.SpeedGain(g.difficulty, g.snake.Speed()))
}

// Turn forwards a steering command to the snake.
func (g *Game) Turn(d Direction) bool {
	return g.snake.Turn(d)
}

// IncreaseDifficulty steps the level up, wrapping from Hard to Easy. The
// snake picks it up immediately for future border checks and growth.
func (g *Game) IncreaseDifficulty() {
	g.setDifficulty(g.difficulty.Increase())
}

// DecreaseDifficulty steps the level down, stopping at Easy.
func (g *Game) DecreaseDifficulty() {
	g.setDifficulty(g.difficulty.Decrease())
}

func (g *Game) setDifficulty(d rules.Difficulty) {
	g.difficulty = d
	g.snake.SetDifficulty(d)
}

func (g *Game) Difficulty() rules.Difficulty { return g.difficulty }
func (g *Game) Score() uint                  { return g.score }
func (g *Game) State() State                 { return g.state }
func (g *Game) Screen() geom.Vec             { return g.screen }
func (g *Game) Food() Food                   { return g.food }
func (g *Game) RoundID() string              { return g.roundID }
