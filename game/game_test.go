package game

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/brensch/snekterm/geom"
	"github.com/brensch/snekterm/rules"
)

func newTestGame(d rules.Difficulty) *Game {
	return New(d, DefaultScreen, rand.New(rand.NewSource(42)))
}

// feed puts the food right next to the head so the next Update eats it.
func feed(g *Game) {
	g.food.Pos = g.snake.Head().Add(geom.V(1, 0))
}

func TestGame_NewDefaults(t *testing.T) {
	g := newTestGame(rules.Normal)
	if g.State() != Playing || g.Score() != 0 || g.Difficulty() != rules.Normal {
		t.Fatalf("unexpected defaults: state=%v score=%d diff=%v", g.State(), g.Score(), g.Difficulty())
	}
	if g.Food().Pos != DefaultFoodPos || g.Food().Radius != DefaultFoodRadius {
		t.Fatalf("food=%+v want pos=%v radius=%v", g.Food(), DefaultFoodPos, DefaultFoodRadius)
	}
	if g.RoundID() == "" {
		t.Fatalf("missing round id")
	}
}

func TestGame_EatGrowsByDifficulty(t *testing.T) {
	for _, d := range []rules.Difficulty{rules.Easy, rules.Normal, rules.Hard} {
		t.Run(d.String(), func(t *testing.T) {
			g := newTestGame(d)
			for i := 1; i <= 5; i++ {
				beforeLen := g.snake.TargetLength()
				beforeSpeed := g.snake.Speed()
				feed(g)
				g.Update(time.Millisecond)

				if g.Score() != uint(i) {
					t.Fatalf("score=%d want=%d", g.Score(), i)
				}
				wantLen := beforeLen + 5 + 3*float64(d.Index())
				if g.snake.TargetLength() != wantLen {
					t.Fatalf("target length=%v want=%v", g.snake.TargetLength(), wantLen)
				}
				if g.snake.Speed() <= beforeSpeed {
					t.Fatalf("speed did not increase: %v -> %v", beforeSpeed, g.snake.Speed())
				}
			}
		})
	}
}

func TestGame_EatRespawnsFoodInset(t *testing.T) {
	g := newTestGame(rules.Normal)
	feed(g)
	g.Update(time.Millisecond)

	p := g.Food().Pos
	m := rules.FoodMargin
	if p.X < m || p.X > g.Screen().X-m || p.Y < m || p.Y > g.Screen().Y-m {
		t.Fatalf("food respawned at %v outside inset screen", p)
	}
}

func TestGame_MissDoesNotScore(t *testing.T) {
	g := newTestGame(rules.Normal)
	g.Update(10 * time.Millisecond)
	if g.Score() != 0 || g.snake.TargetLength() != 0 {
		t.Fatalf("score=%d target=%v, expected no consumption", g.Score(), g.snake.TargetLength())
	}
}

func TestGame_BorderEndsRound(t *testing.T) {
	g := newTestGame(rules.Normal)
	g.snake.pos = geom.V(g.Screen().X-0.1, 40)
	g.Update(100 * time.Millisecond)

	if g.State() != GameOver {
		t.Fatalf("state=%v want=game_over", g.State())
	}
	snap := g.Snapshot()
	if snap.Lose != LoseBorder {
		t.Fatalf("lose=%v want=border", snap.Lose)
	}

	tick := snap.Tick
	g.Update(time.Second)
	if g.Snapshot().Tick != tick || g.Snapshot().Head != snap.Head {
		t.Fatalf("update after game over changed state")
	}
}

func TestGame_EasyNeverHitsBorder(t *testing.T) {
	g := newTestGame(rules.Easy)
	for i := 0; i < 100; i++ {
		g.Update(100 * time.Millisecond)
	}
	if g.State() != Playing {
		t.Fatalf("easy round ended: %+v", g.Snapshot())
	}
	h := g.snake.Head()
	if h.X < 0 || h.X > g.Screen().X {
		t.Fatalf("head escaped: %v", h)
	}
}

func TestGame_ResetRestoresRound(t *testing.T) {
	g := newTestGame(rules.Normal)
	feed(g)
	g.Update(time.Millisecond)
	g.snake.pos = geom.V(-5, 40)
	g.Update(time.Millisecond)
	if g.State() != GameOver {
		t.Fatalf("setup: expected game over")
	}
	oldRound := g.RoundID()

	g.Reset()

	if g.State() != Playing || g.Score() != 0 {
		t.Fatalf("state=%v score=%d after reset", g.State(), g.Score())
	}
	if g.Food().Pos != ResetFoodPos {
		t.Fatalf("food=%v want=%v", g.Food().Pos, ResetFoodPos)
	}
	if g.snake.Head() != DefaultHead || g.snake.Speed() != DefaultSpeed || g.snake.TargetLength() != 0 || g.snake.Dead() {
		t.Fatalf("snake not reset:\n%s", dumpSnake(g.snake))
	}
	if g.RoundID() == oldRound {
		t.Fatalf("round id not renewed")
	}
	if s := g.Snapshot(); s.Tick != 0 || s.Elapsed != 0 {
		t.Fatalf("tick=%d elapsed=%v after reset", s.Tick, s.Elapsed)
	}
}

func TestGame_DifficultyPropagates(t *testing.T) {
	g := newTestGame(rules.Normal)
	g.IncreaseDifficulty()
	if g.Difficulty() != rules.Hard || g.snake.Difficulty() != rules.Hard {
		t.Fatalf("diff=%v snake=%v want=hard", g.Difficulty(), g.snake.Difficulty())
	}
	g.IncreaseDifficulty()
	if g.Difficulty() != rules.Easy || g.snake.Difficulty() != rules.Easy {
		t.Fatalf("diff=%v snake=%v want=easy (wrap)", g.Difficulty(), g.snake.Difficulty())
	}
	g.DecreaseDifficulty()
	if g.Difficulty() != rules.Easy {
		t.Fatalf("diff=%v want=easy (saturate)", g.Difficulty())
	}

	g.Reset()
	if g.snake.Difficulty() != rules.Easy {
		t.Fatalf("reset lost difficulty: %v", g.snake.Difficulty())
	}
}

func TestGame_TurnIgnoredAfterGameOver(t *testing.T) {
	g := newTestGame(rules.Hard)
	g.snake.pos = geom.V(g.Screen().X+1, 40)
	g.Update(time.Millisecond)
	if g.Turn(Up) {
		t.Fatalf("turn accepted after game over")
	}
	if len(g.Snapshot().Corners) != 0 {
		t.Fatalf("corner recorded after game over")
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	g := newTestGame(rules.Easy)
	g.Turn(Up)
	snap := g.Snapshot()
	snap.Corners[0] = geom.V(-1, -1)
	if g.snake.Corners()[0] == geom.V(-1, -1) {
		t.Fatalf("snapshot shares corner storage with snake")
	}
}

func TestSnapshot_JSONUsesNames(t *testing.T) {
	g := newTestGame(rules.Hard)
	b, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["difficulty"] != "Hard" || got["direction"] != "right" || got["state"] != "playing" || got["lose"] != "none" {
		t.Fatalf("unexpected enum encoding: %s", b)
	}
}

func TestSnapshot_DecodesFeedJSON(t *testing.T) {
	g := newTestGame(rules.Easy)
	g.Turn(Up)
	g.snake.setLose(LoseSelfIntersect)
	g.Update(time.Millisecond)

	b, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Snapshot
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Direction != Up || got.State != GameOver || got.Lose != LoseSelfIntersect || got.Difficulty != rules.Easy {
		t.Fatalf("decoded=%+v", got)
	}

	var d Direction
	if err := d.UnmarshalText([]byte("sideways")); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestFood_HitBy(t *testing.T) {
	f := Food{Pos: geom.V(10, 10), Radius: 2}
	if !f.HitBy(geom.V(16.9, 10)) {
		t.Fatalf("expected hit just inside reach")
	}
	if f.HitBy(geom.V(17, 10)) {
		t.Fatalf("expected miss at exact reach")
	}
}
