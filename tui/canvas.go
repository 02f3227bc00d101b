package tui

import (
	"math"
	"strings"

	"github.com/brensch/snekterm/game"
	"github.com/brensch/snekterm/geom"
)

const (
	glyphEmpty = ' '
	glyphHead  = '@'
	glyphFood  = '*'
)

// Each terminal cell is a 2x4 braille dot matrix.
const (
	dotsX       = 2
	dotsY       = 4
	brailleBase = 0x2800
)

// brailleBits[row][col] is the dot's bit in the braille code point.
var brailleBits = [dotsY][dotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func isTrail(r rune) bool {
	return r > brailleBase && r <= brailleBase+0xff
}

// canvas covers the world rectangle [0,bounds] with braille dots. Row 0 is
// the top of the screen, which is the largest world y. Glyphs drawn with
// plot replace the whole cell.
type canvas struct {
	cols, rows int
	bounds     geom.Vec
	dots       [][]uint8
	glyphs     [][]rune
}

func newCanvas(cols, rows int, bounds geom.Vec) *canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	dots := make([][]uint8, rows)
	glyphs := make([][]rune, rows)
	for r := range dots {
		dots[r] = make([]uint8, cols)
		glyphs[r] = make([]rune, cols)
	}
	return &canvas{cols: cols, rows: rows, bounds: bounds, dots: dots, glyphs: glyphs}
}

// dot maps a world point to dot coordinates. Points outside the world report
// false.
func (c *canvas) dot(p geom.Vec) (x, y int, ok bool) {
	if c.bounds.X <= 0 || c.bounds.Y <= 0 {
		return 0, 0, false
	}
	fx := p.X / c.bounds.X
	fy := p.Y / c.bounds.Y
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	w, h := c.cols*dotsX, c.rows*dotsY
	x = int(math.Round(fx * float64(w-1)))
	y = h - 1 - int(math.Round(fy*float64(h-1)))
	return x, y, true
}

func (c *canvas) set(p geom.Vec) {
	if x, y, ok := c.dot(p); ok {
		c.dots[y/dotsY][x/dotsX] |= brailleBits[y%dotsY][x%dotsX]
	}
}

func (c *canvas) plot(p geom.Vec, g rune) {
	if x, y, ok := c.dot(p); ok {
		c.glyphs[y/dotsY][x/dotsX] = g
	}
}

// line samples the segment densely enough to hit every dot it crosses.
func (c *canvas) line(a, b geom.Vec) {
	sx := c.bounds.X / float64(c.cols*dotsX)
	sy := c.bounds.Y / float64(c.rows*dotsY)
	step := math.Min(sx, sy) / 2
	if step <= 0 {
		return
	}
	n := int(math.Ceil(geom.Dist(a, b) / step))
	d := b.Sub(a)
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		c.set(a.Add(d.Scale(t)))
	}
}

func (c *canvas) at(col, row int) rune {
	if g := c.glyphs[row][col]; g != 0 {
		return g
	}
	if bits := c.dots[row][col]; bits != 0 {
		return rune(brailleBase + int(bits))
	}
	return glyphEmpty
}

func (c *canvas) String() string {
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.at(col, r))
		}
	}
	return b.String()
}

// drawSnapshot draws the trail in braille, then the food and the head on top.
func drawSnapshot(snap game.Snapshot, cols, rows int) *canvas {
	c := newCanvas(cols, rows, snap.Bounds)
	prev := snap.Head
	for _, corner := range snap.Corners {
		c.line(prev, corner)
		prev = corner
	}
	c.plot(snap.Food, glyphFood)
	c.plot(snap.Head, glyphHead)
	return c
}
