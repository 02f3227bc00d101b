package game

import "github.com/brensch/snekterm/geom"

// trail is the list of turn points behind the head.
//
// Callers index it newest-first: at(0) is the most recent turn. Storage is
// oldest-first so a new turn is an append and retraction works on the
// front of the slice.
type trail struct {
	pts []geom.Vec
}

func (t *trail) len() int {
	return len(t.pts)
}

// at returns the i-th corner counting from the newest.
func (t *trail) at(i int) geom.Vec {
	return t.pts[len(t.pts)-1-i]
}

func (t *trail) pushNewest(p geom.Vec) {
	t.pts = append(t.pts, p)
}

func (t *trail) oldest() geom.Vec {
	return t.pts[0]
}

func (t *trail) setOldest(p geom.Vec) {
	t.pts[0] = p
}

func (t *trail) popOldest() {
	t.pts = t.pts[1:]
	if len(t.pts) == 0 {
		t.pts = nil
	}
}

func (t *trail) clear() {
	t.pts = nil
}

// newestFirst returns a copy ordered from the head towards the tail.
func (t *trail) newestFirst() []geom.Vec {
	out := make([]geom.Vec, len(t.pts))
	for i := range out {
		out[i] = t.at(i)
	}
	return out
}
