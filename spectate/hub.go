// Package spectate serves a read-only live feed of the running round over
// websockets. Viewers receive every published frame as JSON and cannot send
// input back.
package spectate

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/brensch/snekterm/game"
	"github.com/rs/zerolog/log"
)

// DefaultViewerBuffer is how many frames may queue for one viewer before
// frames are dropped for it.
const DefaultViewerBuffer = 32

const (
	MsgWelcome = "welcome"
	MsgFrame   = "frame"
)

// WelcomeMsg is the first message a viewer receives.
type WelcomeMsg struct {
	Type   string `json:"type"`
	Viewer string `json:"viewer"`
}

// FrameMsg carries one snapshot.
type FrameMsg struct {
	Type  string          `json:"type"`
	Frame json.RawMessage `json:"frame"`
}

// Hub fans published frames out to connected viewers.
type Hub struct {
	buffer int

	mu      sync.RWMutex
	viewers map[string]*viewer
	latest  []byte
	dropped atomic.Uint64
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultViewerBuffer
	}
	return &Hub{buffer: buffer, viewers: make(map[string]*viewer)}
}

// Publish stores s as the latest frame and queues it for every viewer. It
// never blocks: a viewer whose queue is full misses the frame.
func (h *Hub) Publish(s game.Snapshot) {
	frame, err := json.Marshal(s)
	if err != nil {
		log.Error().Err(err).Msg("encode spectator frame")
		return
	}
	msg, err := json.Marshal(FrameMsg{Type: MsgFrame, Frame: frame})
	if err != nil {
		log.Error().Err(err).Msg("encode spectator message")
		return
	}

	h.mu.Lock()
	h.latest = frame
	h.mu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, v := range h.viewers {
		select {
		case v.send <- msg:
		default:
			h.dropped.Add(1)
		}
	}
}

// Latest returns the most recent frame JSON, or nil before the first frame.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Dropped returns how many frames were skipped for slow viewers.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) add(v *viewer) {
	h.mu.Lock()
	h.viewers[v.id] = v
	n := len(h.viewers)
	h.mu.Unlock()
	log.Info().Str("viewer", v.id).Int("viewers", n).Msg("spectator connected")
}

// remove unregisters a viewer and closes its queue. Safe to call twice.
func (h *Hub) remove(id string) {
	h.mu.Lock()
	v, ok := h.viewers[id]
	if ok {
		delete(h.viewers, id)
		close(v.send)
	}
	n := len(h.viewers)
	h.mu.Unlock()
	if ok {
		log.Info().Str("viewer", id).Int("viewers", n).Msg("spectator disconnected")
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.RLock()
	ids := make([]string, 0, len(h.viewers))
	for id := range h.viewers {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	for _, id := range ids {
		h.remove(id)
	}
}
