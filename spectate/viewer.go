package spectate

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait = 5 * time.Second
	pongWait  = 60 * time.Second
	pingEvery = pongWait * 9 / 10
)

// viewer is one websocket spectator. Only writePump writes to ws.
type viewer struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

func newViewer(ws *websocket.Conn, buffer int) *viewer {
	return &viewer{
		id:   uuid.New().String(),
		ws:   ws,
		send: make(chan []byte, buffer),
	}
}

func (v *viewer) welcome() []byte {
	b, _ := json.Marshal(WelcomeMsg{Type: MsgWelcome, Viewer: v.id})
	return b
}

// writePump drains the queue until the hub closes it or a write fails.
func (v *viewer) writePump() {
	ticker := time.NewTicker(pingEvery)
	defer func() {
		ticker.Stop()
		_ = v.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-v.send:
			_ = v.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = v.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := v.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Err(err).Str("viewer", v.id).Msg("spectator write failed")
				return
			}
		case <-ticker.C:
			_ = v.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards anything the viewer sends and returns when the
// connection goes away.
func (v *viewer) readPump() {
	v.ws.SetReadLimit(512)
	_ = v.ws.SetReadDeadline(time.Now().Add(pongWait))
	v.ws.SetPongHandler(func(string) error {
		return v.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := v.ws.ReadMessage(); err != nil {
			return
		}
	}
}
