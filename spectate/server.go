package spectate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	// Spectating is read-only, so any origin may watch.
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
}

// Router exposes the feed:
//
//	GET /ws        websocket upgrade, welcome then one message per frame
//	GET /snapshot  latest frame JSON (204 before the first frame)
//	GET /healthz   liveness with the viewer count
func (h *Hub) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/ws", h.serveWS)
	r.Get("/snapshot", h.serveSnapshot)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = fmt.Fprintf(w, `{"ok":true,"viewers":%d}`, h.Count())
	})
	return r
}

func (h *Hub) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	frame := h.Latest()
	if frame == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(frame)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("spectator upgrade")
		return
	}

	v := newViewer(ws, h.buffer)
	v.send <- v.welcome()
	h.add(v)

	go v.writePump()
	go func() {
		v.readPump()
		h.remove(v.id)
	}()
}

// Serve runs the feed on addr until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("spectator feed listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve spectators: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown spectators: %w", err)
	}
	return nil
}
