package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aristath/decisionlens/internal/events"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const streamWriteTimeout = 5 * time.Second

// HandleStream handles GET /api/sessions/stream
// Upgrades to a WebSocket, sends a snapshot immediately and again after
// every SessionsRefreshed event until the client goes away.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerLocation(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to accept session stream")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	// Only control frames are expected from the client
	ctx := conn.CloseRead(r.Context())

	refreshed := make(chan struct{}, 1)
	unsubscribe := h.bus.Subscribe(events.SessionsRefreshed, func(*events.Event) {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	h.log.Debug().Msg("Client connected to session stream")

	if err := h.send(ctx, conn, viewer); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			h.log.Debug().Msg("Client disconnected from session stream")
			return
		case <-refreshed:
			if err := h.send(ctx, conn, viewer); err != nil {
				return
			}
		}
	}
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, viewer *time.Location) error {
	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()

	if err := wsjson.Write(writeCtx, conn, h.snapshot(h.now(), viewer)); err != nil {
		h.log.Debug().Err(err).Msg("Failed to write session snapshot")
		return err
	}
	return nil
}
