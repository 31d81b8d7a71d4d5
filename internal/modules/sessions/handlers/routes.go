package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the request/response session routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.HandleGetSessions)
	r.Get("/sessions/{key}", h.HandleGetSession)
}

// RegisterStreamRoutes registers the long-lived session stream. Mount it
// outside any request timeout middleware.
func (h *Handler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/sessions/stream", h.HandleStream)
}
