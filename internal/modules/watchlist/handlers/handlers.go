// Package handlers provides HTTP handlers for the watchlist.
package handlers

import (
	"net/http"

	"github.com/aristath/decisionlens/internal/modules/watchlist"
	"github.com/aristath/decisionlens/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles watchlist HTTP requests
type Handler struct {
	watchlist *watchlist.Watchlist
	log       zerolog.Logger
}

// NewHandler creates a new watchlist handler
func NewHandler(w *watchlist.Watchlist, log zerolog.Logger) *Handler {
	return &Handler{
		watchlist: w,
		log:       log.With().Str("handler", "watchlist").Logger(),
	}
}

// HandleGetTabs handles GET /api/watchlist/tabs
func (h *Handler) HandleGetTabs(w http.ResponseWriter, r *http.Request) {
	tabs := h.watchlist.Tabs()

	out := make([]map[string]interface{}, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, map[string]interface{}{
			"key":     t.Key,
			"label":   t.Label,
			"count":   len(t.Symbols),
			"default": t.Key == watchlist.DefaultTab,
		})
	}

	utils.WriteData(w, r, http.StatusOK, out, h.log)
}

// HandleGetWatchlist handles GET /api/watchlist?tab=
// The active tab is chosen by the caller; default is btc
func (h *Handler) HandleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	utils.WriteData(w, r, http.StatusOK, h.watchlist.View(r.URL.Query().Get("tab")), h.log)
}

// RegisterRoutes registers all watchlist routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/watchlist", func(r chi.Router) {
		r.Get("/", h.HandleGetWatchlist)
		r.Get("/tabs", h.HandleGetTabs)
	})
}
