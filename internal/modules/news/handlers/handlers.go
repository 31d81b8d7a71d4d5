// Package handlers provides HTTP handlers for the news feed.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/aristath/decisionlens/internal/events"
	"github.com/aristath/decisionlens/internal/modules/news"
	"github.com/aristath/decisionlens/internal/utils"
	"github.com/rs/zerolog"
)

// EventEmitter announces manual reloads
type EventEmitter interface {
	EmitTyped(module string, data events.EventData)
}

// Handler handles news HTTP requests
type Handler struct {
	feed     *news.Feed
	emitter  EventEmitter
	pageSize int
	log      zerolog.Logger
}

// NewHandler creates a new news handler
func NewHandler(feed *news.Feed, emitter EventEmitter, pageSize int, log zerolog.Logger) *Handler {
	return &Handler{
		feed:     feed,
		emitter:  emitter,
		pageSize: pageSize,
		log:      log.With().Str("handler", "news").Logger(),
	}
}

// HandleGetNews handles GET /api/news
// ?page= selects the page (clamped). Choosing an archive date with ?date=
// restarts at the first page; archives are not stored, so the current feed
// is served.
func (h *Handler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil {
			page = parsed
		}
	}
	if r.URL.Query().Get("date") != "" {
		page = 1
	}

	utils.WriteData(w, r, http.StatusOK, news.Paginate(h.feed.Items(), page, h.pageSize), h.log)
}

// HandleReload handles POST /api/news/reload
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	err := h.feed.Reload(r.Context())
	degraded := err != nil

	if h.emitter != nil {
		h.emitter.EmitTyped("news", &events.NewsReloadedData{
			Items:    h.feed.Len(),
			Degraded: degraded,
		})
	}

	data := map[string]interface{}{
		"items":    h.feed.Len(),
		"degraded": degraded,
	}
	if degraded {
		data["reason"] = err.Error()
	}

	utils.WriteData(w, r, http.StatusOK, data, h.log)
}
