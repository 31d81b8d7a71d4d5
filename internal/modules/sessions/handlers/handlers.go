// Package handlers provides HTTP handlers for trading session status.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/aristath/decisionlens/internal/events"
	"github.com/aristath/decisionlens/internal/modules/sessions"
	"github.com/aristath/decisionlens/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Snapshot is the payload of the sessions board
type Snapshot struct {
	NowLabel    string                 `json:"now_label"`
	Timezone    string                 `json:"timezone"`
	Profile     string                 `json:"profile"`
	OpenMarkets int                    `json:"open_markets"`
	EvaluatedAt time.Time              `json:"evaluated_at"`
	Sessions    []sessions.SessionView `json:"sessions"`
}

// Handler handles session HTTP requests
type Handler struct {
	service        *sessions.SessionService
	bus            *events.Bus
	originPatterns []string
	now            func() time.Time
	log            zerolog.Logger
}

// NewHandler creates a new sessions handler
func NewHandler(service *sessions.SessionService, bus *events.Bus, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		bus:     bus,
		now:     time.Now,
		log:     log.With().Str("handler", "sessions").Logger(),
	}
}

// SetOriginPatterns sets the origins allowed to open the session stream
// besides the serving host itself
func (h *Handler) SetOriginPatterns(patterns []string) {
	h.originPatterns = patterns
}

// HandleGetSessions handles GET /api/sessions
// Returns every session, soonest open first. ?tz= selects the viewer zone.
func (h *Handler) HandleGetSessions(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerLocation(r)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	utils.WriteData(w, r, http.StatusOK, h.snapshot(h.now(), viewer), h.log)
}

// HandleGetSession handles GET /api/sessions/{key}
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	viewer, err := viewerLocation(r)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	m, err := h.service.Market(key)
	if err != nil {
		if errors.Is(err, sessions.ErrMarketNotFound) {
			utils.WriteError(w, r, http.StatusNotFound, err.Error(), h.log)
			return
		}
		h.log.Error().Err(err).Str("market", key).Msg("Failed to get market")
		utils.WriteError(w, r, http.StatusInternalServerError, "failed to get market", h.log)
		return
	}

	st := h.service.Evaluate(h.now(), m, viewer)
	utils.WriteData(w, r, http.StatusOK, sessions.Present(st, m), h.log)
}

func (h *Handler) snapshot(now time.Time, viewer *time.Location) Snapshot {
	loc := h.service.Profile().DisplayLocation(viewer)
	statuses := h.service.EvaluateAll(now, viewer)

	views := make([]sessions.SessionView, 0, len(statuses))
	open := 0
	for _, st := range statuses {
		m, err := h.service.Market(st.Key)
		if err != nil {
			continue
		}
		if st.State == sessions.StateOpen {
			open++
		}
		views = append(views, sessions.Present(st, m))
	}

	return Snapshot{
		NowLabel:    sessions.FormatNow(now, loc),
		Timezone:    loc.String(),
		Profile:     h.service.Profile().Name,
		OpenMarkets: open,
		EvaluatedAt: now,
		Sessions:    views,
	}
}

// viewerLocation reads the optional ?tz= parameter
func viewerLocation(r *http.Request) (*time.Location, error) {
	tz := r.URL.Query().Get("tz")
	if tz == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.New("invalid time zone: " + tz)
	}
	return loc, nil
}
