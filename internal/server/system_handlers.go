package server

import (
	"net/http"
	"time"

	"github.com/aristath/decisionlens/internal/modules/news"
	"github.com/aristath/decisionlens/internal/modules/sessions"
	"github.com/aristath/decisionlens/internal/utils"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHandlers serves process and host status
type SystemHandlers struct {
	log       zerolog.Logger
	sessions  *sessions.SessionService
	feed      *news.Feed
	startedAt time.Time
	now       func() time.Time
	stats     func() (float64, float64)
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, sessionService *sessions.SessionService, feed *news.Feed) *SystemHandlers {
	h := &SystemHandlers{
		log:       log.With().Str("component", "system_handlers").Logger(),
		sessions:  sessionService,
		feed:      feed,
		startedAt: time.Now(),
		now:       time.Now,
	}
	h.stats = h.getSystemStats
	return h
}

// SystemStatusResponse represents the system status
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
	Profile       string  `json:"profile"`
	Markets       int     `json:"markets"`
	OpenMarkets   int     `json:"open_markets"`
	NewsItems     int     `json:"news_items"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	now := h.now()
	cpuPercent, ramPercent := h.stats()

	response := SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: int64(now.Sub(h.startedAt).Seconds()),
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
	}
	if h.sessions != nil {
		response.Profile = h.sessions.Profile().Name
		response.Markets = len(h.sessions.Markets())
		response.OpenMarkets = h.sessions.OpenCount(now)
	}
	if h.feed != nil {
		response.NewsItems = h.feed.Len()
	}

	utils.WriteData(w, r, http.StatusOK, response, h.log)
}

// getSystemStats calculates CPU and RAM usage percentages.
// The 100ms CPU sample keeps the endpoint responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
