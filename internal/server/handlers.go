package server

import (
	"net/http"

	"github.com/aristath/decisionlens/internal/utils"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "decisionlens",
	}

	utils.WriteData(w, r, http.StatusOK, response, s.log)
}
