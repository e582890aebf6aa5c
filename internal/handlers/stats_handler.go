package handlers

import (
	"log"
	"net/http"

	"reviewBack/internal/services"
)

type StatsHandler struct {
	Service *services.StatsService
}

// GetUserStats serves the per-user dashboard: owned pages with their
// aggregates plus the user's own submissions.
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := getParam(r, "user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	stats, err := h.Service.UserStats(r.Context(), userID)
	if err != nil {
		log.Printf("GetUserStats error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user review stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
