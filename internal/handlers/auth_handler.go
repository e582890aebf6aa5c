package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reviewBack/internal/models"
	"reviewBack/internal/services"
)

type AuthHandler struct {
	Service *services.AuthService
}

// CreateSession exchanges a federated identity-provider token for a local
// access/refresh token pair.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "ID token is required")
		return
	}

	tokens, err := h.Service.ExchangeIDToken(r.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIdentityUnavailable):
			writeError(w, http.StatusServiceUnavailable, "Identity provider not configured")
		case errors.Is(err, services.ErrInvalidIDToken):
			writeError(w, http.StatusUnauthorized, "Invalid identity token")
		default:
			log.Printf("CreateSession error: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create session")
		}
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// RefreshSession trades a live refresh token for a new token pair.
func (h *AuthHandler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	tokens, err := h.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSessionNotFound), errors.Is(err, services.ErrSessionExpired):
			writeError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		default:
			log.Printf("RefreshSession error: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to refresh session")
		}
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}
