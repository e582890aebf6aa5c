package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"reviewBack/internal/models"
	"reviewBack/internal/services"
)

type ReviewPageHandler struct {
	Service *services.ReviewPageService
}

// CreateReviewPage creates a page and returns the shareable path built from
// its fresh identifier.
func (h *ReviewPageHandler) CreateReviewPage(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReviewPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == "" || req.Category == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: userId, category, or name")
		return
	}

	page, err := h.Service.CreatePage(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, "Category must be either \"product\" or \"service\"")
			return
		}
		log.Printf("CreateReviewPage error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create review page")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"reviewUrl": fmt.Sprintf("viewReview?id=%s", page.ID),
	})
}

// GetReviewPage serves the public shape of a page to anyone holding its id.
func (h *ReviewPageHandler) GetReviewPage(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Review page ID is required")
		return
	}

	page, err := h.Service.GetPageByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPageNotFound) {
			writeError(w, http.StatusNotFound, "Review page not found")
			return
		}
		log.Printf("GetReviewPage error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch review page")
		return
	}

	writeJSON(w, http.StatusOK, models.ReviewPageResponse{
		Category:    page.Category,
		Name:        page.Name,
		Description: page.Description,
		Images:      page.Images,
		URL:         page.URL,
	})
}
