package handlers

import (
	"log"
	"net/http"

	"reviewBack/internal/services"
)

type UploadHandler struct {
	Service *services.SubmissionService
}

// UploadImages is the pre-upload path: clients push raw files here, then
// submit the returned URLs with the review form. Failed uploads are dropped
// from the response rather than failing the request.
func (h *UploadHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files, err := readUploadFiles(r, "files")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files provided")
		return
	}

	urls := h.Service.UploadImages(r.Context(), files)
	log.Printf("uploaded %d of %d images", len(urls), len(files))

	writeJSON(w, http.StatusCreated, map[string]interface{}{"urls": urls})
}
