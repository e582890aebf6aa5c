package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"reviewBack/internal/models"
	"reviewBack/internal/services"
)

// SubmissionPublisher pushes freshly created submissions to live viewers of
// the page. A nil publisher is valid.
type SubmissionPublisher interface {
	Publish(sub models.Submission)
}

type SubmissionHandler struct {
	Service *services.SubmissionService
	Feed    SubmissionPublisher
}

// CreateSubmission accepts the multipart review form. Images arrive either
// as pre-uploaded URLs under "images" or as raw blobs under "files"; both
// paths end in the same stored URL list.
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	var sub models.Submission
	sub.ID = r.FormValue("id")
	sub.UserID = r.FormValue("userId")
	sub.UserName = r.FormValue("userName")
	sub.UserImage = r.FormValue("userImage")
	sub.IsAnonymous = r.FormValue("isAnonymous") == "true"
	sub.Review = r.FormValue("review")
	sub.Summary = r.FormValue("summary")
	ratingsStr := r.FormValue("ratings")

	var validationErrors []string
	if sub.ID == "" {
		validationErrors = append(validationErrors, "ID is required")
	}
	if sub.UserID == "" {
		validationErrors = append(validationErrors, "User ID is required")
	}
	if ratingsStr == "" {
		validationErrors = append(validationErrors, "Ratings are required")
	}
	if sub.Review == "" {
		validationErrors = append(validationErrors, "Review text is required")
	}
	if sub.Summary == "" {
		validationErrors = append(validationErrors, "Review summary is required")
	}
	if len(validationErrors) > 0 {
		writeValidationError(w, validationErrors)
		return
	}

	ratings, err := strconv.Atoi(ratingsStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ratings value")
		return
	}
	sub.Ratings = ratings

	for _, url := range r.MultipartForm.Value["images"] {
		if url != "" {
			sub.Images = append(sub.Images, url)
		}
	}

	files, err := readUploadFiles(r, "files")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	created, err := h.Service.CreateSubmission(r.Context(), sub, files)
	if err != nil {
		log.Printf("CreateSubmission error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	if h.Feed != nil {
		h.Feed.Publish(created)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":          "Review submitted successfully",
		"reviewSubmission": created,
	})
}

// ListReviews returns all submissions for a page, newest first, plus the
// signed-only count and average.
func (h *SubmissionHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	pageID := getParam(r, "id")
	if pageID == "" {
		writeError(w, http.StatusBadRequest, "Review ID is required")
		return
	}

	list, err := h.Service.ListForPage(r.Context(), pageID)
	if err != nil {
		log.Printf("ListReviews error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch review list")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// LookupSubmission resolves one submission by surrogate id, or by page id
// plus either an exact user id or an anonymity class.
func (h *SubmissionHandler) LookupSubmission(w http.ResponseWriter, r *http.Request) {
	var lookup models.SubmissionLookup

	if dummyIDStr := getParam(r, "dummy_id"); dummyIDStr != "" {
		dummyID, err := strconv.ParseInt(dummyIDStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid Dummy ID")
			return
		}
		lookup.DummyID = dummyID
	} else {
		lookup.PageID = getParam(r, "id")
		lookup.UserID = getParam(r, "user_id")
		lookup.ReviewType = getParam(r, "review_type")

		if lookup.PageID == "" {
			writeError(w, http.StatusBadRequest, "Dummy ID or review page ID is required")
			return
		}
		if lookup.UserID == "" && lookup.ReviewType == "" {
			writeError(w, http.StatusBadRequest, "User ID or review type is required")
			return
		}
		if lookup.ReviewType != "" &&
			lookup.ReviewType != models.ReviewTypeSigned &&
			lookup.ReviewType != models.ReviewTypeAnonymous {
			writeError(w, http.StatusBadRequest, "Review type must be either \"signed\" or \"anonymous\"")
			return
		}
	}

	sub, err := h.Service.Lookup(r.Context(), lookup)
	if err != nil {
		if errors.Is(err, models.ErrSubmissionNotFound) {
			writeError(w, http.StatusNotFound, "Review not found")
			return
		}
		log.Printf("LookupSubmission error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch review")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// ListUserReviews returns all submissions authored by one user.
func (h *SubmissionHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	userID := getParam(r, "user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	subs, err := h.Service.GetSubmissionsByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("ListUserReviews error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func readUploadFiles(r *http.Request, key string) ([]services.UploadFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var files []services.UploadFile
	for _, fileHeader := range r.MultipartForm.File[key] {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, services.UploadFile{Name: fileHeader.Filename, Data: data})
	}
	return files, nil
}
