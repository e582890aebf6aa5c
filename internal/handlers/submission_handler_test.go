package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"reviewBack/internal/models"
	"reviewBack/internal/repositories"
	"reviewBack/internal/services"
)

func newSubmissionHandler(t *testing.T) (*SubmissionHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &SubmissionHandler{
		Service: &services.SubmissionService{
			SubmissionRepo: &repositories.SubmissionRepository{DB: db},
		},
	}, mock
}

func multipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/review/submission", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestCreateSubmissionListsAllMissingFields(t *testing.T) {
	handler, _ := newSubmissionHandler(t)

	rec := httptest.NewRecorder()
	handler.CreateSubmission(rec, multipartRequest(t, map[string]string{}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Validation failed" {
		t.Errorf("expected validation error message, got %q", resp.Error)
	}
	want := []string{
		"ID is required",
		"User ID is required",
		"Ratings are required",
		"Review text is required",
		"Review summary is required",
	}
	if len(resp.Details) != len(want) {
		t.Fatalf("expected %d details, got %v", len(want), resp.Details)
	}
	for i, detail := range want {
		if resp.Details[i] != detail {
			t.Errorf("detail %d: expected %q, got %q", i, detail, resp.Details[i])
		}
	}
}

func TestCreateSubmissionRejectsNonNumericRatings(t *testing.T) {
	handler, _ := newSubmissionHandler(t)

	rec := httptest.NewRecorder()
	handler.CreateSubmission(rec, multipartRequest(t, map[string]string{
		"id":      "page-1",
		"userId":  "user-1",
		"ratings": "five",
		"review":  "text",
		"summary": "summary",
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Invalid ratings value" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestCreateSubmissionStoresAnonymousPlaceholders(t *testing.T) {
	handler, mock := newSubmissionHandler(t)

	mock.ExpectExec("INSERT INTO review_submissions").
		WithArgs("page-1", "user-1", models.AnonymousUserName, models.AnonymousUserImage,
			true, 4, "text", "summary", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	rec := httptest.NewRecorder()
	handler.CreateSubmission(rec, multipartRequest(t, map[string]string{
		"id":          "page-1",
		"userId":      "user-1",
		"userName":    "Jordan Real Name",
		"userImage":   "https://cdn.example.com/jordan.jpg",
		"isAnonymous": "true",
		"ratings":     "4",
		"review":      "text",
		"summary":     "summary",
	}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message          string            `json:"message"`
		ReviewSubmission models.Submission `json:"reviewSubmission"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Review submitted successfully" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if resp.ReviewSubmission.DummyID != 11 {
		t.Errorf("expected dummyId 11, got %d", resp.ReviewSubmission.DummyID)
	}
	if resp.ReviewSubmission.UserName != models.AnonymousUserName {
		t.Errorf("expected placeholder name in response, got %q", resp.ReviewSubmission.UserName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListReviewsIncludesSignedOnlyStats(t *testing.T) {
	handler, mock := newSubmissionHandler(t)

	listRows := sqlmock.NewRows([]string{
		"dummy_id", "id", "user_id", "user_name", "user_image",
		"is_anonymous", "ratings", "review", "summary", "images", "created_at",
	}).
		AddRow(2, "page-1", "user-2", models.AnonymousUserName, models.AnonymousUserImage,
			true, 2, "meh", "ok", []byte(`[]`), time.Now()).
		AddRow(1, "page-1", "user-1", "Jordan", "/default-avatar.png",
			false, 5, "great", "loved it", []byte(`[]`), time.Now().Add(-time.Hour))
	mock.ExpectQuery("WHERE id").WithArgs("page-1").WillReturnRows(listRows)

	statsRows := sqlmock.NewRows([]string{"total", "signed", "avg"}).AddRow(2, 1, 5.0)
	mock.ExpectQuery("FROM review_submissions").WithArgs("page-1").WillReturnRows(statsRows)

	req := httptest.NewRequest(http.MethodGet, "/reviews?id=page-1", nil)
	rec := httptest.NewRecorder()
	handler.ListReviews(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.ReviewListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(resp.Reviews))
	}
	if resp.SignedInReviewCount != 1 {
		t.Errorf("expected signedInReviewCount 1, got %d", resp.SignedInReviewCount)
	}
	if resp.AverageRating != 5.0 {
		t.Errorf("expected averageRating 5, got %v", resp.AverageRating)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLookupSubmissionRequiresIdentifier(t *testing.T) {
	handler, _ := newSubmissionHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/review/submission", nil)
	rec := httptest.NewRecorder()
	handler.LookupSubmission(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLookupSubmissionRejectsUnknownReviewType(t *testing.T) {
	handler, _ := newSubmissionHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/review/submission?id=page-1&review_type=unsigned", nil)
	rec := httptest.NewRecorder()
	handler.LookupSubmission(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Review type must be either \"signed\" or \"anonymous\"" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestLookupSubmissionByDummyIDNotFound(t *testing.T) {
	handler, mock := newSubmissionHandler(t)

	mock.ExpectQuery("WHERE dummy_id").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"dummy_id", "id", "user_id", "user_name", "user_image",
			"is_anonymous", "ratings", "review", "summary", "images", "created_at",
		}))

	req := httptest.NewRequest(http.MethodGet, "/review/submission?dummy_id=42", nil)
	rec := httptest.NewRecorder()
	handler.LookupSubmission(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Review not found" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}
