package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"reviewBack/internal/models"
)

func TestCreateSubmissionAssignsDummyID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := SubmissionRepository{DB: db}
	sub := models.Submission{
		ID:        "page-1",
		UserID:    "user-1",
		UserName:  "Jordan",
		UserImage: "/default-avatar.png",
		Ratings:   4,
		Review:    "solid",
		Summary:   "good",
		Images:    models.StringList{"https://cdn.example.com/a.jpg"},
		CreatedAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO review_submissions").
		WithArgs(sub.ID, sub.UserID, sub.UserName, sub.UserImage, false,
			sub.Ratings, sub.Review, sub.Summary, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	created, err := repo.CreateSubmission(context.Background(), sub)
	if err != nil {
		t.Fatalf("CreateSubmission returned error: %v", err)
	}
	if created.DummyID != 7 {
		t.Errorf("expected dummyId 7, got %d", created.DummyID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetPageStatsIgnoresAnonymousRatings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := SubmissionRepository{DB: db}

	// Ratings [4 signed, 2 anonymous, 5 signed]: the average only considers
	// the signed pair.
	rows := sqlmock.NewRows([]string{"total", "signed", "avg"}).AddRow(3, 2, 4.5)
	mock.ExpectQuery("FROM review_submissions").WithArgs("page-1").WillReturnRows(rows)

	stats, err := repo.GetPageStats(context.Background(), "page-1")
	if err != nil {
		t.Fatalf("GetPageStats returned error: %v", err)
	}
	if stats.TotalReviews != 3 {
		t.Errorf("expected 3 total reviews, got %d", stats.TotalReviews)
	}
	if stats.SignedReviews != 2 {
		t.Errorf("expected 2 signed reviews, got %d", stats.SignedReviews)
	}
	if stats.AverageRating != 4.5 {
		t.Errorf("expected average 4.5, got %v", stats.AverageRating)
	}
}

func TestGetStatsForPagesBatchesIntoOneQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := SubmissionRepository{DB: db}

	rows := sqlmock.NewRows([]string{"id", "total", "signed", "avg"}).
		AddRow("page-1", 3, 2, 4.5).
		AddRow("page-2", 1, 0, 0.0)
	mock.ExpectQuery("GROUP BY id").WithArgs("page-1", "page-2", "page-3").WillReturnRows(rows)

	stats, err := repo.GetStatsForPages(context.Background(), []string{"page-1", "page-2", "page-3"})
	if err != nil {
		t.Fatalf("GetStatsForPages returned error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 pages, got %d", len(stats))
	}
	if stats["page-1"].AverageRating != 4.5 || stats["page-1"].SignedReviews != 2 {
		t.Errorf("unexpected page-1 stats: %+v", stats["page-1"])
	}
	if _, ok := stats["page-3"]; ok {
		t.Errorf("page without submissions must be absent from the map")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetStatsForPagesEmptySetSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := SubmissionRepository{DB: db}
	stats, err := repo.GetStatsForPages(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetStatsForPages returned error: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("expected empty map, got %v", stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query should have been issued: %v", err)
	}
}

func submissionRows(t *testing.T, subs ...models.Submission) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"dummy_id", "id", "user_id", "user_name", "user_image",
		"is_anonymous", "ratings", "review", "summary", "images", "created_at",
	})
	for _, s := range subs {
		images, err := s.Images.Value()
		if err != nil {
			t.Fatalf("images value: %v", err)
		}
		rows.AddRow(s.DummyID, s.ID, s.UserID, s.UserName, s.UserImage,
			s.IsAnonymous, s.Ratings, s.Review, s.Summary, images, s.CreatedAt)
	}
	return rows
}

func TestGetSubmissionByDummyIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := SubmissionRepository{DB: db}
	mock.ExpectQuery("WHERE dummy_id").WithArgs(int64(99)).
		WillReturnRows(submissionRows(t))

	_, err = repo.GetSubmissionByDummyID(context.Background(), 99)
	if !errors.Is(err, models.ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestGetLatestSubmissionByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := SubmissionRepository{DB: db}
	latest := models.Submission{
		DummyID: 12, ID: "page-1", UserID: "user-1", UserName: "Jordan",
		UserImage: "/default-avatar.png", Ratings: 5, Review: "better now",
		Summary: "update", Images: models.StringList{}, CreatedAt: time.Now(),
	}

	mock.ExpectQuery("ORDER BY created_at DESC, dummy_id DESC").
		WithArgs("page-1", "user-1").
		WillReturnRows(submissionRows(t, latest))

	sub, err := repo.GetLatestSubmission(context.Background(), models.SubmissionLookup{
		PageID: "page-1",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("GetLatestSubmission returned error: %v", err)
	}
	if sub.DummyID != 12 {
		t.Errorf("expected dummyId 12, got %d", sub.DummyID)
	}
}

func TestGetLatestSubmissionAnonymousClass(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := SubmissionRepository{DB: db}
	anon := models.Submission{
		DummyID: 3, ID: "page-1", UserID: "user-2",
		UserName: models.AnonymousUserName, UserImage: models.AnonymousUserImage,
		IsAnonymous: true, Ratings: 2, Review: "meh", Summary: "ok",
		Images: models.StringList{}, CreatedAt: time.Now(),
	}

	mock.ExpectQuery("is_anonymous = TRUE").
		WithArgs("page-1").
		WillReturnRows(submissionRows(t, anon))

	sub, err := repo.GetLatestSubmission(context.Background(), models.SubmissionLookup{
		PageID:     "page-1",
		ReviewType: models.ReviewTypeAnonymous,
	})
	if err != nil {
		t.Fatalf("GetLatestSubmission returned error: %v", err)
	}
	if !sub.IsAnonymous {
		t.Errorf("expected an anonymous submission, got %+v", sub)
	}
}
