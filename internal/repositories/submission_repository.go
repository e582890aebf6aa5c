package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"reviewBack/internal/models"
)

type SubmissionRepository struct {
	DB *sql.DB
}

const submissionColumns = `dummy_id, id, user_id, user_name, user_image, is_anonymous, ratings, review, summary, images, created_at`

func scanSubmission(row interface{ Scan(...interface{}) error }) (models.Submission, error) {
	var sub models.Submission
	err := row.Scan(
		&sub.DummyID, &sub.ID, &sub.UserID, &sub.UserName, &sub.UserImage,
		&sub.IsAnonymous, &sub.Ratings, &sub.Review, &sub.Summary,
		&sub.Images, &sub.CreatedAt,
	)
	return sub, err
}

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, sub models.Submission) (models.Submission, error) {
	query := `
		INSERT INTO review_submissions
			(id, user_id, user_name, user_image, is_anonymous, ratings, review, summary, images, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		sub.ID, sub.UserID, sub.UserName, sub.UserImage, sub.IsAnonymous,
		sub.Ratings, sub.Review, sub.Summary, sub.Images, sub.CreatedAt,
	)
	if err != nil {
		return models.Submission{}, err
	}
	dummyID, err := result.LastInsertId()
	if err != nil {
		return models.Submission{}, err
	}
	sub.DummyID = dummyID
	return sub, nil
}

func (r *SubmissionRepository) GetSubmissionsByPageID(ctx context.Context, pageID string) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM review_submissions
		WHERE id = ?
		ORDER BY created_at DESC, dummy_id DESC
	`
	return r.querySubmissions(ctx, query, pageID)
}

func (r *SubmissionRepository) GetSubmissionsByUserID(ctx context.Context, userID string) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM review_submissions
		WHERE user_id = ?
		ORDER BY created_at DESC, dummy_id DESC
	`
	return r.querySubmissions(ctx, query, userID)
}

// GetPageStats computes the aggregate figures for one page. Anonymous
// submissions count toward the total but never toward the signed count or
// the average.
func (r *SubmissionRepository) GetPageStats(ctx context.Context, pageID string) (models.PageStats, error) {
	query := `
		SELECT COUNT(*),
		       SUM(CASE WHEN is_anonymous = FALSE THEN 1 ELSE 0 END),
		       COALESCE(AVG(CASE WHEN is_anonymous = FALSE THEN ratings END), 0)
		FROM review_submissions
		WHERE id = ?
	`
	var stats models.PageStats
	var signed sql.NullInt64
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, pageID).Scan(&stats.TotalReviews, &signed, &avg)
	if err != nil {
		return models.PageStats{}, err
	}
	stats.SignedReviews = int(signed.Int64)
	stats.AverageRating = avg.Float64
	return stats, nil
}

// GetStatsForPages batches the per-page aggregates for a set of page ids in
// a single GROUP BY query. Pages without submissions are absent from the
// result map.
func (r *SubmissionRepository) GetStatsForPages(ctx context.Context, pageIDs []string) (map[string]models.PageStats, error) {
	stats := make(map[string]models.PageStats, len(pageIDs))
	if len(pageIDs) == 0 {
		return stats, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(pageIDs)), ",")
	query := fmt.Sprintf(`
		SELECT id,
		       COUNT(*),
		       SUM(CASE WHEN is_anonymous = FALSE THEN 1 ELSE 0 END),
		       COALESCE(AVG(CASE WHEN is_anonymous = FALSE THEN ratings END), 0)
		FROM review_submissions
		WHERE id IN (%s)
		GROUP BY id
	`, placeholders)

	args := make([]interface{}, len(pageIDs))
	for i, id := range pageIDs {
		args[i] = id
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pageID string
		var entry models.PageStats
		var signed sql.NullInt64
		var avg sql.NullFloat64
		if err := rows.Scan(&pageID, &entry.TotalReviews, &signed, &avg); err != nil {
			return nil, err
		}
		entry.SignedReviews = int(signed.Int64)
		entry.AverageRating = avg.Float64
		stats[pageID] = entry
	}
	return stats, rows.Err()
}

func (r *SubmissionRepository) GetSubmissionByDummyID(ctx context.Context, dummyID int64) (models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM review_submissions
		WHERE dummy_id = ?
	`
	sub, err := scanSubmission(r.DB.QueryRowContext(ctx, query, dummyID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, models.ErrSubmissionNotFound
	}
	if err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

// GetLatestSubmission resolves the unified lookup contract: the most recent
// submission on a page matching either an exact user id or an anonymity
// class. When both a user id and the signed class are given, both must hold.
func (r *SubmissionRepository) GetLatestSubmission(ctx context.Context, lookup models.SubmissionLookup) (models.Submission, error) {
	conditions := []string{"id = ?"}
	args := []interface{}{lookup.PageID}

	if lookup.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, lookup.UserID)
	}
	switch lookup.ReviewType {
	case models.ReviewTypeSigned:
		conditions = append(conditions, "is_anonymous = FALSE")
	case models.ReviewTypeAnonymous:
		conditions = append(conditions, "is_anonymous = TRUE")
	}

	query := `
		SELECT ` + submissionColumns + `
		FROM review_submissions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY created_at DESC, dummy_id DESC
		LIMIT 1
	`
	sub, err := scanSubmission(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, models.ErrSubmissionNotFound
	}
	if err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

func (r *SubmissionRepository) querySubmissions(ctx context.Context, query string, args ...interface{}) ([]models.Submission, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
