package repositories

import (
	"context"
	"database/sql"
	"errors"

	"reviewBack/internal/models"
)

type ReviewPageRepository struct {
	DB *sql.DB
}

func (r *ReviewPageRepository) CreatePage(ctx context.Context, page models.ReviewPage) (models.ReviewPage, error) {
	query := `
		INSERT INTO review_pages (id, user_id, category, name, description, images, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`
	_, err := r.DB.ExecContext(ctx, query,
		page.ID, page.UserID, page.Category, page.Name,
		page.Description, page.Images, page.URL,
	)
	if err != nil {
		return models.ReviewPage{}, err
	}
	return page, nil
}

// GetPageByID returns the full row including the owning user id. Handlers
// that serve the public shape strip the owner before responding.
func (r *ReviewPageRepository) GetPageByID(ctx context.Context, id string) (models.ReviewPage, error) {
	query := `
		SELECT id, user_id, category, name, description, images, url, created_at
		FROM review_pages
		WHERE id = ?
	`
	var page models.ReviewPage
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&page.ID, &page.UserID, &page.Category, &page.Name,
		&page.Description, &page.Images, &page.URL, &page.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReviewPage{}, models.ErrPageNotFound
	}
	if err != nil {
		return models.ReviewPage{}, err
	}
	return page, nil
}

func (r *ReviewPageRepository) GetPagesByUserID(ctx context.Context, userID string) ([]models.ReviewPage, error) {
	query := `
		SELECT id, user_id, category, name, description, images, url, created_at
		FROM review_pages
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []models.ReviewPage{}
	for rows.Next() {
		var page models.ReviewPage
		err := rows.Scan(
			&page.ID, &page.UserID, &page.Category, &page.Name,
			&page.Description, &page.Images, &page.URL, &page.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}
