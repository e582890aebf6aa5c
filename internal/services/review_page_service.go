package services

import (
	"context"

	"github.com/google/uuid"

	"reviewBack/internal/models"
	"reviewBack/internal/repositories"
)

type ReviewPageService struct {
	PageRepo *repositories.ReviewPageRepository
}

// CreatePage validates the category, assigns a fresh identifier and persists
// the page. Pages are immutable once created.
func (s *ReviewPageService) CreatePage(ctx context.Context, req models.CreateReviewPageRequest) (models.ReviewPage, error) {
	if req.Category != models.CategoryProduct && req.Category != models.CategoryService {
		return models.ReviewPage{}, models.ErrInvalidCategory
	}

	page := models.ReviewPage{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Images:      models.StringList(req.Images),
		URL:         req.URL,
	}
	return s.PageRepo.CreatePage(ctx, page)
}

func (s *ReviewPageService) GetPageByID(ctx context.Context, id string) (models.ReviewPage, error) {
	return s.PageRepo.GetPageByID(ctx, id)
}
