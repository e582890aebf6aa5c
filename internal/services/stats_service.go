package services

import (
	"context"

	"reviewBack/internal/models"
	"reviewBack/internal/repositories"
)

type StatsService struct {
	PageRepo       *repositories.ReviewPageRepository
	SubmissionRepo *repositories.SubmissionRepository
}

// UserStats builds the per-user dashboard: the user's owned review pages,
// each enriched with aggregate figures, plus the user's own submissions.
// Stats for all owned pages come from one batched query.
func (s *StatsService) UserStats(ctx context.Context, userID string) (models.UserStatsResponse, error) {
	pages, err := s.PageRepo.GetPagesByUserID(ctx, userID)
	if err != nil {
		return models.UserStatsResponse{}, err
	}

	pageIDs := make([]string, len(pages))
	for i, page := range pages {
		pageIDs[i] = page.ID
	}
	stats, err := s.SubmissionRepo.GetStatsForPages(ctx, pageIDs)
	if err != nil {
		return models.UserStatsResponse{}, err
	}

	created := make([]models.OwnedPageStats, 0, len(pages))
	for _, page := range pages {
		entry := models.OwnedPageStats{
			ReviewPageID:   page.ID,
			ReviewPageName: page.Name,
		}
		if len(page.Images) > 0 {
			image := page.Images[0]
			entry.Image = &image
		}
		if pageStats, ok := stats[page.ID]; ok {
			entry.TotalReviews = pageStats.TotalReviews
			entry.SignedInReviews = pageStats.SignedReviews
			entry.AverageRating = pageStats.AverageRating
		}
		created = append(created, entry)
	}

	written, err := s.SubmissionRepo.GetSubmissionsByUserID(ctx, userID)
	if err != nil {
		return models.UserStatsResponse{}, err
	}

	return models.UserStatsResponse{
		CreatedPages:   created,
		WrittenReviews: written,
	}, nil
}
