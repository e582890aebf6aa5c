package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"reviewBack/internal/models"
	"reviewBack/internal/repositories"
)

// FileUploader is the object-storage collaborator: it accepts image bytes
// under a caller-chosen key and returns a publicly resolvable URL.
type FileUploader interface {
	UploadFile(ctx context.Context, file []byte, fileName, folder string) (string, error)
}

// UploadFile is one raw image blob taken from a multipart form.
type UploadFile struct {
	Name string
	Data []byte
}

type SubmissionService struct {
	SubmissionRepo *repositories.SubmissionRepository
	Storage        FileUploader
	Cache          *StatsCache
	Folder         string
}

// CreateSubmission applies the anonymity rules, uploads any raw image files
// and persists the submission. Pre-uploaded URLs in sub.Images and uploaded
// file URLs are kept in input order; a failed upload drops that image only.
func (s *SubmissionService) CreateSubmission(ctx context.Context, sub models.Submission, files []UploadFile) (models.Submission, error) {
	if sub.IsAnonymous {
		sub.UserName = models.AnonymousUserName
		sub.UserImage = models.AnonymousUserImage
	} else {
		if sub.UserName == "" {
			sub.UserName = models.DefaultUserName
		}
		if sub.UserImage == "" {
			sub.UserImage = models.DefaultUserImage
		}
	}

	sub.Images = append(sub.Images, s.UploadImages(ctx, files)...)
	if sub.Images == nil {
		sub.Images = models.StringList{}
	}
	sub.CreatedAt = time.Now().UTC().Truncate(time.Second)

	created, err := s.SubmissionRepo.CreateSubmission(ctx, sub)
	if err != nil {
		return models.Submission{}, err
	}
	s.Cache.Invalidate(ctx, created.ID)
	return created, nil
}

// UploadImages pushes all files to object storage concurrently. Results land
// by input index so the final list preserves form order; failures leave a
// gap that is filtered out afterwards.
func (s *SubmissionService) UploadImages(ctx context.Context, files []UploadFile) models.StringList {
	if len(files) == 0 || s.Storage == nil {
		return nil
	}

	urls := make([]string, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file UploadFile) {
			defer wg.Done()
			fileName := fmt.Sprintf("%d_%d_%s", time.Now().UnixNano(), i, file.Name)
			url, err := s.Storage.UploadFile(ctx, file.Data, fileName, s.Folder)
			if err != nil {
				log.Printf("image upload failed, dropping %s: %v", file.Name, err)
				return
			}
			urls[i] = url
		}(i, file)
	}
	wg.Wait()

	var uploaded models.StringList
	for _, url := range urls {
		if url != "" {
			uploaded = append(uploaded, url)
		}
	}
	return uploaded
}

// ListForPage returns all submissions for a page, newest first, together
// with the signed-only count and average rating.
func (s *SubmissionService) ListForPage(ctx context.Context, pageID string) (models.ReviewListResponse, error) {
	subs, err := s.SubmissionRepo.GetSubmissionsByPageID(ctx, pageID)
	if err != nil {
		return models.ReviewListResponse{}, err
	}

	stats, ok := s.Cache.GetPageStats(ctx, pageID)
	if !ok {
		stats, err = s.SubmissionRepo.GetPageStats(ctx, pageID)
		if err != nil {
			return models.ReviewListResponse{}, err
		}
		s.Cache.SetPageStats(ctx, pageID, stats)
	}

	return models.ReviewListResponse{
		Reviews:             subs,
		SignedInReviewCount: stats.SignedReviews,
		AverageRating:       stats.AverageRating,
	}, nil
}

// Lookup resolves a single submission: by surrogate id when given,
// otherwise the latest match on page id + user id or anonymity class.
func (s *SubmissionService) Lookup(ctx context.Context, lookup models.SubmissionLookup) (models.Submission, error) {
	if lookup.DummyID != 0 {
		return s.SubmissionRepo.GetSubmissionByDummyID(ctx, lookup.DummyID)
	}
	return s.SubmissionRepo.GetLatestSubmission(ctx, lookup)
}

func (s *SubmissionService) GetSubmissionsByUserID(ctx context.Context, userID string) ([]models.Submission, error) {
	return s.SubmissionRepo.GetSubmissionsByUserID(ctx, userID)
}
