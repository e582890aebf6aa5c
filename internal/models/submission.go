package models

import (
	"errors"
	"time"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// Placeholder identity applied to anonymous submissions and defaults for
// signed submissions that arrive without a profile.
const (
	AnonymousUserName  = "Anonymous User"
	AnonymousUserImage = "/anonymous-avatar.png"
	DefaultUserName    = "User"
	DefaultUserImage   = "/default-avatar.png"
)

// Review type classes accepted by the single-submission lookup.
const (
	ReviewTypeSigned    = "signed"
	ReviewTypeAnonymous = "anonymous"
)

// Submission is one rating/review left against a review page. The ID field
// stores the parent page id; DummyID is the auto-incrementing surrogate key
// used to address an individual submission.
type Submission struct {
	DummyID     int64      `json:"dummyId"`
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	UserName    string     `json:"userName"`
	UserImage   string     `json:"userImage"`
	IsAnonymous bool       `json:"isAnonymous"`
	Ratings     int        `json:"ratings"`
	Review      string     `json:"review"`
	Summary     string     `json:"summary"`
	Images      StringList `json:"images"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// PageStats are the aggregate figures for one review page. The average and
// the signed count only consider non-anonymous submissions.
type PageStats struct {
	TotalReviews  int     `json:"totalReviews"`
	SignedReviews int     `json:"signedInReviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// ReviewListResponse is the per-page listing payload.
type ReviewListResponse struct {
	Reviews             []Submission `json:"reviews"`
	SignedInReviewCount int          `json:"signedInReviewCount"`
	AverageRating       float64      `json:"averageRating"`
}

// OwnedPageStats is one entry of the per-user dashboard: an owned review
// page enriched with its aggregate figures.
type OwnedPageStats struct {
	ReviewPageID    string  `json:"reviewPageId"`
	ReviewPageName  string  `json:"reviewPageName"`
	Image           *string `json:"image"`
	TotalReviews    int     `json:"totalReviews"`
	SignedInReviews int     `json:"signedInReviews"`
	AverageRating   float64 `json:"averageSignedInReviews"`
}

type UserStatsResponse struct {
	CreatedPages   []OwnedPageStats `json:"createdPages"`
	WrittenReviews []Submission     `json:"writtenReviews"`
}

// SubmissionLookup describes the unified single-submission query: by
// surrogate id when DummyID is set, otherwise the most recent submission on
// PageID matching either the exact UserID or the anonymity class in
// ReviewType.
type SubmissionLookup struct {
	DummyID    int64
	PageID     string
	UserID     string
	ReviewType string
}
