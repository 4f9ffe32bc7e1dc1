package service

import (
	"context"
	"log/slog"
	"time"

	"finly/internal/domain"
	"finly/internal/storage"
	"finly/internal/validator"
)

const (
	DefaultReviewLimit = 10
	MaxReviewLimit     = 50
)

type ReviewService struct {
	store   storage.ReviewStorage
	timeout time.Duration
	now     func() time.Time
}

func NewReviewService(store storage.ReviewStorage, timeout time.Duration) *ReviewService {
	return &ReviewService{store: store, timeout: timeout, now: time.Now}
}

func (s *ReviewService) Create(ctx context.Context, author domain.Identity, draft domain.ReviewDraft) (*domain.Review, error) {
	draft.Comment = domain.CleanText(draft.Comment)
	if err := validator.Check(draft); err != nil {
		return nil, err
	}

	r := &domain.Review{
		ID:        newID(),
		Rating:    draft.Rating,
		Comment:   draft.Comment,
		AuthorID:  author.ID,
		CreatedAt: s.now().UTC(),
	}

	sctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.CreateReview(sctx, r); err != nil {
		return nil, storeErr("create review", err)
	}
	slog.Info("Review created", "user_id", author.ID, "review_id", r.ID, "rating", r.Rating)
	return r, nil
}

// ClampLimit maps a requested page size onto [1, MaxReviewLimit];
// zero or negative means the default.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultReviewLimit
	case limit > MaxReviewLimit:
		return MaxReviewLimit
	default:
		return limit
	}
}

// ListRecent returns the newest reviews with their authors. Reviews by
// authors that no longer exist are left out, so a page may be short.
func (s *ReviewService) ListRecent(ctx context.Context, limit int) ([]domain.ReviewWithAuthor, error) {
	sctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	reviews, err := s.store.ListRecentReviews(sctx, ClampLimit(limit))
	if err != nil {
		return nil, storeErr("list reviews", err)
	}
	if reviews == nil {
		reviews = []domain.ReviewWithAuthor{}
	}
	return reviews, nil
}
