package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/repo"
)

// ReviewService implements business logic for reviews. It holds the place
// repo as well because creating a review requires the place to exist.
type ReviewService struct {
	reviews repo.ReviewRepo
	places  repo.PlaceRepo
}

// NewReviewService constructs a ReviewService backed by the provided repos.
func NewReviewService(reviews repo.ReviewRepo, places repo.PlaceRepo) *ReviewService {
	return &ReviewService{reviews: reviews, places: places}
}

// Create validates the review, verifies the place exists, then persists.
// Returns domain.ErrValidation for rating outside [1,5] or empty text,
// domain.ErrNotFound if the place does not exist.
func (s *ReviewService) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if strings.TrimSpace(review.ReviewText) == "" {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w: review text is required", domain.ErrValidation)
	}
	if _, err := s.places.GetByID(ctx, review.PlaceID); err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}

	result, err := s.reviews.Create(ctx, review)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	return result, nil
}

// ListByPlace returns all reviews for a place, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReviewService) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.ListByPlace: %w", err)
	}
	if reviews == nil {
		return []domain.Review{}, nil
	}
	return reviews, nil
}
