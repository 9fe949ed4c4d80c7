package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/amehta/tripmates/internal/domain"
)

// ReviewRepo defines the persistence operations for reviews.
type ReviewRepo interface {
	// Create inserts a new review and returns the persisted record.
	Create(ctx context.Context, review domain.Review) (domain.Review, error)

	// ListByPlace returns all reviews for a place, newest first, with the
	// reviewer's name populated.
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Review, error)
}

// pgReviewRepo is the Postgres implementation of ReviewRepo.
type pgReviewRepo struct {
	db db
}

// NewReviewRepo constructs a ReviewRepo backed by the provided db connection.
func NewReviewRepo(db db) ReviewRepo {
	return &pgReviewRepo{db: db}
}

func (r *pgReviewRepo) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	const q = `
		INSERT INTO reviews (user_id, place_id, rating, review_text)
		VALUES (@user_id, @place_id, @rating, @review_text)
		RETURNING id, user_id, place_id, rating, review_text, created_at`

	args := pgx.NamedArgs{
		"user_id":     review.UserID,
		"place_id":    review.PlaceID,
		"rating":      review.Rating,
		"review_text": review.ReviewText,
	}

	result, err := scanReview(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgReviewRepo) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Review, error) {
	const q = `
		SELECT rv.id, rv.user_id, rv.place_id, rv.rating, rv.review_text,
		       rv.created_at, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.place_id = @place_id
		ORDER BY rv.created_at DESC, rv.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"place_id": placeID})
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListByPlace: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var (
			rv      domain.Review
			id      pgtype.UUID
			userID  pgtype.UUID
			placeID pgtype.UUID
		)
		err := rows.Scan(&id, &userID, &placeID, &rv.Rating, &rv.ReviewText,
			&rv.CreatedAt, &rv.ReviewerName)
		if err != nil {
			return nil, fmt.Errorf("repo.ReviewRepo.ListByPlace: scan: %w", err)
		}
		rv.ID = uuid.UUID(id.Bytes)
		rv.UserID = uuid.UUID(userID.Bytes)
		rv.PlaceID = uuid.UUID(placeID.Bytes)
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListByPlace: rows: %w", err)
	}

	return reviews, nil
}

// scanReview maps a single database row (without reviewer name) into a
// domain.Review.
func scanReview(s scanner) (domain.Review, error) {
	var (
		rv      domain.Review
		id      pgtype.UUID
		userID  pgtype.UUID
		placeID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &placeID, &rv.Rating, &rv.ReviewText, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}

	rv.ID = uuid.UUID(id.Bytes)
	rv.UserID = uuid.UUID(userID.Bytes)
	rv.PlaceID = uuid.UUID(placeID.Bytes)
	return rv, nil
}
