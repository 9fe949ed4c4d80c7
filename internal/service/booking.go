// Package service contains the business logic for the TripMates API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/repo"
)

// matchAttempts bounds how often a booking request re-runs the match after
// losing an append race. Exhaustion surfaces domain.ErrConflict.
const matchAttempts = 3

// matchBackoff is the pause between match retries.
const matchBackoff = 50 * time.Millisecond

// BookingRequest carries a validated booking request into the matcher.
type BookingRequest struct {
	PlaceID uuid.UUID
	CheckIn time.Time
	Price   int64
}

// BookingResult reports where the matcher put the traveler.
type BookingResult struct {
	GroupID uuid.UUID
	Outcome domain.BookingOutcome
}

// BookingService implements the group-matching logic for booking requests.
// It holds users, places, and bookings repos because a request must
// resolve the traveler's personality and the place before touching groups.
type BookingService struct {
	users    repo.UserRepo
	places   repo.PlaceRepo
	bookings repo.BookingRepo
}

// NewBookingService constructs a BookingService backed by the provided repos.
func NewBookingService(users repo.UserRepo, places repo.PlaceRepo, bookings repo.BookingRepo) *BookingService {
	return &BookingService{users: users, places: places, bookings: bookings}
}

// RequestBooking matches one traveler into a group for the slot
// (place, check-in day, price).
//
// The check-in is normalized to midnight UTC, candidate groups for the
// slot are scanned in store order, and the traveler joins the FIRST group
// with a free seat and fewer than two members of their personality
// category — first-fit, not best-fit. With no eligible group a new one is
// created. Exactly one store write happens per successful call.
//
// Whether the traveler already holds a seat in a same-slot group is
// deliberately not checked; booking twice consumes two seats.
//
// Failure modes: domain.ErrUnauthorized when the traveler cannot be
// resolved, domain.ErrPersonalityRequired before any store write when the
// personality test is incomplete, domain.ErrValidation for malformed
// input, domain.ErrNotFound for an unknown place, and domain.ErrConflict
// when every match attempt lost its append race.
func (s *BookingService) RequestBooking(ctx context.Context, userID uuid.UUID, req BookingRequest) (BookingResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return BookingResult{}, fmt.Errorf("service.BookingService.RequestBooking: traveler not resolved: %w", domain.ErrUnauthorized)
		}
		return BookingResult{}, fmt.Errorf("service.BookingService.RequestBooking: %w", err)
	}
	if !user.HasPersonality() {
		return BookingResult{}, fmt.Errorf("service.BookingService.RequestBooking: %w", domain.ErrPersonalityRequired)
	}

	if err := validateBookingRequest(req); err != nil {
		return BookingResult{}, err
	}

	if _, err := s.places.GetByID(ctx, req.PlaceID); err != nil {
		return BookingResult{}, fmt.Errorf("service.BookingService.RequestBooking: %w", err)
	}

	dayStart := domain.NormalizeCheckIn(req.CheckIn)
	dayEnd := dayStart.AddDate(0, 0, 1)
	category := *user.PersonalityCategory

	var result BookingResult
	backoff := retry.WithMaxRetries(matchAttempts-1, retry.NewConstant(matchBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := s.matchOnce(ctx, userID, category, req.PlaceID, req.Price, dayStart, dayEnd)
		if err != nil {
			// A lost append race means the candidate set changed under
			// us — re-run the match from the query.
			if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return BookingResult{}, fmt.Errorf("service.BookingService.RequestBooking: match attempts exhausted: %w", domain.ErrConflict)
		}
		return BookingResult{}, fmt.Errorf("service.BookingService.RequestBooking: %w", err)
	}

	return result, nil
}

// matchOnce runs one pass of the matching algorithm: query candidates,
// first-fit scan, then either append or create.
func (s *BookingService) matchOnce(ctx context.Context, userID uuid.UUID, category domain.PersonalityCategory, placeID uuid.UUID, price int64, dayStart, dayEnd time.Time) (BookingResult, error) {
	candidates, err := s.bookings.FindCandidates(ctx, placeID, price, dayStart, dayEnd)
	if err != nil {
		return BookingResult{}, err
	}

	for _, group := range candidates {
		if !group.CanAccept(category) {
			continue
		}
		if err := s.bookings.AppendMember(ctx, group.ID, userID, category); err != nil {
			return BookingResult{}, err
		}
		return BookingResult{GroupID: group.ID, Outcome: domain.OutcomeJoinedExisting}, nil
	}

	created, err := s.bookings.Create(ctx, placeID, userID, dayStart, price)
	if err != nil {
		return BookingResult{}, err
	}
	return BookingResult{GroupID: created.ID, Outcome: domain.OutcomeCreatedNew}, nil
}

// GetByID returns a single group with members and place populated.
func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.GetByID: %w", err)
	}
	return booking, nil
}

// ListByUser returns all groups the user holds a seat in.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.ListByUser: %w", err)
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return bookings, nil
}

// ListPaged returns one page of all groups for the admin view.
func (s *BookingService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	bookings, total, err := s.bookings.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BookingService.ListPaged: %w", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, total, nil
}

// Delete removes a group (admin operation — the matcher itself never
// deletes groups).
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.BookingService.Delete: %w", err)
	}
	return nil
}

func validateBookingRequest(req BookingRequest) error {
	if req.PlaceID == uuid.Nil {
		return fmt.Errorf("service.BookingService.RequestBooking: %w: tripId is required", domain.ErrValidation)
	}
	if req.CheckIn.IsZero() {
		return fmt.Errorf("service.BookingService.RequestBooking: %w: checkInDate is required", domain.ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("service.BookingService.RequestBooking: %w: selectedPrice must be positive", domain.ErrValidation)
	}
	return nil
}
