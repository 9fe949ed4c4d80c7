package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/repo"
)

// PlaceService implements business logic for place operations.
type PlaceService struct {
	places repo.PlaceRepo
}

// NewPlaceService constructs a PlaceService backed by the provided PlaceRepo.
func NewPlaceService(places repo.PlaceRepo) *PlaceService {
	return &PlaceService{places: places}
}

// Create validates and persists a new place. BasePrice is always derived
// from the economy tier, never taken from the caller.
func (s *PlaceService) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	if err := validatePlace(place); err != nil {
		return domain.Place{}, err
	}
	place.BasePrice = place.Prices.Economy

	result, err := s.places.Create(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single place by ID.
func (s *PlaceService) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	result, err := s.places.GetByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all places.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlaceService) List(ctx context.Context) ([]domain.Place, error) {
	places, err := s.places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.List: %w", err)
	}
	if places == nil {
		return []domain.Place{}, nil
	}
	return places, nil
}

// ListPaged returns one page of places for the admin view.
func (s *PlaceService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error) {
	places, total, err := s.places.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlaceService.ListPaged: %w", err)
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, total, nil
}

// Update validates and persists changes to an existing place, re-deriving
// BasePrice from the economy tier.
func (s *PlaceService) Update(ctx context.Context, place domain.Place) (domain.Place, error) {
	if err := validatePlace(place); err != nil {
		return domain.Place{}, err
	}
	place.BasePrice = place.Prices.Economy

	result, err := s.places.Update(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a place by ID (admin operation).
func (s *PlaceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.places.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PlaceService.Delete: %w", err)
	}
	return nil
}

func validatePlace(place domain.Place) error {
	if strings.TrimSpace(place.Title) == "" {
		return fmt.Errorf("service.PlaceService: %w: title is required", domain.ErrValidation)
	}
	if place.Prices.Economy <= 0 || place.Prices.Medium <= 0 || place.Prices.Luxury <= 0 {
		return fmt.Errorf("service.PlaceService: %w: all tier prices must be positive", domain.ErrValidation)
	}
	return nil
}
