package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/personality"
	"github.com/amehta/tripmates/internal/repo"
)

// UserService implements profile and personality-test operations.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// SubmitPersonalityTest scores the 25 questionnaire answers and persists
// the resulting category and trait totals on the user.
// Returns domain.ErrValidation if the answer count is wrong — nothing is
// persisted in that case.
func (s *UserService) SubmitPersonalityTest(ctx context.Context, userID uuid.UUID, responses []int) (domain.PersonalityCategory, error) {
	result, err := personality.Score(responses)
	if err != nil {
		return "", fmt.Errorf("service.UserService.SubmitPersonalityTest: %w", err)
	}

	if err := s.users.UpdatePersonality(ctx, userID, &result.Category, &result.Scores); err != nil {
		return "", fmt.Errorf("service.UserService.SubmitPersonalityTest: %w", err)
	}
	return result.Category, nil
}

// ResetPersonality nulls the user's category and trait totals (admin
// operation). The user must retake the test before booking again.
func (s *UserService) ResetPersonality(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.UpdatePersonality(ctx, userID, nil, nil); err != nil {
		return fmt.Errorf("service.UserService.ResetPersonality: %w", err)
	}
	return nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// GetByEmail returns the public profile for the given email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByEmail: %w", err)
	}
	return user, nil
}

// ListPaged returns one page of users for the admin view.
func (s *UserService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error) {
	users, total, err := s.users.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.UserService.ListPaged: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, total, nil
}

// Delete removes a user (admin operation).
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}
