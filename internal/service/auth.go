package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/amehta/tripmates/internal/auth"
	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/repo"
)

// RegisterInput carries the registration form fields. Password arrives in
// clear text and leaves this package only as a bcrypt hash.
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	AddressLine3  string
	Profession    string
	Age           int
	SocialMediaID string
}

// AuthService implements registration and login.
type AuthService struct {
	users      repo.UserRepo
	tokens     *auth.Manager
	bcryptCost int
}

// NewAuthService constructs an AuthService. bcryptCost below the bcrypt
// minimum falls back to bcrypt.DefaultCost.
func NewAuthService(users repo.UserRepo, tokens *auth.Manager, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register validates the input, hashes the password, and persists the new
// user. Returns domain.ErrConflict if the email is already registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: email is required", domain.ErrValidation)
	}
	if len(in.Password) < 8 {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash: %w", err)
	}

	user := domain.User{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:  string(hash),
		Phone:         in.Phone,
		AddressLine1:  in.AddressLine1,
		AddressLine2:  in.AddressLine2,
		AddressLine3:  in.AddressLine3,
		Profession:    in.Profession,
		Age:           in.Age,
		SocialMediaID: in.SocialMediaID,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and issues a session token.
// Returns domain.ErrNotFound for an unknown email and
// domain.ErrUnauthorized for a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: incorrect password: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, token, nil
}
