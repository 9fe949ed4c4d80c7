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

// UserRepo defines the persistence operations for users.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record (with
	// DB-generated id and timestamps populated).
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a single user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail retrieves a single user by email.
	// Returns domain.ErrNotFound if no user with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// ListPaged returns one page of users ordered by created_at, plus the
	// total user count for pagination headers.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error)

	// UpdatePersonality overwrites the user's personality category and
	// trait scores. Pass nils to reset both (admin reset).
	// Returns domain.ErrNotFound if the user does not exist.
	UpdatePersonality(ctx context.Context, id uuid.UUID, category *domain.PersonalityCategory, scores *domain.TraitScores) error

	// Delete removes a user by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, name, email, password_hash, phone,
		address_line1, address_line2, address_line3, profession, age,
		social_media_id, personality_category, personality_scores,
		created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (name, email, password_hash, phone,
			address_line1, address_line2, address_line3, profession, age,
			social_media_id)
		VALUES (@name, @email, @password_hash, @phone,
			@address_line1, @address_line2, @address_line3, @profession, @age,
			@social_media_id)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"name":            user.Name,
		"email":           user.Email,
		"password_hash":   user.PasswordHash,
		"phone":           user.Phone,
		"address_line1":   user.AddressLine1,
		"address_line2":   user.AddressLine2,
		"address_line3":   user.AddressLine3,
		"profession":      user.Profession,
		"age":             user.Age,
		"social_media_id": user.SocialMediaID,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: email already registered: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.UserRepo.ListPaged: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.ListPaged: rows: %w", err)
	}

	return users, total, nil
}

func (r *pgUserRepo) UpdatePersonality(ctx context.Context, id uuid.UUID, category *domain.PersonalityCategory, scores *domain.TraitScores) error {
	const q = `
		UPDATE users
		SET personality_category = @category,
		    personality_scores   = @scores,
		    updated_at           = now()
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":       id,
		"category": category, // nil becomes NULL
		"scores":   scores,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.UserRepo.UpdatePersonality: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.UpdatePersonality: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM users WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single database row into a domain.User.
// It handles the UUID conversion and the nullable personality columns.
func scanUser(s scanner) (domain.User, error) {
	var (
		u        domain.User
		id       pgtype.UUID
		category pgtype.Text
	)

	err := s.Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &u.Phone,
		&u.AddressLine1, &u.AddressLine2, &u.AddressLine3, &u.Profession, &u.Age,
		&u.SocialMediaID, &category, &u.PersonalityScores,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	if category.Valid {
		c := domain.PersonalityCategory(category.String)
		u.PersonalityCategory = &c
	}

	return u, nil
}
