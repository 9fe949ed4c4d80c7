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

// PlaceRepo defines the persistence operations for places.
type PlaceRepo interface {
	// Create inserts a new place and returns the persisted record.
	Create(ctx context.Context, place domain.Place) (domain.Place, error)

	// GetByID retrieves a single place by primary key.
	// Returns domain.ErrNotFound if no place with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error)

	// List returns all places ordered by created_at descending.
	List(ctx context.Context) ([]domain.Place, error)

	// ListPaged returns one page of places (admin view) ordered by
	// created_at descending, plus the total place count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error)

	// Update overwrites the mutable fields of an existing place and
	// returns the updated record. Returns domain.ErrNotFound if no place
	// with that ID exists.
	Update(ctx context.Context, place domain.Place) (domain.Place, error)

	// Delete removes a place by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPlaceRepo is the Postgres implementation of PlaceRepo.
type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

const placeColumns = `id, title, locations_to_visit, photos, description,
		perks, extra_info, price_economy, price_medium, price_luxury,
		base_price, itinerary, created_at, updated_at`

func placeArgs(place domain.Place) pgx.NamedArgs {
	return pgx.NamedArgs{
		"title":              place.Title,
		"locations_to_visit": place.LocationsToVisit,
		"photos":             place.Photos,
		"description":        place.Description,
		"perks":              place.Perks,
		"extra_info":         place.ExtraInfo,
		"price_economy":      place.Prices.Economy,
		"price_medium":       place.Prices.Medium,
		"price_luxury":       place.Prices.Luxury,
		"base_price":         place.BasePrice,
		"itinerary":          place.Itinerary,
	}
}

func (r *pgPlaceRepo) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	const q = `
		INSERT INTO places (title, locations_to_visit, photos, description,
			perks, extra_info, price_economy, price_medium, price_luxury,
			base_price, itinerary)
		VALUES (@title, @locations_to_visit, @photos, @description,
			@perks, @extra_info, @price_economy, @price_medium, @price_luxury,
			@base_price, @itinerary)
		RETURNING ` + placeColumns

	result, err := scanPlace(r.db.QueryRow(ctx, q, placeArgs(place)))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places WHERE id = @id`

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) List(ctx context.Context) ([]domain.Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.List: %w", err)
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PlaceRepo.List: scan: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.List: rows: %w", err)
	}

	return places, nil
}

func (r *pgPlaceRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM places`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + placeColumns + `
		FROM places
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: scan: %w", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: rows: %w", err)
	}

	return places, total, nil
}

func (r *pgPlaceRepo) Update(ctx context.Context, place domain.Place) (domain.Place, error) {
	const q = `
		UPDATE places
		SET title              = @title,
		    locations_to_visit = @locations_to_visit,
		    photos             = @photos,
		    description        = @description,
		    perks              = @perks,
		    extra_info         = @extra_info,
		    price_economy      = @price_economy,
		    price_medium       = @price_medium,
		    price_luxury       = @price_luxury,
		    base_price         = @base_price,
		    itinerary          = @itinerary,
		    updated_at         = now()
		WHERE id = @id
		RETURNING ` + placeColumns

	args := placeArgs(place)
	args["id"] = place.ID

	result, err := scanPlace(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM places WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPlace maps a single database row into a domain.Place.
// The itinerary JSONB column unmarshals directly into the Itinerary struct.
func scanPlace(s scanner) (domain.Place, error) {
	var (
		p  domain.Place
		id pgtype.UUID
	)

	err := s.Scan(&id, &p.Title, &p.LocationsToVisit, &p.Photos, &p.Description,
		&p.Perks, &p.ExtraInfo, &p.Prices.Economy, &p.Prices.Medium, &p.Prices.Luxury,
		&p.BasePrice, &p.Itinerary, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
