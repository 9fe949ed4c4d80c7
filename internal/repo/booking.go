package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/amehta/tripmates/internal/domain"
)

// BookingRepo defines the persistence operations for booking groups.
//
// The matcher's read-decide-write sequence is not one transaction, so
// AppendMember re-checks the group invariants under a row lock and fails
// with domain.ErrConflict when a concurrent writer consumed the seat.
// The service retries the whole match on that error.
type BookingRepo interface {
	// FindCandidates returns all groups for the (place, price) pair whose
	// check-in falls inside the half-open interval [dayStart, dayEnd),
	// ordered by created_at then id — oldest group first. Members carry
	// user IDs and personality categories; names and emails are not
	// populated on this path.
	FindCandidates(ctx context.Context, placeID uuid.UUID, price int64, dayStart, dayEnd time.Time) ([]domain.Booking, error)

	// AppendMember adds one seat for userID to the group. Inside a single
	// transaction it locks the group row, re-counts members and the
	// members sharing category, and inserts only if both limits still
	// hold. Returns domain.ErrConflict when either limit is exhausted,
	// domain.ErrNotFound when the group vanished.
	AppendMember(ctx context.Context, bookingID, userID uuid.UUID, category domain.PersonalityCategory) error

	// Create starts a new group for the slot with userID as sole member.
	Create(ctx context.Context, placeID, userID uuid.UUID, checkIn time.Time, price int64) (domain.Booking, error)

	// GetByID retrieves a group with members (names, emails, categories)
	// and place populated. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// ListByUser returns all groups the user holds a seat in, newest
	// first, with members and places populated.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)

	// ListPaged returns one page of all groups (admin view) ordered by
	// created_at descending, plus the total group count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)

	// Delete removes a group and its membership rows (admin operation).
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx —
// AppendMember then runs in a savepoint, so rollback isolation still holds.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

func (r *pgBookingRepo) FindCandidates(ctx context.Context, placeID uuid.UUID, price int64, dayStart, dayEnd time.Time) ([]domain.Booking, error) {
	const q = `
		SELECT b.id, b.place_id, b.check_in, b.price, b.created_at,
		       bm.user_id, u.personality_category, bm.joined_at
		FROM bookings b
		JOIN booking_members bm ON bm.booking_id = b.id
		JOIN users u ON u.id = bm.user_id
		WHERE b.place_id = @place_id
		  AND b.price = @price
		  AND b.check_in >= @day_start
		  AND b.check_in < @day_end
		ORDER BY b.created_at, b.id, bm.id`

	args := pgx.NamedArgs{
		"place_id":  placeID,
		"price":     price,
		"day_start": dayStart,
		"day_end":   dayEnd,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.FindCandidates: %w", err)
	}
	defer rows.Close()

	var (
		bookings []domain.Booking
		index    = map[uuid.UUID]int{}
	)
	for rows.Next() {
		var (
			bookingID pgtype.UUID
			b         domain.Booking
			m         domain.BookingMember
			memberID  pgtype.UUID
			category  pgtype.Text
		)
		err := rows.Scan(&bookingID, &b.PlaceID, &b.CheckIn, &b.Price, &b.CreatedAt,
			&memberID, &category, &m.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.FindCandidates: scan: %w", err)
		}

		b.ID = uuid.UUID(bookingID.Bytes)
		m.UserID = uuid.UUID(memberID.Bytes)
		if category.Valid {
			c := domain.PersonalityCategory(category.String)
			m.PersonalityCategory = &c
		}

		i, ok := index[b.ID]
		if !ok {
			i = len(bookings)
			index[b.ID] = i
			bookings = append(bookings, b)
		}
		bookings[i].Members = append(bookings[i].Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.FindCandidates: rows: %w", err)
	}

	return bookings, nil
}

func (r *pgBookingRepo) AppendMember(ctx context.Context, bookingID, userID uuid.UUID, category domain.PersonalityCategory) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.AppendMember: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	// Lock the group row so concurrent appends to the same group serialize
	// and the counts below stay valid until commit.
	var locked pgtype.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM bookings WHERE id = @id FOR UPDATE`,
		pgx.NamedArgs{"id": bookingID}).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.BookingRepo.AppendMember: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.BookingRepo.AppendMember: lock: %w", err)
	}

	const countQ = `
		SELECT count(*),
		       count(*) FILTER (WHERE u.personality_category = @category)
		FROM booking_members bm
		JOIN users u ON u.id = bm.user_id
		WHERE bm.booking_id = @id`

	var total, same int
	err = tx.QueryRow(ctx, countQ, pgx.NamedArgs{"id": bookingID, "category": string(category)}).Scan(&total, &same)
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.AppendMember: count: %w", err)
	}

	if total >= domain.MaxGroupSize || same >= domain.MaxPerCategory {
		return fmt.Errorf("repo.BookingRepo.AppendMember: group no longer eligible: %w", domain.ErrConflict)
	}

	_, err = tx.Exec(ctx, `INSERT INTO booking_members (booking_id, user_id) VALUES (@booking_id, @user_id)`,
		pgx.NamedArgs{"booking_id": bookingID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.AppendMember: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.BookingRepo.AppendMember: commit: %w", err)
	}
	return nil
}

func (r *pgBookingRepo) Create(ctx context.Context, placeID, userID uuid.UUID, checkIn time.Time, price int64) (domain.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	const q = `
		INSERT INTO bookings (place_id, check_in, price)
		VALUES (@place_id, @check_in, @price)
		RETURNING id, created_at`

	var (
		id        pgtype.UUID
		createdAt time.Time
	)
	err = tx.QueryRow(ctx, q, pgx.NamedArgs{
		"place_id": placeID,
		"check_in": checkIn,
		"price":    price,
	}).Scan(&id, &createdAt)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}

	bookingID := uuid.UUID(id.Bytes)

	var joinedAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO booking_members (booking_id, user_id)
		VALUES (@booking_id, @user_id)
		RETURNING joined_at`,
		pgx.NamedArgs{"booking_id": bookingID, "user_id": userID}).Scan(&joinedAt)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: commit: %w", err)
	}

	return domain.Booking{
		ID:        bookingID,
		PlaceID:   placeID,
		CheckIn:   checkIn,
		Price:     price,
		Members:   []domain.BookingMember{{UserID: userID, JoinedAt: joinedAt}},
		CreatedAt: createdAt,
	}, nil
}

func (r *pgBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	const q = `
		SELECT b.id, b.place_id, b.check_in, b.price, b.created_at
		FROM bookings b
		WHERE b.id = @id`

	var (
		b   domain.Booking
		bid pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).
		Scan(&bid, &b.PlaceID, &b.CheckIn, &b.Price, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	b.ID = uuid.UUID(bid.Bytes)

	place, err := NewPlaceRepo(r.db).GetByID(ctx, b.PlaceID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: place: %w", err)
	}
	b.Place = &place

	members, err := r.membersFor(ctx, []uuid.UUID{b.ID})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	b.Members = members[b.ID]

	return b, nil
}

func (r *pgBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	const q = `
		SELECT b.id, b.place_id, b.check_in, b.price, b.created_at
		FROM bookings b
		WHERE EXISTS (
			SELECT 1 FROM booking_members bm
			WHERE bm.booking_id = b.id AND bm.user_id = @user_id
		)
		ORDER BY b.created_at DESC, b.id`

	bookings, err := r.collectBookings(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByUser: %w", err)
	}
	return bookings, nil
}

func (r *pgBookingRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT b.id, b.place_id, b.check_in, b.price, b.created_at
		FROM bookings b
		ORDER BY b.created_at DESC, b.id
		LIMIT @limit OFFSET @offset`

	bookings, err := r.collectBookings(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: %w", err)
	}
	return bookings, total, nil
}

func (r *pgBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// booking_members rows go with the group via ON DELETE CASCADE.
	const q = `DELETE FROM bookings WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// collectBookings runs a booking query, then populates members and places
// for every returned group with one query each.
func (r *pgBookingRepo) collectBookings(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		bookings []domain.Booking
		ids      []uuid.UUID
	)
	for rows.Next() {
		var (
			b  domain.Booking
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &b.PlaceID, &b.CheckIn, &b.Price, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		b.ID = uuid.UUID(id.Bytes)
		bookings = append(bookings, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if len(bookings) == 0 {
		return nil, nil
	}

	members, err := r.membersFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	places := NewPlaceRepo(r.db)
	cache := map[uuid.UUID]*domain.Place{}
	for i := range bookings {
		bookings[i].Members = members[bookings[i].ID]
		if p, ok := cache[bookings[i].PlaceID]; ok {
			bookings[i].Place = p
			continue
		}
		place, err := places.GetByID(ctx, bookings[i].PlaceID)
		if err != nil {
			return nil, fmt.Errorf("place: %w", err)
		}
		cache[bookings[i].PlaceID] = &place
		bookings[i].Place = &place
	}

	return bookings, nil
}

// membersFor loads the member lists for the given booking IDs in one
// query, keyed by booking ID, in seat-insertion order.
func (r *pgBookingRepo) membersFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.BookingMember, error) {
	const q = `
		SELECT bm.booking_id, bm.user_id, u.name, u.email,
		       u.personality_category, bm.joined_at
		FROM booking_members bm
		JOIN users u ON u.id = bm.user_id
		WHERE bm.booking_id = ANY(@ids)
		ORDER BY bm.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("members: %w", err)
	}
	defer rows.Close()

	out := map[uuid.UUID][]domain.BookingMember{}
	for rows.Next() {
		var (
			bookingID pgtype.UUID
			userID    pgtype.UUID
			category  pgtype.Text
			m         domain.BookingMember
		)
		err := rows.Scan(&bookingID, &userID, &m.Name, &m.Email, &category, &m.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("members: scan: %w", err)
		}
		m.UserID = uuid.UUID(userID.Bytes)
		if category.Valid {
			c := domain.PersonalityCategory(category.String)
			m.PersonalityCategory = &c
		}
		bid := uuid.UUID(bookingID.Bytes)
		out[bid] = append(out[bid], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("members: rows: %w", err)
	}

	return out, nil
}
