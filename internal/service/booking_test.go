package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/repo"
	"github.com/amehta/tripmates/internal/service"
)

// mockUserRepo is a hand-written test double for repo.UserRepo.
// Each method is a function field — set only the ones your test needs.
type mockUserRepo struct {
	create            func(ctx context.Context, user domain.User) (domain.User, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail        func(ctx context.Context, email string) (domain.User, error)
	listPaged         func(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error)
	updatePersonality func(ctx context.Context, id uuid.UUID, category *domain.PersonalityCategory, scores *domain.TraitScores) error
	delete            func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockUserRepo) UpdatePersonality(ctx context.Context, id uuid.UUID, category *domain.PersonalityCategory, scores *domain.TraitScores) error {
	return m.updatePersonality(ctx, id, category, scores)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

// mockPlaceRepo is a hand-written test double for repo.PlaceRepo.
type mockPlaceRepo struct {
	create    func(ctx context.Context, place domain.Place) (domain.Place, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Place, error)
	list      func(ctx context.Context) ([]domain.Place, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error)
	update    func(ctx context.Context, place domain.Place) (domain.Place, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlaceRepo) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.create(ctx, p)
}
func (m *mockPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlaceRepo) List(ctx context.Context) ([]domain.Place, error) { return m.list(ctx) }
func (m *mockPlaceRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockPlaceRepo) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.update(ctx, p)
}
func (m *mockPlaceRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

var _ repo.PlaceRepo = (*mockPlaceRepo)(nil)

// mockBookingRepo is a hand-written test double for repo.BookingRepo.
type mockBookingRepo struct {
	findCandidates func(ctx context.Context, placeID uuid.UUID, price int64, dayStart, dayEnd time.Time) ([]domain.Booking, error)
	appendMember   func(ctx context.Context, bookingID, userID uuid.UUID, category domain.PersonalityCategory) error
	createGroup    func(ctx context.Context, placeID, userID uuid.UUID, checkIn time.Time, price int64) (domain.Booking, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	listByUser     func(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	listPaged      func(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)
	delete         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookingRepo) FindCandidates(ctx context.Context, placeID uuid.UUID, price int64, dayStart, dayEnd time.Time) ([]domain.Booking, error) {
	return m.findCandidates(ctx, placeID, price, dayStart, dayEnd)
}
func (m *mockBookingRepo) AppendMember(ctx context.Context, bookingID, userID uuid.UUID, category domain.PersonalityCategory) error {
	return m.appendMember(ctx, bookingID, userID, category)
}
func (m *mockBookingRepo) Create(ctx context.Context, placeID, userID uuid.UUID, checkIn time.Time, price int64) (domain.Booking, error) {
	return m.createGroup(ctx, placeID, userID, checkIn, price)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockBookingRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.BookingRepo = (*mockBookingRepo)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	testUserID  = uuid.MustParse("3b9f2d51-7a4e-4f07-9c63-55e2a2b1f111")
	testPlaceID = uuid.MustParse("9d31b7de-10c4-4f7a-8a2e-77e2a2b1f222")
)

func catPtr(c domain.PersonalityCategory) *domain.PersonalityCategory { return &c }

// userWithCategory returns a mockUserRepo resolving testUserID to a user
// holding the given category.
func userWithCategory(c domain.PersonalityCategory) *mockUserRepo {
	return &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id, Name: "Asha", Email: "asha@example.com", PersonalityCategory: catPtr(c)}, nil
		},
	}
}

func knownPlace() *mockPlaceRepo {
	return &mockPlaceRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Place, error) {
			return domain.Place{ID: id, Title: "Ladakh Circuit", Prices: domain.TierPrices{Economy: 500, Medium: 800, Luxury: 1200}, BasePrice: 500}, nil
		},
	}
}

func validRequest() service.BookingRequest {
	return service.BookingRequest{
		PlaceID: testPlaceID,
		CheckIn: time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC),
		Price:   500,
	}
}

// members builds n members of the given category.
func members(n int, c domain.PersonalityCategory) []domain.BookingMember {
	out := make([]domain.BookingMember, n)
	for i := range out {
		out[i] = domain.BookingMember{UserID: uuid.New(), PersonalityCategory: catPtr(c)}
	}
	return out
}

// ---- precondition tests ----------------------------------------------------

func TestRequestBooking_PersonalityUnset_FailsBeforeAnyWrite(t *testing.T) {
	queried := false
	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			queried = true
			return nil, nil
		},
		createGroup: func(context.Context, uuid.UUID, uuid.UUID, time.Time, int64) (domain.Booking, error) {
			t.Fatal("store write must not happen for a user without a personality category")
			return domain.Booking{}, nil
		},
	}
	users := &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id, Name: "Asha"}, nil // category nil
		},
	}
	svc := service.NewBookingService(users, knownPlace(), bookings)

	_, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	assert.ErrorIs(t, err, domain.ErrPersonalityRequired)
	assert.False(t, queried, "store must not even be queried")
}

func TestRequestBooking_UnknownUser_Unauthorized(t *testing.T) {
	users := &mockUserRepo{
		getByID: func(context.Context, uuid.UUID) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		},
	}
	svc := service.NewBookingService(users, knownPlace(), &mockBookingRepo{})

	_, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRequestBooking_UnknownPlace_NotFound(t *testing.T) {
	places := &mockPlaceRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Place, error) {
			return domain.Place{}, domain.ErrNotFound
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), places, &mockBookingRepo{})

	_, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestBooking_InvalidInput(t *testing.T) {
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), &mockBookingRepo{})

	for name, mutate := range map[string]func(*service.BookingRequest){
		"zero place":     func(r *service.BookingRequest) { r.PlaceID = uuid.Nil },
		"zero check-in":  func(r *service.BookingRequest) { r.CheckIn = time.Time{} },
		"zero price":     func(r *service.BookingRequest) { r.Price = 0 },
		"negative price": func(r *service.BookingRequest) { r.Price = -500 },
	} {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := svc.RequestBooking(context.Background(), testUserID, req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ---- matching tests --------------------------------------------------------

func TestRequestBooking_NoCandidates_CreatesNewGroup(t *testing.T) {
	newGroupID := uuid.New()
	var gotCheckIn time.Time
	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			return nil, nil
		},
		createGroup: func(_ context.Context, placeID, userID uuid.UUID, checkIn time.Time, price int64) (domain.Booking, error) {
			gotCheckIn = checkIn
			return domain.Booking{ID: newGroupID, PlaceID: placeID, CheckIn: checkIn, Price: price,
				Members: []domain.BookingMember{{UserID: userID}}}, nil
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	got, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCreatedNew, got.Outcome)
	assert.Equal(t, newGroupID, got.GroupID)
	// 2024-05-01T23:59:00Z stores as midnight UTC of that day.
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), gotCheckIn)
}

func TestRequestBooking_FirstFit_JoinsFirstEligibleNotBest(t *testing.T) {
	// Group A is nearly full (9 members, none sharing the requester's
	// category); group B is empty. Best-fit would pick B; first-fit must
	// pick A because the store returned it first.
	groupA := domain.Booking{ID: uuid.New(), Members: members(9, domain.TacticalRealist)}
	groupB := domain.Booking{ID: uuid.New(), Members: members(1, domain.TacticalRealist)}

	var joined uuid.UUID
	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			return []domain.Booking{groupA, groupB}, nil
		},
		appendMember: func(_ context.Context, bookingID, _ uuid.UUID, _ domain.PersonalityCategory) error {
			joined = bookingID
			return nil
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	got, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeJoinedExisting, got.Outcome)
	assert.Equal(t, groupA.ID, got.GroupID)
	assert.Equal(t, groupA.ID, joined)
}

func TestRequestBooking_SkipsFullGroup(t *testing.T) {
	full := domain.Booking{ID: uuid.New(), Members: members(10, domain.TacticalRealist)}
	open := domain.Booking{ID: uuid.New(), Members: members(2, domain.TacticalRealist)}

	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			return []domain.Booking{full, open}, nil
		},
		appendMember: func(_ context.Context, bookingID, _ uuid.UUID, _ domain.PersonalityCategory) error {
			assert.Equal(t, open.ID, bookingID, "full group must be skipped")
			return nil
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	got, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, open.ID, got.GroupID)
}

func TestRequestBooking_SkipsGroupWithTwoOfSameCategory(t *testing.T) {
	// Two Strategic Leaders already seated: a third may not join.
	saturated := domain.Booking{ID: uuid.New(), Members: members(2, domain.StrategicLeader)}

	created := uuid.New()
	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			return []domain.Booking{saturated}, nil
		},
		appendMember: func(context.Context, uuid.UUID, uuid.UUID, domain.PersonalityCategory) error {
			t.Fatal("must not append to a category-saturated group")
			return nil
		},
		createGroup: func(context.Context, uuid.UUID, uuid.UUID, time.Time, int64) (domain.Booking, error) {
			return domain.Booking{ID: created}, nil
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	got, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCreatedNew, got.Outcome)
	assert.Equal(t, created, got.GroupID)
}

func TestRequestBooking_OneOfSameCategory_StillJoins(t *testing.T) {
	// One Strategic Leader seated: a second fits (limit is 2 per category).
	group := domain.Booking{ID: uuid.New(), Members: append(members(1, domain.StrategicLeader), members(3, domain.ResilientCaregiver)...)}

	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			return []domain.Booking{group}, nil
		},
		appendMember: func(context.Context, uuid.UUID, uuid.UUID, domain.PersonalityCategory) error {
			return nil
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	got, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeJoinedExisting, got.Outcome)
}

// TestRequestBooking_SameUserTwice_NotPrevented pins the documented
// policy: the matcher does not check whether the requester already holds
// a seat in a same-slot group, so booking twice consumes two seats.
func TestRequestBooking_SameUserTwice_NotPrevented(t *testing.T) {
	existing := domain.Booking{ID: uuid.New(), Members: []domain.BookingMember{
		{UserID: testUserID, PersonalityCategory: catPtr(domain.StrategicLeader)},
	}}

	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			return []domain.Booking{existing}, nil
		},
		appendMember: func(context.Context, uuid.UUID, uuid.UUID, domain.PersonalityCategory) error {
			return nil
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	got, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeJoinedExisting, got.Outcome, "second booking into the same group is allowed")
}

// ---- date normalization ----------------------------------------------------

func TestRequestBooking_SameCalendarDay_SameSlot(t *testing.T) {
	// Late-evening and just-after-midnight check-ins on 2024-05-01 must
	// query the identical [day, day+1) window.
	var windows [][2]time.Time
	bookings := &mockBookingRepo{
		findCandidates: func(_ context.Context, _ uuid.UUID, _ int64, dayStart, dayEnd time.Time) ([]domain.Booking, error) {
			windows = append(windows, [2]time.Time{dayStart, dayEnd})
			return nil, nil
		},
		createGroup: func(_ context.Context, placeID, userID uuid.UUID, checkIn time.Time, price int64) (domain.Booking, error) {
			return domain.Booking{ID: uuid.New()}, nil
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	for _, checkIn := range []time.Time{
		time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 1, 0, time.UTC),
	} {
		req := validRequest()
		req.CheckIn = checkIn
		_, err := svc.RequestBooking(context.Background(), testUserID, req)
		require.NoError(t, err)
	}

	require.Len(t, windows, 2)
	assert.Equal(t, windows[0], windows[1], "both timestamps must map to the same slot window")
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), windows[0][0])
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), windows[0][1])
}

// ---- conflict retry --------------------------------------------------------

func TestRequestBooking_ConflictRetriesThenCreates(t *testing.T) {
	// First attempt: the candidate loses its last seat between scan and
	// append. Second attempt: the group is full, so a new group starts.
	group := domain.Booking{ID: uuid.New(), Members: members(9, domain.TacticalRealist)}

	attempt := 0
	created := uuid.New()
	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			attempt++
			if attempt == 1 {
				return []domain.Booking{group}, nil
			}
			full := group
			full.Members = members(10, domain.TacticalRealist)
			return []domain.Booking{full}, nil
		},
		appendMember: func(context.Context, uuid.UUID, uuid.UUID, domain.PersonalityCategory) error {
			return domain.ErrConflict
		},
		createGroup: func(context.Context, uuid.UUID, uuid.UUID, time.Time, int64) (domain.Booking, error) {
			return domain.Booking{ID: created}, nil
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	got, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, attempt, "match must re-run after a lost append race")
	assert.Equal(t, domain.OutcomeCreatedNew, got.Outcome)
	assert.Equal(t, created, got.GroupID)
}

func TestRequestBooking_ConflictExhaustion_Surfaces(t *testing.T) {
	group := domain.Booking{ID: uuid.New(), Members: members(1, domain.TacticalRealist)}

	scans := 0
	bookings := &mockBookingRepo{
		findCandidates: func(context.Context, uuid.UUID, int64, time.Time, time.Time) ([]domain.Booking, error) {
			scans++
			return []domain.Booking{group}, nil
		},
		appendMember: func(context.Context, uuid.UUID, uuid.UUID, domain.PersonalityCategory) error {
			return domain.ErrConflict
		},
	}
	svc := service.NewBookingService(userWithCategory(domain.StrategicLeader), knownPlace(), bookings)

	_, err := svc.RequestBooking(context.Background(), testUserID, validRequest())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, scans, "match retries are bounded")
}
