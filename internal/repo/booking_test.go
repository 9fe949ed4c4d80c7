package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/repo"
)

func TestBookingRepo_FindCandidates_FiltersOnSlot(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	bookings := repo.NewBookingRepo(tx)

	place := createPlace(t, tx)
	otherPlace := createPlace(t, tx)
	alice := createUser(t, tx, domain.StrategicLeader)
	bob := createUser(t, tx, domain.TacticalRealist)

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	match, err := bookings.Create(ctx, place.ID, alice.ID, day, 450)
	require.NoError(t, err)

	// Same place and day, different price tier.
	_, err = bookings.Create(ctx, place.ID, bob.ID, day, 900)
	require.NoError(t, err)

	// Same price and day, different place.
	_, err = bookings.Create(ctx, otherPlace.ID, bob.ID, day, 450)
	require.NoError(t, err)

	// Same place and price, next day.
	_, err = bookings.Create(ctx, place.ID, bob.ID, day.AddDate(0, 0, 1), 450)
	require.NoError(t, err)

	got, err := bookings.FindCandidates(ctx, place.ID, 450, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)
	require.Len(t, got[0].Members, 1)
	assert.Equal(t, alice.ID, got[0].Members[0].UserID)
	require.NotNil(t, got[0].Members[0].PersonalityCategory)
	assert.Equal(t, domain.StrategicLeader, *got[0].Members[0].PersonalityCategory)
}

func TestBookingRepo_FindCandidates_OldestGroupFirst(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	bookings := repo.NewBookingRepo(tx)

	place := createPlace(t, tx)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	first, err := bookings.Create(ctx, place.ID, createUser(t, tx, domain.StrategicLeader).ID, day, 450)
	require.NoError(t, err)
	second, err := bookings.Create(ctx, place.ID, createUser(t, tx, domain.TacticalRealist).ID, day, 450)
	require.NoError(t, err)

	got, err := bookings.FindCandidates(ctx, place.ID, 450, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestBookingRepo_AppendMember_AddsSeat(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	bookings := repo.NewBookingRepo(tx)

	place := createPlace(t, tx)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	group, err := bookings.Create(ctx, place.ID, createUser(t, tx, domain.StrategicLeader).ID, day, 450)
	require.NoError(t, err)

	joiner := createUser(t, tx, domain.TacticalRealist)
	require.NoError(t, bookings.AppendMember(ctx, group.ID, joiner.ID, domain.TacticalRealist))

	got, err := bookings.GetByID(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 2)
	// Insertion order is preserved.
	assert.Equal(t, joiner.ID, got.Members[1].UserID)
}

func TestBookingRepo_AppendMember_CategoryLimit_Conflicts(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	bookings := repo.NewBookingRepo(tx)

	place := createPlace(t, tx)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	group, err := bookings.Create(ctx, place.ID, createUser(t, tx, domain.StrategicLeader).ID, day, 450)
	require.NoError(t, err)
	require.NoError(t, bookings.AppendMember(ctx, group.ID, createUser(t, tx, domain.StrategicLeader).ID, domain.StrategicLeader))

	err = bookings.AppendMember(ctx, group.ID, createUser(t, tx, domain.StrategicLeader).ID, domain.StrategicLeader)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// A different category still fits.
	err = bookings.AppendMember(ctx, group.ID, createUser(t, tx, domain.ResilientCaregiver).ID, domain.ResilientCaregiver)
	assert.NoError(t, err)
}

func TestBookingRepo_AppendMember_FullGroup_Conflicts(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	bookings := repo.NewBookingRepo(tx)

	place := createPlace(t, tx)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	// Fill all ten seats: two members from each of the five categories.
	cats := domain.PersonalityCategories()
	group, err := bookings.Create(ctx, place.ID, createUser(t, tx, cats[0]).ID, day, 450)
	require.NoError(t, err)
	for i := 1; i < domain.MaxGroupSize; i++ {
		cat := cats[i/2]
		require.NoError(t, bookings.AppendMember(ctx, group.ID, createUser(t, tx, cat).ID, cat))
	}

	err = bookings.AppendMember(ctx, group.ID, createUser(t, tx, cats[0]).ID, cats[0])
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestBookingRepo_AppendMember_UnknownGroup_NotFound(t *testing.T) {
	tx := newTestTx(t)
	bookings := repo.NewBookingRepo(tx)

	user := createUser(t, tx, domain.StrategicLeader)
	err := bookings.AppendMember(context.Background(), user.ID /* not a group id */, user.ID, domain.StrategicLeader)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepo_AppendMember_SameUserTwice_Allowed(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	bookings := repo.NewBookingRepo(tx)

	place := createPlace(t, tx)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	alice := createUser(t, tx, domain.StrategicLeader)

	group, err := bookings.Create(ctx, place.ID, alice.ID, day, 450)
	require.NoError(t, err)

	// Booking twice consumes two seats; membership is per seat, not per user.
	require.NoError(t, bookings.AppendMember(ctx, group.ID, alice.ID, domain.StrategicLeader))

	got, err := bookings.GetByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, 2)
}

func TestBookingRepo_ListByUser_ReturnsOnlyOwnGroups(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	bookings := repo.NewBookingRepo(tx)

	place := createPlace(t, tx)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	alice := createUser(t, tx, domain.StrategicLeader)
	bob := createUser(t, tx, domain.TacticalRealist)

	mine, err := bookings.Create(ctx, place.ID, alice.ID, day, 450)
	require.NoError(t, err)
	_, err = bookings.Create(ctx, place.ID, bob.ID, day.AddDate(0, 0, 2), 450)
	require.NoError(t, err)

	got, err := bookings.ListByUser(ctx, alice.ID)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
	require.NotNil(t, got[0].Place)
	assert.Equal(t, place.Title, got[0].Place.Title)
}

func TestBookingRepo_Delete_RemovesGroupAndSeats(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	bookings := repo.NewBookingRepo(tx)

	place := createPlace(t, tx)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	alice := createUser(t, tx, domain.StrategicLeader)

	group, err := bookings.Create(ctx, place.ID, alice.ID, day, 450)
	require.NoError(t, err)

	require.NoError(t, bookings.Delete(ctx, group.ID))

	_, err = bookings.GetByID(ctx, group.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := bookings.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
