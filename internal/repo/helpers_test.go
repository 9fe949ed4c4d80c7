package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/repo"
	"github.com/amehta/tripmates/testutil"
)

// newTestTx begins a transaction on the test database and rolls it back
// when the test finishes. Repos constructed over the tx see their own
// writes, but nothing persists between tests.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()

	pool := testutil.NewPool(t)
	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// seq disambiguates fixture emails within one test.
var seq int

// createUser inserts a user with the given personality category (empty
// string means no category).
func createUser(t *testing.T, tx pgx.Tx, category domain.PersonalityCategory) domain.User {
	t.Helper()

	seq++
	users := repo.NewUserRepo(tx)
	user, err := users.Create(context.Background(), domain.User{
		Name:         fmt.Sprintf("Traveler %d", seq),
		Email:        fmt.Sprintf("traveler%d@example.com", seq),
		PasswordHash: "x",
	})
	require.NoError(t, err)

	if category != "" {
		scores := domain.TraitScores{Extraversion: 15, Neuroticism: 15, Agreeableness: 15, Conscientiousness: 15, Openness: 15}
		require.NoError(t, users.UpdatePersonality(context.Background(), user.ID, &category, &scores))
		user.PersonalityCategory = &category
		user.PersonalityScores = &scores
	}
	return user
}

// createPlace inserts a minimal bookable place.
func createPlace(t *testing.T, tx pgx.Tx) domain.Place {
	t.Helper()

	seq++
	places := repo.NewPlaceRepo(tx)
	place, err := places.Create(context.Background(), domain.Place{
		Title:     fmt.Sprintf("Destination %d", seq),
		Prices:    domain.TierPrices{Economy: 450, Medium: 900, Luxury: 1800},
		BasePrice: 450,
	})
	require.NoError(t, err)
	return place
}
