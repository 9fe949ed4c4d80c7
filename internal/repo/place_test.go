package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/repo"
)

func TestPlaceRepo_ListPaged_PagesInStore(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	places := repo.NewPlaceRepo(tx)

	for i := 0; i < 5; i++ {
		createPlace(t, tx)
	}

	page1, total, err := places.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page1, 2)

	page3, total, err := places.ListPaged(ctx, domain.PaginationParams{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page3, 1)

	// Pages never overlap.
	assert.NotEqual(t, page1[0].ID, page3[0].ID)
	assert.NotEqual(t, page1[1].ID, page3[0].ID)

	beyond, total, err := places.ListPaged(ctx, domain.PaginationParams{Page: 4, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, beyond)
}
