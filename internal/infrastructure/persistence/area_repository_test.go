package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAreaRepository_Tree(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAreaRepository(newTestDB(t))
	create := func(a *region.Area) error { return repo.Create(ctx, a) }
	province, city, otherCity, district := seedAreas(create)

	t.Run("lists children by parent", func(t *testing.T) {
		roots, err := repo.FindByParentID(ctx, 0)
		require.NoError(t, err)
		require.Len(t, roots, 1)
		assert.Equal(t, province.AreaID, roots[0].AreaID)

		cities, err := repo.FindByParentID(ctx, province.AreaID)
		require.NoError(t, err)
		assert.Len(t, cities, 2)

		none, err := repo.FindByParentID(ctx, district.AreaID)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("finds by ids", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, []int64{city.AreaID, district.AreaID})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("deletes a subtree", func(t *testing.T) {
		removed, err := repo.DeleteTree(ctx, city.AreaID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		_, err = repo.FindByID(ctx, district.AreaID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		_, err = repo.FindByID(ctx, otherCity.AreaID)
		assert.NoError(t, err)
	})

	t.Run("deleting a missing area is not found", func(t *testing.T) {
		_, err := repo.DeleteTree(ctx, 424242)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
