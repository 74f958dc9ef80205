package region

import (
	"context"
	"errors"
	"testing"

	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/infrastructure/persistence"
	"github.com/Darkingtail/mall4r/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAreaService(t *testing.T) *AreaService {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewAreaService(persistence.NewGormAreaRepository(db), zap.NewNop())
}

func TestAreaService_CreateDerivesLevel(t *testing.T) {
	ctx := context.Background()
	svc := newAreaService(t)

	province, err := svc.Create(ctx, region.Area{AreaName: "Guangdong", Level: 3})
	require.NoError(t, err)
	assert.Equal(t, region.LevelProvince, province.Level, "client level is corrected")

	city, err := svc.Create(ctx, region.Area{AreaName: "Shenzhen", ParentID: province.AreaID})
	require.NoError(t, err)
	assert.Equal(t, region.LevelCity, city.Level)

	_, err = svc.Create(ctx, region.Area{AreaName: "Nowhere", ParentID: 999})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	_, err = svc.Create(ctx, region.Area{AreaName: "   "})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	children, err := svc.ListByPid(ctx, province.AreaID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Shenzhen", children[0].AreaName)
}

func TestAreaService_UpdateMovesAndRecomputesLevel(t *testing.T) {
	ctx := context.Background()
	svc := newAreaService(t)

	gd, _ := svc.Create(ctx, region.Area{AreaName: "Guangdong"})
	zj, _ := svc.Create(ctx, region.Area{AreaName: "Zhejiang"})
	sz, _ := svc.Create(ctx, region.Area{AreaName: "Shenzhen", ParentID: gd.AreaID})
	ns, _ := svc.Create(ctx, region.Area{AreaName: "Nanshan", ParentID: sz.AreaID})

	moved, err := svc.Update(ctx, region.Area{AreaID: ns.AreaID, AreaName: "Xihu", ParentID: zj.AreaID})
	require.NoError(t, err)
	assert.Equal(t, "Xihu", moved.AreaName)
	assert.Equal(t, region.LevelCity, moved.Level)

	stored, err := svc.GetByID(ctx, ns.AreaID)
	require.NoError(t, err)
	assert.Equal(t, zj.AreaID, stored.ParentID)
	assert.Equal(t, region.LevelCity, stored.Level)

	_, err = svc.Update(ctx, region.Area{AreaID: gd.AreaID, AreaName: "Guangdong", ParentID: sz.AreaID})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput), "cannot move under a descendant")

	_, err = svc.Update(ctx, region.Area{AreaID: 12345, AreaName: "Ghost"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestAreaService_MoveShiftsSubtreeLevels(t *testing.T) {
	ctx := context.Background()
	svc := newAreaService(t)

	gd, _ := svc.Create(ctx, region.Area{AreaName: "Guangdong"})
	sz, _ := svc.Create(ctx, region.Area{AreaName: "Shenzhen", ParentID: gd.AreaID})
	zj, _ := svc.Create(ctx, region.Area{AreaName: "Zhejiang"})
	hz, _ := svc.Create(ctx, region.Area{AreaName: "Hangzhou", ParentID: zj.AreaID})
	xh, _ := svc.Create(ctx, region.Area{AreaName: "Xihu", ParentID: hz.AreaID})
	lq, _ := svc.Create(ctx, region.Area{AreaName: "Lingyin", ParentID: xh.AreaID})
	require.Equal(t, region.LevelTown, lq.Level)

	levelOf := func(id int64) int {
		a, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		return a.Level
	}

	t.Run("rejects a move that pushes towns past the lowest level", func(t *testing.T) {
		_, err := svc.Update(ctx, region.Area{AreaID: zj.AreaID, AreaName: "Zhejiang", ParentID: sz.AreaID})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		assert.Equal(t, region.LevelProvince, levelOf(zj.AreaID), "nothing is written")
		assert.Equal(t, region.LevelTown, levelOf(lq.AreaID))
	})

	t.Run("moving up shifts every descendant", func(t *testing.T) {
		moved, err := svc.Update(ctx, region.Area{AreaID: xh.AreaID, AreaName: "Xihu", ParentID: gd.AreaID})
		require.NoError(t, err)
		assert.Equal(t, region.LevelCity, moved.Level)
		assert.Equal(t, region.LevelDistrict, levelOf(lq.AreaID))
	})

	t.Run("moving down shifts every descendant", func(t *testing.T) {
		moved, err := svc.Update(ctx, region.Area{AreaID: hz.AreaID, AreaName: "Hangzhou", ParentID: sz.AreaID})
		require.NoError(t, err)
		assert.Equal(t, region.LevelDistrict, moved.Level)

		// Xihu moved away earlier, so Hangzhou has no children left
		assert.Equal(t, region.LevelCity, levelOf(xh.AreaID))
	})

	t.Run("every area sits one level below its parent", func(t *testing.T) {
		all, err := svc.List(ctx)
		require.NoError(t, err)
		byID := map[int64]region.Area{}
		for _, a := range all {
			byID[a.AreaID] = a
		}
		for _, a := range all {
			if a.ParentID == 0 {
				assert.Equal(t, region.LevelProvince, a.Level, a.AreaName)
				continue
			}
			assert.Equal(t, byID[a.ParentID].Level+1, a.Level, a.AreaName)
		}
	})
}

func TestAreaService_DeleteRemovesSubtree(t *testing.T) {
	ctx := context.Background()
	svc := newAreaService(t)

	gd, _ := svc.Create(ctx, region.Area{AreaName: "Guangdong"})
	sz, _ := svc.Create(ctx, region.Area{AreaName: "Shenzhen", ParentID: gd.AreaID})
	_, _ = svc.Create(ctx, region.Area{AreaName: "Nanshan", ParentID: sz.AreaID})
	zj, _ := svc.Create(ctx, region.Area{AreaName: "Zhejiang"})

	require.NoError(t, svc.Delete(ctx, gd.AreaID))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, zj.AreaID, all[0].AreaID)

	assert.True(t, errors.Is(svc.Delete(ctx, gd.AreaID), shared.ErrNotFound))
}

func TestAreaService_Tree(t *testing.T) {
	ctx := context.Background()
	svc := newAreaService(t)

	gd, _ := svc.Create(ctx, region.Area{AreaName: "Guangdong"})
	_, _ = svc.Create(ctx, region.Area{AreaName: "Shenzhen", ParentID: gd.AreaID})

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Areas, 1)
	assert.Equal(t, "Shenzhen", tree[0].Areas[0].AreaName)
}
