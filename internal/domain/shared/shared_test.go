package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("load area: %w", NotFound("Area"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "Area not found", NotFound("Area").Error())
}

func TestNewPaginated(t *testing.T) {
	t.Run("computes page count", func(t *testing.T) {
		p := NewPaginated([]int{1, 2}, 21, 3, 10)
		assert.Equal(t, 3, p.Pages)
		assert.Equal(t, 3, p.Current)
		assert.Equal(t, int64(21), p.Total)
	})

	t.Run("nil records become empty", func(t *testing.T) {
		p := NewPaginated[int](nil, 0, 1, 10)
		require.NotNil(t, p.Records)
		assert.Equal(t, 0, p.Pages)
	})

	t.Run("maps records", func(t *testing.T) {
		p := MapPaginated(NewPaginated([]int{1, 2}, 2, 1, 10), func(i int) string { return fmt.Sprint(i * 10) })
		assert.Equal(t, []string{"10", "20"}, p.Records)
		assert.Equal(t, 1, p.Pages)
	})
}

func TestFilter(t *testing.T) {
	t.Run("normalize clamps paging", func(t *testing.T) {
		f := Filter{Page: 0, PageSize: 10000}.Normalize()
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, MaxPageSize, f.PageSize)
		assert.NotNil(t, f.Filters)

		f = Filter{Page: 2, PageSize: -1}.Normalize()
		assert.Equal(t, DefaultPageSize, f.PageSize)
		assert.Equal(t, DefaultPageSize, f.Offset())
	})

	t.Run("with skips empty values and does not alias", func(t *testing.T) {
		base := DefaultFilter()
		f := base.With("areaName", "").With("status", nil).With("title", "x")
		assert.Equal(t, map[string]interface{}{"title": "x"}, f.Filters)
		assert.Empty(t, base.Filters)
	})
}

type node struct {
	ID       int64
	ParentID int64
	Seq      int
	Children []node
}

func (n node) GetID() int64       { return n.ID }
func (n node) GetParentID() int64 { return n.ParentID }

func TestBuildForest(t *testing.T) {
	items := []node{
		{ID: 1, ParentID: 0, Seq: 2},
		{ID: 2, ParentID: 0, Seq: 1},
		{ID: 3, ParentID: 1, Seq: 2},
		{ID: 4, ParentID: 1, Seq: 1},
		{ID: 5, ParentID: 4},
		{ID: 6, ParentID: 99},
	}

	forest := BuildForest(items,
		func(p *node, c node) { p.Children = append(p.Children, c) },
		func(a, b node) bool { return a.Seq < b.Seq },
	)

	require.Len(t, forest, 3)
	assert.Equal(t, int64(6), forest[0].ID, "orphans become roots")
	assert.Equal(t, int64(2), forest[1].ID)
	assert.Equal(t, int64(1), forest[2].ID)
	require.Len(t, forest[2].Children, 2)
	assert.Equal(t, int64(4), forest[2].Children[0].ID)
	require.Len(t, forest[2].Children[0].Children, 1)
	assert.Equal(t, int64(5), forest[2].Children[0].Children[0].ID)
}

func TestDescendantIDs(t *testing.T) {
	items := []node{
		{ID: 1}, {ID: 2, ParentID: 1}, {ID: 3, ParentID: 2}, {ID: 4, ParentID: 1}, {ID: 5},
	}
	assert.ElementsMatch(t, []int64{2, 3, 4}, DescendantIDs(items, 1))
	assert.Empty(t, DescendantIDs(items, 5))
}
