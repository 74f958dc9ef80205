package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCategories() []Category {
	return []Category{
		{CategoryID: 1, CategoryName: "Phones", ParentID: 0, Grade: 0, Seq: 2},
		{CategoryID: 2, CategoryName: "Books", ParentID: 0, Grade: 0, Seq: 1},
		{CategoryID: 3, CategoryName: "Android", ParentID: 1, Grade: 1, Seq: 1},
		{CategoryID: 4, CategoryName: "Budget", ParentID: 3, Grade: 2, Seq: 1},
	}
}

func TestCategory_PlaceUnder(t *testing.T) {
	all := sampleCategories()

	t.Run("root has grade zero", func(t *testing.T) {
		c := &Category{CategoryName: "New"}
		require.NoError(t, c.PlaceUnder(0, all))
		assert.Equal(t, 0, c.Grade)
	})

	t.Run("grade follows the parent chain", func(t *testing.T) {
		c := &Category{CategoryName: "New"}
		require.NoError(t, c.PlaceUnder(3, all))
		assert.Equal(t, int64(3), c.ParentID)
		assert.Equal(t, 2, c.Grade)
	})

	t.Run("rejects a fourth level", func(t *testing.T) {
		c := &Category{CategoryName: "New"}
		err := c.PlaceUnder(4, all)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		c := &Category{CategoryName: "New"}
		assert.True(t, errors.Is(c.PlaceUnder(42, all), shared.ErrNotFound))
	})

	t.Run("rejects self and descendants as parent", func(t *testing.T) {
		c := all[0]
		assert.Error(t, c.PlaceUnder(1, all))
		assert.Error(t, c.PlaceUnder(3, all))
	})
}

func TestBuildCategoryTree(t *testing.T) {
	tree := BuildCategoryTree(sampleCategories())
	require.Len(t, tree, 2)
	assert.Equal(t, "Books", tree[0].CategoryName, "ordered by seq")
	require.Len(t, tree[1].Categories, 1)
	require.Len(t, tree[1].Categories[0].Categories, 1)
	assert.Equal(t, int64(4), tree[1].Categories[0].Categories[0].CategoryID)
}

func TestCategory_Validate(t *testing.T) {
	c := &Category{CategoryName: "  ", Pic: "a.png", Status: 1}
	assert.Error(t, c.Validate())
	c = &Category{CategoryName: "Phones", Status: 1}
	assert.Error(t, c.Validate())
	c = &Category{CategoryName: " Phones ", Pic: "a.png", Status: 1}
	require.NoError(t, c.Validate())
	assert.Equal(t, "Phones", c.CategoryName)
}

func TestBrand_FirstChar(t *testing.T) {
	b := &Brand{BrandName: "apple", Status: 1}
	require.NoError(t, b.Validate())
	assert.Equal(t, "A", b.FirstChar)

	b = &Brand{BrandName: "华为", Status: 1}
	require.NoError(t, b.Validate())
	assert.Equal(t, "#", b.FirstChar)

	b = &Brand{BrandName: "Émile Henry", Status: 1}
	require.NoError(t, b.Validate())
	assert.Equal(t, "E", b.FirstChar)

	b = &Brand{BrandName: "华为", FirstChar: "h", Status: 1}
	require.NoError(t, b.Validate())
	assert.Equal(t, "H", b.FirstChar)

	assert.Error(t, (&Brand{BrandName: " "}).Validate())
}

func TestProdProp_Normalize(t *testing.T) {
	p := &ProdProp{PropID: 7, PropName: " Color ", ProdPropValues: []ProdPropValue{
		{ValueID: 1, PropValue: "Red"},
		{PropValue: " "},
		{PropValue: "Red"},
		{PropValue: "Blue"},
	}}
	require.NoError(t, p.Normalize(PropRuleSpec))
	assert.Equal(t, "Color", p.PropName)
	assert.Equal(t, PropRuleSpec, p.Rule)
	require.Len(t, p.ProdPropValues, 2)
	assert.Equal(t, int64(0), p.ProdPropValues[0].ValueID)
	assert.Equal(t, int64(7), p.ProdPropValues[1].PropID)

	empty := &ProdProp{PropName: "Size"}
	assert.Error(t, empty.Normalize(PropRuleAttribute))
}

func TestProdTag(t *testing.T) {
	tag := &ProdTag{Title: "Hot", Style: 3, Status: 1}
	assert.Error(t, tag.Validate())
	tag.Style = 1
	require.NoError(t, tag.Validate())
	require.NoError(t, tag.CheckDeletable())

	tag.IsDefault = 1
	assert.True(t, errors.Is(tag.CheckDeletable(), shared.ErrInvalidState))
}

func TestProdComm_Reply(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := &ProdComm{Content: "nice"}

	require.NoError(t, c.Reply(" thanks ", 1, CommApproved, now))
	assert.Equal(t, "thanks", c.ReplyContent)
	assert.Equal(t, 1, c.ReplySts)
	assert.Equal(t, CommApproved, c.Status)
	require.NotNil(t, c.ReplyTime)

	later := now.Add(time.Hour)
	require.NoError(t, c.Reply("thanks", 1, CommApproved, later))
	assert.True(t, c.ReplyTime.Equal(now), "unchanged reply keeps its time")

	assert.Error(t, c.Reply("", 1, CommApproved, now))
	assert.Error(t, c.Reply("x", 1, 5, now))
}

func TestProduct(t *testing.T) {
	p := &Product{ProdName: "Phone", Pic: "p.png", CategoryID: 1, Price: decimal.RequireFromString("9.90")}
	require.NoError(t, p.Validate())

	p.Price = decimal.NewFromInt(-1)
	assert.Error(t, p.Validate())

	now := time.Now()
	require.NoError(t, p.SetStatus(ProdOnSale, now))
	assert.Equal(t, ProdOnSale, p.Status)
	require.NotNil(t, p.PutawayTime)

	require.NoError(t, p.SetStatus(ProdOffShelf, now))
	assert.Equal(t, ProdOffShelf, p.Status)
	assert.Error(t, p.SetStatus(3, now))
}
