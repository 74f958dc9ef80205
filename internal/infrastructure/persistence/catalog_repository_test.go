package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/member"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProdPropRepository_RuleScope(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	specs := NewGormProdPropRepository(db, catalog.PropRuleSpec)
	attrs := NewGormProdPropRepository(db, catalog.PropRuleAttribute)

	color := &catalog.ProdProp{PropName: "Color", ProdPropValues: []catalog.ProdPropValue{{PropValue: "Red"}, {PropValue: "Blue"}}}
	require.NoError(t, color.Normalize(catalog.PropRuleSpec))
	require.NoError(t, specs.Create(ctx, color))

	origin := &catalog.ProdProp{PropName: "Origin", ProdPropValues: []catalog.ProdPropValue{{PropValue: "CN"}}}
	require.NoError(t, origin.Normalize(catalog.PropRuleAttribute))
	require.NoError(t, attrs.Create(ctx, origin))

	page, err := specs.FindPage(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "Color", page.Records[0].PropName)
	assert.Len(t, page.Records[0].ProdPropValues, 2)

	_, err = specs.FindByID(ctx, origin.PropID)
	assert.ErrorIs(t, err, shared.ErrNotFound, "attributes are invisible to the spec repository")

	exists, err := specs.ExistsByName(ctx, catalog.PropRuleSpec, "Color", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = specs.ExistsByName(ctx, catalog.PropRuleSpec, "Color", color.PropID)
	require.NoError(t, err)
	assert.False(t, exists)

	t.Run("update replaces values", func(t *testing.T) {
		color.ProdPropValues = []catalog.ProdPropValue{{PropValue: "Green"}}
		require.NoError(t, color.Normalize(catalog.PropRuleSpec))
		require.NoError(t, specs.Update(ctx, color))

		got, err := specs.FindByID(ctx, color.PropID)
		require.NoError(t, err)
		require.Len(t, got.ProdPropValues, 1)
		assert.Equal(t, "Green", got.ProdPropValues[0].PropValue)
	})

	t.Run("batch delete only touches its rule", func(t *testing.T) {
		require.NoError(t, specs.DeleteBatch(ctx, []int64{color.PropID, origin.PropID}))
		_, err := attrs.FindByID(ctx, origin.PropID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), countRows(t, db, &catalog.ProdPropValue{}))
	})
}

func TestGormProdCommRepository_ResolvesNames(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	comms := NewGormProdCommRepository(db)

	phone := &catalog.Product{ProdName: "Phone X", Pic: "p.png", CategoryID: 1, Price: decimal.NewFromInt(10)}
	require.NoError(t, products.Create(ctx, phone))
	book := &catalog.Product{ProdName: "Go Book", Pic: "b.png", CategoryID: 2, Price: decimal.NewFromInt(5)}
	require.NoError(t, products.Create(ctx, book))
	require.NoError(t, db.Create(&member.Member{UserID: "u1", NickName: "alice", Status: 1}).Error)

	require.NoError(t, comms.Create(ctx, &catalog.ProdComm{ProdID: phone.ProdID, UserID: "u1", Content: "great"}))
	require.NoError(t, comms.Create(ctx, &catalog.ProdComm{ProdID: book.ProdID, UserID: "u1", Content: "ok", IsAnonymous: 1, Evaluate: catalog.EvaluateNeutral}))

	page, err := comms.FindPage(ctx, shared.DefaultFilter().With("prodName", "Phone"))
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "Phone X", page.Records[0].ProdName)
	assert.Equal(t, "alice", page.Records[0].NickName)

	page, err = comms.FindPage(ctx, shared.DefaultFilter().With("evaluate", catalog.EvaluateNeutral))
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Empty(t, page.Records[0].NickName, "anonymous comments hide the author")
}

func TestGormProductRepository_Status(t *testing.T) {
	ctx := context.Background()
	repo := NewGormProductRepository(newTestDB(t))

	p := &catalog.Product{ProdName: "Phone", Pic: "p.png", CategoryID: 3, Price: decimal.RequireFromString("9.90")}
	require.NoError(t, repo.Create(ctx, p))

	now := time.Now()
	require.NoError(t, repo.UpdateStatus(ctx, p.ProdID, catalog.ProdOnSale, &now))
	got, err := repo.FindByID(ctx, p.ProdID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ProdOnSale, got.Status)
	assert.NotNil(t, got.PutawayTime)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("9.9")))

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999, catalog.ProdOnSale, nil), shared.ErrNotFound)

	names, err := repo.NamesByIDs(ctx, []int64{p.ProdID, 999})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{p.ProdID: "Phone"}, names)

	n, err := repo.CountByCategory(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGormCategoryRepository_CountChildren(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCategoryRepository(newTestDB(t))

	root := &catalog.Category{CategoryName: "Phones", Pic: "c.png", Status: 1}
	require.NoError(t, repo.Create(ctx, root))
	child := &catalog.Category{CategoryName: "Android", Pic: "c.png", Status: 1, ParentID: root.CategoryID, Grade: 1}
	require.NoError(t, repo.Create(ctx, child))

	n, err := repo.CountChildren(ctx, root.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	enabled, err := repo.FindAll(ctx, shared.DefaultFilter().With("status", 1))
	require.NoError(t, err)
	assert.Len(t, enabled, 2)
}
