package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/member"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/infrastructure/persistence"
	"github.com/Darkingtail/mall4r/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type services struct {
	db         *gorm.DB
	categories *CategoryService
	brands     *BrandService
	specs      *PropService
	attributes *PropService
	tags       *ProdTagService
	comments   *ProdCommService
	products   *ProductService
}

func newServices(t *testing.T) services {
	t.Helper()
	db := testutil.NewTestDB(t)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	return services{
		db:         db,
		categories: NewCategoryService(categoryRepo, productRepo, zap.NewNop()),
		brands:     NewBrandService(persistence.NewGormBrandRepository(db)),
		specs:      NewSpecService(persistence.NewGormProdPropRepository(db, catalog.PropRuleSpec)),
		attributes: NewAttributeService(persistence.NewGormProdPropRepository(db, catalog.PropRuleAttribute)),
		tags:       NewProdTagService(persistence.NewGormProdTagRepository(db)),
		comments:   NewProdCommService(persistence.NewGormProdCommRepository(db), zap.NewNop()),
		products:   NewProductService(productRepo, categoryRepo, zap.NewNop()),
	}
}

func category(name string, parentID int64) catalog.Category {
	return catalog.Category{CategoryName: name, Pic: "c.png", ParentID: parentID, Status: shared.StatusEnabled}
}

func product(name string, categoryID int64) catalog.Product {
	return catalog.Product{
		ProdName:    name,
		Pic:         "p.png",
		CategoryID:  categoryID,
		Price:       decimal.RequireFromString("19.90"),
		TotalStocks: 10,
	}
}

func TestCategoryService_CreateAndTree(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	phones, err := s.categories.Create(ctx, category("Phones", 0))
	require.NoError(t, err)
	assert.Equal(t, 0, phones.Grade)
	assert.Equal(t, int64(1), phones.ShopID)

	android, err := s.categories.Create(ctx, category("Android", phones.CategoryID))
	require.NoError(t, err)
	assert.Equal(t, 1, android.Grade)

	budget, err := s.categories.Create(ctx, category("Budget", android.CategoryID))
	require.NoError(t, err)
	assert.Equal(t, 2, budget.Grade)

	_, err = s.categories.Create(ctx, category("Too deep", budget.CategoryID))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	tree, err := s.categories.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Categories, 1)
	assert.Equal(t, "Budget", tree[0].Categories[0].Categories[0].CategoryName)
}

func TestCategoryService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	phones, _ := s.categories.Create(ctx, category("Phones", 0))
	books, _ := s.categories.Create(ctx, category("Books", 0))
	android, _ := s.categories.Create(ctx, category("Android", phones.CategoryID))

	t.Run("category with children keeps its grade", func(t *testing.T) {
		moved := *phones
		moved.ParentID = books.CategoryID
		_, err := s.categories.Update(ctx, moved)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("leaf moves between parents of the same grade", func(t *testing.T) {
		moved := *android
		moved.ParentID = books.CategoryID
		updated, err := s.categories.Update(ctx, moved)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Grade)
	})

	t.Run("delete is rejected while children remain", func(t *testing.T) {
		err := s.categories.Delete(ctx, books.CategoryID)
		assert.True(t, errors.Is(err, shared.ErrHasChildren))
	})

	t.Run("delete is rejected while products remain", func(t *testing.T) {
		_, err := s.products.Create(ctx, product("Pixel", android.CategoryID))
		require.NoError(t, err)
		err = s.categories.Delete(ctx, android.CategoryID)
		assert.True(t, errors.Is(err, shared.ErrHasChildren))
	})

	t.Run("empty category is deleted", func(t *testing.T) {
		require.NoError(t, s.categories.Delete(ctx, phones.CategoryID))
		_, err := s.categories.GetByID(ctx, phones.CategoryID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestBrandService_UniqueName(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	apple, err := s.brands.Create(ctx, catalog.Brand{BrandName: "apple", Status: shared.StatusEnabled})
	require.NoError(t, err)
	assert.Equal(t, "A", apple.FirstChar)

	_, err = s.brands.Create(ctx, catalog.Brand{BrandName: "apple", Status: shared.StatusEnabled})
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))

	apple.Memo = "fruit"
	_, err = s.brands.Update(ctx, *apple)
	require.NoError(t, err, "a brand keeps its own name")

	_, err = s.brands.Create(ctx, catalog.Brand{BrandName: "Huawei", Status: shared.StatusDisabled})
	require.NoError(t, err)
	enabled, err := s.brands.List(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "apple", enabled[0].BrandName)
}

func TestPropService_RulesAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	color, err := s.specs.Create(ctx, catalog.ProdProp{PropName: "Color", ProdPropValues: []catalog.ProdPropValue{
		{PropValue: "Red"}, {PropValue: "Blue"}, {PropValue: "Red"},
	}})
	require.NoError(t, err)
	assert.Equal(t, catalog.PropRuleSpec, color.Rule)

	stored, err := s.specs.GetByID(ctx, color.PropID)
	require.NoError(t, err)
	assert.Len(t, stored.ProdPropValues, 2)

	_, err = s.specs.Create(ctx, catalog.ProdProp{PropName: "Color", ProdPropValues: []catalog.ProdPropValue{{PropValue: "Green"}}})
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))

	_, err = s.attributes.Create(ctx, catalog.ProdProp{PropName: "Color", ProdPropValues: []catalog.ProdPropValue{{PropValue: "Green"}}})
	require.NoError(t, err, "the same name may exist under the other rule")

	stored.ProdPropValues = []catalog.ProdPropValue{{PropValue: "Black"}}
	_, err = s.specs.Update(ctx, *stored)
	require.NoError(t, err)
	reloaded, err := s.specs.GetByID(ctx, color.PropID)
	require.NoError(t, err)
	require.Len(t, reloaded.ProdPropValues, 1)
	assert.Equal(t, "Black", reloaded.ProdPropValues[0].PropValue)

	specs, err := s.specs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, specs, 1)
}

func TestProdTagService_DefaultTagIsProtected(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	require.NoError(t, s.db.Create(&catalog.ProdTag{Title: "Featured", ShopID: 1, Status: 1, IsDefault: 1}).Error)
	var def catalog.ProdTag
	require.NoError(t, s.db.Where("is_default = ?", 1).First(&def).Error)

	err := s.tags.Delete(ctx, def.ID)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	def.IsDefault = 0
	def.Title = "Renamed"
	updated, err := s.tags.Update(ctx, def)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.IsDefault, "the default flag is not editable")

	tag, err := s.tags.Create(ctx, catalog.ProdTag{Title: "New", Status: 1, IsDefault: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, tag.IsDefault)
	require.NoError(t, s.tags.Delete(ctx, tag.ID))

	_, err = s.tags.Create(ctx, catalog.ProdTag{Title: "Bad", Status: 1, Style: 7})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestProdCommService_Reply(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	cat, _ := s.categories.Create(ctx, category("Phones", 0))
	prod, _ := s.products.Create(ctx, product("Pixel", cat.CategoryID))
	require.NoError(t, s.db.Create(&member.Member{UserID: "u-1", NickName: "Alice", Status: 1}).Error)
	comm := catalog.ProdComm{ProdID: prod.ProdID, UserID: "u-1", Content: "Great phone", Score: 5}
	require.NoError(t, s.db.Create(&comm).Error)

	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.comments.now = func() time.Time { return fixed }

	replied, err := s.comments.Reply(ctx, ReplyInput{
		ProdCommID:   comm.ProdCommID,
		ReplyContent: "Thanks!",
		ReplySts:     1,
		Status:       catalog.CommApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, replied.ReplySts)

	got, err := s.comments.GetByID(ctx, comm.ProdCommID)
	require.NoError(t, err)
	assert.Equal(t, "Thanks!", got.ReplyContent)
	assert.Equal(t, catalog.CommApproved, got.Status)
	assert.Equal(t, "Pixel", got.ProdName)
	assert.Equal(t, "Alice", got.NickName)
	require.NotNil(t, got.ReplyTime)
	assert.True(t, got.ReplyTime.Equal(fixed))

	page, err := s.comments.Page(ctx, shared.DefaultFilter().With("prodName", "Pix"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = s.comments.Reply(ctx, ReplyInput{ProdCommID: 999, Status: catalog.CommApproved})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestProductService_Status(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	cat, _ := s.categories.Create(ctx, category("Phones", 0))

	_, err := s.products.Create(ctx, product("Ghost", 999))
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	p, err := s.products.Create(ctx, product("Pixel", cat.CategoryID))
	require.NoError(t, err)
	assert.Nil(t, p.PutawayTime)

	require.NoError(t, s.products.SetStatus(ctx, StatusInput{ProdID: p.ProdID, Status: catalog.ProdOnSale}))
	onSale, err := s.products.GetByID(ctx, p.ProdID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ProdOnSale, onSale.Status)
	require.NotNil(t, onSale.PutawayTime)

	require.NoError(t, s.products.SetStatus(ctx, StatusInput{ProdID: p.ProdID, Status: catalog.ProdOffShelf}))
	off, err := s.products.GetByID(ctx, p.ProdID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ProdOffShelf, off.Status)
	assert.NotNil(t, off.PutawayTime, "taking a product off keeps its last putaway time")

	err = s.products.SetStatus(ctx, StatusInput{ProdID: p.ProdID, Status: 4})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	err = s.products.SetStatus(ctx, StatusInput{ProdID: 999, Status: catalog.ProdOnSale})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestProductService_PageAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	cat, _ := s.categories.Create(ctx, category("Phones", 0))
	a, _ := s.products.Create(ctx, product("Pixel 8", cat.CategoryID))
	b, _ := s.products.Create(ctx, product("Pixel 9", cat.CategoryID))
	onSale := product("Galaxy", cat.CategoryID)
	onSale.Status = catalog.ProdOnSale
	g, err := s.products.Create(ctx, onSale)
	require.NoError(t, err)
	require.NotNil(t, g.PutawayTime)

	page, err := s.products.Page(ctx, shared.DefaultFilter().With("prodName", "Pixel"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = s.products.Page(ctx, shared.DefaultFilter().With("status", catalog.ProdOnSale))
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "Galaxy", page.Records[0].ProdName)

	require.NoError(t, s.products.DeleteBatch(ctx, []int64{a.ProdID, b.ProdID}))
	page, err = s.products.Page(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}
