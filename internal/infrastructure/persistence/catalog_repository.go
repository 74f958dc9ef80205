package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	*GormCrudRepository[catalog.Category]
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{newCrudRepository[catalog.Category](db, querySpec{
		primaryKey: "category_id",
		filters: map[string]filterFunc{
			"categoryName": like("category_name"),
			"status":       eq("status"),
			"parentId":     eq("parent_id"),
		},
		defaultOrder: "seq ASC, category_id ASC",
		immutable:    []string{"rec_time"},
	})}
}

// CountChildren counts the direct children of a category
func (r *GormCategoryRepository) CountChildren(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalog.Category{}).Where("parent_id = ?", id).Count(&n).Error
	return n, err
}

// GormBrandRepository implements BrandRepository using GORM
type GormBrandRepository struct {
	*GormCrudRepository[catalog.Brand]
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{newCrudRepository[catalog.Brand](db, querySpec{
		primaryKey: "brand_id",
		filters: map[string]filterFunc{
			"brandName": like("brand_name"),
			"status":    eq("status"),
		},
		sortable:     map[string]string{"seq": "seq", "firstChar": "first_char"},
		defaultOrder: "seq ASC, brand_id DESC",
		immutable:    []string{"rec_time"},
	})}
}

// ExistsByName reports whether another brand already uses name
func (r *GormBrandRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalog.Brand{}).
		Where("brand_name = ? AND brand_id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

// GormProdPropRepository implements ProdPropRepository for one property rule.
// Values are written only together with their property.
type GormProdPropRepository struct {
	*GormCrudRepository[catalog.ProdProp]
	rule int
}

// NewGormProdPropRepository creates a repository scoped to rule
func NewGormProdPropRepository(db *gorm.DB, rule int) *GormProdPropRepository {
	return &GormProdPropRepository{
		rule: rule,
		GormCrudRepository: newCrudRepository[catalog.ProdProp](db, querySpec{
			primaryKey: "prop_id",
			filters: map[string]filterFunc{
				"propName": like("prop_name"),
			},
			preloads: []string{"ProdPropValues"},
			scope: func(q *gorm.DB) *gorm.DB {
				return q.Where("rule = ?", rule)
			},
		}),
	}
}

// FindPage finds one page of properties with their values
func (r *GormProdPropRepository) FindPage(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.ProdProp], error) {
	page, err := r.GormCrudRepository.FindPage(ctx, filter)
	if err != nil || len(page.Records) == 0 {
		return page, err
	}
	if err := r.loadValues(ctx, page.Records); err != nil {
		return shared.Paginated[catalog.ProdProp]{}, err
	}
	return page, nil
}

// FindAll finds every property of the rule with its values
func (r *GormProdPropRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProdProp, error) {
	props, err := r.GormCrudRepository.FindAll(ctx, filter)
	if err != nil || len(props) == 0 {
		return props, err
	}
	if err := r.loadValues(ctx, props); err != nil {
		return nil, err
	}
	return props, nil
}

func (r *GormProdPropRepository) loadValues(ctx context.Context, props []catalog.ProdProp) error {
	ids := make([]int64, len(props))
	for i, p := range props {
		ids[i] = p.PropID
	}
	var values []catalog.ProdPropValue
	if err := r.db.WithContext(ctx).Where("prop_id IN ?", ids).
		Order("value_id ASC").Find(&values).Error; err != nil {
		return err
	}
	byProp := make(map[int64][]catalog.ProdPropValue, len(props))
	for _, v := range values {
		byProp[v.PropID] = append(byProp[v.PropID], v)
	}
	for i := range props {
		props[i].ProdPropValues = byProp[props[i].PropID]
	}
	return nil
}

// Create inserts the property and its values in one transaction
func (r *GormProdPropRepository) Create(ctx context.Context, p *catalog.ProdProp) error {
	p.Rule = r.rule
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		return insertPropValues(tx, p)
	})
}

// Update writes the property and replaces its values in one transaction
func (r *GormProdPropRepository) Update(ctx context.Context, p *catalog.ProdProp) error {
	p.Rule = r.rule
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := r.update(tx, p); err != nil {
			return err
		}
		if err := tx.Where("prop_id = ?", p.PropID).Delete(&catalog.ProdPropValue{}).Error; err != nil {
			return err
		}
		return insertPropValues(tx, p)
	})
}

// Delete removes the property and its values
func (r *GormProdPropRepository) Delete(ctx context.Context, id int64) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("prop_id = ? AND rule = ?", id, r.rule).Delete(&catalog.ProdProp{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("prop_id = ?", id).Delete(&catalog.ProdPropValue{}).Error
	})
}

// DeleteBatch removes the properties of the rule and their values
func (r *GormProdPropRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.transaction(ctx, func(tx *gorm.DB) error {
		var owned []int64
		if err := tx.Model(&catalog.ProdProp{}).
			Where("prop_id IN ? AND rule = ?", ids, r.rule).
			Pluck("prop_id", &owned).Error; err != nil {
			return err
		}
		if len(owned) == 0 {
			return nil
		}
		if err := tx.Where("prop_id IN ?", owned).Delete(&catalog.ProdPropValue{}).Error; err != nil {
			return err
		}
		return tx.Where("prop_id IN ?", owned).Delete(&catalog.ProdProp{}).Error
	})
}

// ExistsByName reports whether another property of the rule uses name
func (r *GormProdPropRepository) ExistsByName(ctx context.Context, rule int, name string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalog.ProdProp{}).
		Where("rule = ? AND prop_name = ? AND prop_id <> ?", rule, name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func insertPropValues(tx *gorm.DB, p *catalog.ProdProp) error {
	if len(p.ProdPropValues) == 0 {
		return nil
	}
	for i := range p.ProdPropValues {
		p.ProdPropValues[i].ValueID = 0
		p.ProdPropValues[i].PropID = p.PropID
	}
	return tx.Create(&p.ProdPropValues).Error
}

// GormProdTagRepository implements ProdTagRepository using GORM
type GormProdTagRepository struct {
	*GormCrudRepository[catalog.ProdTag]
}

// NewGormProdTagRepository creates a new GormProdTagRepository
func NewGormProdTagRepository(db *gorm.DB) *GormProdTagRepository {
	return &GormProdTagRepository{newCrudRepository[catalog.ProdTag](db, querySpec{
		primaryKey: "id",
		filters: map[string]filterFunc{
			"title":  like("title"),
			"status": eq("status"),
		},
		defaultOrder: "seq ASC, id ASC",
		immutable:    []string{"create_time", "prod_count", "is_default"},
	})}
}

// GormProdCommRepository implements ProdCommRepository using GORM.
// Product names and member nicknames are resolved for display.
type GormProdCommRepository struct {
	*GormCrudRepository[catalog.ProdComm]
}

// NewGormProdCommRepository creates a new GormProdCommRepository
func NewGormProdCommRepository(db *gorm.DB) *GormProdCommRepository {
	return &GormProdCommRepository{newCrudRepository[catalog.ProdComm](db, querySpec{
		primaryKey: "prod_comm_id",
		filters: map[string]filterFunc{
			"prodName": func(q *gorm.DB, v interface{}) *gorm.DB {
				return q.Where("prod_id IN (?)",
					q.Session(&gorm.Session{NewDB: true}).Model(&catalog.Product{}).
						Select("prod_id").Where("prod_name LIKE ?", "%"+fmt.Sprint(v)+"%"))
			},
			"status":   eq("status"),
			"evaluate": eq("evaluate"),
			"prodId":   eq("prod_id"),
		},
		defaultOrder: "rec_time DESC",
		immutable:    []string{"rec_time"},
	})}
}

// FindByID finds a comment with its product and author names
func (r *GormProdCommRepository) FindByID(ctx context.Context, id int64) (*catalog.ProdComm, error) {
	c, err := r.GormCrudRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	list := []catalog.ProdComm{*c}
	if err := r.resolveNames(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// FindPage finds one page of comments with their product and author names
func (r *GormProdCommRepository) FindPage(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.ProdComm], error) {
	page, err := r.GormCrudRepository.FindPage(ctx, filter)
	if err != nil || len(page.Records) == 0 {
		return page, err
	}
	if err := r.resolveNames(ctx, page.Records); err != nil {
		return shared.Paginated[catalog.ProdComm]{}, err
	}
	return page, nil
}

func (r *GormProdCommRepository) resolveNames(ctx context.Context, comms []catalog.ProdComm) error {
	prodIDs := make([]int64, 0, len(comms))
	userIDs := make([]string, 0, len(comms))
	for _, c := range comms {
		prodIDs = append(prodIDs, c.ProdID)
		if c.UserID != "" {
			userIDs = append(userIDs, c.UserID)
		}
	}

	var prods []struct {
		ProdID   int64
		ProdName string
	}
	if err := r.db.WithContext(ctx).Table("tz_prod").Select("prod_id, prod_name").
		Where("prod_id IN ?", prodIDs).Scan(&prods).Error; err != nil {
		return err
	}
	prodNames := make(map[int64]string, len(prods))
	for _, p := range prods {
		prodNames[p.ProdID] = p.ProdName
	}

	nickNames := make(map[string]string)
	if len(userIDs) > 0 {
		var users []struct {
			UserID   string
			NickName string
		}
		if err := r.db.WithContext(ctx).Table("tz_user").Select("user_id, nick_name").
			Where("user_id IN ?", userIDs).Scan(&users).Error; err != nil {
			return err
		}
		for _, u := range users {
			nickNames[u.UserID] = u.NickName
		}
	}

	for i := range comms {
		comms[i].ProdName = prodNames[comms[i].ProdID]
		if comms[i].IsAnonymous == 1 {
			comms[i].NickName = ""
			continue
		}
		comms[i].NickName = nickNames[comms[i].UserID]
	}
	return nil
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	*GormCrudRepository[catalog.Product]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{newCrudRepository[catalog.Product](db, querySpec{
		primaryKey: "prod_id",
		filters: map[string]filterFunc{
			"prodName":   like("prod_name"),
			"status":     eq("status"),
			"categoryId": eq("category_id"),
		},
		sortable: map[string]string{
			"price":       "price",
			"soldNum":     "sold_num",
			"totalStocks": "total_stocks",
			"putawayTime": "putaway_time",
		},
		defaultOrder: "prod_id DESC",
		immutable:    []string{"create_time", "sold_num"},
	})}
}

// UpdateStatus switches a product on or off sale
func (r *GormProductRepository) UpdateStatus(ctx context.Context, id int64, status int, putaway *time.Time) error {
	updates := map[string]interface{}{"status": status, "update_time": time.Now()}
	if putaway != nil {
		updates["putaway_time"] = *putaway
	}
	result := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("prod_id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NamesByIDs resolves product names for display
func (r *GormProductRepository) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var prods []catalog.Product
	if err := r.db.WithContext(ctx).Select("prod_id", "prod_name").
		Where("prod_id IN ?", ids).Find(&prods).Error; err != nil {
		return nil, err
	}
	for _, p := range prods {
		out[p.ProdID] = p.ProdName
	}
	return out, nil
}

// CountByCategory counts the products filed under a category
func (r *GormProductRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

var (
	_ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
	_ catalog.BrandRepository    = (*GormBrandRepository)(nil)
	_ catalog.ProdPropRepository = (*GormProdPropRepository)(nil)
	_ catalog.ProdTagRepository  = (*GormProdTagRepository)(nil)
	_ catalog.ProdCommRepository = (*GormProdCommRepository)(nil)
	_ catalog.ProductRepository  = (*GormProductRepository)(nil)
)
