package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// filterFunc narrows a query by one filter value
type filterFunc func(q *gorm.DB, value interface{}) *gorm.DB

func like(column string) filterFunc {
	return func(q *gorm.DB, v interface{}) *gorm.DB {
		return q.Where(column+" LIKE ?", "%"+fmt.Sprint(v)+"%")
	}
}

func eq(column string) filterFunc {
	return func(q *gorm.DB, v interface{}) *gorm.DB {
		return q.Where(column+" = ?", v)
	}
}

func gte(column string) filterFunc {
	return func(q *gorm.DB, v interface{}) *gorm.DB {
		return q.Where(column+" >= ?", v)
	}
}

func lte(column string) filterFunc {
	return func(q *gorm.DB, v interface{}) *gorm.DB {
		return q.Where(column+" <= ?", v)
	}
}

// querySpec describes how a table is filtered, ordered and loaded
type querySpec struct {
	// primaryKey is the id column
	primaryKey string
	// filters maps filter keys (the query parameter names) to conditions
	filters map[string]filterFunc
	// sortable maps sort keys to columns
	sortable map[string]string
	// defaultOrder is used when the filter names no sortable key
	defaultOrder string
	// preloads are loaded by FindByID
	preloads []string
	// immutable columns are never written by Update
	immutable []string
	// scope restricts every query, e.g. to one property rule
	scope func(*gorm.DB) *gorm.DB
}

// GormCrudRepository implements shared.CrudRepository for one table
type GormCrudRepository[T any] struct {
	db   *gorm.DB
	spec querySpec
}

func newCrudRepository[T any](db *gorm.DB, spec querySpec) *GormCrudRepository[T] {
	if spec.primaryKey == "" {
		spec.primaryKey = "id"
	}
	if spec.defaultOrder == "" {
		spec.defaultOrder = spec.primaryKey + " DESC"
	}
	return &GormCrudRepository[T]{db: db, spec: spec}
}

func (r *GormCrudRepository[T]) base(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if r.spec.scope != nil {
		q = r.spec.scope(q)
	}
	return q
}

func (r *GormCrudRepository[T]) filtered(ctx context.Context, filter shared.Filter) *gorm.DB {
	q := r.base(ctx)
	// stable key order keeps the generated SQL deterministic
	keys := make([]string, 0, len(filter.Filters))
	for k := range filter.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn, ok := r.spec.filters[k]
		if !ok {
			continue
		}
		v := filter.Filters[k]
		if v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		q = fn(q, v)
	}
	return q
}

func (r *GormCrudRepository[T]) order(filter shared.Filter) string {
	column := ValidateSortField(filter.OrderBy, r.spec.sortable, "")
	if column == "" {
		return r.spec.defaultOrder
	}
	return column + " " + ValidateSortOrder(filter.OrderDir)
}

func (r *GormCrudRepository[T]) withPreloads(q *gorm.DB) *gorm.DB {
	for _, p := range r.spec.preloads {
		q = q.Preload(p)
	}
	return q
}

// FindByID finds a record by its ID
func (r *GormCrudRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	q := r.withPreloads(r.base(ctx))
	if err := q.Where(r.spec.primaryKey+" = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll finds every record matching the filter, without paging
func (r *GormCrudRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var records []T
	if err := r.filtered(ctx, filter).Order(r.order(filter)).Find(&records).Error; err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// FindPage finds one page of records matching the filter
func (r *GormCrudRepository[T]) FindPage(ctx context.Context, filter shared.Filter) (shared.Paginated[T], error) {
	filter = filter.Normalize()

	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return shared.Paginated[T]{}, err
	}

	var records []T
	if total > 0 {
		q := r.filtered(ctx, filter).
			Order(r.order(filter)).
			Offset(filter.Offset()).
			Limit(filter.PageSize)
		if err := q.Find(&records).Error; err != nil {
			return shared.Paginated[T]{}, err
		}
	}
	return shared.NewPaginated(records, total, filter.Page, filter.PageSize), nil
}

// Create inserts a record. Associations are written by the owning repository.
func (r *GormCrudRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

// Update writes every column of the record except the immutable ones
func (r *GormCrudRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.update(r.db.WithContext(ctx), entity)
}

func (r *GormCrudRepository[T]) update(db *gorm.DB, entity *T) error {
	omit := append([]string{clause.Associations}, r.spec.immutable...)
	result := db.Model(entity).Select("*").Omit(omit...).Updates(entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a record by ID
func (r *GormCrudRepository[T]) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where(r.spec.primaryKey+" = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBatch deletes every record in ids. Unknown ids are ignored.
func (r *GormCrudRepository[T]) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where(r.spec.primaryKey+" IN ?", ids).Delete(new(T)).Error
}

// transaction runs fn in a transaction bound to ctx
func (r *GormCrudRepository[T]) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
