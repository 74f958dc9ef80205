package shared

import (
	"context"
	"math"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 500
)

// CrudRepository is the base interface of every back-office table
type CrudRepository[T any] interface {
	FindByID(ctx context.Context, id int64) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	FindPage(ctx context.Context, filter Filter) (Paginated[T], error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

// Filter represents query filter options. Filters is keyed by the query
// parameter name; each repository decides which keys it understands.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter for the first page
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		Filters:  make(map[string]interface{}),
	}
}

// Normalize clamps paging values into range
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
	return f
}

// With returns a copy of f with key set. Empty strings and nil values are skipped.
func (f Filter) With(key string, value interface{}) Filter {
	if value == nil {
		return f
	}
	if s, ok := value.(string); ok && s == "" {
		return f
	}
	out := make(map[string]interface{}, len(f.Filters)+1)
	for k, v := range f.Filters {
		out[k] = v
	}
	out[key] = value
	f.Filters = out
	return f
}

// Offset returns the row offset for the page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Paginated is one page of records in the admin API's wire shape
type Paginated[T any] struct {
	Records []T   `json:"records"`
	Current int   `json:"current"`
	Size    int   `json:"size"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](records []T, total int64, current, size int) Paginated[T] {
	if records == nil {
		records = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int(math.Ceil(float64(total) / float64(size)))
	}
	return Paginated[T]{
		Records: records,
		Current: current,
		Size:    size,
		Total:   total,
		Pages:   pages,
	}
}

// MapPaginated converts the records of a page
func MapPaginated[T, R any](p Paginated[T], fn func(T) R) Paginated[R] {
	out := make([]R, len(p.Records))
	for i, r := range p.Records {
		out[i] = fn(r)
	}
	return Paginated[R]{Records: out, Current: p.Current, Size: p.Size, Total: p.Total, Pages: p.Pages}
}
