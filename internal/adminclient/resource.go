package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// Page is one page of records as returned by a page endpoint
type Page[T any] = shared.Paginated[T]

// Resource is the API module of one record type mounted at a fixed base
// path. Endpoints a resource does not expose answer 404.
type Resource[T any] struct {
	c    *Client
	base string
}

// NewResource creates the module for the records under base, e.g. "/admin/area"
func NewResource[T any](c *Client, base string) *Resource[T] {
	return &Resource[T]{c: c, base: base}
}

// Base returns the base path
func (r *Resource[T]) Base() string {
	return r.base
}

// FetchPage loads one page. filter is a struct or map of filter fields;
// empty fields are not sent.
func (r *Resource[T]) FetchPage(ctx context.Context, page PageRequest, filter any) (*Page[T], error) {
	p, err := call[Page[T]](ctx, r.c, http.MethodGet, r.base+"/page", EncodeQuery(page, filter), nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID loads one record
func (r *Resource[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return r.getByKey(ctx, strconv.FormatInt(id, 10))
}

func (r *Resource[T]) getByKey(ctx context.Context, key string) (*T, error) {
	v, err := call[T](ctx, r.c, http.MethodGet, r.base+"/info/"+url.PathEscape(key), nil, nil)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List loads every record
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, "/list", nil)
}

// ListByPid loads the direct children of pid; pid 0 lists the roots
func (r *Resource[T]) ListByPid(ctx context.Context, pid int64) ([]T, error) {
	return r.list(ctx, "/listByPid", url.Values{"pid": {strconv.FormatInt(pid, 10)}})
}

func (r *Resource[T]) list(ctx context.Context, suffix string, query url.Values) ([]T, error) {
	return call[[]T](ctx, r.c, http.MethodGet, r.base+suffix, query, nil)
}

// Add creates a record and returns it as stored
func (r *Resource[T]) Add(ctx context.Context, record T) (*T, error) {
	v, err := call[T](ctx, r.c, http.MethodPost, r.base, nil, record)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Update replaces a record; the id travels in the body
func (r *Resource[T]) Update(ctx context.Context, record T) (*T, error) {
	v, err := call[T](ctx, r.c, http.MethodPut, r.base, nil, record)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes one record by id
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	_, err := call[json.RawMessage](ctx, r.c, http.MethodDelete, r.base+"/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

// BatchDelete removes several records with one call
func (r *Resource[T]) BatchDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("batch delete on %s: no ids", r.base)
	}
	_, err := call[json.RawMessage](ctx, r.c, http.MethodDelete, r.base, nil, ids)
	return err
}
