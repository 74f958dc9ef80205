package adminclient

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DefaultPageSize is the page size of a fresh table
const DefaultPageSize = 10

// PageFetcher loads one page with the given filter
type PageFetcher[T any] func(ctx context.Context, page PageRequest, filter any) (*Page[T], error)

// Table is the pager state of a list screen. Every change of page, size or
// filter refetches; size and filter changes go back to page 1. A failed
// fetch is logged and the previous page stays in place.
type Table[T any] struct {
	fetch  PageFetcher[T]
	logger *zap.Logger

	mu      sync.Mutex
	current int
	size    int
	total   int64
	pages   int
	records []T
	filter  any
}

// TableState is a snapshot of a table
type TableState[T any] struct {
	Current int
	Size    int
	Total   int64
	Pages   int
	Records []T
	Filter  any
}

// NewTable creates a table on page 1. A nil logger logs nowhere.
func NewTable[T any](fetch PageFetcher[T], logger *zap.Logger) *Table[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table[T]{
		fetch:   fetch,
		logger:  logger,
		current: 1,
		size:    DefaultPageSize,
	}
}

// TableFor creates a table over the page endpoint of r
func TableFor[T any](r *Resource[T], logger *zap.Logger) *Table[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewTable[T](r.FetchPage, logger.With(zap.String("resource", r.Base())))
}

// State returns the current snapshot
func (t *Table[T]) State() TableState[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TableState[T]{
		Current: t.current,
		Size:    t.size,
		Total:   t.total,
		Pages:   t.pages,
		Records: t.records,
		Filter:  t.filter,
	}
}

// Refresh refetches the current page
func (t *Table[T]) Refresh(ctx context.Context) error {
	t.mu.Lock()
	req := PageRequest{Current: t.current, Size: t.size}
	filter := t.filter
	t.mu.Unlock()

	page, err := t.fetch(ctx, req, filter)
	if err != nil {
		t.logger.Warn("failed to load page",
			zap.Int("current", req.Current),
			zap.Int("size", req.Size),
			zap.Error(err),
		)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = page.Records
	t.total = page.Total
	t.pages = page.Pages
	if page.Current > 0 {
		t.current = page.Current
	}
	if page.Size > 0 {
		t.size = page.Size
	}
	return nil
}

// SetPage moves to page n
func (t *Table[T]) SetPage(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	t.mu.Lock()
	t.current = n
	t.mu.Unlock()
	return t.Refresh(ctx)
}

// SetSize changes the page size and goes back to page 1
func (t *Table[T]) SetSize(ctx context.Context, size int) error {
	if size < 1 {
		size = DefaultPageSize
	}
	t.mu.Lock()
	t.size = size
	t.current = 1
	t.mu.Unlock()
	return t.Refresh(ctx)
}

// SetFilter replaces the search form values and goes back to page 1
func (t *Table[T]) SetFilter(ctx context.Context, filter any) error {
	t.mu.Lock()
	t.filter = filter
	t.current = 1
	t.mu.Unlock()
	return t.Refresh(ctx)
}

// AfterDelete refetches after records were removed. When the current page
// came back empty and is beyond page 1 it steps back to the last page that
// still has records, or to page 1 when nothing is left.
func (t *Table[T]) AfterDelete(ctx context.Context) error {
	if err := t.Refresh(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	empty := len(t.records) == 0
	current := t.current
	last := t.pages
	t.mu.Unlock()
	if !empty || current <= 1 {
		return nil
	}

	target := max(1, min(current-1, last))
	return t.SetPage(ctx, target)
}
