package catalog

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// ProdTagService handles storefront product groupings
type ProdTagService struct {
	repo catalog.ProdTagRepository
}

// NewProdTagService creates a new ProdTagService
func NewProdTagService(repo catalog.ProdTagRepository) *ProdTagService {
	return &ProdTagService{repo: repo}
}

func (s *ProdTagService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.ProdTag], error) {
	return s.repo.FindPage(ctx, filter)
}

// ListEnabled returns the enabled tags
func (s *ProdTagService) ListEnabled(ctx context.Context) ([]catalog.ProdTag, error) {
	return s.repo.FindAll(ctx, shared.Filter{}.With("status", shared.StatusEnabled))
}

func (s *ProdTagService) GetByID(ctx context.Context, id int64) (*catalog.ProdTag, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a tag. Tags created here are never the default tag.
func (s *ProdTagService) Create(ctx context.Context, t catalog.ProdTag) (*catalog.ProdTag, error) {
	t.ID = 0
	t.IsDefault = 0
	t.ProdCount = 0
	if t.ShopID == 0 {
		t.ShopID = 1
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces the editable fields of a tag. The default flag and the
// product count are kept.
func (s *ProdTagService) Update(ctx context.Context, t catalog.ProdTag) (*catalog.ProdTag, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.FindByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.IsDefault = current.IsDefault
	t.ProdCount = current.ProdCount
	t.ShopID = current.ShopID
	if err := s.repo.Update(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a tag unless it is the default tag
func (s *ProdTagService) Delete(ctx context.Context, id int64) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := t.CheckDeletable(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
