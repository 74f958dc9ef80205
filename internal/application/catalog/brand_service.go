package catalog

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// BrandService handles brands
type BrandService struct {
	repo catalog.BrandRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(repo catalog.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

func (s *BrandService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Brand], error) {
	return s.repo.FindPage(ctx, filter)
}

// List returns the enabled brands
func (s *BrandService) List(ctx context.Context) ([]catalog.Brand, error) {
	return s.repo.FindAll(ctx, shared.Filter{}.With("status", shared.StatusEnabled))
}

func (s *BrandService) GetByID(ctx context.Context, id int64) (*catalog.Brand, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a brand with a unique name
func (s *BrandService) Create(ctx context.Context, b catalog.Brand) (*catalog.Brand, error) {
	b.BrandID = 0
	if err := s.prepare(ctx, &b); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update replaces a brand
func (s *BrandService) Update(ctx context.Context, b catalog.Brand) (*catalog.Brand, error) {
	if err := s.prepare(ctx, &b); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BrandService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *BrandService) prepare(ctx context.Context, b *catalog.Brand) error {
	if err := b.Validate(); err != nil {
		return err
	}
	exists, err := s.repo.ExistsByName(ctx, b.BrandName, b.BrandID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "Brand name already exists")
	}
	return nil
}
