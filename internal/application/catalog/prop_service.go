package catalog

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// PropService handles the properties of one rule: specifications or attributes
type PropService struct {
	repo catalog.ProdPropRepository
	rule int
}

// NewSpecService creates the service behind /prod/spec
func NewSpecService(repo catalog.ProdPropRepository) *PropService {
	return &PropService{repo: repo, rule: catalog.PropRuleSpec}
}

// NewAttributeService creates the service behind /admin/attribute
func NewAttributeService(repo catalog.ProdPropRepository) *PropService {
	return &PropService{repo: repo, rule: catalog.PropRuleAttribute}
}

func (s *PropService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.ProdProp], error) {
	return s.repo.FindPage(ctx, filter)
}

// List returns every property with its values
func (s *PropService) List(ctx context.Context) ([]catalog.ProdProp, error) {
	return s.repo.FindAll(ctx, shared.Filter{})
}

func (s *PropService) GetByID(ctx context.Context, id int64) (*catalog.ProdProp, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a property and its values together
func (s *PropService) Create(ctx context.Context, p catalog.ProdProp) (*catalog.ProdProp, error) {
	p.PropID = 0
	if err := s.prepare(ctx, &p); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces a property and its whole value list
func (s *PropService) Update(ctx context.Context, p catalog.ProdProp) (*catalog.ProdProp, error) {
	if err := s.prepare(ctx, &p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PropService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *PropService) prepare(ctx context.Context, p *catalog.ProdProp) error {
	if p.ShopID == 0 {
		p.ShopID = 1
	}
	if err := p.Normalize(s.rule); err != nil {
		return err
	}
	exists, err := s.repo.ExistsByName(ctx, s.rule, p.PropName, p.PropID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "A property with this name already exists")
	}
	return nil
}
