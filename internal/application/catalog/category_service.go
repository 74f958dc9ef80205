// Package catalog manages categories, brands, properties, tags, comments
// and products.
package catalog

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Tree returns every category linked into a forest ordered by seq
func (s *CategoryService) Tree(ctx context.Context) ([]catalog.Category, error) {
	all, err := s.categoryRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	tree := catalog.BuildCategoryTree(all)
	if tree == nil {
		tree = []catalog.Category{}
	}
	return tree, nil
}

// ListEnabled returns the enabled categories as a flat list
func (s *CategoryService) ListEnabled(ctx context.Context) ([]catalog.Category, error) {
	return s.categoryRepo.FindAll(ctx, shared.Filter{}.With("status", shared.StatusEnabled))
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*catalog.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// Create creates a new category. Its grade is derived from the parent chain.
func (s *CategoryService) Create(ctx context.Context, c catalog.Category) (*catalog.Category, error) {
	c.CategoryID = 0
	c.Categories = nil
	if err := c.Validate(); err != nil {
		return nil, err
	}
	all, err := s.categoryRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	if err := c.PlaceUnder(c.ParentID, all); err != nil {
		return nil, err
	}
	if c.ShopID == 0 {
		c.ShopID = 1
	}
	if err := s.categoryRepo.Create(ctx, &c); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.Int64("category_id", c.CategoryID),
		zap.Int64("parent_id", c.ParentID),
		zap.Int("grade", c.Grade))
	return &c, nil
}

// Update replaces a category. A category with children keeps its grade.
func (s *CategoryService) Update(ctx context.Context, c catalog.Category) (*catalog.Category, error) {
	c.Categories = nil
	if err := c.Validate(); err != nil {
		return nil, err
	}
	current, err := s.categoryRepo.FindByID(ctx, c.CategoryID)
	if err != nil {
		return nil, err
	}
	all, err := s.categoryRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	if err := c.PlaceUnder(c.ParentID, all); err != nil {
		return nil, err
	}
	if c.Grade != current.Grade {
		children, err := s.categoryRepo.CountChildren(ctx, c.CategoryID)
		if err != nil {
			return nil, err
		}
		if children > 0 {
			return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "A category with children cannot change its level")
		}
	}
	c.ShopID = current.ShopID
	if err := s.categoryRepo.Update(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a category that has neither children nor products
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	children, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return shared.NewDomainError(shared.ErrHasChildren.Code, "Delete the sub-categories first")
	}
	products, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return shared.NewDomainError(shared.ErrHasChildren.Code, "The category still has products")
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted", zap.Int64("category_id", id))
	return nil
}
