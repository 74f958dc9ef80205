package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ProductService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	return s.productRepo.FindPage(ctx, filter)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// Create stores a product. A product created on sale is stamped with its putaway time.
func (s *ProductService) Create(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	p.ProdID = 0
	p.SoldNum = 0
	p.PutawayTime = nil
	if err := s.prepare(ctx, &p); err != nil {
		return nil, err
	}
	status := p.Status
	p.Status = catalog.ProdOffShelf
	if err := p.SetStatus(status, s.now()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.Info("Product created",
		zap.Int64("prod_id", p.ProdID),
		zap.String("prod_name", p.ProdName))
	return &p, nil
}

// Update replaces a product. Going on sale stamps putawayTime.
func (s *ProductService) Update(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	if err := s.prepare(ctx, &p); err != nil {
		return nil, err
	}
	current, err := s.productRepo.FindByID(ctx, p.ProdID)
	if err != nil {
		return nil, err
	}
	status := p.Status
	p.Status = current.Status
	p.PutawayTime = current.PutawayTime
	p.SoldNum = current.SoldNum
	if err := p.SetStatus(status, s.now()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// StatusInput puts a product on sale or takes it off
type StatusInput struct {
	ProdID int64 `json:"prodId" binding:"required"`
	Status int   `json:"status"`
}

// SetStatus toggles a product's sale status
func (s *ProductService) SetStatus(ctx context.Context, in StatusInput) error {
	p, err := s.productRepo.FindByID(ctx, in.ProdID)
	if err != nil {
		return err
	}
	before := p.PutawayTime
	if err := p.SetStatus(in.Status, s.now()); err != nil {
		return err
	}
	var putaway *time.Time
	if p.PutawayTime != before {
		putaway = p.PutawayTime
	}
	if err := s.productRepo.UpdateStatus(ctx, p.ProdID, p.Status, putaway); err != nil {
		return err
	}
	s.logger.Info("Product status changed",
		zap.Int64("prod_id", p.ProdID),
		zap.Int("status", p.Status))
	return nil
}

func (s *ProductService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.productRepo.DeleteBatch(ctx, ids)
}

func (s *ProductService) prepare(ctx context.Context, p *catalog.Product) error {
	if p.ShopID == 0 {
		p.ShopID = 1
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := s.categoryRepo.FindByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Category")
		}
		return err
	}
	return nil
}
