// Package marketing manages storefront content: hot searches, carousel
// images and notices.
package marketing

import (
	"context"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

// HotSearchService handles hot search keywords
type HotSearchService struct {
	repo marketing.HotSearchRepository
}

// NewHotSearchService creates a new HotSearchService
func NewHotSearchService(repo marketing.HotSearchRepository) *HotSearchService {
	return &HotSearchService{repo: repo}
}

func (s *HotSearchService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[marketing.HotSearch], error) {
	return s.repo.FindPage(ctx, filter)
}

func (s *HotSearchService) GetByID(ctx context.Context, id int64) (*marketing.HotSearch, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *HotSearchService) Create(ctx context.Context, h marketing.HotSearch) (*marketing.HotSearch, error) {
	h.HotSearchID = 0
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *HotSearchService) Update(ctx context.Context, h marketing.HotSearch) (*marketing.HotSearch, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *HotSearchService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteBatch(ctx, ids)
}

// IndexImgService handles home page carousel images
type IndexImgService struct {
	repo     marketing.IndexImgRepository
	products catalog.ProductRepository
}

// NewIndexImgService creates a new IndexImgService
func NewIndexImgService(repo marketing.IndexImgRepository, products catalog.ProductRepository) *IndexImgService {
	return &IndexImgService{repo: repo, products: products}
}

func (s *IndexImgService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[marketing.IndexImg], error) {
	return s.repo.FindPage(ctx, filter)
}

// GetByID returns a carousel image and, when it links a product, the product's name
func (s *IndexImgService) GetByID(ctx context.Context, id int64) (*marketing.IndexImg, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if img.LinksProduct() {
		names, err := s.products.NamesByIDs(ctx, []int64{img.Relation})
		if err != nil {
			return nil, err
		}
		img.ProdName = names[img.Relation]
	}
	return img, nil
}

func (s *IndexImgService) Create(ctx context.Context, img marketing.IndexImg) (*marketing.IndexImg, error) {
	img.ImgID = 0
	if err := s.prepare(ctx, &img); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *IndexImgService) Update(ctx context.Context, img marketing.IndexImg) (*marketing.IndexImg, error) {
	if err := s.prepare(ctx, &img); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *IndexImgService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteBatch(ctx, ids)
}

// prepare validates img and checks that a linked product exists
func (s *IndexImgService) prepare(ctx context.Context, img *marketing.IndexImg) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if !img.LinksProduct() {
		return nil
	}
	names, err := s.products.NamesByIDs(ctx, []int64{img.Relation})
	if err != nil {
		return err
	}
	name, ok := names[img.Relation]
	if !ok {
		return shared.NotFound("Linked product")
	}
	img.ProdName = name
	return nil
}

// NoticeService handles shop notices
type NoticeService struct {
	repo   marketing.NoticeRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(repo marketing.NoticeRepository, logger *zap.Logger) *NoticeService {
	return &NoticeService{repo: repo, logger: logger, now: time.Now}
}

func (s *NoticeService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[marketing.Notice], error) {
	return s.repo.FindPage(ctx, filter)
}

func (s *NoticeService) GetByID(ctx context.Context, id int64) (*marketing.Notice, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a notice; a notice created as published is stamped now
func (s *NoticeService) Create(ctx context.Context, n marketing.Notice) (*marketing.Notice, error) {
	n.ID = 0
	n.PublishTime = nil
	if err := n.Validate(); err != nil {
		return nil, err
	}
	n.StampPublish(marketing.NoticeDraft, s.now())
	if err := s.repo.Create(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update replaces a notice. Publishing a draft stamps publishTime; an
// already published notice keeps its original time.
func (s *NoticeService) Update(ctx context.Context, n marketing.Notice) (*marketing.Notice, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.FindByID(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	n.PublishTime = current.PublishTime
	n.StampPublish(current.Status, s.now())
	if err := s.repo.Update(ctx, &n); err != nil {
		return nil, err
	}
	if n.Status == marketing.NoticePublished && current.Status != marketing.NoticePublished {
		s.logger.Info("Notice published", zap.Int64("notice_id", n.ID))
	}
	return &n, nil
}

func (s *NoticeService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
