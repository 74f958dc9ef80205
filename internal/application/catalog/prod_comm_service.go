package catalog

import (
	"context"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

// ProdCommService handles customer reviews
type ProdCommService struct {
	repo   catalog.ProdCommRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewProdCommService creates a new ProdCommService
func NewProdCommService(repo catalog.ProdCommRepository, logger *zap.Logger) *ProdCommService {
	return &ProdCommService{repo: repo, logger: logger, now: time.Now}
}

func (s *ProdCommService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.ProdComm], error) {
	return s.repo.FindPage(ctx, filter)
}

func (s *ProdCommService) GetByID(ctx context.Context, id int64) (*catalog.ProdComm, error) {
	return s.repo.FindByID(ctx, id)
}

// ReplyInput answers and reviews a comment
type ReplyInput struct {
	ProdCommID   int64  `json:"prodCommId" binding:"required"`
	ReplyContent string `json:"replyContent"`
	ReplySts     int    `json:"replySts"`
	Status       int    `json:"status"`
}

// Reply stores the shop's answer and the review decision. A changed answer
// stamps replyTime.
func (s *ProdCommService) Reply(ctx context.Context, in ReplyInput) (*catalog.ProdComm, error) {
	c, err := s.repo.FindByID(ctx, in.ProdCommID)
	if err != nil {
		return nil, err
	}
	if err := c.Reply(in.ReplyContent, in.ReplySts, in.Status, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Comment reviewed",
		zap.Int64("prod_comm_id", c.ProdCommID),
		zap.Int("status", c.Status),
		zap.Int("reply_sts", c.ReplySts))
	return c, nil
}

func (s *ProdCommService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
