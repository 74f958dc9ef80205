package delivery

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransportService handles shipping fee templates
type TransportService struct {
	repo   delivery.TransportRepository
	logger *zap.Logger
}

// NewTransportService creates a new TransportService
func NewTransportService(repo delivery.TransportRepository, logger *zap.Logger) *TransportService {
	return &TransportService{repo: repo, logger: logger}
}

// Page returns one page of templates without their rules
func (s *TransportService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[delivery.Transport], error) {
	return s.repo.FindPage(ctx, filter)
}

// List returns every template without its rules
func (s *TransportService) List(ctx context.Context) ([]delivery.Transport, error) {
	return s.repo.FindAll(ctx, shared.Filter{})
}

// GetByID returns a template with its fee and free-condition rows
func (s *TransportService) GetByID(ctx context.Context, id int64) (*delivery.Transport, error) {
	return s.repo.FindByIDWithRules(ctx, id)
}

// Create stores a template and its rows in one transaction. Rows the
// template flags rule out are dropped.
func (s *TransportService) Create(ctx context.Context, t delivery.Transport) (*delivery.Transport, error) {
	t.TransportID = 0
	if err := t.Normalize(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		return nil, err
	}
	s.logger.Info("Transport template created",
		zap.Int64("transport_id", t.TransportID),
		zap.Int("fee_rows", len(t.Transfees)),
		zap.Int("free_rows", len(t.TransfeeFrees)))
	return &t, nil
}

// Update replaces a template together with its whole row set
func (s *TransportService) Update(ctx context.Context, t delivery.Transport) (*delivery.Transport, error) {
	if err := t.Normalize(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a template and its rows
func (s *TransportService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// DeleteBatch removes templates and their rows
func (s *TransportService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteBatch(ctx, ids)
}

// FeeQuote is the input of a freight estimate
type FeeQuote struct {
	TransportID int64           `json:"transportId" form:"transportId" binding:"required"`
	CityID      int64           `json:"cityId" form:"cityId"`
	Count       decimal.Decimal `json:"count" form:"count"`
	Amount      decimal.Decimal `json:"amount" form:"amount"`
}

// Fee estimates the freight of a shipment under a template
func (s *TransportService) Fee(ctx context.Context, q FeeQuote) (decimal.Decimal, error) {
	if q.Count.IsNegative() || q.Amount.IsNegative() {
		return decimal.Zero, shared.InvalidInput("Count and amount cannot be negative")
	}
	t, err := s.repo.FindByIDWithRules(ctx, q.TransportID)
	if err != nil {
		return decimal.Zero, err
	}
	return t.Fee(q.CityID, q.Count, q.Amount), nil
}
