// Package trade handles order administration and shipment.
package trade

import (
	"context"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/domain/trade"
	"go.uber.org/zap"
)

// Recorder counts shipped orders
type Recorder interface {
	OrderDelivered()
}

// OrderService handles order queries and delivery
type OrderService struct {
	repo     trade.OrderRepository
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewOrderService creates a new OrderService. recorder may be nil.
func NewOrderService(repo trade.OrderRepository, recorder Recorder, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Page returns one page of orders with their items
func (s *OrderService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[trade.Order], error) {
	return s.repo.FindPage(ctx, filter)
}

// Info returns an order with its items and address snapshot
func (s *OrderService) Info(ctx context.Context, orderNumber string) (*trade.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.InvalidInput("Order number is required")
	}
	return s.repo.FindByNumber(ctx, orderNumber)
}

// DeliveryInput ships an order
type DeliveryInput struct {
	OrderNumber string `json:"orderNumber" binding:"required"`
	DvyID       int64  `json:"dvyId" binding:"required"`
	DvyFlowID   string `json:"dvyFlowId" binding:"required"`
}

// Delivery ships an order waiting for shipment
func (s *OrderService) Delivery(ctx context.Context, in DeliveryInput) (*trade.Order, error) {
	o, err := s.Info(ctx, in.OrderNumber)
	if err != nil {
		return nil, err
	}
	if err := o.Deliver(in.DvyID, in.DvyFlowID, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveDelivery(ctx, o); err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.OrderDelivered()
	}

	s.logger.Info("Order shipped",
		zap.String("order_number", o.OrderNumber),
		zap.Int64("dvy_id", o.DvyID),
		zap.String("dvy_flow_id", o.DvyFlowID))
	return o, nil
}

// Couriers lists the couriers an order can ship with
func (s *OrderService) Couriers() []trade.Courier {
	return trade.Couriers()
}
