package persistence

import (
	"context"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/domain/trade"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	*GormCrudRepository[trade.Order]
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{newCrudRepository[trade.Order](db, querySpec{
		primaryKey: "order_id",
		filters: map[string]filterFunc{
			"orderNumber": eq("order_number"),
			"status":      eq("status"),
			"isPayed":     eq("is_payed"),
			"startTime":   timeBound("create_time >= ?"),
			"endTime":     timeBound("create_time <= ?"),
		},
		defaultOrder: "create_time DESC",
		preloads:     []string{"OrderItems", "UserAddrOrder"},
	})}
}

// timeBound accepts a time.Time or a string in trade.TimeLayout. Unparsable
// strings are ignored.
func timeBound(cond string) filterFunc {
	return func(q *gorm.DB, v interface{}) *gorm.DB {
		switch t := v.(type) {
		case time.Time:
			return q.Where(cond, t)
		case string:
			parsed, err := time.ParseInLocation(trade.TimeLayout, t, time.Local)
			if err != nil {
				return q
			}
			return q.Where(cond, parsed)
		}
		return q
	}
}

// FindPage finds one page of orders with their items
func (r *GormOrderRepository) FindPage(ctx context.Context, filter shared.Filter) (shared.Paginated[trade.Order], error) {
	page, err := r.GormCrudRepository.FindPage(ctx, filter)
	if err != nil || len(page.Records) == 0 {
		return page, err
	}

	numbers := make([]string, len(page.Records))
	for i, o := range page.Records {
		numbers[i] = o.OrderNumber
	}
	var items []trade.OrderItem
	if err := r.db.WithContext(ctx).Where("order_number IN ?", numbers).
		Order("order_item_id ASC").Find(&items).Error; err != nil {
		return shared.Paginated[trade.Order]{}, err
	}
	byNumber := make(map[string][]trade.OrderItem, len(page.Records))
	for _, it := range items {
		byNumber[it.OrderNumber] = append(byNumber[it.OrderNumber], it)
	}
	for i := range page.Records {
		page.Records[i].OrderItems = byNumber[page.Records[i].OrderNumber]
	}
	return page, nil
}

// FindByNumber loads the order with its items and address snapshot
func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*trade.Order, error) {
	var o trade.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("UserAddrOrder").
		Where("order_number = ?", orderNumber).
		First(&o).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// SaveDelivery persists the delivery fields. The write only applies to an
// order still waiting for shipment, so two concurrent shipments cannot both win.
func (r *GormOrderRepository) SaveDelivery(ctx context.Context, o *trade.Order) error {
	result := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("order_id = ? AND status = ?", o.OrderID, trade.OrderToShip).
		Updates(map[string]interface{}{
			"dvy_id":      o.DvyID,
			"dvy_flow_id": o.DvyFlowID,
			"dvy_time":    o.DvyTime,
			"status":      o.Status,
			"update_time": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "The order is no longer waiting for shipment")
	}
	return nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
