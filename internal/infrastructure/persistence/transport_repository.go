package persistence

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransportRepository implements TransportRepository using GORM.
// Fee rows and free conditions are written only together with their template.
type GormTransportRepository struct {
	*GormCrudRepository[delivery.Transport]
}

// NewGormTransportRepository creates a new GormTransportRepository
func NewGormTransportRepository(db *gorm.DB) *GormTransportRepository {
	return &GormTransportRepository{newCrudRepository[delivery.Transport](db, querySpec{
		primaryKey: "transport_id",
		filters: map[string]filterFunc{
			"transName": like("trans_name"),
		},
		immutable: []string{"create_time"},
	})}
}

func orderBySeq(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

// FindByID loads the template together with its child rows
func (r *GormTransportRepository) FindByID(ctx context.Context, id int64) (*delivery.Transport, error) {
	return r.FindByIDWithRules(ctx, id)
}

// FindByIDWithRules loads the template together with its child rows in row order
func (r *GormTransportRepository) FindByIDWithRules(ctx context.Context, id int64) (*delivery.Transport, error) {
	var t delivery.Transport
	err := r.db.WithContext(ctx).
		Preload("Transfees", orderBySeq).
		Preload("TransfeeFrees", orderBySeq).
		Where("transport_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// Create inserts the template and its child rows in one transaction
func (r *GormTransportRepository) Create(ctx context.Context, t *delivery.Transport) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return err
		}
		return insertTransportRules(tx, t)
	})
}

// Update writes the template and replaces its child rows in one transaction
func (r *GormTransportRepository) Update(ctx context.Context, t *delivery.Transport) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := r.update(tx, t); err != nil {
			return err
		}
		if err := deleteTransportRules(tx, []int64{t.TransportID}); err != nil {
			return err
		}
		return insertTransportRules(tx, t)
	})
}

// Delete removes the template and its child rows
func (r *GormTransportRepository) Delete(ctx context.Context, id int64) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := deleteTransportRules(tx, []int64{id}); err != nil {
			return err
		}
		result := tx.Where("transport_id = ?", id).Delete(&delivery.Transport{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteBatch removes the templates and their child rows
func (r *GormTransportRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := deleteTransportRules(tx, ids); err != nil {
			return err
		}
		return tx.Where("transport_id IN ?", ids).Delete(&delivery.Transport{}).Error
	})
}

func insertTransportRules(tx *gorm.DB, t *delivery.Transport) error {
	for i := range t.Transfees {
		t.Transfees[i].TransportID = t.TransportID
	}
	for i := range t.TransfeeFrees {
		t.TransfeeFrees[i].TransportID = t.TransportID
	}
	if len(t.Transfees) > 0 {
		if err := tx.Create(&t.Transfees).Error; err != nil {
			return err
		}
	}
	if len(t.TransfeeFrees) > 0 {
		if err := tx.Create(&t.TransfeeFrees).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteTransportRules(tx *gorm.DB, transportIDs []int64) error {
	if err := tx.Where("transport_id IN ?", transportIDs).Delete(&delivery.Transfee{}).Error; err != nil {
		return err
	}
	return tx.Where("transport_id IN ?", transportIDs).Delete(&delivery.TransfeeFree{}).Error
}

var _ delivery.TransportRepository = (*GormTransportRepository)(nil)
