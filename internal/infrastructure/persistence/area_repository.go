package persistence

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAreaRepository implements AreaRepository using GORM
type GormAreaRepository struct {
	*GormCrudRepository[region.Area]
}

// NewGormAreaRepository creates a new GormAreaRepository
func NewGormAreaRepository(db *gorm.DB) *GormAreaRepository {
	return &GormAreaRepository{newCrudRepository[region.Area](db, querySpec{
		primaryKey: "area_id",
		filters: map[string]filterFunc{
			"areaName": like("area_name"),
			"level":    eq("level"),
			"parentId": eq("parent_id"),
		},
		defaultOrder: "area_id ASC",
	})}
}

// FindByParentID returns the direct children of parentID. 0 returns the provinces.
func (r *GormAreaRepository) FindByParentID(ctx context.Context, parentID int64) ([]region.Area, error) {
	var areas []region.Area
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("area_id ASC").
		Find(&areas).Error; err != nil {
		return nil, err
	}
	if areas == nil {
		areas = []region.Area{}
	}
	return areas, nil
}

// FindByIDs finds multiple areas by their IDs
func (r *GormAreaRepository) FindByIDs(ctx context.Context, ids []int64) ([]region.Area, error) {
	if len(ids) == 0 {
		return []region.Area{}, nil
	}
	var areas []region.Area
	if err := r.db.WithContext(ctx).Where("area_id IN ?", ids).Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// Move updates the area and shifts the level of every descendant by
// levelDelta in one transaction
func (r *GormAreaRepository) Move(ctx context.Context, area *region.Area, descendantIDs []int64, levelDelta int) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := r.update(tx, area); err != nil {
			return err
		}
		if levelDelta == 0 || len(descendantIDs) == 0 {
			return nil
		}
		return tx.Model(&region.Area{}).
			Where("area_id IN ?", descendantIDs).
			UpdateColumn("level", gorm.Expr("level + ?", levelDelta)).Error
	})
}

// DeleteTree removes the area and all of its descendants in one transaction
// and returns the number of removed rows
func (r *GormAreaRepository) DeleteTree(ctx context.Context, id int64) (int64, error) {
	var removed int64
	err := r.transaction(ctx, func(tx *gorm.DB) error {
		var root region.Area
		if err := tx.Where("area_id = ?", id).First(&root).Error; err != nil {
			return notFound(err)
		}

		ids := []int64{id}
		frontier := []int64{id}
		// bounded walk; a corrupted parent chain cannot loop forever
		for depth := 0; len(frontier) > 0 && depth < maxTreeDepth; depth++ {
			var next []int64
			if err := tx.Model(&region.Area{}).
				Where("parent_id IN ?", frontier).
				Pluck("area_id", &next).Error; err != nil {
				return err
			}
			ids = append(ids, next...)
			frontier = next
		}

		result := tx.Where("area_id IN ?", ids).Delete(&region.Area{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

const maxTreeDepth = 16

var _ region.AreaRepository = (*GormAreaRepository)(nil)
var _ shared.CrudRepository[region.Area] = (*GormAreaRepository)(nil)
