package persistence

import (
	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"gorm.io/gorm"
)

// GormPickAddrRepository implements PickAddrRepository using GORM
type GormPickAddrRepository struct {
	*GormCrudRepository[delivery.PickAddr]
}

// NewGormPickAddrRepository creates a new GormPickAddrRepository
func NewGormPickAddrRepository(db *gorm.DB) *GormPickAddrRepository {
	return &GormPickAddrRepository{newCrudRepository[delivery.PickAddr](db, querySpec{
		primaryKey: "addr_id",
		filters: map[string]filterFunc{
			"addrName": like("addr_name"),
		},
	})}
}

var _ delivery.PickAddrRepository = (*GormPickAddrRepository)(nil)
