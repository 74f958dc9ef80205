package catalog

import (
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// ProdTag is a storefront product grouping
type ProdTag struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"column:title;type:varchar(36);not null" json:"title"`
	ShopID     int64     `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	Status     int       `gorm:"column:status;not null" json:"status"`
	IsDefault  int       `gorm:"column:is_default;not null;default:0" json:"isDefault"`
	ProdCount  int64     `gorm:"column:prod_count;not null;default:0" json:"prodCount"`
	Style      int       `gorm:"column:style;not null;default:0" json:"style"`
	Seq        int       `gorm:"column:seq;not null;default:0" json:"seq"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

// TableName returns the table name for GORM
func (ProdTag) TableName() string {
	return "tz_prod_tag"
}

func (t ProdTag) GetID() int64 { return t.ID }

// Validate checks a tag before it is stored
func (t *ProdTag) Validate() error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return shared.InvalidInput("Tag title is required")
	}
	if t.Style < 0 || t.Style > 2 {
		return shared.InvalidInput("Style must be 0, 1 or 2")
	}
	if t.Status != shared.StatusEnabled && t.Status != shared.StatusDisabled {
		return shared.InvalidInput("Status must be 0 or 1")
	}
	return nil
}

// CheckDeletable rejects removal of the built-in default tag
func (t *ProdTag) CheckDeletable() error {
	if t.IsDefault == 1 {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "The default tag cannot be deleted")
	}
	return nil
}

// ProdTagRepository defines persistence for product tags
type ProdTagRepository interface {
	shared.CrudRepository[ProdTag]
}
