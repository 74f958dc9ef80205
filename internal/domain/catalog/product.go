package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product statuses
const (
	ProdOffShelf = 0
	ProdOnSale   = 1
)

// Product is a sellable catalog item
type Product struct {
	ProdID      int64           `gorm:"column:prod_id;primaryKey;autoIncrement" json:"prodId"`
	ProdName    string          `gorm:"column:prod_name;type:varchar(300);not null;index" json:"prodName"`
	ShopID      int64           `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	OriPrice    decimal.Decimal `gorm:"column:ori_price;type:decimal(15,2)" json:"oriPrice"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(15,2);not null" json:"price"`
	Brief       string          `gorm:"column:brief;type:varchar(500)" json:"brief"`
	Content     string          `gorm:"column:content;type:text" json:"content"`
	Pic         string          `gorm:"column:pic;type:varchar(255)" json:"pic"`
	Imgs        string          `gorm:"column:imgs;type:varchar(1000)" json:"imgs"`
	Status      int             `gorm:"column:status;not null;default:0" json:"status"`
	CategoryID  int64           `gorm:"column:category_id;index" json:"categoryId"`
	SoldNum     int             `gorm:"column:sold_num;not null;default:0" json:"soldNum"`
	TotalStocks int             `gorm:"column:total_stocks;not null;default:0" json:"totalStocks"`
	CreateTime  time.Time       `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime  time.Time       `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
	PutawayTime *time.Time      `gorm:"column:putaway_time" json:"putawayTime"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "tz_prod"
}

func (p Product) GetID() int64 { return p.ProdID }

// Validate checks a product before it is stored
func (p *Product) Validate() error {
	p.ProdName = strings.TrimSpace(p.ProdName)
	switch {
	case p.ProdName == "":
		return shared.InvalidInput("Product name is required")
	case strings.TrimSpace(p.Pic) == "":
		return shared.InvalidInput("Product image is required")
	case p.CategoryID == 0:
		return shared.InvalidInput("Category is required")
	case p.Price.IsNegative() || p.OriPrice.IsNegative():
		return shared.InvalidInput("Price cannot be negative")
	case p.TotalStocks < 0:
		return shared.InvalidInput("Stock cannot be negative")
	case p.Status != ProdOnSale && p.Status != ProdOffShelf:
		return shared.InvalidInput("Status must be 0 or 1")
	}
	return nil
}

// SetStatus puts the product on sale or takes it off. Going on sale stamps putawayTime.
func (p *Product) SetStatus(status int, now time.Time) error {
	if status != ProdOnSale && status != ProdOffShelf {
		return shared.InvalidInput("Status must be 0 or 1")
	}
	if status == ProdOnSale && p.Status != ProdOnSale {
		p.PutawayTime = &now
	}
	p.Status = status
	return nil
}

// ProductRepository defines persistence for products
type ProductRepository interface {
	shared.CrudRepository[Product]
	UpdateStatus(ctx context.Context, id int64, status int, putaway *time.Time) error
	// NamesByIDs resolves product names for display
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}

// ProdCommRepository defines persistence for comments
type ProdCommRepository interface {
	shared.CrudRepository[ProdComm]
}
