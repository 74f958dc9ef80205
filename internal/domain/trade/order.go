// Package trade holds storefront orders as seen by the back-office.
package trade

import (
	"context"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order statuses
const (
	OrderCancelled = -1
	OrderUnpaid    = 0
	OrderToShip    = 1
	OrderShipped   = 2
	OrderCompleted = 3
)

// Pay types
const (
	PayWechat = 1
	PayAlipay = 2
)

// TimeLayout is the layout of the startTime/endTime page filters
const TimeLayout = "2006-01-02 15:04:05"

// Order is a storefront order
type Order struct {
	OrderID       int64           `gorm:"column:order_id;primaryKey;autoIncrement" json:"orderId"`
	ShopID        int64           `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	ProdName      string          `gorm:"column:prod_name;type:varchar(1000)" json:"prodName"`
	UserID        string          `gorm:"column:user_id;type:varchar(36);index" json:"userId"`
	OrderNumber   string          `gorm:"column:order_number;type:varchar(50);not null;uniqueIndex" json:"orderNumber"`
	Total         decimal.Decimal `gorm:"column:total;type:decimal(15,2);not null" json:"total"`
	ActualTotal   decimal.Decimal `gorm:"column:actual_total;type:decimal(15,2)" json:"actualTotal"`
	PayType       int             `gorm:"column:pay_type" json:"payType"`
	Remarks       string          `gorm:"column:remarks;type:varchar(1024)" json:"remarks"`
	Status        int             `gorm:"column:status;not null;default:0" json:"status"`
	DvyType       string          `gorm:"column:dvy_type;type:varchar(10)" json:"dvyType"`
	DvyID         int64           `gorm:"column:dvy_id" json:"dvyId"`
	DvyFlowID     string          `gorm:"column:dvy_flow_id;type:varchar(100)" json:"dvyFlowId"`
	FreightAmount decimal.Decimal `gorm:"column:freight_amount;type:decimal(15,2)" json:"freightAmount"`
	AddrOrderID   int64           `gorm:"column:addr_order_id" json:"addrOrderId"`
	ProductNums   int             `gorm:"column:product_nums" json:"productNums"`
	CreateTime    time.Time       `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime    time.Time       `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
	PayTime       *time.Time      `gorm:"column:pay_time" json:"payTime"`
	DvyTime       *time.Time      `gorm:"column:dvy_time" json:"dvyTime"`
	FinallyTime   *time.Time      `gorm:"column:finally_time" json:"finallyTime"`
	CancelTime    *time.Time      `gorm:"column:cancel_time" json:"cancelTime"`
	IsPayed       int             `gorm:"column:is_payed;not null;default:0" json:"isPayed"`
	RefundSts     int             `gorm:"column:refund_sts;not null;default:0" json:"refundSts"`
	ReduceAmount  decimal.Decimal `gorm:"column:reduce_amount;type:decimal(15,2)" json:"reduceAmount"`
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderNumber;references:OrderNumber" json:"orderItems"`
	UserAddrOrder *UserAddrOrder  `gorm:"foreignKey:AddrOrderID;references:AddrOrderID" json:"userAddrOrder"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "tz_order"
}

func (o Order) GetID() int64 { return o.OrderID }

// Deliver ships an order that is waiting for shipment
func (o *Order) Deliver(dvyID int64, flowID string, now time.Time) error {
	if o.Status != OrderToShip {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Only orders waiting for shipment can be delivered")
	}
	if !IsCourier(dvyID) {
		return shared.InvalidInput("Unknown courier")
	}
	flowID = strings.TrimSpace(flowID)
	if flowID == "" {
		return shared.InvalidInput("Tracking number is required")
	}
	o.DvyID = dvyID
	o.DvyFlowID = flowID
	o.DvyTime = &now
	o.Status = OrderShipped
	return nil
}

// OrderItem is one product line of an order
type OrderItem struct {
	OrderItemID        int64           `gorm:"column:order_item_id;primaryKey;autoIncrement" json:"orderItemId"`
	ShopID             int64           `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	OrderNumber        string          `gorm:"column:order_number;type:varchar(50);not null;index" json:"orderNumber"`
	ProdID             int64           `gorm:"column:prod_id" json:"prodId"`
	SkuID              int64           `gorm:"column:sku_id" json:"skuId"`
	ProdCount          int             `gorm:"column:prod_count" json:"prodCount"`
	ProdName           string          `gorm:"column:prod_name;type:varchar(120)" json:"prodName"`
	SkuName            string          `gorm:"column:sku_name;type:varchar(120)" json:"skuName"`
	Pic                string          `gorm:"column:pic;type:varchar(255)" json:"pic"`
	Price              decimal.Decimal `gorm:"column:price;type:decimal(15,2)" json:"price"`
	UserID             string          `gorm:"column:user_id;type:varchar(36)" json:"userId"`
	ProductTotalAmount decimal.Decimal `gorm:"column:product_total_amount;type:decimal(15,2)" json:"productTotalAmount"`
	RecTime            time.Time       `gorm:"column:rec_time;autoCreateTime" json:"recTime"`
	CommSts            int             `gorm:"column:comm_sts;not null;default:0" json:"commSts"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "tz_order_item"
}

// UserAddrOrder is the shipping address snapshot taken when the order was placed
type UserAddrOrder struct {
	AddrOrderID int64     `gorm:"column:addr_order_id;primaryKey;autoIncrement" json:"addrOrderId"`
	AddrID      int64     `gorm:"column:addr_id" json:"addrId"`
	UserID      string    `gorm:"column:user_id;type:varchar(36)" json:"userId"`
	Receiver    string    `gorm:"column:receiver;type:varchar(50)" json:"receiver"`
	ProvinceID  int64     `gorm:"column:province_id" json:"provinceId"`
	Province    string    `gorm:"column:province;type:varchar(100)" json:"province"`
	CityID      int64     `gorm:"column:city_id" json:"cityId"`
	City        string    `gorm:"column:city;type:varchar(20)" json:"city"`
	AreaID      int64     `gorm:"column:area_id" json:"areaId"`
	Area        string    `gorm:"column:area;type:varchar(20)" json:"area"`
	Addr        string    `gorm:"column:addr;type:varchar(1000)" json:"addr"`
	PostCode    string    `gorm:"column:post_code;type:varchar(15)" json:"postCode"`
	Mobile      string    `gorm:"column:mobile;type:varchar(20)" json:"mobile"`
	CreateTime  time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
}

// TableName returns the table name for GORM
func (UserAddrOrder) TableName() string {
	return "tz_user_addr_order"
}

// OrderRepository defines persistence for orders
type OrderRepository interface {
	FindPage(ctx context.Context, filter shared.Filter) (shared.Paginated[Order], error)
	// FindByNumber loads the order with its items and address snapshot
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	// SaveDelivery persists the delivery fields of an order
	SaveDelivery(ctx context.Context, o *Order) error
}
