package delivery

import (
	"context"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Charge types
const (
	ChargeByPiece  = 0
	ChargeByWeight = 1
)

// Free shipping condition types
const (
	FreeByPiece  = 0
	FreeByAmount = 1
)

// Transport is a shipping fee template. Its fee rules and free-shipping
// conditions belong to it and are only written together with it.
type Transport struct {
	TransportID      int64          `gorm:"column:transport_id;primaryKey;autoIncrement" json:"transportId"`
	TransName        string         `gorm:"column:trans_name;type:varchar(36);not null" json:"transName"`
	ChargeType       int            `gorm:"column:charge_type;not null;default:0" json:"chargeType"`
	IsFreeFee        int            `gorm:"column:is_free_fee;not null;default:0" json:"isFreeFee"`
	HasFreeCondition int            `gorm:"column:has_free_condition;not null;default:0" json:"hasFreeCondition"`
	ShopID           int64          `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	CreateTime       time.Time      `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	Transfees        []Transfee     `gorm:"foreignKey:TransportID;references:TransportID" json:"transfees"`
	TransfeeFrees    []TransfeeFree `gorm:"foreignKey:TransportID;references:TransportID" json:"transfeeFrees"`
}

// TableName returns the table name for GORM
func (Transport) TableName() string {
	return "tz_transport"
}

func (t Transport) GetID() int64 { return t.TransportID }

// Transfee is a per-city fee rule
type Transfee struct {
	TransfeeID      int64           `gorm:"column:transfee_id;primaryKey;autoIncrement" json:"transfeeId"`
	TransportID     int64           `gorm:"column:transport_id;not null;index" json:"transportId"`
	CityID          int64           `gorm:"column:city_id" json:"cityId"`
	City            string          `gorm:"column:city;type:varchar(1000)" json:"city"`
	FirstPiece      decimal.Decimal `gorm:"column:first_piece;type:decimal(15,2);not null" json:"firstPiece"`
	FirstFee        decimal.Decimal `gorm:"column:first_fee;type:decimal(15,2);not null" json:"firstFee"`
	ContinuousPiece decimal.Decimal `gorm:"column:continuous_piece;type:decimal(15,2);not null" json:"continuousPiece"`
	ContinuousFee   decimal.Decimal `gorm:"column:continuous_fee;type:decimal(15,2);not null" json:"continuousFee"`
	Seq             int             `gorm:"column:seq;not null;default:0" json:"-"`
}

// TableName returns the table name for GORM
func (Transfee) TableName() string {
	return "tz_transfee"
}

// TransfeeFree is a per-city free-shipping condition
type TransfeeFree struct {
	TransfeeFreeID int64           `gorm:"column:transfee_free_id;primaryKey;autoIncrement" json:"transfeeFreeId"`
	TransportID    int64           `gorm:"column:transport_id;not null;index" json:"transportId"`
	CityID         int64           `gorm:"column:city_id" json:"cityId"`
	City           string          `gorm:"column:city;type:varchar(1000)" json:"city"`
	FreeType       int             `gorm:"column:free_type;not null;default:0" json:"freeType"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(15,2);not null" json:"amount"`
	Piece          decimal.Decimal `gorm:"column:piece;type:decimal(15,2);not null" json:"piece"`
	Seq            int             `gorm:"column:seq;not null;default:0" json:"-"`
}

// TableName returns the table name for GORM
func (TransfeeFree) TableName() string {
	return "tz_transfee_free"
}

// NewTransfee returns a fee row with the default piece counts
func NewTransfee() Transfee {
	return Transfee{
		FirstPiece:      decimal.NewFromInt(1),
		FirstFee:        decimal.Zero,
		ContinuousPiece: decimal.NewFromInt(1),
		ContinuousFee:   decimal.Zero,
	}
}

// Normalize validates the template and enforces its structural rules:
// a free-shipping template carries no fee rows and a template without a free
// condition carries no condition rows. Row order is kept in Seq.
func (t *Transport) Normalize() error {
	t.TransName = strings.TrimSpace(t.TransName)
	if t.TransName == "" {
		return shared.InvalidInput("Template name is required")
	}
	if t.ChargeType != ChargeByPiece && t.ChargeType != ChargeByWeight {
		return shared.InvalidInput("Charge type must be 0 (piece) or 1 (weight)")
	}
	if t.IsFreeFee != 0 && t.IsFreeFee != 1 {
		return shared.InvalidInput("isFreeFee must be 0 or 1")
	}
	if t.HasFreeCondition != 0 && t.HasFreeCondition != 1 {
		return shared.InvalidInput("hasFreeCondition must be 0 or 1")
	}

	if t.IsFreeFee == 1 {
		t.Transfees = nil
		t.HasFreeCondition = 0
	}
	if t.HasFreeCondition == 0 {
		t.TransfeeFrees = nil
	}

	for i := range t.Transfees {
		f := &t.Transfees[i]
		if f.FirstPiece.IsNegative() || f.FirstFee.IsNegative() || f.ContinuousPiece.IsNegative() || f.ContinuousFee.IsNegative() {
			return shared.InvalidInput("Fee rule values cannot be negative")
		}
		if f.FirstPiece.IsZero() {
			f.FirstPiece = decimal.NewFromInt(1)
		}
		if f.ContinuousPiece.IsZero() {
			f.ContinuousPiece = decimal.NewFromInt(1)
		}
		f.TransfeeID = 0
		f.TransportID = t.TransportID
		f.Seq = i
	}
	for i := range t.TransfeeFrees {
		f := &t.TransfeeFrees[i]
		if f.FreeType != FreeByPiece && f.FreeType != FreeByAmount {
			return shared.InvalidInput("Free condition type must be 0 (piece) or 1 (amount)")
		}
		if f.Amount.IsNegative() || f.Piece.IsNegative() {
			return shared.InvalidInput("Free condition values cannot be negative")
		}
		f.TransfeeFreeID = 0
		f.TransportID = t.TransportID
		f.Seq = i
	}
	return nil
}

// Fee computes the freight for count units (pieces or weight) shipped to cityID
// with goods worth amount. A rule with CityID 0 is the default rule.
func (t *Transport) Fee(cityID int64, count, amount decimal.Decimal) decimal.Decimal {
	if t.IsFreeFee == 1 {
		return decimal.Zero
	}
	for _, c := range t.TransfeeFrees {
		if c.CityID != 0 && c.CityID != cityID {
			continue
		}
		if c.FreeType == FreeByPiece && count.GreaterThanOrEqual(c.Piece) {
			return decimal.Zero
		}
		if c.FreeType == FreeByAmount && amount.GreaterThanOrEqual(c.Amount) {
			return decimal.Zero
		}
	}

	var rule *Transfee
	for i := range t.Transfees {
		r := &t.Transfees[i]
		if r.CityID == cityID {
			rule = r
			break
		}
		if r.CityID == 0 && rule == nil {
			rule = r
		}
	}
	if rule == nil {
		return decimal.Zero
	}

	fee := rule.FirstFee
	extra := count.Sub(rule.FirstPiece)
	if extra.IsPositive() && rule.ContinuousPiece.IsPositive() {
		steps := extra.Div(rule.ContinuousPiece).Ceil()
		fee = fee.Add(steps.Mul(rule.ContinuousFee))
	}
	return fee
}

// TransportRepository defines persistence for shipping templates
type TransportRepository interface {
	shared.CrudRepository[Transport]
	// FindByIDWithRules loads the template together with its child rows
	FindByIDWithRules(ctx context.Context, id int64) (*Transport, error)
}
