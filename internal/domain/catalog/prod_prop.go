package catalog

import (
	"context"
	"strings"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// Property rules
const (
	PropRuleSpec      = 1
	PropRuleAttribute = 2
)

// ProdProp is a product specification or attribute together with its values
type ProdProp struct {
	PropID         int64           `gorm:"column:prop_id;primaryKey;autoIncrement" json:"propId"`
	PropName       string          `gorm:"column:prop_name;type:varchar(20);not null" json:"propName"`
	Rule           int             `gorm:"column:rule;not null" json:"rule"`
	ShopID         int64           `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	ProdPropValues []ProdPropValue `gorm:"foreignKey:PropID;references:PropID" json:"prodPropValues"`
}

// TableName returns the table name for GORM
func (ProdProp) TableName() string {
	return "tz_prod_prop"
}

func (p ProdProp) GetID() int64 { return p.PropID }

// ProdPropValue is one allowed value of a property
type ProdPropValue struct {
	ValueID   int64  `gorm:"column:value_id;primaryKey;autoIncrement" json:"valueId"`
	PropValue string `gorm:"column:prop_value;type:varchar(20);not null" json:"propValue"`
	PropID    int64  `gorm:"column:prop_id;not null;index" json:"propId"`
}

// TableName returns the table name for GORM
func (ProdPropValue) TableName() string {
	return "tz_prod_prop_value"
}

// Normalize validates the property under rule and prepares its values for
// replacement. Blank and duplicate values are dropped.
func (p *ProdProp) Normalize(rule int) error {
	p.Rule = rule
	p.PropName = strings.TrimSpace(p.PropName)
	if p.PropName == "" {
		return shared.InvalidInput("Property name is required")
	}
	seen := make(map[string]bool, len(p.ProdPropValues))
	values := make([]ProdPropValue, 0, len(p.ProdPropValues))
	for _, v := range p.ProdPropValues {
		v.PropValue = strings.TrimSpace(v.PropValue)
		if v.PropValue == "" || seen[v.PropValue] {
			continue
		}
		seen[v.PropValue] = true
		v.ValueID = 0
		v.PropID = p.PropID
		values = append(values, v)
	}
	if len(values) == 0 {
		return shared.InvalidInput("At least one property value is required")
	}
	p.ProdPropValues = values
	return nil
}

// ProdPropRepository defines persistence for properties of one rule
type ProdPropRepository interface {
	shared.CrudRepository[ProdProp]
	ExistsByName(ctx context.Context, rule int, name string, excludeID int64) (bool, error)
}
