// Package delivery holds the shop side of fulfilment: self pick-up points and
// shipping fee templates.
package delivery

import (
	"regexp"
	"strings"

	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

var mobilePattern = regexp.MustCompile(`^1\d{10}$`)

// PickAddr is a self pick-up point
type PickAddr struct {
	AddrID     int64  `gorm:"column:addr_id;primaryKey;autoIncrement" json:"addrId"`
	AddrName   string `gorm:"column:addr_name;type:varchar(36);not null" json:"addrName"`
	Addr       string `gorm:"column:addr;type:varchar(1000);not null" json:"addr"`
	Mobile     string `gorm:"column:mobile;type:varchar(20)" json:"mobile"`
	ProvinceID int64  `gorm:"column:province_id" json:"provinceId"`
	Province   string `gorm:"column:province;type:varchar(32)" json:"province"`
	CityID     int64  `gorm:"column:city_id" json:"cityId"`
	City       string `gorm:"column:city;type:varchar(32)" json:"city"`
	AreaID     int64  `gorm:"column:area_id" json:"areaId"`
	Area       string `gorm:"column:area;type:varchar(32)" json:"area"`
	ShopID     int64  `gorm:"column:shop_id;not null;default:1" json:"shopId"`
}

// TableName returns the table name for GORM
func (PickAddr) TableName() string {
	return "tz_pick_addr"
}

func (p PickAddr) GetID() int64 { return p.AddrID }

// Validate checks the required fields of a pick-up point
func (p *PickAddr) Validate() error {
	p.AddrName = strings.TrimSpace(p.AddrName)
	p.Addr = strings.TrimSpace(p.Addr)
	switch {
	case p.AddrName == "":
		return shared.InvalidInput("Pick-up point name is required")
	case p.Addr == "":
		return shared.InvalidInput("Detailed address is required")
	case !mobilePattern.MatchString(p.Mobile):
		return shared.InvalidInput("Mobile number is invalid")
	case p.ProvinceID == 0 || p.CityID == 0 || p.AreaID == 0:
		return shared.InvalidInput("Province, city and district are required")
	}
	return nil
}

// ApplyRegion fills the region names from a resolved province/city/district
// chain and rejects chains whose links are not parent and child.
func (p *PickAddr) ApplyRegion(province, city, district region.Area) error {
	if city.ParentID != province.AreaID || district.ParentID != city.AreaID {
		return shared.InvalidInput("Selected regions do not form a province/city/district chain")
	}
	p.ProvinceID, p.Province = province.AreaID, province.AreaName
	p.CityID, p.City = city.AreaID, city.AreaName
	p.AreaID, p.Area = district.AreaID, district.AreaName
	return nil
}

// PickAddrRepository defines persistence for pick-up points
type PickAddrRepository interface {
	shared.CrudRepository[PickAddr]
}

// IsMobile reports whether s looks like a mainland mobile number
func IsMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

