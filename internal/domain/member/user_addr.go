package member

import (
	"context"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// UserAddr is a member's shipping address
type UserAddr struct {
	AddrID     int64     `gorm:"column:addr_id;primaryKey;autoIncrement" json:"addrId"`
	UserID     string    `gorm:"column:user_id;type:varchar(36);not null;index" json:"userId"`
	Receiver   string    `gorm:"column:receiver;type:varchar(50)" json:"receiver"`
	ProvinceID int64     `gorm:"column:province_id" json:"provinceId"`
	Province   string    `gorm:"column:province;type:varchar(100)" json:"province"`
	CityID     int64     `gorm:"column:city_id" json:"cityId"`
	City       string    `gorm:"column:city;type:varchar(20)" json:"city"`
	AreaID     int64     `gorm:"column:area_id" json:"areaId"`
	Area       string    `gorm:"column:area;type:varchar(20)" json:"area"`
	PostCode   string    `gorm:"column:post_code;type:varchar(15)" json:"postCode"`
	Addr       string    `gorm:"column:addr;type:varchar(1000)" json:"addr"`
	Mobile     string    `gorm:"column:mobile;type:varchar(20)" json:"mobile"`
	Status     int       `gorm:"column:status;not null" json:"status"`
	CommonAddr int       `gorm:"column:common_addr;not null;default:0" json:"commonAddr"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

// TableName returns the table name for GORM
func (UserAddr) TableName() string {
	return "tz_user_addr"
}

func (a UserAddr) GetID() int64 { return a.AddrID }

// Validate checks an address before it is stored
func (a *UserAddr) Validate() error {
	a.Receiver = strings.TrimSpace(a.Receiver)
	a.Addr = strings.TrimSpace(a.Addr)
	switch {
	case a.UserID == "":
		return shared.InvalidInput("Member is required")
	case a.Receiver == "":
		return shared.InvalidInput("Receiver is required")
	case a.Addr == "":
		return shared.InvalidInput("Detailed address is required")
	case a.Mobile == "":
		return shared.InvalidInput("Mobile is required")
	case a.CommonAddr != 0 && a.CommonAddr != 1:
		return shared.InvalidInput("commonAddr must be 0 or 1")
	}
	return nil
}

// UserAddrRepository defines persistence for member addresses
type UserAddrRepository interface {
	shared.CrudRepository[UserAddr]
	// ClearCommon unsets the default flag on the member's other addresses
	ClearCommon(ctx context.Context, userID string, exceptAddrID int64) error
	// Save inserts the address when AddrID is 0 and updates it otherwise. A
	// default address clears the flag on the member's other addresses in the
	// same transaction.
	Save(ctx context.Context, a *UserAddr) error
}
