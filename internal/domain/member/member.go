// Package member holds storefront customers and their shipping addresses.
package member

import (
	"context"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// Member statuses
const (
	MemberDisabled = 0
	MemberNormal   = 1
)

// Member is a storefront customer account
type Member struct {
	UserID       string     `gorm:"column:user_id;primaryKey;type:varchar(36)" json:"userId"`
	NickName     string     `gorm:"column:nick_name;type:varchar(50)" json:"nickName"`
	RealName     string     `gorm:"column:real_name;type:varchar(50)" json:"realName"`
	UserMail     string     `gorm:"column:user_mail;type:varchar(100)" json:"userMail"`
	UserMobile   string     `gorm:"column:user_mobile;type:varchar(50)" json:"userMobile"`
	Sex          string     `gorm:"column:sex;type:char(1);default:M" json:"sex"`
	BirthDate    string     `gorm:"column:birth_date;type:varchar(10)" json:"birthDate"`
	Pic          string     `gorm:"column:pic;type:varchar(255)" json:"pic"`
	Status       int        `gorm:"column:status;not null" json:"status"`
	Score        int        `gorm:"column:score;not null;default:0" json:"score"`
	UserRegtime  time.Time  `gorm:"column:user_regtime;autoCreateTime" json:"userRegtime"`
	UserRegip    string     `gorm:"column:user_regip;type:varchar(50)" json:"userRegip"`
	UserLasttime *time.Time `gorm:"column:user_lasttime" json:"userLasttime"`
	UserLastip   string     `gorm:"column:user_lastip;type:varchar(50)" json:"userLastip"`
	UserMemo     string     `gorm:"column:user_memo;type:varchar(500)" json:"userMemo"`
	ModifyTime   time.Time  `gorm:"column:modify_time;autoUpdateTime" json:"modifyTime"`
}

// TableName returns the table name for GORM
func (Member) TableName() string {
	return "tz_user"
}

// AdminEdit is the subset of a member the back-office may change
type AdminEdit struct {
	NickName string
	Status   int
	Pic      string
	UserMemo string
}

// ApplyAdminEdit changes the admin-editable fields and leaves account data alone
func (m *Member) ApplyAdminEdit(e AdminEdit) error {
	if e.Status != MemberNormal && e.Status != MemberDisabled {
		return shared.InvalidInput("Status must be 0 or 1")
	}
	nick := strings.TrimSpace(e.NickName)
	if nick == "" {
		return shared.InvalidInput("Nickname is required")
	}
	m.NickName = nick
	m.Status = e.Status
	m.Pic = e.Pic
	m.UserMemo = e.UserMemo
	return nil
}

// MemberRepository defines persistence for members. Member ids are strings.
type MemberRepository interface {
	FindByID(ctx context.Context, id string) (*Member, error)
	FindPage(ctx context.Context, filter shared.Filter) (shared.Paginated[Member], error)
	Update(ctx context.Context, m *Member) error
	DeleteBatch(ctx context.Context, ids []string) error
}
