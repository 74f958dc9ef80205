package identity

import (
	"context"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// SysRole is a named set of menu permissions
type SysRole struct {
	RoleID       int64     `gorm:"column:role_id;primaryKey;autoIncrement" json:"roleId"`
	RoleName     string    `gorm:"column:role_name;type:varchar(100);not null" json:"roleName"`
	Remark       string    `gorm:"column:remark;type:varchar(100)" json:"remark"`
	CreateUserID int64     `gorm:"column:create_user_id" json:"createUserId"`
	CreateTime   time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	MenuIDList   []int64   `gorm:"-" json:"menuIdList"`
}

// TableName returns the table name for GORM
func (SysRole) TableName() string {
	return "tz_sys_role"
}

func (r SysRole) GetID() int64 { return r.RoleID }

// RoleMenu links a role to a menu
type RoleMenu struct {
	ID     int64 `gorm:"column:id;primaryKey;autoIncrement"`
	RoleID int64 `gorm:"column:role_id;not null;index"`
	MenuID int64 `gorm:"column:menu_id;not null;index"`
}

// TableName returns the table name for GORM
func (RoleMenu) TableName() string {
	return "tz_sys_role_menu"
}

// Validate checks a role before it is stored and de-duplicates its menus
func (r *SysRole) Validate() error {
	r.RoleName = strings.TrimSpace(r.RoleName)
	if r.RoleName == "" {
		return shared.InvalidInput("Role name is required")
	}
	if len([]rune(r.RoleName)) > 100 {
		return shared.InvalidInput("Role name cannot exceed 100 characters")
	}
	r.MenuIDList = uniqueIDs(r.MenuIDList)
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// SysRoleRepository defines persistence for roles
type SysRoleRepository interface {
	shared.CrudRepository[SysRole]
	// MenuIDs returns the menus granted to the role. Create and Update
	// replace the grants from MenuIDList.
	MenuIDs(ctx context.Context, roleID int64) ([]int64, error)
}
