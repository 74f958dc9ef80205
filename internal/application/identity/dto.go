// Package identity manages back-office operators, roles, menus and sessions.
package identity

import (
	"github.com/Darkingtail/mall4r/internal/domain/identity"
)

// LoginInput carries the login form
type LoginInput struct {
	Principal   string `json:"principal" binding:"required"`
	Credentials string `json:"credentials" binding:"required"`
	IP          string `json:"-"`
}

// RefreshInput carries the refresh token to rotate
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserInput is the create/update payload of an operator. An empty password
// on update keeps the stored hash.
type UserInput struct {
	UserID     int64   `json:"userId"`
	Username   string  `json:"username" binding:"required"`
	Password   string  `json:"password"`
	Email      string  `json:"email"`
	Mobile     string  `json:"mobile"`
	Status     int     `json:"status"`
	RoleIDList []int64 `json:"roleIdList"`
}

// PasswordInput changes the caller's own password
type PasswordInput struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (in UserInput) apply(u *identity.SysUser) {
	u.Username = in.Username
	u.Email = in.Email
	u.Mobile = in.Mobile
	u.Status = in.Status
	u.RoleIDList = in.RoleIDList
}
