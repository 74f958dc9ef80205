// Package identity holds back-office operators, their roles and the menu
// tree that decides what each operator may open.
package identity

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// SuperAdminID is the built-in administrator. It sees every menu and cannot be deleted.
const SuperAdminID int64 = 1

// Password cost for bcrypt
const bcryptCost = 12

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// SysUser is a back-office operator account
type SysUser struct {
	UserID       int64     `gorm:"column:user_id;primaryKey;autoIncrement" json:"userId"`
	Username     string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Email        string    `gorm:"column:email;type:varchar(100)" json:"email"`
	Mobile       string    `gorm:"column:mobile;type:varchar(100)" json:"mobile"`
	Status       int       `gorm:"column:status;not null" json:"status"`
	ShopID       int64     `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	CreateTime   time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	RoleIDList   []int64   `gorm:"-" json:"roleIdList"`
}

// TableName returns the table name for GORM
func (SysUser) TableName() string {
	return "tz_sys_user"
}

func (u SysUser) GetID() int64 { return u.UserID }

// UserRole links an operator to a role
type UserRole struct {
	ID     int64 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID int64 `gorm:"column:user_id;not null;index"`
	RoleID int64 `gorm:"column:role_id;not null;index"`
}

// TableName returns the table name for GORM
func (UserRole) TableName() string {
	return "tz_sys_user_role"
}

// NewSysUser creates an operator with a hashed password
func NewSysUser(username, password string) (*SysUser, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	u := &SysUser{
		Username: strings.TrimSpace(username),
		Status:   shared.StatusEnabled,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the editable profile fields
func (u *SysUser) Validate() error {
	if err := validateUsername(u.Username); err != nil {
		return err
	}
	u.Username = strings.TrimSpace(u.Username)
	if u.Email != "" && !emailRegex.MatchString(u.Email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if u.Mobile != "" && !isMobile(u.Mobile) {
		return shared.NewDomainError("INVALID_MOBILE", "Invalid mobile number")
	}
	if u.Status != shared.StatusEnabled && u.Status != shared.StatusDisabled {
		return shared.InvalidInput("Status must be 0 or 1")
	}
	u.RoleIDList = uniqueIDs(u.RoleIDList)
	return nil
}

// SetPassword replaces the stored hash
func (u *SysUser) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// ApplyPassword sets a new password, or keeps the stored hash when password is empty
func (u *SysUser) ApplyPassword(password string) error {
	if password == "" {
		return nil
	}
	return u.SetPassword(password)
}

// VerifyPassword verifies if the provided password matches
func (u *SysUser) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin reports whether the account is enabled
func (u *SysUser) CanLogin() bool {
	return u.Status == shared.StatusEnabled
}

// IsSuperAdmin reports whether u is the built-in administrator
func (u *SysUser) IsSuperAdmin() bool {
	return u.UserID == SuperAdminID
}

// CheckDeletable rejects deleting the built-in administrator or oneself
func CheckDeletable(ids []int64, currentUserID int64) error {
	for _, id := range ids {
		if id == SuperAdminID {
			return shared.NewDomainError(shared.ErrInvalidState.Code, "The system administrator cannot be deleted")
		}
		if id == currentUserID {
			return shared.NewDomainError(shared.ErrInvalidState.Code, "The current user cannot be deleted")
		}
	}
	return nil
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 2 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 2 characters")
	}
	if len(username) > 50 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 50 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func isMobile(s string) bool {
	return len(s) == 11 && s[0] == '1' && strings.Trim(s, "0123456789") == ""
}

// SysUserRepository defines persistence for operators
type SysUserRepository interface {
	shared.CrudRepository[SysUser]
	FindByUsername(ctx context.Context, username string) (*SysUser, error)
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	// RoleIDs returns the roles linked to the operator. Create and Update
	// replace the links from RoleIDList.
	RoleIDs(ctx context.Context, userID int64) ([]int64, error)
}
