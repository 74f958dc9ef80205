package persistence

import (
	"context"
	"strings"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSysUserRepository implements SysUserRepository using GORM.
// Role links are written together with the operator.
type GormSysUserRepository struct {
	*GormCrudRepository[identity.SysUser]
}

// NewGormSysUserRepository creates a new GormSysUserRepository
func NewGormSysUserRepository(db *gorm.DB) *GormSysUserRepository {
	return &GormSysUserRepository{newCrudRepository[identity.SysUser](db, querySpec{
		primaryKey: "user_id",
		filters: map[string]filterFunc{
			"username": like("username"),
			"status":   eq("status"),
		},
		defaultOrder: "user_id ASC",
		immutable:    []string{"create_time"},
	})}
}

// FindByID finds an operator with its role ids
func (r *GormSysUserRepository) FindByID(ctx context.Context, id int64) (*identity.SysUser, error) {
	u, err := r.GormCrudRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.RoleIDList, err = r.RoleIDs(ctx, id); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByUsername finds an operator by username
func (r *GormSysUserRepository) FindByUsername(ctx context.Context, username string) (*identity.SysUser, error) {
	var u identity.SysUser
	if err := r.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// ExistsByUsername reports whether another operator uses username
func (r *GormSysUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&identity.SysUser{}).
		Where("username = ? AND user_id <> ?", username, excludeID).
		Count(&n).Error
	return n > 0, err
}

// RoleIDs returns the roles linked to the operator
func (r *GormSysUserRepository) RoleIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).Model(&identity.UserRole{}).
		Where("user_id = ?", userID).
		Order("role_id ASC").
		Pluck("role_id", &ids).Error
	return ids, err
}

// Create inserts the operator and its role links
func (r *GormSysUserRepository) Create(ctx context.Context, u *identity.SysUser) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(u).Error; err != nil {
			return err
		}
		return replaceUserRoles(tx, u.UserID, u.RoleIDList)
	})
}

// Update writes the operator and replaces its role links
func (r *GormSysUserRepository) Update(ctx context.Context, u *identity.SysUser) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := r.update(tx, u); err != nil {
			return err
		}
		return replaceUserRoles(tx, u.UserID, u.RoleIDList)
	})
}

// DeleteBatch removes operators and their role links
func (r *GormSysUserRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("user_id IN ?", ids).Delete(&identity.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id IN ?", ids).Delete(&identity.SysUser{}).Error
	})
}

func replaceUserRoles(tx *gorm.DB, userID int64, roleIDs []int64) error {
	if err := tx.Where("user_id = ?", userID).Delete(&identity.UserRole{}).Error; err != nil {
		return err
	}
	if len(roleIDs) == 0 {
		return nil
	}
	links := make([]identity.UserRole, len(roleIDs))
	for i, id := range roleIDs {
		links[i] = identity.UserRole{UserID: userID, RoleID: id}
	}
	return tx.Create(&links).Error
}

// GormSysRoleRepository implements SysRoleRepository using GORM.
// Menu grants are written together with the role.
type GormSysRoleRepository struct {
	*GormCrudRepository[identity.SysRole]
}

// NewGormSysRoleRepository creates a new GormSysRoleRepository
func NewGormSysRoleRepository(db *gorm.DB) *GormSysRoleRepository {
	return &GormSysRoleRepository{newCrudRepository[identity.SysRole](db, querySpec{
		primaryKey: "role_id",
		filters: map[string]filterFunc{
			"roleName": like("role_name"),
		},
		defaultOrder: "role_id ASC",
		immutable:    []string{"create_time", "create_user_id"},
	})}
}

// FindByID finds a role with its menu ids
func (r *GormSysRoleRepository) FindByID(ctx context.Context, id int64) (*identity.SysRole, error) {
	role, err := r.GormCrudRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role.MenuIDList, err = r.MenuIDs(ctx, id); err != nil {
		return nil, err
	}
	return role, nil
}

// MenuIDs returns the menus granted to the role
func (r *GormSysRoleRepository) MenuIDs(ctx context.Context, roleID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).Model(&identity.RoleMenu{}).
		Where("role_id = ?", roleID).
		Order("menu_id ASC").
		Pluck("menu_id", &ids).Error
	return ids, err
}

// Create inserts the role and its menu grants
func (r *GormSysRoleRepository) Create(ctx context.Context, role *identity.SysRole) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		return replaceRoleMenus(tx, role.RoleID, role.MenuIDList)
	})
}

// Update writes the role and replaces its menu grants
func (r *GormSysRoleRepository) Update(ctx context.Context, role *identity.SysRole) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := r.update(tx, role); err != nil {
			return err
		}
		return replaceRoleMenus(tx, role.RoleID, role.MenuIDList)
	})
}

// DeleteBatch removes roles, their grants and their operator links
func (r *GormSysRoleRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("role_id IN ?", ids).Delete(&identity.RoleMenu{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id IN ?", ids).Delete(&identity.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Where("role_id IN ?", ids).Delete(&identity.SysRole{}).Error
	})
}

func replaceRoleMenus(tx *gorm.DB, roleID int64, menuIDs []int64) error {
	if err := tx.Where("role_id = ?", roleID).Delete(&identity.RoleMenu{}).Error; err != nil {
		return err
	}
	if len(menuIDs) == 0 {
		return nil
	}
	links := make([]identity.RoleMenu, len(menuIDs))
	for i, id := range menuIDs {
		links[i] = identity.RoleMenu{RoleID: roleID, MenuID: id}
	}
	return tx.Create(&links).Error
}

// GormSysMenuRepository implements SysMenuRepository using GORM
type GormSysMenuRepository struct {
	*GormCrudRepository[identity.SysMenu]
}

// NewGormSysMenuRepository creates a new GormSysMenuRepository
func NewGormSysMenuRepository(db *gorm.DB) *GormSysMenuRepository {
	return &GormSysMenuRepository{newCrudRepository[identity.SysMenu](db, querySpec{
		primaryKey: "menu_id",
		filters: map[string]filterFunc{
			"name": like("name"),
			"type": eq("type"),
		},
		defaultOrder: "order_num ASC, menu_id ASC",
	})}
}

// FindByUserID returns the menus reachable through the operator's roles
func (r *GormSysMenuRepository) FindByUserID(ctx context.Context, userID int64) ([]identity.SysMenu, error) {
	var menus []identity.SysMenu
	err := r.db.WithContext(ctx).
		Where("menu_id IN (?)",
			r.db.Table("tz_sys_role_menu AS rm").
				Select("rm.menu_id").
				Joins("JOIN tz_sys_user_role AS ur ON ur.role_id = rm.role_id").
				Where("ur.user_id = ?", userID)).
		Order("order_num ASC, menu_id ASC").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

// CountChildren counts the direct children of a menu
func (r *GormSysMenuRepository) CountChildren(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&identity.SysMenu{}).Where("parent_id = ?", id).Count(&n).Error
	return n, err
}

// Delete removes the menu and its role grants
func (r *GormSysMenuRepository) Delete(ctx context.Context, id int64) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("menu_id = ?", id).Delete(&identity.SysMenu{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("menu_id = ?", id).Delete(&identity.RoleMenu{}).Error
	})
}

var (
	_ identity.SysUserRepository = (*GormSysUserRepository)(nil)
	_ identity.SysRoleRepository = (*GormSysRoleRepository)(nil)
	_ identity.SysMenuRepository = (*GormSysMenuRepository)(nil)
)
