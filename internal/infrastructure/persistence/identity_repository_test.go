package persistence

import (
	"context"
	"testing"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormIdentityRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewGormSysUserRepository(db)
	roles := NewGormSysRoleRepository(db)
	menus := NewGormSysMenuRepository(db)

	catalogMenu := &identity.SysMenu{Name: "Product", Type: identity.MenuCatalog}
	require.NoError(t, menus.Create(ctx, catalogMenu))
	page := &identity.SysMenu{Name: "List", URL: "prod/prodList", Type: identity.MenuPage, ParentID: catalogMenu.MenuID, Perms: "prod:prod:page"}
	require.NoError(t, menus.Create(ctx, page))
	hidden := &identity.SysMenu{Name: "System", Type: identity.MenuCatalog}
	require.NoError(t, menus.Create(ctx, hidden))

	role := &identity.SysRole{RoleName: "ops", MenuIDList: []int64{catalogMenu.MenuID, page.MenuID}}
	require.NoError(t, roles.Create(ctx, role))

	u, err := identity.NewSysUser("operator", "secret1")
	require.NoError(t, err)
	u.RoleIDList = []int64{role.RoleID}
	require.NoError(t, users.Create(ctx, u))

	t.Run("info carries link ids", func(t *testing.T) {
		got, err := users.FindByID(ctx, u.UserID)
		require.NoError(t, err)
		assert.Equal(t, []int64{role.RoleID}, got.RoleIDList)

		gotRole, err := roles.FindByID(ctx, role.RoleID)
		require.NoError(t, err)
		assert.Equal(t, []int64{catalogMenu.MenuID, page.MenuID}, gotRole.MenuIDList)
	})

	t.Run("menus reachable through roles", func(t *testing.T) {
		visible, err := menus.FindByUserID(ctx, u.UserID)
		require.NoError(t, err)
		require.Len(t, visible, 2)
		for _, m := range visible {
			assert.NotEqual(t, hidden.MenuID, m.MenuID)
		}
	})

	t.Run("username lookups", func(t *testing.T) {
		got, err := users.FindByUsername(ctx, " operator ")
		require.NoError(t, err)
		assert.True(t, got.VerifyPassword("secret1"))

		exists, err := users.ExistsByUsername(ctx, "operator", 0)
		require.NoError(t, err)
		assert.True(t, exists)
		exists, err = users.ExistsByUsername(ctx, "operator", u.UserID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update replaces role links", func(t *testing.T) {
		got, err := users.FindByID(ctx, u.UserID)
		require.NoError(t, err)
		got.RoleIDList = nil
		require.NoError(t, users.Update(ctx, got))

		ids, err := users.RoleIDs(ctx, u.UserID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("deleting a role drops its grants", func(t *testing.T) {
		require.NoError(t, roles.DeleteBatch(ctx, []int64{role.RoleID}))
		assert.Equal(t, int64(0), countRows(t, db, &identity.RoleMenu{}))
	})

	t.Run("menu children are counted", func(t *testing.T) {
		n, err := menus.CountChildren(ctx, catalogMenu.MenuID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
