package identity

import (
	"context"
	"fmt"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

type menuSeed struct {
	name     string
	url      string
	perms    string
	icon     string
	children []menuSeed
}

// defaultMenus is the navigation installed into an empty menu table. The
// urls are the client routes of the admin screens.
var defaultMenus = []menuSeed{
	{name: "System", icon: "system", children: []menuSeed{
		{name: "Administrators", url: "sys/user", perms: "sys:user:page,sys:user:info,sys:user:save,sys:user:update,sys:user:delete"},
		{name: "Roles", url: "sys/role", perms: "sys:role:page,sys:role:info,sys:role:save,sys:role:update,sys:role:delete"},
		{name: "Menus", url: "sys/menu", perms: "sys:menu:list,sys:menu:info,sys:menu:save,sys:menu:update,sys:menu:delete"},
	}},
	{name: "Products", icon: "goods", children: []menuSeed{
		{name: "Products", url: "prod/prodList", perms: "prod:prod:page,prod:prod:info,prod:prod:save,prod:prod:update,prod:prod:delete"},
		{name: "Categories", url: "prod/category", perms: "prod:category:page,prod:category:info,prod:category:save,prod:category:update,prod:category:delete"},
		{name: "Specifications", url: "prod/spec", perms: "prod:spec:page,prod:spec:info,prod:spec:save,prod:spec:update,prod:spec:delete"},
		{name: "Attributes", url: "prod/attribute", perms: "admin:attribute:page,admin:attribute:info,admin:attribute:save,admin:attribute:update,admin:attribute:delete"},
		{name: "Brands", url: "prod/brand", perms: "admin:brand:page,admin:brand:info,admin:brand:save,admin:brand:update,admin:brand:delete"},
		{name: "Groupings", url: "prod/prodTag", perms: "prod:prodTag:page,prod:prodTag:info,prod:prodTag:save,prod:prodTag:update,prod:prodTag:delete"},
		{name: "Reviews", url: "prod/prodComm", perms: "prod:prodComm:page,prod:prodComm:info,prod:prodComm:update,prod:prodComm:delete"},
	}},
	{name: "Store", icon: "store", children: []menuSeed{
		{name: "Notices", url: "marketing/notice", perms: "shop:notice:page,shop:notice:info,shop:notice:save,shop:notice:update,shop:notice:delete"},
		{name: "Hot searches", url: "marketing/hotSearch", perms: "admin:hotSearch:page,admin:hotSearch:info,admin:hotSearch:save,admin:hotSearch:update,admin:hotSearch:delete"},
		{name: "Carousel", url: "marketing/indexImg", perms: "admin:indexImg:page,admin:indexImg:info,admin:indexImg:save,admin:indexImg:update,admin:indexImg:delete"},
		{name: "Areas", url: "delivery/area", perms: "admin:area:page,admin:area:info,admin:area:save,admin:area:update,admin:area:delete"},
		{name: "Pick-up points", url: "delivery/pickAddr", perms: "shop:pickAddr:page,shop:pickAddr:info,shop:pickAddr:save,shop:pickAddr:update,shop:pickAddr:delete"},
		{name: "Shipping templates", url: "delivery/transport", perms: "shop:transport:page,shop:transport:info,shop:transport:save,shop:transport:update,shop:transport:delete"},
	}},
	{name: "Members", icon: "user", children: []menuSeed{
		{name: "Members", url: "member", perms: "admin:user:page,admin:user:info,admin:user:update,admin:user:delete"},
		{name: "Addresses", url: "member/userAddr", perms: "user:addr:page,user:addr:info,user:addr:save,user:addr:update,user:addr:delete"},
	}},
	{name: "Orders", icon: "order", children: []menuSeed{
		{name: "Orders", url: "order", perms: "order:order:page,order:order:info,order:order:delivery"},
	}},
}

// Bootstrapper installs the built-in administrator and the default menus
// into an empty database
type Bootstrapper struct {
	users         identity.SysUserRepository
	menus         identity.SysMenuRepository
	adminPassword string
	logger        *zap.Logger
}

// NewBootstrapper creates a new Bootstrapper. An empty adminPassword skips
// creating the administrator.
func NewBootstrapper(
	users identity.SysUserRepository,
	menus identity.SysMenuRepository,
	adminPassword string,
	logger *zap.Logger,
) *Bootstrapper {
	return &Bootstrapper{
		users:         users,
		menus:         menus,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// Run seeds whatever is missing. It is safe to call on every start.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.seedMenus(ctx); err != nil {
		return fmt.Errorf("seed menus: %w", err)
	}
	if err := b.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed administrator: %w", err)
	}
	return nil
}

func (b *Bootstrapper) seedAdmin(ctx context.Context) error {
	existing, err := b.users.FindPage(ctx, shared.Filter{Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if existing.Total > 0 {
		return nil
	}
	if b.adminPassword == "" {
		b.logger.Warn("No operators exist and app.admin_password is not set; skipping administrator creation")
		return nil
	}

	admin, err := identity.NewSysUser("admin", b.adminPassword)
	if err != nil {
		return err
	}
	if err := b.users.Create(ctx, admin); err != nil {
		return err
	}
	if !admin.IsSuperAdmin() {
		b.logger.Warn("Administrator was not assigned the built-in id; it will not see every menu",
			zap.Int64("user_id", admin.UserID))
	}
	b.logger.Info("Administrator created", zap.Int64("user_id", admin.UserID))
	return nil
}

func (b *Bootstrapper) seedMenus(ctx context.Context) error {
	existing, err := b.menus.FindPage(ctx, shared.Filter{Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if existing.Total > 0 {
		return nil
	}
	count := 0
	for i, top := range defaultMenus {
		catalog := identity.SysMenu{Name: top.name, Icon: top.icon, Type: identity.MenuCatalog, OrderNum: i}
		if err := b.menus.Create(ctx, &catalog); err != nil {
			return err
		}
		count++
		for j, page := range top.children {
			m := identity.SysMenu{
				ParentID: catalog.MenuID,
				Name:     page.name,
				URL:      page.url,
				Perms:    page.perms,
				Type:     identity.MenuPage,
				OrderNum: j,
			}
			if err := b.menus.Create(ctx, &m); err != nil {
				return err
			}
			count++
		}
	}
	b.logger.Info("Default menus installed", zap.Int("menus", count))
	return nil
}
