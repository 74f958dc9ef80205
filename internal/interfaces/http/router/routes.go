package router

import (
	"net/http"

	"github.com/Darkingtail/mall4r/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler of the admin API
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Area      *handler.AreaHandler
	PickAddr  *handler.PickAddrHandler
	Transport *handler.TransportHandler
	HotSearch *handler.HotSearchHandler
	IndexImg  *handler.IndexImgHandler
	Notice    *handler.NoticeHandler
	Member    *handler.MemberHandler
	UserAddr  *handler.UserAddrHandler
	Order     *handler.OrderHandler
	Category  *handler.CategoryHandler
	Brand     *handler.BrandHandler
	Spec      *handler.PropHandler
	Attribute *handler.PropHandler
	ProdTag   *handler.ProdTagHandler
	ProdComm  *handler.ProdCommHandler
	Product   *handler.ProductHandler
	SysUser   *handler.SysUserHandler
	SysRole   *handler.SysRoleHandler
	SysMenu   *handler.SysMenuHandler
	Upload    *handler.UploadHandler
}

// UploadPath is the multipart upload endpoint
const UploadPath = "/admin/file/upload/element"

// crud is the handler set of a resource following the common verbs. With
// batch set, remove takes a JSON id array at the base path and removeOne,
// when present, still serves DELETE {base}/:id.
type crud struct {
	page, info, create, update, remove gin.HandlerFunc
	removeOne                          gin.HandlerFunc
	batch                              bool
}

// resource registers the page/info/save/update/delete verbs of a resource
// under the permission prefix perm, e.g. "admin:area"
func resource(dg *DomainGroup, perm string, h crud) *DomainGroup {
	if h.page != nil {
		dg.Handle(http.MethodGet, "/page", perm+":page", h.page)
	}
	if h.info != nil {
		dg.Handle(http.MethodGet, "/info/:id", perm+":info", h.info)
	}
	if h.create != nil {
		dg.Handle(http.MethodPost, "", perm+":save", h.create)
	}
	if h.update != nil {
		dg.Handle(http.MethodPut, "", perm+":update", h.update)
	}
	if h.remove != nil {
		if h.batch {
			dg.Handle(http.MethodDelete, "", perm+":delete", h.remove)
			if h.removeOne != nil {
				dg.Handle(http.MethodDelete, "/:id", perm+":delete", h.removeOne)
			}
		} else {
			dg.Handle(http.MethodDelete, "/:id", perm+":delete", h.remove)
		}
	}
	return dg
}

// PublicGroups returns the routes reachable without a token. loginMiddleware
// runs in front of the login and refresh endpoints only.
func PublicGroups(h *Handlers, loginMiddleware ...gin.HandlerFunc) []*DomainGroup {
	probes := NewDomainGroup("health", "")
	probes.GET("/health", h.Health.Health)
	probes.GET("/ready", h.Health.Ready)

	login := NewDomainGroup("auth", "").Use(loginMiddleware...)
	login.POST("/adminLogin", h.Auth.Login)
	login.POST("/token/refresh", h.Auth.Refresh)

	return []*DomainGroup{probes, login}
}

// ProtectedGroups returns the routes that require a token. guard builds the
// middleware enforcing a permission string.
func ProtectedGroups(h *Handlers, guard func(permission string) gin.HandlerFunc) []*DomainGroup {
	session := NewDomainGroup("session", "").Guard(guard)
	session.POST("/logOut", h.Auth.Logout)

	return []*DomainGroup{
		session,
		regionRoutes(h, guard),
		shopRoutes(h, guard),
		memberRoutes(h, guard),
		orderRoutes(h, guard),
		catalogRoutes(h, guard),
		systemRoutes(h, guard),
		uploadRoutes(h, guard),
	}
}

func regionRoutes(h *Handlers, guard func(string) gin.HandlerFunc) *DomainGroup {
	area := NewDomainGroup("area", "/admin/area").Guard(guard)
	resource(area, "admin:area", crud{
		page:   h.Area.Page,
		info:   h.Area.GetByID,
		create: h.Area.Create,
		update: h.Area.Update,
		remove: h.Area.Delete,
	})
	area.GET("/list", h.Area.List)
	area.GET("/listByPid", h.Area.ListByPid)
	area.GET("/tree", h.Area.Tree)
	return area
}

func shopRoutes(h *Handlers, guard func(string) gin.HandlerFunc) *DomainGroup {
	shop := NewDomainGroup("shop", "").Guard(guard)

	resource(shop.Group("pickAddr", "/shop/pickAddr"), "shop:pickAddr", crud{
		page:      h.PickAddr.Page,
		info:      h.PickAddr.GetByID,
		create:    h.PickAddr.Create,
		update:    h.PickAddr.Update,
		remove:    h.PickAddr.DeleteBatch,
		removeOne: h.PickAddr.Delete,
		batch:     true,
	})

	transport := resource(shop.Group("transport", "/shop/transport"), "shop:transport", crud{
		page:      h.Transport.Page,
		info:      h.Transport.GetByID,
		create:    h.Transport.Create,
		update:    h.Transport.Update,
		remove:    h.Transport.DeleteBatch,
		removeOne: h.Transport.Delete,
		batch:     true,
	})
	transport.GET("/list", h.Transport.List)
	transport.GET("/fee", h.Transport.Fee)

	resource(shop.Group("notice", "/shop/notice"), "shop:notice", crud{
		page:   h.Notice.Page,
		info:   h.Notice.GetByID,
		create: h.Notice.Create,
		update: h.Notice.Update,
		remove: h.Notice.Delete,
	})

	resource(shop.Group("hotSearch", "/admin/hotSearch"), "admin:hotSearch", crud{
		page:   h.HotSearch.Page,
		info:   h.HotSearch.GetByID,
		create: h.HotSearch.Create,
		update: h.HotSearch.Update,
		remove: h.HotSearch.DeleteBatch,
		batch:  true,
	})

	resource(shop.Group("indexImg", "/admin/indexImg"), "admin:indexImg", crud{
		page:   h.IndexImg.Page,
		info:   h.IndexImg.GetByID,
		create: h.IndexImg.Create,
		update: h.IndexImg.Update,
		remove: h.IndexImg.DeleteBatch,
		batch:  true,
	})
	return shop
}

func memberRoutes(h *Handlers, guard func(string) gin.HandlerFunc) *DomainGroup {
	members := NewDomainGroup("member", "").Guard(guard)

	user := members.Group("user", "/admin/user")
	user.Handle(http.MethodGet, "/page", "admin:user:page", h.Member.Page)
	user.Handle(http.MethodGet, "/info/:userId", "admin:user:info", h.Member.GetByID)
	user.Handle(http.MethodPut, "", "admin:user:update", h.Member.Update)
	user.Handle(http.MethodDelete, "", "admin:user:delete", h.Member.DeleteBatch)

	resource(members.Group("userAddr", "/user/addr"), "user:addr", crud{
		page:   h.UserAddr.Page,
		info:   h.UserAddr.GetByID,
		create: h.UserAddr.Create,
		update: h.UserAddr.Update,
		remove: h.UserAddr.Delete,
	})
	return members
}

func orderRoutes(h *Handlers, guard func(string) gin.HandlerFunc) *DomainGroup {
	orders := NewDomainGroup("order", "/order").Guard(guard)

	order := orders.Group("order", "/order")
	order.Handle(http.MethodGet, "/page", "order:order:page", h.Order.Page)
	order.Handle(http.MethodGet, "/orderInfo/:orderNumber", "order:order:info", h.Order.Info)
	order.Handle(http.MethodPut, "/delivery", "order:order:delivery", h.Order.Delivery)

	orders.Group("delivery", "/delivery").GET("/list", h.Order.Couriers)
	return orders
}

func catalogRoutes(h *Handlers, guard func(string) gin.HandlerFunc) *DomainGroup {
	catalog := NewDomainGroup("catalog", "").Guard(guard)

	category := resource(catalog.Group("category", "/prod/category"), "prod:category", crud{
		info:   h.Category.GetByID,
		create: h.Category.Create,
		update: h.Category.Update,
		remove: h.Category.Delete,
	})
	category.GET("/listCategory", h.Category.Tree)
	category.GET("/listProdCategory", h.Category.ListEnabled)

	brand := resource(catalog.Group("brand", "/admin/brand"), "admin:brand", crud{
		page:   h.Brand.Page,
		info:   h.Brand.GetByID,
		create: h.Brand.Create,
		update: h.Brand.Update,
		remove: h.Brand.Delete,
	})
	brand.GET("/list", h.Brand.List)

	spec := resource(catalog.Group("spec", "/prod/spec"), "prod:spec", crud{
		page:   h.Spec.Page,
		info:   h.Spec.GetByID,
		create: h.Spec.Create,
		update: h.Spec.Update,
		remove: h.Spec.Delete,
	})
	spec.GET("/list", h.Spec.List)

	attribute := resource(catalog.Group("attribute", "/admin/attribute"), "admin:attribute", crud{
		page:   h.Attribute.Page,
		info:   h.Attribute.GetByID,
		create: h.Attribute.Create,
		update: h.Attribute.Update,
		remove: h.Attribute.Delete,
	})
	attribute.GET("/list", h.Attribute.List)

	tag := resource(catalog.Group("prodTag", "/prod/prodTag"), "prod:prodTag", crud{
		page:   h.ProdTag.Page,
		info:   h.ProdTag.GetByID,
		create: h.ProdTag.Create,
		update: h.ProdTag.Update,
		remove: h.ProdTag.Delete,
	})
	tag.GET("/listTagList", h.ProdTag.ListEnabled)

	resource(catalog.Group("prodComm", "/prod/prodComm"), "prod:prodComm", crud{
		page:   h.ProdComm.Page,
		info:   h.ProdComm.GetByID,
		update: h.ProdComm.Reply,
		remove: h.ProdComm.Delete,
	})

	prod := resource(catalog.Group("prod", "/prod/prod"), "prod:prod", crud{
		page:   h.Product.Page,
		info:   h.Product.GetByID,
		create: h.Product.Create,
		update: h.Product.Update,
		remove: h.Product.DeleteBatch,
		batch:  true,
	})
	prod.Handle(http.MethodPut, "/prodStatus", "prod:prod:update", h.Product.SetStatus)
	return catalog
}

func systemRoutes(h *Handlers, guard func(string) gin.HandlerFunc) *DomainGroup {
	sys := NewDomainGroup("system", "/sys").Guard(guard)

	user := resource(sys.Group("user", "/user"), "sys:user", crud{
		page:   h.SysUser.Page,
		info:   h.SysUser.GetByID,
		create: h.SysUser.Create,
		update: h.SysUser.Update,
		remove: h.SysUser.DeleteBatch,
		batch:  true,
	})
	user.GET("/info", h.SysUser.Current)
	user.POST("/password", h.SysUser.ChangePassword)

	role := resource(sys.Group("role", "/role"), "sys:role", crud{
		page:   h.SysRole.Page,
		info:   h.SysRole.GetByID,
		create: h.SysRole.Create,
		update: h.SysRole.Update,
		remove: h.SysRole.DeleteBatch,
		batch:  true,
	})
	role.GET("/list", h.SysRole.List)

	menu := resource(sys.Group("menu", "/menu"), "sys:menu", crud{
		info:   h.SysMenu.GetByID,
		create: h.SysMenu.Create,
		update: h.SysMenu.Update,
		remove: h.SysMenu.Delete,
	})
	menu.GET("/nav", h.SysMenu.Nav)
	menu.Handle(http.MethodGet, "/list", "sys:menu:list", h.SysMenu.List)
	menu.Handle(http.MethodGet, "/table", "sys:menu:list", h.SysMenu.Tree)
	return sys
}

func uploadRoutes(h *Handlers, guard func(string) gin.HandlerFunc) *DomainGroup {
	upload := NewDomainGroup("upload", "").Guard(guard)
	upload.POST(UploadPath, h.Upload.Element)
	return upload
}
