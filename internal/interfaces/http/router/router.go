// Package router assembles the admin API: the route table, the permission
// each route requires and the gin engine serving them.
package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	basePath   string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithBasePath mounts every registrar under prefix. The default is the root.
func WithBasePath(prefix string) RouterOption {
	return func(r *Router) {
		r.basePath = "/" + strings.Trim(prefix, "/")
	}
}

// WithMiddleware runs mw in front of every registered route
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		basePath:   "/",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.basePath)
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Route describes one registered endpoint
type Route struct {
	Method     string
	Path       string
	Permission string
}

// DomainGroup collects the routes of one back-office resource
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
	guard      func(permission string) gin.HandlerFunc
}

type routeDefinition struct {
	method     string
	path       string
	permission string
	handlers   []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:       name,
		prefix:     prefix,
		routes:     make([]routeDefinition, 0),
		subgroups:  make([]*DomainGroup, 0),
		middleware: make([]gin.HandlerFunc, 0),
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Guard sets the middleware factory that enforces route permissions.
// Subgroups created afterwards inherit it.
func (dg *DomainGroup) Guard(guard func(permission string) gin.HandlerFunc) *DomainGroup {
	dg.guard = guard
	return dg
}

func (dg *DomainGroup) add(method, path, permission string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:     method,
		path:       path,
		permission: permission,
		handlers:   handlers,
	})
	return dg
}

// GET registers a GET route open to every authenticated operator
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, path, "", handlers)
}

// POST registers a POST route open to every authenticated operator
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, path, "", handlers)
}

// PUT registers a PUT route open to every authenticated operator
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPut, path, "", handlers)
}

// DELETE registers a DELETE route open to every authenticated operator
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, path, "", handlers)
}

// Handle registers a route that requires permission, such as
// "admin:area:save". An empty permission only requires authentication.
func (dg *DomainGroup) Handle(method, path, permission string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(method, path, permission, handlers)
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	subgroup.guard = dg.guard
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)

	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}

	for _, route := range dg.routes {
		handlers := route.handlers
		if route.permission != "" && dg.guard != nil {
			handlers = append([]gin.HandlerFunc{dg.guard(route.permission)}, handlers...)
		}
		group.Handle(route.method, route.path, handlers...)
	}

	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Routes lists the routes of this group and its subgroups with their full
// paths relative to the router base
func (dg *DomainGroup) Routes() []Route {
	return dg.collect("")
}

func (dg *DomainGroup) collect(parent string) []Route {
	base := joinPaths(parent, dg.prefix)
	routes := make([]Route, 0, len(dg.routes))
	for _, r := range dg.routes {
		routes = append(routes, Route{
			Method:     r.method,
			Path:       joinPaths(base, r.path),
			Permission: r.permission,
		})
	}
	for _, sub := range dg.subgroups {
		routes = append(routes, sub.collect(base)...)
	}
	return routes
}

func joinPaths(base, rel string) string {
	if rel == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rel, "/")
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
