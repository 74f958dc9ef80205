package adminclient

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"go.uber.org/zap"
)

// Fixed routes that exist without a menu
const (
	LoginPath    = "/login"
	HomePath     = "/home"
	NotFoundPath = "/404"
	ErrorPath    = "/error"
)

// Route is one navigable page
type Route struct {
	Path   string
	Name   string
	MenuID int64
	Icon   string
}

var (
	loginRoute    = Route{Path: LoginPath, Name: "login"}
	homeRoute     = Route{Path: HomePath, Name: "home"}
	notFoundRoute = Route{Path: NotFoundPath, Name: "404"}
	errorRoute    = Route{Path: ErrorPath, Name: "error"}
)

// Resolution is where a navigation ends up
type Resolution struct {
	Route Route
	// Redirected is set when the requested path was replaced, e.g. by the
	// login page
	Redirected bool
	NotFound   bool
}

// BuildRoutes flattens the navigation tree into the page routes. Menu
// URLs such as "prod/prodList" become "/prod/prodList"; catalogs and
// buttons are not pages.
func BuildRoutes(menus []identity.SysMenu) []Route {
	var out []Route
	for _, m := range menus {
		if m.Type == identity.MenuPage && strings.TrimSpace(m.URL) != "" {
			out = append(out, Route{
				Path:   routePath(m.URL),
				Name:   m.Name,
				MenuID: m.MenuID,
				Icon:   m.Icon,
			})
		}
		out = append(out, BuildRoutes(m.List)...)
	}
	return out
}

func routePath(url string) string {
	p := strings.TrimSpace(url)
	p, _, _ = strings.Cut(p, "?")
	return "/" + strings.Trim(p, "/")
}

// Guard holds the session of the admin shell: the operator, the route
// table built from the server menu and the permission codes
type Guard struct {
	client *Client
	api    *API
	logger *zap.Logger

	mu          sync.RWMutex
	user        *identity.SysUser
	menus       []identity.SysMenu
	routes      map[string]Route
	authorities map[string]bool
}

// NewGuard creates a guard without a session
func NewGuard(client *Client, api *API, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		client: client,
		api:    api,
		logger: logger,
	}
}

// Login signs in and loads the navigation
func (g *Guard) Login(ctx context.Context, username, password string) error {
	if _, err := g.client.Login(ctx, username, password); err != nil {
		return err
	}
	return g.LoadSession(ctx)
}

// LoadSession loads the operator and the route table of the held token
func (g *Guard) LoadSession(ctx context.Context) error {
	nav, err := g.api.SysMenu.Nav(ctx)
	if err != nil {
		return fmt.Errorf("load navigation: %w", err)
	}
	user, err := g.api.SysUser.Current(ctx)
	if err != nil {
		return fmt.Errorf("load operator: %w", err)
	}

	routes := make(map[string]Route)
	for _, r := range BuildRoutes(nav.MenuList) {
		routes[r.Path] = r
	}
	authorities := make(map[string]bool, len(nav.Authorities))
	for _, a := range nav.Authorities {
		authorities[a] = true
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = user
	g.menus = nav.MenuList
	g.routes = routes
	g.authorities = authorities
	g.logger.Debug("session loaded",
		zap.String("username", user.Username),
		zap.Int("routes", len(routes)),
	)
	return nil
}

// Logout ends the session on the server and forgets it locally
func (g *Guard) Logout(ctx context.Context) error {
	err := g.client.Logout(ctx)
	g.reset()
	return err
}

func (g *Guard) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = nil
	g.menus = nil
	g.routes = nil
	g.authorities = nil
}

// User returns the logged in operator, nil without a session
func (g *Guard) User() *identity.SysUser {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

// Menus returns the navigation tree
func (g *Guard) Menus() []identity.SysMenu {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.menus
}

// HasPermission reports whether the operator holds perm, e.g. "prod:prod:delete"
func (g *Guard) HasPermission(perm string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authorities[perm]
}

// Resolve decides which page path leads to. A session whose cookie is gone
// is dropped first; without a token every page but the login page
// redirects to it.
func (g *Guard) Resolve(path string) Resolution {
	path = routePath(path)

	if g.client.Token() != "" && g.client.TracksCookies() && !g.client.HasSessionCookie() {
		g.logger.Info("session cookie expired, clearing session")
		g.client.ClearToken()
		g.reset()
	}

	if path == LoginPath {
		return Resolution{Route: loginRoute}
	}
	if g.client.Token() == "" {
		return Resolution{Route: loginRoute, Redirected: true}
	}

	switch path {
	case "/", HomePath:
		return Resolution{Route: homeRoute, Redirected: path != HomePath}
	case ErrorPath:
		return Resolution{Route: errorRoute}
	}

	g.mu.RLock()
	r, ok := g.routes[path]
	g.mu.RUnlock()
	if !ok {
		return Resolution{Route: notFoundRoute, NotFound: true}
	}
	return Resolution{Route: r}
}

// View is what the shell renders for a route
type View struct {
	Route   Route
	Content any
	Err     error
}

// RenderPage runs a page and turns a panic inside it into the error view.
// An ordinary error stays on the page.
func RenderPage(logger *zap.Logger, route Route, page func() (any, error)) (view View) {
	defer func() {
		if rec := recover(); rec != nil {
			if logger != nil {
				logger.Error("page panicked",
					zap.String("path", route.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
			}
			view = View{Route: errorRoute, Err: fmt.Errorf("page %s: %v", route.Path, rec)}
		}
	}()

	content, err := page()
	return View{Route: route, Content: content, Err: err}
}
