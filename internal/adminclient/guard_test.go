package adminclient

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildRoutes(t *testing.T) {
	menus := []identity.SysMenu{
		{MenuID: 1, Name: "Products", Type: identity.MenuCatalog, List: []identity.SysMenu{
			{MenuID: 2, Name: "Product list", URL: "prod/prodList", Type: identity.MenuPage, List: []identity.SysMenu{
				{MenuID: 3, Name: "Delete", Perms: "prod:prod:delete", Type: identity.MenuButton},
			}},
			{MenuID: 4, Name: "Categories", URL: "/prod/category/", Type: identity.MenuPage},
			{MenuID: 5, Name: "Broken", Type: identity.MenuPage},
		}},
	}

	routes := BuildRoutes(menus)
	require.Len(t, routes, 2)
	assert.Equal(t, Route{Path: "/prod/prodList", Name: "Product list", MenuID: 2}, routes[0])
	assert.Equal(t, "/prod/category", routes[1].Path)
}

func TestGuard_ResolveWithoutSession(t *testing.T) {
	c, err := New("http://admin.example.com")
	require.NoError(t, err)
	g := NewGuard(c, NewAPI(c), nil)

	assert.Equal(t, Resolution{Route: loginRoute}, g.Resolve("/login"))
	assert.Equal(t, Resolution{Route: loginRoute, Redirected: true}, g.Resolve("/order"))

	t.Run("a token without the cookie is dropped", func(t *testing.T) {
		c.SetToken("stale")
		res := g.Resolve("/order")
		assert.True(t, res.Redirected)
		assert.Empty(t, c.Token())
	})

	t.Run("a client without a cookie jar keeps its token", func(t *testing.T) {
		bare, err := NewWithHTTPClient("http://admin.example.com", &http.Client{}, WithToken("held"))
		require.NoError(t, err)
		g := NewGuard(bare, NewAPI(bare), nil)
		res := g.Resolve("/")
		assert.Equal(t, HomePath, res.Route.Path)
		assert.Equal(t, "held", bare.Token())

		res = g.Resolve("/order")
		assert.True(t, res.NotFound, "no routes are loaded yet")
	})
}

func TestRenderPage(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	route := Route{Path: "/order", Name: "Orders"}

	view := RenderPage(zap.New(core), route, func() (any, error) {
		return []string{"row"}, nil
	})
	assert.Equal(t, route, view.Route)
	assert.Equal(t, []string{"row"}, view.Content)
	assert.NoError(t, view.Err)

	view = RenderPage(zap.New(core), route, func() (any, error) {
		return nil, errors.New("load failed")
	})
	assert.Equal(t, route, view.Route, "an error stays on the page")
	assert.EqualError(t, view.Err, "load failed")

	view = RenderPage(zap.New(core), route, func() (any, error) {
		var m map[string]int
		m["boom"]++
		return nil, nil
	})
	assert.Equal(t, ErrorPath, view.Route.Path)
	assert.Error(t, view.Err)
	assert.Equal(t, 1, logs.FilterMessage("page panicked").Len())

	assert.NotPanics(t, func() {
		RenderPage(nil, route, func() (any, error) { panic("no logger") })
	})
}
