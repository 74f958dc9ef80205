package handler

import (
	"net/http"
	"strconv"
	"testing"

	regionapp "github.com/Darkingtail/mall4r/internal/application/region"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/infrastructure/persistence"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/Darkingtail/mall4r/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAreaEngine(t *testing.T) *gin.Engine {
	t.Helper()

	engine, db := newTestEngine(t)
	h := NewAreaHandler(regionapp.NewAreaService(persistence.NewGormAreaRepository(db), zap.NewNop()))
	g := engine.Group("/admin/area")
	g.GET("/page", h.Page)
	g.GET("/list", h.List)
	g.GET("/listByPid", h.ListByPid)
	g.GET("/tree", h.Tree)
	g.GET("/info/:id", h.GetByID)
	g.POST("", h.Create)
	g.PUT("", h.Update)
	g.DELETE("/:id", h.Delete)
	return engine
}

func createArea(t *testing.T, engine *gin.Engine, name string, parentID int64) region.Area {
	t.Helper()

	w := testutil.Do(t, engine, testutil.Request{
		Method: http.MethodPost,
		Path:   "/admin/area",
		Body:   map[string]any{"areaName": name, "parentId": parentID, "level": 9},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DecodeEnvelope[region.Area](t, w).Data
}

func TestAreaHandler_CRUD(t *testing.T) {
	engine := newAreaEngine(t)

	province := createArea(t, engine, "广东省", 0)
	city := createArea(t, engine, "广州市", province.AreaID)
	district := createArea(t, engine, "天河区", city.AreaID)

	t.Run("derives the level from the parent", func(t *testing.T) {
		assert.Equal(t, region.LevelProvince, province.Level)
		assert.Equal(t, region.LevelCity, city.Level)
		assert.Equal(t, region.LevelDistrict, district.Level)
	})

	t.Run("lists children by pid", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Path: "/admin/area/listByPid?pid=" + strconv.FormatInt(province.AreaID, 10)})
		require.Equal(t, http.StatusOK, w.Code)
		env := testutil.DecodeEnvelope[[]region.Area](t, w)
		require.Len(t, env.Data, 1)
		assert.Equal(t, "广州市", env.Data[0].AreaName)

		w = testutil.Do(t, engine, testutil.Request{Path: "/admin/area/listByPid"})
		env = testutil.DecodeEnvelope[[]region.Area](t, w)
		require.Len(t, env.Data, 1)
		assert.Equal(t, province.AreaID, env.Data[0].AreaID)
	})

	t.Run("pages with a name filter", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Path: "/admin/area/page?current=1&size=2&areaName=州"})
		require.Equal(t, http.StatusOK, w.Code)
		env := testutil.DecodeEnvelope[shared.Paginated[region.Area]](t, w)
		assert.Equal(t, int64(1), env.Data.Total)
		assert.Equal(t, 2, env.Data.Size)
		assert.Equal(t, 1, env.Data.Current)
	})

	t.Run("builds the tree", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Path: "/admin/area/tree"})
		env := testutil.DecodeEnvelope[[]region.Area](t, w)
		require.Len(t, env.Data, 1)
		require.Len(t, env.Data[0].Areas, 1)
		assert.Len(t, env.Data[0].Areas[0].Areas, 1)
	})

	t.Run("renames", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPut,
			Path:   "/admin/area",
			Body:   map[string]any{"areaId": city.AreaID, "areaName": "广州", "parentId": province.AreaID},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "广州", testutil.DecodeEnvelope[region.Area](t, w).Data.AreaName)
	})

	t.Run("deletes the subtree", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodDelete, Path: "/admin/area/" + strconv.FormatInt(city.AreaID, 10)})
		testutil.AssertSuccessResponse(t, w)

		w = testutil.Do(t, engine, testutil.Request{Path: "/admin/area/info/" + strconv.FormatInt(district.AreaID, 10)})
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}

func TestAreaHandler_Errors(t *testing.T) {
	engine := newAreaEngine(t)

	tests := []struct {
		name   string
		req    testutil.Request
		status int
		code   string
	}{
		{
			name:   "blank name",
			req:    testutil.Request{Method: http.MethodPost, Path: "/admin/area", Body: map[string]any{"areaName": "  "}},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidInput,
		},
		{
			name:   "missing parent",
			req:    testutil.Request{Method: http.MethodPost, Path: "/admin/area", Body: map[string]any{"areaName": "x", "parentId": 999}},
			status: http.StatusNotFound,
			code:   dto.ErrCodeNotFound,
		},
		{
			name:   "malformed id",
			req:    testutil.Request{Path: "/admin/area/info/abc"},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidInput,
		},
		{
			name:   "empty body",
			req:    testutil.Request{Method: http.MethodPut, Path: "/admin/area"},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.Do(t, engine, tt.req)
			testutil.AssertErrorResponse(t, w, tt.status, tt.code)
		})
	}
}
