package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	catalogapp "github.com/Darkingtail/mall4r/internal/application/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/infrastructure/persistence"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/Darkingtail/mall4r/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBrandHandler_FormAndJSON(t *testing.T) {
	engine, db := newTestEngine(t)
	h := NewBrandHandler(catalogapp.NewBrandService(persistence.NewGormBrandRepository(db)))
	engine.POST("/admin/brand", h.Create)
	engine.GET("/admin/brand/list", h.List)

	t.Run("accepts a form encoded body", func(t *testing.T) {
		form := url.Values{"brandName": {"apple"}, "status": {"1"}, "seq": {"2"}}
		req := httptest.NewRequest(http.MethodPost, "/admin/brand", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		b := testutil.DecodeEnvelope[catalog.Brand](t, w).Data
		assert.Equal(t, "apple", b.BrandName)
		assert.Equal(t, "A", b.FirstChar)
		assert.Equal(t, 2, b.Seq)
	})

	t.Run("accepts JSON", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPost,
			Path:   "/admin/brand",
			Body:   map[string]any{"brandName": "小米", "status": 0},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "#", testutil.DecodeEnvelope[catalog.Brand](t, w).Data.FirstChar)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPost,
			Path:   "/admin/brand",
			Body:   map[string]any{"brandName": "apple", "status": 1},
		})
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeAlreadyExists)
	})

	t.Run("lists enabled brands only", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Path: "/admin/brand/list"})
		env := testutil.DecodeEnvelope[[]catalog.Brand](t, w)
		require.Len(t, env.Data, 1)
		assert.Equal(t, "apple", env.Data[0].BrandName)
	})
}

func TestProductHandler_DeleteBatchNeedsIDs(t *testing.T) {
	engine, db := newTestEngine(t)
	h := NewProductHandler(catalogapp.NewProductService(
		persistence.NewGormProductRepository(db),
		persistence.NewGormCategoryRepository(db),
		zap.NewNop(),
	))
	engine.DELETE("/prod/prod", h.DeleteBatch)

	w := testutil.Do(t, engine, testutil.Request{Method: http.MethodDelete, Path: "/prod/prod", Body: []int64{}})
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)

	w = testutil.Do(t, engine, testutil.Request{Method: http.MethodDelete, Path: "/prod/prod", Body: map[string]any{"ids": 1}})
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidJSON)
}
