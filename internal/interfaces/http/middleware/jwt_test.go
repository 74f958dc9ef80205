package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Darkingtail/mall4r/internal/infrastructure/auth"
	"github.com/Darkingtail/mall4r/internal/infrastructure/config"
	"github.com/Darkingtail/mall4r/internal/infrastructure/logger"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

func newTestTokenPair(t *testing.T, jwtService *auth.JWTService) *auth.TokenPair {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      42,
		Username:    "operator",
		Permissions: []string{"admin:area:page", "admin:area:save"},
	})
	require.NoError(t, err)
	return pair
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func newJWTRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   GetJWTUserID(c),
			"username": GetJWTUsername(c),
			"ctxUser":  logger.GetUserID(c.Request.Context()),
			"perms":    GetJWTPermissions(c),
		})
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestJWTAuthMiddleware_ValidBearerToken(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTestTokenPair(t, jwtService)
	router := newJWTRouter(DefaultJWTConfig(jwtService))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		UserID   int64    `json:"userId"`
		Username string   `json:"username"`
		CtxUser  string   `json:"ctxUser"`
		Perms    []string `json:"perms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "operator", body.Username)
	assert.Equal(t, "42", body.CtxUser)
	assert.Equal(t, []string{"admin:area:page", "admin:area:save"}, body.Perms)
}

func TestJWTAuthMiddleware_CookieFallback(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTestTokenPair(t, jwtService)
	router := newJWTRouter(DefaultJWTConfig(jwtService))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: "Authorization", Value: pair.AccessToken})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTestTokenPair(t, jwtService)

	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test-issuer",
	})
	expiredPair, err := expired.GenerateTokenPair(auth.GenerateTokenInput{UserID: 42, Username: "operator"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", dto.ErrCodeUnauthorized},
		{"garbage token", "Bearer not-a-jwt", dto.ErrCodeTokenInvalid},
		{"refresh token used as access", "Bearer " + pair.RefreshToken, dto.ErrCodeTokenInvalid},
		{"expired", "Bearer " + expiredPair.AccessToken, dto.ErrCodeTokenExpired},
	}

	router := newJWTRouter(DefaultJWTConfig(jwtService))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := newJWTRouter(DefaultJWTConfig(newTestJWTService()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Blacklist(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	cfg := DefaultJWTConfig(jwtService)
	cfg.TokenBlacklist = blacklist
	router := newJWTRouter(cfg)

	do := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("revoked jti", func(t *testing.T) {
		pair := newTestTokenPair(t, jwtService)
		claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))

		rec := do(pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, rec))
	})

	t.Run("user invalidated", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: 7, Username: "disabled"})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, do(pair.AccessToken).Code)

		require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), "7", time.Hour))

		rec := do(pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, rec))
	})
}

func TestGetJWTHelpers_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetJWTClaims(c))
	assert.Equal(t, int64(0), GetJWTUserID(c))
	assert.Empty(t, GetJWTUsername(c))
	assert.Nil(t, GetJWTPermissions(c))
}
