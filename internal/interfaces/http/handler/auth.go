package handler

import (
	"net/http"
	"strings"

	identityapp "github.com/Darkingtail/mall4r/internal/application/identity"
	"github.com/Darkingtail/mall4r/internal/infrastructure/config"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, token refresh and logout
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, cookie config.CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = middleware.AuthHeaderKey
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Login handles POST /adminLogin
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}
	req.IP = c.ClientIP()

	pair, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, pair.AccessToken, int(pair.ExpiresIn))
	h.Success(c, pair)
}

// Refresh handles POST /token/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshInput
	if !h.bindJSON(c, &req) {
		return
	}
	pair, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, pair.AccessToken, int(pair.ExpiresIn))
	h.Success(c, pair)
}

// Logout handles POST /logOut
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetJWTClaims(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, "", -1)
	h.OK(c)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(sameSite(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, value, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
