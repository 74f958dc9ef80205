package handler

import (
	"testing"

	"github.com/Darkingtail/mall4r/internal/interfaces/http/middleware"
	"github.com/Darkingtail/mall4r/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const testOperatorID int64 = 1

// newTestEngine returns a gin engine whose requests carry an authenticated
// operator, plus a fresh sqlite database
func newTestEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	engine := gin.New()
	engine.Use(middleware.RequestID(), func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, testOperatorID)
		c.Next()
	})
	return engine, testutil.NewTestDB(t)
}
