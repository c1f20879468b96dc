package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/internal/container"
	handlers "github.com/greenkart/greenkart-api/internal/interface/http"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
)

// UploadModule mounts the media endpoints. All routes require auth; the
// signature endpoint is limited harder since every call mints a credential.
type UploadModule struct {
	Handler *handlers.UploadHandler
	Auth    gin.HandlerFunc
}

func NewUploadModule(h *handlers.UploadHandler, auth gin.HandlerFunc) *UploadModule {
	return &UploadModule{Handler: h, Auth: auth}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	signLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUserID(), nil)

	uploads := rg.Group("/uploads")
	uploads.Use(m.Auth)
	uploads.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		uploads.POST("/signature", signLimiter, m.Handler.SignedUpload)
		uploads.POST("/", m.Handler.Upload)
		uploads.DELETE("/:publicId", m.Handler.DeleteOne)
		uploads.DELETE("/", m.Handler.DeleteMany)
	}
}
