package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/internal/container"
	handlers "github.com/greenkart/greenkart-api/internal/interface/http"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
)

// OrderModule mounts the customer order routes.
type OrderModule struct {
	Handler *handlers.OrderHandler
	Auth    gin.HandlerFunc
}

func NewOrderModule(h *handlers.OrderHandler, auth gin.HandlerFunc) *OrderModule {
	return &OrderModule{Handler: h, Auth: auth}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	orders := rg.Group("/orders")
	orders.Use(m.Auth)
	orders.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		orders.POST("/", m.Handler.Create)
		orders.GET("/", m.Handler.List)
		orders.GET("/:orderId", m.Handler.Get)
		orders.PATCH("/:orderId/cancel", m.Handler.Cancel)
	}
}
