package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/internal/container"
	handlers "github.com/greenkart/greenkart-api/internal/interface/http"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
)

// DeliveryModule mounts the handoff routes used by delivery partners.
type DeliveryModule struct {
	Handler *handlers.DeliveryHandler
	Auth    gin.HandlerFunc
}

func NewDeliveryModule(h *handlers.DeliveryHandler, auth gin.HandlerFunc) *DeliveryModule {
	return &DeliveryModule{Handler: h, Auth: auth}
}

func (m *DeliveryModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	delivery := rg.Group("/delivery")
	delivery.Use(m.Auth)
	delivery.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		delivery.GET("/orders", m.Handler.ListShipped)
		delivery.GET("/orders/delivered", m.Handler.ListDelivered)
		delivery.GET("/orders/:orderId", m.Handler.GetDetails)
		delivery.PATCH("/orders/:orderId/deliver", m.Handler.Deliver)
		delivery.PATCH("/orders/:orderId/cancel", m.Handler.Cancel)
	}
}
