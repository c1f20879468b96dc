package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/internal/container"
	handlers "github.com/greenkart/greenkart-api/internal/interface/http"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
)

// AdminModule mounts user management and order administration behind the
// admin guard.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Auth    gin.HandlerFunc
}

func NewAdminModule(h *handlers.AdminHandler, auth gin.HandlerFunc) *AdminModule {
	return &AdminModule{Handler: h, Auth: auth}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	admin := rg.Group("/admin")
	admin.Use(m.Auth, middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.PATCH("/users/:id/role", m.Handler.UpdateUserRole)
		admin.PATCH("/users/:id/block", m.Handler.BlockUser)

		admin.GET("/orders", m.Handler.ListOrders)
		admin.GET("/orders/stats", m.Handler.OrderStats)
		admin.GET("/orders/:orderId", m.Handler.GetOrder)
		admin.PATCH("/orders/:orderId/status", m.Handler.UpdateOrderStatus)
		admin.DELETE("/orders/:orderId", m.Handler.DeleteOrder)
	}
}
