package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/internal/container"
	handlers "github.com/greenkart/greenkart-api/internal/interface/http"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
)

// UserModule mounts the per-user cart and address routes.
type UserModule struct {
	Cart      *handlers.CartHandler
	Addresses *handlers.AddressHandler
	Auth      gin.HandlerFunc
}

func NewUserModule(cart *handlers.CartHandler, addresses *handlers.AddressHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Cart: cart, Addresses: addresses, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	user := rg.Group("/user")
	user.Use(m.Auth)
	user.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		user.GET("/cart", m.Cart.Get)
		user.POST("/cart/items", m.Cart.AddItem)
		user.DELETE("/cart/items", m.Cart.RemoveItem)
		user.DELETE("/cart", m.Cart.Clear)

		user.POST("/addresses", m.Addresses.Create)
		user.GET("/addresses", m.Addresses.List)
		user.PUT("/addresses/:addressId", m.Addresses.Update)
		user.DELETE("/addresses/:addressId", m.Addresses.Delete)
	}
}
