package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/internal/container"
	handlers "github.com/greenkart/greenkart-api/internal/interface/http"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
)

// CatalogModule mounts categories, products and varieties. Reads are public;
// writes sit behind the admin guard.
type CatalogModule struct {
	Categories *handlers.CategoryHandler
	Products   *handlers.ProductHandler
	Auth       gin.HandlerFunc
}

func NewCatalogModule(categories *handlers.CategoryHandler, products *handlers.ProductHandler, auth gin.HandlerFunc) *CatalogModule {
	return &CatalogModule{Categories: categories, Products: products, Auth: auth}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	readLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/categories", readLimiter, m.Categories.List)
	rg.GET("/products", readLimiter, m.Products.List)

	categories := rg.Group("/categories")
	categories.Use(m.Auth, middleware.RequireAdmin())
	{
		categories.POST("/", m.Categories.Create)
		categories.PUT("/:id", m.Categories.Update)
		categories.DELETE("/:id", m.Categories.Delete)
	}

	products := rg.Group("/products")
	products.Use(m.Auth, middleware.RequireAdmin())
	{
		products.POST("/", m.Products.Create)
		products.PUT("/:productId", m.Products.Update)
		products.DELETE("/:productId", m.Products.Delete)

		products.POST("/:productId/varieties", m.Products.AddVariety)
		products.PUT("/:productId/varieties/:varietyId", m.Products.UpdateVariety)
		products.DELETE("/:productId/varieties/:varietyId", m.Products.DeleteVariety)
	}
}
