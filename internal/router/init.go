package router

import (
	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/internal/container"
	"github.com/greenkart/greenkart-api/internal/infrastructure/mongodb"
	handlers "github.com/greenkart/greenkart-api/internal/interface/http"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
	"github.com/greenkart/greenkart-api/internal/router/modules"
	"github.com/greenkart/greenkart-api/pkg/helpers"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	db := container.GetMongoDB()
	logger := container.GetLogger()

	users := mongodb.NewUserRepository(db)
	orders := mongodb.NewOrderRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	products := mongodb.NewProductRepository(db)
	varieties := mongodb.NewVarietyRepository(db)
	addresses := mongodb.NewAddressRepository(db)
	carts := mongodb.NewCartRepository(db)

	authGuard := middleware.RequireAuth(users, container.GetJWT())

	// Avoid a typed-nil publisher sneaking into the interface.
	var pub app.EmailPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := app.NewAuthService(
		users,
		helpers.NewOTPStore(container.GetRedis()),
		container.GetJWT(),
		pub,
		logger,
		cfg.OTPTTL,
		cfg.MailSendEnabled,
	)
	orderSvc := app.NewOrderService(orders, logger)
	catalogSvc := app.NewCatalogService(categories, products, varieties)
	cartSvc := app.NewCartService(carts)
	addressSvc := app.NewAddressService(addresses, users)
	userAdminSvc := app.NewUserAdminService(users)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger, container.GetCookies()), authGuard))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc), authGuard))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(userAdminSvc, orderSvc), authGuard))
	r.Add(modules.NewDeliveryModule(handlers.NewDeliveryHandler(orderSvc), authGuard))
	r.Add(modules.NewCatalogModule(handlers.NewCategoryHandler(catalogSvc), handlers.NewProductHandler(catalogSvc), authGuard))
	r.Add(modules.NewUserModule(handlers.NewCartHandler(cartSvc), handlers.NewAddressHandler(addressSvc), authGuard))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(container.GetMedia()), authGuard))
}
