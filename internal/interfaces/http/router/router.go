package router

import (
	"github.com/gasdepot/backend/internal/infrastructure/config"
	"github.com/gasdepot/backend/internal/interfaces/http/handler"
	"github.com/gasdepot/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles the handlers the router wires up
type Handlers struct {
	System   *handler.SystemHandler
	Customer *handler.CustomerHandler
	Address  *handler.AddressHandler
	Product  *handler.ProductHandler
}

// New builds the gin engine with middleware and all API routes registered
func New(cfg *config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}
	engine.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.Recovery(logger),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		}),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	partner := api.Group("/partner")
	{
		customers := partner.Group("/customers")
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/code/:code", h.Customer.GetByCode)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/addresses", h.Address.ListByCustomer)

		addresses := partner.Group("/addresses")
		addresses.POST("", h.Address.Create)
		addresses.GET("/:id", h.Address.Get)
		addresses.PUT("/:id", h.Address.Update)
		addresses.POST("/:id/set-primary", h.Address.SetPrimary)
		addresses.DELETE("/:id", h.Address.Delete)
	}

	catalog := api.Group("/catalog")
	{
		products := catalog.Group("/products")
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/stats", h.Product.Stats)
		products.POST("/bulk-status", h.Product.BulkSetStatus)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.POST("/:id/mark-obsolete", h.Product.MarkObsolete)
		products.POST("/:id/reactivate", h.Product.Reactivate)
	}

	return engine
}
