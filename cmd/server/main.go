package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/gasdepot/backend/internal/application/catalog"
	partnerapp "github.com/gasdepot/backend/internal/application/partner"
	"github.com/gasdepot/backend/internal/infrastructure/cache"
	"github.com/gasdepot/backend/internal/infrastructure/config"
	"github.com/gasdepot/backend/internal/infrastructure/logger"
	"github.com/gasdepot/backend/internal/infrastructure/persistence"
	"github.com/gasdepot/backend/internal/interfaces/http/handler"
	"github.com/gasdepot/backend/internal/interfaces/http/middleware"
	"github.com/gasdepot/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	db, err := persistence.NewDatabase(&cfg.Database, cfg.Log.Level)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	listingCache, err := cache.NewListingCache(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize listing cache", zap.Error(err))
	}

	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	customerService := partnerapp.NewCustomerService(customerRepo, addressRepo, listingCache, cfg.Cache.TTL, log)
	addressService := partnerapp.NewAddressService(addressRepo, customerRepo, listingCache, log)
	productService := catalogapp.NewProductService(productRepo, listingCache, cfg.Cache.TTL, log)

	middleware.SetupValidator()

	engine := router.New(cfg, log, router.Handlers{
		System:   handler.NewSystemHandler(db, cfg.App.Name, log),
		Customer: handler.NewCustomerHandler(customerService, log),
		Address:  handler.NewAddressHandler(addressService, log),
		Product:  handler.NewProductHandler(productService, log),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
