package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/ecommerce-api/internal/config"
	"github.com/iliyamo/ecommerce-api/internal/database"
	"github.com/iliyamo/ecommerce-api/internal/handler"
	"github.com/iliyamo/ecommerce-api/internal/logger"
	"github.com/iliyamo/ecommerce-api/internal/metrics"
	"github.com/iliyamo/ecommerce-api/internal/middleware"
	"github.com/iliyamo/ecommerce-api/internal/queue"
	"github.com/iliyamo/ecommerce-api/internal/repository"
	"github.com/iliyamo/ecommerce-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		zlog.Fatal("database open failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		zlog.Warn("redis unavailable, response cache and rate limiting disabled")
	}

	categories := repository.NewCategoryRepo(db)
	products := repository.NewProductRepo(db)
	users := repository.NewUserRepo(db)
	orders := repository.NewOrderRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID)
	e.Use(metrics.Middleware)

	router.Register(e, router.Deps{
		Auth:      handler.NewAuthHandler(cfg, users, zlog),
		Category:  handler.NewCategoryHandler(categories, products, zlog),
		Product:   handler.NewProductHandler(products, categories, orders, zlog),
		Order:     handler.NewOrderHandler(cfg, orders, zlog),
		JWTSecret: cfg.JWTSecret,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Redis:     rdb,
	})

	if cfg.AMQPURL != "" {
		go queue.StartOrderStatusConsumer(cfg.AMQPURL, zlog)
	}

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
