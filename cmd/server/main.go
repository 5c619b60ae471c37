package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	_ "github.com/Himanshu1044/inventory-billing-system/docs" // swagger docs

	"github.com/Himanshu1044/inventory-billing-system/internal/auth"
	"github.com/Himanshu1044/inventory-billing-system/internal/cache"
	"github.com/Himanshu1044/inventory-billing-system/internal/config"
	"github.com/Himanshu1044/inventory-billing-system/internal/db"
	"github.com/Himanshu1044/inventory-billing-system/internal/handler"
	"github.com/Himanshu1044/inventory-billing-system/internal/model"
	"github.com/Himanshu1044/inventory-billing-system/internal/repository"
	"github.com/Himanshu1044/inventory-billing-system/internal/router"
	"github.com/Himanshu1044/inventory-billing-system/internal/service"
)

// @title Inventory & Billing Management System API
// @version 1.0
// @description Inventory and billing backend with JWT authentication and per-business product scoping.
// @host localhost:8000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Best effort; a missing .env file is fine outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Warn().Err(err).Msg("database close")
		}
	}()

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() {
		if err := cacheClient.Close(); err != nil {
			logger.Warn().Err(err).Msg("cache close")
		}
	}()

	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	productService := service.NewProductService(productRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, jwtService, authHandler, productHandler)

	addr := ":" + cfg.ServerPort
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server start")
	}
}
