package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	httpMetrics "vendorHub/app/echo-server/metrics"
	"vendorHub/app/echo-server/router"
	"vendorHub/business/documenttype"
	userService "vendorHub/business/user"
	"vendorHub/business/vendorrequest"
	"vendorHub/business/verification"
	"vendorHub/internal/middleware"
	psqlRepo "vendorHub/internal/repository/postgres"
	redisRepo "vendorHub/internal/repository/redis"
	"vendorHub/internal/rest"
	"vendorHub/pkg/config"
	"vendorHub/pkg/database"
	redisDB "vendorHub/pkg/database/redis"
	"vendorHub/pkg/logger"
	"vendorHub/pkg/metrics"
	"vendorHub/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting VendorHub", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey, cfg.JWT.TTL)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisDB.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	logger.Info("Redis connected successfully")

	metrics.Init()
	httpMetrics.Init()

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	storeRepo := psqlRepo.NewStoreRepository(db)
	documentRepo := psqlRepo.NewDocumentRepository(db)
	documentTypeRepo := psqlRepo.NewDocumentTypeRepository(db)
	eventRepo := psqlRepo.NewVerificationEventRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)
	transactor := psqlRepo.NewTransactor(db)

	// Init service
	userSvc := userService.NewUserService(userRepo, sessionRepo, validate)
	vendorRequestSvc := vendorrequest.NewVendorRequestService(userRepo, storeRepo, documentRepo, transactor, validate)
	verificationSvc := verification.NewVerificationService(userRepo, storeRepo, documentRepo, eventRepo, transactor, verification.Options{
		IncludePendingVendors: cfg.Verification.IncludePendingVendors,
		MaxPageSize:           cfg.Verification.MaxPageSize,
	})
	documentTypeSvc := documenttype.NewDocumentTypeService(documentTypeRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	vendorRequestHandler := rest.NewVendorRequestHandler(vendorRequestSvc)
	verificationHandler := rest.NewVerificationHandler(verificationSvc)
	documentTypeHandler := rest.NewDocumentTypeHandler(documentTypeSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(userSvc)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupVendorRoutes(api, vendorRequestHandler, authRequired)
	router.SetupAdminVerificationRoutes(api, verificationHandler, authRequired)
	router.SetupDocumentTypeRoutes(api, documentTypeHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := database.ClosePostgres(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	if err := redisDB.CloseRedisClient(redisClient); err != nil {
		logger.Error("Failed to close redis", "error", err)
	}

	logger.Info("Server stopped")
}
