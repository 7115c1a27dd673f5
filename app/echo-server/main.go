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

	"sukiMarket/app/echo-server/router"
	"sukiMarket/business/reco"
	"sukiMarket/internal/middleware"
	identityRepo "sukiMarket/internal/repository/identity"
	mysqlRepo "sukiMarket/internal/repository/mysql"
	"sukiMarket/internal/rest"
	"sukiMarket/pkg/config"
	"sukiMarket/pkg/database"
	"sukiMarket/pkg/logger"
	"sukiMarket/pkg/metrics"

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
	logger.Info("Starting Suki recommendation service", "version", cfg.App.Version)

	db, err := database.InitMySQL(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Init repo
	identity := identityRepo.NewIdentityRepository(identityRepo.IdentityConfig{
		BaseURL: cfg.Identity.BaseURL,
	})
	eventRepo := mysqlRepo.NewEventRepository(db)
	productRepo := mysqlRepo.NewProductRepository(db)
	dormitoryRepo := mysqlRepo.NewDormitoryRepository(db)
	enrichmentRepo := mysqlRepo.NewEnrichmentRepository(db)

	// Init service
	recoService := reco.NewRecoService(identity, eventRepo, productRepo, dormitoryRepo, enrichmentRepo)

	// Init handler
	recoHandler := rest.NewRecommendationHandler(recoService)
	healthHandler := rest.NewHealthHandler(db)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.TraceMiddleware())

	// Setup routes
	router.SetupRecommendationRoutes(e, recoHandler)
	router.SetupHealthRoutes(e, healthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

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

	logger.Info("Server stopped")
}
