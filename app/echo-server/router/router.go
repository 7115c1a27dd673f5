package router

import (
	"sukiMarket/internal/middleware"
	"sukiMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupRecommendationRoutes(e *echo.Echo, handler *rest.RecommendationHandler) {
	reco := e.Group("/recommendations", middleware.RequireAuthorization())
	reco.GET("/products", handler.Recommend)

	e.GET("/hi", handler.Greet, middleware.RequireAuthorization())
}

func SetupHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/ping", handler.Ping)
	e.GET("/healthz", handler.Healthz)
}
