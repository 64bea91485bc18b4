package router

import (
	"aidMatch/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommend")
	reco.POST("/:type", handler.Recommend)

	api.POST("/feedback", handler.Feedback)
	api.GET("/statistics", handler.Statistics)
	api.POST("/ab-test", handler.SetABTest)
}

func SetHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/health", handler.Health)
}

func SetMetricsRoutes(e *echo.Echo, metricsHandler echo.HandlerFunc) {
	e.GET("/metrics", metricsHandler)
}
