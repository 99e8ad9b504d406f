package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"kyc-bot.backend/internal/interfaces/http/handlers"
	"kyc-bot.backend/internal/interfaces/http/middleware"
)

func newRouter(health *handlers.HealthHandler, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerHealthRoutes(r, health)
	registerMetricsRoute(r, gatherer)
	return r
}

func registerHealthRoutes(r *gin.Engine, health *handlers.HealthHandler) {
	r.GET("/", health.Root)
	r.GET("/health", health.Health)
}

func registerMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
