package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"outtech105.com/busroute_server/controllers"
	"outtech105.com/busroute_server/models"
)

type Options struct {
	Provider      models.TransitDataProvider
	Periods       controllers.PeriodTable
	SearchTimeout time.Duration
	// nilの場合 /health はDBを確認しない
	DB Pinger
}

func NewEngine(opts Options) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), RequestID())

	periods := opts.Periods
	if periods == nil {
		periods = controllers.DefaultPeriods
	}

	engine.GET("/", IndexHandler)
	engine.GET("/health", HealthHandler(opts.DB))

	findPath := FindPathHandler(opts.Provider, periods, opts.SearchTimeout)
	routes := engine.Group("/routes")
	routes.GET("/status", StatusHandler)
	routes.POST("/find-path", findPath)
	routes.POST("/journey", findPath)
	routes.GET("", ListRoutes(opts.Provider, periods))
	routes.GET("/:id", GetRoute(opts.Provider))
	routes.GET("/:id/stops", GetRouteStops(opts.Provider))

	stops := engine.Group("/stops")
	stops.GET("", ListStops(opts.Provider))
	stops.GET("/:id", GetStop(opts.Provider))

	return engine
}
