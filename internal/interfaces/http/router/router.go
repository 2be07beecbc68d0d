// Package router assembles the gin engine and HTTP server.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openbom/bomsight/internal/config"
	"github.com/openbom/bomsight/internal/infrastructure/monitoring"
	"github.com/openbom/bomsight/internal/interfaces/http/handlers"
	"github.com/openbom/bomsight/pkg/logger"
)

// Handlers bundles the endpoint handlers the router wires up.
type Handlers struct {
	Health   *handlers.HealthHandler
	BOM      *handlers.BOMHandler
	Risk     *handlers.RiskHandler
	Region   *handlers.RegionHandler
	Export   *handlers.ExportHandler
	Snapshot *handlers.SnapshotHandler
}

// Router owns the gin engine and the HTTP server lifecycle.
type Router struct {
	engine   *gin.Engine
	config   *config.Config
	logger   logger.Logger
	metrics  *monitoring.Metrics
	tracing  *monitoring.TracingManager
	handlers Handlers
	server   *http.Server
}

// NewRouter creates the router.
func NewRouter(cfg *config.Config, log logger.Logger, metrics *monitoring.Metrics, tracing *monitoring.TracingManager, h Handlers) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		engine:   gin.New(),
		config:   cfg,
		logger:   log,
		metrics:  metrics,
		tracing:  tracing,
		handlers: h,
	}
}

// SetupRoutes registers middleware and routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(handlers.RecoveryMiddleware(r.logger))
	r.engine.Use(handlers.RequestIDMiddleware())
	if r.tracing != nil {
		r.engine.Use(handlers.TracingMiddleware(r.tracing))
	}
	r.engine.Use(handlers.LoggingMiddleware(r.logger))
	if r.metrics != nil {
		r.engine.Use(handlers.MetricsMiddleware(r.metrics))
	}

	corsConfig := cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/health/live", r.handlers.Health.LivenessCheck)
	r.engine.GET("/health/ready", r.handlers.Health.ReadinessCheck)

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Monitoring.PprofEnabled {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	{
		bom := v1.Group("/bom")
		{
			bom.GET("/rows", r.handlers.BOM.ListRows)
			bom.GET("/tree", r.handlers.BOM.GetTree)
		}
		risk := v1.Group("/risk")
		{
			risk.GET("/entities", r.handlers.Risk.ListEntities)
			risk.GET("/entities/:id", r.handlers.Risk.GetEntity)
		}
		v1.GET("/regions/rollup", r.handlers.Region.GetRollup)
		v1.GET("/export/rows.csv", r.handlers.Export.ExportRowsCSV)
		snapshot := v1.Group("/snapshot")
		{
			snapshot.GET("/summary", r.handlers.Snapshot.GetSummary)
			snapshot.POST("/refresh", r.handlers.Snapshot.Refresh)
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "The requested resource was not found",
		})
	})
}

// Start runs the HTTP server until it is shut down.
func (r *Router) Start() error {
	r.SetupRoutes()

	r.server = &http.Server{
		Addr:           r.config.Server.Addr(),
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(r.config.Server.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	r.logger.Info(context.Background(), "starting HTTP server", logger.Fields{"address": r.server.Addr})

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the HTTP server down gracefully.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.logger.Info(ctx, "stopping HTTP server")
	return r.server.Shutdown(ctx)
}

// Engine exposes the gin engine, used by tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
