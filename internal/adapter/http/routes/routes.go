package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"topspot/internal/adapter/http/middleware"
	"topspot/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Run wires the application and serves until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	deps, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(deps, logger)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if deps.worker != nil {
		if err := deps.worker.Start(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if deps.worker != nil {
			deps.worker.Shutdown()
		}
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newRouter(deps *dependencies, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	setMiddlewares(router, logger, middleware.NewMetrics(registry))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(router, deps, registry)
	return router
}

func getRoutes(router *gin.Engine, deps *dependencies, registry *prometheus.Registry) {
	addPingRoutes(router, registry)

	// Rotas publicas
	v1 := router.Group("/v1")
	addAuthRoutes(v1, deps.authHandler)
	addWebhookRoutes(v1, deps.paymentHandler)

	// Authenticated routes
	authed := v1.Group("", middleware.RequireAuth(deps.users))
	addUserRoutes(authed, deps.userHandler)
	addServiceRoutes(authed, deps.serviceHandler, deps.quoteHandler, deps.paymentHandler)
	addQuoteRoutes(authed, deps.quoteHandler)
	addContractorRoutes(authed, deps.serviceHandler, deps.quoteHandler, deps.userHandler)
	addAdminRoutes(authed, deps.adminHandler, deps.serviceHandler, deps.quoteHandler)
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger, metrics *middleware.Metrics) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(metrics.Handler())
	router.Use(middleware.Recovery(logger))
}
