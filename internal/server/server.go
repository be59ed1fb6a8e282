// Package server wires configuration, the document store, the cache, and
// the HTTP surface together.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modacart/catalog/app/controllers"
	"github.com/modacart/catalog/app/repositories"
	"github.com/modacart/catalog/app/routes"
	"github.com/modacart/catalog/app/services"
	"github.com/modacart/catalog/config"
	"github.com/modacart/catalog/pkg/cache"
	"github.com/modacart/catalog/pkg/database"
	"github.com/modacart/catalog/pkg/logger"
	"github.com/modacart/catalog/pkg/metrics"
	"github.com/modacart/catalog/pkg/middleware"
	"github.com/modacart/catalog/pkg/reqid"
	"github.com/modacart/catalog/pkg/router"
)

// BuildRouter assembles middleware, controllers, and routes on top of the
// already-connected database. Shared with the routes CLI command.
func BuildRouter() *router.Router {
	productRepo := repositories.NewProductRepository(database.DB)
	attributeRepo := repositories.NewAttributeRepository(database.DB)
	productService := services.NewProductService(productRepo, attributeRepo)

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	routes.RegisterAPI(r,
		controllers.NewProductController(productService),
		controllers.NewAttributeController(attributeRepo),
	)
	return r
}

// Start boots the service and blocks until SIGINT/SIGTERM, then shuts the
// HTTP server down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck

	// Redis is an optimization, not a dependency: run degraded on failure.
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, attribute cache disabled", "error", err)
	}

	// Mongo log sink, when configured, rides the same client.
	var sink *logger.MongoHandler
	if col := config.MongoLogCollection(); col != "" {
		sink = logger.NewMongoHandler(database.Collection(col))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), sink))
		defer sink.Close()
	}

	productRepo := repositories.NewProductRepository(database.DB)
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           BuildRouter().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
