package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stwalsh4118/landgrid/internal/config"
	"github.com/stwalsh4118/landgrid/internal/database"
	"github.com/stwalsh4118/landgrid/internal/districts"
	"github.com/stwalsh4118/landgrid/internal/handlers"
	"github.com/stwalsh4118/landgrid/internal/land"
	"github.com/stwalsh4118/landgrid/internal/logger"
	"github.com/stwalsh4118/landgrid/internal/middleware"
	"github.com/stwalsh4118/landgrid/internal/repository"
	"github.com/stwalsh4118/landgrid/internal/services"
	"github.com/stwalsh4118/landgrid/internal/world"
)

const (
	shutdownTimeout = 30 * time.Second
	metricNamespace = "landgrid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env)
	log.Info("Starting Landgrid API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	w, err := loadWorld(cfg.World)
	if err != nil {
		log.Fatal("Failed to load world", err, map[string]interface{}{
			"districts_file": cfg.World.DistrictsFile,
			"pricing_file":   cfg.World.PricingFile,
		})
	}
	log.Info("World loaded", map[string]interface{}{
		"grid_size":  w.Grid.Size,
		"cell_size":  w.Grid.CellSize,
		"districts":  w.Districts.Len(),
		"base_price": w.BasePrice,
	})

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to prepare database schema", err, nil)
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// RequestID -> Logger -> Recovery -> CORS -> Metrics
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		metrics, err := middleware.NewMetrics(metricNamespace, reg)
		if err != nil {
			log.Fatal("Failed to register metrics", err, nil)
		}
		router.Use(metrics.Handler())
		metrics.RegisterEndpoint(router)
	}

	claimRepo := repository.NewParcelClaimRepository(db)
	parcelService := services.NewParcelService(w, claimRepo, log)
	districtService := services.NewDistrictService(w.Districts, log)

	handlers.RegisterRoutes(router,
		handlers.NewHealthHandler(db, cfg.Server.Env, w.Grid, w.Districts.Len()),
		handlers.NewParcelHandler(parcelService, w.BasePrice),
		handlers.NewDistrictHandler(districtService),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

// loadWorld builds the grid and reads the district and pricing tables,
// falling back to the built-in tables when no file is configured.
func loadWorld(cfg config.WorldConfig) (services.World, error) {
	grid, err := world.NewGrid(cfg.GridSize, cfg.CellSize)
	if err != nil {
		return services.World{}, err
	}

	dmap := districts.Canonical()
	if cfg.DistrictsFile != "" {
		if dmap, err = districts.LoadFile(cfg.DistrictsFile); err != nil {
			return services.World{}, err
		}
	}

	pricing := land.DefaultPricing()
	if cfg.PricingFile != "" {
		if pricing, err = land.LoadPricingFile(cfg.PricingFile); err != nil {
			return services.World{}, err
		}
	}

	return services.NewWorld(grid, dmap, pricing, cfg.BasePrice)
}
