package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/landgrid/internal/errors"
	"github.com/stwalsh4118/landgrid/internal/middleware"
	"github.com/stwalsh4118/landgrid/internal/world"
)

const (
	// APIVersion is the current version of the API
	APIVersion = "0.1.0"
	// HealthCheckTimeout is the timeout for database health checks
	HealthCheckTimeout = 2 * time.Second
)

// Pinger is anything whose liveness can be probed, such as *database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check and readiness endpoints.
type HealthHandler struct {
	db        Pinger
	grid      world.Grid
	districts int
	startTime time.Time
	env       string
}

// NewHealthHandler creates a new HealthHandler instance.
// grid and districtCount are reported by the info endpoint.
func NewHealthHandler(db Pinger, env string, grid world.Grid, districtCount int) *HealthHandler {
	return &HealthHandler{
		db:        db,
		grid:      grid,
		districts: districtCount,
		startTime: time.Now(),
		env:       env,
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents the readiness check response.
// Code is set only when the service is not ready.
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Code     string `json:"code,omitempty"`
}

// WorldInfo describes the loaded world.
type WorldInfo struct {
	GridSize  int     `json:"grid_size"`
	CellSize  float64 `json:"cell_size"`
	Extent    float64 `json:"extent"`
	Parcels   int     `json:"parcels"`
	Districts int     `json:"districts"`
}

// InfoResponse represents the API information response.
type InfoResponse struct {
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	Uptime      string    `json:"uptime"`
	World       WorldInfo `json:"world"`
}

// Health handles GET /health. It checks no dependencies.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// Ready handles GET /health/ready.
// Returns 200 when the database answers a ping, 503 otherwise.
func (h *HealthHandler) Ready(c *gin.Context) {
	// Create context with timeout for database ping
	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
	defer cancel()

	// Check database connectivity
	if err := h.db.Ping(ctx); err != nil {
		// Logger is set by the logger middleware
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Database health check failed", err, map[string]interface{}{
				"timeout": HealthCheckTimeout.String(),
			})
		}

		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status:   "not_ready",
			Database: "disconnected",
			Code:     apierrors.ErrDatabaseConnection,
		})
		return
	}

	c.JSON(http.StatusOK, ReadyResponse{
		Status:   "ready",
		Database: "connected",
	})
}

// Info handles GET /api/v1/info.
// Returns API metadata together with the dimensions of the loaded world.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Version:     APIVersion,
		Environment: h.env,
		Uptime:      formatUptime(time.Since(h.startTime)),
		World: WorldInfo{
			GridSize:  h.grid.Size,
			CellSize:  h.grid.CellSize,
			Extent:    h.grid.Extent(),
			Parcels:   h.grid.ParcelCount(),
			Districts: h.districts,
		},
	})
}

// formatUptime formats a duration into a human-readable string.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
