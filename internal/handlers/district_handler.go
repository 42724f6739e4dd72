package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/landgrid/internal/districts"
	apierrors "github.com/stwalsh4118/landgrid/internal/errors"
	"github.com/stwalsh4118/landgrid/internal/services"
)

// DefaultNearRadius is the radius, in world units, used to flag nearby
// districts when the request gives none.
const DefaultNearRadius = 100.0

// DistrictHandler serves the district map and the minimap projection.
type DistrictHandler struct {
	service services.DistrictService
}

// NewDistrictHandler creates a new DistrictHandler instance.
func NewDistrictHandler(service services.DistrictService) *DistrictHandler {
	return &DistrictHandler{service: service}
}

// NearestRequest represents the query parameters for the nearest endpoint.
type NearestRequest struct {
	X      *float64 `form:"x" binding:"required"`
	Z      *float64 `form:"z" binding:"required"`
	Radius *float64 `form:"radius" binding:"omitempty,gte=0"`
	Limit  int      `form:"limit" binding:"omitempty,min=1,max=50"`
}

// MinimapRequest is a point on the unit-square minimap.
type MinimapRequest struct {
	U *float64 `form:"u" binding:"required"`
	V *float64 `form:"v" binding:"required"`
}

// DistrictListResponse represents the response for the list endpoint.
type DistrictListResponse struct {
	Districts []districts.Definition `json:"districts"`
	Count     int                    `json:"count"`
}

// DistrictResponse represents the response for single-district endpoints.
type DistrictResponse struct {
	District *districts.Definition `json:"district"`
}

// NearestResponse represents the response for the nearest endpoint.
type NearestResponse struct {
	Districts []services.NearbyDistrict `json:"districts"`
	Radius    float64                   `json:"radius"`
	Count     int                       `json:"count"`
}

// List handles GET /api/v1/districts.
func (h *DistrictHandler) List(c *gin.Context) {
	list := h.service.List()
	c.JSON(http.StatusOK, DistrictListResponse{Districts: list, Count: len(list)})
}

// AtPoint handles GET /api/v1/districts/at-point.
// Points in neutral territory return 404.
func (h *DistrictHandler) AtPoint(c *gin.Context) {
	var req PointRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	d, err := h.service.At(*req.X, *req.Z)
	if err != nil {
		serviceError(c, err, "Failed to classify point")
		return
	}

	c.JSON(http.StatusOK, DistrictResponse{District: d})
}

// Get handles GET /api/v1/districts/:id.
func (h *DistrictHandler) Get(c *gin.Context) {
	d, err := h.service.Get(c.Param("id"))
	if err != nil {
		serviceError(c, err, "Failed to load district")
		return
	}

	c.JSON(http.StatusOK, DistrictResponse{District: d})
}

// Nearest handles GET /api/v1/districts/nearest.
func (h *DistrictHandler) Nearest(c *gin.Context) {
	var req NearestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = services.DefaultNearestLimit
	}
	radius := DefaultNearRadius
	if req.Radius != nil {
		radius = *req.Radius
	}

	nearest, err := h.service.Nearest(*req.X, *req.Z, limit, radius)
	if err != nil {
		serviceError(c, err, "Failed to rank districts")
		return
	}

	c.JSON(http.StatusOK, NearestResponse{
		Districts: nearest,
		Radius:    radius,
		Count:     len(nearest),
	})
}

// GeoJSON handles GET /api/v1/districts/geojson.
func (h *DistrictHandler) GeoJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GeoJSON())
}

// Project handles GET /api/v1/minimap/project.
func (h *DistrictHandler) Project(c *gin.Context) {
	var req PointRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	p, err := h.service.Project(*req.X, *req.Z)
	if err != nil {
		serviceError(c, err, "Failed to project point")
		return
	}

	c.JSON(http.StatusOK, p)
}

// Unproject handles GET /api/v1/minimap/unproject.
func (h *DistrictHandler) Unproject(c *gin.Context) {
	var req MinimapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	pos, err := h.service.Unproject(*req.U, *req.V)
	if err != nil {
		serviceError(c, err, "Failed to unproject point")
		return
	}

	c.JSON(http.StatusOK, pos)
}

