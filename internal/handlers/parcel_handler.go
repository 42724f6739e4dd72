package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/landgrid/internal/errors"
	"github.com/stwalsh4118/landgrid/internal/land"
	"github.com/stwalsh4118/landgrid/internal/middleware"
	"github.com/stwalsh4118/landgrid/internal/services"
	"github.com/stwalsh4118/landgrid/internal/world"
)

// ParcelHandler handles parcel-related HTTP requests.
type ParcelHandler struct {
	service          services.ParcelService
	defaultBasePrice float64
}

// NewParcelHandler creates a ParcelHandler. defaultBasePrice is quoted when
// the quote endpoint receives no base_price.
func NewParcelHandler(service services.ParcelService, defaultBasePrice float64) *ParcelHandler {
	return &ParcelHandler{
		service:          service,
		defaultBasePrice: defaultBasePrice,
	}
}

// PointRequest is a world position passed as query parameters.
// Pointers let an explicit 0 pass the required check.
type PointRequest struct {
	X *float64 `form:"x" binding:"required"`
	Z *float64 `form:"z" binding:"required"`
}

// QuoteRequest represents the query parameters for the quote endpoint.
type QuoteRequest struct {
	BasePrice *float64 `form:"base_price" binding:"omitempty,gte=0"`
}

// ParcelResponse represents the response for single-parcel endpoints.
type ParcelResponse struct {
	Parcel *services.ParcelReport `json:"parcel"`
}

// AdjacentResponse represents the response for the adjacent endpoint.
type AdjacentResponse struct {
	Parcels  []services.ParcelReport `json:"parcels"`
	ParcelID world.ParcelID          `json:"parcel_id"`
	Count    int                     `json:"count"`
}

// QuoteResponse represents the response for the quote endpoint.
type QuoteResponse struct {
	Quote    *land.Quote    `json:"quote"`
	ParcelID world.ParcelID `json:"parcel_id"`
}

// AtPoint handles GET /api/v1/parcels/at-point.
// Positions off the grid resolve to the nearest edge parcel.
func (h *ParcelHandler) AtPoint(c *gin.Context) {
	var req PointRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Processing parcel at-point request", map[string]interface{}{
			"x": *req.X,
			"z": *req.Z,
		})
	}

	report, err := h.service.DescribeAt(c.Request.Context(), *req.X, *req.Z)
	if err != nil {
		serviceError(c, err, "Failed to describe parcel")
		return
	}

	c.JSON(http.StatusOK, ParcelResponse{Parcel: report})
}

// Get handles GET /api/v1/parcels/:id.
func (h *ParcelHandler) Get(c *gin.Context) {
	id, ok := parcelIDParam(c)
	if !ok {
		return
	}

	report, err := h.service.Describe(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "Failed to describe parcel")
		return
	}

	c.JSON(http.StatusOK, ParcelResponse{Parcel: report})
}

// Adjacent handles GET /api/v1/parcels/:id/adjacent.
func (h *ParcelHandler) Adjacent(c *gin.Context) {
	id, ok := parcelIDParam(c)
	if !ok {
		return
	}

	reports, err := h.service.Adjacent(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "Failed to describe adjacent parcels")
		return
	}

	c.JSON(http.StatusOK, AdjacentResponse{
		ParcelID: id,
		Parcels:  reports,
		Count:    len(reports),
	})
}

// Quote handles GET /api/v1/parcels/:id/quote.
func (h *ParcelHandler) Quote(c *gin.Context) {
	id, ok := parcelIDParam(c)
	if !ok {
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	basePrice := h.defaultBasePrice
	if req.BasePrice != nil {
		basePrice = *req.BasePrice
	}

	quote, err := h.service.Quote(c.Request.Context(), id, basePrice)
	if err != nil {
		serviceError(c, err, "Failed to quote parcel")
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{ParcelID: id, Quote: quote})
}
