package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/landgrid/internal/errors"
	"github.com/stwalsh4118/landgrid/internal/services"
	"github.com/stwalsh4118/landgrid/internal/world"
)

// serviceError maps a service error onto the API error envelope.
// Anything unrecognised is a 500 reported with fallback as the message.
func serviceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidParcelID):
		apierrors.OutOfBounds(c, err.Error(), nil)
	case errors.Is(err, services.ErrDistrictNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCoordinates),
		errors.Is(err, services.ErrInvalidBasePrice),
		errors.Is(err, services.ErrInvalidLimit),
		errors.Is(err, services.ErrInvalidRadius):
		apierrors.BadRequest(c, err.Error(), nil)
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}

// parcelIDParam parses the :id path segment. It writes a 400 and returns
// false when the segment is not an integer.
func parcelIDParam(c *gin.Context) (world.ParcelID, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		apierrors.BadRequest(c, "Parcel id must be an integer", map[string]interface{}{"id": raw})
		return 0, false
	}
	return world.ParcelID(id), true
}
