package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/stwalsh4118/landgrid/internal/errors"
	"github.com/stwalsh4118/landgrid/internal/services"
	"github.com/stwalsh4118/landgrid/internal/world"
)

func TestDistrictList(t *testing.T) {
	router := setupTestRouter(t, new(MockClaimRepository), nil)

	w := get(router, "/api/v1/districts")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[DistrictListResponse](t, w)
	assert.Equal(t, 9, resp.Count)
	assert.Equal(t, "creator-quarter", resp.Districts[0].ID)
}

func TestDistrictAtPoint(t *testing.T) {
	router := setupTestRouter(t, new(MockClaimRepository), nil)

	w := get(router, "/api/v1/districts/at-point?x=200&z=200")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "central-hub", decode[DistrictResponse](t, w).District.ID)

	w = get(router, "/api/v1/districts/at-point?x=-10&z=200")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierrors.ErrNotFound, decodeError(t, w).Code)

	w = get(router, "/api/v1/districts/at-point?x=10")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDistrictGet(t *testing.T) {
	router := setupTestRouter(t, new(MockClaimRepository), nil)

	w := get(router, "/api/v1/districts/void-frontier")
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[DistrictResponse](t, w).District
	assert.Equal(t, "Void Frontier", d.Name)
	assert.True(t, d.Locked)

	w = get(router, "/api/v1/districts/atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDistrictNearest(t *testing.T) {
	router := setupTestRouter(t, new(MockClaimRepository), nil)

	w := get(router, "/api/v1/districts/nearest?x=200&z=200")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[NearestResponse](t, w)
	assert.Equal(t, services.DefaultNearestLimit, resp.Count)
	assert.Equal(t, DefaultNearRadius, resp.Radius)
	assert.Equal(t, "central-hub", resp.Districts[0].District.ID)
	assert.True(t, resp.Districts[0].Near)
	assert.False(t, resp.Districts[1].Near)

	w = get(router, "/api/v1/districts/nearest?x=200&z=200&limit=9&radius=140")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[NearestResponse](t, w)
	assert.Equal(t, 9, resp.Count)
	assert.True(t, resp.Districts[4].Near)
	assert.False(t, resp.Districts[5].Near)

	w = get(router, "/api/v1/districts/nearest?x=0&z=0&limit=51")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrValidation, decodeError(t, w).Code)

	w = get(router, "/api/v1/districts/nearest?x=0&z=0&radius=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDistrictGeoJSON(t *testing.T) {
	router := setupTestRouter(t, new(MockClaimRepository), nil)

	w := get(router, "/api/v1/districts/geojson")

	require.Equal(t, http.StatusOK, w.Code)
	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 9)
	assert.Equal(t, "Polygon", fc.Features[0].Geometry.GeoJSONType())
	assert.Equal(t, "creator-quarter", fc.Features[0].Properties.MustString("id"))
}

func TestMinimapEndpoints(t *testing.T) {
	router := setupTestRouter(t, new(MockClaimRepository), nil)

	w := get(router, "/api/v1/minimap/project?x=200&z=100")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.MinimapPoint{U: 0.5, V: 0.75}, decode[services.MinimapPoint](t, w))

	w = get(router, "/api/v1/minimap/unproject?u=0&v=0")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, world.WorldPosition{X: 0, Z: 400}, decode[world.WorldPosition](t, w))

	w = get(router, "/api/v1/minimap/unproject?u=0.5")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	w = get(router, "/api/v1/minimap/project?x=0&z=0")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"u": 0.0, "v": 1.0}, body)
}
