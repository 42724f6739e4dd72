package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the health endpoints at the root and the API under /api/v1.
func RegisterRoutes(router gin.IRouter, health *HealthHandler, parcels *ParcelHandler, districts *DistrictHandler) {
	router.GET("/health", health.Health)
	router.GET("/health/ready", health.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", health.Info)

		p := v1.Group("/parcels")
		{
			p.GET("/at-point", parcels.AtPoint)
			p.GET("/:id", parcels.Get)
			p.GET("/:id/adjacent", parcels.Adjacent)
			p.GET("/:id/quote", parcels.Quote)
		}

		d := v1.Group("/districts")
		{
			d.GET("", districts.List)
			d.GET("/at-point", districts.AtPoint)
			d.GET("/nearest", districts.Nearest)
			d.GET("/geojson", districts.GeoJSON)
			d.GET("/:id", districts.Get)
		}

		m := v1.Group("/minimap")
		{
			m.GET("/project", districts.Project)
			m.GET("/unproject", districts.Unproject)
		}
	}
}
