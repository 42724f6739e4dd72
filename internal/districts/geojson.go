package districts

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports every district as a GeoJSON polygon feature.
// Coordinates are [x, z] pairs in world units.
func (m *Map) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, d := range m.districts {
		b := d.Bounds
		ring := orb.Ring{
			{b.MinX, b.MinZ},
			{b.MaxX, b.MinZ},
			{b.MaxX, b.MaxZ},
			{b.MinX, b.MaxZ},
			{b.MinX, b.MinZ}, // close the ring
		}

		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.ID = d.ID
		feature.Properties["id"] = d.ID
		feature.Properties["name"] = d.Name
		feature.Properties["color"] = d.Color
		feature.Properties["locked"] = d.Locked
		feature.Properties["grid_row"] = d.GridRow
		feature.Properties["grid_col"] = d.GridCol

		fc.Append(feature)
	}

	return fc
}
