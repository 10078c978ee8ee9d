package domain

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeoBounds frames the map: a center point plus the rectangle covering every
// reading with a valid coordinate. It is computed once per dataset load and
// intentionally not recomputed when filters change, so the map extent stays
// stable while markers are filtered in place.
type GeoBounds struct {
	Center Coordinate `json:"center"`
	MinLat float64    `json:"min_lat"`
	MinLon float64    `json:"min_lon"`
	MaxLat float64    `json:"max_lat"`
	MaxLon float64    `json:"max_lon"`
}

// ComputeBounds derives GeoBounds from the readings. The center is the
// midpoint of the min/max latitude and longitude. Readings without valid
// coordinates are skipped; if none remain, ok is false and no bounds exist —
// callers must not render a map rather than centering it at (0,0).
func ComputeBounds(readings []Reading) (GeoBounds, bool) {
	var b GeoBounds
	found := false

	for i := range readings {
		r := &readings[i]
		if !r.CoordsValid {
			continue
		}
		if !found {
			b.MinLat, b.MaxLat = r.Latitude, r.Latitude
			b.MinLon, b.MaxLon = r.Longitude, r.Longitude
			found = true
			continue
		}
		b.MinLat = min(b.MinLat, r.Latitude)
		b.MaxLat = max(b.MaxLat, r.Latitude)
		b.MinLon = min(b.MinLon, r.Longitude)
		b.MaxLon = max(b.MaxLon, r.Longitude)
	}

	if !found {
		return GeoBounds{}, false
	}

	b.Center = Coordinate{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
	return b, true
}
