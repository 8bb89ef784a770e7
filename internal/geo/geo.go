// Package geo provides the great-circle distance and polyline
// interpolation primitives the route client and combiner share.
package geo

import (
	"math"

	"github.com/Kiyoonewton/eld-api/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(a, b domain.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// InterpolateFraction returns the coordinate at fractional progress p along
// coords, clamped to [0, len(coords)-1]. p is clamped to [0,1] first. An
// empty slice returns the zero Coord rather than erroring, matching the
// degenerate-route fallback the planner relies on.
func InterpolateFraction(coords []domain.Coord, p float64) domain.Coord {
	if len(coords) == 0 {
		return domain.Coord{}
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	idx := int(math.Floor(p * float64(len(coords))))
	if idx > len(coords)-1 {
		idx = len(coords) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return coords[idx]
}
