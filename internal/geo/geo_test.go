package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kiyoonewton/eld-api/internal/domain"
)

func TestHaversineKm_SamePoint(t *testing.T) {
	a := domain.Location{Lat: 34.05, Lng: -118.25}
	assert.InDelta(t, 0, HaversineKm(a, a), 0.001)
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Los Angeles to Las Vegas, roughly 367 km great-circle.
	la := domain.Location{Lat: 34.0522, Lng: -118.2437}
	vegas := domain.Location{Lat: 36.1699, Lng: -115.1398}
	d := HaversineKm(la, vegas)
	assert.InDelta(t, 367, d, 15)
}

func TestInterpolateFraction_Clamps(t *testing.T) {
	coords := []domain.Coord{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 1}, {Lng: 2, Lat: 2}}

	assert.Equal(t, coords[0], InterpolateFraction(coords, -1))
	assert.Equal(t, coords[len(coords)-1], InterpolateFraction(coords, 2))
	assert.Equal(t, coords[0], InterpolateFraction(coords, 0))
}

func TestInterpolateFraction_Empty(t *testing.T) {
	assert.Equal(t, domain.Coord{}, InterpolateFraction(nil, 0.5))
}
