// Package routecombiner concatenates per-leg routes into one polyline with
// total mileage, duration, and fractional-progress interpolation. No HOS
// logic lives here.
package routecombiner

import (
	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/geo"
)

const metersToMiles = 0.000621371

// Combine concatenates n-1 leg routes for n locations, converting
// meters to miles and dropping the first coordinate of every leg after the
// first leg to avoid a duplicate vertex at the join.
func Combine(legs []domain.LegRoute) domain.Route {
	var totalDistanceMiles float64
	var totalDurationSec float64
	var coords []domain.Coord

	for i, leg := range legs {
		totalDistanceMiles += leg.DistanceMeters * metersToMiles
		totalDurationSec += leg.DurationSeconds

		if len(leg.Coordinates) == 0 {
			continue
		}
		if i == 0 {
			coords = append(coords, leg.Coordinates...)
		} else if len(leg.Coordinates) > 1 {
			coords = append(coords, leg.Coordinates[1:]...)
		}
	}

	var pickup, dropoff domain.Coord
	if len(legs) > 0 && len(legs[0].Coordinates) > 0 {
		pickup = legs[0].Coordinates[len(legs[0].Coordinates)-1]
	}
	if len(legs) > 0 {
		last := legs[len(legs)-1]
		if len(last.Coordinates) > 0 {
			dropoff = last.Coordinates[len(last.Coordinates)-1]
		}
	}

	return domain.Route{
		Coordinates:   coords,
		DistanceMiles: totalDistanceMiles,
		DurationSec:   totalDurationSec,
		PickupCoord:   pickup,
		DropoffCoord:  dropoff,
	}
}

// Interpolate returns the coordinate at fractional progress p along route.
func Interpolate(route domain.Route, p float64) domain.Coord {
	return geo.InterpolateFraction(route.Coordinates, p)
}
