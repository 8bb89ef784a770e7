// Package validation holds semantic (range-based) validators layered on
// top of the structural struct-tag pass in internal/httpapi.
package validation

import "github.com/Kiyoonewton/eld-api/internal/apperrors"

type CoordinateValidator struct{}

func (CoordinateValidator) ValidateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return apperrors.ValidationError("latitude must be between -90 and 90")
	}
	return nil
}

func (CoordinateValidator) ValidateLongitude(lng float64) error {
	if lng < -180 || lng > 180 {
		return apperrors.ValidationError("longitude must be between -180 and 180")
	}
	return nil
}

func (c CoordinateValidator) ValidateCoordinates(lat, lng float64) error {
	if err := c.ValidateLatitude(lat); err != nil {
		return err
	}
	return c.ValidateLongitude(lng)
}
