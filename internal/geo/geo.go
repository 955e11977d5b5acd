package geo

import (
	"math"

	"camPark/pkg/e"
)

// Earth radius for the spherical model, meters.
const EarthRadiusM = 6371000.0

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusM * c
}

// ValidateCoordinate rejects out-of-range or non-finite lat/lng.
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return e.ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return e.ErrInvalidCoordinates
	}
	return nil
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
