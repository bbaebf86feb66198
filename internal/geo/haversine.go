// Package geo provides great-circle geometry used for flight distance computation.
package geo

import "math"

// EarthRadiusNM is the mean Earth radius in nautical miles
const EarthRadiusNM = 3440.065

// HaversineNM computes the great-circle distance between two coordinates in
// nautical miles using the haversine formula.
func HaversineNM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusNM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
