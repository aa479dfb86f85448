// Package geo provides the small amount of spherical geometry the tracker
// needs: great-circle distance between two points and a rectangular
// bounding box around an observer, both in the WGS84 coordinate system.
package geo

import "math"

const (
	// EarthRadiusKm is the Earth's mean radius in kilometers (WGS84)
	EarthRadiusKm = 6371.0

	// KmPerDegreeLat is the approximate north-south extent of one degree
	// of latitude. Used for the flat-earth bounding box approximation.
	KmPerDegreeLat = 111.0

	degToRad = math.Pi / 180.0
)

// Distance returns the haversine great-circle distance in kilometers
// between two points given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * degToRad
	lat2Rad := lat2 * degToRad
	deltaLat := (lat2 - lat1) * degToRad
	deltaLon := (lon2 - lon1) * degToRad

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(deltaLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Box is a rectangular latitude/longitude region used to scope a feed
// query. Edges are in decimal degrees.
type Box struct {
	North float64
	South float64
	East  float64
	West  float64
}

// BoundingBox returns the box of the given radius centered on lat/lon.
// It uses the 111 km-per-degree approximation with longitude scaled by
// cos(latitude), which is what the upstream feed expects; the precise
// radius filter is applied per aircraft with Distance afterwards.
func BoundingBox(lat, lon, radiusKm float64) Box {
	kmPerDegreeLon := KmPerDegreeLat * math.Cos(lat*degToRad)

	deltaLat := radiusKm / KmPerDegreeLat
	deltaLon := radiusKm / kmPerDegreeLon

	return Box{
		North: lat + deltaLat,
		South: lat - deltaLat,
		East:  lon + deltaLon,
		West:  lon - deltaLon,
	}
}
