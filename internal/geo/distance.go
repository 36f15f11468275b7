// Package geo resolves free-text location names against a fixed gazetteer
// and computes great-circle distances for discovery's radius filter.
package geo

import "math"

const earthRadiusKm = 6371.0

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceKm computes the haversine distance between two points in
// kilometers. It is symmetric and zero for identical points.
func DistanceKm(a, b Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * (math.Pi / 180.0)
	dLon := (b.Lon - a.Lon) * (math.Pi / 180.0)
	latA := a.Lat * (math.Pi / 180.0)
	latB := b.Lat * (math.Pi / 180.0)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(latA)*math.Cos(latB)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}
