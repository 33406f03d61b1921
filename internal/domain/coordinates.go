package domain

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the fixed sphere radius used for every great-circle distance.
const EarthRadiusKm = 6371.0

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for GeoJSON-style consumers.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Valid reports whether both components are finite and inside the degree ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// HaversineKm returns the great-circle distance between a and b in kilometers.
// s2.LatLng.Distance evaluates the haversine angle. Its floating point product
// depends on argument order, so the pair is put in a canonical order first to
// keep HaversineKm(a, b) == HaversineKm(b, a) bit for bit.
func HaversineKm(a, b Coordinates) float64 {
	if b.Lat < a.Lat || (b.Lat == a.Lat && b.Lon < a.Lon) {
		a, b = b, a
	}
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return EarthRadiusKm * la.Distance(lb).Radians()
}

// Centroid returns the arithmetic mean latitude and longitude of points.
// An empty slice yields the zero value.
func Centroid(points []Coordinates) Coordinates {
	if len(points) == 0 {
		return Coordinates{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(points))
	return Coordinates{Lat: sumLat / n, Lon: sumLon / n}
}
