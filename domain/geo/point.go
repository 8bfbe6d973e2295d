package geo

import (
	"math"
)

// EarthRadiusKm is the mean Earth radius used for geodetic distances.
const EarthRadiusKm = 6371.0

// Point is a geographic location: longitude and latitude in decimal degrees,
// depth in km below the surface (negative values mean above surface).
type Point struct {
	Longitude float64 `json:"lon"`
	Latitude  float64 `json:"lat"`
	Depth     float64 `json:"depth,omitempty"`
}

// NewPoint creates a surface point (zero depth)
func NewPoint(lon, lat float64) Point {
	return Point{Longitude: lon, Latitude: lat}
}

// GeodeticDistance returns the great-circle distance in km between the
// surface projections of p and other (haversine formula).
func (p Point) GeodeticDistance(other Point) float64 {
	lat1 := p.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dlat := lat2 - lat1
	dlon := (other.Longitude - p.Longitude) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// Distance returns the 3-D distance in km between p and other, accounting
// for the depth difference. For hazard purposes this is the hypocentral
// distance when p is a hypocenter and other a surface site.
func (p Point) Distance(other Point) float64 {
	horizontal := p.GeodeticDistance(other)
	vertical := p.Depth - other.Depth
	return math.Sqrt(horizontal*horizontal + vertical*vertical)
}
