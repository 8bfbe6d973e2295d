// Package site models the sites of interest for a hazard calculation and the
// reducible, expandable site collections consumed by the calculation engine.
package site

import (
	"gohaz/domain/geo"
)

// Site holds the invariant properties of one location of interest. Sites are
// read-only for the duration of a calculation.
type Site struct {
	Location     geo.Point `json:"location"`
	Vs30         float64   `json:"vs30"`          // time-averaged shear wave velocity, top 30 m (m/s)
	Vs30Measured bool      `json:"vs30_measured"` // measured vs inferred
	Z1pt0        float64   `json:"z1pt0"`         // depth to vs = 1.0 km/s horizon (m)
	Z2pt5        float64   `json:"z2pt5"`         // depth to vs = 2.5 km/s horizon (km)
}

// NewSite creates a site with the given surface location and vs30
func NewSite(lon, lat, vs30 float64) Site {
	return Site{Location: geo.NewPoint(lon, lat), Vs30: vs30}
}
