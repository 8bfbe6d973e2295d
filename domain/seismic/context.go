package seismic

import (
	"math"
	"strconv"

	"gohaz/domain/core"
	"gohaz/domain/site"
)

// SiteContext carries the per-site properties a ground motion model reads.
// Built per rupture from the surviving site subset and discarded immediately.
type SiteContext struct {
	Vs30         []float64
	Vs30Measured bool
}

// RuptureContext carries the rupture properties a ground motion model reads.
type RuptureContext struct {
	Magnitude float64
}

// DistanceContext carries the source-to-site distance measures, one entry per
// site of the subset the contexts were built over.
type DistanceContext struct {
	Rhypo []float64 // hypocentral distance, km
}

// MakeContexts derives the three model contexts for a rupture over a site
// subset. Fails with a context error when a required attribute is absent.
func MakeContexts(sites *site.Collection, rup *Rupture) (*SiteContext, *RuptureContext, *DistanceContext, error) {
	if rup.Magnitude <= 0 || math.IsNaN(rup.Magnitude) {
		return nil, nil, nil, core.NewContextError("rupture magnitude")
	}
	vs30 := sites.Vs30s()
	for i, v := range vs30 {
		if v <= 0 || math.IsNaN(v) {
			return nil, nil, nil, core.NewContextError("site vs30 at subset position " + strconv.Itoa(i))
		}
	}
	rhypo := make([]float64, sites.Len())
	for i, loc := range sites.Locations() {
		rhypo[i] = rup.Hypocenter.Distance(loc)
	}
	sctx := &SiteContext{Vs30: vs30}
	rctx := &RuptureContext{Magnitude: rup.Magnitude}
	dctx := &DistanceContext{Rhypo: rhypo}
	return sctx, rctx, dctx, nil
}
