// Package testkit provides deterministic fixtures for hazard engine tests:
// stub ground motion models, canned sources and site collections.
package testkit

import (
	"gonum.org/v1/gonum/mat"

	"gohaz/adapters/sources"
	"gohaz/domain/geo"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
	"gohaz/domain/site"
	"gohaz/ports"
)

// TestTRT is the region type used by fixtures unless overridden
const TestTRT = seismic.ActiveShallowCrust

// Sites builds a collection of n sites on a line of longitude, one degree
// apart, all on rock (vs30 760 m/s).
func Sites(n int) *site.Collection {
	out := make([]site.Site, n)
	for i := range out {
		out[i] = site.NewSite(float64(i), 0, 760)
	}
	return site.NewCollection(out)
}

// Rupture builds a magnitude-6 rupture at the origin with the given
// annual occurrence rate.
func Rupture(rate float64) *seismic.Rupture {
	return &seismic.Rupture{
		Magnitude:          6.0,
		TectonicRegionType: TestTRT,
		Hypocenter:         geo.Point{Depth: 10},
		OccurrenceRate:     rate,
	}
}

// Source builds a static source producing ruptures with the given rates
func Source(id string, rates ...float64) ports.Source {
	rups := make([]*seismic.Rupture, len(rates))
	for i, rate := range rates {
		rups[i] = Rupture(rate)
	}
	return &sources.StaticSource{ID: id, TRT: TestTRT, Ruptures: rups}
}

// StubGSIM returns the same exceedance probability for every site and level.
// Fields override per-call behavior for error-path tests.
type StubGSIM struct {
	PoE float64

	// PerLevelPoEs, when set, overrides PoE with one value per level,
	// letting tests model exceedance that decays with intensity.
	PerLevelPoEs []float64

	ContextErr  error
	ExceedErr   error
	MadeContext int // times MakeContexts was called
}

var _ ports.GroundMotionModel = (*StubGSIM)(nil)

// MakeContexts derives contexts the standard way, or fails with ContextErr
func (g *StubGSIM) MakeContexts(sites *site.Collection, rup *seismic.Rupture) (*seismic.SiteContext, *seismic.RuptureContext, *seismic.DistanceContext, error) {
	g.MadeContext++
	if g.ContextErr != nil {
		return nil, nil, nil, g.ContextErr
	}
	return seismic.MakeContexts(sites, rup)
}

// ExceedanceProbabilities fills the (sites x levels) grid with the stub values
func (g *StubGSIM) ExceedanceProbabilities(sctx *seismic.SiteContext, _ *seismic.RuptureContext, _ *seismic.DistanceContext,
	_ imt.IMT, levels []float64, _, _ float64) (*mat.Dense, error) {
	if g.ExceedErr != nil {
		return nil, g.ExceedErr
	}
	numSites := len(sctx.Vs30)
	poes := mat.NewDense(numSites, len(levels), nil)
	for i := 0; i < numSites; i++ {
		for j := range levels {
			v := g.PoE
			if g.PerLevelPoEs != nil {
				v = g.PerLevelPoEs[j]
			}
			poes.Set(i, j, v)
		}
	}
	return poes, nil
}

// Registry builds a single-entry registry mapping TestTRT to the model
func Registry(model ports.GroundMotionModel) ports.GSIMRegistry {
	return ports.GSIMRegistry{TestTRT: model}
}
