package gsim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"gohaz/domain/core"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
	"gohaz/domain/site"
	"gohaz/ports"
)

// BergeThierry2003 implements the attenuation law of Berge-Thierry et al.,
// "New empirical response spectral attenuation laws for moderate European
// earthquakes" (2003, Journal of Earthquake Engineering 7(2), 193-222).
//
// log10(SA cm/s2) = a*M + b*Rhypo - log10(Rhypo) + c, where c distinguishes
// rock (vs30 >= 800 m/s) from alluvium. Spectral acceleration at 5% damping;
// defined for stable shallow crust. Requires rupture magnitude, hypocentral
// distance and site vs30.
type BergeThierry2003 struct{}

// NewBergeThierry2003 creates the model; it is stateless and safe to share
func NewBergeThierry2003() *BergeThierry2003 {
	return &BergeThierry2003{}
}

var _ ports.GroundMotionModel = (*BergeThierry2003)(nil)

// bt2003Coeffs is one row of table 2, pag 203: magnitude coefficient a,
// distance coefficient b, site coefficients c1 (rock) / c2 (alluvium) and
// the total standard deviation in log10 units.
type bt2003Coeffs struct {
	a, b, c1, c2, std float64
}

// Coefficients for 5% damping at a subset of the published periods. PGA is
// served by the shortest tabulated period (0.029412 s), the customary proxy
// for this law.
var bt2003Table = map[float64]bt2003Coeffs{
	0.029412: {0.31180, -9.3030e-04, 1.5370, 1.5730, 0.29230},
	0.050000: {0.29920, -1.3410e-03, 1.7400, 1.7290, 0.30090},
	0.100000: {0.27860, -1.4740e-03, 2.0590, 2.0160, 0.30190},
	0.149990: {0.29550, -1.2180e-03, 2.0040, 2.0090, 0.31960},
	0.200000: {0.31670, -6.8890e-04, 1.8430, 1.8810, 0.32500},
	0.250000: {0.33650, -5.7500e-04, 1.6510, 1.7360, 0.33940},
	0.400000: {0.39970, -7.0780e-04, 1.1190, 1.2670, 0.35170},
	0.500000: {0.43230, -5.6800e-04, 0.81500, 0.97970, 0.35550},
	1.000000: {0.51990, 2.5160e-04, -0.11620, 0.082900, 0.37370},
	1.499300: {0.55270, 9.1240e-04, -0.56040, -0.39350, 0.39320},
	2.000000: {0.56220, 1.3750e-03, -0.79630, -0.66600, 0.40300},
}

const (
	bt2003MinPeriod = 0.029412
	gravityCms2     = 981.0 // cm/s2 per g
	vs30RockFloor   = 800.0 // m/s, rock/alluvium boundary
)

// MakeContexts derives the model contexts for a rupture over a site subset
func (g *BergeThierry2003) MakeContexts(sites *site.Collection, rup *seismic.Rupture) (*seismic.SiteContext, *seismic.RuptureContext, *seismic.DistanceContext, error) {
	return seismic.MakeContexts(sites, rup)
}

// ExceedanceProbabilities returns per-site, per-level exceedance
// probabilities under the (possibly truncated) lognormal intensity
// distribution predicted by the law.
func (g *BergeThierry2003) ExceedanceProbabilities(sctx *seismic.SiteContext, rctx *seismic.RuptureContext, dctx *seismic.DistanceContext,
	m imt.IMT, levels []float64, truncationLevel, cavMin float64) (*mat.Dense, error) {

	coeffs, err := g.coefficients(m)
	if err != nil {
		return nil, err
	}
	means, stddevs, err := g.meanAndStddevs(sctx, rctx, dctx, coeffs)
	if err != nil {
		return nil, err
	}
	poes, err := exceedancePoes(means, stddevs, levels, truncationLevel)
	if err != nil {
		return nil, err
	}
	applyCAVScreening(poes, means, cavMin)
	return poes, nil
}

// meanAndStddevs evaluates equation 1, pag 201, per site, converting the
// log10 cm/s2 prediction to natural log of g.
func (g *BergeThierry2003) meanAndStddevs(sctx *seismic.SiteContext, rctx *seismic.RuptureContext, dctx *seismic.DistanceContext, c bt2003Coeffs) ([]float64, []float64, error) {
	if len(dctx.Rhypo) != len(sctx.Vs30) {
		return nil, nil, core.NewContextError("distance and site contexts differ in length")
	}
	means := make([]float64, len(sctx.Vs30))
	stddevs := make([]float64, len(sctx.Vs30))
	sigma := c.std * math.Ln10
	for i, vs30 := range sctx.Vs30 {
		r := dctx.Rhypo[i]
		if r <= 0 {
			return nil, nil, core.NewContextError("non-positive hypocentral distance")
		}
		siteTerm := c.c2
		if vs30 >= vs30RockFloor {
			siteTerm = c.c1
		}
		log10Mean := c.a*rctx.Magnitude + c.b*r - math.Log10(r) + siteTerm
		means[i] = math.Log(math.Pow(10, log10Mean) / gravityCms2)
		stddevs[i] = sigma
	}
	return means, stddevs, nil
}

// coefficients resolves the table row for a measure. The law is defined for
// spectral acceleration; PGA maps to the shortest tabulated period.
func (g *BergeThierry2003) coefficients(m imt.IMT) (bt2003Coeffs, error) {
	if m == imt.PGV {
		return bt2003Coeffs{}, fmt.Errorf("%w: BergeThierry2003 does not support PGV", core.ErrConfiguration)
	}
	period, err := m.Period()
	if err != nil {
		return bt2003Coeffs{}, err
	}
	if m == imt.PGA {
		period = bt2003MinPeriod
	}
	const tolerance = 1e-4
	for p, c := range bt2003Table {
		if math.Abs(p-period) <= tolerance {
			return c, nil
		}
	}
	return bt2003Coeffs{}, fmt.Errorf("%w: BergeThierry2003 has no coefficients for period %g s", core.ErrConfiguration, period)
}
