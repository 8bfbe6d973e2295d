package ports

import (
	"gonum.org/v1/gonum/mat"

	"gohaz/domain/core"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
	"gohaz/domain/site"
)

// GroundMotionModel is the contract every ground shaking intensity model
// fulfils. Models are immutable after construction and safe for concurrent
// reads; their coefficient tables are process-wide read-only configuration.
type GroundMotionModel interface {
	// MakeContexts derives the site, rupture and distance contexts for one
	// rupture over the current site subset. Pure; fails with a context error
	// when a required site or rupture attribute is missing.
	MakeContexts(sites *site.Collection, rup *seismic.Rupture) (*seismic.SiteContext, *seismic.RuptureContext, *seismic.DistanceContext, error)

	// ExceedanceProbabilities returns a (len(subset) x len(levels)) matrix:
	// for each surviving site and requested level, the probability that
	// ground motion caused by this rupture exceeds the level, under a
	// distribution truncated at truncationLevel standard deviations.
	// cavMin > 0 enables cumulative-absolute-velocity screening, zeroing
	// contributions below the engineering-significance floor; zero disables.
	ExceedanceProbabilities(sctx *seismic.SiteContext, rctx *seismic.RuptureContext, dctx *seismic.DistanceContext,
		m imt.IMT, levels []float64, truncationLevel, cavMin float64) (*mat.Dense, error)
}

// GSIMRegistry maps each tectonic region type to the model that governs it
type GSIMRegistry map[seismic.TectonicRegionType]GroundMotionModel

// Lookup resolves the model for a rupture's region type. A missing entry is
// an unsupported-region configuration error.
func (r GSIMRegistry) Lookup(trt seismic.TectonicRegionType) (GroundMotionModel, error) {
	model, ok := r[trt]
	if !ok {
		return nil, core.NewUnsupportedTRTError(trt.String())
	}
	return model, nil
}

// Validate fails fast when any required region type has no model, so a
// misconfigured registry is rejected before computation begins.
func (r GSIMRegistry) Validate(required []seismic.TectonicRegionType) error {
	for _, trt := range required {
		if _, ok := r[trt]; !ok {
			return core.NewUnsupportedTRTError(trt.String())
		}
	}
	return nil
}
