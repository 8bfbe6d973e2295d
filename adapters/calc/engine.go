// Package calc implements the hazard curve aggregation engine: rupture
// enumeration under a Poissonian occurrence model, two-stage site filtering,
// per-rupture exceedance probabilities from ground motion models and the
// multiplicative non-exceedance fold into final curves.
package calc

import (
	"context"
	"fmt"
	"iter"
	"math"

	"gonum.org/v1/gonum/mat"

	"gohaz/domain/core"
	"gohaz/domain/hazard"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
	"gohaz/domain/site"
	"gohaz/domain/tom"
	"gohaz/ports"
)

// Inputs describes one hazard curve computation. Sources and Sites are
// read-only for its duration.
type Inputs struct {
	Sources []ports.Source
	Sites   *site.Collection
	Levels  imt.Levels

	// TimeSpan is the investigation period in years for the Poissonian
	// temporal occurrence model.
	TimeSpan float64

	// GSIMs maps each tectonic region type appearing in Sources to the
	// ground motion model that governs it.
	GSIMs ports.GSIMRegistry

	// TruncationLevel is the number of standard deviations the intensity
	// distribution is truncated at. Zero means no uncertainty (step on the
	// predicted mean); negative values are rejected.
	TruncationLevel float64

	// CAVMin enables cumulative-absolute-velocity screening when positive;
	// zero disables it.
	CAVMin float64

	// Optional filters; nil defaults to the no-op variants.
	SourceSiteFilter  ports.SourceSiteFilter
	RuptureSiteFilter ports.RuptureSiteFilter
}

// Validate fails fast on malformed inputs before any computation begins
func (in *Inputs) Validate() error {
	if in.Sites == nil || in.Sites.Len() == 0 {
		return fmt.Errorf("%w: no sites", core.ErrConfiguration)
	}
	if err := in.Levels.Validate(); err != nil {
		return err
	}
	if in.TruncationLevel < 0 {
		return fmt.Errorf("%w: %v", core.ErrBadTruncation, in.TruncationLevel)
	}
	if in.CAVMin < 0 {
		return fmt.Errorf("%w: negative CAV threshold %v", core.ErrConfiguration, in.CAVMin)
	}
	trts := make([]seismic.TectonicRegionType, 0, len(in.Sources))
	seen := make(map[seismic.TectonicRegionType]struct{})
	for _, src := range in.Sources {
		trt := src.TectonicRegionType()
		if _, ok := seen[trt]; !ok {
			seen[trt] = struct{}{}
			trts = append(trts, trt)
		}
	}
	return in.GSIMs.Validate(trts)
}

// HazardCurvesPoissonian computes, per site and intensity level, the
// probability that ground shaking exceeds the level within the investigation
// time span, aggregated Poisson-style over every rupture of every source.
//
// The fold per rupture multiplies the running non-exceedance value by
// (1 - probOcc) ** poe over the (site x level) grid, expanded back to the
// full site collection with placeholder 1.0. The fold is associative and
// commutative across ruptures; source order does not affect the result
// beyond floating point rounding.
//
// Any error raised while processing a source is wrapped with that source's
// identifier and terminates the computation; no partial curves are returned.
func HazardCurvesPoissonian(ctx context.Context, in Inputs) (hazard.CurveSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t, err := tom.NewPoissonTOM(in.TimeSpan)
	if err != nil {
		return nil, err
	}
	acc := hazard.NewAccumulator(in.Sites.Len(), in.Levels)
	if err := foldSources(ctx, &in, t, in.Sources, acc); err != nil {
		return nil, err
	}
	return acc.Complement(), nil
}

// foldSources folds every rupture of the given sources into acc. The serial
// engine calls it with all sources; the parallel runner calls it per worker
// with a batch and a worker-owned accumulator.
func foldSources(ctx context.Context, in *Inputs, t *tom.PoissonTOM, sources []ports.Source, acc *hazard.Accumulator) error {
	ssFilter := in.SourceSiteFilter
	if ssFilter == nil {
		ssFilter = SourceSiteNoopFilter
	}
	rsFilter := in.RuptureSiteFilter
	if rsFilter == nil {
		rsFilter = RuptureSiteNoopFilter
	}

	sourcesSites := func(yield func(ports.SourceSitePair, error) bool) {
		for _, src := range sources {
			if !yield(ports.SourceSitePair{Source: src, Sites: in.Sites}, nil) {
				return
			}
		}
	}

	for pair, err := range ssFilter(sourcesSites) {
		if err != nil {
			// Filter failures are correctness bugs, not data issues
			return err
		}
		// Caller-level deadlines abort between source boundaries
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := foldSource(in, t, pair, rsFilter, acc); err != nil {
			return core.NewSourceError(pair.Source.SourceID(), err)
		}
	}
	return nil
}

// foldSource processes one surviving (source, reduced site subset) pair:
// enumerates ruptures, applies the rupture-site filter and folds every
// surviving rupture's exceedance probabilities into acc.
func foldSource(in *Inputs, t *tom.PoissonTOM, pair ports.SourceSitePair, rsFilter ports.RuptureSiteFilter, acc *hazard.Accumulator) error {
	rupturesSites := func(yield func(ports.RuptureSitePair, error) bool) {
		for rup, err := range pair.Source.IterRuptures(t) {
			if err != nil {
				yield(ports.RuptureSitePair{}, err)
				return
			}
			if !yield(ports.RuptureSitePair{Rupture: rup, Sites: pair.Sites}, nil) {
				return
			}
		}
	}

	totalSites := acc.NumSites()
	for rpair, err := range rsFilter(rupturesSites) {
		if err != nil {
			return err
		}
		probOcc, err := rpair.Rupture.ProbabilityOneOrMore()
		if err != nil {
			return err
		}
		if err := hazard.ValidateProbability(probOcc, "occurrence probability"); err != nil {
			return err
		}
		model, err := in.GSIMs.Lookup(rpair.Rupture.TectonicRegionType)
		if err != nil {
			return err
		}
		sctx, rctx, dctx, err := model.MakeContexts(rpair.Sites, rpair.Rupture)
		if err != nil {
			return err
		}
		for m, levels := range in.Levels {
			poes, err := model.ExceedanceProbabilities(sctx, rctx, dctx, m, levels, in.TruncationLevel, in.CAVMin)
			if err != nil {
				return err
			}
			factor, err := nonExceedanceFactor(poes, probOcc)
			if err != nil {
				return err
			}
			if err := acc.MulElem(m, rpair.Sites.Expand(factor, totalSites, 1.0)); err != nil {
				return err
			}
		}
	}
	return nil
}

// nonExceedanceFactor computes (1 - probOcc) ** poe element-wise over the
// (subset sites x levels) grid. Every exceedance probability must lie in
// [0, 1]; out-of-range values surface as domain errors, never clamped.
func nonExceedanceFactor(poes *mat.Dense, probOcc float64) (*mat.Dense, error) {
	base := 1 - probOcc
	rows, cols := poes.Dims()
	factor := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			poe := poes.At(i, j)
			if err := hazard.ValidateProbability(poe, "exceedance probability"); err != nil {
				return nil, err
			}
			factor.Set(i, j, math.Pow(base, poe))
		}
	}
	return factor, nil
}

// FilteredSeq is a convenience used by filter implementations and tests to
// materialize a pair stream, stopping at the first error element.
func FilteredSeq[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
