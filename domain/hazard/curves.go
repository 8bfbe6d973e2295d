// Package hazard holds the probabilistic outputs of a calculation: the
// running non-exceedance accumulator and the final hazard curve sets.
package hazard

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"gohaz/domain/core"
	"gohaz/domain/imt"
)

// CurveSet maps each intensity measure to a (sites x levels) matrix of
// exceedance probabilities in [0, 1]. Row order matches the caller's site
// collection; column order matches the caller's level order for that measure.
type CurveSet map[imt.IMT]*mat.Dense

// Accumulator tracks, per intensity measure, the running probability of
// non-exceedance across the ruptures folded in so far. Values start at 1.0
// (certain non-exceedance before any rupture is considered) and are
// monotonically non-increasing because every folded factor lies in [0, 1].
// An accumulator is owned by exactly one fold at a time; it is not safe for
// concurrent mutation.
type Accumulator struct {
	numSites int
	curves   CurveSet
	levels   imt.Levels
}

// NewAccumulator creates ones-initialized non-exceedance matrices of shape
// (numSites x len(levels)) for every requested measure.
func NewAccumulator(numSites int, levels imt.Levels) *Accumulator {
	curves := make(CurveSet, len(levels))
	for m, lv := range levels {
		data := make([]float64, numSites*len(lv))
		for i := range data {
			data[i] = 1.0
		}
		curves[m] = mat.NewDense(numSites, len(lv), data)
	}
	return &Accumulator{numSites: numSites, curves: curves, levels: levels}
}

// NumSites returns the full site collection length the accumulator spans
func (a *Accumulator) NumSites() int {
	return a.numSites
}

// MulElem folds a full-length factor matrix into the accumulator for one
// measure via element-wise multiplication. Factors must lie in [0, 1]; sites
// a rupture cannot affect contribute a factor of 1.0 (the multiplicative
// identity), which is how expanded placeholder rows leave them untouched.
func (a *Accumulator) MulElem(m imt.IMT, factor *mat.Dense) error {
	acc, ok := a.curves[m]
	if !ok {
		return fmt.Errorf("%w: accumulator has no measure %s", core.ErrConfiguration, m)
	}
	ar, ac := acc.Dims()
	fr, fc := factor.Dims()
	if ar != fr || ac != fc {
		return fmt.Errorf("%w: factor shape (%d, %d) != accumulator shape (%d, %d)",
			core.ErrConfiguration, fr, fc, ar, ac)
	}
	acc.MulElem(acc, factor)
	return nil
}

// Merge multiplies another accumulator into this one element-wise. Partial
// accumulators produced by independent workers merge this way; the fold is
// associative and commutative so merge order does not matter.
func (a *Accumulator) Merge(other *Accumulator) error {
	for m, curve := range other.curves {
		if err := a.MulElem(m, curve); err != nil {
			return err
		}
	}
	return nil
}

// Complement converts the accumulator into final hazard curves:
// exceedance = 1 - non-exceedance. The accumulator must not be used again.
func (a *Accumulator) Complement() CurveSet {
	for _, curve := range a.curves {
		curve.Apply(func(_, _ int, v float64) float64 { return 1 - v }, curve)
	}
	out := a.curves
	a.curves = nil
	return out
}

// ValidateProbability rejects values outside [0, 1]; NaN included. Domain
// errors surface instead of silent clamping.
func ValidateProbability(p float64, what string) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %s = %v", core.ErrProbabilityRange, what, p)
	}
	return nil
}
