// Package gsim provides ground shaking intensity model adapters: the shared
// truncated-normal exceedance machinery and concrete published attenuation
// models. Model coefficient tables are immutable, process-wide read-only
// configuration shared by reference.
package gsim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"gohaz/domain/core"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// exceedancePoes converts per-site predicted means and standard deviations
// (both in natural log space of the intensity measure) into a
// (sites x levels) matrix of exceedance probabilities.
//
// truncationLevel > 0 truncates the intensity distribution at that many
// standard deviations and renormalizes. truncationLevel == 0 means no
// uncertainty: a step function on the predicted mean. Negative values are a
// domain error, rejected rather than clamped.
func exceedancePoes(means, stddevs, levels []float64, truncationLevel float64) (*mat.Dense, error) {
	if truncationLevel < 0 {
		return nil, fmt.Errorf("%w: %v", core.ErrBadTruncation, truncationLevel)
	}
	if len(means) != len(stddevs) {
		return nil, core.NewDomainError(fmt.Sprintf("means (%d) and stddevs (%d) differ in length", len(means), len(stddevs)))
	}

	poes := mat.NewDense(len(means), len(levels), nil)
	for i := range means {
		for j, level := range levels {
			if level <= 0 {
				return nil, fmt.Errorf("%w: non-positive level %v", core.ErrBadLevels, level)
			}
			logLevel := math.Log(level)
			switch {
			case truncationLevel == 0:
				if means[i] >= logLevel {
					poes.Set(i, j, 1)
				}
			default:
				if stddevs[i] <= 0 {
					return nil, core.NewDomainError(fmt.Sprintf("non-positive stddev %v", stddevs[i]))
				}
				x := (logLevel - means[i]) / stddevs[i]
				poes.Set(i, j, truncatedSurvival(x, truncationLevel))
			}
		}
	}
	return poes, nil
}

// truncatedSurvival is P(X > x) for a standard normal truncated at [-t, t]
func truncatedSurvival(x, t float64) float64 {
	if x >= t {
		return 0
	}
	if x <= -t {
		return 1
	}
	phiT := stdNormal.CDF(t)
	return (phiT - stdNormal.CDF(x)) / (2*phiT - 1)
}

// applyCAVScreening zeroes the exceedance contributions of sites whose
// median predicted motion falls below the engineering-significance floor.
// This is the simplified cumulative-absolute-velocity gate: contributions
// from motion too weak to matter for engineered structures are suppressed
// rather than folded into the curves. cavMin in g*s; zero disables.
func applyCAVScreening(poes *mat.Dense, means []float64, cavMin float64) {
	if cavMin <= 0 {
		return
	}
	_, cols := poes.Dims()
	for i, mean := range means {
		if math.Exp(mean) < cavMin {
			for j := 0; j < cols; j++ {
				poes.Set(i, j, 0)
			}
		}
	}
}
