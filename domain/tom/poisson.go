// Package tom provides temporal occurrence models: probability distributions
// over the number of rupture occurrences within an investigation time span.
package tom

import (
	"fmt"
	"math"

	"gohaz/domain/core"
)

// PoissonTOM is a Poissonian temporal occurrence model with a fixed
// investigation time span in years. It is stateless aside from the span and
// safe for concurrent use.
type PoissonTOM struct {
	timeSpan float64
}

// NewPoissonTOM creates a Poissonian model for the given time span in years
func NewPoissonTOM(timeSpan float64) (*PoissonTOM, error) {
	if timeSpan <= 0 {
		return nil, fmt.Errorf("%w: %v years", core.ErrNonPositiveSpan, timeSpan)
	}
	return &PoissonTOM{timeSpan: timeSpan}, nil
}

// TimeSpan returns the configured investigation time span in years
func (t *PoissonTOM) TimeSpan() float64 {
	return t.timeSpan
}

// ProbabilityOneOrMore returns the probability of one or more occurrences
// within the configured time span, for an annual occurrence rate:
// p = 1 - exp(-rate * timeSpan). The result lies in [0, 1).
func (t *PoissonTOM) ProbabilityOneOrMore(rate float64) (float64, error) {
	if rate < 0 || math.IsNaN(rate) {
		return 0, fmt.Errorf("%w: %v", core.ErrNegativeRate, rate)
	}
	return 1 - math.Exp(-rate*t.timeSpan), nil
}
