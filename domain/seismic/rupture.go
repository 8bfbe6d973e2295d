package seismic

import (
	"gohaz/domain/core"
	"gohaz/domain/geo"
	"gohaz/domain/tom"
)

// Rupture is an immutable description of one candidate earthquake event.
// Ruptures are produced lazily by sources, consumed once and discarded.
type Rupture struct {
	Magnitude          float64
	TectonicRegionType TectonicRegionType
	Hypocenter         geo.Point
	OccurrenceRate     float64 // mean annual occurrences

	// TOM is attached by the source at enumeration time so the rupture can
	// answer for its own occurrence probability.
	TOM *tom.PoissonTOM
}

// ProbabilityOneOrMore returns the probability that this rupture occurs one
// or more times within the attached model's investigation time span.
func (r *Rupture) ProbabilityOneOrMore() (float64, error) {
	if r.TOM == nil {
		return 0, core.NewContextError("rupture has no temporal occurrence model")
	}
	return r.TOM.ProbabilityOneOrMore(r.OccurrenceRate)
}
