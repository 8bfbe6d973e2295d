package sources

import (
	"iter"

	"gohaz/domain/core"
	"gohaz/domain/seismic"
	"gohaz/domain/tom"
	"gohaz/ports"
)

// StaticSource yields a fixed list of pre-built ruptures. Used for replaying
// stored rupture sets and as a deterministic fixture in tests. The one-shot
// contract of IterRuptures is enforced: a second enumeration fails.
type StaticSource struct {
	ID       string
	TRT      seismic.TectonicRegionType
	Ruptures []*seismic.Rupture

	consumed bool
}

var _ ports.Source = (*StaticSource)(nil)

// SourceID returns the identifier used for error attribution
func (s *StaticSource) SourceID() string {
	return s.ID
}

// TectonicRegionType returns the regime tag shared by this source's ruptures
func (s *StaticSource) TectonicRegionType() seismic.TectonicRegionType {
	return s.TRT
}

// IterRuptures yields the stored ruptures with the occurrence model attached
func (s *StaticSource) IterRuptures(t *tom.PoissonTOM) iter.Seq2[*seismic.Rupture, error] {
	return func(yield func(*seismic.Rupture, error) bool) {
		if s.consumed {
			yield(nil, core.NewDomainError("rupture sequence of source "+s.ID+" already consumed"))
			return
		}
		s.consumed = true
		for _, rup := range s.Ruptures {
			r := *rup
			r.TOM = t
			if !yield(&r, nil) {
				return
			}
		}
	}
}
