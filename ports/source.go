package ports

import (
	"iter"

	"gohaz/domain/geo"
	"gohaz/domain/seismic"
	"gohaz/domain/tom"
)

// Source is a seismic source: an entity that enumerates candidate ruptures
// under a temporal occurrence model. One source may yield very many ruptures.
type Source interface {
	// SourceID returns the identifier used for error attribution
	SourceID() string

	// TectonicRegionType returns the regime tag shared by this source's ruptures
	TectonicRegionType() seismic.TectonicRegionType

	// IterRuptures lazily enumerates the source's ruptures under the given
	// occurrence model. The sequence is finite and single-pass: it is not
	// required to be restartable and must be consumed at most once. A non-nil
	// error element aborts the sequence.
	IterRuptures(t *tom.PoissonTOM) iter.Seq2[*seismic.Rupture, error]
}

// Located is implemented by sources that expose a reference location, which
// distance-based source-site filters prune against. Sources without a
// location pass through such filters unfiltered.
type Located interface {
	Location() geo.Point
}
