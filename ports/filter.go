package ports

import (
	"iter"

	"gohaz/domain/seismic"
	"gohaz/domain/site"
)

// SourceSitePair pairs a source with the subset of sites it can still affect
type SourceSitePair struct {
	Source Source
	Sites  *site.Collection
}

// RuptureSitePair pairs a rupture with the subset of sites it can still affect
type RuptureSitePair struct {
	Rupture *seismic.Rupture
	Sites   *site.Collection
}

// SourceSiteFilter transforms a lazy stream of (source, site subset) pairs
// into a stream of the same shape, possibly shrinking each pair's subset and
// omitting pairs whose subset becomes empty. Filters must not reorder pairs
// and must not mutate the input collections; they produce new, independent
// subsets. Malformed geometry surfaces as a filter error element on the
// stream and propagates to the caller.
type SourceSiteFilter func(pairs iter.Seq2[SourceSitePair, error]) iter.Seq2[SourceSitePair, error]

// RuptureSiteFilter is the fine-pruning analogue applied once rupture
// geometry is known. Same contract as SourceSiteFilter.
type RuptureSiteFilter func(pairs iter.Seq2[RuptureSitePair, error]) iter.Seq2[RuptureSitePair, error]
