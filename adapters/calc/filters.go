package calc

import (
	"fmt"
	"iter"

	"gohaz/domain/core"
	"gohaz/domain/geo"
	"gohaz/domain/site"
	"gohaz/ports"
)

// SourceSiteNoopFilter passes every (source, sites) pair through unchanged.
// It is the default when the caller supplies no source-site filter.
func SourceSiteNoopFilter(pairs iter.Seq2[ports.SourceSitePair, error]) iter.Seq2[ports.SourceSitePair, error] {
	return pairs
}

// RuptureSiteNoopFilter passes every (rupture, sites) pair through unchanged.
// It is the default when the caller supplies no rupture-site filter.
func RuptureSiteNoopFilter(pairs iter.Seq2[ports.RuptureSitePair, error]) iter.Seq2[ports.RuptureSitePair, error] {
	return pairs
}

// NewSourceSiteDistanceFilter prunes, per source, the sites farther than
// maxDistance km from the source's reference location. Sources that do not
// expose a location pass through with their subset intact. Pairs whose
// subset becomes empty are omitted. A non-positive distance bound is
// malformed and surfaces as a filter error on the stream.
func NewSourceSiteDistanceFilter(maxDistance float64) ports.SourceSiteFilter {
	return func(pairs iter.Seq2[ports.SourceSitePair, error]) iter.Seq2[ports.SourceSitePair, error] {
		return func(yield func(ports.SourceSitePair, error) bool) {
			if maxDistance <= 0 {
				yield(ports.SourceSitePair{}, core.NewFilterError(fmt.Sprintf("non-positive distance bound %v", maxDistance)))
				return
			}
			for pair, err := range pairs {
				if err != nil {
					yield(ports.SourceSitePair{}, err)
					return
				}
				located, ok := pair.Source.(ports.Located)
				if !ok {
					if !yield(pair, nil) {
						return
					}
					continue
				}
				reduced, err := reduceByDistance(pair.Sites, located.Location(), maxDistance)
				if err != nil {
					yield(ports.SourceSitePair{}, err)
					return
				}
				if reduced == nil {
					continue
				}
				if !yield(ports.SourceSitePair{Source: pair.Source, Sites: reduced}, nil) {
					return
				}
			}
		}
	}
}

// NewRuptureSiteDistanceFilter prunes, per rupture, the sites farther than
// maxDistance km from the rupture hypocenter. Same contract as the source
// level filter.
func NewRuptureSiteDistanceFilter(maxDistance float64) ports.RuptureSiteFilter {
	return func(pairs iter.Seq2[ports.RuptureSitePair, error]) iter.Seq2[ports.RuptureSitePair, error] {
		return func(yield func(ports.RuptureSitePair, error) bool) {
			if maxDistance <= 0 {
				yield(ports.RuptureSitePair{}, core.NewFilterError(fmt.Sprintf("non-positive distance bound %v", maxDistance)))
				return
			}
			for pair, err := range pairs {
				if err != nil {
					yield(ports.RuptureSitePair{}, err)
					return
				}
				reduced, err := reduceByDistance(pair.Sites, pair.Rupture.Hypocenter, maxDistance)
				if err != nil {
					yield(ports.RuptureSitePair{}, err)
					return
				}
				if reduced == nil {
					continue
				}
				if !yield(ports.RuptureSitePair{Rupture: pair.Rupture, Sites: reduced}, nil) {
					return
				}
			}
		}
	}
}

// reduceByDistance returns the subset of sites within maxDistance km of ref,
// nil when no site survives. The input collection is never mutated.
func reduceByDistance(sites *site.Collection, ref geo.Point, maxDistance float64) (*site.Collection, error) {
	var keep []int
	for i, loc := range sites.Locations() {
		if ref.Distance(loc) <= maxDistance {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, nil
	}
	if len(keep) == sites.Len() {
		return sites, nil
	}
	return sites.Reduce(keep)
}
