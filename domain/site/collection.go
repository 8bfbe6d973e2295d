package site

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gohaz/domain/core"
	"gohaz/domain/geo"
)

// Collection is an ordered, fixed-length set of sites. A collection produced
// by Reduce retains the positions of its sites within the original full
// collection, so arrays computed over the subset can be scattered back to
// full length with Expand. Collections are immutable once built.
type Collection struct {
	sites   []Site
	indices []int // positions in the original full collection
}

// NewCollection creates a full collection; site order is preserved and
// significant for all downstream arrays.
func NewCollection(sites []Site) *Collection {
	indices := make([]int, len(sites))
	for i := range indices {
		indices[i] = i
	}
	return &Collection{sites: sites, indices: indices}
}

// Len returns the number of sites in the collection
func (c *Collection) Len() int {
	return len(c.sites)
}

// Site returns the site at position i
func (c *Collection) Site(i int) Site {
	return c.sites[i]
}

// Indices returns the positions of this collection's sites within the
// original full collection. The returned slice must not be modified.
func (c *Collection) Indices() []int {
	return c.indices
}

// Reduce returns a new collection holding the sites at the given positions of
// c, in the given order. Index mappings compose: reducing a reduced
// collection still tracks positions in the original full collection. Indices
// must be in range and free of duplicates.
func (c *Collection) Reduce(indices []int) (*Collection, error) {
	seen := make(map[int]struct{}, len(indices))
	sites := make([]Site, len(indices))
	original := make([]int, len(indices))
	for k, i := range indices {
		if i < 0 || i >= len(c.sites) {
			return nil, core.NewFilterError(fmt.Sprintf("site index %d out of range [0, %d)", i, len(c.sites)))
		}
		if _, dup := seen[i]; dup {
			return nil, core.NewFilterError(fmt.Sprintf("duplicate site index %d", i))
		}
		seen[i] = struct{}{}
		sites[k] = c.sites[i]
		original[k] = c.indices[i]
	}
	return &Collection{sites: sites, indices: original}, nil
}

// Expand scatters a matrix computed over this (possibly reduced) collection
// back to the full collection length. Row k of reduced lands at the original
// position of site k; every other row is filled with placeholder. Ordering of
// the original collection is preserved and no subset row is duplicated or
// dropped.
func (c *Collection) Expand(reduced *mat.Dense, totalSites int, placeholder float64) *mat.Dense {
	rows, cols := reduced.Dims()
	if rows == len(c.indices) && totalSites == rows {
		identity := true
		for k, i := range c.indices {
			if k != i {
				identity = false
				break
			}
		}
		if identity {
			return reduced
		}
	}

	full := mat.NewDense(totalSites, cols, nil)
	if placeholder != 0 {
		full.Apply(func(_, _ int, _ float64) float64 { return placeholder }, full)
	}
	for k := 0; k < rows; k++ {
		full.SetRow(c.indices[k], reduced.RawRowView(k))
	}
	return full
}

// Vs30s returns the vs30 of every site, in collection order
func (c *Collection) Vs30s() []float64 {
	out := make([]float64, len(c.sites))
	for i, s := range c.sites {
		out[i] = s.Vs30
	}
	return out
}

// Locations returns the surface location of every site, in collection order
func (c *Collection) Locations() []geo.Point {
	out := make([]geo.Point, len(c.sites))
	for i, s := range c.sites {
		out[i] = s.Location
	}
	return out
}
