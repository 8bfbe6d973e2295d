package calc

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gohaz/adapters/sources"
	"gohaz/domain/core"
	"gohaz/domain/geo"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
	"gohaz/internal/testkit"
	"gohaz/ports"
)

func pairStream(pairs ...ports.SourceSitePair) func(yield func(ports.SourceSitePair, error) bool) {
	return func(yield func(ports.SourceSitePair, error) bool) {
		for _, p := range pairs {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func TestSourceSiteDistanceFilterReduces(t *testing.T) {
	// Sites sit one degree of longitude apart, roughly 111 km. A 200 km bound
	// from the origin keeps the first two of four.
	sites := testkit.Sites(4)
	src := &sources.PointSource{ID: "p1", TRT: testkit.TestTRT, Loc: geo.Point{Depth: 10}}

	filter := NewSourceSiteDistanceFilter(200)
	kept, err := FilteredSeq(filter(pairStream(ports.SourceSitePair{Source: src, Sites: sites})))
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, 2, kept[0].Sites.Len())
	assert.Equal(t, []int{0, 1}, kept[0].Sites.Indices())
}

func TestSourceSiteDistanceFilterDropsEmptyPairs(t *testing.T) {
	sites := testkit.Sites(3)
	far := &sources.PointSource{ID: "far", TRT: testkit.TestTRT, Loc: geo.Point{Longitude: 90}}

	filter := NewSourceSiteDistanceFilter(50)
	kept, err := FilteredSeq(filter(pairStream(ports.SourceSitePair{Source: far, Sites: sites})))
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestSourceSiteDistanceFilterPassesUnlocatedSources(t *testing.T) {
	sites := testkit.Sites(3)
	src := testkit.Source("static", 0.1)

	filter := NewSourceSiteDistanceFilter(1)
	kept, err := FilteredSeq(filter(pairStream(ports.SourceSitePair{Source: src, Sites: sites})))
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, 3, kept[0].Sites.Len())
}

func TestSourceSiteDistanceFilterRejectsBadBound(t *testing.T) {
	filter := NewSourceSiteDistanceFilter(0)
	_, err := FilteredSeq(filter(pairStream()))
	assert.True(t, core.IsFilterError(err))
}

func TestRuptureSiteDistanceFilterReduces(t *testing.T) {
	sites := testkit.Sites(4)
	rup := &seismic.Rupture{Magnitude: 6, TectonicRegionType: testkit.TestTRT,
		Hypocenter: geo.Point{Longitude: 3, Depth: 10}}

	filter := NewRuptureSiteDistanceFilter(200)
	stream := func(yield func(ports.RuptureSitePair, error) bool) {
		yield(ports.RuptureSitePair{Rupture: rup, Sites: sites}, nil)
	}
	kept, err := FilteredSeq(filter(stream))
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, []int{2, 3}, kept[0].Sites.Indices())
}

func TestDistanceFilteredCurvesExpandWithZeros(t *testing.T) {
	// Sites beyond the bound receive no contribution: their curve stays zero
	// while filtered-in sites keep the unfiltered value.
	in := baseInputs(&testkit.StubGSIM{PoE: 0.5}, testkit.Source("s1", rateFor(0.1)))
	in.Sites = testkit.Sites(4)
	in.RuptureSiteFilter = NewRuptureSiteDistanceFilter(200)

	curves, err := HazardCurvesPoissonian(context.Background(), in)
	require.NoError(t, err)

	curve := curves[imt.PGA]
	want := 1 - math.Pow(0.9, 0.5)
	assert.InDelta(t, want, curve.At(0, 0), 1e-12)
	assert.InDelta(t, want, curve.At(1, 0), 1e-12)
	assert.Equal(t, 0.0, curve.At(2, 0))
	assert.Equal(t, 0.0, curve.At(3, 0))
}
