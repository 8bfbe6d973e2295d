package gsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gohaz/domain/core"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
)

func bt2003Contexts(vs30 float64) (*seismic.SiteContext, *seismic.RuptureContext, *seismic.DistanceContext) {
	return &seismic.SiteContext{Vs30: []float64{vs30}},
		&seismic.RuptureContext{Magnitude: 6.0},
		&seismic.DistanceContext{Rhypo: []float64{20.0}}
}

func TestBergeThierry2003MeanOnRock(t *testing.T) {
	model := NewBergeThierry2003()
	sctx, rctx, dctx := bt2003Contexts(800)

	means, stddevs, err := model.meanAndStddevs(sctx, rctx, dctx, bt2003Table[bt2003MinPeriod])
	require.NoError(t, err)

	// M 6 at 20 km hypocentral on rock, PGA proxy period.
	assert.InDelta(t, -2.0803971514, means[0], 1e-9)
	assert.InDelta(t, 0.6730456227, stddevs[0], 1e-9)
}

func TestBergeThierry2003MeanOnAlluvium(t *testing.T) {
	model := NewBergeThierry2003()
	sctx, rctx, dctx := bt2003Contexts(400)

	means, _, err := model.meanAndStddevs(sctx, rctx, dctx, bt2003Table[bt2003MinPeriod])
	require.NoError(t, err)
	assert.InDelta(t, -1.9975040881, means[0], 1e-9)
}

func TestBergeThierry2003Coefficients(t *testing.T) {
	model := NewBergeThierry2003()

	pga, err := model.coefficients(imt.PGA)
	require.NoError(t, err)
	shortest, err := model.coefficients(imt.SA(0.029412))
	require.NoError(t, err)
	assert.Equal(t, shortest, pga)

	// Published periods resolve within tolerance.
	_, err = model.coefficients(imt.SA(0.15))
	assert.NoError(t, err)

	_, err = model.coefficients(imt.SA(0.33))
	assert.True(t, core.IsConfigurationError(err))

	_, err = model.coefficients(imt.PGV)
	assert.True(t, core.IsConfigurationError(err))
}

func TestBergeThierry2003ExceedanceProbabilities(t *testing.T) {
	model := NewBergeThierry2003()
	sctx, rctx, dctx := bt2003Contexts(800)

	levels := []float64{0.01, 0.1, 0.5}
	poes, err := model.ExceedanceProbabilities(sctx, rctx, dctx, imt.PGA, levels, 3, 0)
	require.NoError(t, err)

	rows, cols := poes.Dims()
	require.Equal(t, 1, rows)
	require.Equal(t, 3, cols)
	for j := 1; j < cols; j++ {
		assert.Less(t, poes.At(0, j), poes.At(0, j-1))
	}
	for j := 0; j < cols; j++ {
		assert.GreaterOrEqual(t, poes.At(0, j), 0.0)
		assert.LessOrEqual(t, poes.At(0, j), 1.0)
	}
}

func TestBergeThierry2003CAVScreening(t *testing.T) {
	model := NewBergeThierry2003()
	sctx, rctx, dctx := bt2003Contexts(800)

	// Median PGA here is exp(-2.08) ~= 0.125 g; a floor above that zeroes
	// the whole row.
	poes, err := model.ExceedanceProbabilities(sctx, rctx, dctx, imt.PGA, []float64{0.01}, 3, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, poes.At(0, 0))
}

func TestBergeThierry2003RejectsBadDistance(t *testing.T) {
	model := NewBergeThierry2003()
	sctx := &seismic.SiteContext{Vs30: []float64{800}}
	rctx := &seismic.RuptureContext{Magnitude: 6}
	dctx := &seismic.DistanceContext{Rhypo: []float64{0}}

	_, err := model.ExceedanceProbabilities(sctx, rctx, dctx, imt.PGA, []float64{0.1}, 3, 0)
	assert.True(t, core.IsContextError(err))
}

func TestRegistryCatalog(t *testing.T) {
	model, err := ByName("BergeThierry2003")
	require.NoError(t, err)
	assert.NotNil(t, model)

	_, err = ByName("NoSuchModel")
	assert.True(t, core.IsConfigurationError(err))

	assert.Contains(t, Names(), "BergeThierry2003")
}

func TestBuildRegistry(t *testing.T) {
	registry, err := BuildRegistry(map[seismic.TectonicRegionType]string{
		seismic.StableContinental: "BergeThierry2003",
	})
	require.NoError(t, err)
	_, err = registry.Lookup(seismic.StableContinental)
	assert.NoError(t, err)

	_, err = BuildRegistry(map[seismic.TectonicRegionType]string{
		seismic.StableContinental: "NoSuchModel",
	})
	assert.True(t, core.IsConfigurationError(err))
}
