package hazard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"gohaz/domain/imt"
)

func TestSummarize(t *testing.T) {
	curves := CurveSet{
		imt.PGA: mat.NewDense(3, 2, []float64{
			0.1, 0.01,
			0.2, 0.02,
			0.6, 0.03,
		}),
	}

	summaries, err := Summarize(curves, testLevels)
	require.NoError(t, err)
	require.Len(t, summaries[imt.PGA], 2)

	first := summaries[imt.PGA][0]
	assert.Equal(t, 0.1, first.Level)
	assert.InDelta(t, 0.3, first.Mean, 1e-12)
	assert.InDelta(t, 0.2, first.Median, 1e-12)
	assert.InDelta(t, 0.6, first.Max, 1e-12)

	second := summaries[imt.PGA][1]
	assert.Equal(t, 0.2, second.Level)
	assert.InDelta(t, 0.02, second.Mean, 1e-12)
}

func TestSummarizeRejectsMissingLevels(t *testing.T) {
	curves := CurveSet{imt.PGV: mat.NewDense(1, 2, nil)}
	_, err := Summarize(curves, testLevels)
	assert.Error(t, err)
}

func TestSummarizeRejectsLevelCountMismatch(t *testing.T) {
	curves := CurveSet{imt.PGA: mat.NewDense(1, 3, nil)}
	_, err := Summarize(curves, testLevels)
	assert.Error(t, err)
}
