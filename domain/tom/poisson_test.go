package tom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gohaz/domain/core"
)

func TestNewPoissonTOM(t *testing.T) {
	tom, err := NewPoissonTOM(50)
	require.NoError(t, err)
	assert.Equal(t, 50.0, tom.TimeSpan())
}

func TestNewPoissonTOMRejectsNonPositiveSpan(t *testing.T) {
	for _, span := range []float64{0, -1, -50} {
		_, err := NewPoissonTOM(span)
		require.Error(t, err)
		assert.True(t, core.IsDomainError(err))
	}
}

func TestProbabilityOneOrMore(t *testing.T) {
	tom, err := NewPoissonTOM(50)
	require.NoError(t, err)

	tests := []struct {
		rate     float64
		expected float64
	}{
		{0, 0},
		{0.01, 1 - math.Exp(-0.5)},
		{0.1, 1 - math.Exp(-5)},
		{10, 1 - math.Exp(-500)},
	}
	for _, tc := range tests {
		p, err := tom.ProbabilityOneOrMore(tc.rate)
		require.NoError(t, err)
		assert.InDelta(t, tc.expected, p, 1e-12)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
}

func TestProbabilityOneOrMoreRejectsNegativeRate(t *testing.T) {
	tom, err := NewPoissonTOM(1)
	require.NoError(t, err)

	_, err = tom.ProbabilityOneOrMore(-0.5)
	require.Error(t, err)
	assert.True(t, core.IsDomainError(err))
}
