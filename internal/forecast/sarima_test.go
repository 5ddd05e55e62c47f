package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifference(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5, 6, 7, 8, 10, 13}
	// (1-B)(1-B^7): t=8 -> 10-8-2+1 = 1, t=9 -> 13-10-3+2 = 2
	assert.Equal(t, []float64{1, 2}, difference(y, 7))
	assert.Nil(t, difference(y[:8], 7))
}

func TestFitSeasonal_TooShort(t *testing.T) {
	_, err := fitSeasonal(make([]float64, 11), 7)
	assert.ErrorIs(t, err, errTooShort)
}

func TestFitSeasonal_RejectsNonFiniteInput(t *testing.T) {
	y := make([]float64, 30)
	y[10] = math.NaN()
	_, err := fitSeasonal(y, 7)
	assert.ErrorIs(t, err, errNonFinite)
}

func TestSeasonalForecast_ZeroSeries(t *testing.T) {
	out, err := seasonalForecast(make([]float64, 30), 30)
	require.NoError(t, err)
	assert.Len(t, out, 30)
	for _, v := range out {
		assert.InDelta(t, 0.0, v, 1e-9)
	}
}

func TestSeasonalModel_CSSMatchesManualResiduals(t *testing.T) {
	m := &seasonalModel{period: 2, w: []float64{1, 2, 3, 5, 8}}
	out := make([]float64, len(m.w))

	// start = 3; e3 = 5 - (0.5*3 + 0.1*2 - 0.05*1) = 3.35
	// e4 = 8 - (0.5*5 + 0.1*3 - 0.05*2 + 0.2*3.35) = 4.63
	sse := m.css(0.5, 0.2, 0.1, out)

	assert.InDelta(t, 3.35, out[3], 1e-12)
	assert.InDelta(t, 4.63, out[4], 1e-12)
	assert.InDelta(t, 3.35*3.35+4.63*4.63, sse, 1e-9)
}
