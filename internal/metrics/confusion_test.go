package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfusionCounts(t *testing.T) {
	yTrue := []int{1, 0, 1, 0, 1, 1, 0}
	yPred := []int{1, 0, 0, 1, 1, 0, 0}

	c, err := NewConfusion(yTrue, yPred)
	require.NoError(t, err)

	assert.Equal(t, Confusion{TN: 2, FP: 1, FN: 2, TP: 2}, c)
	assert.Equal(t, [4]int{2, 1, 2, 2}, c.Flatten())
	assert.Equal(t, len(yTrue), c.Total())
}

func TestNewConfusionMismatch(t *testing.T) {
	_, err := NewConfusion([]int{1, 2, 0}, []int{1, 1, 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfusionMismatch))

	_, err = NewConfusion([]int{1, 0}, []int{1})
	require.Error(t, err)
}

func TestConfusionRates(t *testing.T) {
	c := Confusion{TN: 3, FP: 1, FN: 2, TP: 4}

	assert.InDelta(t, 4.0/6.0, c.TPR(), 1e-12)
	assert.InDelta(t, 3.0/4.0, c.TNR(), 1e-12)
	assert.InDelta(t, 1.0/4.0, c.FPR(), 1e-12)
	assert.InDelta(t, 2.0/6.0, c.FNR(), 1e-12)

	assert.InDelta(t, 1.0, c.TPR()+c.FNR(), 1e-12)
	assert.InDelta(t, 1.0, c.TNR()+c.FPR(), 1e-12)

	for _, name := range []string{RateTNR, RateFPR, RateFNR, RateTPR} {
		v, err := c.Rate(name)
		require.NoError(t, err, name)
		assert.False(t, math.IsNaN(v), name)
	}

	_, err := c.Rate("ppv")
	assert.True(t, errors.Is(err, ErrUnknownRate))
}

func TestConfusionRatesUndefined(t *testing.T) {
	// No positives: tpr and fnr have a zero denominator.
	c, err := NewConfusion([]int{0, 0, 0}, []int{0, 1, 0})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(c.TPR()))
	assert.True(t, math.IsNaN(c.FNR()))
	assert.InDelta(t, 2.0/3.0, c.TNR(), 1e-12)
	assert.InDelta(t, 1.0/3.0, c.FPR(), 1e-12)
}

func TestRateFunc(t *testing.T) {
	g := Group{YTrue: []int{1, 1, 0, 0}, YPred: []int{1, 0, 0, 0}, Proba: []float64{0.9, 0.4, 0.2, 0.1}}

	tpr, err := RateFunc(RateTPR)(g)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, tpr, 1e-12)

	bad := Group{YTrue: []int{1, 5}, YPred: []int{1, 0}, Proba: []float64{0.9, 0.4}}
	_, err = RateFunc(RateTPR)(bad)
	assert.True(t, errors.Is(err, ErrConfusionMismatch))
}
