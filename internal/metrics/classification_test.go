package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracyMatchesConfusion(t *testing.T) {
	groups := []Group{
		{YTrue: []int{1, 0, 1, 0}, YPred: []int{1, 0, 0, 0}},
		{YTrue: []int{1, 1, 1}, YPred: []int{0, 0, 1}},
		{YTrue: []int{0, 1, 0, 1, 0, 1}, YPred: []int{1, 0, 1, 0, 1, 0}},
	}
	for _, g := range groups {
		c, err := NewConfusion(g.YTrue, g.YPred)
		require.NoError(t, err)
		acc, err := Accuracy(g)
		require.NoError(t, err)
		assert.InDelta(t, float64(c.TP+c.TN)/float64(c.TP+c.TN+c.FP+c.FN), acc, 1e-12)
	}
}

func TestBalancedAccuracy(t *testing.T) {
	g := Group{YTrue: []int{1, 1, 1, 0}, YPred: []int{1, 0, 0, 0}}
	v, err := BalancedAccuracy(g)
	require.NoError(t, err)
	// recall(1)=1/3, recall(0)=1
	assert.InDelta(t, (1.0/3.0+1.0)/2, v, 1e-12)

	single := Group{YTrue: []int{0, 0}, YPred: []int{0, 1}}
	v, err = BalancedAccuracy(single)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestPrecisionRecallF1(t *testing.T) {
	g := Group{YTrue: []int{1, 1, 0, 0, 1}, YPred: []int{1, 0, 1, 0, 1}}

	p, err := Precision(g)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, p, 1e-12)

	r, err := Recall(g)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, r, 1e-12)

	f, err := F1(g)
	require.NoError(t, err)
	assert.InDelta(t, 2*p*r/(p+r), f, 1e-12)
}

func TestPrecisionRecallZeroDivision(t *testing.T) {
	g := Group{YTrue: []int{0, 0}, YPred: []int{0, 0}}

	p, err := Precision(g)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)

	r, err := Recall(g)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)

	f, err := F1(g)
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)
}

func TestAUROC(t *testing.T) {
	g := Group{
		YTrue: []int{0, 0, 1, 1},
		Proba: []float64{0.1, 0.4, 0.35, 0.8},
	}
	v, err := AUROC(g)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v, 1e-12)

	perfect := Group{YTrue: []int{1, 0, 1, 0}, Proba: []float64{0.9, 0.1, 0.8, 0.2}}
	v, err = AUROC(perfect)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)

	tied := Group{YTrue: []int{0, 1}, Proba: []float64{0.5, 0.5}}
	v, err = AUROC(tied)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestAUROCSingleClassIsUndefined(t *testing.T) {
	g := Group{YTrue: []int{1, 1, 1}, Proba: []float64{0.2, 0.5, 0.9}}
	v, err := AUROC(g)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))
}
