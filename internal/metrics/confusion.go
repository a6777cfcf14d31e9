// internal/metrics/confusion.go
package metrics

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfusionMismatch means the flattened confusion counts do not add up to
	// the group size, which only happens when labels outside {0,1} reach the
	// metrics layer.
	ErrConfusionMismatch = errors.New("confusion matrix counts do not match group size")
	// ErrUnknownRate is returned for a rate name outside tnr, fpr, fnr, tpr.
	ErrUnknownRate = errors.New("unknown confusion rate")
)

// Rate names accepted by Confusion.Rate, in the flattened matrix order.
const (
	RateTNR = "tnr"
	RateFPR = "fpr"
	RateFNR = "fnr"
	RateTPR = "tpr"
)

// Confusion is a flattened 2x2 confusion matrix. Rows are the true class
// (0, 1) and columns the predicted class (0, 1), read in row-major order.
type Confusion struct {
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TP int `json:"tp"`
}

// NewConfusion counts label pairs. The four counts must add up to len(yTrue).
func NewConfusion(yTrue, yPred []int) (Confusion, error) {
	if len(yTrue) != len(yPred) {
		return Confusion{}, fmt.Errorf("label length mismatch: %d true vs %d predicted", len(yTrue), len(yPred))
	}

	var c Confusion
	for i := range yTrue {
		switch {
		case yTrue[i] == 0 && yPred[i] == 0:
			c.TN++
		case yTrue[i] == 0 && yPred[i] == 1:
			c.FP++
		case yTrue[i] == 1 && yPred[i] == 0:
			c.FN++
		case yTrue[i] == 1 && yPred[i] == 1:
			c.TP++
		}
	}

	if c.Total() != len(yTrue) {
		return Confusion{}, fmt.Errorf("%w: tn+fp+fn+tp=%d, group size=%d", ErrConfusionMismatch, c.Total(), len(yTrue))
	}
	return c, nil
}

// Total returns tn+fp+fn+tp.
func (c Confusion) Total() int {
	return c.TN + c.FP + c.FN + c.TP
}

// Flatten returns the counts as (tn, fp, fn, tp).
func (c Confusion) Flatten() [4]int {
	return [4]int{c.TN, c.FP, c.FN, c.TP}
}

// TPR is tp/(tp+fn); NaN without positives.
func (c Confusion) TPR() float64 { return divide(c.TP, c.TP+c.FN) }

// TNR is tn/(tn+fp); NaN without negatives.
func (c Confusion) TNR() float64 { return divide(c.TN, c.TN+c.FP) }

// FPR is fp/(tn+fp); NaN without negatives.
func (c Confusion) FPR() float64 { return divide(c.FP, c.TN+c.FP) }

// FNR is fn/(tp+fn); NaN without positives.
func (c Confusion) FNR() float64 { return divide(c.FN, c.TP+c.FN) }

// Rate returns the named rate.
func (c Confusion) Rate(name string) (float64, error) {
	switch name {
	case RateTNR:
		return c.TNR(), nil
	case RateFPR:
		return c.FPR(), nil
	case RateFNR:
		return c.FNR(), nil
	case RateTPR:
		return c.TPR(), nil
	default:
		return math.NaN(), fmt.Errorf("%w %q", ErrUnknownRate, name)
	}
}

// RateFunc builds a metric that extracts one confusion rate from a group.
func RateFunc(name string) Func {
	return func(g Group) (float64, error) {
		c, err := NewConfusion(g.YTrue, g.YPred)
		if err != nil {
			return math.NaN(), err
		}
		return c.Rate(name)
	}
}

// divide returns NaN for a zero denominator instead of panicking or returning Inf.
func divide(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}
