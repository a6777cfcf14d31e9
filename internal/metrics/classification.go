package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Accuracy is (tp+tn)/n.
func Accuracy(g Group) (float64, error) {
	c, err := NewConfusion(g.YTrue, g.YPred)
	if err != nil {
		return math.NaN(), err
	}
	return divide(c.TP+c.TN, c.Total()), nil
}

// BalancedAccuracy averages the per-class recall over the classes present in
// y_true. With a single class present it equals that class's recall.
func BalancedAccuracy(g Group) (float64, error) {
	c, err := NewConfusion(g.YTrue, g.YPred)
	if err != nil {
		return math.NaN(), err
	}
	var (
		sum     float64
		classes int
	)
	if c.TN+c.FP > 0 {
		sum += c.TNR()
		classes++
	}
	if c.TP+c.FN > 0 {
		sum += c.TPR()
		classes++
	}
	if classes == 0 {
		return math.NaN(), nil
	}
	return sum / float64(classes), nil
}

// Precision is tp/(tp+fp), 0 when nothing was predicted positive.
func Precision(g Group) (float64, error) {
	c, err := NewConfusion(g.YTrue, g.YPred)
	if err != nil {
		return math.NaN(), err
	}
	return zeroDivide(c.TP, c.TP+c.FP), nil
}

// Recall is tp/(tp+fn), 0 when there are no positives.
func Recall(g Group) (float64, error) {
	c, err := NewConfusion(g.YTrue, g.YPred)
	if err != nil {
		return math.NaN(), err
	}
	return zeroDivide(c.TP, c.TP+c.FN), nil
}

// F1 is 2tp/(2tp+fp+fn), 0 when the denominator is 0.
func F1(g Group) (float64, error) {
	c, err := NewConfusion(g.YTrue, g.YPred)
	if err != nil {
		return math.NaN(), err
	}
	return zeroDivide(2*c.TP, 2*c.TP+c.FP+c.FN), nil
}

// AUROC is the area under the ROC curve of the predicted probabilities. It is
// NaN when y_true holds a single class.
func AUROC(g Group) (float64, error) {
	if len(g.YTrue) != len(g.Proba) {
		return math.NaN(), nil
	}

	var positives, negatives int
	for _, y := range g.YTrue {
		if y == 1 {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return math.NaN(), nil
	}

	// stat.ROC wants scores in increasing order with classes aligned.
	order := make([]int, len(g.Proba))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return g.Proba[order[a]] < g.Proba[order[b]] })

	scores := make([]float64, len(order))
	classes := make([]bool, len(order))
	for i, idx := range order {
		scores[i] = g.Proba[idx]
		classes[i] = g.YTrue[idx] == 1
	}

	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// zeroDivide follows the zero_division=0 convention of precision/recall/F1.
func zeroDivide(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
