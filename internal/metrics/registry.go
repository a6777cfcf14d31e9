// internal/metrics/registry.go
package metrics

import (
	"errors"
	"fmt"

	"github.com/mwiater/featcmp/internal/predictions"
)

// Display names of the built-in metrics.
const (
	MetricAccuracy         = "Accuracy"
	MetricBalancedAccuracy = "Balanced-Accuracy"
	MetricTPR              = "TPR"
	MetricTNR              = "TNR"
	MetricFPR              = "FPR"
	MetricFNR              = "FNR"
	MetricPrecision        = "Precision"
	MetricRecall           = "Recall"
	MetricF1               = "F1-Score"
	MetricAUROC            = "AUROC"
)

// ErrDuplicateMetric is returned when a name is registered twice.
var ErrDuplicateMetric = errors.New("metric already registered")

// Group is the column view of the records that fall into one partition.
type Group struct {
	YTrue []int
	YPred []int
	Proba []float64
}

// NewGroup copies the label and probability columns out of records.
func NewGroup(records []predictions.Record) Group {
	g := Group{
		YTrue: make([]int, len(records)),
		YPred: make([]int, len(records)),
		Proba: make([]float64, len(records)),
	}
	for i, r := range records {
		g.YTrue[i] = r.TrueLabel
		g.YPred[i] = r.PredLabel
		g.Proba[i] = r.PredProba
	}
	return g
}

// Len returns the number of rows in the group.
func (g Group) Len() int { return len(g.YTrue) }

// Func computes one metric for a group. An undefined value is reported as
// NaN; an error is reserved for data-integrity failures.
type Func func(Group) (float64, error)

// Metric pairs a display name with its function.
type Metric struct {
	Name string
	Fn   Func
}

// Registry is an ordered set of named metrics. Column order in every result
// table follows registration order.
type Registry struct {
	metrics []Metric
	index   map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// DefaultRegistry returns the ten standard binary-classification metrics.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister(MetricAccuracy, Accuracy)
	r.mustRegister(MetricBalancedAccuracy, BalancedAccuracy)
	r.mustRegister(MetricTPR, RateFunc(RateTPR))
	r.mustRegister(MetricTNR, RateFunc(RateTNR))
	r.mustRegister(MetricFPR, RateFunc(RateFPR))
	r.mustRegister(MetricFNR, RateFunc(RateFNR))
	r.mustRegister(MetricPrecision, Precision)
	r.mustRegister(MetricRecall, Recall)
	r.mustRegister(MetricF1, F1)
	r.mustRegister(MetricAUROC, AUROC)
	return r
}

// Register appends a metric. Names must be unique and non-empty.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("metric name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("metric %q has no function", name)
	}
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMetric, name)
	}
	r.index[name] = len(r.metrics)
	r.metrics = append(r.metrics, Metric{Name: name, Fn: fn})
	return nil
}

func (r *Registry) mustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Names returns metric names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.metrics))
	for i, m := range r.metrics {
		names[i] = m.Name
	}
	return names
}

// Lookup returns the metric registered under name.
func (r *Registry) Lookup(name string) (Metric, bool) {
	i, ok := r.index[name]
	if !ok {
		return Metric{}, false
	}
	return r.metrics[i], true
}

// Len returns the number of registered metrics.
func (r *Registry) Len() int { return len(r.metrics) }

// Evaluate applies every metric to g, in registration order. Evaluation stops
// at the first integrity error.
func (r *Registry) Evaluate(g Group) ([]float64, error) {
	values := make([]float64, len(r.metrics))
	for i, m := range r.metrics {
		v, err := m.Fn(g)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.Name, err)
		}
		values[i] = v
	}
	return values, nil
}
