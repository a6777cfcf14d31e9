// internal/metrics/aggregator.go
package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/mwiater/featcmp/internal/logging"
	"github.com/mwiater/featcmp/internal/predictions"
	"gonum.org/v1/gonum/stat"
)

// Table names used by the aggregator.
const (
	TableCombined = "combined"
	TableGrouped  = "grouped"
	TablePerRun   = "per_run"
)

// Aggregator partitions prediction records and evaluates every registered
// metric per partition. It holds no state between calls.
type Aggregator struct {
	registry *Registry
	orderer  *Orderer
}

// NewAggregator wires a registry and an orderer. Nil arguments fall back to
// DefaultRegistry and the default feature set order.
func NewAggregator(registry *Registry, orderer *Orderer) *Aggregator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if orderer == nil {
		orderer = NewOrderer(nil, PlaceFirst)
	}
	return &Aggregator{registry: registry, orderer: orderer}
}

// Registry returns the metrics evaluated by this aggregator.
func (a *Aggregator) Registry() *Registry { return a.registry }

// groupKey identifies a partition. RunName is empty for the combined view.
type groupKey struct {
	FeatureSet string
	RunName    string
}

// partition splits records by key, returning keys in lexical order.
func partition(records []predictions.Record, byRun bool) ([]groupKey, map[groupKey][]predictions.Record) {
	groups := make(map[groupKey][]predictions.Record)
	for _, r := range records {
		key := groupKey{FeatureSet: r.FeatureSet}
		if byRun {
			key.RunName = r.RunName
		}
		groups[key] = append(groups[key], r)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].FeatureSet != keys[j].FeatureSet {
			return keys[i].FeatureSet < keys[j].FeatureSet
		}
		return keys[i].RunName < keys[j].RunName
	})
	return keys, groups
}

func (a *Aggregator) singleColumns() []ColumnKey {
	cols := make([]ColumnKey, 0, a.registry.Len())
	for _, name := range a.registry.Names() {
		cols = append(cols, ColumnKey{Metric: name})
	}
	return cols
}

// evaluate computes one row per partition in key order.
func (a *Aggregator) evaluate(records []predictions.Record, byRun bool) ([]Row, error) {
	keys, groups := partition(records, byRun)
	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		values, err := a.registry.Evaluate(NewGroup(groups[key]))
		if err != nil {
			if byRun {
				return nil, fmt.Errorf("feature set %q run %q: %w", key.FeatureSet, key.RunName, err)
			}
			return nil, fmt.Errorf("feature set %q: %w", key.FeatureSet, err)
		}
		rows = append(rows, Row{FeatureSet: key.FeatureSet, RunName: key.RunName, Values: values})
	}
	return rows, nil
}

// Combined computes every metric per feature set. Rows follow the canonical order.
func (a *Aggregator) Combined(records []predictions.Record) (Table, error) {
	rows, err := a.evaluate(records, false)
	if err != nil {
		return Table{}, err
	}
	a.orderer.SortRows(rows)

	table := Table{Name: TableCombined, Columns: a.singleColumns(), Rows: rows}
	logging.LogEvent("[METRICS] combined: %d feature sets, %d undefined cells", len(rows), countNaN(table))
	return table, nil
}

// PerRun computes every metric per (feature set, run). Rows follow the
// canonical feature set order, runs in lexical order within a feature set.
func (a *Aggregator) PerRun(records []predictions.Record) (Table, error) {
	rows, err := a.evaluate(records, true)
	if err != nil {
		return Table{}, err
	}
	a.orderer.SortRows(rows)
	return Table{Name: TablePerRun, Columns: a.singleColumns(), Rows: rows}, nil
}

// Grouped re-aggregates the per-run table by feature set, giving the mean and
// sample standard deviation of each metric across runs.
func (a *Aggregator) Grouped(records []predictions.Record) (Table, error) {
	perRun, err := a.PerRun(records)
	if err != nil {
		return Table{}, err
	}
	return a.GroupRuns(perRun), nil
}

// GroupRuns reduces a per-run table to one mean/std row per feature set.
func (a *Aggregator) GroupRuns(perRun Table) Table {
	columns := make([]ColumnKey, 0, 2*len(perRun.Columns))
	for _, c := range perRun.Columns {
		columns = append(columns, ColumnKey{Metric: c.Metric, Stat: StatMean}, ColumnKey{Metric: c.Metric, Stat: StatStd})
	}

	byFeatureSet := make(map[string][]Row)
	var order []string
	for _, row := range perRun.Rows {
		if _, seen := byFeatureSet[row.FeatureSet]; !seen {
			order = append(order, row.FeatureSet)
		}
		byFeatureSet[row.FeatureSet] = append(byFeatureSet[row.FeatureSet], row)
	}
	sort.Strings(order)

	rows := make([]Row, 0, len(order))
	for _, fs := range order {
		runs := byFeatureSet[fs]
		values := make([]float64, 0, len(columns))
		for col := range perRun.Columns {
			perRunValues := make([]float64, len(runs))
			for i, run := range runs {
				perRunValues[i] = run.Values[col]
			}
			mean, std := MeanStd(perRunValues)
			values = append(values, mean, std)
		}
		rows = append(rows, Row{FeatureSet: fs, Values: values})
	}
	a.orderer.SortRows(rows)

	table := Table{Name: TableGrouped, Columns: columns, Rows: rows}
	logging.LogEvent("[METRICS] grouped: %d feature sets from %d runs, %d undefined cells", len(rows), len(perRun.Rows), countNaN(table))
	return table
}

// Compare builds the combined, grouped and per-run views of one input.
func (a *Aggregator) Compare(records []predictions.Record) (Comparison, error) {
	combined, err := a.Combined(records)
	if err != nil {
		return Comparison{}, fmt.Errorf("combined stats: %w", err)
	}
	perRun, err := a.PerRun(records)
	if err != nil {
		return Comparison{}, fmt.Errorf("grouped stats: %w", err)
	}
	return Comparison{Combined: combined, Grouped: a.GroupRuns(perRun), PerRun: perRun}, nil
}

// MeanStd returns the mean and sample (n-1) standard deviation of values,
// skipping NaN. The mean is NaN with no usable values and the std is NaN with
// fewer than two.
func MeanStd(values []float64) (mean, std float64) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	switch len(clean) {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return clean[0], math.NaN()
	}
	return stat.MeanStdDev(clean, nil)
}

func countNaN(t Table) int {
	n := 0
	for _, row := range t.Rows {
		for _, v := range row.Values {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}
