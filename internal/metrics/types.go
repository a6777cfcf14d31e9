// internal/metrics/types.go
package metrics

import "math"

// Stat labels used as the second level of a grouped column.
const (
	StatNone = ""
	StatMean = "mean"
	StatStd  = "std"
)

// ColumnKey identifies a numeric column: the metric name plus, for grouped
// tables, the aggregate applied across runs.
type ColumnKey struct {
	Metric string `json:"metric" yaml:"metric"`
	Stat   string `json:"stat,omitempty" yaml:"stat,omitempty"`
}

// String renders the key as "Metric" or "Metric/stat".
func (k ColumnKey) String() string {
	if k.Stat == StatNone {
		return k.Metric
	}
	return k.Metric + "/" + k.Stat
}

// IsStd reports whether the column holds a standard deviation.
func (k ColumnKey) IsStd() bool { return k.Stat == StatStd }

// Row is one feature set (and, for per-run tables, one run) with values
// aligned to Table.Columns.
type Row struct {
	FeatureSet string    `json:"feature_set" yaml:"feature_set"`
	RunName    string    `json:"run_name,omitempty" yaml:"run_name,omitempty"`
	Values     []float64 `json:"values" yaml:"values"`
}

// Table is the shared shape of the combined, grouped and per-run results.
type Table struct {
	Name    string      `json:"name" yaml:"name"`
	Columns []ColumnKey `json:"columns" yaml:"columns"`
	Rows    []Row       `json:"rows" yaml:"rows"`
}

// Grouped reports whether the table carries mean/std sub-columns.
func (t Table) Grouped() bool {
	for _, c := range t.Columns {
		if c.Stat != StatNone {
			return true
		}
	}
	return false
}

// HasRunNames reports whether rows are keyed by run as well as feature set.
func (t Table) HasRunNames() bool {
	for _, r := range t.Rows {
		if r.RunName != "" {
			return true
		}
	}
	return false
}

// ColumnIndex returns the position of key, or -1.
func (t Table) ColumnIndex(key ColumnKey) int {
	for i, c := range t.Columns {
		if c == key {
			return i
		}
	}
	return -1
}

// Column returns the values of one column in row order.
func (t Table) Column(i int) []float64 {
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row.Values[i]
	}
	return out
}

// Value returns the cell for featureSet and key, and whether it exists.
func (t Table) Value(featureSet string, key ColumnKey) (float64, bool) {
	col := t.ColumnIndex(key)
	if col < 0 {
		return math.NaN(), false
	}
	for _, row := range t.Rows {
		if row.FeatureSet == featureSet {
			return row.Values[col], true
		}
	}
	return math.NaN(), false
}

// FeatureSets lists the row labels in table order.
func (t Table) FeatureSets() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.FeatureSet
	}
	return out
}

// ColumnRange returns the min and max of a column, ignoring NaN. ok is false
// when every value is NaN.
func (t Table) ColumnRange(i int) (min, max float64, ok bool) {
	for _, row := range t.Rows {
		v := row.Values[i]
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

// Comparison bundles the three views derived from one input.
type Comparison struct {
	Combined Table `json:"combined" yaml:"combined"`
	Grouped  Table `json:"grouped" yaml:"grouped"`
	PerRun   Table `json:"per_run" yaml:"per_run"`
}
