// internal/report/highlight.go
package report

import (
	"math"

	"github.com/mwiater/featcmp/internal/metrics"
)

// Mark classifies a cell for highlighting.
type Mark int

const (
	// MarkNone leaves the cell untagged.
	MarkNone Mark = iota
	// MarkBest tags the most favorable value of a column.
	MarkBest
	// MarkWorst tags the least favorable value of a column.
	MarkWorst
)

// errorRateMetrics are columns where a lower value is better.
var errorRateMetrics = map[string]bool{
	metrics.MetricFPR: true,
	metrics.MetricFNR: true,
}

// Inverted reports whether lower is better for the column. Std columns and
// error rates each flip the direction, so the std of an error rate is not
// inverted.
func Inverted(key metrics.ColumnKey) bool {
	invert := key.IsStd()
	if errorRateMetrics[key.Metric] {
		invert = !invert
	}
	return invert
}

// columnBounds holds the un-rounded extremes of one column.
type columnBounds struct {
	min, max float64
	ok       bool
	invert   bool
}

// Highlighter decides per-cell marks from raw column extremes.
type Highlighter struct {
	bounds []columnBounds
}

// NewHighlighter computes min/max for every column of t. Extremes are taken
// over the full table, before any column is hidden from output.
func NewHighlighter(t metrics.Table) *Highlighter {
	h := &Highlighter{bounds: make([]columnBounds, len(t.Columns))}
	for i, key := range t.Columns {
		min, max, ok := t.ColumnRange(i)
		h.bounds[i] = columnBounds{min: min, max: max, ok: ok, invert: Inverted(key)}
	}
	return h
}

// Mark compares the raw value with the column extremes. Exact ties all get
// the tag; when min equals max the min branch wins.
func (h *Highlighter) Mark(col int, v float64) Mark {
	b := h.bounds[col]
	if !b.ok || math.IsNaN(v) {
		return MarkNone
	}
	switch v {
	case b.min:
		if b.invert {
			return MarkBest
		}
		return MarkWorst
	case b.max:
		if b.invert {
			return MarkWorst
		}
		return MarkBest
	}
	return MarkNone
}
