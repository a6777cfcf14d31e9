package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/mwiater/featcmp/internal/metrics"
)

// LaTeXOptions controls typeset rendering.
type LaTeXOptions struct {
	Highlight bool
	Decimals  int
	// BestTag and WorstTag are macro names without the leading backslash.
	BestTag  string
	WorstTag string
}

// DefaultLaTeXOptions matches the report defaults: three decimals,
// \textBlue for best and \textOrange for worst.
func DefaultLaTeXOptions() LaTeXOptions {
	return LaTeXOptions{Decimals: 3, BestTag: "textBlue", WorstTag: "textOrange"}
}

// hiddenInTypeset lists grouped columns left out of the LaTeX table.
func hiddenInTypeset(key metrics.ColumnKey) bool {
	if key.Stat == metrics.StatNone {
		return false
	}
	switch key.Metric {
	case metrics.MetricAccuracy, metrics.MetricBalancedAccuracy:
		return true
	case metrics.MetricPrecision, metrics.MetricRecall,
		metrics.MetricTPR, metrics.MetricTNR, metrics.MetricFPR, metrics.MetricFNR:
		return key.IsStd()
	}
	return false
}

// TypesetColumns returns the indices of t's columns that appear in LaTeX output.
func TypesetColumns(t metrics.Table) []int {
	cols := make([]int, 0, len(t.Columns))
	for i, key := range t.Columns {
		if !hiddenInTypeset(key) {
			cols = append(cols, i)
		}
	}
	return cols
}

// FormatCell renders v with fixed decimals, wrapping it in the tag for mark.
func FormatCell(v float64, decimals int, mark Mark, opts LaTeXOptions) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	text := fmt.Sprintf("%.*f", decimals, v)
	switch mark {
	case MarkBest:
		return fmt.Sprintf("\\%s{%s}", opts.BestTag, text)
	case MarkWorst:
		return fmt.Sprintf("\\%s{%s}", opts.WorstTag, text)
	}
	return text
}

// LaTeX renders t as a booktabs tabular. Grouped tables get a two-level
// header with the metric spanning its mean/std columns.
func LaTeX(t metrics.Table, opts LaTeXOptions) string {
	if opts.BestTag == "" {
		opts.BestTag = DefaultLaTeXOptions().BestTag
	}
	if opts.WorstTag == "" {
		opts.WorstTag = DefaultLaTeXOptions().WorstTag
	}

	cols := TypesetColumns(t)
	var highlighter *Highlighter
	if opts.Highlight {
		highlighter = NewHighlighter(t)
	}

	var b strings.Builder
	b.WriteString("\\begin{tabular}{l" + strings.Repeat("r", len(cols)) + "}\n")
	b.WriteString("\\toprule\n")

	if t.Grouped() {
		writeGroupedHeader(&b, t, cols)
	} else {
		header := []string{escapeLaTeX(metricsLabel)}
		for _, c := range cols {
			header = append(header, escapeLaTeX(t.Columns[c].Metric))
		}
		b.WriteString(strings.Join(header, " & ") + " \\\\\n")
	}
	b.WriteString("\\midrule\n")

	for _, row := range t.Rows {
		cells := []string{escapeLaTeX(row.FeatureSet)}
		for _, c := range cols {
			mark := MarkNone
			if highlighter != nil {
				mark = highlighter.Mark(c, row.Values[c])
			}
			cells = append(cells, FormatCell(row.Values[c], opts.Decimals, mark, opts))
		}
		b.WriteString(strings.Join(cells, " & ") + " \\\\\n")
	}

	b.WriteString("\\bottomrule\n")
	b.WriteString("\\end{tabular}\n")
	return b.String()
}

const metricsLabel = "feature_set"

func writeGroupedHeader(b *strings.Builder, t metrics.Table, cols []int) {
	top := []string{escapeLaTeX(metricsLabel)}
	sub := []string{""}
	for i := 0; i < len(cols); {
		metric := t.Columns[cols[i]].Metric
		span := 0
		for i+span < len(cols) && t.Columns[cols[i+span]].Metric == metric {
			sub = append(sub, t.Columns[cols[i+span]].Stat)
			span++
		}
		if span == 1 {
			top = append(top, escapeLaTeX(metric))
		} else {
			top = append(top, fmt.Sprintf("\\multicolumn{%d}{r}{%s}", span, escapeLaTeX(metric)))
		}
		i += span
	}
	b.WriteString(strings.Join(top, " & ") + " \\\\\n")
	b.WriteString(strings.Join(sub, " & ") + " \\\\\n")
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}
