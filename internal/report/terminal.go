package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/mwiater/featcmp/internal/metrics"
)

// plainDecimals is the precision of the terminal tables.
const plainDecimals = 3

var (
	sectionHeading = color.New(color.FgCyan, color.Bold).SprintFunc()
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	labelStyle     = lipgloss.NewStyle().Padding(0, 1)
)

// WriteSection prints a heading underlined with dashes.
func WriteSection(out io.Writer, title string) {
	fmt.Fprintln(out, sectionHeading(title))
	fmt.Fprintln(out, strings.Repeat("-", len(title)))
}

// FormatPlain renders a value for terminal output.
func FormatPlain(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.*f", plainDecimals, v)
}

// PlainHeaders returns the label and metric headers of t.
func PlainHeaders(t metrics.Table) []string {
	headers := []string{"feature_set"}
	if t.HasRunNames() {
		headers = append(headers, "run_name")
	}
	for _, c := range t.Columns {
		headers = append(headers, c.String())
	}
	return headers
}

// PlainRows returns t's rows as formatted strings aligned with PlainHeaders.
func PlainRows(t metrics.Table) [][]string {
	withRun := t.HasRunNames()
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		cells := []string{r.FeatureSet}
		if withRun {
			cells = append(cells, r.RunName)
		}
		for _, v := range r.Values {
			cells = append(cells, FormatPlain(v))
		}
		rows = append(rows, cells)
	}
	return rows
}

// Plain renders t as a bordered terminal table.
func Plain(t metrics.Table) string {
	labels := 1
	if t.HasRunNames() {
		labels = 2
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(PlainHeaders(t)...).
		Rows(PlainRows(t)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < labels:
				return labelStyle
			default:
				return cellStyle
			}
		})
	return tbl.Render()
}
