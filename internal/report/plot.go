package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/mwiater/featcmp/internal/logging"
	"github.com/mwiater/featcmp/internal/metrics"
	"github.com/mwiater/featcmp/internal/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrUnknownPlotMetric is returned when the charted metric is not a column of
// the grouped table.
var ErrUnknownPlotMetric = errors.New("plot metric not found in grouped table")

// meanErrors pairs bar positions with std half-widths for plotter.YErrorBars.
type meanErrors struct {
	means plotter.Values
	stds  []float64
}

func (m meanErrors) Len() int { return len(m.means) }

func (m meanErrors) XY(i int) (float64, float64) { return float64(i), m.means[i] }

func (m meanErrors) YError(i int) (float64, float64) { return m.stds[i], m.stds[i] }

// barSeries extracts the mean and std columns for metric, in row order. NaN
// means plot as zero-height bars and NaN stds as no error bar.
func barSeries(grouped metrics.Table, metric string) (names []string, series meanErrors, err error) {
	meanCol := grouped.ColumnIndex(metrics.ColumnKey{Metric: metric, Stat: metrics.StatMean})
	stdCol := grouped.ColumnIndex(metrics.ColumnKey{Metric: metric, Stat: metrics.StatStd})
	if meanCol < 0 || stdCol < 0 {
		return nil, meanErrors{}, fmt.Errorf("%w: %q", ErrUnknownPlotMetric, metric)
	}
	for _, row := range grouped.Rows {
		names = append(names, row.FeatureSet)
		series.means = append(series.means, zeroIfNaN(row.Values[meanCol]))
		series.stds = append(series.stds, zeroIfNaN(row.Values[stdCol]))
	}
	return names, series, nil
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// Plot charts the grouped mean of metric per feature set with std error bars
// and saves it to path. The image format follows the extension (.png, .svg,
// .pdf).
func Plot(path string, grouped metrics.Table, metric string) error {
	names, series, err := barSeries(grouped, metric)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s by feature set", metric)
	p.Y.Label.Text = metric + " (mean ± std)"

	bars, err := plotter.NewBarChart(series.means, vg.Points(24))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 66, G: 133, B: 244, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	errBars, err := plotter.NewYErrorBars(series)
	if err != nil {
		return fmt.Errorf("error bars: %w", err)
	}
	p.Add(errBars)
	p.Add(plotter.NewGrid())
	p.NominalX(names...)

	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	width := vg.Length(util.Max(6, len(names))) * vg.Inch
	if err := p.Save(width, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	logging.LogEvent("[PLOT] wrote %s (%s, %d feature sets)", path, metric, len(names))
	return nil
}
