// internal/report/report.go
// Package report renders metric comparisons: terminal tables, LaTeX with
// min/max highlighting, file exports and bar charts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/featcmp/internal/appconfig"
	"github.com/mwiater/featcmp/internal/logging"
	"github.com/mwiater/featcmp/internal/metrics"
	"github.com/mwiater/featcmp/internal/predictions"
)

// Section titles printed before each table.
const (
	TitleCombined = "COMBINED"
	TitleGrouped  = "GROUPED"
)

// Options drives one report run.
type Options struct {
	Input           string
	ToLaTeX         bool
	Highlight       bool
	Decimals        int
	Placement       metrics.Placement
	FeatureSetOrder []string
	ExportPath      string
	PlotPath        string
	PlotMetric      string
	BestTag         string
	WorstTag        string
}

// OptionsFromConfig maps the merged configuration onto report options.
func OptionsFromConfig(cfg appconfig.Config) (Options, error) {
	placement, err := metrics.ParsePlacement(cfg.UnknownPlacement)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Input:           cfg.Input,
		ToLaTeX:         cfg.ToLaTeX,
		Highlight:       cfg.HighlightMinMax,
		Decimals:        cfg.NumDecimals,
		Placement:       placement,
		FeatureSetOrder: cfg.FeatureSetOrder,
		ExportPath:      cfg.ExportPath,
		PlotPath:        cfg.PlotPath,
		PlotMetric:      cfg.PlotMetricName(),
		BestTag:         cfg.BestTag,
		WorstTag:        cfg.WorstTag,
	}, nil
}

// Aggregator builds the aggregator configured by o.
func (o Options) Aggregator() *metrics.Aggregator {
	return metrics.NewAggregator(metrics.DefaultRegistry(), metrics.NewOrderer(o.FeatureSetOrder, o.Placement))
}

func (o Options) latex() LaTeXOptions {
	return LaTeXOptions{Highlight: o.Highlight, Decimals: o.Decimals, BestTag: o.BestTag, WorstTag: o.WorstTag}
}

// Build loads the input and computes every table. Nothing is printed, so a
// failure here leaves no partial output.
func Build(o Options) (metrics.Comparison, error) {
	if strings.TrimSpace(o.Input) == "" {
		return metrics.Comparison{}, fmt.Errorf("no input file given (use --file)")
	}
	set, err := predictions.Load(o.Input)
	if err != nil {
		return metrics.Comparison{}, err
	}
	if err := set.RequireRunName(); err != nil {
		return metrics.Comparison{}, err
	}
	return o.Aggregator().Compare(set.Records)
}

// Write prints the combined and grouped sections of c.
func Write(out io.Writer, c metrics.Comparison, o Options) {
	writeTable(out, TitleCombined, c.Combined, o)
	fmt.Fprintln(out)
	writeTable(out, TitleGrouped, c.Grouped, o)
}

func writeTable(out io.Writer, title string, t metrics.Table, o Options) {
	WriteSection(out, title)
	fmt.Fprintln(out, Plain(t))
	if o.ToLaTeX {
		fmt.Fprintln(out)
		fmt.Fprint(out, LaTeX(t, o.latex()))
	}
}

// Generate runs the full pipeline: build, print, then the optional export
// and plot.
func Generate(o Options, out io.Writer) error {
	c, err := Build(o)
	if err != nil {
		return err
	}
	Write(out, c, o)

	if o.ExportPath != "" {
		if err := Export(o.ExportPath, o.Input, c); err != nil {
			return err
		}
	}
	if o.PlotPath != "" {
		if err := Plot(o.PlotPath, c.Grouped, o.PlotMetric); err != nil {
			return err
		}
	}
	logging.LogEvent("[REPORT] %s: %d feature sets, %d runs", o.Input, len(c.Combined.Rows), len(c.PerRun.Rows))
	return nil
}
