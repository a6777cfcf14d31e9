package appconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/k0kubun/pp"
)

// ShowConfig prints the current configuration summary. With verbose set the
// full struct is dumped as well.
func ShowConfig(out io.Writer, file string, cfg *Config, verbose bool) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		d := Defaults()
		cfg = &d
	}

	order := "default"
	if len(cfg.FeatureSetOrder) > 0 {
		order = strings.Join(cfg.FeatureSetOrder, ", ")
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:             %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:          %s\n", valueOrNone(cfg.LogFilePath()))
	fmt.Fprintf(out, "  Preset:            %s\n", valueOrNone(cfg.Preset))
	fmt.Fprintf(out, "  Input:             %s\n", valueOrNone(cfg.Input))
	fmt.Fprintf(out, "  To LaTeX:          %v\n", cfg.ToLaTeX)
	fmt.Fprintf(out, "  Highlight Min/Max: %v\n", cfg.HighlightMinMax)
	fmt.Fprintf(out, "  Num Decimals:      %d\n", cfg.NumDecimals)
	fmt.Fprintf(out, "  Unknown Placement: %s\n", cfg.UnknownPlacement)
	fmt.Fprintf(out, "  Feature Set Order: %s\n", order)
	fmt.Fprintf(out, "  Export:            %s\n", valueOrNone(cfg.ExportPath))
	fmt.Fprintf(out, "  Plot:              %s (%s)\n", valueOrNone(cfg.PlotPath), cfg.PlotMetricName())
	fmt.Fprintf(out, "  Tags:              best=\\%s worst=\\%s\n", cfg.BestTag, cfg.WorstTag)

	if verbose {
		fmt.Fprintln(out)
		pp.Fprintln(out, *cfg)
	}
}

func valueOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}
