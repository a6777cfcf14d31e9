// internal/appconfig/appconfig.go
// Package appconfig holds the merged featcmp configuration (defaults, config
// file, environment and flags) and its validation rules.
package appconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the config file consulted when --config is not given.
	DefaultConfigPath = "config/featcmp.yaml"
	// EnvPrefix prefixes environment overrides, e.g. FEATCMP_NUMDECIMALS.
	EnvPrefix = "FEATCMP"
	// defaultNumDecimals is the LaTeX rounding precision.
	defaultNumDecimals = 3
	// maxNumDecimals caps the precision so %.*f stays readable.
	maxNumDecimals = 12
	// defaultPlotMetric is charted by --plot when --plot-metric is empty.
	defaultPlotMetric = "AUROC"
	defaultBestTag    = "textBlue"
	defaultWorstTag   = "textOrange"
)

// Config represents the complete application configuration.
type Config struct {
	Debug            bool     `mapstructure:"debug" json:"debug"`
	LogFile          string   `mapstructure:"logFile" json:"logFile,omitempty"`
	Preset           string   `mapstructure:"preset" json:"preset,omitempty"`
	Input            string   `mapstructure:"input" json:"input,omitempty"`
	ToLaTeX          bool     `mapstructure:"toLatex" json:"toLatex"`
	HighlightMinMax  bool     `mapstructure:"highlightMinMax" json:"highlightMinMax"`
	NumDecimals      int      `mapstructure:"numDecimals" json:"numDecimals"`
	UnknownPlacement string   `mapstructure:"unknownPlacement" json:"unknownPlacement"`
	FeatureSetOrder  []string `mapstructure:"featureSetOrder" json:"featureSetOrder,omitempty"`
	ExportPath       string   `mapstructure:"export" json:"export,omitempty"`
	PlotPath         string   `mapstructure:"plot" json:"plot,omitempty"`
	PlotMetric       string   `mapstructure:"plotMetric" json:"plotMetric"`
	BestTag          string   `mapstructure:"bestTag" json:"bestTag"`
	WorstTag         string   `mapstructure:"worstTag" json:"worstTag"`
	ConfigPath       string   `mapstructure:"-" json:"-"`
}

// Defaults returns the configuration used when neither a file nor flags set a value.
func Defaults() Config {
	return Config{
		NumDecimals:      defaultNumDecimals,
		UnknownPlacement: "first",
		PlotMetric:       defaultPlotMetric,
		BestTag:          defaultBestTag,
		WorstTag:         defaultWorstTag,
	}
}

// SetDefaults registers Defaults() on v so unset keys resolve predictably.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("logFile", d.LogFile)
	v.SetDefault("toLatex", d.ToLaTeX)
	v.SetDefault("highlightMinMax", d.HighlightMinMax)
	v.SetDefault("numDecimals", d.NumDecimals)
	v.SetDefault("unknownPlacement", d.UnknownPlacement)
	v.SetDefault("plotMetric", d.PlotMetric)
	v.SetDefault("bestTag", d.BestTag)
	v.SetDefault("worstTag", d.WorstTag)
}

// Validate rejects settings the report pipeline cannot honor.
func (c Config) Validate() error {
	if c.NumDecimals < 0 || c.NumDecimals > maxNumDecimals {
		return fmt.Errorf("invalid configuration: numDecimals must be between 0 and %d, got %d", maxNumDecimals, c.NumDecimals)
	}
	switch strings.ToLower(strings.TrimSpace(c.UnknownPlacement)) {
	case "", "first", "last":
	default:
		return fmt.Errorf("invalid configuration: unknownPlacement must be \"first\" or \"last\", got %q", c.UnknownPlacement)
	}
	if _, err := PresetFor(c.Preset); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.HighlightMinMax && !c.ToLaTeX {
		return fmt.Errorf("invalid configuration: highlightMinMax requires toLatex")
	}
	if strings.TrimSpace(c.BestTag) == "" || strings.TrimSpace(c.WorstTag) == "" {
		return fmt.Errorf("invalid configuration: bestTag and worstTag must not be empty")
	}
	seen := make(map[string]struct{}, len(c.FeatureSetOrder))
	for _, name := range c.FeatureSetOrder {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid configuration: featureSetOrder contains an empty name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("invalid configuration: featureSetOrder lists %q twice", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// LogFilePath returns the log file path; empty disables file logging.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// PlotMetricName returns the metric charted by --plot.
func (c Config) PlotMetricName() string {
	if m := strings.TrimSpace(c.PlotMetric); m != "" {
		return m
	}
	return defaultPlotMetric
}
