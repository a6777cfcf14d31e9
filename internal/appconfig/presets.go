// internal/appconfig/presets.go
package appconfig

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// PresetName identifies a bundle of report settings.
type PresetName string

const (
	PresetTerminal     PresetName = "terminal"
	PresetLaTeX        PresetName = "latex"
	PresetPaper        PresetName = "paper"
	PresetPaperPrecise PresetName = "paper-precise"
)

// Preset holds the settings a preset changes. Nil fields keep the regular
// default.
type Preset struct {
	ToLaTeX          *bool
	HighlightMinMax  *bool
	NumDecimals      *int
	UnknownPlacement *string
}

var presets = map[PresetName]Preset{
	PresetTerminal: {},
	PresetLaTeX: {
		ToLaTeX: ptrBool(true),
	},
	PresetPaper: {
		ToLaTeX:         ptrBool(true),
		HighlightMinMax: ptrBool(true),
		NumDecimals:     ptrInt(3),
	},
	// Four decimals and unlisted feature sets at the bottom, for appendix tables.
	PresetPaperPrecise: {
		ToLaTeX:          ptrBool(true),
		HighlightMinMax:  ptrBool(true),
		NumDecimals:      ptrInt(4),
		UnknownPlacement: ptrString("last"),
	},
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// PresetFor looks up a preset by name. Empty means terminal.
func PresetFor(name string) (Preset, error) {
	n := PresetName(strings.ToLower(strings.TrimSpace(name)))
	if n == "" {
		n = PresetTerminal
	}
	p, ok := presets[n]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// ApplyPreset registers the preset's values as viper defaults, so the config
// file, environment and flags still override them.
func ApplyPreset(v *viper.Viper, name string) error {
	p, err := PresetFor(name)
	if err != nil {
		return err
	}
	if p.ToLaTeX != nil {
		v.SetDefault("toLatex", *p.ToLaTeX)
	}
	if p.HighlightMinMax != nil {
		v.SetDefault("highlightMinMax", *p.HighlightMinMax)
	}
	if p.NumDecimals != nil {
		v.SetDefault("numDecimals", *p.NumDecimals)
	}
	if p.UnknownPlacement != nil {
		v.SetDefault("unknownPlacement", *p.UnknownPlacement)
	}
	return nil
}

func ptrBool(v bool) *bool       { return &v }
func ptrInt(v int) *int          { return &v }
func ptrString(v string) *string { return &v }
