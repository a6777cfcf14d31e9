// internal/predictions/record.go
// Package predictions loads per-row model predictions tagged with the feature
// set and run that produced them.
package predictions

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Column names expected in every input format.
const (
	ColumnTrue       = "y_true"
	ColumnPred       = "y_pred"
	ColumnProba      = "y_pred_proba"
	ColumnFeatureSet = "feature_set"
	ColumnRunName    = "run_name"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the input.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupportedFormat is returned when the input extension has no reader.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrInvalidRecord is returned when a row carries an out-of-range label or probability.
	ErrInvalidRecord = errors.New("invalid prediction record")
)

// Record is a single prediction: the true label, the predicted label and
// probability, and the feature set / run it belongs to.
type Record struct {
	TrueLabel  int
	PredLabel  int
	PredProba  float64
	FeatureSet string
	RunName    string
}

// Validate checks labels are binary and the probability is a finite value in [0,1].
func (r Record) Validate() error {
	if r.TrueLabel != 0 && r.TrueLabel != 1 {
		return fmt.Errorf("%w: %s=%d is not 0 or 1", ErrInvalidRecord, ColumnTrue, r.TrueLabel)
	}
	if r.PredLabel != 0 && r.PredLabel != 1 {
		return fmt.Errorf("%w: %s=%d is not 0 or 1", ErrInvalidRecord, ColumnPred, r.PredLabel)
	}
	if math.IsNaN(r.PredProba) || r.PredProba < 0 || r.PredProba > 1 {
		return fmt.Errorf("%w: %s=%v is outside [0,1]", ErrInvalidRecord, ColumnProba, r.PredProba)
	}
	return nil
}

// Set is the loaded input: every record in file order plus whether the
// source carried a run_name column.
type Set struct {
	Source     string
	Records    []Record
	HasRunName bool
}

// Len returns the number of records.
func (s Set) Len() int { return len(s.Records) }

// FeatureSets returns the distinct feature set names in lexical order.
func (s Set) FeatureSets() []string {
	seen := make(map[string]struct{})
	for _, r := range s.Records {
		seen[r.FeatureSet] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequireRunName reports ErrMissingColumn when the source had no run_name column.
func (s Set) RequireRunName() error {
	if s.HasRunName {
		return nil
	}
	return fmt.Errorf("%w %q in %s (needed for grouped stats)", ErrMissingColumn, ColumnRunName, s.Source)
}
