// internal/predictions/csv.go
package predictions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// columnIndex maps the required columns to their positions in a header row.
type columnIndex struct {
	trueLabel  int
	predLabel  int
	predProba  int
	featureSet int
	runName    int // -1 when absent
}

// indexHeader normalizes the header and locates every required column.
func indexHeader(header []string, source string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, col := range header {
		normalized := strings.TrimSpace(strings.ToLower(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := positions[normalized]; !dup {
			positions[normalized] = i
		}
	}

	lookup := func(name string) (int, error) {
		idx, ok := positions[name]
		if !ok {
			return -1, fmt.Errorf("%w %q in %s", ErrMissingColumn, name, source)
		}
		return idx, nil
	}

	var (
		idx columnIndex
		err error
	)
	if idx.trueLabel, err = lookup(ColumnTrue); err != nil {
		return idx, err
	}
	if idx.predLabel, err = lookup(ColumnPred); err != nil {
		return idx, err
	}
	if idx.predProba, err = lookup(ColumnProba); err != nil {
		return idx, err
	}
	if idx.featureSet, err = lookup(ColumnFeatureSet); err != nil {
		return idx, err
	}
	idx.runName = -1
	if pos, ok := positions[ColumnRunName]; ok {
		idx.runName = pos
	}
	return idx, nil
}

// ReadDelimited parses delimited text with a header row. source is only used
// to give errors file context.
func ReadDelimited(r io.Reader, comma rune, source string) (Set, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Set{}, fmt.Errorf("input %s is empty", source)
		}
		return Set{}, fmt.Errorf("failed to read header of %s: %w", source, err)
	}

	idx, err := indexHeader(header, source)
	if err != nil {
		return Set{}, err
	}

	set := Set{Source: source, HasRunName: idx.runName >= 0}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return Set{}, fmt.Errorf("failed to read %s:%d: %w", source, line, err)
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			return Set{}, fmt.Errorf("%s:%d: %w", source, line, err)
		}
		set.Records = append(set.Records, rec)
	}

	return set, nil
}

func parseRow(row []string, idx columnIndex) (Record, error) {
	var (
		rec Record
		err error
	)
	if rec.TrueLabel, err = parseLabel(row[idx.trueLabel]); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColumnTrue, err)
	}
	if rec.PredLabel, err = parseLabel(row[idx.predLabel]); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColumnPred, err)
	}
	if rec.PredProba, err = parseProbability(row[idx.predProba]); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColumnProba, err)
	}
	rec.FeatureSet = strings.TrimSpace(row[idx.featureSet])
	if idx.runName >= 0 {
		rec.RunName = strings.TrimSpace(row[idx.runName])
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// parseLabel accepts integral values written either as ints or floats ("1", "1.0").
func parseLabel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: label %q is not integral", ErrInvalidRecord, s)
	}
	return int(f), nil
}

func parseProbability(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(s, 64)
}
