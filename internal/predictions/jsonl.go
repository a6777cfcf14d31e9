package predictions

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema describes one JSONL prediction line.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{ColumnTrue, ColumnPred, ColumnProba, ColumnFeatureSet},
	"properties": map[string]any{
		ColumnTrue:       map[string]any{"type": "integer", "enum": []any{0, 1}},
		ColumnPred:       map[string]any{"type": "integer", "enum": []any{0, 1}},
		ColumnProba:      map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		ColumnFeatureSet: map[string]any{"type": "string"},
		ColumnRunName:    map[string]any{"type": []any{"string", "integer"}},
	},
}

var compiledRecordSchema *gojsonschema.Schema

func recordValidator() (*gojsonschema.Schema, error) {
	if compiledRecordSchema != nil {
		return compiledRecordSchema, nil
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(recordSchema))
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	compiledRecordSchema = schema
	return schema, nil
}

type jsonRecord struct {
	TrueLabel  int             `json:"y_true"`
	PredLabel  int             `json:"y_pred"`
	PredProba  float64         `json:"y_pred_proba"`
	FeatureSet string          `json:"feature_set"`
	RunName    json.RawMessage `json:"run_name"`
}

func loadJSONL(path string) (Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("unable to open input file %s: %w", path, err)
	}
	defer file.Close()

	return ReadJSONL(file, path)
}

// ReadJSONL parses newline-delimited JSON prediction records. Every line is
// validated against recordSchema before decoding. The set reports a run_name
// column only when every record carries one.
func ReadJSONL(r io.Reader, source string) (Set, error) {
	schema, err := recordValidator()
	if err != nil {
		return Set{}, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	set := Set{Source: source, HasRunName: true}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result, err := schema.Validate(gojsonschema.NewStringLoader(line))
		if err != nil {
			return Set{}, fmt.Errorf("unable to parse %s:%d: %w", source, lineNo, err)
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, desc := range result.Errors() {
				msgs = append(msgs, desc.String())
			}
			return Set{}, fmt.Errorf("%w at %s:%d: %s", ErrInvalidRecord, source, lineNo, strings.Join(msgs, "; "))
		}

		var raw jsonRecord
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return Set{}, fmt.Errorf("unable to decode %s:%d: %w", source, lineNo, err)
		}

		rec := Record{
			TrueLabel:  raw.TrueLabel,
			PredLabel:  raw.PredLabel,
			PredProba:  raw.PredProba,
			FeatureSet: strings.TrimSpace(raw.FeatureSet),
		}
		if len(raw.RunName) == 0 {
			set.HasRunName = false
		} else {
			rec.RunName = runNameFromJSON(raw.RunName)
		}
		if err := rec.Validate(); err != nil {
			return Set{}, fmt.Errorf("%s:%d: %w", source, lineNo, err)
		}
		set.Records = append(set.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return Set{}, fmt.Errorf("error reading %s: %w", source, err)
	}
	if len(set.Records) == 0 {
		set.HasRunName = false
	}
	return set, nil
}

// runNameFromJSON accepts both "run-1" and 1.
func runNameFromJSON(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}
