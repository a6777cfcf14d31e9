package predictions

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
)

// writeFile writes header and rows, one per line, to dir/name.
func writeFile(t *testing.T, dir, name, header string, rows []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := header + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "preds.csv", "y_true,y_pred,y_pred_proba,feature_set,run_name", []string{
		"1,1,0.9,baseline-only,run-1",
		"0,0,0.2,baseline-only,run-1",
		"1,0,0.4,advanced-only,run-2",
		"0,1,0.6,advanced-only,run-2",
	})

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if set.Len() != 4 {
		t.Fatalf("expected 4 records, got %d", set.Len())
	}
	if !set.HasRunName {
		t.Fatalf("expected run_name column to be detected")
	}
	first := set.Records[0]
	if first.TrueLabel != 1 || first.PredLabel != 1 || first.PredProba != 0.9 || first.FeatureSet != "baseline-only" || first.RunName != "run-1" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	got := set.FeatureSets()
	if len(got) != 2 || got[0] != "advanced-only" || got[1] != "baseline-only" {
		t.Fatalf("unexpected feature sets: %v", got)
	}
}

func TestLoadCSVHeaderCaseAndOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "preds.csv", " Feature_Set ,Y_PRED_PROBA,y_pred,Y_True", []string{
		"fourier-only,0.7,1,1.0",
	})

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if set.HasRunName {
		t.Fatalf("did not expect run_name column")
	}
	if err := set.RequireRunName(); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn from RequireRunName, got %v", err)
	}
	rec := set.Records[0]
	if rec.TrueLabel != 1 || rec.PredLabel != 1 || rec.PredProba != 0.7 || rec.FeatureSet != "fourier-only" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestLoadTSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "preds.tsv", "y_true\ty_pred\ty_pred_proba\tfeature_set\trun_name", []string{
		"0\t0\t0.1\tbaseline-only\tr1",
	})

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if set.Len() != 1 || set.Records[0].RunName != "r1" {
		t.Fatalf("unexpected set: %+v", set)
	}
}

func TestLoadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		header string
		rows   []string
		want   error
	}{
		{
			name:   "missing column",
			header: "y_true,y_pred,feature_set",
			rows:   []string{"1,1,baseline-only"},
			want:   ErrMissingColumn,
		},
		{
			name:   "non binary label",
			header: "y_true,y_pred,y_pred_proba,feature_set",
			rows:   []string{"2,1,0.5,baseline-only"},
			want:   ErrInvalidRecord,
		},
		{
			name:   "probability out of range",
			header: "y_true,y_pred,y_pred_proba,feature_set",
			rows:   []string{"1,1,1.5,baseline-only"},
			want:   ErrInvalidRecord,
		},
		{
			name:   "fractional label",
			header: "y_true,y_pred,y_pred_proba,feature_set",
			rows:   []string{"0.5,1,0.5,baseline-only"},
			want:   ErrInvalidRecord,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad"+string(rune('a'+i))+".csv", tt.header, tt.rows)
			_, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadRejectsEmptyAndUnknownFormats(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "preds.xml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for unreadable file")
	}

	empty := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Fatal("expected error for empty csv")
	}
}

func TestReadJSONL(t *testing.T) {
	input := strings.Join([]string{
		`{"y_true":1,"y_pred":1,"y_pred_proba":0.8,"feature_set":"baseline-only","run_name":"r1"}`,
		``,
		`{"y_true":0,"y_pred":1,"y_pred_proba":0.55,"feature_set":"baseline-only","run_name":2}`,
	}, "\n")

	set, err := ReadJSONL(strings.NewReader(input), "inline.jsonl")
	if err != nil {
		t.Fatalf("ReadJSONL error: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", set.Len())
	}
	if !set.HasRunName {
		t.Fatalf("expected run names")
	}
	if set.Records[0].RunName != "r1" || set.Records[1].RunName != "2" {
		t.Fatalf("unexpected run names: %q %q", set.Records[0].RunName, set.Records[1].RunName)
	}
}

func TestReadJSONLSchemaViolation(t *testing.T) {
	input := `{"y_true":3,"y_pred":1,"y_pred_proba":0.8,"feature_set":"baseline-only"}`
	_, err := ReadJSONL(strings.NewReader(input), "bad.jsonl")
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad.jsonl:1") {
		t.Fatalf("expected line context in error, got %v", err)
	}

	missing := `{"y_true":1,"y_pred":1,"feature_set":"baseline-only"}`
	if _, err := ReadJSONL(strings.NewReader(missing), "missing.jsonl"); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for missing probability, got %v", err)
	}
}

func TestReadJSONLWithoutRunName(t *testing.T) {
	input := `{"y_true":1,"y_pred":0,"y_pred_proba":0.3,"feature_set":"fourier-only"}`
	set, err := ReadJSONL(strings.NewReader(input), "norun.jsonl")
	if err != nil {
		t.Fatalf("ReadJSONL error: %v", err)
	}
	if set.HasRunName {
		t.Fatal("expected HasRunName=false when records omit run_name")
	}
}

func TestLoadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preds.parquet")
	rows := []parquetRecord{
		{TrueLabel: 1, PredLabel: 1, PredProba: 0.9, FeatureSet: "baseline-only", RunName: "r1"},
		{TrueLabel: 0, PredLabel: 0, PredProba: 0.1, FeatureSet: "baseline-only", RunName: "r2"},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if set.Len() != 2 || !set.HasRunName {
		t.Fatalf("unexpected set: %+v", set)
	}
	if set.Records[1].RunName != "r2" || set.Records[1].PredProba != 0.1 {
		t.Fatalf("unexpected record: %+v", set.Records[1])
	}
}
