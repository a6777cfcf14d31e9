package predictions

import (
	"fmt"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// parquetRecord is the on-disk row layout for .parquet prediction files.
type parquetRecord struct {
	TrueLabel  int64   `parquet:"y_true"`
	PredLabel  int64   `parquet:"y_pred"`
	PredProba  float64 `parquet:"y_pred_proba"`
	FeatureSet string  `parquet:"feature_set"`
	RunName    string  `parquet:"run_name,optional"`
}

func loadParquet(path string) (Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("unable to open input file %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Set{}, fmt.Errorf("unable to stat %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return Set{}, fmt.Errorf("unable to read parquet %s: %w", path, err)
	}

	schema := pf.Schema()
	for _, name := range []string{ColumnTrue, ColumnPred, ColumnProba, ColumnFeatureSet} {
		if _, ok := schema.Lookup(name); !ok {
			return Set{}, fmt.Errorf("%w %q in %s", ErrMissingColumn, name, path)
		}
	}
	_, hasRunName := schema.Lookup(ColumnRunName)

	rows, err := parquet.ReadFile[parquetRecord](path)
	if err != nil {
		return Set{}, fmt.Errorf("unable to decode parquet %s: %w", path, err)
	}

	set := Set{Source: path, HasRunName: hasRunName, Records: make([]Record, 0, len(rows))}
	for i, row := range rows {
		rec := Record{
			TrueLabel:  int(row.TrueLabel),
			PredLabel:  int(row.PredLabel),
			PredProba:  row.PredProba,
			FeatureSet: strings.TrimSpace(row.FeatureSet),
			RunName:    strings.TrimSpace(row.RunName),
		}
		if err := rec.Validate(); err != nil {
			return Set{}, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}
		set.Records = append(set.Records, rec)
	}
	return set, nil
}
