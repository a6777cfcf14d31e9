package predictions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/featcmp/internal/logging"
)

// Load reads a prediction file, choosing the reader from the file extension:
// .csv, .tsv, .jsonl (or .ndjson) and .parquet are supported.
func Load(path string) (Set, error) {
	if strings.TrimSpace(path) == "" {
		return Set{}, fmt.Errorf("input file is required")
	}

	ext := strings.ToLower(filepath.Ext(path))
	var (
		set Set
		err error
	)
	switch ext {
	case ".csv", ".tsv":
		set, err = loadDelimited(path, delimiterFor(ext))
	case ".jsonl", ".ndjson":
		set, err = loadJSONL(path)
	case ".parquet":
		set, err = loadParquet(path)
	default:
		return Set{}, fmt.Errorf("%w %q for %s", ErrUnsupportedFormat, ext, path)
	}
	if err != nil {
		return Set{}, err
	}

	logging.LogEvent("[LOAD] %s: %d records, %d feature sets, run_name=%t", path, set.Len(), len(set.FeatureSets()), set.HasRunName)
	return set, nil
}

func delimiterFor(ext string) rune {
	if ext == ".tsv" {
		return '\t'
	}
	return ','
}

func loadDelimited(path string, comma rune) (Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("unable to open input file %s: %w", path, err)
	}
	defer file.Close()

	set, err := ReadDelimited(file, comma, path)
	if err != nil {
		return Set{}, err
	}
	return set, nil
}
