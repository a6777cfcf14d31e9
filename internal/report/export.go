// internal/report/export.go
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/featcmp/internal/logging"
	"github.com/mwiater/featcmp/internal/metrics"
	"github.com/mwiater/featcmp/internal/util"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedExport is returned for export paths with an unknown extension.
var ErrUnsupportedExport = errors.New("unsupported export format")

// Sheet names of the workbook export.
const (
	SheetCombined = "Combined"
	SheetGrouped  = "Grouped"
	SheetPerRun   = "PerRun"
)

// exportTable is the serialized form of a metrics.Table. Undefined values
// become null.
type exportTable struct {
	Name    string      `json:"name" yaml:"name"`
	Columns []string    `json:"columns" yaml:"columns"`
	Rows    []exportRow `json:"rows" yaml:"rows"`
}

type exportRow struct {
	FeatureSet string     `json:"feature_set" yaml:"feature_set"`
	RunName    string     `json:"run_name,omitempty" yaml:"run_name,omitempty"`
	Values     []*float64 `json:"values" yaml:"values"`
}

type exportDocument struct {
	Source   string      `json:"source,omitempty" yaml:"source,omitempty"`
	Combined exportTable `json:"combined" yaml:"combined"`
	Grouped  exportTable `json:"grouped" yaml:"grouped"`
	PerRun   exportTable `json:"per_run" yaml:"per_run"`
}

// LongRow is one cell of a comparison in long format.
type LongRow struct {
	Table      string  `parquet:"table"`
	FeatureSet string  `parquet:"feature_set"`
	RunName    string  `parquet:"run_name,optional"`
	Metric     string  `parquet:"metric"`
	Stat       string  `parquet:"stat,optional"`
	Value      float64 `parquet:"value"`
}

func toExportTable(t metrics.Table) exportTable {
	out := exportTable{Name: t.Name, Columns: make([]string, len(t.Columns)), Rows: make([]exportRow, 0, len(t.Rows))}
	for i, c := range t.Columns {
		out.Columns[i] = c.String()
	}
	for _, r := range t.Rows {
		values := make([]*float64, len(r.Values))
		for i, v := range r.Values {
			if math.IsNaN(v) {
				continue
			}
			v := v
			values[i] = &v
		}
		out.Rows = append(out.Rows, exportRow{FeatureSet: r.FeatureSet, RunName: r.RunName, Values: values})
	}
	return out
}

func toExportDocument(source string, c metrics.Comparison) exportDocument {
	return exportDocument{
		Source:   source,
		Combined: toExportTable(c.Combined),
		Grouped:  toExportTable(c.Grouped),
		PerRun:   toExportTable(c.PerRun),
	}
}

// LongRows flattens every table of c into one row per cell.
func LongRows(c metrics.Comparison) []LongRow {
	var rows []LongRow
	for _, t := range []metrics.Table{c.Combined, c.Grouped, c.PerRun} {
		for _, r := range t.Rows {
			for i, key := range t.Columns {
				rows = append(rows, LongRow{
					Table:      t.Name,
					FeatureSet: r.FeatureSet,
					RunName:    r.RunName,
					Metric:     key.Metric,
					Stat:       key.Stat,
					Value:      r.Values[i],
				})
			}
		}
	}
	return rows
}

// Export writes c to path, choosing the encoding from the extension:
// .json, .yaml/.yml, .xlsx or .parquet.
func Export(path, source string, c metrics.Comparison) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path is empty")
	}
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = exportJSON(path, source, c)
	case ".yaml", ".yml":
		err = exportYAML(path, source, c)
	case ".xlsx":
		err = exportWorkbook(path, c)
	case ".parquet":
		err = exportParquet(path, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedExport, ext)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	logging.LogEvent("[EXPORT] wrote %s", path)
	return nil
}

func exportJSON(path, source string, c metrics.Comparison) error {
	data, err := json.MarshalIndent(toExportDocument(source, c), "", "  ")
	if err != nil {
		return err
	}
	return util.WriteFile(path, append(data, '\n'))
}

func exportYAML(path, source string, c metrics.Comparison) error {
	data, err := yaml.Marshal(toExportDocument(source, c))
	if err != nil {
		return err
	}
	return util.WriteFile(path, data)
}

func exportWorkbook(path string, c metrics.Comparison) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name  string
		table metrics.Table
	}{
		{SheetCombined, c.Combined},
		{SheetGrouped, c.Grouped},
		{SheetPerRun, c.PerRun},
	}
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return err
		}
		if err := writeSheet(f, s.name, s.table); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, t metrics.Table) error {
	headers := PlainHeaders(t)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	labels := len(headers) - len(t.Columns)
	for r, row := range t.Rows {
		line := []interface{}{row.FeatureSet}
		if labels == 2 {
			line = append(line, row.RunName)
		}
		for _, v := range row.Values {
			if math.IsNaN(v) {
				line = append(line, nil)
				continue
			}
			line = append(line, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return err
		}
	}
	return nil
}

func exportParquet(path string, c metrics.Comparison) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[LongRow](file)
	if _, err := writer.Write(LongRows(c)); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
