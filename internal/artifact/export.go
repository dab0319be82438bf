package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sqlpilot/sqlpilot/internal/analysis"
	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

// ExportMeta describes the originating query for the XLSX summary sheet
type ExportMeta struct {
	SQL        string
	ExecutedAt time.Time
}

// Exporter writes tabular results to delimited-text and spreadsheet files
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter creates an exporter writing under dir
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

func (e *Exporter) outputPath(ext string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to create output directory")
	}

	name := fmt.Sprintf("query_results_%s.%s", e.now().Format("20060102_150405"), ext)

	return filepath.Join(e.dir, name), nil
}

// ExportCSV writes the result as delimited text. Scalars render with
// FormatScalar, so re-parsing the file reproduces the same values modulo
// the executor's documented decimal and timestamp coercions.
func (e *Exporter) ExportCSV(result *types.TabularResult) (string, error) {
	if result == nil || result.Empty() {
		return "", errors.New(errors.ErrTypeNoData, "no data to export")
	}

	path, err := e.outputPath("csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to create export file")
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(result.Columns); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to write header")
	}

	record := make([]string, len(result.Columns))

	for _, row := range result.Rows {
		for i, v := range row {
			record[i] = FormatScalar(v)
		}

		if err := w.Write(record); err != nil {
			return "", errors.Wrap(err, errors.ErrTypeExport, "failed to write row")
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to flush export file")
	}

	return path, nil
}

// ExportXLSX writes a Data sheet plus a Summary sheet with the originating
// query and, when numeric columns exist, a Statistics sheet of their
// summaries
func (e *Exporter) ExportXLSX(result *types.TabularResult, meta ExportMeta) (string, error) {
	if result == nil || result.Empty() {
		return "", errors.New(errors.ErrTypeNoData, "no data to export")
	}

	path, err := e.outputPath("xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const dataSheet = "Data"
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to name data sheet")
	}

	for i, col := range result.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(dataSheet, cell, col); err != nil {
			return "", errors.Wrap(err, errors.ErrTypeExport, "failed to write header")
		}
	}

	for r, row := range result.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(dataSheet, cell, cellValue(v)); err != nil {
				return "", errors.Wrap(err, errors.ErrTypeExport, "failed to write row")
			}
		}
	}

	if err := writeSummarySheet(f, result, meta); err != nil {
		return "", err
	}

	if err := writeStatisticsSheet(f, result); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to save spreadsheet")
	}

	return path, nil
}

func writeSummarySheet(f *excelize.File, result *types.TabularResult, meta ExportMeta) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, errors.ErrTypeExport, "failed to create summary sheet")
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Query Executed", meta.SQL},
		{"Timestamp", meta.ExecutedAt.Format("2006-01-02 15:04:05")},
		{"Total Rows", result.RowCount()},
		{"Total Columns", len(result.Columns)},
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.Wrap(err, errors.ErrTypeExport, "failed to write summary")
			}
		}
	}

	return nil
}

func writeStatisticsSheet(f *excelize.File, result *types.TabularResult) error {
	dist, err := analysis.Distribute(result)
	if err != nil || len(dist.NumericColumns) == 0 {
		// Nothing numeric to summarize; the sheet is simply omitted
		return nil
	}

	const sheet = "Statistics"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, errors.ErrTypeExport, "failed to create statistics sheet")
	}

	header := []any{"Column", "Count", "Mean", "StdDev", "Min", "P25", "Median", "P75", "Max"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return errors.Wrap(err, errors.ErrTypeExport, "failed to write statistics header")
		}
	}

	for r, name := range dist.NumericColumns {
		stats := dist.Stats[name]
		row := []any{
			name, stats.Count, stats.Mean, stats.StdDev,
			stats.Min, stats.P25, stats.Median, stats.P75, stats.Max,
		}

		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.Wrap(err, errors.ErrTypeExport, "failed to write statistics row")
			}
		}
	}

	return nil
}

// cellValue keeps native scalars for the spreadsheet; nulls become empty
// cells
func cellValue(v any) any {
	if v == nil {
		return ""
	}

	return v
}

// FormatScalar renders a result scalar as text for delimited exports and
// terminal display. Null renders as the empty string.
func FormatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
