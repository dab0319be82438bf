// Package types holds the tabular value model shared by the executor,
// the analysis engine, and the artifact generator.
package types

// TabularResult is the normalized in-memory table produced by executing a
// query. Scalar values are restricted to int64, float64, string, bool and
// nil; decimal database values are coerced to float64 and temporal values to
// ISO-8601 text at the executor boundary, which loses fixed-point precision.
// Every row has exactly len(Columns) entries.
type TabularResult struct {
	Columns []string
	Rows    [][]any
}

// RowCount returns the number of rows
func (r *TabularResult) RowCount() int {
	return len(r.Rows)
}

// Empty reports whether the result holds no rows
func (r *TabularResult) Empty() bool {
	return len(r.Rows) == 0
}

// ColumnIndex returns the position of the named column, or -1 if absent
func (r *TabularResult) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}

	return -1
}

// Copy returns a deep copy. Callers that post-process a result (adding
// percentage columns, sorting for trends) must work on a copy so the
// session's bound result stays untouched.
func (r *TabularResult) Copy() *TabularResult {
	cp := &TabularResult{
		Columns: make([]string, len(r.Columns)),
		Rows:    make([][]any, len(r.Rows)),
	}
	copy(cp.Columns, r.Columns)

	for i, row := range r.Rows {
		cp.Rows[i] = make([]any, len(row))
		copy(cp.Rows[i], row)
	}

	return cp
}

// IsNumericColumn reports whether every non-null value in the column at idx
// is an int64 or float64. A column with only nulls is not numeric.
func (r *TabularResult) IsNumericColumn(idx int) bool {
	if idx < 0 || idx >= len(r.Columns) {
		return false
	}

	seen := false

	for _, row := range r.Rows {
		switch row[idx].(type) {
		case nil:
			continue
		case int64, float64:
			seen = true
		default:
			return false
		}
	}

	return seen
}

// NumericColumns returns the names of all numeric columns in column order
func (r *TabularResult) NumericColumns() []string {
	var cols []string

	for i, name := range r.Columns {
		if r.IsNumericColumn(i) {
			cols = append(cols, name)
		}
	}

	return cols
}

// TextColumns returns the names of all non-numeric columns in column order
func (r *TabularResult) TextColumns() []string {
	var cols []string

	for i, name := range r.Columns {
		if !r.IsNumericColumn(i) {
			cols = append(cols, name)
		}
	}

	return cols
}

// FloatValues returns the non-null values of a numeric column as float64s,
// preserving row order
func (r *TabularResult) FloatValues(idx int) []float64 {
	var values []float64

	for _, row := range r.Rows {
		if f, ok := AsFloat(row[idx]); ok {
			values = append(values, f)
		}
	}

	return values
}

// AsFloat converts a result scalar to float64 when it is numeric
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
