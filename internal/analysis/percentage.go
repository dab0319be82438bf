package analysis

import (
	"fmt"

	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

// BreakdownRow is one row of a percentage breakdown. For numeric columns
// Value holds the original scalar and Cumulative the running percentage; for
// textual columns Value holds the distinct value and Count its frequency.
type BreakdownRow struct {
	Value      any
	Count      int
	Percentage float64
	Cumulative float64
}

// PercentageBreakdown is the percentage view of a single column
type PercentageBreakdown struct {
	Column  string
	Numeric bool
	Rows    []BreakdownRow
}

// Breakdown computes the percentage distribution of a column. Numeric
// columns report each value's share of the column sum with a running
// cumulative, preserving row order; textual columns report distinct-value
// frequencies ordered by descending count with first-seen tie-breaks.
func Breakdown(result *types.TabularResult, column string) (*PercentageBreakdown, error) {
	if result == nil || result.Empty() {
		return nil, errors.New(errors.ErrTypeNoData, "execute a query first")
	}

	idx := result.ColumnIndex(column)
	if idx < 0 {
		return nil, errors.Newf(errors.ErrTypeUnknownColumn, "column %q not found", column)
	}

	if result.IsNumericColumn(idx) {
		return numericBreakdown(result, column, idx)
	}

	return textBreakdown(result, column, idx)
}

func numericBreakdown(result *types.TabularResult, column string, idx int) (*PercentageBreakdown, error) {
	var total float64

	for _, row := range result.Rows {
		if f, ok := types.AsFloat(row[idx]); ok {
			total += f
		}
	}

	if total == 0 {
		return nil, errors.Newf(errors.ErrTypeDegenerateInput,
			"column %q sums to zero, percentages are undefined", column)
	}

	breakdown := &PercentageBreakdown{Column: column, Numeric: true}

	var cumulative float64

	for _, row := range result.Rows {
		f, ok := types.AsFloat(row[idx])
		if !ok {
			continue
		}

		pct := round2(f / total * 100)
		cumulative = round2(cumulative + pct)

		breakdown.Rows = append(breakdown.Rows, BreakdownRow{
			Value:      row[idx],
			Count:      1,
			Percentage: pct,
			Cumulative: cumulative,
		})
	}

	return breakdown, nil
}

func textBreakdown(result *types.TabularResult, column string, idx int) (*PercentageBreakdown, error) {
	counts := make(map[string]int)

	var order []string

	for _, row := range result.Rows {
		key := fmt.Sprintf("%v", row[idx])
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}

		counts[key]++
	}

	// Descending count, first-seen order on ties: a stable selection over
	// the first-seen sequence gives both.
	sorted := make([]string, 0, len(order))
	remaining := append([]string(nil), order...)

	for len(remaining) > 0 {
		best := 0
		for i, key := range remaining {
			if counts[key] > counts[remaining[best]] {
				best = i
			}
		}

		sorted = append(sorted, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	total := result.RowCount()
	breakdown := &PercentageBreakdown{Column: column}

	var cumulative float64

	for _, key := range sorted {
		pct := round2(float64(counts[key]) / float64(total) * 100)
		cumulative = round2(cumulative + pct)

		breakdown.Rows = append(breakdown.Rows, BreakdownRow{
			Value:      key,
			Count:      counts[key],
			Percentage: pct,
			Cumulative: cumulative,
		})
	}

	return breakdown, nil
}
