// Package analysis provides pure transforms over a TabularResult:
// distribution summaries, percentage breakdowns, and time-trend metrics.
// Nothing here mutates its input; callers pass copies when they want
// post-processed tables.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

// ColumnStats summarizes one numeric column
type ColumnStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// Distribution partitions the result's columns and summarizes each numeric
// one
type Distribution struct {
	TotalRows      int
	NumericColumns []string
	TextColumns    []string
	Stats          map[string]ColumnStats
}

// Distribute computes a five-number-plus-moments summary per numeric column.
// The standard deviation is the population form.
func Distribute(result *types.TabularResult) (*Distribution, error) {
	if result == nil || result.Empty() {
		return nil, errors.New(errors.ErrTypeNoData, "execute a query first")
	}

	dist := &Distribution{
		TotalRows:      result.RowCount(),
		NumericColumns: result.NumericColumns(),
		TextColumns:    result.TextColumns(),
		Stats:          make(map[string]ColumnStats),
	}

	for _, name := range dist.NumericColumns {
		values := result.FloatValues(result.ColumnIndex(name))
		if len(values) == 0 {
			continue
		}

		sorted := make([]float64, len(values))
		copy(sorted, values)
		sort.Float64s(sorted)

		dist.Stats[name] = ColumnStats{
			Count:  len(values),
			Mean:   stat.Mean(values, nil),
			StdDev: stat.PopStdDev(values, nil),
			Min:    sorted[0],
			P25:    percentile(sorted, 0.25),
			Median: percentile(sorted, 0.50),
			P75:    percentile(sorted, 0.75),
			Max:    sorted[len(sorted)-1],
		}
	}

	return dist, nil
}

// percentile linearly interpolates between order statistics of an ascending
// slice. gonum's quantile kinds use a different interpolation, so this stays
// explicit.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return sorted[lower]
	}

	frac := rank - float64(lower)

	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// round2 rounds to 2 decimal places, the precision used across all reported
// percentages and rates
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
