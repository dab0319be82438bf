package analysis

import (
	"sort"
	"time"

	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

// TrendPoint is one (date, value) observation
type TrendPoint struct {
	Date  time.Time
	Value any
}

// TrendSummary reports a series ordered by date with optional growth-rate
// metrics. GrowthRate, FirstValue and LastValue are set only when the value
// column is numeric and the first sorted value is non-zero.
type TrendSummary struct {
	Start       time.Time
	End         time.Time
	RecordCount int
	Points      []TrendPoint
	GrowthRate  *float64
	FirstValue  *float64
	LastValue   *float64
}

// dateFormats are the accepted calendar date/time layouts, tried in order
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Trend sorts the result by the date column (stable ascending; ties keep
// original relative order) and reports first/last dates, count, the full
// ordered series and, when defined, the growth rate between first and last
// value.
func Trend(result *types.TabularResult, dateColumn, valueColumn string) (*TrendSummary, error) {
	if result == nil || result.Empty() {
		return nil, errors.New(errors.ErrTypeNoData, "execute a query first")
	}

	dateIdx := result.ColumnIndex(dateColumn)
	if dateIdx < 0 {
		return nil, errors.Newf(errors.ErrTypeUnknownColumn, "column %q not found", dateColumn)
	}

	valueIdx := result.ColumnIndex(valueColumn)
	if valueIdx < 0 {
		return nil, errors.Newf(errors.ErrTypeUnknownColumn, "column %q not found", valueColumn)
	}

	type observation struct {
		date  time.Time
		value any
	}

	var series []observation

	for _, row := range result.Rows {
		if row[dateIdx] == nil {
			continue
		}

		parsed, err := parseDate(row[dateIdx])
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTypeUnparseableDate,
				"column %q holds a value that is not a calendar date", dateColumn)
		}

		series = append(series, observation{date: parsed, value: row[valueIdx]})
	}

	if len(series) == 0 {
		return nil, errors.New(errors.ErrTypeNoData, "no dated rows to analyze")
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].date.Before(series[j].date)
	})

	summary := &TrendSummary{
		Start:       series[0].date,
		End:         series[len(series)-1].date,
		RecordCount: len(series),
	}

	for _, obs := range series {
		summary.Points = append(summary.Points, TrendPoint{Date: obs.date, Value: obs.value})
	}

	if result.IsNumericColumn(valueIdx) {
		first, firstOK := types.AsFloat(series[0].value)
		last, lastOK := types.AsFloat(series[len(series)-1].value)

		if firstOK && lastOK && first != 0 {
			rate := round2((last - first) / first * 100)
			summary.GrowthRate = &rate
			summary.FirstValue = &first
			summary.LastValue = &last
		}
	}

	return summary, nil
}

func parseDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, errors.Newf(errors.ErrTypeUnparseableDate,
			"value %v is not date text", v)
	}

	var lastErr error

	for _, layout := range dateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}
