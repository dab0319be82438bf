package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

func trendResult(rows [][]any) *types.TabularResult {
	return &types.TabularResult{
		Columns: []string{"day", "value"},
		Rows:    rows,
	}
}

func TestTrendSortedInputIsStable(t *testing.T) {
	result := trendResult([][]any{
		{"2024-01-01", int64(10)},
		{"2024-01-02", int64(20)},
		{"2024-01-03", int64(30)},
	})

	summary, err := Trend(result, "day", "value")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.RecordCount)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), summary.Start)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), summary.End)

	require.Len(t, summary.Points, 3)
	assert.Equal(t, int64(10), summary.Points[0].Value)
	assert.Equal(t, int64(20), summary.Points[1].Value)
	assert.Equal(t, int64(30), summary.Points[2].Value)

	require.NotNil(t, summary.GrowthRate)
	assert.InDelta(t, 200.0, *summary.GrowthRate, 1e-9)
	assert.InDelta(t, 10.0, *summary.FirstValue, 1e-9)
	assert.InDelta(t, 30.0, *summary.LastValue, 1e-9)
}

func TestTrendSortsUnorderedInput(t *testing.T) {
	result := trendResult([][]any{
		{"2024-03-01", int64(300)},
		{"2024-01-01", int64(100)},
		{"2024-02-01", int64(200)},
	})

	summary, err := Trend(result, "day", "value")
	require.NoError(t, err)

	assert.Equal(t, int64(100), summary.Points[0].Value)
	assert.Equal(t, int64(200), summary.Points[1].Value)
	assert.Equal(t, int64(300), summary.Points[2].Value)
}

func TestTrendTiesKeepOriginalOrder(t *testing.T) {
	result := trendResult([][]any{
		{"2024-01-01", "first"},
		{"2024-01-01", "second"},
		{"2024-01-01", "third"},
	})

	summary, err := Trend(result, "day", "value")
	require.NoError(t, err)

	assert.Equal(t, "first", summary.Points[0].Value)
	assert.Equal(t, "second", summary.Points[1].Value)
	assert.Equal(t, "third", summary.Points[2].Value)
}

func TestTrendZeroFirstValueOmitsGrowthRate(t *testing.T) {
	result := trendResult([][]any{
		{"2024-01-01", int64(0)},
		{"2024-01-02", int64(50)},
	})

	summary, err := Trend(result, "day", "value")
	require.NoError(t, err)

	assert.Nil(t, summary.GrowthRate)
	assert.Nil(t, summary.FirstValue)
	assert.Nil(t, summary.LastValue)
}

func TestTrendTextValueColumnOmitsGrowthRate(t *testing.T) {
	result := trendResult([][]any{
		{"2024-01-01", "low"},
		{"2024-01-02", "high"},
	})

	summary, err := Trend(result, "day", "value")
	require.NoError(t, err)

	assert.Nil(t, summary.GrowthRate)
	assert.Equal(t, 2, summary.RecordCount)
}

func TestTrendAcceptsTimestampText(t *testing.T) {
	result := trendResult([][]any{
		{"2024-01-02T09:30:00Z", int64(4)},
		{"2024-01-01 08:00:00", int64(2)},
	})

	summary, err := Trend(result, "day", "value")
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.Points[0].Value)
	require.NotNil(t, summary.GrowthRate)
	assert.InDelta(t, 100.0, *summary.GrowthRate, 1e-9)
}

func TestTrendSkipsNullDates(t *testing.T) {
	result := trendResult([][]any{
		{nil, int64(5)},
		{"2024-01-01", int64(10)},
		{"2024-01-02", int64(20)},
	})

	summary, err := Trend(result, "day", "value")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.RecordCount)
}

func TestTrendUnparseableDate(t *testing.T) {
	result := trendResult([][]any{
		{"2024-01-01", int64(1)},
		{"not a date", int64(2)},
	})

	_, err := Trend(result, "day", "value")
	assert.True(t, errors.IsType(err, errors.ErrTypeUnparseableDate))
}

func TestTrendUnknownColumns(t *testing.T) {
	result := trendResult([][]any{{"2024-01-01", int64(1)}})

	_, err := Trend(result, "missing", "value")
	assert.True(t, errors.IsType(err, errors.ErrTypeUnknownColumn))

	_, err = Trend(result, "day", "missing")
	assert.True(t, errors.IsType(err, errors.ErrTypeUnknownColumn))
}

func TestTrendNoData(t *testing.T) {
	_, err := Trend(trendResult(nil), "day", "value")
	assert.True(t, errors.IsType(err, errors.ErrTypeNoData))
}
