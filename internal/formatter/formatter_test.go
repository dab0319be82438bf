package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlpilot/sqlpilot/internal/analysis"
	"github.com/sqlpilot/sqlpilot/internal/history"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer

	WriteResult(&buf, &types.TabularResult{
		Columns: []string{"id", "name"},
		Rows: [][]any{
			{int64(1), "alice"},
			{int64(2), nil},
		},
	})

	// StyleLight uppercases header cells.
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "(2 rows)")
}

func TestWriteResultEmpty(t *testing.T) {
	var buf bytes.Buffer

	WriteResult(&buf, &types.TabularResult{Columns: []string{"id"}})

	assert.Contains(t, buf.String(), "No results found.")
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer

	WriteHistory(&buf, []history.Entry{
		{SQL: "SELECT 1", ExecutedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), RowCount: 1},
		{SQL: "SELECT 2", ExecutedAt: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), RowCount: 5},
	})

	out := buf.String()
	assert.Contains(t, out, "1. [2024-06-01 10:00:00]")
	assert.Contains(t, out, "Query: SELECT 1")
	assert.Contains(t, out, "Rows: 5")
}

func TestWriteHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer

	WriteHistory(&buf, nil)

	assert.Contains(t, buf.String(), "No queries executed yet.")
}

func TestWriteBreakdown(t *testing.T) {
	result := &types.TabularResult{
		Columns: []string{"city"},
		Rows:    [][]any{{"A"}, {"A"}, {"B"}},
	}

	breakdown, err := analysis.Breakdown(result, "city")
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteBreakdown(&buf, breakdown)

	out := buf.String()
	assert.Contains(t, out, "66.67%")
	assert.Contains(t, out, "33.33%")
}

func TestWriteTrend(t *testing.T) {
	result := &types.TabularResult{
		Columns: []string{"day", "v"},
		Rows: [][]any{
			{"2024-01-01", int64(10)},
			{"2024-01-03", int64(30)},
		},
	}

	summary, err := analysis.Trend(result, "day", "v")
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteTrend(&buf, summary)

	out := buf.String()
	assert.Contains(t, out, "Start: 2024-01-01")
	assert.Contains(t, out, "End: 2024-01-03")
	assert.Contains(t, out, "Growth rate: 200.00%")
}

func TestWriteDistribution(t *testing.T) {
	result := &types.TabularResult{
		Columns: []string{"age"},
		Rows:    [][]any{{int64(20)}, {int64(30)}, {int64(40)}},
	}

	dist, err := analysis.Distribute(result)
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteDistribution(&buf, dist)

	out := buf.String()
	assert.Contains(t, out, "Total rows: 3")
	assert.Contains(t, out, "30.00")
	assert.Contains(t, out, "40.00")
}
