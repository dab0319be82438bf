package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

func TestDistribute(t *testing.T) {
	result := &types.TabularResult{
		Columns: []string{"age"},
		Rows:    [][]any{{int64(20)}, {int64(30)}, {int64(40)}},
	}

	dist, err := Distribute(result)
	require.NoError(t, err)

	assert.Equal(t, 3, dist.TotalRows)
	assert.Equal(t, []string{"age"}, dist.NumericColumns)
	assert.Empty(t, dist.TextColumns)

	stats := dist.Stats["age"]
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 30.0, stats.Mean, 1e-9)
	assert.InDelta(t, 20.0, stats.Min, 1e-9)
	assert.InDelta(t, 40.0, stats.Max, 1e-9)
	assert.InDelta(t, 25.0, stats.P25, 1e-9)
	assert.InDelta(t, 30.0, stats.Median, 1e-9)
	assert.InDelta(t, 35.0, stats.P75, 1e-9)
	// Population standard deviation of {20,30,40}
	assert.InDelta(t, 8.16496580927726, stats.StdDev, 1e-9)
}

func TestDistributePartitionsColumns(t *testing.T) {
	result := &types.TabularResult{
		Columns: []string{"city", "population", "founded"},
		Rows: [][]any{
			{"A", int64(100), "1900-01-01"},
			{"B", int64(200), "1850-01-01"},
		},
	}

	dist, err := Distribute(result)
	require.NoError(t, err)

	assert.Equal(t, []string{"population"}, dist.NumericColumns)
	assert.Equal(t, []string{"city", "founded"}, dist.TextColumns)
	assert.Contains(t, dist.Stats, "population")
	assert.NotContains(t, dist.Stats, "city")
}

func TestDistributeSkipsNulls(t *testing.T) {
	result := &types.TabularResult{
		Columns: []string{"v"},
		Rows:    [][]any{{int64(10)}, {nil}, {int64(20)}},
	}

	dist, err := Distribute(result)
	require.NoError(t, err)

	stats := dist.Stats["v"]
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 15.0, stats.Mean, 1e-9)
}

func TestDistributeNoData(t *testing.T) {
	_, err := Distribute(nil)
	assert.True(t, errors.IsType(err, errors.ErrTypeNoData))

	_, err = Distribute(&types.TabularResult{Columns: []string{"a"}})
	assert.True(t, errors.IsType(err, errors.ErrTypeNoData))
}

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.75, percentile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, percentile(sorted, 0.50), 1e-9)
	assert.InDelta(t, 3.25, percentile(sorted, 0.75), 1e-9)
	assert.InDelta(t, 1.0, percentile(sorted, 0), 1e-9)
	assert.InDelta(t, 4.0, percentile(sorted, 1), 1e-9)
	assert.InDelta(t, 7.0, percentile([]float64{7}, 0.5), 1e-9)
}
