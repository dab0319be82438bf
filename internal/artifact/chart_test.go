package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

func chartResult() *types.TabularResult {
	return &types.TabularResult{
		Columns: []string{"city", "population", "area"},
		Rows: [][]any{
			{"A", int64(100), 10.5},
			{"B", int64(250), 20.0},
			{"C", int64(175), 15.25},
		},
	}
}

func fixedRenderer(t *testing.T) (*ChartRenderer, string) {
	t.Helper()

	dir := t.TempDir()
	r := NewChartRenderer(dir)
	r.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)
	}

	return r, dir
}

func TestRenderBar(t *testing.T) {
	r, dir := fixedRenderer(t)

	path, err := r.Render(chartResult(), ChartBar, Axes{X: "city", Y: "population"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "bar_chart_20240601_123045.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "population by city")
}

func TestRenderLine(t *testing.T) {
	r, _ := fixedRenderer(t)

	path, err := r.Render(chartResult(), ChartLine, Axes{X: "city", Y: "population"})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "population Trend over city")
	assert.Contains(t, filepath.Base(path), "line_chart_")
}

func TestRenderPie(t *testing.T) {
	r, _ := fixedRenderer(t)

	path, err := r.Render(chartResult(), ChartPie, Axes{X: "city", Y: "population"})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "population Distribution")
}

func TestRenderDashboard(t *testing.T) {
	r, _ := fixedRenderer(t)

	path, err := r.Render(chartResult(), ChartDashboard, Axes{})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "dashboard_chart_")
	assert.Contains(t, string(content), "population Distribution")
	assert.Contains(t, string(content), "population Box Plot")
}

func TestRenderMissingColumn(t *testing.T) {
	r, dir := fixedRenderer(t)

	_, err := r.Render(chartResult(), ChartBar, Axes{X: "city", Y: "missing"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeMissingColumn))

	// A failed render never leaves a partial file behind
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRenderDashboardNoNumericData(t *testing.T) {
	r, _ := fixedRenderer(t)

	textOnly := &types.TabularResult{
		Columns: []string{"city"},
		Rows:    [][]any{{"A"}, {"B"}},
	}

	_, err := r.Render(textOnly, ChartDashboard, Axes{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNoNumericData))
}

func TestRenderEmptyResult(t *testing.T) {
	r, _ := fixedRenderer(t)

	_, err := r.Render(&types.TabularResult{Columns: []string{"c"}}, ChartBar, Axes{X: "c", Y: "c"})
	assert.True(t, errors.IsType(err, errors.ErrTypeNoData))
}

func TestBinValues(t *testing.T) {
	binLabels, counts := binValues([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10}, 10)

	require.Len(t, counts, 10)
	assert.Len(t, binLabels, 10)

	total := 0
	for _, c := range counts {
		total += c
	}

	assert.Equal(t, 12, total)
	assert.Equal(t, 3, counts[9]) // the three 10s land in the last bin
}

func TestBinValuesDegenerate(t *testing.T) {
	binLabels, counts := binValues([]float64{5, 5, 5}, 10)

	assert.Equal(t, []int{3}, counts)
	assert.Len(t, binLabels, 1)

	binLabels, counts = binValues(nil, 10)
	assert.Nil(t, binLabels)
	assert.Nil(t, counts)
}
