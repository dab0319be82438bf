// Package artifact turns tabular results into materialized files: HTML
// charts and CSV/XLSX exports under a lazily created output directory.
package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sqlpilot/sqlpilot/internal/analysis"
	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

// ChartKind selects the chart to render
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartPie       ChartKind = "pie"
	ChartLine      ChartKind = "line"
	ChartDashboard ChartKind = "dashboard"
)

// Axes selects the columns a chart draws from. For pie charts X is the
// labels column and Y the values column; the dashboard ignores both.
type Axes struct {
	X string
	Y string
}

// ChartRenderer writes chart files. Files within the same second share a
// name and overwrite each other; this mirrors the interactive one-shot
// usage and is a documented limitation, not a contract.
type ChartRenderer struct {
	dir string
	now func() time.Time
}

// NewChartRenderer creates a renderer writing under dir
func NewChartRenderer(dir string) *ChartRenderer {
	return &ChartRenderer{dir: dir, now: time.Now}
}

// Render builds the requested chart and writes it as
// {kind}_chart_{YYYYMMDD_HHMMSS}.html. The chart is rendered to memory
// first, so a failure never leaves a partial file.
func (r *ChartRenderer) Render(result *types.TabularResult, kind ChartKind, axes Axes) (string, error) {
	if result == nil || result.Empty() {
		return "", errors.New(errors.ErrTypeNoData, "execute a query first")
	}

	var buf bytes.Buffer

	var err error

	switch kind {
	case ChartBar:
		err = renderBar(&buf, result, axes)
	case ChartPie:
		err = renderPie(&buf, result, axes)
	case ChartLine:
		err = renderLine(&buf, result, axes)
	case ChartDashboard:
		err = renderDashboard(&buf, result)
	default:
		err = errors.Newf(errors.ErrTypeInternal, "unknown chart kind %q", kind)
	}

	if err != nil {
		return "", err
	}

	return r.write(string(kind), buf.Bytes())
}

func (r *ChartRenderer) write(kind string, data []byte) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to create output directory")
	}

	name := fmt.Sprintf("%s_chart_%s.html", kind, r.now().Format("20060102_150405"))
	path := filepath.Join(r.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to write chart file")
	}

	return path, nil
}

func columnIndexes(result *types.TabularResult, axes Axes) (int, int, error) {
	xIdx := result.ColumnIndex(axes.X)
	if xIdx < 0 {
		return 0, 0, errors.Newf(errors.ErrTypeMissingColumn, "column %q not found", axes.X)
	}

	yIdx := result.ColumnIndex(axes.Y)
	if yIdx < 0 {
		return 0, 0, errors.Newf(errors.ErrTypeMissingColumn, "column %q not found", axes.Y)
	}

	return xIdx, yIdx, nil
}

func labels(result *types.TabularResult, idx int) []string {
	out := make([]string, 0, result.RowCount())
	for _, row := range result.Rows {
		out = append(out, fmt.Sprintf("%v", row[idx]))
	}

	return out
}

func renderBar(buf *bytes.Buffer, result *types.TabularResult, axes Axes) error {
	xIdx, yIdx, err := columnIndexes(result, axes)
	if err != nil {
		return err
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s by %s", axes.Y, axes.X),
	}))

	data := make([]opts.BarData, 0, result.RowCount())
	for _, row := range result.Rows {
		data = append(data, opts.BarData{Value: row[yIdx]})
	}

	bar.SetXAxis(labels(result, xIdx)).AddSeries(axes.Y, data)

	return bar.Render(buf)
}

func renderLine(buf *bytes.Buffer, result *types.TabularResult, axes Axes) error {
	xIdx, yIdx, err := columnIndexes(result, axes)
	if err != nil {
		return err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s Trend over %s", axes.Y, axes.X),
	}))

	data := make([]opts.LineData, 0, result.RowCount())
	for _, row := range result.Rows {
		data = append(data, opts.LineData{Value: row[yIdx]})
	}

	line.SetXAxis(labels(result, xIdx)).AddSeries(axes.Y, data)

	return line.Render(buf)
}

func renderPie(buf *bytes.Buffer, result *types.TabularResult, axes Axes) error {
	labelIdx, valueIdx, err := columnIndexes(result, axes)
	if err != nil {
		return err
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s Distribution", axes.Y),
	}))

	data := make([]opts.PieData, 0, result.RowCount())
	for _, row := range result.Rows {
		data = append(data, opts.PieData{
			Name:  fmt.Sprintf("%v", row[labelIdx]),
			Value: row[valueIdx],
		})
	}

	pie.AddSeries(axes.Y, data)

	return pie.Render(buf)
}

// renderDashboard composes a 2x2 page over the first numeric column: a
// histogram, a box plot, a summary-stats bar, and a scatter of the first
// two numeric columns when a second one exists
func renderDashboard(buf *bytes.Buffer, result *types.TabularResult) error {
	numeric := result.NumericColumns()
	if len(numeric) == 0 {
		return errors.New(errors.ErrTypeNoNumericData, "no numeric columns to visualize")
	}

	first := numeric[0]
	values := result.FloatValues(result.ColumnIndex(first))

	dist, err := analysis.Distribute(result)
	if err != nil {
		return err
	}

	stats := dist.Stats[first]

	page := components.NewPage()
	page.PageTitle = "Data Analysis Dashboard"
	page.AddCharts(
		histogramChart(first, values),
		boxPlotChart(first, stats),
		statsChart(first, stats),
	)

	if len(numeric) > 1 {
		page.AddCharts(scatterChart(result, numeric[0], numeric[1]))
	}

	return page.Render(buf)
}

func histogramChart(column string, values []float64) *charts.Bar {
	binLabels, counts := binValues(values, 10)

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s Distribution", column),
	}))

	data := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		data = append(data, opts.BarData{Value: c})
	}

	bar.SetXAxis(binLabels).AddSeries(column, data)

	return bar
}

func boxPlotChart(column string, stats analysis.ColumnStats) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s Box Plot", column),
	}))

	box.SetXAxis([]string{column}).AddSeries(column, []opts.BoxPlotData{
		{Value: []float64{stats.Min, stats.P25, stats.Median, stats.P75, stats.Max}},
	})

	return box
}

func statsChart(column string, stats analysis.ColumnStats) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s Summary", column),
	}))

	bar.SetXAxis([]string{"min", "p25", "median", "mean", "p75", "max"}).
		AddSeries(column, []opts.BarData{
			{Value: stats.Min},
			{Value: stats.P25},
			{Value: stats.Median},
			{Value: stats.Mean},
			{Value: stats.P75},
			{Value: stats.Max},
		})

	return bar
}

func scatterChart(result *types.TabularResult, xCol, yCol string) *charts.Scatter {
	xIdx := result.ColumnIndex(xCol)
	yIdx := result.ColumnIndex(yCol)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s vs %s", yCol, xCol),
	}))

	var data []opts.ScatterData

	for _, row := range result.Rows {
		x, xOK := types.AsFloat(row[xIdx])
		y, yOK := types.AsFloat(row[yIdx])

		if xOK && yOK {
			data = append(data, opts.ScatterData{Value: []float64{x, y}})
		}
	}

	scatter.AddSeries(fmt.Sprintf("%s/%s", yCol, xCol), data)

	return scatter
}

// binValues buckets values into at most maxBins equal-width bins
func binValues(values []float64, maxBins int) ([]string, []int) {
	if len(values) == 0 {
		return nil, nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}

		if v > hi {
			hi = v
		}
	}

	bins := maxBins
	if len(values) < bins {
		bins = len(values)
	}

	if lo == hi || bins == 1 {
		return []string{fmt.Sprintf("%.4g", lo)}, []int{len(values)}
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}

		counts[idx]++
	}

	binLabels := make([]string, bins)
	for i := range binLabels {
		binLabels[i] = fmt.Sprintf("%.4g-%.4g", lo+float64(i)*width, lo+float64(i+1)*width)
	}

	return binLabels, counts
}
