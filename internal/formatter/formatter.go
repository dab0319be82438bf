// Package formatter renders tabular results and history entries for the
// terminal.
package formatter

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sqlpilot/sqlpilot/internal/analysis"
	"github.com/sqlpilot/sqlpilot/internal/artifact"
	"github.com/sqlpilot/sqlpilot/internal/history"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

// WriteResult renders a result as an aligned table followed by a row count
func WriteResult(w io.Writer, result *types.TabularResult) {
	if result.Empty() {
		fmt.Fprintln(w, "No results found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}

	t.AppendHeader(header)

	for _, row := range result.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = artifact.FormatScalar(v)
		}

		t.AppendRow(out)
	}

	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", result.RowCount())
}

// WriteHistory renders the ledger entries in insertion order
func WriteHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No queries executed yet.")
		return
	}

	for i, entry := range entries {
		fmt.Fprintf(w, "%d. [%s]\n", i+1, entry.ExecutedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "   Query: %s\n", entry.SQL)
		fmt.Fprintf(w, "   Rows: %d\n", entry.RowCount)
	}
}

// WriteDistribution renders a distribution summary
func WriteDistribution(w io.Writer, dist *analysis.Distribution) {
	fmt.Fprintf(w, "Total rows: %d\n", dist.TotalRows)
	fmt.Fprintf(w, "Numeric columns: %v\n", dist.NumericColumns)
	fmt.Fprintf(w, "Text columns: %v\n", dist.TextColumns)

	if len(dist.Stats) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Count", "Mean", "StdDev", "Min", "P25", "Median", "P75", "Max"})

	for _, name := range dist.NumericColumns {
		s, ok := dist.Stats[name]
		if !ok {
			continue
		}

		t.AppendRow(table.Row{
			name, s.Count,
			fmt.Sprintf("%.2f", s.Mean), fmt.Sprintf("%.2f", s.StdDev),
			fmt.Sprintf("%.2f", s.Min), fmt.Sprintf("%.2f", s.P25),
			fmt.Sprintf("%.2f", s.Median), fmt.Sprintf("%.2f", s.P75),
			fmt.Sprintf("%.2f", s.Max),
		})
	}

	t.Render()
}

// WriteBreakdown renders a percentage breakdown
func WriteBreakdown(w io.Writer, breakdown *analysis.PercentageBreakdown) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	if breakdown.Numeric {
		t.AppendHeader(table.Row{breakdown.Column, "Percentage", "Cumulative"})

		for _, row := range breakdown.Rows {
			t.AppendRow(table.Row{
				artifact.FormatScalar(row.Value),
				fmt.Sprintf("%.2f%%", row.Percentage),
				fmt.Sprintf("%.2f%%", row.Cumulative),
			})
		}
	} else {
		t.AppendHeader(table.Row{breakdown.Column, "Count", "Percentage"})

		for _, row := range breakdown.Rows {
			t.AppendRow(table.Row{
				artifact.FormatScalar(row.Value),
				row.Count,
				fmt.Sprintf("%.2f%%", row.Percentage),
			})
		}
	}

	t.Render()
}

// WriteTrend renders a trend summary
func WriteTrend(w io.Writer, summary *analysis.TrendSummary) {
	fmt.Fprintf(w, "Start: %s\n", summary.Start.Format("2006-01-02"))
	fmt.Fprintf(w, "End: %s\n", summary.End.Format("2006-01-02"))
	fmt.Fprintf(w, "Records: %d\n", summary.RecordCount)

	if summary.GrowthRate != nil {
		fmt.Fprintf(w, "Growth rate: %.2f%% (%v to %v)\n",
			*summary.GrowthRate, *summary.FirstValue, *summary.LastValue)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Date", "Value"})

	for _, p := range summary.Points {
		t.AppendRow(table.Row{p.Date.Format("2006-01-02"), artifact.FormatScalar(p.Value)})
	}

	t.Render()
}
