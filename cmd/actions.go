package cmd

import (
	"fmt"
	"io"

	"github.com/sqlpilot/sqlpilot/internal/artifact"
	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/formatter"
	"github.com/sqlpilot/sqlpilot/internal/session"
)

// The action helpers are shared between the one-shot commands and the
// explore loop inside ask. Each one operates on the session's bound result.

func showDistribution(sess *session.Session, out io.Writer) error {
	dist, err := sess.Distribution()
	if err != nil {
		return err
	}

	formatter.WriteDistribution(out, dist)

	return nil
}

func showBreakdown(sess *session.Session, out io.Writer, column string) error {
	breakdown, err := sess.Breakdown(column)
	if err != nil {
		return err
	}

	formatter.WriteBreakdown(out, breakdown)

	return nil
}

func showTrend(sess *session.Session, out io.Writer, dateColumn, valueColumn string) error {
	summary, err := sess.Trend(dateColumn, valueColumn)
	if err != nil {
		return err
	}

	formatter.WriteTrend(out, summary)

	return nil
}

func exportResult(sess *session.Session, out io.Writer, format string) error {
	path, err := sess.Export(format)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Exported to %s\n", path)

	return nil
}

func renderChart(sess *session.Session, out io.Writer, kind artifact.ChartKind, axes artifact.Axes) error {
	path, err := sess.Render(kind, axes)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Chart written to %s\n", path)

	return nil
}

func showHistory(sess *session.Session, out io.Writer) {
	formatter.WriteHistory(out, sess.History())
}

func showSchema(sess *session.Session, out io.Writer) error {
	text, err := sess.SchemaText()
	if err != nil {
		return err
	}

	fmt.Fprint(out, text)

	return nil
}

func parseChartKind(raw string) (artifact.ChartKind, error) {
	switch artifact.ChartKind(raw) {
	case artifact.ChartBar, artifact.ChartPie, artifact.ChartLine, artifact.ChartDashboard:
		return artifact.ChartKind(raw), nil
	}

	return "", errors.Newf(errors.ErrTypeInternal,
		"unknown chart kind: %s (expected bar, pie, line, or dashboard)", raw)
}
