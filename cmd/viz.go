package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/artifact"
	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/session"
)

var (
	vizX string
	vizY string
)

var vizCmd = &cobra.Command{
	Use:   "viz bar|pie|line|dashboard <question>",
	Short: "Run a question and render an HTML chart of the result",
	Long: `Compile and execute a question, then write an HTML chart of the result to
the output directory. Bar, pie, and line charts plot --y against --x; the
dashboard renders histograms, box plots, and summary statistics for every
numeric column and needs no axes.

Examples:
  sqlpilot viz bar --x city --y total "revenue by city"
  sqlpilot viz line --x day --y signups "signups per day"
  sqlpilot viz dashboard "all order fields"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViz(cmd, args[0], args[1], nil)
	},
}

func init() {
	vizCmd.Flags().StringVar(&vizX, "x", "", "Column for the x axis (labels)")
	vizCmd.Flags().StringVar(&vizY, "y", "", "Column for the y axis (values)")

	rootCmd.AddCommand(vizCmd)
}

func runViz(cmd *cobra.Command, rawKind, question string, sess *session.Session) error {
	kind, err := parseChartKind(rawKind)
	if err != nil {
		return err
	}

	if kind != artifact.ChartDashboard && (vizX == "" || vizY == "") {
		return errors.Newf(errors.ErrTypeMissingColumn,
			"%s charts require --x and --y", kind)
	}

	sess, err = runQuestion(cmd, sess, question)
	if err != nil {
		return err
	}

	return renderChart(sess, cmd.OutOrStdout(), kind, artifact.Axes{X: vizX, Y: vizY})
}
