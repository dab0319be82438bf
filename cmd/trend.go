package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/session"
)

var trendCmd = &cobra.Command{
	Use:   "trend <date-column> <value-column> <question>",
	Short: "Run a question and show a date-ordered trend",
	Long: `Compile and execute a question, then print the result ordered by the date
column with a growth rate computed from the first and last values of the
value column.

Example:
  sqlpilot trend signup_date total "daily signups this month"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrend(cmd, args[0], args[1], args[2], nil)
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, dateColumn, valueColumn, question string, sess *session.Session) error {
	sess, err := runQuestion(cmd, sess, question)
	if err != nil {
		return err
	}

	return showTrend(sess, cmd.OutOrStdout(), dateColumn, valueColumn)
}
