package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/session"
)

var percentageCmd = &cobra.Command{
	Use:   "percentage <column> <question>",
	Short: "Run a question and show a percentage breakdown of one column",
	Long: `Compile and execute a question, then print a percentage breakdown of the
named column. Numeric columns get per-value share of the total with a
cumulative column; text columns get value counts sorted by frequency.

Example:
  sqlpilot percentage city "users by city"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPercentage(cmd, args[0], args[1], nil)
	},
}

func init() {
	rootCmd.AddCommand(percentageCmd)
}

func runPercentage(cmd *cobra.Command, column, question string, sess *session.Session) error {
	sess, err := runQuestion(cmd, sess, question)
	if err != nil {
		return err
	}

	return showBreakdown(sess, cmd.OutOrStdout(), column)
}
