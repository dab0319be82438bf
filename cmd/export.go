package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/session"
)

var exportCmd = &cobra.Command{
	Use:   "export csv|xlsx <question>",
	Short: "Run a question and export the result to a file",
	Long: `Compile and execute a question, then write the result to a timestamped file
in the output directory. CSV exports hold the raw table; XLSX exports add a
Summary sheet with the executed SQL and, when the result has numeric
columns, a Statistics sheet.

Examples:
  sqlpilot export csv "all orders from today"
  sqlpilot export xlsx "revenue by product"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args[0], args[1], nil)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, format, question string, sess *session.Session) error {
	sess, err := runQuestion(cmd, sess, question)
	if err != nil {
		return err
	}

	return exportResult(sess, cmd.OutOrStdout(), format)
}
