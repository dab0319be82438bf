package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/session"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "Run a question and show distribution statistics",
	Long: `Compile and execute a question, then print per-column distribution
statistics for the result: count, mean, standard deviation, min, quartiles,
and max for every numeric column.

Example:
  sqlpilot analyze "order totals for the last quarter"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, args[0], nil)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, question string, sess *session.Session) error {
	sess, err := runQuestion(cmd, sess, question)
	if err != nil {
		return err
	}

	return showDistribution(sess, cmd.OutOrStdout())
}

// runQuestion boots the session when needed, compiles and executes the
// question, and echoes the generated SQL. Shared by the one-shot analysis
// commands.
func runQuestion(cmd *cobra.Command, sess *session.Session, question string) (*session.Session, error) {
	if sess == nil {
		var err error

		sess, err = newSession(cmd)
		if err != nil {
			return nil, err
		}
	}

	run, err := sess.CompileAndRun(cmd.Context(), question)
	if run != nil && run.SQL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated SQL:\n  %s\n", run.SQL)
	}

	if err != nil {
		return nil, err
	}

	return sess, nil
}
