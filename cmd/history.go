package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/session"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show statements executed in this session",
	Long: `Show the SQL statements executed in the current session, in order, with
timestamps and row counts. History lives in memory for the lifetime of one
session; use ask --explore to run several queries against the same history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHistory(cmd, nil)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, sess *session.Session) error {
	if sess == nil {
		var err error

		sess, err = newSession(cmd)
		if err != nil {
			return err
		}
	}

	showHistory(sess, cmd.OutOrStdout())

	return nil
}
