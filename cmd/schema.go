package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/session"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the introspected database schema",
	Long: `Introspect the configured database and print every table with its columns,
types, and primary keys. This is the same schema text the compiler embeds in
its prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSchema(cmd, nil)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, sess *session.Session) error {
	if sess == nil {
		var err error

		sess, err = newSession(cmd)
		if err != nil {
			return err
		}
	}

	return showSchema(sess, cmd.OutOrStdout())
}
