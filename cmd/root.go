package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "sqlpilot",
	Short: "Ask a MySQL database questions in natural language",
	Long: `sqlpilot compiles natural-language questions into SELECT statements using a
text-completion model, executes them against a MySQL database, and analyzes
the results: distribution statistics, percentage breakdowns, date trends,
HTML charts, and CSV/XLSX exports.

Configuration comes from SQLPILOT_-prefixed environment variables or a .env
file in the working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		return err
	}

	return nil
}

// printError renders application errors as kind plus message, with any
// suggestions, and everything else verbatim
func printError(err error) {
	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		fmt.Fprintf(os.Stderr, "Error (%s): %s\n", appErr.Type, appErr.Message)

		for _, s := range appErr.Suggestions {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", s)
		}

		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
