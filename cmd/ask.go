package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/artifact"
	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/formatter"
	"github.com/sqlpilot/sqlpilot/internal/session"
)

var (
	askYes     bool
	askExplore bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Compile a question into SQL and execute it",
	Long: `Compile a natural-language question into a SELECT statement, show the SQL,
and execute it after confirmation.

Examples:
  sqlpilot ask "how many users signed up last month"
  sqlpilot ask --yes "average order total by city"
  sqlpilot ask --explore "orders by day"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd, args[0], nil)
	},
}

func init() {
	askCmd.Flags().BoolVarP(&askYes, "yes", "y", false, "Execute without confirmation")
	askCmd.Flags().BoolVar(&askExplore, "explore", false,
		"After execution, enter an interactive loop for analysis and export")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, question string, sess *session.Session) error {
	out := cmd.OutOrStdout()

	if sess == nil {
		var err error

		sess, err = newSession(cmd)
		if err != nil {
			return err
		}
	}

	compiled, err := sess.Compile(cmd.Context(), question)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Generated SQL:\n  %s\n", compiled.SQL)

	if !compiled.FoundSelect {
		fmt.Fprintln(out, "Warning: the completion did not contain a SELECT statement.")
	}

	if !askYes {
		ok, err := confirm(cmd, "Execute this query?")
		if err != nil {
			return err
		}

		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	result, err := sess.Run(cmd.Context(), compiled.SQL)
	if err != nil {
		return err
	}

	formatter.WriteResult(out, result)

	if askExplore {
		return explore(cmd, sess)
	}

	return nil
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}

const exploreHelp = `Commands:
  analyze                          distribution statistics for the result
  percentage <column>              percentage breakdown of one column
  trend <date-col> <value-col>     date-ordered trend with growth rate
  export csv|xlsx                  write the result to a file
  viz bar|pie|line [x y]           write an HTML chart (dashboard needs no axes)
  viz dashboard
  ask <question>                   compile and run another question
  history                          statements executed this session
  schema                           the introspected schema
  help                             this text
  exit                             leave explore mode`

// explore reads commands until exit or EOF, applying each to the session's
// bound result. Errors are printed and the loop continues.
func explore(cmd *cobra.Command, sess *session.Session) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, "Entering explore mode. Type help for commands, exit to leave.")

	for {
		fmt.Fprint(out, "sqlpilot> ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}

		if err := dispatch(cmd, sess, fields); err != nil {
			printError(err)
		}
	}
}

func dispatch(cmd *cobra.Command, sess *session.Session, fields []string) error {
	out := cmd.OutOrStdout()

	switch fields[0] {
	case "help":
		fmt.Fprintln(out, exploreHelp)
		return nil

	case "analyze":
		return showDistribution(sess, out)

	case "percentage":
		if len(fields) != 2 {
			return errors.New(errors.ErrTypeUnknownColumn, "usage: percentage <column>")
		}

		return showBreakdown(sess, out, fields[1])

	case "trend":
		if len(fields) != 3 {
			return errors.New(errors.ErrTypeUnknownColumn, "usage: trend <date-col> <value-col>")
		}

		return showTrend(sess, out, fields[1], fields[2])

	case "export":
		if len(fields) != 2 {
			return errors.New(errors.ErrTypeExport, "usage: export csv|xlsx")
		}

		return exportResult(sess, out, fields[1])

	case "viz":
		return dispatchViz(sess, out, fields[1:])

	case "ask":
		if len(fields) < 2 {
			return errors.New(errors.ErrTypeInternal, "usage: ask <question>")
		}

		return exploreAsk(cmd, sess, strings.Join(fields[1:], " "))

	case "history":
		showHistory(sess, out)
		return nil

	case "schema":
		return showSchema(sess, out)
	}

	return errors.Newf(errors.ErrTypeInternal, "unknown command: %s (type help)", fields[0])
}

func dispatchViz(sess *session.Session, out io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New(errors.ErrTypeInternal, "usage: viz bar|pie|line|dashboard [x y]")
	}

	kind, err := parseChartKind(args[0])
	if err != nil {
		return err
	}

	var axes artifact.Axes

	if len(args) == 3 {
		axes = artifact.Axes{X: args[1], Y: args[2]}
	} else if kind != artifact.ChartDashboard {
		return errors.Newf(errors.ErrTypeMissingColumn, "usage: viz %s <x> <y>", kind)
	}

	return renderChart(sess, out, kind, axes)
}

// exploreAsk runs a follow-up question without a confirmation step; the
// user typed it interactively.
func exploreAsk(cmd *cobra.Command, sess *session.Session, question string) error {
	out := cmd.OutOrStdout()

	run, err := sess.CompileAndRun(cmd.Context(), question)
	if run != nil && run.SQL != "" {
		fmt.Fprintf(out, "Generated SQL:\n  %s\n", run.SQL)
	}

	if err != nil {
		return err
	}

	formatter.WriteResult(out, run.Result)

	return nil
}
