package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/logging"
	"github.com/sqlpilot/sqlpilot/internal/session"
)

// newSession loads configuration, builds the logger, and constructs a
// session. Model selection and schema introspection run here, so commands
// that only need the completion side still pay the introspection attempt;
// that mirrors the one-session-per-invocation model.
func newSession(cmd *cobra.Command) (*session.Session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return session.New(cmd.Context(), cfg, logger), nil
}
