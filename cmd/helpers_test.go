package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/schema"
	"github.com/sqlpilot/sqlpilot/internal/session"
	"github.com/sqlpilot/sqlpilot/internal/testutil"
)

// testCmd builds a bare command with captured output and scripted input
func testCmd(in string) (*cobra.Command, *bytes.Buffer) {
	c := &cobra.Command{}
	buf := &bytes.Buffer{}

	c.SetOut(buf)
	c.SetErr(buf)
	c.SetIn(strings.NewReader(in))
	c.SetContext(context.Background())

	return c, buf
}

// newTestSession builds a session with a stubbed completion service and a
// sqlmock database. setup registers expectations on a fresh mock for every
// connection the executor opens.
func newTestSession(t *testing.T, response string, setup func(sqlmock.Sqlmock)) *session.Session {
	t.Helper()

	cfg := &config.Config{
		Output: config.OutputConfig{Directory: t.TempDir()},
	}

	snapshot := &schema.Snapshot{
		Tables: []schema.Table{
			{
				Name: "users",
				Columns: []schema.Column{
					{Name: "id", Type: "int", PrimaryKey: true},
					{Name: "city", Type: "varchar(100)"},
				},
			},
		},
	}

	open := func() (*sql.DB, error) {
		if setup == nil {
			return nil, fmt.Errorf("no database in this test")
		}

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		setup(mock)
		mock.ExpectClose()

		return db, nil
	}

	stub := testutil.NewStubCompletionService(testutil.WithResponse(response))

	return session.NewWithComponents(cfg, zap.NewNop(), stub, snapshot, open)
}

func resetAskFlags() {
	askYes = false
	askExplore = false
}

func resetVizFlags() {
	vizX = ""
	vizY = ""
}
