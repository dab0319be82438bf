// Package exec runs sanitized statements against the database and
// normalizes results into the shared tabular value model.
package exec

import (
	"context"
	"database/sql"
	"time"

	// Registers the mysql driver for database/sql.
	_ "github.com/go-sql-driver/mysql"

	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/history"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

// OpenFunc opens a database handle. The executor opens a fresh handle per
// call and closes it on every path; usage is interactive, not
// high-throughput, so the extra round-trip is acceptable.
type OpenFunc func() (*sql.DB, error)

// Executor runs read-only statements and records successful executions in
// the history ledger
type Executor struct {
	open   OpenFunc
	ledger *history.Ledger
}

// NewExecutor creates an executor that connects with the configured DSN
func NewExecutor(cfg config.DatabaseConfig, ledger *history.Ledger) *Executor {
	dsn := cfg.DSN()

	return &Executor{
		open: func() (*sql.DB, error) {
			return sql.Open("mysql", dsn)
		},
		ledger: ledger,
	}
}

// NewExecutorWithOpener creates an executor with a custom opener, used by
// tests to substitute a mock database
func NewExecutorWithOpener(open OpenFunc, ledger *history.Ledger) *Executor {
	return &Executor{open: open, ledger: ledger}
}

// Ledger returns the history ledger this executor appends to
func (e *Executor) Ledger() *history.Ledger {
	return e.ledger
}

// Execute guards the statement, runs it on a fresh connection, and returns
// the normalized result. A history entry is appended only on success.
func (e *Executor) Execute(ctx context.Context, sqlText string) (*types.TabularResult, error) {
	if err := guard(sqlText); err != nil {
		return nil, err
	}

	db, err := e.open()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to open database connection")
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "query execution failed")
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to read result rows")
	}

	e.ledger.Append(history.Entry{
		SQL:        sqlText,
		ExecutedAt: time.Now(),
		RowCount:   result.RowCount(),
	})

	return result, nil
}
