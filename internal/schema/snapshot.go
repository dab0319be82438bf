// Package schema captures a point-in-time description of the database
// tables and columns used to ground prompt generation.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sqlpilot/sqlpilot/internal/errors"
)

// Column describes a single table column
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
}

// Table describes a table and its columns in declaration order
type Table struct {
	Name    string
	Columns []Column
}

// Snapshot is an immutable description of the available tables, built once
// per session. A failed introspection yields a snapshot in an explicit
// unavailable state; compiling against it fails instead of feeding an error
// string into the prompt.
type Snapshot struct {
	Tables []Table
	err    error
}

// Unavailable constructs a snapshot describing a failed introspection
func Unavailable(err error) *Snapshot {
	return &Snapshot{err: err}
}

// Available reports whether introspection succeeded
func (s *Snapshot) Available() bool {
	return s.err == nil
}

// Err returns the introspection failure, if any
func (s *Snapshot) Err() error {
	return s.err
}

// Load introspects the connected database with SHOW TABLES and a DESCRIBE
// per table. Ordering follows what the server returns, so prompt text is
// stable for a given schema.
func Load(ctx context.Context, db *sql.DB) (*Snapshot, error) {
	names, err := listTables(ctx, db)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeIntrospection, "failed to list tables")
	}

	snapshot := &Snapshot{}

	for _, name := range names {
		columns, err := describeTable(ctx, db, name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTypeIntrospection,
				"failed to describe table %s", name)
		}

		snapshot.Tables = append(snapshot.Tables, Table{Name: name, Columns: columns})
	}

	return snapshot, nil
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

func describeTable(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	rows, err := db.QueryContext(ctx, "DESCRIBE "+quoteIdentifier(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []Column

	for rows.Next() {
		var (
			field, colType, null, key string
			defaultVal, extra         sql.NullString
		)

		if err := rows.Scan(&field, &colType, &null, &key, &defaultVal, &extra); err != nil {
			return nil, err
		}

		columns = append(columns, Column{
			Name:       field,
			Type:       colType,
			PrimaryKey: key == "PRI",
		})
	}

	return columns, rows.Err()
}

// quoteIdentifier backtick-quotes a table name for DESCRIBE, which does not
// accept placeholders
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Format serializes the snapshot as the nested table/column lines embedded
// into prompts:
//
//	Table: employees
//	  - id (int) PRIMARY KEY
//	  - name (varchar(100))
func (s *Snapshot) Format() string {
	var sb strings.Builder

	for i, table := range s.Tables {
		if i > 0 {
			sb.WriteString("\n")
		}

		sb.WriteString(fmt.Sprintf("Table: %s\n", table.Name))

		for _, col := range table.Columns {
			sb.WriteString(fmt.Sprintf("  - %s (%s)", col.Name, col.Type))

			if col.PrimaryKey {
				sb.WriteString(" PRIMARY KEY")
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
