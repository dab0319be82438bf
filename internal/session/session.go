// Package session wires the compiler, executor, analyzers, and artifact
// writers into one interactive unit and tracks the last bound result.
package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sqlpilot/sqlpilot/internal/analysis"
	"github.com/sqlpilot/sqlpilot/internal/artifact"
	"github.com/sqlpilot/sqlpilot/internal/compile"
	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/exec"
	"github.com/sqlpilot/sqlpilot/internal/history"
	"github.com/sqlpilot/sqlpilot/internal/llm"
	"github.com/sqlpilot/sqlpilot/internal/schema"
	"github.com/sqlpilot/sqlpilot/internal/types"
)

// Session holds the collaborators for one interactive run. Analysis and
// artifact operations act on the result of the most recent successful
// execution; a session with no bound result rejects them with a no-data
// error instead of guessing.
type Session struct {
	ID       uuid.UUID
	cfg      *config.Config
	logger   *zap.Logger
	service  llm.Service
	snapshot *schema.Snapshot
	compiler *compile.Compiler
	executor *exec.Executor
	ledger   *history.Ledger
	renderer *artifact.ChartRenderer
	exporter *artifact.Exporter

	lastResult *types.TabularResult
	lastSQL    string
	lastRunAt  time.Time
}

// RunResult pairs the compiled SQL with its execution output. SQL is set
// even when execution fails so callers can show what was attempted.
type RunResult struct {
	SQL    string
	Result *types.TabularResult
}

// New builds a session against the configured completion service and
// database. Model selection and schema introspection both run here, up
// front; a failed introspection does not abort construction but leaves the
// snapshot unavailable, which compilation reports explicitly.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Session {
	client := llm.NewClient(cfg.Completion)
	model := client.SelectModel(ctx)
	logger.Info("model selected", zap.String("model", model))

	snapshot := loadSnapshot(ctx, cfg.Database, logger)

	return build(cfg, logger, client, snapshot, exec.NewExecutor(cfg.Database, history.NewLedger()))
}

// NewWithComponents builds a session from pre-constructed collaborators,
// used by tests to substitute stubs for the network and the database.
func NewWithComponents(cfg *config.Config, logger *zap.Logger, service llm.Service, snapshot *schema.Snapshot, open exec.OpenFunc) *Session {
	return build(cfg, logger, service, snapshot, exec.NewExecutorWithOpener(open, history.NewLedger()))
}

func build(cfg *config.Config, logger *zap.Logger, service llm.Service, snapshot *schema.Snapshot, executor *exec.Executor) *Session {
	return &Session{
		ID:       uuid.New(),
		cfg:      cfg,
		logger:   logger,
		service:  service,
		snapshot: snapshot,
		compiler: compile.NewCompiler(service, snapshot),
		executor: executor,
		ledger:   executor.Ledger(),
		renderer: artifact.NewChartRenderer(cfg.Output.Directory),
		exporter: artifact.NewExporter(cfg.Output.Directory),
	}
}

func loadSnapshot(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) *schema.Snapshot {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logger.Warn("schema introspection failed", zap.Error(err))
		return schema.Unavailable(err)
	}
	defer db.Close()

	snapshot, err := schema.Load(ctx, db)
	if err != nil {
		logger.Warn("schema introspection failed", zap.Error(err))
		return schema.Unavailable(err)
	}

	logger.Info("schema loaded", zap.Int("tables", len(snapshot.Tables)))

	return snapshot
}

// Model returns the identifier of the selected completion model
func (s *Session) Model() string {
	return s.service.Model()
}

// SchemaText returns the serialized schema snapshot
func (s *Session) SchemaText() (string, error) {
	if !s.snapshot.Available() {
		return "", errors.Wrap(s.snapshot.Err(), errors.ErrTypeSchemaUnavailable,
			"schema snapshot is unavailable")
	}

	return s.snapshot.Format(), nil
}

// Compile turns a question into sanitized SQL without executing it
func (s *Session) Compile(ctx context.Context, question string) (*compile.CompiledQuery, error) {
	compiled, err := s.compiler.Compile(ctx, question)
	if err != nil {
		s.logger.Error("compilation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("question compiled",
		zap.String("question", question),
		zap.String("sql", compiled.SQL),
		zap.Bool("found_select", compiled.FoundSelect))

	return compiled, nil
}

// Run executes previously compiled SQL and binds the result to the session
func (s *Session) Run(ctx context.Context, sqlText string) (*types.TabularResult, error) {
	result, err := s.executor.Execute(ctx, sqlText)
	if err != nil {
		s.logger.Error("execution failed", zap.String("sql", sqlText), zap.Error(err))
		return nil, err
	}

	s.lastResult = result
	s.lastSQL = sqlText
	s.lastRunAt = time.Now()

	s.logger.Info("query executed",
		zap.String("sql", sqlText),
		zap.Int("rows", result.RowCount()))

	return result, nil
}

// CompileAndRun compiles the question and executes the result in one step.
// When execution fails, the returned RunResult still carries the SQL.
func (s *Session) CompileAndRun(ctx context.Context, question string) (*RunResult, error) {
	compiled, err := s.Compile(ctx, question)
	if err != nil {
		return nil, err
	}

	result, err := s.Run(ctx, compiled.SQL)
	if err != nil {
		return &RunResult{SQL: compiled.SQL}, err
	}

	return &RunResult{SQL: compiled.SQL, Result: result}, nil
}

// LastResult returns the bound result of the most recent execution
func (s *Session) LastResult() (*types.TabularResult, error) {
	if s.lastResult == nil {
		return nil, errors.New(errors.ErrTypeNoData,
			"no query results available; run a query first")
	}

	return s.lastResult, nil
}

// Distribution computes summary statistics over the bound result
func (s *Session) Distribution() (*analysis.Distribution, error) {
	result, err := s.LastResult()
	if err != nil {
		return nil, err
	}

	return analysis.Distribute(result)
}

// Breakdown computes a percentage breakdown of one column of the bound
// result
func (s *Session) Breakdown(column string) (*analysis.PercentageBreakdown, error) {
	result, err := s.LastResult()
	if err != nil {
		return nil, err
	}

	return analysis.Breakdown(result, column)
}

// Trend computes a date-ordered trend over the bound result
func (s *Session) Trend(dateColumn, valueColumn string) (*analysis.TrendSummary, error) {
	result, err := s.LastResult()
	if err != nil {
		return nil, err
	}

	return analysis.Trend(result, dateColumn, valueColumn)
}

// Render writes a chart file for the bound result and returns its path
func (s *Session) Render(kind artifact.ChartKind, axes artifact.Axes) (string, error) {
	result, err := s.LastResult()
	if err != nil {
		return "", err
	}

	path, err := s.renderer.Render(result, kind, axes)
	if err != nil {
		return "", err
	}

	s.logger.Info("chart written", zap.String("path", path))

	return path, nil
}

// Export writes the bound result to a file in the requested format and
// returns its path. Supported formats are "csv" and "xlsx".
func (s *Session) Export(format string) (string, error) {
	result, err := s.LastResult()
	if err != nil {
		return "", err
	}

	var path string

	switch format {
	case "csv":
		path, err = s.exporter.ExportCSV(result)
	case "xlsx":
		path, err = s.exporter.ExportXLSX(result, artifact.ExportMeta{
			SQL:        s.lastSQL,
			ExecutedAt: s.lastRunAt,
		})
	default:
		return "", errors.Newf(errors.ErrTypeExport,
			"unsupported export format: %s (expected csv or xlsx)", format)
	}

	if err != nil {
		return "", err
	}

	s.logger.Info("export written", zap.String("path", path), zap.String("format", format))

	return path, nil
}

// History returns the executed statements in order
func (s *Session) History() []history.Entry {
	return s.ledger.Entries()
}
