// Package compile turns a natural-language question into sanitized SQL text
// via the completion collaborator.
package compile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sqlpilot/sqlpilot/internal/errors"
	"github.com/sqlpilot/sqlpilot/internal/llm"
	"github.com/sqlpilot/sqlpilot/internal/schema"
)

// CompiledQuery is the output of compilation. FoundSelect records whether
// extraction actually located a SELECT token; the executor uses it to fail
// closed before anything reaches the database.
type CompiledQuery struct {
	Question    string
	SQL         string
	FoundSelect bool
	GeneratedAt time.Time
}

// Compiler builds schema-grounded prompts and extracts a single SELECT
// statement from the model's free-form answer
type Compiler struct {
	service  llm.Service
	snapshot *schema.Snapshot
}

// NewCompiler creates a compiler bound to a completion service and an
// immutable schema snapshot
func NewCompiler(service llm.Service, snapshot *schema.Snapshot) *Compiler {
	return &Compiler{
		service:  service,
		snapshot: snapshot,
	}
}

// Compile converts the question into sanitized SQL. It does not verify that
// the sanitized text is actually a SELECT; a completion with no SELECT token
// is returned as-is and rejected at execution time.
func (c *Compiler) Compile(ctx context.Context, question string) (*CompiledQuery, error) {
	if !c.snapshot.Available() {
		return nil, errors.Wrap(c.snapshot.Err(), errors.ErrTypeSchemaUnavailable,
			"cannot compile without a schema snapshot")
	}

	prompt := BuildPrompt(question, c.snapshot)

	raw, err := c.service.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	sql, found := Sanitize(raw)

	return &CompiledQuery{
		Question:    question,
		SQL:         sql,
		FoundSelect: found,
		GeneratedAt: time.Now(),
	}, nil
}

// BuildPrompt assembles the instruction block: a fixed role statement, the
// serialized schema, eight generation rules, and the verbatim question.
// Every table and column name in the snapshot appears in the output.
func BuildPrompt(question string, snapshot *schema.Snapshot) string {
	return fmt.Sprintf(`You are a MySQL query generator. Convert natural language questions into valid MySQL queries.

Database Schema:
%s

RULES:
1. Generate ONLY the SQL query, no explanations
2. Use proper MySQL syntax
3. Return only SELECT statements for safety
4. Support JOIN operations for multi-table queries
5. Use aggregate functions (SUM, AVG, COUNT, etc.) when needed
6. Do NOT use markdown or code blocks
7. Do NOT include semicolon
8. Return ONLY the raw SQL query

User Question: %s

SQL Query:`, snapshot.Format(), question)
}

// Sanitize strips code fences and surrounding quotes from the raw completion,
// truncates leading commentary before the first SELECT token, and removes a
// trailing semicolon. The second return value reports whether a SELECT token
// was found. Sanitize is idempotent.
func Sanitize(raw string) (string, bool) {
	text := strings.ReplaceAll(raw, "```sql", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)

	found := false
	if idx := strings.Index(strings.ToUpper(text), "SELECT"); idx >= 0 {
		text = text[idx:]
		found = true
	}

	text = strings.TrimRight(text, ";")

	return strings.TrimSpace(text), found
}
