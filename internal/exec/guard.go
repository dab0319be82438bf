package exec

import (
	"strings"

	"github.com/sqlpilot/sqlpilot/internal/errors"
)

// deniedKeywords are write or DDL operations that must never reach the
// database, matched as standalone tokens outside string literals
var deniedKeywords = map[string]bool{
	"INSERT":   true,
	"UPDATE":   true,
	"DELETE":   true,
	"DROP":     true,
	"ALTER":    true,
	"CREATE":   true,
	"TRUNCATE": true,
	"REPLACE":  true,
	"GRANT":    true,
	"REVOKE":   true,
}

// guard confirms the statement's first keyword after leading whitespace and
// comments is SELECT, and that no denied keyword appears as a bare token.
// Anything else fails closed before the statement reaches the database.
func guard(sqlText string) error {
	stripped := stripLeadingComments(sqlText)
	if stripped == "" {
		return errors.New(errors.ErrTypeRejectedStatement, "statement is empty")
	}

	first := firstToken(stripped)
	if !strings.EqualFold(first, "SELECT") {
		return errors.Newf(errors.ErrTypeRejectedStatement,
			"only SELECT statements are allowed, got %q", first)
	}

	for _, token := range bareTokens(stripped) {
		if deniedKeywords[strings.ToUpper(token)] {
			return errors.Newf(errors.ErrTypeRejectedStatement,
				"statement contains denied keyword %s", strings.ToUpper(token))
		}
	}

	return nil
}

// stripLeadingComments removes leading whitespace, line comments (-- and #)
// and block comments
func stripLeadingComments(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\r\n")

		switch {
		case strings.HasPrefix(s, "--"), strings.HasPrefix(s, "#"):
			idx := strings.IndexByte(s, '\n')
			if idx < 0 {
				return ""
			}

			s = s[idx+1:]
		case strings.HasPrefix(s, "/*"):
			idx := strings.Index(s, "*/")
			if idx < 0 {
				return ""
			}

			s = s[idx+2:]
		default:
			return s
		}
	}
}

func firstToken(s string) string {
	end := 0
	for end < len(s) && isWordByte(s[end]) {
		end++
	}

	return s[:end]
}

// bareTokens returns the word tokens of the statement, skipping string
// literals and backtick-quoted identifiers so column names or data that
// merely contain a denied word do not trip the guard
func bareTokens(s string) []string {
	var tokens []string

	i := 0
	for i < len(s) {
		c := s[i]

		switch {
		case c == '\'' || c == '"' || c == '`':
			i = skipQuoted(s, i)
		case isWordByte(c):
			start := i
			for i < len(s) && isWordByte(s[i]) {
				i++
			}

			tokens = append(tokens, s[start:i])
		default:
			i++
		}
	}

	return tokens
}

// skipQuoted advances past a quoted region starting at i, honoring doubled
// and backslash-escaped quotes
func skipQuoted(s string, i int) int {
	quote := s[i]
	i++

	for i < len(s) {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			i += 2
		case s[i] == quote:
			if i+1 < len(s) && s[i+1] == quote {
				i += 2
				continue
			}

			return i + 1
		default:
			i++
		}
	}

	return i
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
