package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without cause",
			err:      New(ErrTypeRejectedStatement, "statement is not a SELECT"),
			expected: "rejected_statement: statement is not a SELECT",
		},
		{
			name:     "with cause",
			err:      Wrap(fmt.Errorf("dial tcp: refused"), ErrTypeDatabase, "query failed"),
			expected: "database: query failed (caused by: dial tcp: refused)",
		},
		{
			name:     "formatted message",
			err:      Newf(ErrTypeUnknownColumn, "column %q not found", "city"),
			expected: `unknown_column: column "city" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsType(t *testing.T) {
	err := New(ErrTypeNoData, "no query has been executed")

	assert.True(t, IsType(err, ErrTypeNoData))
	assert.False(t, IsType(err, ErrTypeDatabase))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrTypeNoData))
}

func TestIsTypeWrapped(t *testing.T) {
	inner := New(ErrTypeDegenerateInput, "column sums to zero")
	outer := fmt.Errorf("percentage breakdown: %w", inner)

	assert.True(t, IsType(outer, ErrTypeDegenerateInput))
	assert.Equal(t, ErrTypeDegenerateInput, GetType(outer))
}

func TestGetTypeFallsBackToInternal(t *testing.T) {
	assert.Equal(t, ErrTypeInternal, GetType(fmt.Errorf("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("original")
	err := Wrap(cause, ErrTypeIntrospection, "describe failed")

	assert.Equal(t, cause, err.Unwrap())
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrTypeConfig, "missing API key").
		WithSuggestion("set SQLPILOT_API_KEY in the environment")

	assert.Len(t, err.Suggestions, 1)
}
