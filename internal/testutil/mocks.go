// Package testutil provides shared test doubles.
package testutil

import (
	"context"
	"sync"
)

// StubCompletionService implements llm.Service for testing, with canned
// responses and error injection
type StubCompletionService struct {
	mu sync.Mutex

	Response  string
	Err       error
	ModelName string

	Prompts []string
}

// StubOption is a functional option for configuring StubCompletionService
type StubOption func(*StubCompletionService)

// WithResponse sets the canned completion text
func WithResponse(text string) StubOption {
	return func(s *StubCompletionService) {
		s.Response = text
	}
}

// WithError makes every Complete call fail with err
func WithError(err error) StubOption {
	return func(s *StubCompletionService) {
		s.Err = err
	}
}

// NewStubCompletionService creates a stub with the given options
func NewStubCompletionService(opts ...StubOption) *StubCompletionService {
	stub := &StubCompletionService{ModelName: "stub-model"}

	for _, opt := range opts {
		opt(stub)
	}

	return stub
}

// Complete records the prompt and returns the canned response or error
func (s *StubCompletionService) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Prompts = append(s.Prompts, prompt)

	if s.Err != nil {
		return "", s.Err
	}

	return s.Response, nil
}

// Model returns the configured model name
func (s *StubCompletionService) Model() string {
	return s.ModelName
}

// LastPrompt returns the most recent prompt, or "" when none was recorded
func (s *StubCompletionService) LastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Prompts) == 0 {
		return ""
	}

	return s.Prompts[len(s.Prompts)-1]
}
