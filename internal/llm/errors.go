package llm

import (
	"errors"
	"fmt"
)

// ErrCompletionTimeout indicates the provider did not answer within the
// configured deadline. Callers can retry with the same inputs.
var ErrCompletionTimeout = errors.New("completion timed out")

// ProviderError wraps a failure reported by the underlying LLM provider.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm provider: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm provider: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
