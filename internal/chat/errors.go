package chat

import "fmt"

// InvalidEditError indicates the model returned content that cannot be
// applied to the document. The original document is left untouched.
type InvalidEditError struct {
	Section string
	Reason  string
	Cause   error
}

func (e *InvalidEditError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid edit result for %q: %s: %v", e.Section, e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid edit result for %q: %s", e.Section, e.Reason)
}

func (e *InvalidEditError) Unwrap() error {
	return e.Cause
}

// EditConflictError indicates the document changed between reading a
// section and applying the model's rewrite of it. The edit is retryable.
type EditConflictError struct {
	Section string
}

func (e *EditConflictError) Error() string {
	return fmt.Sprintf("edit conflict: section %q changed while the rewrite was in flight", e.Section)
}
