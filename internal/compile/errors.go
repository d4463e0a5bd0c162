package compile

import "fmt"

// CompilationError reports a failed or degraded pdflatex run. Line is the
// source line pdflatex pointed at, or zero when it reported none.
type CompilationError struct {
	Message   string
	Line      int
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("latex compile: %s (line %d)", e.Message, e.Line)
	}
	return fmt.Sprintf("latex compile: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
