package convert

import "fmt"

// ConversionError reports a failed document conversion.
type ConversionError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("convert %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("convert %s: %s", e.Kind, e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
