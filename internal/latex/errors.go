package latex

import "fmt"

// StructureError reports a structural validity failure in a LaTeX source,
// such as unbalanced braces or a mismatched environment.
type StructureError struct {
	Message string
	Line    int // 1-indexed line of the offending token, 0 if unknown
}

func (e *StructureError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid latex structure at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("invalid latex structure: %s", e.Message)
}
