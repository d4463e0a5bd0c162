package latex

import (
	"regexp"
	"strings"
)

var beginPattern = regexp.MustCompile(`\\begin\{([a-zA-Z*]+)\}`)
var endPattern = regexp.MustCompile(`\\end\{([a-zA-Z*]+)\}`)

// ValidateStructure checks a LaTeX source for structural validity: balanced
// braces, matched \begin/\end environment pairs and a closed document
// environment. It does not attempt full grammar validation; the goal is to
// catch the breakage AI-produced replacements most often introduce before
// they are committed to a session.
func ValidateStructure(source string) error {
	if strings.TrimSpace(source) == "" {
		return &StructureError{Message: "source is empty"}
	}

	if err := checkBraces(source); err != nil {
		return err
	}
	if err := checkEnvironments(source); err != nil {
		return err
	}

	if strings.Contains(source, `\begin{document}`) && !strings.Contains(source, `\end{document}`) {
		return &StructureError{Message: `\begin{document} is never closed`}
	}
	return nil
}

// checkBraces verifies brace balance, skipping escaped braces and comments.
func checkBraces(source string) error {
	depth := 0
	line := 1
	escaped := false
	comment := false
	for _, r := range source {
		if r == '\n' {
			line++
			comment = false
			escaped = false
			continue
		}
		if comment {
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '%':
			comment = true
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return &StructureError{Message: "unmatched closing brace", Line: line}
			}
		}
	}
	if depth != 0 {
		return &StructureError{Message: "unbalanced braces"}
	}
	return nil
}

// checkEnvironments verifies that every \begin{env} is closed by a matching
// \end{env} in LIFO order.
func checkEnvironments(source string) error {
	type open struct {
		env  string
		line int
	}
	var stack []open
	for i, text := range strings.Split(source, "\n") {
		if idx := strings.Index(text, "%"); idx >= 0 && (idx == 0 || text[idx-1] != '\\') {
			text = text[:idx]
		}
		begins := beginPattern.FindAllStringSubmatchIndex(text, -1)
		ends := endPattern.FindAllStringSubmatchIndex(text, -1)

		// Merge the two match lists in column order so same-line pairs like
		// \begin{itemize}\end{itemize} resolve correctly.
		bi, ei := 0, 0
		for bi < len(begins) || ei < len(ends) {
			if ei >= len(ends) || (bi < len(begins) && begins[bi][0] < ends[ei][0]) {
				m := begins[bi]
				stack = append(stack, open{env: text[m[2]:m[3]], line: i + 1})
				bi++
				continue
			}
			m := ends[ei]
			env := text[m[2]:m[3]]
			if len(stack) == 0 {
				return &StructureError{Message: `\end{` + env + `} without matching \begin`, Line: i + 1}
			}
			top := stack[len(stack)-1]
			if top.env != env {
				return &StructureError{Message: `\end{` + env + `} closes \begin{` + top.env + `}`, Line: i + 1}
			}
			stack = stack[:len(stack)-1]
			ei++
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &StructureError{Message: `\begin{` + top.env + `} is never closed`, Line: top.line}
	}
	return nil
}
