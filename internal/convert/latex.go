package convert

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/latex"
)

// headingNames are the plain-text headings recognized while rebuilding
// structure from extracted text.
var headingNames = []string{
	"summary", "professional summary", "objective", "profile", "about",
	"experience", "work experience", "professional experience", "employment",
	"education", "academic background",
	"skills", "technical skills", "core competencies", "technologies",
	"projects", "certifications", "licenses", "awards", "publications",
}

// assembleLaTeX rebuilds a minimal LaTeX resume from extracted plain-text
// lines. Lines recognized as section headings become \section* markers;
// everything else is escaped body text.
func assembleLaTeX(lines []string) string {
	var b strings.Builder
	b.WriteString("\\documentclass[11pt]{article}\n")
	b.WriteString("\\usepackage[margin=0.75in]{geometry}\n")
	b.WriteString("\\usepackage{hyperref}\n")
	b.WriteString("\\pagestyle{empty}\n\n")
	b.WriteString("\\begin{document}\n\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			b.WriteString("\n")
			continue
		}
		if name, ok := headingLine(line); ok {
			b.WriteString("\\section*{")
			b.WriteString(latex.Escape(name))
			b.WriteString("}\n")
			continue
		}
		b.WriteString(latex.Escape(line))
		b.WriteString("\n")
	}

	b.WriteString("\n\\end{document}\n")
	return b.String()
}

// headingLine reports whether an extracted text line reads as a section
// heading, returning it in title case when it does.
func headingLine(line string) (string, bool) {
	if len(line) > 40 {
		return "", false
	}
	trimmed := strings.TrimRight(line, ":")
	lower := strings.ToLower(strings.TrimSpace(trimmed))
	for _, name := range headingNames {
		if lower == name {
			return titleCase(lower), true
		}
	}
	// Short all-caps lines without digits also read as headings.
	if trimmed == strings.ToUpper(trimmed) && trimmed != strings.ToLower(trimmed) &&
		!strings.ContainsAny(trimmed, "0123456789@") && len(strings.Fields(trimmed)) <= 4 {
		return titleCase(strings.ToLower(trimmed)), true
	}
	return "", false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
