// Package latex provides parsing, section addressing and structural
// validation for LaTeX resume sources.
package latex

import (
	"fmt"
	"regexp"
	"strings"
)

// Section types produced by Parse.
const (
	TypeHeader     = "header"     // content between \begin{document} and the first section
	TypeSection    = "section"    // \section{...} or \section*{...}
	TypeSubsection = "subsection" // \subsection{...} or \subsection*{...}
	TypeDocument   = "document"   // whole-document fallback when no markers exist
)

// HeaderSectionName is the synthetic name given to pre-section content.
const HeaderSectionName = "Header / Contact Info"

// FullDocumentName is the synthetic name used when a source has no
// recognizable section commands.
const FullDocumentName = "Full Document"

// Section is a named, bounded slice of a LaTeX document. Line numbers are
// 1-indexed and inclusive. Sections are derived values: they are only valid
// for the exact source they were parsed from and must be recomputed after
// any mutation.
type Section struct {
	Name      string
	Type      string
	Tag       string // canonical resume section tag ("experience", "skills", ...) or ""
	StartLine int
	EndLine   int
	Content   string
}

// LineRange returns a human-readable line range for display.
func (s Section) LineRange() string {
	return fmt.Sprintf("Lines %d-%d", s.StartLine, s.EndLine)
}

// Preview returns the first 100 characters of the section content with
// newlines collapsed.
func (s Section) Preview() string {
	clean := strings.TrimSpace(strings.ReplaceAll(s.Content, "\n", " "))
	if len(clean) > 100 {
		return clean[:100] + "..."
	}
	return clean
}

var sectionPattern = regexp.MustCompile(`(?i)^\\(section|subsection)\*?\{([^}]+)\}`)

// Canonical tags inferred from section headings. Matching is case-insensitive
// substring matching, so "Work Experience" and "Professional Experience" both
// map to "experience".
var canonicalAliases = []struct {
	tag     string
	aliases []string
}{
	{"summary", []string{"summary", "objective", "profile", "about"}},
	{"experience", []string{"experience", "employment", "work history", "career"}},
	{"education", []string{"education", "academic", "qualifications", "degrees"}},
	{"skills", []string{"skills", "competencies", "technologies", "expertise", "abilities"}},
	{"projects", []string{"projects"}},
	{"certifications", []string{"certifications", "certificates", "licenses"}},
}

// CanonicalTag returns the canonical resume tag for a section heading, or ""
// if the heading does not match any known alias.
func CanonicalTag(name string) string {
	lower := strings.ToLower(name)
	for _, c := range canonicalAliases {
		for _, alias := range c.aliases {
			if strings.Contains(lower, alias) {
				return c.tag
			}
		}
	}
	return ""
}

// Parse splits a LaTeX source into its ordered sections. It is total: a
// source with no section commands yields a single "Full Document" section
// spanning the entire input. Duplicate section names are preserved as
// distinct entries in document order.
func Parse(source string) []Section {
	lines := strings.Split(source, "\n")

	docStart := 0
	for i, line := range lines {
		if strings.Contains(line, `\begin{document}`) {
			docStart = i + 1
			break
		}
	}
	docEnd := len(lines)
	for i, line := range lines {
		if strings.Contains(line, `\end{document}`) {
			docEnd = i
			break
		}
	}

	type start struct {
		line int
		typ  string
		name string
	}
	var starts []start
	for i := docStart; i < docEnd; i++ {
		m := sectionPattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m != nil {
			starts = append(starts, start{line: i, typ: strings.ToLower(m[1]), name: m[2]})
		}
	}

	if len(starts) == 0 {
		return []Section{{
			Name:      FullDocumentName,
			Type:      TypeDocument,
			StartLine: 1,
			EndLine:   len(lines),
			Content:   source,
		}}
	}

	var sections []Section

	// Pre-section content becomes a synthetic header section so contact
	// blocks are addressable for editing.
	if first := starts[0].line; first > docStart {
		header := strings.Join(lines[docStart:first], "\n")
		if strings.TrimSpace(header) != "" {
			sections = append(sections, Section{
				Name:      HeaderSectionName,
				Type:      TypeHeader,
				StartLine: docStart + 1,
				EndLine:   first,
				Content:   header,
			})
		}
	}

	for idx, st := range starts {
		end := docEnd
		if idx+1 < len(starts) {
			end = starts[idx+1].line
		}
		sections = append(sections, Section{
			Name:      st.name,
			Type:      st.typ,
			Tag:       CanonicalTag(st.name),
			StartLine: st.line + 1,
			EndLine:   end,
			Content:   strings.Join(lines[st.line:end], "\n"),
		})
	}

	return sections
}

// FindSection locates a section by name, case-insensitively. When two
// sections share a name the first in document order wins; callers that need
// the others must disambiguate by position via Parse.
func FindSection(source, name string) (Section, bool) {
	lower := strings.ToLower(name)
	for _, s := range Parse(source) {
		if strings.ToLower(s.Name) == lower {
			return s, true
		}
	}
	return Section{}, false
}

// ReplaceSection splices newContent over the line range of sec and returns
// the updated source. sec must come from a Parse of the same source.
func ReplaceSection(source string, sec Section, newContent string) string {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	out = append(out, lines[:sec.StartLine-1]...)
	out = append(out, strings.Split(newContent, "\n")...)
	out = append(out, lines[sec.EndLine:]...)
	return strings.Join(out, "\n")
}

// SectionNames returns the names of all sections in document order.
func SectionNames(source string) []string {
	sections := Parse(source)
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}

// Preamble returns everything before \begin{document}.
func Preamble(source string) string {
	var preamble []string
	for _, line := range strings.Split(source, "\n") {
		if strings.Contains(line, `\begin{document}`) {
			break
		}
		preamble = append(preamble, line)
	}
	return strings.Join(preamble, "\n")
}
