// Package scoring computes resume quality scores from parsed documents.
// All scorers are pure functions of the parsed sections (plus the job
// description for the JD match) so results are deterministic and never
// depend on an AI provider.
package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/latex"
)

var (
	commandArgPattern  = regexp.MustCompile(`\\[a-zA-Z]+\{([^}]*)\}`)
	commandBarePattern = regexp.MustCompile(`\\[a-zA-Z]+\*?\s*`)
	bracesPattern      = regexp.MustCompile(`[{}\\]`)
	urlPattern         = regexp.MustCompile(`https?://\S+`)
	spacePattern       = regexp.MustCompile(`\s+`)

	mathPercentPattern    = regexp.MustCompile(`\$(\d+)\s*\\?%`)
	escapedPercentPattern = regexp.MustCompile(`(\d+)\s*\\%`)

	tokenPattern = regexp.MustCompile(`[a-z0-9]+(?:-[a-z0-9]+)*`)
	itemPattern  = regexp.MustCompile(`(?m)^\s*\\item\s+(.*)$`)
)

// cleanText strips LaTeX markup down to its visible words, lowercased with
// normalized whitespace. It intentionally keeps command arguments
// (\textbf{Led} -> Led) so that content inside formatting commands scores.
func cleanText(text string) string {
	text = commandArgPattern.ReplaceAllString(text, "$1")
	text = commandBarePattern.ReplaceAllString(text, " ")
	text = bracesPattern.ReplaceAllString(text, " ")
	text = urlPattern.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// normalizePercents rewrites LaTeX-escaped percent forms ($60\%$, 60\%) to
// plain 60% so the metric patterns can see them.
func normalizePercents(text string) string {
	text = mathPercentPattern.ReplaceAllString(text, "${1}%")
	text = escapedPercentPattern.ReplaceAllString(text, "${1}%")
	return text
}

// metricPatterns match quantified achievements: percentages, money,
// multipliers, counts of time, people and things.
var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$[\d,]+`),
	regexp.MustCompile(`[\d,]+\+`),
	regexp.MustCompile(`\d+x\b`),
	regexp.MustCompile(`\d+\s+years?`),
	regexp.MustCompile(`\d+\s+months?`),
	regexp.MustCompile(`\d+\s+team`),
	regexp.MustCompile(`\d+\s+projects?`),
	regexp.MustCompile(`\d+\s+clients?`),
	regexp.MustCompile(`[\d,]+\s+users?`),
	regexp.MustCompile(`[\d,]+\s+customers?`),
}

// countMetrics counts quantified-achievement matches in raw LaTeX text.
func countMetrics(raw string) int {
	clean := cleanText(normalizePercents(raw))
	count := 0
	for _, p := range metricPatterns {
		count += len(p.FindAllString(clean, -1))
	}
	return count
}

// bulletLines extracts the text of each \item line.
func bulletLines(raw string) []string {
	matches := itemPattern.FindAllStringSubmatch(raw, -1)
	bullets := make([]string, 0, len(matches))
	for _, m := range matches {
		bullets = append(bullets, m[1])
	}
	return bullets
}

// stopWords are filtered out of every tokenization.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "can": true, "need": true, "our": true,
	"you": true, "your": true, "we": true, "they": true, "their": true,
	"this": true, "that": true, "it": true, "all": true, "any": true,
	"both": true, "each": true, "few": true, "more": true, "most": true,
	"other": true, "some": true, "such": true, "no": true, "not": true,
	"only": true, "same": true, "so": true, "than": true, "too": true,
	"very": true, "just": true, "also": true, "now": true, "here": true,
	"there": true, "when": true, "where": true, "why": true, "how": true,
	"what": true, "which": true, "who": true, "whom": true, "able": true,
	"about": true, "above": true, "across": true,
}

// genericHiringTerms are JD filler that match almost any resume and would
// inflate keyword scores: role nouns, seniority words and boilerplate verbs.
// They are excluded from the JD candidate keyword set alongside stop words.
var genericHiringTerms = map[string]bool{
	"looking": true, "seeking": true, "hiring": true, "join": true,
	"work": true, "working": true, "experience": true, "experienced": true,
	"years": true, "year": true, "developer": true, "engineer": true,
	"engineers": true, "developers": true, "position": true, "role": true,
	"candidate": true, "candidates": true, "team": true, "company": true,
	"required": true, "requirements": true, "requirement": true,
	"preferred": true, "responsibilities": true, "responsibility": true,
	"ability": true, "abilities": true, "skills": true, "skill": true,
	"knowledge": true, "strong": true, "excellent": true, "good": true,
	"great": true, "proficiency": true, "proficient": true,
	"familiarity": true, "familiar": true, "plus": true, "bonus": true,
	"including": true, "etc": true, "related": true, "relevant": true,
	"opportunity": true, "opportunities": true, "benefits": true,
	"salary": true, "job": true, "jobs": true, "description": true,
}

// tokenize extracts lowercase word tokens from raw LaTeX or plain text,
// dropping stop words, generic hiring filler and tokens shorter than three
// characters. Hyphenated terms survive as single tokens.
func tokenize(raw string) []string {
	clean := cleanText(raw)
	words := tokenPattern.FindAllString(clean, -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 2 || stopWords[w] || genericHiringTerms[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// wordCount counts visible words after markup stripping.
func wordCount(raw string) int {
	clean := cleanText(raw)
	if clean == "" {
		return 0
	}
	return len(strings.Fields(clean))
}

// actionVerbs is the fixed lexicon checked at bullet starts.
var actionVerbs = map[string]bool{
	"achieved": true, "accomplished": true, "attained": true, "exceeded": true,
	"delivered": true, "built": true, "created": true, "designed": true,
	"developed": true, "established": true, "launched": true, "led": true,
	"managed": true, "directed": true, "supervised": true, "coordinated": true,
	"mentored": true, "improved": true, "increased": true, "enhanced": true,
	"optimized": true, "streamlined": true, "reduced": true, "implemented": true,
	"executed": true, "performed": true, "conducted": true, "operated": true,
	"analyzed": true, "evaluated": true, "assessed": true, "researched": true,
	"investigated": true, "presented": true, "negotiated": true,
	"collaborated": true, "partnered": true, "facilitated": true,
}

// startsWithActionVerb reports whether the first visible word of a bullet is
// in the action-verb lexicon.
func startsWithActionVerb(bullet string) bool {
	words := strings.Fields(cleanText(bullet))
	if len(words) == 0 {
		return false
	}
	first := strings.TrimRight(words[0], ".,;:")
	return actionVerbs[first]
}

// joinSections concatenates section contents into one scoring body.
func joinSections(sections []latex.Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(s.Content)
		b.WriteString("\n")
	}
	return b.String()
}
