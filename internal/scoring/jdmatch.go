package scoring

import (
	"math"
	"sort"

	"github.com/jonathan/resume-builder/internal/latex"
)

// MaxKeywords caps the JD candidate keyword set. When the job description
// yields more candidates, the most frequent (then longest) survive.
const MaxKeywords = 50

// JDMatchResult is the job-description keyword match score. It is only
// produced when a job description is present on the session.
type JDMatchResult struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`

	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// ExtractKeywords tokenizes a job description into the candidate keyword
// set: stopword-filtered, lowercased, deduplicated and capped at
// MaxKeywords. The returned order is deterministic: frequency descending,
// then length descending, then alphabetical.
func ExtractKeywords(jobDescription string) []string {
	tokens := tokenize(jobDescription)
	freq := make(map[string]int)
	for _, t := range tokens {
		freq[t]++
	}

	keywords := make([]string, 0, len(freq))
	for t := range freq {
		keywords = append(keywords, t)
	}
	sort.Slice(keywords, func(i, j int) bool {
		a, b := keywords[i], keywords[j]
		if freq[a] != freq[b] {
			return freq[a] > freq[b]
		}
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	if len(keywords) > MaxKeywords {
		keywords = keywords[:MaxKeywords]
	}
	return keywords
}

// JDMatch computes the keyword overlap between a parsed resume and a job
// description. Matched and missing always partition the candidate keyword
// set exactly.
func JDMatch(sections []latex.Section, jobDescription string) *JDMatchResult {
	keywords := ExtractKeywords(jobDescription)

	resumeTokens := make(map[string]bool)
	for _, t := range tokenize(joinSections(sections)) {
		resumeTokens[t] = true
	}

	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0)
	for _, kw := range keywords {
		if resumeTokens[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	score := 0
	if len(keywords) > 0 {
		score = int(math.Round(float64(len(matched)) / float64(len(keywords)) * 100))
	}
	score = clamp(score)

	return &JDMatchResult{
		Score:           score,
		Rating:          rating(score),
		MatchedKeywords: matched,
		MissingKeywords: missing,
	}
}
