package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-builder/internal/latex"
)

// Weights for the universal ATS score.
const (
	sectionCoverageWeight = 0.40
	metricsWeight         = 0.35
	actionVerbWeight      = 0.25
)

// metricTargetWords is the quantified-metric density target: one metric per
// this many words scores 100.
const metricTargetWords = 40

// canonicalSections is the coverage checklist for ATS scoring, keyed by the
// canonical tag the parser infers from headings.
var canonicalSections = []struct {
	tag   string
	label string
}{
	{"summary", "Summary"},
	{"experience", "Experience"},
	{"education", "Education"},
	{"skills", "Skills"},
}

// UniversalATSResult is the ATS-compatibility score computed without a job
// description.
type UniversalATSResult struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`

	SectionCoverage   int `json:"section_coverage"`
	QuantifiedMetrics int `json:"quantified_metrics"`
	ActionVerbUsage   int `json:"action_verb_usage"`

	FoundSections   []string `json:"found_sections"`
	MissingSections []string `json:"missing_sections"`
	MetricsCount    int      `json:"metrics_count"`
	WordCount       int      `json:"word_count"`

	Recommendations []string `json:"recommendations"`
}

// UniversalATS scores a parsed resume against universal ATS criteria:
// canonical section coverage, quantified-metric density and action verbs at
// bullet starts.
func UniversalATS(sections []latex.Section) *UniversalATSResult {
	body := joinSections(sections)
	words := wordCount(body)

	coverage, found, missing := scoreSectionCoverage(sections)
	metricsScore, metricsCount := scoreMetricDensity(body, words)
	verbScore := scoreActionVerbs(body)

	overall := int(math.Round(
		float64(coverage)*sectionCoverageWeight +
			float64(metricsScore)*metricsWeight +
			float64(verbScore)*actionVerbWeight))
	overall = clamp(overall)

	return &UniversalATSResult{
		Score:             overall,
		Rating:            rating(overall),
		SectionCoverage:   coverage,
		QuantifiedMetrics: metricsScore,
		ActionVerbUsage:   verbScore,
		FoundSections:     found,
		MissingSections:   missing,
		MetricsCount:      metricsCount,
		WordCount:         words,
		Recommendations:   universalRecommendations(coverage, metricsScore, verbScore, missing, metricsCount),
	}
}

// scoreSectionCoverage matches parsed section names against the canonical
// checklist. Matching is case-insensitive alias/substring matching on the
// heading, so "Professional Experience" covers "Experience".
func scoreSectionCoverage(sections []latex.Section) (score int, found, missing []string) {
	present := make(map[string]bool)
	for _, s := range sections {
		if tag := latex.CanonicalTag(s.Name); tag != "" {
			present[tag] = true
		}
	}
	for _, c := range canonicalSections {
		if present[c.tag] {
			found = append(found, c.label)
		} else {
			missing = append(missing, c.label)
		}
	}
	score = clamp(len(found) * 100 / len(canonicalSections))
	return score, found, missing
}

// scoreMetricDensity normalizes the quantified-metric count against a target
// of one metric per metricTargetWords words.
func scoreMetricDensity(body string, words int) (score, count int) {
	count = countMetrics(body)
	expected := words / metricTargetWords
	if expected < 1 {
		expected = 1
	}
	return clamp(count * 100 / expected), count
}

// scoreActionVerbs scores the share of bullet lines opening with an action
// verb. A resume without bullet lines scores zero here; the recommendation
// text tells the user to add them.
func scoreActionVerbs(body string) int {
	bullets := bulletLines(body)
	if len(bullets) == 0 {
		return 0
	}
	withVerb := 0
	for _, b := range bullets {
		if startsWithActionVerb(b) {
			withVerb++
		}
	}
	return clamp(withVerb * 100 / len(bullets))
}

// universalRecommendations generates advice driven by the weakest sub-score.
func universalRecommendations(coverage, metrics, verbs int, missing []string, metricsCount int) []string {
	var recs []string

	weakest := coverage
	if metrics < weakest {
		weakest = metrics
	}
	if verbs < weakest {
		weakest = verbs
	}

	switch weakest {
	case coverage:
		if len(missing) > 0 {
			recs = append(recs, fmt.Sprintf("Add missing sections: %s", strings.Join(missing, ", ")))
		}
	case metrics:
		recs = append(recs, fmt.Sprintf("Add more quantifiable achievements (numbers, %%, $) - only %d found", metricsCount))
	case verbs:
		recs = append(recs, "Start more bullets with action verbs (Led, Built, Achieved, Analyzed)")
	}

	// Secondary advice for any other weak area.
	if weakest != coverage && len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Add missing sections: %s", strings.Join(missing, ", ")))
	}
	if weakest != metrics && metrics < 60 {
		recs = append(recs, "Add more quantifiable achievements (numbers, %, $)")
	}
	if weakest != verbs && verbs < 60 {
		recs = append(recs, "Start more bullets with action verbs (Led, Built, Achieved, Analyzed)")
	}
	return recs
}
