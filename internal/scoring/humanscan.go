package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/latex"
)

// Weights for the human-scan score.
const (
	firstImpressionWeight = 0.30
	scannabilityWeight    = 0.25
	impactNumbersWeight   = 0.25
	credibilityWeight     = 0.20
)

var (
	emailPattern     = regexp.MustCompile(`[\w.+-]+@[\w.-]+`)
	phonePattern     = regexp.MustCompile(`\+?\d[\d\-\s()]{7,}`)
	yearPattern      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	dateRangePattern = regexp.MustCompile(`\b(19|20)\d{2}\s*(--|-|–|to)\s*((19|20)\d{2}|present|current)`)
	yearsExpPattern  = regexp.MustCompile(`(\d+)\+?\s*years?`)
)

var titleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "designer", "architect",
	"scientist", "consultant", "specialist", "director", "lead", "coordinator",
}

var orgKeywords = []string{
	"university", "college", "institute", "inc", "llc", "ltd", "corp", "gmbh",
}

var certKeywords = []string{
	"certified", "certification", "certificate", "aws certified", "pmp",
	"cpa", "cfa", "cissp",
}

// HumanScanResult approximates what a recruiter takes in during the first
// six seconds of reading a resume.
type HumanScanResult struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`

	FirstImpression int `json:"first_impression"`
	Scannability    int `json:"scannability"`
	ImpactNumbers   int `json:"impact_numbers"`
	Credibility     int `json:"credibility"`

	RecruiterSees   []string `json:"recruiter_sees"`
	Recommendations []string `json:"recommendations"`
}

// HumanScan scores a parsed resume for recruiter scan-friendliness.
func HumanScan(sections []latex.Section) *HumanScanResult {
	body := joinSections(sections)

	var sees []string
	first, firstSees := scoreFirstImpression(sections)
	sees = append(sees, firstSees...)
	scan := scoreScannability(sections, body)
	impact, impactSees := scoreImpactNumbers(body)
	sees = append(sees, impactSees...)
	cred, credSees := scoreCredibility(body)
	sees = append(sees, credSees...)

	overall := int(math.Round(
		float64(first)*firstImpressionWeight +
			float64(scan)*scannabilityWeight +
			float64(impact)*impactNumbersWeight +
			float64(cred)*credibilityWeight))
	overall = clamp(overall)

	var recs []string
	if first < 60 {
		recs = append(recs, "Put your name, title and contact details at the very top")
	}
	if scan < 60 {
		recs = append(recs, "Break paragraphs into short bullet points")
	}
	if impact < 60 {
		recs = append(recs, "Add metrics ($, %, counts) that pop visually")
	}
	if cred < 50 {
		recs = append(recs, "Highlight employers, education and date ranges")
	}

	if len(sees) > 5 {
		sees = sees[:5]
	}
	return &HumanScanResult{
		Score:           overall,
		Rating:          rating(overall),
		FirstImpression: first,
		Scannability:    scan,
		ImpactNumbers:   impact,
		Credibility:     cred,
		RecruiterSees:   sees,
		Recommendations: recs,
	}
}

// scoreFirstImpression weights what sits in the leading section: contact
// details, a prominent name and an early summary or title.
func scoreFirstImpression(sections []latex.Section) (int, []string) {
	if len(sections) == 0 {
		return 0, nil
	}
	lead := sections[0].Content
	leadLower := strings.ToLower(lead)

	score := 0
	var sees []string

	if emailPattern.MatchString(lead) || phonePattern.MatchString(lead) ||
		strings.Contains(leadLower, "linkedin") || strings.Contains(leadLower, "github") {
		score += 25
		sees = append(sees, "Contact info easy to find")
	}
	if strings.Contains(lead, `\LARGE`) || strings.Contains(lead, `\Huge`) || strings.Contains(lead, `\textbf`) {
		score += 25
		sees = append(sees, "Name stands out at the top")
	}
	// A summary within the first two sections reads as a headline.
	for i := 0; i < len(sections) && i < 2; i++ {
		if latex.CanonicalTag(sections[i].Name) == "summary" {
			score += 25
			sees = append(sees, "Professional summary visible at top")
			break
		}
	}
	for _, kw := range titleKeywords {
		if strings.Contains(leadLower, kw) {
			score += 25
			sees = append(sees, "Role title visible early")
			break
		}
	}
	return clamp(score), sees
}

// scoreScannability rewards bullet density and short lines, and penalizes
// paragraph blocks a scanning eye would skip.
func scoreScannability(sections []latex.Section, body string) int {
	score := 0
	if len(bulletLines(body)) > 0 {
		score += 40
	}

	headings := 0
	for _, s := range sections {
		if s.Type == latex.TypeSection || s.Type == latex.TypeSubsection {
			headings++
		}
	}
	switch {
	case headings >= 3:
		score += 30
	case headings >= 1:
		score += 15
	}

	// Long non-bullet prose lines are the main scannability killer.
	longLines, contentLines := 0, 0
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, `\`) {
			continue
		}
		contentLines++
		if len(strings.Fields(cleanText(trimmed))) > 18 {
			longLines++
		}
	}
	switch {
	case contentLines == 0 || longLines == 0:
		score += 30
	case longLines*4 <= contentLines:
		score += 20
	default:
		score += 10
	}
	return clamp(score)
}

// scoreImpactNumbers reuses the universal metrics detector with a ladder
// tuned for visual prominence.
func scoreImpactNumbers(body string) (int, []string) {
	count := countMetrics(body)
	var sees []string
	if count > 0 {
		sees = append(sees, fmt.Sprintf("%d quantified results catch the eye", count))
	}
	switch {
	case count >= 8:
		return 100, sees
	case count >= 5:
		return 80, sees
	case count >= 3:
		return 60, sees
	case count >= 1:
		return 40, sees
	default:
		return 20, sees
	}
}

// scoreCredibility rewards recognizable institutions, date ranges, tenure
// statements and certifications.
func scoreCredibility(body string) (int, []string) {
	clean := cleanText(body)
	score := 0
	var sees []string

	for _, kw := range orgKeywords {
		if strings.Contains(clean, kw) {
			score += 30
			sees = append(sees, "Recognizable employers and institutions")
			break
		}
	}
	if dateRangePattern.MatchString(clean) || len(yearPattern.FindAllString(clean, -1)) >= 2 {
		score += 20
		sees = append(sees, "Clear career timeline")
	}
	if m := yearsExpPattern.FindStringSubmatch(clean); m != nil {
		score += 25
		sees = append(sees, fmt.Sprintf("%s+ years of experience stated", m[1]))
	}
	for _, kw := range certKeywords {
		if strings.Contains(clean, kw) {
			score += 25
			sees = append(sees, "Professional certification")
			break
		}
	}
	return clamp(score), sees
}
