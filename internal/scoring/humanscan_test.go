package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/latex"
)

func TestHumanScan_StrongResume(t *testing.T) {
	sections := latex.Parse(strongResume)
	result := HumanScan(sections)

	assert.GreaterOrEqual(t, result.FirstImpression, 75,
		"contact info, prominent name and early summary should all register")
	assert.GreaterOrEqual(t, result.Scannability, 70)
	assert.GreaterOrEqual(t, result.ImpactNumbers, 60)
	assert.GreaterOrEqual(t, result.Credibility, 75)
	assert.NotEmpty(t, result.RecruiterSees)
	assert.LessOrEqual(t, len(result.RecruiterSees), 5)
}

func TestHumanScan_WallOfText(t *testing.T) {
	source := `\begin{document}
this resume is one enormous paragraph of text that goes on and on without any bullets headings or structure at all which makes it very hard for a recruiter to scan quickly in six seconds
\end{document}`
	result := HumanScan(latex.Parse(source))

	assert.Less(t, result.Scannability, 60)
	require.NotEmpty(t, result.Recommendations)
}

func TestHumanScan_EmptyDocument(t *testing.T) {
	result := HumanScan(nil)
	assert.Equal(t, 0, result.FirstImpression)
	assert.GreaterOrEqual(t, result.Score, 0)
}

func TestHumanScan_ImpactLadder(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{"no numbers", "wrote code", 20},
		{"one metric", `improved throughput by 30\%`, 40},
		{"three metrics", `grew revenue 10\%, cut costs 20\%, saved \$5,000`, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := scoreImpactNumbers(tt.body)
			assert.Equal(t, tt.expected, score)
		})
	}
}
