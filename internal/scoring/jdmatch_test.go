package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jonathan/resume-builder/internal/latex"
)

const pythonResume = `\begin{document}
\section*{Summary}
Backend engineer working mostly in Python.
\section*{Skills}
Python, PostgreSQL, Docker
\end{document}`

func TestJDMatch_HalfCoverage(t *testing.T) {
	sections := latex.Parse(pythonResume)
	result := JDMatch(sections, "Looking for a Python developer with AWS experience")

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, []string{"python"}, result.MatchedKeywords)
	assert.Equal(t, []string{"aws"}, result.MissingKeywords)
	assert.Equal(t, RatingNeedsWork, result.Rating)
}

func TestJDMatch_EmptyJobDescription(t *testing.T) {
	sections := latex.Parse(pythonResume)
	result := JDMatch(sections, "")
	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.MatchedKeywords)
	assert.Empty(t, result.MissingKeywords)
}

func TestJDMatch_FullCoverage(t *testing.T) {
	sections := latex.Parse(pythonResume)
	result := JDMatch(sections, "Python, PostgreSQL, Docker")
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.MissingKeywords)
}

func TestExtractKeywords_CapAndOrder(t *testing.T) {
	keywords := ExtractKeywords("kubernetes kubernetes terraform ansible")
	require.Equal(t, []string{"kubernetes", "terraform", "ansible"}, keywords)
}

func TestExtractKeywords_CapsAtMaxKeywords(t *testing.T) {
	var jd string
	for i := 0; i < MaxKeywords+20; i++ {
		jd += " uniqueword" + string(rune('a'+i%26)) + string(rune('a'+(i/26)%26))
	}
	keywords := ExtractKeywords(jd)
	assert.LessOrEqual(t, len(keywords), MaxKeywords)
}

func TestJDMatch_MatchedAndMissingPartitionKeywords(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[a-z]{3,10}`)
		jdWords := rapid.SliceOfN(word, 1, 30).Draw(t, "jd")
		resumeWords := rapid.SliceOfN(word, 1, 30).Draw(t, "resume")

		jd := ""
		for _, w := range jdWords {
			jd += w + " "
		}
		resume := ""
		for _, w := range resumeWords {
			resume += w + " "
		}

		sections := latex.Parse(resume)
		result := JDMatch(sections, jd)
		keywords := ExtractKeywords(jd)

		require.Len(t, append(result.MatchedKeywords, result.MissingKeywords...), len(keywords))
		require.GreaterOrEqual(t, result.Score, 0)
		require.LessOrEqual(t, result.Score, 100)

		seen := make(map[string]bool)
		for _, kw := range keywords {
			seen[kw] = true
		}
		for _, kw := range result.MatchedKeywords {
			require.True(t, seen[kw], "matched keyword %q not in candidate set", kw)
		}
		for _, kw := range result.MissingKeywords {
			require.True(t, seen[kw], "missing keyword %q not in candidate set", kw)
		}
	})
}
