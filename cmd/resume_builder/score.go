package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/scoring"
)

var (
	scoreJDPath string
	scoreJSON   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume.tex>",
	Short: "Score a resume for ATS and recruiter friendliness",
	Long:  `Run the scoring engine over a LaTeX resume. With --jd, a job-description keyword match is included.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreJDPath, "jd", "", "Path to a job description text file")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Emit the full report as JSON")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	jd, err := readOptionalFile(scoreJDPath)
	if err != nil {
		return err
	}

	report, err := scoring.Score(cmd.Context(), source, jd)
	if err != nil {
		return err
	}

	if scoreJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printReport(report)
	return nil
}

func printReport(report *scoring.Report) {
	u := report.Universal
	fmt.Printf("Universal ATS:  %3d  %s\n", u.Score, u.Rating)
	fmt.Printf("  Section coverage %d, metrics %d, action verbs %d\n",
		u.SectionCoverage, u.QuantifiedMetrics, u.ActionVerbUsage)
	if len(u.MissingSections) > 0 {
		fmt.Printf("  Missing sections: %s\n", strings.Join(u.MissingSections, ", "))
	}
	for _, rec := range u.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}

	h := report.HumanScan
	fmt.Printf("Human scan:     %3d  %s\n", h.Score, h.Rating)
	fmt.Printf("  First impression %d, scannability %d, impact %d, credibility %d\n",
		h.FirstImpression, h.Scannability, h.ImpactNumbers, h.Credibility)
	for _, sees := range h.RecruiterSees {
		fmt.Printf("  * %s\n", sees)
	}
	for _, rec := range h.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}

	if j := report.JDMatch; j != nil {
		fmt.Printf("JD match:       %3d  %s\n", j.Score, j.Rating)
		if len(j.MatchedKeywords) > 0 {
			fmt.Printf("  Matched: %s\n", strings.Join(j.MatchedKeywords, ", "))
		}
		if len(j.MissingKeywords) > 0 {
			fmt.Printf("  Missing: %s\n", strings.Join(j.MissingKeywords, ", "))
		}
	}
}
