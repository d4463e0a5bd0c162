package scoring

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/latex"
)

// Report bundles the scorer results for one document snapshot. JDMatch is
// nil when no job description was supplied.
type Report struct {
	Universal *UniversalATSResult `json:"universal"`
	HumanScan *HumanScanResult    `json:"human_scan"`
	JDMatch   *JDMatchResult      `json:"jd_match,omitempty"`
}

// Score parses the document once and runs the applicable scorers
// concurrently over the shared parse. The scorers themselves are pure, so
// the only error source is context cancellation.
func Score(ctx context.Context, source, jobDescription string) (*Report, error) {
	sections := latex.Parse(source)

	var report Report
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Universal = UniversalATS(sections)
		return ctx.Err()
	})
	g.Go(func() error {
		report.HumanScan = HumanScan(sections)
		return ctx.Err()
	})
	if strings.TrimSpace(jobDescription) != "" {
		g.Go(func() error {
			report.JDMatch = JDMatch(sections, jobDescription)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}
