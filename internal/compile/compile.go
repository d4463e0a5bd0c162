// Package compile renders LaTeX resume sources to PDF via pdflatex.
package compile

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the maximum time to wait for a pdflatex run.
const DefaultTimeout = 30 * time.Second

var errorLineRef = regexp.MustCompile(`^l\.(\d+)`)

// Compiler shells out to pdflatex. The zero value is not usable; construct
// with New.
type Compiler struct {
	timeout time.Duration
}

// New returns a Compiler with the default timeout.
func New() *Compiler {
	return &Compiler{timeout: DefaultTimeout}
}

// WithTimeout overrides the per-run deadline. Zero or negative values keep
// the default.
func (c *Compiler) WithTimeout(d time.Duration) *Compiler {
	if d > 0 {
		c.timeout = d
	}
	return c
}

// Available reports whether pdflatex is installed.
func (c *Compiler) Available() bool {
	_, err := exec.LookPath("pdflatex")
	return err == nil
}

// Compile runs pdflatex over the given source and returns the PDF bytes.
// The source is written to a temporary directory which is removed before
// returning.
func (c *Compiler) Compile(ctx context.Context, source string) ([]byte, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return nil, &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	workDir, err := os.MkdirTemp("", "resume-compile-*")
	if err != nil {
		return nil, &CompilationError{Message: "failed to create temporary working directory", Cause: err}
	}
	defer os.RemoveAll(workDir)

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return nil, &CompilationError{Message: "failed to write LaTeX source", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// -interaction=nonstopmode prevents interactive prompts on errors.
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	logOutput := stdout.String() + stderr.String()

	pdfPath := filepath.Join(workDir, "resume.pdf")
	pdf, readErr := os.ReadFile(pdfPath)
	if readErr != nil {
		message, line := summarizeLog(logOutput)
		if message == "" {
			message = "LaTeX compilation failed: PDF was not generated"
		}
		return nil, &CompilationError{
			Message:   message,
			Line:      line,
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex can exit nonzero and still emit a usable PDF. Surface the
	// errors but keep the output.
	if runErr != nil {
		message, line := summarizeLog(logOutput)
		if message == "" {
			message = "LaTeX compilation completed with errors (PDF may be incomplete)"
		}
		return pdf, &CompilationError{
			Message:   message,
			Line:      line,
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}
	return pdf, nil
}

// summarizeLog pulls the first "!" error line out of a pdflatex log, plus
// the "l.NN" source line reference that follows it when present.
func summarizeLog(logOutput string) (message string, line int) {
	lines := strings.Split(logOutput, "\n")
	for i, l := range lines {
		if !strings.HasPrefix(l, "!") {
			continue
		}
		message = strings.TrimSpace(strings.TrimPrefix(l, "!"))
		for j := i + 1; j < len(lines) && j < i+10; j++ {
			if m := errorLineRef.FindStringSubmatch(lines[j]); m != nil {
				line, _ = strconv.Atoi(m[1])
				break
			}
		}
		return message, line
	}
	return "", 0
}
