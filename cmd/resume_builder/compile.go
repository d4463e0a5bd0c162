package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/compile"
)

var compileOutPath string

var compileCmd = &cobra.Command{
	Use:   "compile <resume.tex>",
	Short: "Compile a LaTeX resume to PDF",
	Long:  `Run pdflatex over a LaTeX resume and write the resulting PDF.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutPath, "output", "o", "", "Output path (default: input name with .pdf extension)")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	compiler := compile.New()
	if cfg.CompileTimeoutSecs > 0 {
		compiler = compiler.WithTimeout(time.Duration(cfg.CompileTimeoutSecs) * time.Second)
	}

	pdf, err := compiler.Compile(cmd.Context(), source)
	if err != nil {
		var cerr *compile.CompilationError
		if errors.As(err, &cerr) && len(pdf) > 0 {
			// Partial success: pdflatex reported errors but still produced
			// a PDF. Keep the output and surface the error text.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", cerr)
		} else {
			return err
		}
	}

	outPath := compileOutPath
	if outPath == "" {
		outPath = strings.TrimSuffix(args[0], ".tex") + ".pdf"
	}
	if err := os.WriteFile(outPath, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("Wrote %s\n", outPath)
	return nil
}
