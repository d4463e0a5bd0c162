package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/convert"
)

var convertOutPath string

var convertCmd = &cobra.Command{
	Use:   "convert <resume.pdf|resume.docx|resume.tex>",
	Short: "Convert an uploaded document to LaTeX",
	Long:  `Convert a PDF, DOCX or TEX file into a LaTeX resume source.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutPath, "output", "o", "", "Output path (default: input name with .tex extension)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	kind, err := convert.KindFromFilename(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	result, err := convert.Convert(data, kind)
	if err != nil {
		return err
	}

	outPath := convertOutPath
	if outPath == "" {
		outPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".tex"
	}
	if err := os.WriteFile(outPath, []byte(result.LaTeX), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	fmt.Printf("Converted %s (%s) to %s\n", args[0], result.Kind, outPath)
	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	return nil
}
