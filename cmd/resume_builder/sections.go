package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/latex"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <resume.tex>",
	Short: "List the sections of a LaTeX resume",
	Long:  `Parse a LaTeX resume and print its sections with line ranges and content previews.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(_ *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	sections := latex.Parse(source)
	for i, s := range sections {
		fmt.Printf("%2d. %-30s [%s] %s\n", i+1, s.Name, s.Type, s.LineRange())
		if preview := s.Preview(); preview != "" {
			fmt.Printf("    %s\n", preview)
		}
	}
	return nil
}
