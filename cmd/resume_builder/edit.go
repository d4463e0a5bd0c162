package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	editSection string
	editRequest string
	editJDPath  string
	editOutPath string
)

var editCmd = &cobra.Command{
	Use:   "edit <resume.tex>",
	Short: "Rewrite a resume section (or the whole document) with AI",
	Long: `Load a resume into an editing session and apply an AI rewrite.
With --section the named section is rewritten in place; without it the
whole document is rewritten. The result is structurally validated before
it is written out.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editSection, "section", "", "Section to rewrite (omit to rewrite the whole document)")
	editCmd.Flags().StringVar(&editRequest, "request", "", "What to change (required)")
	editCmd.Flags().StringVar(&editJDPath, "jd", "", "Path to a job description text file for tailoring")
	editCmd.Flags().StringVarP(&editOutPath, "output", "o", "", "Output path (default: overwrite the input file)")
	_ = editCmd.MarkFlagRequired("request")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	jd, err := readOptionalFile(editJDPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, cleanup, err := newStore(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	sess, err := store.Create(source)
	if err != nil {
		return err
	}
	if jd != "" {
		if err := store.SetJobDescription(sess.ID(), jd); err != nil {
			return err
		}
	}

	if editSection != "" {
		if _, err := store.EditSection(ctx, sess.ID(), editSection, editRequest); err != nil {
			return err
		}
	} else {
		if _, err := store.EditDocument(ctx, sess.ID(), editRequest); err != nil {
			return err
		}
	}

	updated, err := store.Document(sess.ID())
	if err != nil {
		return err
	}

	outPath := editOutPath
	if outPath == "" {
		outPath = args[0]
	}
	if err := os.WriteFile(outPath, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("Wrote updated resume to %s\n", outPath)
	return nil
}
