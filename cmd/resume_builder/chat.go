package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	chatMessage string
	chatSection string
	chatJDPath  string
)

var chatCmd = &cobra.Command{
	Use:   "chat <resume.tex>",
	Short: "Ask for advice about a resume",
	Long: `Ask a question about a resume. The reply is advisory only; the
document is never modified. With --section the named section is put in
focus for the question.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatMessage, "message", "", "Question to ask (required)")
	chatCmd.Flags().StringVar(&chatSection, "section", "", "Section to focus the question on")
	chatCmd.Flags().StringVar(&chatJDPath, "jd", "", "Path to a job description text file")
	_ = chatCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	jd, err := readOptionalFile(chatJDPath)
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
	if chatSection != "" {
		if _, err := store.SelectSection(sess.ID(), chatSection); err != nil {
			return err
		}
	}

	reply, err := store.Chat(ctx, sess.ID(), chatMessage)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}
