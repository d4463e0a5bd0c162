// Package main provides the entry point for the Resume Builder CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/compile"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/history"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/session"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume Builder session engine",
	Long:  "Resume Builder edits, scores and compiles LaTeX resumes through sectioned AI-assisted editing sessions with full undo/redo.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadAppConfig loads the optional config file and fills unset fields
// from the environment and the built-in defaults.
func loadAppConfig() (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(defaultAppConfig()), nil
}

func defaultAppConfig() config.Config {
	return config.Config{
		APIKey:                 os.Getenv("GEMINI_API_KEY"),
		HistoryCapacity:        history.DefaultCapacity,
		ChatContextTurns:       chat.DefaultContextTurns,
		CompletionTimeoutSecs:  int(chat.DefaultTimeout / time.Second),
		CompileTimeoutSecs:     int(compile.DefaultTimeout / time.Second),
		SessionTTLHours:        int(session.DefaultTTL / time.Hour),
		MaxJobDescriptionWords: session.MaxJobDescriptionWords,
	}
}

// newStore builds a session store from the config. When withLLM is false
// the store is created without a completion provider and the returned
// cleanup is a no-op.
func newStore(ctx context.Context, cfg config.Config, withLLM bool) (*session.Store, func(), error) {
	compiler := compile.New()
	if cfg.CompileTimeoutSecs > 0 {
		compiler = compiler.WithTimeout(time.Duration(cfg.CompileTimeoutSecs) * time.Second)
	}

	if !withLLM {
		st := session.NewStore(nil).WithCompiler(compiler)
		return applyStoreLimits(st, cfg), func() {}, nil
	}

	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	modelConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		modelConfig.Models[llm.TierStandard] = cfg.Model
	}
	client, err := llm.NewClient(ctx, modelConfig, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	orchestrator := chat.NewOrchestrator(client)
	if cfg.CompletionTimeoutSecs > 0 {
		orchestrator = orchestrator.WithTimeout(time.Duration(cfg.CompletionTimeoutSecs) * time.Second)
	}
	if cfg.ChatContextTurns > 0 {
		orchestrator = orchestrator.WithContextTurns(cfg.ChatContextTurns)
	}

	st := session.NewStore(orchestrator).WithCompiler(compiler)
	cleanup := func() { _ = client.Close() }
	return applyStoreLimits(st, cfg), cleanup, nil
}

func applyStoreLimits(st *session.Store, cfg config.Config) *session.Store {
	if cfg.HistoryCapacity > 0 {
		st = st.WithHistoryCapacity(cfg.HistoryCapacity)
	}
	if cfg.SessionTTLHours > 0 {
		st = st.WithTTL(time.Duration(cfg.SessionTTLHours) * time.Hour)
	}
	if cfg.MaxJobDescriptionWords > 0 {
		st = st.WithJobDescriptionLimit(cfg.MaxJobDescriptionWords)
	}
	return st
}

// readSource loads a LaTeX file from disk.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// readOptionalFile loads a file when path is non-empty.
func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
