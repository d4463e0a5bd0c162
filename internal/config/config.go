// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Behavior
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Override for the standard-tier model

	// Limits
	HistoryCapacity        int `json:"history_capacity,omitempty"`          // Undo stack bound per session
	ChatContextTurns       int `json:"chat_context_turns,omitempty"`        // Conversation turns replayed per LLM call
	CompletionTimeoutSecs  int `json:"completion_timeout_secs,omitempty"`   // Per-LLM-call deadline in seconds
	CompileTimeoutSecs     int `json:"compile_timeout_secs,omitempty"`      // pdflatex deadline in seconds
	SessionTTLHours        int `json:"session_ttl_hours,omitempty"`         // Idle-session lifetime in hours
	MaxJobDescriptionWords int `json:"max_job_description_words,omitempty"` // Job description word limit
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.HistoryCapacity < 0 {
		return fmt.Errorf("config error: 'history_capacity' must be non-negative")
	}
	if c.ChatContextTurns < 0 {
		return fmt.Errorf("config error: 'chat_context_turns' must be non-negative")
	}
	if c.CompletionTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'completion_timeout_secs' must be non-negative")
	}
	if c.CompileTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'compile_timeout_secs' must be non-negative")
	}
	if c.SessionTTLHours < 0 {
		return fmt.Errorf("config error: 'session_ttl_hours' must be non-negative")
	}
	if c.MaxJobDescriptionWords < 0 {
		return fmt.Errorf("config error: 'max_job_description_words' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	// Int fields: use default if zero
	if result.HistoryCapacity == 0 {
		result.HistoryCapacity = defaults.HistoryCapacity
	}
	if result.ChatContextTurns == 0 {
		result.ChatContextTurns = defaults.ChatContextTurns
	}
	if result.CompletionTimeoutSecs == 0 {
		result.CompletionTimeoutSecs = defaults.CompletionTimeoutSecs
	}
	if result.CompileTimeoutSecs == 0 {
		result.CompileTimeoutSecs = defaults.CompileTimeoutSecs
	}
	if result.SessionTTLHours == 0 {
		result.SessionTTLHours = defaults.SessionTTLHours
	}
	if result.MaxJobDescriptionWords == 0 {
		result.MaxJobDescriptionWords = defaults.MaxJobDescriptionWords
	}

	return result
}
