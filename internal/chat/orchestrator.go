package chat

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Defaults for the orchestrator. ContextTurns bounds how much conversation
// history is replayed to the provider on each call.
const (
	DefaultTimeout      = 60 * time.Second
	DefaultContextTurns = 10
)

// Orchestrator drives LLM-backed edits and advice replies. It owns the
// per-call deadline so callers never hold locks across an unbounded
// provider call.
type Orchestrator struct {
	client       llm.Client
	timeout      time.Duration
	contextTurns int
}

// NewOrchestrator wraps an LLM client with the default timeout and context
// window.
func NewOrchestrator(client llm.Client) *Orchestrator {
	return &Orchestrator{
		client:       client,
		timeout:      DefaultTimeout,
		contextTurns: DefaultContextTurns,
	}
}

// WithTimeout overrides the per-call deadline. Zero or negative values keep
// the default.
func (o *Orchestrator) WithTimeout(d time.Duration) *Orchestrator {
	if d > 0 {
		o.timeout = d
	}
	return o
}

// WithContextTurns overrides how many trailing history messages are sent
// with each call.
func (o *Orchestrator) WithContextTurns(n int) *Orchestrator {
	if n > 0 {
		o.contextTurns = n
	}
	return o
}

// EditSection asks the model to rewrite one section and returns the cleaned
// LaTeX replacement. The caller is responsible for validating and splicing
// the result.
func (o *Orchestrator) EditSection(ctx context.Context, sectionName, sectionContent, instruction, jobDescription string, history []llm.Message) (string, error) {
	prompt := BuildSectionEditPrompt(sectionName, sectionContent, instruction, jobDescription)
	reply, err := o.complete(ctx, prompt, history, llm.TierStandard)
	if err != nil {
		return "", err
	}
	result := CleanResponse(reply)
	if strings.TrimSpace(result) == "" {
		return "", &InvalidEditError{Section: sectionName, Reason: "model returned empty content"}
	}
	return result, nil
}

// EditDocument asks the model to rewrite the whole document and returns the
// cleaned LaTeX source. The caller validates before committing.
func (o *Orchestrator) EditDocument(ctx context.Context, source, instruction, jobDescription string, history []llm.Message) (string, error) {
	prompt := BuildDocumentEditPrompt(source, instruction, jobDescription)
	reply, err := o.complete(ctx, prompt, history, llm.TierAdvanced)
	if err != nil {
		return "", err
	}
	result := CleanResponse(reply)
	if strings.TrimSpace(result) == "" {
		return "", &InvalidEditError{Section: "document", Reason: "model returned empty content"}
	}
	return result, nil
}

// Reply answers a conversational question. The reply is advisory text only
// and is never applied to the document.
func (o *Orchestrator) Reply(ctx context.Context, question, selectedSection, selectedContent, jobDescription string, history []llm.Message) (string, error) {
	prompt := BuildChatPrompt(question, selectedSection, selectedContent, jobDescription)
	reply, err := o.complete(ctx, prompt, history, llm.TierLite)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// complete applies the history window and deadline, then calls the
// provider.
func (o *Orchestrator) complete(ctx context.Context, prompt string, history []llm.Message, tier llm.ModelTier) (string, error) {
	if len(history) > o.contextTurns {
		history = history[len(history)-o.contextTurns:]
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.client.Complete(ctx, prompt, history, tier)
}
