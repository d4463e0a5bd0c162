package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/llm"
)

// fakeClient returns canned completions and records what it was asked.
type fakeClient struct {
	reply       string
	err         error
	lastPrompt  string
	lastHistory []llm.Message
	lastTier    llm.ModelTier
}

func (f *fakeClient) Complete(_ context.Context, prompt string, history []llm.Message, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	f.lastHistory = history
	f.lastTier = tier
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeClient) Close() error                  { return nil }

func TestEditSection_CleansFencedReply(t *testing.T) {
	client := &fakeClient{reply: "```latex\n\\section*{Skills}\nGo, Terraform\n```"}
	o := NewOrchestrator(client)

	result, err := o.EditSection(context.Background(), "Skills", `\section*{Skills}`, "add Terraform", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "\\section*{Skills}\nGo, Terraform", result)
	assert.Equal(t, llm.TierStandard, client.lastTier)
}

func TestEditSection_EmptyReplyIsInvalid(t *testing.T) {
	client := &fakeClient{reply: "```latex\n```"}
	o := NewOrchestrator(client)

	_, err := o.EditSection(context.Background(), "Skills", "content", "do it", "", nil)
	var ierr *InvalidEditError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "Skills", ierr.Section)
}

func TestEditDocument_UsesAdvancedTier(t *testing.T) {
	client := &fakeClient{reply: `\documentclass{article}`}
	o := NewOrchestrator(client)

	_, err := o.EditDocument(context.Background(), "src", "shorten", "", nil)
	require.NoError(t, err)
	assert.Equal(t, llm.TierAdvanced, client.lastTier)
}

func TestComplete_TruncatesHistoryWindow(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	o := NewOrchestrator(client).WithContextTurns(4)

	history := make([]llm.Message, 10)
	for i := range history {
		history[i] = llm.Message{Role: llm.RoleUser, Content: string(rune('a' + i))}
	}

	_, err := o.Reply(context.Background(), "question", "", "", "", history)
	require.NoError(t, err)
	require.Len(t, client.lastHistory, 4)
	assert.Equal(t, "g", client.lastHistory[0].Content)
	assert.Equal(t, llm.TierLite, client.lastTier)
}
