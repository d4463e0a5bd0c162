package session

import (
	"context"
	"strings"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/latex"
	"github.com/jonathan/resume-builder/internal/llm"
)

// editInputs is the snapshot taken under the session lock before an LLM
// call. The lock is released for the call itself and the snapshot is
// re-checked before committing.
type editInputs struct {
	document       string
	jobDescription string
	chatContext    []llm.Message
}

// EditSection rewrites one section through the LLM and commits the result.
// The session lock is not held during the provider call; if the section
// changed in the meantime the edit fails with a retryable
// chat.EditConflictError and the document is left untouched. Results that
// break the document structure are rejected with chat.InvalidEditError.
func (st *Store) EditSection(ctx context.Context, id, sectionName, instruction string) (string, error) {
	s, err := st.Get(id)
	if err != nil {
		return "", err
	}
	if st.orchestrator == nil {
		return "", &ValidationError{Field: "llm", Message: "no completion provider configured"}
	}
	if strings.TrimSpace(instruction) == "" {
		return "", &ValidationError{Field: "instruction", Message: "must not be empty"}
	}

	// Phase 1: snapshot the prompt inputs.
	s.mu.Lock()
	in := editInputs{
		document:       s.hist.Current(),
		jobDescription: s.jobDescription,
		chatContext:    s.chatContext(),
	}
	sec, ok := latex.FindSection(in.document, sectionName)
	s.mu.Unlock()
	if !ok {
		return "", &SectionNotFoundError{Name: sectionName}
	}

	// Provider call with the lock released.
	newContent, err := st.orchestrator.EditSection(ctx, sec.Name, sec.Content, instruction, in.jobDescription, in.chatContext)
	if err != nil {
		return "", err
	}

	// Phase 2: re-check, validate, commit.
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.hist.Current()
	liveSec, ok := latex.FindSection(current, sec.Name)
	if !ok || liveSec.Content != sec.Content {
		return "", &chat.EditConflictError{Section: sec.Name}
	}

	candidate := latex.ReplaceSection(current, liveSec, newContent)
	if err := latex.ValidateStructure(candidate); err != nil {
		return "", &chat.InvalidEditError{Section: sec.Name, Reason: "rewrite breaks document structure", Cause: err}
	}

	s.hist.Record(candidate)
	s.appendChat(llm.RoleUser, instruction)
	s.appendChat(llm.RoleAssistant, "Modified the "+sec.Name+" section based on your request.")
	s.touch()
	return newContent, nil
}

// EditDocument rewrites the whole document through the LLM. The same
// two-phase protocol applies, with the conflict check on the full source.
func (st *Store) EditDocument(ctx context.Context, id, instruction string) (string, error) {
	s, err := st.Get(id)
	if err != nil {
		return "", err
	}
	if st.orchestrator == nil {
		return "", &ValidationError{Field: "llm", Message: "no completion provider configured"}
	}
	if strings.TrimSpace(instruction) == "" {
		return "", &ValidationError{Field: "instruction", Message: "must not be empty"}
	}

	s.mu.Lock()
	in := editInputs{
		document:       s.hist.Current(),
		jobDescription: s.jobDescription,
		chatContext:    s.chatContext(),
	}
	s.mu.Unlock()

	newSource, err := st.orchestrator.EditDocument(ctx, in.document, instruction, in.jobDescription, in.chatContext)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hist.Current() != in.document {
		return "", &chat.EditConflictError{Section: latex.FullDocumentName}
	}
	if err := latex.ValidateStructure(newSource); err != nil {
		return "", &chat.InvalidEditError{Section: latex.FullDocumentName, Reason: "rewrite breaks document structure", Cause: err}
	}

	s.hist.Record(newSource)
	s.appendChat(llm.RoleUser, instruction)
	s.appendChat(llm.RoleAssistant, "Modified the resume based on your request.")
	s.touch()
	return newSource, nil
}

// Chat answers a conversational question about the resume. The user turn
// is logged before the provider call, so it survives a provider failure.
// The reply is recorded in the chat log but never applied to the document;
// callers who want changes use EditSection or EditDocument.
func (st *Store) Chat(ctx context.Context, id, message string) (string, error) {
	s, err := st.Get(id)
	if err != nil {
		return "", err
	}
	if st.orchestrator == nil {
		return "", &ValidationError{Field: "llm", Message: "no completion provider configured"}
	}
	if strings.TrimSpace(message) == "" {
		return "", &ValidationError{Field: "message", Message: "must not be empty"}
	}

	s.mu.Lock()
	doc := s.hist.Current()
	jd := s.jobDescription
	selected := s.selectedSection
	ctxTurns := s.chatContext()
	s.appendChat(llm.RoleUser, message)
	s.touch()
	s.mu.Unlock()

	selectedContent := ""
	if selected != "" {
		if sec, ok := latex.FindSection(doc, selected); ok {
			selectedContent = sec.Content
		}
	}

	reply, err := st.orchestrator.Reply(ctx, message, selected, selectedContent, jd, ctxTurns)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendChat(llm.RoleAssistant, reply)
	s.touch()
	return reply, nil
}
