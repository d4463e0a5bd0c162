// Package session ties the engine together: it owns the session registry
// and exposes the full operation surface over documents, history, chat,
// scoring and compilation.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/history"
	"github.com/jonathan/resume-builder/internal/llm"
)

// Limits on per-session state.
const (
	// MaxChatMessages bounds the stored conversation; the oldest messages
	// are dropped once the bound is reached.
	MaxChatMessages = 50
	// MaxJobDescriptionWords bounds the stored job description.
	MaxJobDescriptionWords = 1000
)

// ChatMessage is one stored conversation turn.
type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session holds the mutable state of one editing session. All fields
// behind mu; the store's operations take the lock. The document itself
// lives in the history so the two can never disagree.
type Session struct {
	id string

	mu              sync.Mutex
	hist            *history.History
	chatLog         []ChatMessage
	jobDescription  string
	selectedSection string
	createdAt       time.Time
	updatedAt       time.Time
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createdAt
}

// UpdatedAt returns the time of the last state change.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// touch must be called with s.mu held.
func (s *Session) touch() {
	s.updatedAt = time.Now()
}

// appendChat records a conversation turn, trimming the oldest entries over
// MaxChatMessages. Must be called with s.mu held.
func (s *Session) appendChat(role, content string) {
	s.chatLog = append(s.chatLog, ChatMessage{Role: role, Content: content, At: time.Now()})
	if len(s.chatLog) > MaxChatMessages {
		s.chatLog = s.chatLog[len(s.chatLog)-MaxChatMessages:]
	}
}

// chatContext converts the stored log into provider messages. Must be
// called with s.mu held.
func (s *Session) chatContext() []llm.Message {
	out := make([]llm.Message, len(s.chatLog))
	for i, m := range s.chatLog {
		out[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

// countWords counts whitespace-separated words.
func countWords(text string) int {
	return len(strings.Fields(text))
}
