package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/compile"
	"github.com/jonathan/resume-builder/internal/convert"
	"github.com/jonathan/resume-builder/internal/history"
	"github.com/jonathan/resume-builder/internal/latex"
	"github.com/jonathan/resume-builder/internal/scoring"
)

// DefaultTTL is how long an idle session survives before PruneExpired
// removes it.
const DefaultTTL = 24 * time.Hour

// Store is the session registry and the entry point for every operation.
// It is safe for concurrent use: the registry has its own lock, and each
// session serializes its own state changes.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	orchestrator        *chat.Orchestrator
	compiler            *compile.Compiler
	ttl                 time.Duration
	historyCapacity     int
	jobDescriptionLimit int
}

// NewStore creates an empty registry. The orchestrator may be nil, in
// which case chat and AI-edit operations fail with a ValidationError.
func NewStore(orchestrator *chat.Orchestrator) *Store {
	return &Store{
		sessions:            make(map[string]*Session),
		orchestrator:        orchestrator,
		compiler:            compile.New(),
		ttl:                 DefaultTTL,
		historyCapacity:     history.DefaultCapacity,
		jobDescriptionLimit: MaxJobDescriptionWords,
	}
}

// WithTTL overrides the idle-session lifetime. Zero or negative values
// keep the default.
func (st *Store) WithTTL(d time.Duration) *Store {
	if d > 0 {
		st.ttl = d
	}
	return st
}

// WithHistoryCapacity overrides the undo-stack bound for new sessions.
func (st *Store) WithHistoryCapacity(n int) *Store {
	if n > 0 {
		st.historyCapacity = n
	}
	return st
}

// WithJobDescriptionLimit overrides the job-description word cap.
func (st *Store) WithJobDescriptionLimit(n int) *Store {
	if n > 0 {
		st.jobDescriptionLimit = n
	}
	return st
}

// WithCompiler overrides the PDF compiler.
func (st *Store) WithCompiler(c *compile.Compiler) *Store {
	if c != nil {
		st.compiler = c
	}
	return st
}

// Create starts a new session. An empty initial source loads the default
// template; a non-empty source must be structurally valid LaTeX.
func (st *Store) Create(initial string) (*Session, error) {
	if strings.TrimSpace(initial) == "" {
		initial = latex.DefaultTemplate
	} else if err := latex.ValidateStructure(initial); err != nil {
		return nil, &ValidationError{Field: "document", Message: "initial document is not valid LaTeX", Cause: err}
	}

	now := time.Now()
	s := &Session{
		id:        uuid.NewString(),
		hist:      history.NewWithCapacity(initial, st.historyCapacity),
		createdAt: now,
		updatedAt: now,
	}

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	return s, nil
}

// Get returns the session for id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return s, nil
}

// Exists reports whether a session id is live.
func (st *Store) Exists(id string) bool {
	st.mu.RLock()
	_, ok := st.sessions[id]
	st.mu.RUnlock()
	return ok
}

// Touch marks a session as recently used so TTL pruning skips it.
func (st *Store) Touch(id string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// PruneExpired removes sessions idle longer than the TTL and returns how
// many were dropped.
func (st *Store) PruneExpired(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	dropped := 0
	for id, s := range st.sessions {
		if now.Sub(s.UpdatedAt()) > st.ttl {
			delete(st.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Document returns the current document source.
func (st *Store) Document(id string) (string, error) {
	s, err := st.Get(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Current(), nil
}

// ReplaceDocument validates source and makes it the current document,
// recording the previous one as an undo step.
func (st *Store) ReplaceDocument(id, source string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	if err := latex.ValidateStructure(source); err != nil {
		return &ValidationError{Field: "document", Message: "replacement is not valid LaTeX", Cause: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist.Record(source)
	s.selectedSection = ""
	s.touch()
	return nil
}

// UploadDocument converts an uploaded file to LaTeX and installs it as the
// current document. The conversion result carries any warnings.
func (st *Store) UploadDocument(id string, data []byte, kind convert.Kind) (*convert.Result, error) {
	result, err := convert.Convert(data, kind)
	if err != nil {
		return nil, err
	}
	if err := st.ReplaceDocument(id, result.LaTeX); err != nil {
		return nil, err
	}
	return result, nil
}

// Undo restores the previous document snapshot. history.ErrNoHistory is
// returned at the boundary.
func (st *Store) Undo(id string) (string, error) {
	s, err := st.Get(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.hist.Undo()
	if err != nil {
		return "", err
	}
	s.selectedSection = ""
	s.touch()
	return doc, nil
}

// Redo restores the most recently undone snapshot.
func (st *Store) Redo(id string) (string, error) {
	s, err := st.Get(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.hist.Redo()
	if err != nil {
		return "", err
	}
	s.selectedSection = ""
	s.touch()
	return doc, nil
}

// CanUndo reports whether an undo step is available.
func (st *Store) CanUndo(id string) (bool, error) {
	s, err := st.Get(id)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanUndo(), nil
}

// CanRedo reports whether a redo step is available.
func (st *Store) CanRedo(id string) (bool, error) {
	s, err := st.Get(id)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanRedo(), nil
}

// HistoryDepth returns the number of undoable snapshots.
func (st *Store) HistoryDepth(id string) (int, error) {
	s, err := st.Get(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Depth(), nil
}

// Sections parses the current document and returns its sections in
// document order.
func (st *Store) Sections(id string) ([]latex.Section, error) {
	s, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	doc := s.hist.Current()
	s.mu.Unlock()
	return latex.Parse(doc), nil
}

// SelectSection marks a section as the focus of subsequent chat turns.
func (st *Store) SelectSection(id, name string) (latex.Section, error) {
	s, err := st.Get(id)
	if err != nil {
		return latex.Section{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := latex.FindSection(s.hist.Current(), name)
	if !ok {
		return latex.Section{}, &SectionNotFoundError{Name: name}
	}
	s.selectedSection = sec.Name
	s.touch()
	return sec, nil
}

// ClearSelection drops the selected section.
func (st *Store) ClearSelection(id string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSection = ""
	s.touch()
	return nil
}

// SelectedSection returns the currently selected section name, or "".
func (st *Store) SelectedSection(id string) (string, error) {
	s, err := st.Get(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSection, nil
}

// SetJobDescription stores the target job description for tailoring and
// JD-match scoring.
func (st *Store) SetJobDescription(id, jd string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	if words := countWords(jd); words > st.jobDescriptionLimit {
		return &ValidationError{
			Field:   "job description",
			Message: fmt.Sprintf("%d words exceeds the %d word limit", words, st.jobDescriptionLimit),
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = strings.TrimSpace(jd)
	s.touch()
	return nil
}

// JobDescription returns the stored job description, or "".
func (st *Store) JobDescription(id string) (string, error) {
	s, err := st.Get(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobDescription, nil
}

// ClearJobDescription drops the stored job description.
func (st *Store) ClearJobDescription(id string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = ""
	s.touch()
	return nil
}

// ChatHistory returns the stored conversation, most recent last. A
// positive limit returns only the trailing messages.
func (st *Store) ChatHistory(id string, limit int) ([]ChatMessage, error) {
	s, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	log := s.chatLog
	if limit > 0 && len(log) > limit {
		log = log[len(log)-limit:]
	}
	out := make([]ChatMessage, len(log))
	copy(out, log)
	return out, nil
}

// ClearChatHistory drops the stored conversation. The document is
// untouched.
func (st *Store) ClearChatHistory(id string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatLog = nil
	s.touch()
	return nil
}

// Score runs the scoring engine over the current document and the stored
// job description. Scoring reads a snapshot; concurrent edits are not
// blocked.
func (st *Store) Score(ctx context.Context, id string) (*scoring.Report, error) {
	s, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	doc := s.hist.Current()
	jd := s.jobDescription
	s.mu.Unlock()
	return scoring.Score(ctx, doc, jd)
}

// Compile renders the current document to PDF.
func (st *Store) Compile(ctx context.Context, id string) ([]byte, error) {
	s, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	doc := s.hist.Current()
	s.mu.Unlock()
	return st.compiler.Compile(ctx, doc)
}
