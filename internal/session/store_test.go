package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/convert"
	"github.com/jonathan/resume-builder/internal/history"
	"github.com/jonathan/resume-builder/internal/latex"
	"github.com/jonathan/resume-builder/internal/llm"
)

const testResume = `\documentclass{article}
\begin{document}
\textbf{John Doe} \\ john@example.com

\section*{Summary}
Software engineer with 8+ years of Python experience.

\section*{Experience}
\begin{itemize}
\item Led team of 5 engineers, improving deployment speed by 40\%
\end{itemize}

\section*{Skills}
Python, Go, SQL

\end{document}`

// scriptedClient runs a hook per completion so tests can control replies
// and race against the store mid-call.
type scriptedClient struct {
	complete func(prompt string, history []llm.Message) (string, error)
}

func (c *scriptedClient) Complete(_ context.Context, prompt string, history []llm.Message, _ llm.ModelTier) (string, error) {
	return c.complete(prompt, history)
}

func (c *scriptedClient) GetModel(llm.ModelTier) string { return "scripted" }
func (c *scriptedClient) Close() error                  { return nil }

func newTestStore(client llm.Client) *Store {
	if client == nil {
		return NewStore(nil)
	}
	return NewStore(chat.NewOrchestrator(client))
}

func TestCreate_EmptySourceLoadsTemplate(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create("")
	require.NoError(t, err)

	doc, err := st.Document(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, latex.DefaultTemplate, doc)
	assert.True(t, st.Exists(sess.ID()))
}

func TestCreate_InvalidSourceRejected(t *testing.T) {
	st := newTestStore(nil)
	_, err := st.Create(`\begin{document}\textbf{broken`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, st.Len())
}

func TestGet_UnknownSession(t *testing.T) {
	st := newTestStore(nil)
	_, err := st.Get("nope")
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "nope", nferr.ID)
}

func TestSections_ListsDocumentOrder(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	sections, err := st.Sections(sess.ID())
	require.NoError(t, err)
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	assert.Equal(t, []string{latex.HeaderSectionName, "Summary", "Experience", "Skills"}, names)
}

func TestReplaceDocument_RecordsUndoStep(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	replacement := `\begin{document}
\section*{Skills}
Go only now
\end{document}`
	require.NoError(t, st.ReplaceDocument(sess.ID(), replacement))

	doc, err := st.Document(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, replacement, doc)

	restored, err := st.Undo(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, testResume, restored)

	redone, err := st.Redo(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, replacement, redone)
}

func TestReplaceDocument_InvalidRejected(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	err = st.ReplaceDocument(sess.ID(), `\begin{document}\textbf{broken`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	doc, err := st.Document(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, testResume, doc, "rejected replacement must leave the document unchanged")

	canUndo, err := st.CanUndo(sess.ID())
	require.NoError(t, err)
	assert.False(t, canUndo, "rejected replacement must not create an undo step")
}

func TestUndo_FreshSessionReturnsErrNoHistory(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	_, err = st.Undo(sess.ID())
	assert.ErrorIs(t, err, history.ErrNoHistory)
	_, err = st.Redo(sess.ID())
	assert.ErrorIs(t, err, history.ErrNoHistory)
}

func TestSelectSection_UnknownName(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	_, err = st.SelectSection(sess.ID(), "Publications")
	var snf *SectionNotFoundError
	require.ErrorAs(t, err, &snf)
	assert.Equal(t, "Publications", snf.Name)
}

func TestSelectSection_CaseInsensitiveAndClearable(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	sec, err := st.SelectSection(sess.ID(), "skills")
	require.NoError(t, err)
	assert.Equal(t, "Skills", sec.Name)

	selected, err := st.SelectedSection(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, "Skills", selected)

	require.NoError(t, st.ClearSelection(sess.ID()))
	selected, err = st.SelectedSection(sess.ID())
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSetJobDescription_WordLimit(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	tooLong := strings.Repeat("word ", MaxJobDescriptionWords+1)
	err = st.SetJobDescription(sess.ID(), tooLong)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	require.NoError(t, st.SetJobDescription(sess.ID(), "Looking for a Python developer with AWS experience"))
	jd, err := st.JobDescription(sess.ID())
	require.NoError(t, err)
	assert.Contains(t, jd, "Python")

	require.NoError(t, st.ClearJobDescription(sess.ID()))
	jd, err = st.JobDescription(sess.ID())
	require.NoError(t, err)
	assert.Empty(t, jd)
}

func TestSetJobDescription_ConfiguredLimit(t *testing.T) {
	st := newTestStore(nil).WithJobDescriptionLimit(200)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	err = st.SetJobDescription(sess.ID(), strings.Repeat("word ", 201))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "200 word limit")

	require.NoError(t, st.SetJobDescription(sess.ID(), strings.Repeat("word ", 200)))
}

func TestEditSection_CommitsValidRewrite(t *testing.T) {
	newSkills := "\\section*{Skills}\nPython, Go, SQL, Terraform"
	client := &scriptedClient{complete: func(string, []llm.Message) (string, error) {
		return newSkills, nil
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	result, err := st.EditSection(context.Background(), sess.ID(), "Skills", "add Terraform")
	require.NoError(t, err)
	assert.Equal(t, newSkills, result)

	doc, err := st.Document(sess.ID())
	require.NoError(t, err)
	assert.Contains(t, doc, "Terraform")

	restored, err := st.Undo(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, testResume, restored)

	log, err := st.ChatHistory(sess.ID(), 0)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, llm.RoleUser, log[0].Role)
	assert.Equal(t, "add Terraform", log[0].Content)
	assert.Equal(t, llm.RoleAssistant, log[1].Role)
}

func TestEditSection_UnknownSectionLeavesDocumentUnchanged(t *testing.T) {
	client := &scriptedClient{complete: func(string, []llm.Message) (string, error) {
		t.Fatal("provider must not be called for an unknown section")
		return "", nil
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	_, err = st.EditSection(context.Background(), sess.ID(), "Publications", "expand")
	var snf *SectionNotFoundError
	require.ErrorAs(t, err, &snf)

	doc, _ := st.Document(sess.ID())
	assert.Equal(t, testResume, doc)
}

func TestEditSection_InvalidRewriteRejectedAtomically(t *testing.T) {
	client := &scriptedClient{complete: func(string, []llm.Message) (string, error) {
		return "\\section*{Skills}\n\\textbf{broken", nil
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	_, err = st.EditSection(context.Background(), sess.ID(), "Skills", "break it")
	var ierr *chat.InvalidEditError
	require.ErrorAs(t, err, &ierr)

	doc, _ := st.Document(sess.ID())
	assert.Equal(t, testResume, doc)

	canUndo, _ := st.CanUndo(sess.ID())
	assert.False(t, canUndo, "failed edit must not create an undo step")

	log, _ := st.ChatHistory(sess.ID(), 0)
	assert.Empty(t, log, "failed edit must not be recorded in the chat log")
}

func TestEditSection_ConflictWhenSectionChangesMidFlight(t *testing.T) {
	st := (*Store)(nil)
	var sessID string
	client := &scriptedClient{complete: func(string, []llm.Message) (string, error) {
		// Simulate a concurrent writer landing while the model runs.
		conflicting := strings.Replace(testResume, "Python, Go, SQL", "Rust", 1)
		if err := st.ReplaceDocument(sessID, conflicting); err != nil {
			return "", err
		}
		return "\\section*{Skills}\nPython, Go, SQL, Terraform", nil
	}}
	st = newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)
	sessID = sess.ID()

	_, err = st.EditSection(context.Background(), sessID, "Skills", "add Terraform")
	var cerr *chat.EditConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Skills", cerr.Section)

	doc, _ := st.Document(sessID)
	assert.Contains(t, doc, "Rust", "the concurrent write must win")
	assert.NotContains(t, doc, "Terraform")
}

func TestEditDocument_CommitsWholeRewrite(t *testing.T) {
	rewrite := `\documentclass{article}
\begin{document}
\section*{Summary}
Rewritten.
\end{document}`
	client := &scriptedClient{complete: func(string, []llm.Message) (string, error) {
		return rewrite, nil
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	result, err := st.EditDocument(context.Background(), sess.ID(), "start over")
	require.NoError(t, err)
	assert.Equal(t, rewrite, result)

	doc, _ := st.Document(sess.ID())
	assert.Equal(t, rewrite, doc)
}

func TestChat_NeverMutatesDocument(t *testing.T) {
	client := &scriptedClient{complete: func(prompt string, _ []llm.Message) (string, error) {
		return "Add more metrics to your bullets.", nil
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	reply, err := st.Chat(context.Background(), sess.ID(), "how can I improve?")
	require.NoError(t, err)
	assert.Equal(t, "Add more metrics to your bullets.", reply)

	doc, _ := st.Document(sess.ID())
	assert.Equal(t, testResume, doc)

	canUndo, _ := st.CanUndo(sess.ID())
	assert.False(t, canUndo)

	log, err := st.ChatHistory(sess.ID(), 0)
	require.NoError(t, err)
	require.Len(t, log, 2)
}

func TestChat_ProviderFailureKeepsUserMessage(t *testing.T) {
	client := &scriptedClient{complete: func(string, []llm.Message) (string, error) {
		return "", errors.New("provider unavailable")
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	_, err = st.Chat(context.Background(), sess.ID(), "how can I improve?")
	require.Error(t, err)

	log, err := st.ChatHistory(sess.ID(), 0)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, llm.RoleUser, log[0].Role)
	assert.Equal(t, "how can I improve?", log[0].Content)
}

func TestChat_SelectedSectionInPrompt(t *testing.T) {
	var seenPrompt string
	client := &scriptedClient{complete: func(prompt string, _ []llm.Message) (string, error) {
		seenPrompt = prompt
		return "looks fine", nil
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	_, err = st.SelectSection(sess.ID(), "Experience")
	require.NoError(t, err)
	_, err = st.Chat(context.Background(), sess.ID(), "is this section strong?")
	require.NoError(t, err)

	assert.Contains(t, seenPrompt, `"Experience" section`)
	assert.Contains(t, seenPrompt, `\item Led team of 5 engineers`)
}

func TestChat_LogCappedAtMaxMessages(t *testing.T) {
	client := &scriptedClient{complete: func(string, []llm.Message) (string, error) {
		return "ok", nil
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	for i := 0; i < MaxChatMessages; i++ {
		_, err := st.Chat(context.Background(), sess.ID(), fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	log, err := st.ChatHistory(sess.ID(), 0)
	require.NoError(t, err)
	assert.Len(t, log, MaxChatMessages)

	require.NoError(t, st.ClearChatHistory(sess.ID()))
	log, err = st.ChatHistory(sess.ID(), 0)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestChatHistory_Limit(t *testing.T) {
	client := &scriptedClient{complete: func(string, []llm.Message) (string, error) {
		return "ok", nil
	}}
	st := newTestStore(client)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := st.Chat(context.Background(), sess.ID(), fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}

	log, err := st.ChatHistory(sess.ID(), 2)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "q2", log[0].Content)
	assert.Equal(t, llm.RoleAssistant, log[1].Role)
}

func TestEditSection_NoProviderConfigured(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	_, err = st.EditSection(context.Background(), sess.ID(), "Skills", "add Terraform")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestScore_UsesStoredJobDescription(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	report, err := st.Score(context.Background(), sess.ID())
	require.NoError(t, err)
	require.NotNil(t, report.Universal)
	require.NotNil(t, report.HumanScan)
	assert.Nil(t, report.JDMatch, "no job description means no JD match")

	require.NoError(t, st.SetJobDescription(sess.ID(), "Looking for a Python developer with AWS experience"))
	report, err = st.Score(context.Background(), sess.ID())
	require.NoError(t, err)
	require.NotNil(t, report.JDMatch)
	assert.Equal(t, 50, report.JDMatch.Score)
}

func TestUploadDocument_TeXReplacesCurrent(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	uploaded := `\begin{document}
\section*{Summary}
Uploaded resume with a reasonably long summary paragraph describing years
of production engineering work across several different platform teams.
\section*{Skills}
Go, Kubernetes
\end{document}`
	result, err := st.UploadDocument(sess.ID(), []byte(uploaded), convert.KindTEX)
	require.NoError(t, err)
	assert.Equal(t, convert.KindTEX, result.Kind)

	doc, err := st.Document(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, uploaded, doc)

	restored, err := st.Undo(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, testResume, restored)
}

func TestTouch_KeepsSessionAlive(t *testing.T) {
	st := newTestStore(nil).WithTTL(time.Minute)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	require.NoError(t, st.Touch(sess.ID()))
	assert.Equal(t, 0, st.PruneExpired(time.Now()))

	err = st.Touch("missing")
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestPruneExpired(t *testing.T) {
	st := newTestStore(nil).WithTTL(time.Minute)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	assert.Equal(t, 0, st.PruneExpired(time.Now()))
	assert.True(t, st.Exists(sess.ID()))

	assert.Equal(t, 1, st.PruneExpired(time.Now().Add(2*time.Minute)))
	assert.False(t, st.Exists(sess.ID()))
}

func TestDelete_Idempotent(t *testing.T) {
	st := newTestStore(nil)
	sess, err := st.Create(testResume)
	require.NoError(t, err)

	st.Delete(sess.ID())
	assert.False(t, st.Exists(sess.ID()))
	st.Delete(sess.ID())
}
