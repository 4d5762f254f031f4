package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/chapterquiz/internal/llm"
	"github.com/abhisek/chapterquiz/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quizRepo records quiz events; other methods panic if called.
type quizRepo struct {
	store.EventRepo
	events []store.QuizEventData
	err    error
}

func (r *quizRepo) AppendQuizEvent(_ context.Context, data store.QuizEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

// idProvider remembers the request id it was called with.
type idProvider struct {
	*llm.MockProvider
	requestID string
}

func (p *idProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.requestID = llm.RequestIDFrom(ctx)
	return p.MockProvider.Generate(ctx, req)
}

var energyChapter = ChapterDocument{Number: 2, Title: "Енергија", Content: physicsChapter}

func TestOutcome_EventFromLocalFallback(t *testing.T) {
	e := New(nil, DefaultConfig())
	out := e.Generate(context.Background(), energyChapter.Content, GenerateOptions{Count: 2, Rand: seeded(4)})
	doc := out.Document(energyChapter)

	data, err := out.Event(doc)
	require.NoError(t, err)

	assert.Equal(t, out.RequestID, data.RequestID)
	assert.NotEmpty(t, data.RequestID)
	assert.Equal(t, 2, data.ChapterNumber)
	assert.Equal(t, "Енергија", data.ChapterTitle)
	assert.Equal(t, "remote_preferred", data.Mode)
	assert.Equal(t, "local", data.Source)
	assert.Equal(t, 2, data.Requested)
	assert.Equal(t, 2, data.Generated)
	assert.Equal(t, ErrNoCredential.Error(), data.FallbackReason)
	assert.NoError(t, ValidateQuizJSON([]byte(data.QuizJSON)))

	var decoded QuizDocument
	require.NoError(t, json.Unmarshal([]byte(data.QuizJSON), &decoded))
	assert.Equal(t, doc.Questions[0].Prompt, decoded.Questions[0].Prompt)
}

func TestOutcome_RemoteSharesRequestID(t *testing.T) {
	p := &idProvider{MockProvider: llm.NewMockProvider(llm.MockResponse{Text: remoteReply})}
	e := New(p, DefaultConfig())

	out := e.Generate(context.Background(), physicsChapter, GenerateOptions{Count: 3})
	assert.Equal(t, ProvenanceRemote, out.Source)
	assert.Equal(t, out.RequestID, p.requestID)

	data, err := out.Event(out.Document(energyChapter))
	require.NoError(t, err)
	assert.Equal(t, "remote", data.Source)
	assert.Empty(t, data.FallbackReason)
	assert.Equal(t, 3, data.Generated)
}

func TestOutcome_DocumentNeverNil(t *testing.T) {
	doc := Outcome{}.Document(ChapterDocument{Number: 1, Title: "Празно"})
	assert.NotNil(t, doc.Questions)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"chapter_number":1,"chapter_title":"Празно","questions":[]}`, string(raw))
}

func TestOutcome_Record(t *testing.T) {
	repo := &quizRepo{}
	e := New(nil, DefaultConfig())
	out := e.Generate(context.Background(), physicsChapter, GenerateOptions{Count: 1, Mode: ModeLocalOnly})

	require.NoError(t, out.Record(context.Background(), repo, out.Document(energyChapter)))
	require.Len(t, repo.events, 1)
	assert.Equal(t, "local_only", repo.events[0].Mode)
	assert.Empty(t, repo.events[0].FallbackReason)

	repo.err = errors.New("disk full")
	err := out.Record(context.Background(), repo, out.Document(energyChapter))
	assert.ErrorContains(t, err, "disk full")
}
