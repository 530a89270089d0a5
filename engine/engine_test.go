package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxtutor/voxtutor/core"
	"github.com/voxtutor/voxtutor/model"
	"github.com/voxtutor/voxtutor/prompt"
	"github.com/voxtutor/voxtutor/session"
	"github.com/voxtutor/voxtutor/speech/deepgram"
)

// captureModel records every request and answers with a fixed reply.
type captureModel struct {
	mu       sync.Mutex
	requests []model.Request
	reply    string
	err      error
}

func (m *captureModel) Complete(ctx context.Context, req model.Request) (model.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.err != nil {
		return model.Response{}, m.err
	}
	return model.Response{Reply: m.reply}, nil
}

func (m *captureModel) Info() model.Info { return model.Info{Name: "capture", Provider: "mock"} }

func (m *captureModel) calls() []model.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// blockingModel waits for ctx cancellation, simulating a hung backend.
type blockingModel struct{}

func (blockingModel) Complete(ctx context.Context, _ model.Request) (model.Response, error) {
	<-ctx.Done()
	return model.Response{}, ctx.Err()
}

func (blockingModel) Info() model.Info { return model.Info{Name: "blocking", Provider: "mock"} }

// spyStore counts GetOrCreate calls on top of the in-memory store.
type spyStore struct {
	*session.InMemoryStore
	mu      sync.Mutex
	creates int
}

func (s *spyStore) GetOrCreate(id, systemPrompt string) (string, bool, error) {
	s.mu.Lock()
	s.creates++
	s.mu.Unlock()
	return s.InMemoryStore.GetOrCreate(id, systemPrompt)
}

func TestEngine_InitAndChatScenario(t *testing.T) {
	llm := &captureModel{reply: "Angina is chest pain caused by reduced cardiac blood flow."}
	e := New(func(o *Options) { o.Model = llm })

	init, err := e.InitSession(context.Background(), InitRequest{Topic: "Cardiology"})
	require.NoError(t, err)
	assert.True(t, init.Created)
	assert.NotEmpty(t, init.SessionID)
	assert.Equal(t, "Dr. AI", init.Mentor)

	resp, err := e.Chat(context.Background(), ChatRequest{
		SessionID: init.SessionID,
		Message:   "What is angina?",
	})
	require.NoError(t, err)
	assert.Equal(t, init.SessionID, resp.SessionID)
	assert.Equal(t, llm.reply, resp.Reply)

	// The backend saw exactly system + user with the fixed parameters.
	calls := llm.calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Messages, 2)
	assert.Equal(t, core.RoleSystem, calls[0].Messages[0].Role)
	assert.Contains(t, calls[0].Messages[0].Content, "Cardiology")
	assert.Equal(t, core.RoleUser, calls[0].Messages[1].Role)
	assert.Equal(t, "What is angina?", calls[0].Messages[1].Content)
	assert.Equal(t, 0.3, calls[0].Temperature)
	assert.Equal(t, int64(200), calls[0].MaxTokens)
	assert.Equal(t, 0.2, calls[0].PresencePenalty)

	// Transcript: system, user, assistant — in order.
	msgs, err := e.Transcript(init.SessionID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, core.RoleAssistant, msgs[2].Role)
	assert.Equal(t, llm.reply, msgs[2].Content)
}

func TestEngine_InitReusesKnownSession(t *testing.T) {
	e := New()

	first, err := e.InitSession(context.Background(), InitRequest{Topic: "Cardiology"})
	require.NoError(t, err)

	second, err := e.InitSession(context.Background(), InitRequest{
		SessionID: first.SessionID,
		Topic:     "Neurology",
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.SessionID, second.SessionID)

	// The original system prompt stays authoritative.
	msgs, err := e.Transcript(first.SessionID)
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, "Cardiology")
	assert.NotContains(t, msgs[0].Content, "Neurology")
}

func TestEngine_EmptyMessageNeverMutates(t *testing.T) {
	store := &spyStore{InMemoryStore: session.NewInMemoryStore()}
	e := New(func(o *Options) { o.SessionStore = store })

	// Absent key: no session may be created for an empty turn.
	_, err := e.Chat(context.Background(), ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, core.ErrEmptyMessage)
	assert.Zero(t, store.creates)

	// Existing session: transcript stays untouched.
	init, err := e.InitSession(context.Background(), InitRequest{})
	require.NoError(t, err)
	before, err := e.Transcript(init.SessionID)
	require.NoError(t, err)

	_, err = e.Chat(context.Background(), ChatRequest{SessionID: init.SessionID, Message: ""})
	assert.ErrorIs(t, err, core.ErrEmptyMessage)

	after, err := e.Transcript(init.SessionID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEngine_AbsentKeyYieldsFreshSessions(t *testing.T) {
	e := New()

	a, err := e.Chat(context.Background(), ChatRequest{Message: "hi"})
	require.NoError(t, err)
	b, err := e.Chat(context.Background(), ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionID, b.SessionID)

	// Reusing the returned identifier continues the same session.
	c, err := e.Chat(context.Background(), ChatRequest{SessionID: a.SessionID, Message: "again"})
	require.NoError(t, err)
	assert.Equal(t, a.SessionID, c.SessionID)

	msgs, err := e.Transcript(a.SessionID)
	require.NoError(t, err)
	assert.Len(t, msgs, 5) // system + 2 turns
}

func TestEngine_FallbackProfileSeedsOnlyNewSessions(t *testing.T) {
	e := New()

	resp, err := e.Chat(context.Background(), ChatRequest{
		Message: "hello",
		Profile: prompt.Profile{"name": "Ana"},
		Topic:   "Pharmacology",
	})
	require.NoError(t, err)

	msgs, err := e.Transcript(resp.SessionID)
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, "Ana")
	assert.Contains(t, msgs[0].Content, "Pharmacology")

	// Mismatched profile/topic on the existing session is ignored.
	_, err = e.Chat(context.Background(), ChatRequest{
		SessionID: resp.SessionID,
		Message:   "next",
		Profile:   prompt.Profile{"name": "Luis"},
		Topic:     "Anatomy",
	})
	require.NoError(t, err)

	msgs, err = e.Transcript(resp.SessionID)
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, "Ana")
	assert.NotContains(t, msgs[0].Content, "Anatomy")
}

func TestEngine_BackendFailureKeepsUserTurn(t *testing.T) {
	llm := &captureModel{err: errors.New("upstream 502")}
	e := New(func(o *Options) { o.Model = llm })

	init, err := e.InitSession(context.Background(), InitRequest{})
	require.NoError(t, err)

	_, err = e.Chat(context.Background(), ChatRequest{SessionID: init.SessionID, Message: "ping"})
	var berr *core.BackendError
	require.ErrorAs(t, err, &berr)

	// The user turn appended before the failed call is retained.
	msgs, err := e.Transcript(init.SessionID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, core.RoleUser, msgs[1].Role)
	assert.Equal(t, "ping", msgs[1].Content)
}

func TestEngine_BackendTimeout(t *testing.T) {
	cfg := DefaultConfig
	cfg.BackendTimeout = 20 * time.Millisecond
	e := New(func(o *Options) {
		o.Config = cfg
		o.Model = blockingModel{}
	})

	init, err := e.InitSession(context.Background(), InitRequest{})
	require.NoError(t, err)

	_, err = e.Chat(context.Background(), ChatRequest{SessionID: init.SessionID, Message: "slow?"})
	var berr *core.BackendError
	require.ErrorAs(t, err, &berr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Transcript still holds system + the unanswered user turn.
	msgs, err := e.Transcript(init.SessionID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestEngine_ConcurrentChatsSameSession(t *testing.T) {
	llm := &captureModel{reply: "ok"}
	e := New(func(o *Options) { o.Model = llm })

	init, err := e.InitSession(context.Background(), InitRequest{})
	require.NoError(t, err)

	const turns = 25
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := e.Chat(context.Background(), ChatRequest{
				SessionID: init.SessionID,
				Message:   fmt.Sprintf("question %d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// No lost updates, no duplicated turns: system + 2 per successful turn.
	msgs, err := e.Transcript(init.SessionID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1+2*turns)
	assert.Equal(t, core.RoleSystem, msgs[0].Role)
}

// echoSynthesizer mimics the synthesizer contract without a network.
type echoSynthesizer struct{ err error }

func (s echoSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	if text == "" {
		return nil, core.ErrEmptyText
	}
	return []byte("audio:" + text), nil
}

func TestEngine_Speak(t *testing.T) {
	e := New(func(o *Options) { o.Synthesizer = echoSynthesizer{} })

	audio, err := e.Speak(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, []byte("audio:hola"), audio)

	// The staged clip is reclaimed after the transfer.
	ids, err := e.artifacts.List(speakScope)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEngine_SpeakEmptyText(t *testing.T) {
	e := New(func(o *Options) { o.Synthesizer = echoSynthesizer{} })

	_, err := e.Speak(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrEmptyText)
}

func TestEngine_SpeakFailure(t *testing.T) {
	e := New(func(o *Options) {
		o.Synthesizer = echoSynthesizer{err: &core.SynthesisError{Err: errors.New("voice unavailable")}}
	})

	audio, err := e.Speak(context.Background(), "hola")
	var serr *core.SynthesisError
	require.ErrorAs(t, err, &serr)
	assert.Nil(t, audio)

	ids, err := e.artifacts.List(speakScope)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEngine_ListenDefaultsToMockMode(t *testing.T) {
	// With no credential configured, the default transcriber answers with
	// the fixed placeholder and issues no network call.
	e := New()

	text, err := e.Listen(context.Background(), []byte("audio"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, deepgram.MockTranscript, text)
}
