package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voxtutor/voxtutor/artifact"
	"github.com/voxtutor/voxtutor/core"
	"github.com/voxtutor/voxtutor/logging"
	"github.com/voxtutor/voxtutor/model"
	"github.com/voxtutor/voxtutor/prompt"
	"github.com/voxtutor/voxtutor/session"
	"github.com/voxtutor/voxtutor/speech"
	"github.com/voxtutor/voxtutor/speech/deepgram"
)

// Config defines the fixed generation and timing parameters applied to
// every chat turn. The values favor precision over creativity: low
// temperature, a hard reply-length cap and a repetition-discouraging
// presence penalty.
type Config struct {
	// Temperature controls sampling randomness.
	Temperature float64

	// MaxTokens caps the reply length.
	MaxTokens int64

	// PresencePenalty discourages repeating earlier turns.
	PresencePenalty float64

	// BackendTimeout bounds every external backend call. A timeout is
	// converted into the corresponding adapter failure kind.
	BackendTimeout time.Duration

	// MentorName is the display name returned with tutoring responses.
	MentorName string
}

// DefaultConfig provides the tutoring deployment's defaults.
var DefaultConfig = Config{
	Temperature:     0.3,
	MaxTokens:       200,
	PresencePenalty: 0.2,
	BackendTimeout:  30 * time.Second,
	MentorName:      "Dr. AI",
}

// Options configures an Engine using the functional options pattern.
// Every collaborator has an in-memory or degraded-mode default so the
// zero configuration works for development and tests.
type Options struct {
	Config Config

	// SessionStore owns session transcripts. Defaults to in-memory.
	SessionStore core.SessionStore

	// ArtifactStore stages synthesized audio. Defaults to in-memory.
	ArtifactStore core.ArtifactStore

	// Model is the completion backend. Defaults to a MockModel.
	Model model.Model

	// Transcriber is the speech-to-text backend. Defaults to Deepgram in
	// mock mode (no credential configured).
	Transcriber speech.Transcriber

	// Synthesizer is the text-to-speech backend. Defaults to Deepgram
	// with the fixed default voice.
	Synthesizer speech.Synthesizer

	// PromptBuilder seeds new sessions. Defaults to the standard builder.
	PromptBuilder *prompt.Builder

	// Logger defaults to NoOp so the engine carries no logging setup.
	Logger logging.Logger
}

// Engine orchestrates tutoring sessions: resolving sessions, building
// role-scoped prompts and sequencing backend calls.
type Engine struct {
	cfg         Config
	sessions    core.SessionStore
	artifacts   core.ArtifactStore
	model       model.Model
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	prompts     *prompt.Builder
	logger      logging.Logger
}

// New creates an Engine with optional overrides. Any unset collaborator
// is initialized with its in-memory or degraded-mode default.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:        DefaultConfig,
		SessionStore:  session.NewInMemoryStore(),
		ArtifactStore: artifact.NewInMemoryStore(),
		Model:         model.NewMockModel("mock-tutor"),
		PromptBuilder: prompt.NewBuilder(),
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Transcriber == nil {
		opts.Transcriber = deepgram.NewTranscriber(deepgram.DefaultSTTConfig(), opts.Logger)
	}
	if opts.Synthesizer == nil {
		opts.Synthesizer = deepgram.NewSynthesizer(deepgram.DefaultTTSConfig(), opts.Logger)
	}
	return &Engine{
		cfg:         opts.Config,
		sessions:    opts.SessionStore,
		artifacts:   opts.ArtifactStore,
		model:       opts.Model,
		transcriber: opts.Transcriber,
		synthesizer: opts.Synthesizer,
		prompts:     opts.PromptBuilder,
		logger:      opts.Logger,
	}
}

// InitRequest seeds or resolves a session explicitly.
type InitRequest struct {
	SessionID string         `json:"session_id,omitempty"`
	Profile   prompt.Profile `json:"profile,omitempty"`
	Topic     string         `json:"topic,omitempty"`
}

// InitResponse reports the resolved session key.
type InitResponse struct {
	SessionID string `json:"session_id"`
	Created   bool   `json:"created"`
	Mentor    string `json:"mentor"`
}

// InitSession resolves or creates a session. An existing key always wins:
// its stored system prompt stays authoritative and the supplied
// profile/topic are ignored.
func (e *Engine) InitSession(_ context.Context, req InitRequest) (InitResponse, error) {
	systemPrompt := e.prompts.Build(req.Profile, req.Topic)
	id, created, err := e.sessions.GetOrCreate(req.SessionID, systemPrompt)
	if err != nil {
		return InitResponse{}, err
	}
	e.logger.Info("session initialized", "session_id", id, "created", created, "topic", req.Topic)
	return InitResponse{SessionID: id, Created: created, Mentor: e.cfg.MentorName}, nil
}

// ChatRequest carries one user turn. Profile and Topic are fallbacks used
// only to seed a session that does not yet exist.
type ChatRequest struct {
	SessionID string         `json:"session_id,omitempty"`
	Message   string         `json:"message"`
	Profile   prompt.Profile `json:"profile,omitempty"`
	Topic     string         `json:"topic,omitempty"`
}

// ChatResponse carries the assistant reply tied to its session key.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Mentor    string `json:"mentor"`
}

// Chat runs one turn: validate input, resolve the session, append the
// user turn, invoke the completion backend with the full transcript, and
// append the reply.
//
// An empty message fails with core.ErrEmptyMessage before any session is
// created or mutated. A backend failure returns *core.BackendError; the
// user turn appended before the call is kept (the transcript may then
// hold an unanswered user turn, which the data model tolerates).
func (e *Engine) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return ChatResponse{}, core.ErrEmptyMessage
	}

	systemPrompt := e.prompts.Build(req.Profile, req.Topic)
	id, created, err := e.sessions.GetOrCreate(req.SessionID, systemPrompt)
	if err != nil {
		return ChatResponse{}, err
	}
	if created {
		e.logger.Info("session created on chat", "session_id", id, "topic", req.Topic)
	}

	if err := e.sessions.Append(id, core.UserMessage(req.Message)); err != nil {
		return ChatResponse{}, err
	}
	transcript, err := e.sessions.Transcript(id)
	if err != nil {
		return ChatResponse{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.BackendTimeout)
	defer cancel()

	start := time.Now()
	resp, err := e.model.Complete(callCtx, model.Request{
		Messages:        transcript,
		Temperature:     e.cfg.Temperature,
		MaxTokens:       e.cfg.MaxTokens,
		PresencePenalty: e.cfg.PresencePenalty,
	})
	if err != nil {
		e.logger.Error("completion call failed",
			"session_id", id, "model", e.model.Info().Name,
			"duration", time.Since(start), "error", err)
		return ChatResponse{}, &core.BackendError{Err: err}
	}
	e.logger.Info("completion call completed",
		"session_id", id, "model", e.model.Info().Name,
		"duration", time.Since(start), "messages", len(transcript))

	if err := e.sessions.Append(id, core.AssistantMessage(resp.Reply)); err != nil {
		return ChatResponse{}, err
	}
	return ChatResponse{SessionID: id, Reply: resp.Reply, Mentor: e.cfg.MentorName}, nil
}

// Listen transcribes an audio payload. It never touches the session
// store; transcription is an independent request/response pipeline.
func (e *Engine) Listen(ctx context.Context, audio []byte, contentType string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.BackendTimeout)
	defer cancel()

	text, err := e.transcriber.Transcribe(callCtx, audio, contentType)
	if err != nil {
		e.logger.Error("transcription failed", "error", err)
		return "", err
	}
	return text, nil
}

// speakScope keys transient synthesis clips in the artifact store.
const speakScope = "speak"

// Speak synthesizes text into a complete audio payload as a single
// blocking unit of work. The clip is staged under a unique id for the
// duration of the call and reclaimed on every exit path, including
// backend failure.
func (e *Engine) Speak(ctx context.Context, text string) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.BackendTimeout)
	defer cancel()

	audio, err := e.synthesizer.Synthesize(callCtx, text)
	if err != nil {
		e.logger.Error("synthesis failed", "error", err)
		return nil, err
	}

	clipID := uuid.NewString()
	if err := e.artifacts.Save(speakScope, clipID, audio); err != nil {
		return nil, &core.SynthesisError{Err: err}
	}
	defer func() {
		if err := e.artifacts.Delete(speakScope, clipID); err != nil {
			e.logger.Warn("failed to reclaim synthesis clip", "clip_id", clipID, "error", err)
		}
	}()

	staged, err := e.artifacts.Get(speakScope, clipID)
	if err != nil {
		return nil, &core.SynthesisError{Err: err}
	}
	e.logger.Info("synthesis completed", "clip_id", clipID, "bytes", len(staged))
	return staged, nil
}

// Transcript exposes read access to a session's message sequence.
func (e *Engine) Transcript(sessionID string) ([]core.Message, error) {
	return e.sessions.Transcript(sessionID)
}
