// Package voxtutor provides a high-level façade over the conversation
// engine and its service abstractions (sessions, artifacts, speech
// backends & logging) for building voice tutoring assistants. Most
// applications interact with this package by:
//  1. Loading configuration (config.FromEnv) and creating a VoxTutor via
//     New() (optionally overriding default in-memory services)
//  2. Calling InitSession / Chat for the conversation loop
//  3. Calling Listen / Speak for the independent speech pipelines
//
// The façade delegates orchestration to engine.Engine while keeping setup
// concise. All defaults are safe for local development and testing: the
// session and artifact stores are in-memory, the completion model is a
// deterministic mock, and transcription runs in mock mode until a
// credential is configured.
package voxtutor

import (
	"context"

	"github.com/voxtutor/voxtutor/config"
	"github.com/voxtutor/voxtutor/core"
	"github.com/voxtutor/voxtutor/engine"
	"github.com/voxtutor/voxtutor/logging"
	"github.com/voxtutor/voxtutor/model"
	"github.com/voxtutor/voxtutor/model/openai"
	"github.com/voxtutor/voxtutor/prompt"
	"github.com/voxtutor/voxtutor/speech"
	"github.com/voxtutor/voxtutor/speech/deepgram"
)

// Options configure the VoxTutor instance.
type Options struct {
	// EngineConfig holds the fixed generation and timing parameters.
	EngineConfig engine.Config

	// Stores (default to in-memory implementations if not provided).
	SessionStore  core.SessionStore
	ArtifactStore core.ArtifactStore

	// Backends (default to a mock model and Deepgram adapters).
	Model       model.Model
	Transcriber speech.Transcriber
	Synthesizer speech.Synthesizer

	// PromptBuilder seeds new sessions.
	PromptBuilder *prompt.Builder

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// VoxTutor is the high-level façade aggregating the underlying engine and
// services.
type VoxTutor struct {
	opts   Options
	engine *engine.Engine
}

// New creates a VoxTutor instance with optional overrides. Any unset
// service is initialized with its in-memory or degraded-mode default.
func New(optFns ...func(o *Options)) *VoxTutor {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		if opts.SessionStore != nil {
			o.SessionStore = opts.SessionStore
		}
		if opts.ArtifactStore != nil {
			o.ArtifactStore = opts.ArtifactStore
		}
		if opts.Model != nil {
			o.Model = opts.Model
		}
		o.Transcriber = opts.Transcriber
		o.Synthesizer = opts.Synthesizer
		if opts.PromptBuilder != nil {
			o.PromptBuilder = opts.PromptBuilder
		}
		o.Logger = opts.Logger
	})

	return &VoxTutor{opts: opts, engine: e}
}

// FromConfig creates a VoxTutor wired with real backends from process
// configuration: the OpenRouter completion model and the Deepgram speech
// adapters (transcription degrades to mock mode without a credential).
func FromConfig(cfg config.Config, logger logging.Logger) *VoxTutor {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	llm := openai.NewModel(func(o *openai.Options) {
		o.Model = cfg.CompletionModel
		o.BaseURL = cfg.CompletionBaseURL
		o.APIKey = cfg.CompletionAPIKey
	})

	sttCfg := deepgram.DefaultSTTConfig()
	sttCfg.APIKey = cfg.DeepgramAPIKey
	sttCfg.Timeout = cfg.BackendTimeout

	ttsCfg := deepgram.DefaultTTSConfig()
	ttsCfg.APIKey = cfg.DeepgramAPIKey
	ttsCfg.Voice = cfg.Voice
	ttsCfg.Timeout = cfg.BackendTimeout

	engineCfg := engine.DefaultConfig
	engineCfg.BackendTimeout = cfg.BackendTimeout

	return New(func(o *Options) {
		o.EngineConfig = engineCfg
		o.Model = llm
		o.Transcriber = deepgram.NewTranscriber(sttCfg, logger)
		o.Synthesizer = deepgram.NewSynthesizer(ttsCfg, logger)
		o.Logger = logger
	})
}

// InitSession resolves or creates a tutoring session.
func (v *VoxTutor) InitSession(ctx context.Context, req engine.InitRequest) (engine.InitResponse, error) {
	return v.engine.InitSession(ctx, req)
}

// Chat runs one conversation turn.
func (v *VoxTutor) Chat(ctx context.Context, req engine.ChatRequest) (engine.ChatResponse, error) {
	return v.engine.Chat(ctx, req)
}

// Listen transcribes an audio payload into text.
func (v *VoxTutor) Listen(ctx context.Context, audio []byte, contentType string) (string, error) {
	return v.engine.Listen(ctx, audio, contentType)
}

// Speak synthesizes text into a complete audio payload.
func (v *VoxTutor) Speak(ctx context.Context, text string) ([]byte, error) {
	return v.engine.Speak(ctx, text)
}

// Transcript exposes read access to a session's ordered message sequence.
func (v *VoxTutor) Transcript(sessionID string) ([]core.Message, error) {
	return v.engine.Transcript(sessionID)
}
