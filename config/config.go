// Package config loads process-wide configuration once at startup.
// Credentials are never embedded in source; absent values select the
// documented degraded modes (mock transcription) or defaults.
package config

import (
	"os"
	"time"
)

// Defaults applied when the environment leaves a value unset.
const (
	DefaultCompletionBaseURL = "https://openrouter.ai/api/v1"
	DefaultCompletionModel   = "meta-llama/llama-3-8b-instruct"
	DefaultVoice             = "aura-2-celeste-es"
	DefaultBackendTimeout    = 30 * time.Second
)

// Config holds immutable process configuration. Load it once via FromEnv
// and pass it to the wiring layer; components receive plain values, not
// the environment.
type Config struct {
	// DeepgramAPIKey authorizes the transcription backend. Absent means
	// the transcriber runs in mock mode.
	DeepgramAPIKey string

	// CompletionAPIKey authorizes the completion backend.
	CompletionAPIKey string

	// CompletionBaseURL selects the completion endpoint (OpenRouter by
	// default; any OpenAI-compatible endpoint works).
	CompletionBaseURL string

	// CompletionModel names the chat model to invoke.
	CompletionModel string

	// Voice is the fixed synthesis voice profile.
	Voice string

	// BackendTimeout bounds every external backend call.
	BackendTimeout time.Duration
}

// FromEnv builds a Config from environment variables, applying defaults
// for everything but credentials.
func FromEnv() Config {
	return Config{
		DeepgramAPIKey:    os.Getenv("DEEPGRAM_API_KEY"),
		CompletionAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		CompletionBaseURL: envOr("COMPLETION_BASE_URL", DefaultCompletionBaseURL),
		CompletionModel:   envOr("COMPLETION_MODEL", DefaultCompletionModel),
		Voice:             envOr("TTS_VOICE", DefaultVoice),
		BackendTimeout:    DefaultBackendTimeout,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
