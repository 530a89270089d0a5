package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("COMPLETION_BASE_URL", "")
	t.Setenv("COMPLETION_MODEL", "")
	t.Setenv("TTS_VOICE", "")

	cfg := FromEnv()
	assert.Empty(t, cfg.DeepgramAPIKey)
	assert.Equal(t, DefaultCompletionBaseURL, cfg.CompletionBaseURL)
	assert.Equal(t, DefaultCompletionModel, cfg.CompletionModel)
	assert.Equal(t, DefaultVoice, cfg.Voice)
	assert.Equal(t, DefaultBackendTimeout, cfg.BackendTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("COMPLETION_MODEL", "meta-llama/llama-3-70b-instruct")
	t.Setenv("TTS_VOICE", "aura-2-arcas-en")

	cfg := FromEnv()
	assert.Equal(t, "dg-key", cfg.DeepgramAPIKey)
	assert.Equal(t, "or-key", cfg.CompletionAPIKey)
	assert.Equal(t, "meta-llama/llama-3-70b-instruct", cfg.CompletionModel)
	assert.Equal(t, "aura-2-arcas-en", cfg.Voice)
}
