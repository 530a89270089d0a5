package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/voxtutor/voxtutor/core"
	"github.com/voxtutor/voxtutor/logging"
)

// DefaultVoice is the fixed synthesis voice profile (Spanish aura model).
const DefaultVoice = "aura-2-celeste-es"

// TTSConfig holds configuration for the synthesizer.
type TTSConfig struct {
	APIKey  string
	BaseURL string
	Voice   string
	Timeout time.Duration
}

// DefaultTTSConfig returns a config with the deployment defaults.
func DefaultTTSConfig() TTSConfig {
	return TTSConfig{
		BaseURL: DefaultBaseURL,
		Voice:   DefaultVoice,
		Timeout: 30 * time.Second,
	}
}

// Synthesizer implements speech.Synthesizer over the speak endpoint. A
// request is a single blocking unit of work: it returns a complete
// audio/mpeg payload or fails with no partial output.
type Synthesizer struct {
	config TTSConfig
	client *http.Client
	logger logging.Logger
}

// NewSynthesizer creates a Synthesizer. A nil logger falls back to no-op.
func NewSynthesizer(config TTSConfig, logger logging.Logger) *Synthesizer {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Voice == "" {
		config.Voice = DefaultVoice
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Synthesizer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

type speakV1Request struct {
	Text string `json:"text"`
}

// Synthesize converts text to audio bytes using the fixed voice profile.
// Empty text fails before any backend call.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, core.ErrEmptyText
	}

	payload, err := json.Marshal(speakV1Request{Text: text})
	if err != nil {
		return nil, &core.SynthesisError{Err: err}
	}

	endpoint, err := url.Parse(s.config.BaseURL + "/v1/speak")
	if err != nil {
		return nil, &core.SynthesisError{Err: err}
	}
	q := endpoint.Query()
	q.Set("model", s.config.Voice)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, &core.SynthesisError{Err: err}
	}
	req.Header.Set("Authorization", "Token "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &core.SynthesisError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &core.SynthesisError{
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		// Discard anything read so far; the caller never sees partial audio.
		return nil, &core.SynthesisError{Err: fmt.Errorf("read audio payload: %w", err)}
	}

	s.logger.Debug("synthesis completed", "voice", s.config.Voice, "bytes", len(audio))
	return audio, nil
}
