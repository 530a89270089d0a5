// Package deepgram provides request/response speech adapters over the
// Deepgram REST API: pre-recorded transcription (/v1/listen) and speech
// synthesis (/v1/speak).
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/voxtutor/voxtutor/core"
	"github.com/voxtutor/voxtutor/logging"
)

// DefaultBaseURL is the Deepgram REST endpoint.
const DefaultBaseURL = "https://api.deepgram.com"

// MockTranscript is the fixed placeholder returned in mock mode so the
// rest of the pipeline stays exercisable without a credential. It is
// logged as a warning on every use to stay distinguishable from a real
// transcription.
const MockTranscript = "Simulation: patient presents acute chest pain radiating to the left arm."

// STTConfig holds configuration for the transcriber. An empty APIKey
// selects mock mode.
type STTConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Language    string
	SmartFormat bool
	Timeout     time.Duration
}

// DefaultSTTConfig returns a config with the tutoring deployment's
// defaults (Spanish, nova-2, smart formatting).
func DefaultSTTConfig() STTConfig {
	return STTConfig{
		BaseURL:     DefaultBaseURL,
		Model:       "nova-2",
		Language:    "es",
		SmartFormat: true,
		Timeout:     30 * time.Second,
	}
}

// Transcriber implements speech.Transcriber over the pre-recorded
// listen endpoint.
type Transcriber struct {
	config STTConfig
	client *http.Client
	logger logging.Logger
}

// NewTranscriber creates a Transcriber. A nil logger falls back to no-op.
func NewTranscriber(config STTConfig, logger logging.Logger) *Transcriber {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Transcriber{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// Transcribe forwards the raw audio bytes with content-type metadata and
// extracts the first alternative of the first channel of the first
// result; an absent structure yields an empty string rather than an
// error. Without an API key it returns MockTranscript and issues no
// network call.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	if t.config.APIKey == "" {
		t.logger.Warn("deepgram api key not configured, returning mock transcription")
		return MockTranscript, nil
	}

	endpoint, err := t.buildURL()
	if err != nil {
		return "", &core.TranscriptionError{Err: err}
	}
	if contentType == "" {
		contentType = "audio/wav"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", &core.TranscriptionError{Err: err}
	}
	req.Header.Set("Authorization", "Token "+t.config.APIKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &core.TranscriptionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &core.TranscriptionError{
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body),
		}
	}

	var result listenV1Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &core.TranscriptionError{Err: fmt.Errorf("decode response: %w", err)}
	}

	transcript := result.firstTranscript()
	t.logger.Debug("transcription completed", "chars", len(transcript))
	return transcript, nil
}

// buildURL constructs the listen URL with query parameters selecting
// model, language and formatting.
func (t *Transcriber) buildURL() (string, error) {
	base, err := url.Parse(t.config.BaseURL + "/v1/listen")
	if err != nil {
		return "", err
	}
	q := base.Query()
	if t.config.Model != "" {
		q.Set("model", t.config.Model)
	}
	if t.config.Language != "" {
		q.Set("language", t.config.Language)
	}
	q.Set("smart_format", strconv.FormatBool(t.config.SmartFormat))
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// listenV1Response mirrors the subset of the pre-recorded response this
// core reads.
type listenV1Response struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (r listenV1Response) firstTranscript() string {
	if len(r.Results.Channels) == 0 {
		return ""
	}
	alts := r.Results.Channels[0].Alternatives
	if len(alts) == 0 {
		return ""
	}
	return alts[0].Transcript
}
