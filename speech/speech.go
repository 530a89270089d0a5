// Package speech defines the narrow contracts toward the speech backends.
// Implementations live in sub-packages (deepgram); the orchestrator
// depends only on these interfaces.
package speech

import "context"

// Transcriber converts an audio payload into text. Implementations must
// bound their wait and surface failures as *core.TranscriptionError; a
// configured degraded mode (no credential) returns a fixed placeholder
// instead of calling the network.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// Synthesizer converts text into a complete audio payload using one fixed
// voice profile. Empty text fails with core.ErrEmptyText before any
// backend call; other failures surface as *core.SynthesisError with no
// partial audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
