package core

import "errors"

var (
	// ErrEmptyMessage is returned when a chat turn carries no user text.
	// No session state is mutated when this is returned.
	ErrEmptyMessage = errors.New("chat message must not be empty")

	// ErrSessionNotFound is returned on append or read of an unknown
	// session key.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyText is returned when synthesis is requested for empty
	// text; no backend call is issued.
	ErrEmptyText = errors.New("text to synthesize must not be empty")
)

// FallbackReply is the safe user-facing message surfaced alongside a
// BackendError. Operators get the wrapped detail; end users get this.
const FallbackReply = "The tutoring service is temporarily unavailable. Please try again in a moment."

// BackendError reports a completion backend that was unreachable or
// returned a non-success response. The user's turn appended before the
// failed call is not rolled back.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string { return "completion backend: " + e.Err.Error() }

func (e *BackendError) Unwrap() error { return e.Err }

// TranscriptionError reports a speech-to-text backend failure
// (network, timeout or non-success response).
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string { return "transcription backend: " + e.Err.Error() }

func (e *TranscriptionError) Unwrap() error { return e.Err }

// SynthesisError reports a text-to-speech backend failure. No partial
// audio payload is ever surfaced alongside it.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string { return "synthesis backend: " + e.Err.Error() }

func (e *SynthesisError) Unwrap() error { return e.Err }
