// Package engine implements the conversation orchestrator: it owns the
// chat-turn state machine, sequences calls to the transcription,
// completion and synthesis backends, and defines the fallback behavior
// when a backend is unavailable. All session mutation flows through the
// configured core.SessionStore; the engine itself is stateless per
// request and safe for concurrent use.
package engine
