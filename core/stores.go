package core

// SessionStore owns the lifecycle and mutation of session transcripts.
// All transcript mutation is mediated through the store; implementations
// must serialize appends within a session while keeping cross-session
// operations independent (no single global lock across all sessions).
type SessionStore interface {
	// GetOrCreate resolves a session key. A known id is returned unchanged
	// with created=false. An absent or unknown id yields a fresh session
	// seeded with exactly one system message built from systemPrompt, and
	// created=true. Pass id="" to always create.
	GetOrCreate(id, systemPrompt string) (sessionID string, created bool, err error)

	// Append adds a message to an existing session. Unknown ids fail with
	// ErrSessionNotFound; callers are expected to resolve the session
	// first via GetOrCreate.
	Append(sessionID string, msg Message) error

	// Transcript returns the ordered message sequence for the session, or
	// ErrSessionNotFound.
	Transcript(sessionID string) ([]Message, error)
}

// ArtifactStore stages binary payloads (synthesized audio) keyed by
// session and artifact id. Artifacts staged for a response transfer are
// transient: callers must Delete them on every exit path.
type ArtifactStore interface {
	Save(sessionID, artifactID string, data []byte) error
	Get(sessionID, artifactID string) ([]byte, error)
	List(sessionID string) ([]string, error)
	Delete(sessionID, artifactID string) error
}
