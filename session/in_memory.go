package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/voxtutor/voxtutor/core"
)

// InMemoryStore is a volatile SessionStore keeping transcripts in a
// process-local map. Sessions live for the process lifetime; there is no
// persistence guarantee and no eviction.
//
// Concurrency: the map is guarded by an RWMutex held only long enough to
// resolve the session pointer. Appends are serialized per session by the
// session's own mutex, so writes to one session never block unrelated
// sessions.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// GetOrCreate resolves or lazily creates a session. A known id is
// returned unchanged with created=false; otherwise a fresh uuid is
// generated (unless the caller supplied an unknown id, which is adopted)
// and the new session is seeded with a single system message.
func (s *InMemoryStore) GetOrCreate(id, systemPrompt string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if _, ok := s.sessions[id]; ok {
			return id, false, nil
		}
	} else {
		id = uuid.NewString()
	}
	s.sessions[id] = core.NewSession(id, systemPrompt)
	return id, true, nil
}

// Append adds a message to an existing session or fails with
// ErrSessionNotFound.
func (s *InMemoryStore) Append(sessionID string, msg core.Message) error {
	sess, ok := s.lookup(sessionID)
	if !ok {
		return core.ErrSessionNotFound
	}
	sess.Append(msg)
	return nil
}

// Transcript returns a copy of the ordered message sequence or
// ErrSessionNotFound.
func (s *InMemoryStore) Transcript(sessionID string) ([]core.Message, error) {
	sess, ok := s.lookup(sessionID)
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return sess.Transcript(), nil
}

func (s *InMemoryStore) lookup(sessionID string) (*core.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}
