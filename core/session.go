package core

import (
	"sync"
	"time"
)

// Session is a keyed conversation transcript. It is safe for concurrent
// access; appends within one session are serialized by the session's own
// mutex so concurrent chat turns never interleave partial writes.
//
// Contract:
//   - The first message is always the system instruction seeded at
//     creation; it is never removed or reordered.
//   - The transcript is append-only; Transcript returns a defensive copy.
//   - Consecutive user turns are tolerated (a failed completion may leave
//     an unanswered user turn).
type Session struct {
	ID      string
	Created time.Time
	Updated time.Time

	mu       sync.Mutex
	messages []Message
}

// NewSession creates a session seeded with a single system message built
// from the given instruction text.
func NewSession(id, systemPrompt string) *Session {
	now := time.Now()
	return &Session{
		ID:       id,
		Created:  now,
		Updated:  now,
		messages: []Message{SystemMessage(systemPrompt)},
	}
}

// Append adds a message to the end of the transcript.
func (s *Session) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	s.Updated = time.Now()
}

// Transcript returns a copy of the full ordered message sequence to
// prevent callers from mutating internal state.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return msgs
}

// Len returns the current transcript length.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// SystemPrompt returns the instruction text the session was seeded with.
func (s *Session) SystemPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages[0].Content
}
