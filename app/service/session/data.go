package session

import (
	"sync"
	"time"
)

type TranscriptEntry struct {
	Timestamp  int64   `json:"timestamp"`
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Session is the per-bot server-side state, created lazily on first use and
// kept for the lifetime of the process.
type Session struct {
	ID        string
	Buffer    *ConversationBuffer
	CreatedAt time.Time

	mu           sync.RWMutex
	lastActivity time.Time
}

func newSession(id string) *Session {
	now := time.Now()

	return &Session{
		ID:           id,
		Buffer:       NewBuffer(defaultBufferSize),
		CreatedAt:    now,
		lastActivity: now,
	}
}

func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastActivity
}
