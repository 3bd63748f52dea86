package session

import (
	"sync"

	"github.com/samber/do"
)

// Service is the process-wide registry of bot sessions.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		sessions: make(map[string]*Session),
	}, nil
}

// GetOrCreate returns the session for the given bot id, creating it on first
// reference. Concurrent calls with the same unseen id observe one session.
func (s *Service) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = newSession(id)
		s.sessions[id] = sess
	}

	return sess
}

func (s *Service) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	return sess, ok
}
