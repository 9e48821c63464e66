// Package session tracks the single authenticated user of the running process.
package session

import "sync"

// Session holds zero or one active username. It is owned by the process
// instance and passed explicitly to the services that need it.
type Session struct {
	mu       sync.RWMutex
	username string
}

// New returns an empty, unauthenticated session.
func New() *Session {
	return &Session{}
}

// Bind makes the given username the active user, replacing any previous one.
func (s *Session) Bind(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
}

// Clear ends the session. Safe to call when no user is active.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
}

// Current returns the active username, if any.
func (s *Session) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.username != ""
}

// Active reports whether a user is logged in.
func (s *Session) Active() bool {
	_, ok := s.Current()
	return ok
}
