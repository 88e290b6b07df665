package credential

import "sync"

// Store holds the current access token in process memory. It is the single
// source of truth for the bearer credential attached to outbound requests.
// The token is never written to durable storage; it lives until replaced,
// cleared, or the process exits.
type Store struct {
	mu    sync.RWMutex
	token string
}

// NewStore creates an empty credential store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the held token. The second return value reports whether a
// token is currently held.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set replaces the held token.
func (s *Store) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear drops the held token.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}
