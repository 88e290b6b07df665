package session

import (
	"context"
	"sync"

	"github.com/jwill9999/authclient/pkg/apiclient"
)

// MemoryStore implements ProfileStore in process memory. It is the default
// store and suits consumers that do not want cross-restart persistence.
type MemoryStore struct {
	mu   sync.RWMutex
	user *apiclient.User
}

// NewMemoryStore creates a new in-memory profile store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored profile
func (s *MemoryStore) Load(ctx context.Context) (*apiclient.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, ErrProfileNotFound
	}

	userCopy := *s.user
	return &userCopy, nil
}

// Save stores a copy of the profile
func (s *MemoryStore) Save(ctx context.Context, user *apiclient.User) error {
	if user == nil {
		return ErrNilProfile
	}

	userCopy := *user
	s.mu.Lock()
	s.user = &userCopy
	s.mu.Unlock()
	return nil
}

// Delete removes the stored profile
func (s *MemoryStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}
