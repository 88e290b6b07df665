package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/jwill9999/authclient/pkg/apiclient"
)

// profileFileName is the fixed key the durable record lives under.
const profileFileName = "user.json"

// FileStore implements ProfileStore as a single JSON file, the closest
// analogue to browser localStorage for CLI and desktop consumers.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to <dir>/user.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, profileFileName)}
}

// Load reads and decodes the profile record
func (s *FileStore) Load(ctx context.Context) (*apiclient.User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	var user apiclient.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, errors.Join(ErrProfileMalformed, err)
	}
	return &user, nil
}

// Save writes the profile record, creating the directory if needed
func (s *FileStore) Save(ctx context.Context, user *apiclient.User) error {
	if user == nil {
		return ErrNilProfile
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Delete removes the profile record
func (s *FileStore) Delete(ctx context.Context) error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
