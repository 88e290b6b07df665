package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/jwill9999/authclient/pkg/apiclient"
)

// defaultProfileKey is the fixed key the durable record lives under.
const defaultProfileKey = "user"

// RedisStore implements ProfileStore on a single Redis key. It suits
// server-hosted consumers, for example a backend-for-frontend that already
// runs its session state through Redis.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed profile store. An empty key falls
// back to the default.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultProfileKey
	}
	return &RedisStore{client: client, key: key}
}

// Load reads and decodes the profile record
func (s *RedisStore) Load(ctx context.Context) (*apiclient.User, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
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

// Save writes the profile record without expiry
func (s *RedisStore) Save(ctx context.Context, user *apiclient.User) error {
	if user == nil {
		return ErrNilProfile
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

// Delete removes the profile record
func (s *RedisStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
