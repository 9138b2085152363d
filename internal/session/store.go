// Package session holds the signed-in clinician profile. The practice is
// single-user, so there is exactly one session slot.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when nobody is signed in.
var ErrNoSession = errors.New("session: no active session")

// UserProfile is the signed-in clinician.
type UserProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	Sub     string `json:"sub"`
}

// Store persists the active session.
type Store interface {
	Load(ctx context.Context) (UserProfile, error)
	Save(ctx context.Context, profile UserProfile) error
	Clear(ctx context.Context) error
}

// RedisStore keeps the session in Redis so it survives restarts.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Load reads the stored profile.
func (s *RedisStore) Load(ctx context.Context) (UserProfile, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return UserProfile{}, ErrNoSession
	}
	if err != nil {
		return UserProfile{}, fmt.Errorf("session: load: %w", err)
	}

	var profile UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return UserProfile{}, fmt.Errorf("session: decode profile: %w", err)
	}
	return profile, nil
}

// Save stores the profile. No TTL; the session lasts until logout.
func (s *RedisStore) Save(ctx context.Context, profile UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("session: encode profile: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Clear removes the session.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// MemoryStore keeps the session in process memory. Used when Redis is not
// configured.
type MemoryStore struct {
	mu      sync.RWMutex
	profile *UserProfile
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load reads the stored profile.
func (s *MemoryStore) Load(_ context.Context) (UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return UserProfile{}, ErrNoSession
	}
	return *s.profile, nil
}

// Save stores the profile.
func (s *MemoryStore) Save(_ context.Context, profile UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = &profile
	return nil
}

// Clear removes the session.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = nil
	return nil
}
