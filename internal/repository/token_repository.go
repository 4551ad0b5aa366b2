package repository

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTokenNotFound is returned when no live token is stored for a session.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore persists bearer tokens per browser session under a storage key.
type TokenStore interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, token string) error
	Delete(ctx context.Context, sessionID, key string) error
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryTokenStore keeps tokens in process memory. Suitable for a single
// instance and for tests.
type MemoryTokenStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryTokenStore builds an in-memory store; ttl <= 0 keeps tokens forever.
func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryTokenStore) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := storageKey(sessionID, key)
	entry, ok := s.entries[k]
	if !ok {
		return "", ErrTokenNotFound
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, k)
		return "", ErrTokenNotFound
	}
	return entry.token, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, sessionID, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{token: token}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[storageKey(sessionID, key)] = entry
	return nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, storageKey(sessionID, key))
	return nil
}

func storageKey(sessionID, key string) string {
	return sessionID + ":" + key
}
