package service

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taxitalk/server/internal/auth"
)

// tokenStore holds opaque session tokens in memory. Sessions are as
// ephemeral as the rest of the process state, so nothing is persisted.
type tokenStore struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry
}

type tokenEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func newTokenStore() *tokenStore {
	return &tokenStore{tokens: make(map[string]tokenEntry)}
}

func (s *tokenStore) issue(userID uuid.UUID, ttl time.Duration) string {
	token := newToken()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()
	s.tokens[token] = tokenEntry{
		userID:    userID,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return token
}

func (s *tokenStore) lookup(token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, auth.ErrInvalidToken
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.tokens, token)
		return uuid.Nil, auth.ErrTokenExpired
	}
	return entry.userID, nil
}

func (s *tokenStore) purgeLocked() {
	now := time.Now().UTC()
	for token, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, token)
		}
	}
}

func newToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
