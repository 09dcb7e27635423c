package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jobhive/auth-service/internal/domain"
)

type tokenEntry struct {
	accountID string
	expiresAt time.Time
}

// OneTimeTokenStore is the dev-mode stand-in for the Redis token store.
type OneTimeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry
}

func NewOneTimeTokenStore() *OneTimeTokenStore {
	return &OneTimeTokenStore{tokens: make(map[string]tokenEntry)}
}

func (s *OneTimeTokenStore) Save(_ context.Context, token string, accountID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = tokenEntry{accountID: accountID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *OneTimeTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrVerifyTokenNotFound()
	}
	delete(s.tokens, token)
	if time.Now().After(entry.expiresAt) {
		return "", domain.ErrVerifyTokenNotFound()
	}
	return entry.accountID, nil
}
