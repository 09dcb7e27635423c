package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobhive/auth-service/internal/domain"
)

const verifyKeyPrefix = "verify_email:"

// OneTimeTokenStore keeps email-verification tokens in Redis. Only a
// SHA-256 digest of the token is stored, so a Redis dump never yields a
// usable token. Expiry is enforced by the key TTL.
type OneTimeTokenStore struct {
	client *redis.Client
}

func NewOneTimeTokenStore(client *redis.Client) *OneTimeTokenStore {
	return &OneTimeTokenStore{client: client}
}

func verifyKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return verifyKeyPrefix + hex.EncodeToString(sum[:])
}

func (s *OneTimeTokenStore) Save(ctx context.Context, token string, accountID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, verifyKey(token), accountID, ttl).Err(); err != nil {
		return domain.ErrPersistence(err)
	}
	return nil
}

// Consume atomically fetches and deletes the token, so a token confirms
// at most once even under concurrent requests.
func (s *OneTimeTokenStore) Consume(ctx context.Context, token string) (string, error) {
	accountID, err := s.client.GetDel(ctx, verifyKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrVerifyTokenNotFound()
		}
		return "", domain.ErrPersistence(err)
	}
	return accountID, nil
}
