package identity

import (
	"context"
	"time"

	"github.com/jobhive/auth-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for accounts.
Only describes WHAT the identity service needs, not HOW it's stored.
The storage layer owns the uniqueness invariant: concurrent registrations
can both pass the application-level pre-check, so Create/Update must reject
duplicates at write time and the repo maps those rejections to
ErrDuplicateEmail / ErrDuplicateName.
*/
type UserQuery struct {
	Name  string
	Email string
}

type UserRepo interface {
	// FindOne matches an account whose name OR email equals the non-empty
	// query fields.
	FindOne(ctx context.Context, q UserQuery) (domain.Account, error)
	FindByID(ctx context.Context, id string) (domain.Account, error)
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
	Update(ctx context.Context, a domain.Account) (domain.Account, error)
	UpdatePasswordHash(ctx context.Context, accountID, newHash string) error
	SetVerified(ctx context.Context, accountID string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by the service and by the auth middleware.
*/
type TokenClaims struct {
	AccountID string
	Role      domain.Role
	Name      string
	Email     string
	Exp       time.Time
}

type TokenSigner interface {
	// SignSessionToken returns the signed token and its absolute expiry.
	// The expiry returned here is the single authoritative one; clients
	// never receive a second, divergent timestamp.
	SignSessionToken(a domain.Account, ttl time.Duration) (token string, expiresAt time.Time, err error)
	VerifySessionToken(token string) (TokenClaims, error)
}

/*
OneTimeTokenStore
-----------------
Opaque one-time tokens for email verification.
Stored and consumed only by this service.
*/
type OneTimeTokenStore interface {
	Save(ctx context.Context, token string, accountID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (accountID string, err error)
}

/*
EventPublisher
--------------
Publishes auth events to the message broker. The mailer service consumes
them and sends the actual email; this service never sends mail directly.
*/
type RegisteredEvent struct {
	AccountID string
	Name      string
	Email     string
	Role      string
	VerifyURL string
}

type EventPublisher interface {
	PublishRegistered(ctx context.Context, evt RegisteredEvent) error
}
