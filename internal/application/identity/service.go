package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/jobhive/auth-service/internal/domain"
)

// Service orchestrates registration, login, profile updates and password
// changes over the UserRepo, PasswordHasher and TokenSigner ports.
type Service struct {
	accounts UserRepo
	hasher   PasswordHasher
	signer   TokenSigner
	tokens   OneTimeTokenStore
	pub      EventPublisher

	sessionTTL time.Duration

	verifyBaseURL string // e.g. https://frontend/verify-email?token=
	verifyTTL     time.Duration
}

type Config struct {
	SessionTokenTTL     time.Duration
	VerifyEmailBaseURL  string
	VerifyEmailTokenTTL time.Duration
}

func NewService(
	accounts UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	tokens OneTimeTokenStore,
	pub EventPublisher,
	cfg Config,
) *Service {
	sessionTTL := cfg.SessionTokenTTL
	if sessionTTL <= 0 {
		sessionTTL = 15 * 24 * time.Hour
	}
	verifyTTL := cfg.VerifyEmailTokenTTL
	if verifyTTL <= 0 {
		verifyTTL = 24 * time.Hour
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		signer:   signer,
		tokens:   tokens,
		pub:      pub,

		sessionTTL:    sessionTTL,
		verifyBaseURL: cfg.VerifyEmailBaseURL,
		verifyTTL:     verifyTTL,
	}
}

// AccountView is the sanitized projection of an Account. It is the ONLY
// account shape that crosses a trust boundary; the password hash and
// internal flags never leave the service.
type AccountView struct {
	Role     domain.Role
	Verified bool
	ID       string
	Name     string
	Email    string
}

func viewOf(a domain.Account) AccountView {
	return AccountView{
		Role:     a.Role,
		Verified: a.Verified,
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
	}
}

// LoginResult carries the issued session token and its authoritative expiry.
type LoginResult struct {
	Account   AccountView
	Token     string // "Bearer <jwt>"
	ExpiresAt time.Time
}

// GetAccount loads the sanitized view of one account.
func (s *Service) GetAccount(ctx context.Context, id string) (AccountView, error) {
	a, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return AccountView{}, err
	}
	return viewOf(a), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNotFound(err error) bool {
	return domain.KindOf(err) == domain.KindNotFound
}

func isDuplicate(err error) bool {
	return domain.KindOf(err) == domain.KindDuplicate
}

// opaque replaces the client-facing message of internal faults with the
// operation-specific generic one; business errors pass through untouched.
func opaque(err error, msg string) error {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind == domain.KindInternal {
		return domain.WithMessage(de, msg)
	}
	if !errorsAsDomain(err) {
		return domain.WithMessage(domain.ErrInternal(err), msg)
	}
	return err
}

func errorsAsDomain(err error) bool {
	var de *domain.Error
	return errors.As(err, &de)
}

// newOpaqueToken returns a URL-safe opaque token.
func newOpaqueToken(bytesLen int) (string, error) {
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
