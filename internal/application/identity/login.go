package identity

import (
	"context"
	"strings"

	"github.com/jobhive/auth-service/internal/domain"
)

// Login authenticates a name-or-email identifier against its password and
// issues a session token with the platform's fixed validity window.
//
// An unknown identifier is a distinct outcome (404) from a wrong password
// (403); the platform's clients branch on the two.
func (s *Service) Login(ctx context.Context, name, email, password string) (LoginResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" && email == "" {
		return LoginResult{}, domain.ErrMissingField("name or email")
	}
	if password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	a, err := s.accounts.FindOne(ctx, UserQuery{Name: name, Email: email})
	if err != nil {
		if isNotFound(err) {
			return LoginResult{}, domain.ErrAccountNotFound()
		}
		return LoginResult{}, opaque(err, "internal error")
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.signer.SignSessionToken(a, s.sessionTTL)
	if err != nil {
		return LoginResult{}, opaque(domain.ErrTokenSignFailed(err), "internal error")
	}

	return LoginResult{
		Account:   viewOf(a),
		Token:     "Bearer " + token,
		ExpiresAt: expiresAt,
	}, nil
}
