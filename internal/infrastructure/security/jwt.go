package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobhive/auth-service/internal/application/identity"
	"github.com/jobhive/auth-service/internal/domain"
)

// JWTSigner issues and verifies HS256 session tokens. Tokens are
// self-contained: validity is signature plus expiry, with no server-side
// store, so compromise of the secret invalidates the whole scheme.
type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type sessionClaims struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) SignSessionToken(a domain.Account, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := sessionClaims{
		Role:  string(a.Role),
		Name:  a.Name,
		Email: a.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, domain.ErrTokenSignFailed(err)
	}
	return signed, expiresAt, nil
}

func (s *JWTSigner) VerifySessionToken(token string) (identity.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return identity.TokenClaims{}, domain.ErrTokenExpired()
		}
		return identity.TokenClaims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return identity.TokenClaims{}, domain.ErrTokenInvalid()
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return identity.TokenClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return identity.TokenClaims{
		AccountID: claims.Subject,
		Role:      role,
		Name:      claims.Name,
		Email:     claims.Email,
		Exp:       exp,
	}, nil
}
