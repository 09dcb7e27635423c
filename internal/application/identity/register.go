package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobhive/auth-service/internal/domain"
	"github.com/jobhive/auth-service/internal/logger"
)

const registerFailMsg = "unable to create your account"

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account with the caller-supplied role.
// The email pre-check is optimistic only; the storage layer's unique
// indexes are the authoritative guard against concurrent duplicates, and
// the repo maps those violations back to the same duplicate errors.
func (s *Service) Register(ctx context.Context, in RegisterInput, role domain.Role) (AccountView, error) {
	if !domain.IsValidRole(string(role)) {
		return AccountView{}, domain.ErrInvalidRole(string(role))
	}

	email := normalizeEmail(in.Email)
	if email == "" {
		return AccountView{}, domain.ErrMissingField("email")
	}

	existing, err := s.accounts.FindOne(ctx, UserQuery{Email: email})
	if err == nil && existing.ID != "" {
		return AccountView{}, domain.ErrDuplicateEmail()
	}
	if err != nil && !isNotFound(err) {
		return AccountView{}, opaque(err, registerFailMsg)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AccountView{}, opaque(domain.ErrHashFailed(err), registerFailMsg)
	}

	a := domain.Account{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Verified:     false,
		Active:       true,
	}

	created, err := s.accounts.Create(ctx, a)
	if err != nil {
		if isDuplicate(err) {
			return AccountView{}, err
		}
		return AccountView{}, opaque(err, registerFailMsg)
	}

	// Verification mail is best effort; a broken broker must never fail
	// the registration itself.
	if err := s.issueVerification(ctx, created); err != nil {
		log := logger.WithCtx(ctx)
		log.Error().
			Err(err).
			Str("account_id", created.ID).
			Str("email", created.Email).
			Msg("failed to issue verification token")
	}

	return viewOf(created), nil
}
