package identity

import (
	"context"

	"github.com/jobhive/auth-service/internal/domain"
)

const passwordFailMsg = "unable to change your password."

// ChangePassword rotates an account's password. The old password is
// ALWAYS verified before anything else happens, regardless of what the
// new password looks like.
func (s *Service) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	a, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrAccountNotFound()
		}
		return opaque(err, passwordFailMsg)
	}

	if err := s.hasher.Compare(a.PasswordHash, oldPassword); err != nil {
		return domain.ErrIncorrectPassword()
	}

	if newPassword == "" {
		return domain.ErrMissingField("new_password")
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return opaque(domain.ErrHashFailed(err), passwordFailMsg)
	}

	if err := s.accounts.UpdatePasswordHash(ctx, id, newHash); err != nil {
		return opaque(err, passwordFailMsg)
	}

	return nil
}
