package identity

import (
	"context"
	"strings"

	"github.com/jobhive/auth-service/internal/domain"
)

const updateFailMsg = "unable to update your account"

// ProfilePatch carries a partial update; nil fields are left untouched.
type ProfilePatch struct {
	Name  *string
	Email *string
}

// UpdateProfile applies a partial update to an account. Uniqueness is
// re-checked for each changed field against the account that actually
// holds the value, so renaming to one's own current name or email is not
// a conflict.
func (s *Service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (AccountView, error) {
	a, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return AccountView{}, domain.ErrAccountNotFound()
		}
		return AccountView{}, opaque(err, updateFailMsg)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name != "" && name != a.Name {
			if err := s.checkNameFree(ctx, name, id); err != nil {
				return AccountView{}, err
			}
			a.Name = name
		}
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email != "" && email != a.Email {
			if err := s.checkEmailFree(ctx, email, id); err != nil {
				return AccountView{}, err
			}
			a.Email = email
		}
	}

	updated, err := s.accounts.Update(ctx, a)
	if err != nil {
		if isDuplicate(err) {
			return AccountView{}, err
		}
		return AccountView{}, opaque(err, updateFailMsg)
	}

	return viewOf(updated), nil
}

// checkNameFree fails when a DIFFERENT account already holds the name.
func (s *Service) checkNameFree(ctx context.Context, name, selfID string) error {
	holder, err := s.accounts.FindOne(ctx, UserQuery{Name: name})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return opaque(err, updateFailMsg)
	}
	if holder.ID != selfID {
		return domain.ErrDuplicateName()
	}
	return nil
}

// checkEmailFree fails when a DIFFERENT account already holds the email.
func (s *Service) checkEmailFree(ctx context.Context, email, selfID string) error {
	holder, err := s.accounts.FindOne(ctx, UserQuery{Email: email})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return opaque(err, updateFailMsg)
	}
	if holder.ID != selfID {
		return domain.ErrDuplicateEmail()
	}
	return nil
}
