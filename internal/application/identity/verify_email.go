package identity

import (
	"context"

	"github.com/jobhive/auth-service/internal/domain"
)

// issueVerification stores a one-time token and publishes the registration
// event the mailer service turns into a verification email.
func (s *Service) issueVerification(ctx context.Context, a domain.Account) error {
	if s.tokens == nil || s.pub == nil {
		return nil
	}

	token, err := newOpaqueToken(32)
	if err != nil {
		return domain.ErrRandomFailed(err)
	}

	if err := s.tokens.Save(ctx, token, a.ID, s.verifyTTL); err != nil {
		return err
	}

	return s.pub.PublishRegistered(ctx, RegisteredEvent{
		AccountID: a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		VerifyURL: s.verifyBaseURL + token,
	})
}

// ConfirmVerification consumes a one-time token and flips the account's
// verified flag. Tokens are single use; a second confirm with the same
// token fails.
func (s *Service) ConfirmVerification(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if s.tokens == nil {
		return domain.ErrVerifyTokenNotFound()
	}

	accountID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}

	return s.accounts.SetVerified(ctx, accountID)
}
