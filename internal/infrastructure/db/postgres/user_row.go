package postgres

import (
	"time"

	"github.com/jobhive/auth-service/internal/domain"
)

// accountRow mirrors the accounts table one to one.
type accountRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Verified     bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toDomainAccount(ar accountRow) domain.Account {
	return domain.Account{
		ID:           ar.ID,
		Name:         ar.Name,
		Email:        ar.Email,
		PasswordHash: ar.PasswordHash,
		Role:         domain.Role(ar.Role),
		Verified:     ar.Verified,
		Active:       ar.Active,
		CreatedAt:    ar.CreatedAt,
		UpdatedAt:    ar.UpdatedAt,
	}
}
