package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jobhive/auth-service/internal/domain"
)

// BcryptHasher hashes passwords with a per-call random salt. The work
// factor is tunable; the platform runs with cost 12.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = 12
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(b), nil
}

// Compare returns nil on match. A mismatch is an ordinary error, never a
// fault.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
