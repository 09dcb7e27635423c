package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jobhive/auth-service/internal/application/identity"
	"github.com/jobhive/auth-service/internal/domain"
)

// UserRepo is the dev-mode stand-in for Postgres. It enforces the same
// uniqueness invariant under its lock, so concurrent registrations behave
// like they do against the real unique indexes.
type UserRepo struct {
	mu       sync.RWMutex
	byID     map[string]domain.Account
	idByName map[string]string
	idByMail map[string]string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:     make(map[string]domain.Account),
		idByName: make(map[string]string),
		idByMail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) FindOne(_ context.Context, q identity.UserQuery) (domain.Account, error) {
	name := strings.TrimSpace(q.Name)
	email := normalizeEmail(q.Email)
	if name == "" && email == "" {
		return domain.Account{}, domain.ErrMissingField("name or email")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if name != "" {
		if id, ok := r.idByName[name]; ok {
			return r.byID[id], nil
		}
	}
	if email != "" {
		if id, ok := r.idByMail[email]; ok {
			return r.byID[id], nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound()
}

func (r *UserRepo) FindByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (r *UserRepo) Create(_ context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" || a.Name == "" || a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("id, name and email")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.idByMail[a.Email]; taken {
		return domain.Account{}, domain.ErrDuplicateEmail()
	}
	if _, taken := r.idByName[a.Name]; taken {
		return domain.Account{}, domain.ErrDuplicateName()
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.byID[a.ID] = a
	r.idByName[a.Name] = a.ID
	r.idByMail[a.Email] = a.ID
	return a, nil
}

func (r *UserRepo) Update(_ context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[a.ID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}

	if id, taken := r.idByMail[a.Email]; taken && id != a.ID {
		return domain.Account{}, domain.ErrDuplicateEmail()
	}
	if id, taken := r.idByName[a.Name]; taken && id != a.ID {
		return domain.Account{}, domain.ErrDuplicateName()
	}

	delete(r.idByName, cur.Name)
	delete(r.idByMail, cur.Email)

	cur.Name = a.Name
	cur.Email = a.Email
	cur.UpdatedAt = time.Now()
	r.byID[cur.ID] = cur
	r.idByName[cur.Name] = cur.ID
	r.idByMail[cur.Email] = cur.ID
	return cur, nil
}

func (r *UserRepo) UpdatePasswordHash(_ context.Context, accountID, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[accountID]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.PasswordHash = newHash
	a.UpdatedAt = time.Now()
	r.byID[accountID] = a
	return nil
}

func (r *UserRepo) SetVerified(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[accountID]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.Verified = true
	a.UpdatedAt = time.Now()
	r.byID[accountID] = a
	return nil
}
