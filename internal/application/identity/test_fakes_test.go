package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jobhive/auth-service/internal/domain"
)

// ---------- fake user repo ----------

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Account

	findErr   error // forced failure for FindOne/FindByID
	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]domain.Account)}
}

func (r *fakeUserRepo) FindOne(_ context.Context, q UserQuery) (domain.Account, error) {
	if r.findErr != nil {
		return domain.Account{}, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if (q.Name != "" && a.Name == q.Name) || (q.Email != "" && a.Email == q.Email) {
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound()
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (domain.Account, error) {
	if r.findErr != nil {
		return domain.Account{}, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (r *fakeUserRepo) Create(_ context.Context, a domain.Account) (domain.Account, error) {
	if r.createErr != nil {
		return domain.Account{}, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.byID {
		if cur.Email == a.Email {
			return domain.Account{}, domain.ErrDuplicateEmail()
		}
		if cur.Name == a.Name {
			return domain.Account{}, domain.ErrDuplicateName()
		}
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.byID[a.ID] = a
	return a, nil
}

func (r *fakeUserRepo) Update(_ context.Context, a domain.Account) (domain.Account, error) {
	if r.updateErr != nil {
		return domain.Account{}, r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[a.ID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	for id, other := range r.byID {
		if id == a.ID {
			continue
		}
		if other.Email == a.Email {
			return domain.Account{}, domain.ErrDuplicateEmail()
		}
		if other.Name == a.Name {
			return domain.Account{}, domain.ErrDuplicateName()
		}
	}
	cur.Name = a.Name
	cur.Email = a.Email
	cur.UpdatedAt = time.Now()
	r.byID[a.ID] = cur
	return cur, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.PasswordHash = newHash
	r.byID[id] = a
	return nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.Verified = true
	r.byID[id] = a
	return nil
}

// ---------- fake hasher ----------

// fakeHasher "hashes" by prefixing, so tests can assert on stored values.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Compare(hash, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return errors.New("mismatch")
}

// ---------- fake signer ----------

type fakeSigner struct {
	signErr error
}

func (s *fakeSigner) SignSessionToken(a domain.Account, ttl time.Duration) (string, time.Time, error) {
	if s.signErr != nil {
		return "", time.Time{}, s.signErr
	}
	return "token-for-" + a.ID, time.Now().Add(ttl), nil
}

func (s *fakeSigner) VerifySessionToken(token string) (TokenClaims, error) {
	id := strings.TrimPrefix(token, "token-for-")
	if id == token {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return TokenClaims{AccountID: id}, nil
}

// ---------- fake one-time token store ----------

type fakeTokenStore struct {
	mu      sync.Mutex
	saved   map[string]string
	saveErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{saved: make(map[string]string)}
}

func (s *fakeTokenStore) Save(_ context.Context, token, accountID string, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[token] = accountID
	return nil
}

func (s *fakeTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.saved[token]
	if !ok {
		return "", domain.ErrVerifyTokenNotFound()
	}
	delete(s.saved, token)
	return id, nil
}

// ---------- fake publisher ----------

type fakePublisher struct {
	mu     sync.Mutex
	events []RegisteredEvent
	err    error
}

func (p *fakePublisher) PublishRegistered(_ context.Context, evt RegisteredEvent) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

// ---------- wiring ----------

type fixture struct {
	svc    *Service
	repo   *fakeUserRepo
	hasher *fakeHasher
	signer *fakeSigner
	tokens *fakeTokenStore
	pub    *fakePublisher
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newFakeUserRepo(),
		hasher: &fakeHasher{},
		signer: &fakeSigner{},
		tokens: newFakeTokenStore(),
		pub:    &fakePublisher{},
	}
	f.svc = NewService(f.repo, f.hasher, f.signer, f.tokens, f.pub, Config{
		SessionTokenTTL:    15 * 24 * time.Hour,
		VerifyEmailBaseURL: "http://localhost:3000/verify-email?token=",
	})
	return f
}
