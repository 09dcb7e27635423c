package memory

import (
	"context"
	"testing"

	"github.com/jobhive/auth-service/internal/application/identity"
	"github.com/jobhive/auth-service/internal/domain"
)

func seed(t *testing.T, r *UserRepo, id, name, email string) domain.Account {
	t.Helper()
	a, err := r.Create(context.Background(), domain.Account{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$12$hash",
		Role:         domain.RoleEmployee,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
	return a
}

func TestCreateEnforcesUniqueness(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	seed(t, r, "acc-1", "First User", "first@example.com")

	_, err := r.Create(context.Background(), domain.Account{
		ID: "acc-2", Name: "Other", Email: "First@Example.com", PasswordHash: "h", Role: domain.RoleEmployer,
	})
	if !domain.Is(err, "duplicate_email") {
		t.Fatalf("err = %v, want duplicate_email", err)
	}

	_, err = r.Create(context.Background(), domain.Account{
		ID: "acc-3", Name: "First User", Email: "other@example.com", PasswordHash: "h", Role: domain.RoleEmployer,
	})
	if !domain.Is(err, "duplicate_name") {
		t.Fatalf("err = %v, want duplicate_name", err)
	}
}

func TestFindOneMatchesNameOrEmail(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	seed(t, r, "acc-1", "First User", "first@example.com")

	byName, err := r.FindOne(context.Background(), identity.UserQuery{Name: "First User"})
	if err != nil || byName.ID != "acc-1" {
		t.Fatalf("by name: account %+v, err %v", byName, err)
	}

	byEmail, err := r.FindOne(context.Background(), identity.UserQuery{Email: "first@example.com"})
	if err != nil || byEmail.ID != "acc-1" {
		t.Fatalf("by email: account %+v, err %v", byEmail, err)
	}

	_, err = r.FindOne(context.Background(), identity.UserQuery{Name: "nobody"})
	if !domain.Is(err, "account_not_found") {
		t.Fatalf("err = %v, want account_not_found", err)
	}
}

func TestUpdateAllowsKeepingOwnValues(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	a := seed(t, r, "acc-1", "First User", "first@example.com")

	// same name, new email; own name must not count as a conflict
	a.Email = "renamed@example.com"
	updated, err := r.Update(context.Background(), a)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Email != "renamed@example.com" {
		t.Fatalf("email = %q", updated.Email)
	}

	// old email is released
	_, err = r.FindOne(context.Background(), identity.UserQuery{Email: "first@example.com"})
	if !domain.Is(err, "account_not_found") {
		t.Fatalf("old email still resolves: %v", err)
	}
}

func TestUpdateRejectsTakenValues(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	seed(t, r, "acc-1", "First User", "first@example.com")
	b := seed(t, r, "acc-2", "Second User", "second@example.com")

	b.Name = "First User"
	_, err := r.Update(context.Background(), b)
	if !domain.Is(err, "duplicate_name") {
		t.Fatalf("err = %v, want duplicate_name", err)
	}
}

func TestPasswordAndVerifiedUpdates(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	seed(t, r, "acc-1", "First User", "first@example.com")

	if err := r.UpdatePasswordHash(context.Background(), "acc-1", "$2a$12$new"); err != nil {
		t.Fatalf("UpdatePasswordHash: %v", err)
	}
	if err := r.SetVerified(context.Background(), "acc-1"); err != nil {
		t.Fatalf("SetVerified: %v", err)
	}

	a, err := r.FindByID(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if a.PasswordHash != "$2a$12$new" || !a.Verified {
		t.Fatalf("unexpected account: %+v", a)
	}

	if err := r.UpdatePasswordHash(context.Background(), "missing", "h"); !domain.Is(err, "account_not_found") {
		t.Fatalf("err = %v, want account_not_found", err)
	}
}
