package security

import "testing"

func TestBcryptHashAndCompare(t *testing.T) {
	t.Parallel()

	// low cost keeps the test fast
	h := NewBcryptHasher(4)

	hash, err := h.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := h.Compare(hash, "s3cret-password"); err != nil {
		t.Fatalf("Compare with correct password: %v", err)
	}
	if err := h.Compare(hash, "wrong-password"); err == nil {
		t.Fatal("Compare with wrong password should fail")
	}
}

func TestBcryptHashesDiffer(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(4)

	h1, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ (random salt)")
	}
}

func TestBcryptDefaultCost(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(0)
	if h.cost != 12 {
		t.Fatalf("default cost = %d, want 12", h.cost)
	}
}
