package domain

import "testing"

func TestParseRole_Accepts(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"employer", "employee", "oneTime"} {
		r, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", s, err)
		}
		if string(r) != s {
			t.Fatalf("ParseRole(%q) = %q", s, r)
		}
	}
}

func TestParseRole_Rejects(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "admin", "Employer", "onetime", "one-time"} {
		if _, err := ParseRole(s); err == nil {
			t.Fatalf("ParseRole(%q): expected error", s)
		}
		if IsValidRole(s) {
			t.Fatalf("IsValidRole(%q): expected false", s)
		}
	}
}
