package domain

// Role is the closed set of permission tiers on the platform.
// Roles are validated at construction time; an Account never carries a
// role string outside this set.
type Role string

const (
	// Employer accounts post jobs and hire.
	RoleEmployer Role = "employer"
	// Employee accounts apply to full-time and part-time positions.
	RoleEmployee Role = "employee"
	// OneTime accounts hire for one-off gigs.
	RoleOneTime Role = "oneTime"
)

// ParseRole converts a raw string into a Role, rejecting anything outside
// the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployer, RoleEmployee, RoleOneTime:
		return Role(s), nil
	}
	return "", ErrInvalidRole(s)
}

func IsValidRole(s string) bool {
	_, err := ParseRole(s)
	return err == nil
}
