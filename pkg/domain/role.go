package domain

import dErrors "udyam/pkg/domain-errors"

// Role is the sealed set of portal roles. Authorization decisions go through
// internal/authz predicates, never inline role string comparisons.
type Role string

const (
	RoleApplicant   Role = "applicant"
	RoleGovOfficial Role = "gov_official"
	RoleAdmin       Role = "admin"
)

var validRoles = map[Role]bool{
	RoleApplicant:   true,
	RoleGovOfficial: true,
	RoleAdmin:       true,
}

// ParseRole constructs a Role from external input (token claims, seeds).
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "role is required")
	}
	r := Role(s)
	if !validRoles[r] {
		return "", dErrors.New(dErrors.CodeValidation, "unsupported role: "+s)
	}
	return r, nil
}

func (r Role) IsValid() bool { return validRoles[r] }

// Actor is the authenticated principal acting on a request.
//
// RoleVerified tracks out-of-band verification of official accounts. A
// gov_official with RoleVerified=false holds the role but none of its
// privileges.
type Actor struct {
	UserID       UserID
	Role         Role
	RoleVerified bool
}

// IsZero reports whether no authenticated actor is present.
func (a Actor) IsZero() bool { return a.UserID.IsNil() }
