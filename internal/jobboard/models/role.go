// Package models defines the core domain models of the job board: users and
// their roles, companies, jobs and applications, plus the patch and filter
// types the services accept.
package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account types.
type Role string

const (
	// RoleApplicant can apply to jobs and see their own applications.
	RoleApplicant Role = "APPLICANT"
	// RoleEmployer owns a company profile, posts jobs and triages applications.
	RoleEmployer Role = "EMPLOYER"
)

// Roles lists every valid role in display order.
func Roles() []Role {
	return []Role{RoleApplicant, RoleEmployer}
}

// ParseRole normalises s to upper case and validates it. It is the only way
// external input becomes a Role. The error text is shown to API callers.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		names := make([]string, 0, len(Roles()))
		for _, r := range Roles() {
			names = append(names, string(r))
		}
		return "", fmt.Errorf("Invalid role: %q. Valid roles are: %s", s, strings.Join(names, ", "))
	}
	return role, nil
}

// IsValid reports whether r is one of the predefined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleApplicant, RoleEmployer:
		return true
	default:
		return false
	}
}

// In reports whether r is a member of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
