package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string `json:"-"`
	Role         Role
	// CompanyID is set once, when an employer creates their company profile.
	CompanyID *uuid.UUID
	ResumeURL *string
	Bio       *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the authenticated caller, resolved from a bearer token on every
// protected request. It is never built from request bodies.
type Identity struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      Role
	CompanyID *uuid.UUID
}

// IdentityOf projects the fields of u that authorization decisions need.
func IdentityOf(u *User) *Identity {
	return &Identity{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
}

// Registration is the input of the sign-up flow.
type Registration struct {
	Name      string
	Email     string
	Password  string
	Role      string
	ResumeURL *string
	Bio       *string
}
