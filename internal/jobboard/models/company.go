package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is an employer's profile. Companies are never deleted; IsActive
// false is the soft-deleted state.
type Company struct {
	ID          uuid.UUID
	Name        string
	Description string
	Location    string
	Website     string
	LogoURL     *string
	Mission     *string
	SocialLinks map[string]string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyUpdate represents the fields that can be updated for a Company.
// Pointer types are used to allow partial updates: nil leaves the stored
// value untouched.
type CompanyUpdate struct {
	Name        *string
	Description *string
	Location    *string
	Website     *string
	LogoURL     *string
	Mission     *string
	SocialLinks *map[string]string
}

// IsEmpty reports whether the update changes nothing.
func (u *CompanyUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Location == nil &&
		u.Website == nil && u.LogoURL == nil && u.Mission == nil && u.SocialLinks == nil
}
