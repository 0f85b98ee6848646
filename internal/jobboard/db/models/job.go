package models

import (
	"time"

	"github.com/google/uuid"
)

// Job represents a job posting.
type Job struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title            string    `gorm:"size:255;not null"`
	Description      string    `gorm:"type:text;not null"`
	Location         string    `gorm:"size:255;not null;index"`
	JobType          string    `gorm:"size:64;not null;index"`
	EmploymentType   string    `gorm:"size:64;not null;index"`
	MinSalary        *int      `gorm:"type:integer"`
	MaxSalary        *int      `gorm:"type:integer"`
	Category         string    `gorm:"size:128;not null;index"`
	Tags             *string   `gorm:"type:text"`
	ApplicationQuota *int      `gorm:"type:integer"`
	ExpiresAt        *time.Time
	IsActive         bool      `gorm:"not null;default:true;index"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PostedByID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time

	Company  *Company `gorm:"foreignKey:CompanyID"`
	PostedBy *User    `gorm:"foreignKey:PostedByID"`
}
