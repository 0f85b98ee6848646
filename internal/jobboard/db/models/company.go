// Package models contains the persistence records of the job board,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a company profile in the database. Rows are never
// deleted; is_active carries the soft-delete state.
type Company struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name        string            `gorm:"size:255;not null"`
	Description string            `gorm:"type:text"`
	Location    string            `gorm:"size:255;index"`
	Website     string            `gorm:"size:512"`
	LogoURL     *string           `gorm:"size:1024"`
	Mission     *string           `gorm:"type:text"`
	SocialLinks map[string]string `gorm:"serializer:json"`
	IsActive    bool              `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Users []User `gorm:"foreignKey:CompanyID"`
}
