package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. CompanyID back-links an employer to the
// company profile they created.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"size:255;not null"`
	Email        string     `gorm:"size:320;not null;uniqueIndex"`
	PasswordHash string     `gorm:"size:255;not null"`
	Role         string     `gorm:"size:16;not null"`
	CompanyID    *uuid.UUID `gorm:"type:uuid;index"`
	ResumeURL    *string    `gorm:"size:1024"`
	Bio          *string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Company *Company `gorm:"foreignKey:CompanyID"`
}
