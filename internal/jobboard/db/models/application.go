package models

import (
	"time"

	"github.com/google/uuid"
)

// Application represents a submission to a job. The composite unique index
// allows one application per applicant and job.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResumeURL   string    `gorm:"size:1024"`
	CoverLetter string    `gorm:"type:text"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user;index"`
	Status      string    `gorm:"size:16;not null;default:PENDING"`
	AppliedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time

	Job  *Job  `gorm:"foreignKey:JobID"`
	User *User `gorm:"foreignKey:UserID"`
}

// All lists every record type for migrations.
func All() []any {
	return []any{&Company{}, &User{}, &Job{}, &Application{}}
}
