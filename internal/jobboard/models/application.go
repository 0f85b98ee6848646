package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the employer's decision on an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "PENDING"
	StatusAccepted ApplicationStatus = "ACCEPTED"
	StatusRejected ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus upper-cases s and validates it. Any status may move
// to any other.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusAccepted, StatusRejected:
		return status, nil
	default:
		return "", fmt.Errorf("invalid application status %q", s)
	}
}

// Application is one applicant's submission to one job.
type Application struct {
	ID          uuid.UUID
	ResumeURL   string
	CoverLetter string
	JobID       uuid.UUID
	UserID      uuid.UUID
	Status      ApplicationStatus
	AppliedAt   time.Time
	UpdatedAt   time.Time

	// Job (with its Company) and User are filled by listing reads.
	Job  *Job
	User *User
}

// ApplicationInput is what an applicant submits.
type ApplicationInput struct {
	ResumeURL   string
	CoverLetter string
}
