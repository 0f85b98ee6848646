// Package controller implements the core business logic (service layer)
// of the job board: accounts, company profiles, job postings and
// applications. Every operation takes the caller's identity, applies the
// role and ownership rules, talks to the repository and emits lifecycle
// events.
package controller

import (
	"context"

	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
)

// Role messages of the write operations whose request body the transport
// decodes before calling in. A caller with the wrong role gets these even
// when the body is malformed.
const (
	MsgCreateCompanyRole = "Only employers can create a company profile"
	MsgUpdateCompanyRole = "Access denied: Only employers can update company profiles"
	MsgPostJobRole       = "Only employers can post jobs"
	MsgUpdateJobRole     = "Only employers can update jobs"
	MsgApplyRole         = "Only applicants can apply to jobs"
	MsgUpdateStatusRole  = "Only employers can update application status"
)

type EventProducer interface {
	Produce(eventType events.EventType, entityID uuid.UUID, payload any)
}

// UserRepository defines the storage interface for accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CompanyRepository defines the storage interface for company profiles.
type CompanyRepository interface {
	CreateCompanyForUser(ctx context.Context, company *models.Company, userID uuid.UUID) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, update *models.CompanyUpdate) error
	SetCompanyActive(ctx context.Context, id uuid.UUID, active bool) error
}

// JobRepository defines the storage interface for job postings.
type JobRepository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListActiveJobs(ctx context.Context) ([]*models.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, update *models.JobUpdate) error
	SetJobActive(ctx context.Context, id uuid.UUID, active bool) error
	SearchJobs(ctx context.Context, filter models.JobFilter, offset, limit int) ([]*models.Job, int64, error)
}

// ApplicationRepository defines the storage interface for applications.
type ApplicationRepository interface {
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	CreateApplication(ctx context.Context, app *models.Application) error
	ApplicationExists(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
}
