package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgJobNotFound       = "Job not found"
	msgJobGone           = "Job not found or no longer active"
	msgFillRequired      = "Please fill all required fields"
	msgOnlyUpdateOwn     = "You can only update jobs you posted"
	msgInactiveCompany   = "Cannot reactivate job linked to an inactive company"
	msgJobAlreadyActive  = "Job is already active"
	msgCompanyBeforeJobs = "Please create your company profile before posting a job"
)

// JobService manages job postings and the public job listing.
type JobService struct {
	repo     JobRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewJobService(repo JobRepository, producer EventProducer, logger *zap.Logger) *JobService {
	return &JobService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("job_service"),
	}
}

// Create posts a job for the caller's company.
func (s *JobService) Create(ctx context.Context, identity *models.Identity, job *models.Job) (*models.Job, error) {
	if err := auth.RequireRole(identity, MsgPostJobRole, models.RoleEmployer); err != nil {
		return nil, err
	}
	if identity.CompanyID == nil {
		return nil, e.New(e.ErrBadRequest, msgCompanyBeforeJobs)
	}
	if job.MissingRequired() {
		return nil, e.New(e.ErrBadRequest, msgFillRequired)
	}

	job.ID = uuid.New()
	job.IsActive = true
	job.CompanyID = *identity.CompanyID
	job.PostedByID = identity.ID
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.producer.Produce(events.JobCreated, job.ID, job)
	return job, nil
}

// List returns every active job, newest first.
func (s *JobService) List(ctx context.Context) ([]*models.Job, error) {
	jobs, err := s.repo.ListActiveJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Get returns an active job. Inactive jobs are indistinguishable from
// missing ones.
func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, msgJobGone)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if !job.IsActive {
		return nil, e.New(e.ErrNotFound, msgJobGone)
	}
	return job, nil
}

// Update changes the supplied fields of a job the caller posted. A missing
// job is reported the same way as someone else's.
func (s *JobService) Update(ctx context.Context, identity *models.Identity, id uuid.UUID, update *models.JobUpdate) (*models.Job, error) {
	if err := auth.RequireRole(identity, MsgUpdateJobRole, models.RoleEmployer); err != nil {
		return nil, err
	}

	job, err := s.repo.GetJob(ctx, id)
	if err != nil && !errors.Is(err, e.ErrNotFound) {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil || job.PostedByID != identity.ID {
		return nil, e.New(e.ErrForbidden, msgOnlyUpdateOwn)
	}
	if update.BlanksRequired() {
		return nil, e.New(e.ErrBadRequest, msgFillRequired)
	}

	if err := s.repo.UpdateJob(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	updated, err := s.repo.GetJob(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get job after update",
			zap.Error(err),
			zap.String("job_id", id.String()),
		)
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	s.producer.Produce(events.JobUpdated, id, updated)
	return updated, nil
}

// Deactivate hides a job the caller posted. Deactivating an inactive job
// succeeds.
func (s *JobService) Deactivate(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Job, error) {
	if err := auth.RequireRole(identity, "Only employers can deactivate jobs", models.RoleEmployer); err != nil {
		return nil, err
	}

	job, err := s.getOwned(ctx, identity, id, "You can only deactivate jobs you posted")
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetJobActive(ctx, id, false); err != nil {
		return nil, fmt.Errorf("failed to deactivate job: %w", err)
	}
	job.IsActive = false

	s.producer.Produce(events.JobDeactivated, id, job)
	return job, nil
}

// Reactivate restores an inactive job. The company must be active, and that
// is checked before ownership.
func (s *JobService) Reactivate(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Job, error) {
	if err := auth.RequireRole(identity, "Only employers can reactivate jobs", models.RoleEmployer); err != nil {
		return nil, err
	}

	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, msgJobNotFound)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.Company == nil || !job.Company.IsActive {
		return nil, e.New(e.ErrInvalidState, msgInactiveCompany)
	}
	if job.PostedByID != identity.ID {
		return nil, e.New(e.ErrForbidden, "You can only reactivate jobs you posted")
	}
	if job.IsActive {
		return nil, e.New(e.ErrInvalidState, msgJobAlreadyActive)
	}

	if err := s.repo.SetJobActive(ctx, id, true); err != nil {
		return nil, fmt.Errorf("failed to reactivate job: %w", err)
	}
	job.IsActive = true

	s.producer.Produce(events.JobReactivated, id, job)
	return job, nil
}

// Search returns one page of active jobs at active companies.
func (s *JobService) Search(ctx context.Context, filter models.JobFilter, page models.PageRequest) (*models.JobPage, error) {
	page = page.Normalize()

	jobs, total, err := s.repo.SearchJobs(ctx, filter, page.Offset(), page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	return models.NewJobPage(jobs, page, total), nil
}

func (s *JobService) getOwned(ctx context.Context, identity *models.Identity, id uuid.UUID, notOwnerMsg string) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, msgJobNotFound)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.PostedByID != identity.ID {
		return nil, e.New(e.ErrForbidden, notOwnerMsg)
	}
	return job, nil
}
