package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgAlreadyApplied = "You have already applied to this job"

// ApplicationService handles applicants applying to jobs and employers
// triaging the applications to their jobs.
type ApplicationService struct {
	repo     ApplicationRepository
	producer EventProducer
	logger   *zap.Logger
	now      func() time.Time
}

func NewApplicationService(repo ApplicationRepository, producer EventProducer, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("application_service"),
		now:      time.Now,
	}
}

// Apply submits the caller's application to an active job. Each applicant
// can apply to a job once.
func (s *ApplicationService) Apply(ctx context.Context, identity *models.Identity, jobID uuid.UUID, input *models.ApplicationInput) (*models.Application, error) {
	if err := auth.RequireRole(identity, MsgApplyRole, models.RoleApplicant); err != nil {
		return nil, err
	}
	if input.ResumeURL == "" || input.CoverLetter == "" {
		return nil, e.New(e.ErrBadRequest, "Resume URL and cover letter are required")
	}

	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil && !errors.Is(err, e.ErrNotFound) {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil || !job.IsActive {
		return nil, e.New(e.ErrNotFound, "Job not found or not accepting applications")
	}

	exists, err := s.repo.ApplicationExists(ctx, jobID, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check application existence: %w", err)
	}
	if exists {
		return nil, e.New(e.ErrConflict, msgAlreadyApplied)
	}

	app := &models.Application{
		ID:          uuid.New(),
		ResumeURL:   input.ResumeURL,
		CoverLetter: input.CoverLetter,
		JobID:       jobID,
		UserID:      identity.ID,
		Status:      models.StatusPending,
		AppliedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, e.New(e.ErrConflict, msgAlreadyApplied)
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.producer.Produce(events.ApplicationSubmitted, app.ID, app)
	return app, nil
}

// ListMine returns the caller's applications, most recent first.
func (s *ApplicationService) ListMine(ctx context.Context, identity *models.Identity) ([]*models.Application, error) {
	if err := auth.RequireRole(identity, "Only applicants can view their applications", models.RoleApplicant); err != nil {
		return nil, err
	}

	apps, err := s.repo.ListApplicationsByUser(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListForJob returns the applications to a job the caller posted.
func (s *ApplicationService) ListForJob(ctx context.Context, identity *models.Identity, jobID uuid.UUID) ([]*models.Application, error) {
	if err := auth.RequireRole(identity, "Only employers can view applicants for jobs", models.RoleEmployer); err != nil {
		return nil, err
	}

	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, msgJobNotFound)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.PostedByID != identity.ID {
		return nil, e.New(e.ErrForbidden, "You can only view applicants for jobs you posted")
	}

	apps, err := s.repo.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return apps, nil
}

// UpdateStatus sets the status of an application to a job the caller
// posted. Any status can move to any other.
func (s *ApplicationService) UpdateStatus(ctx context.Context, identity *models.Identity, id uuid.UUID, status string) (*models.Application, error) {
	if err := auth.RequireRole(identity, MsgUpdateStatusRole, models.RoleEmployer); err != nil {
		return nil, err
	}

	newStatus, err := models.ParseApplicationStatus(status)
	if err != nil {
		return nil, e.New(e.ErrBadRequest, "Invalid status. Must be pending, accepted, or rejected")
	}

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, "Application not found")
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app.Job == nil || app.Job.PostedByID != identity.ID {
		return nil, e.New(e.ErrForbidden, "You can only update applications for jobs you posted")
	}

	if err := s.repo.UpdateApplicationStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	updated, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get application after status change",
			zap.Error(err),
			zap.String("application_id", id.String()),
		)
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	s.producer.Produce(events.ApplicationStatusChanged, id, updated)
	return updated, nil
}
