package db

import (
	"context"
	"errors"

	records "github.com/gartstein/jobboard/internal/jobboard/db/models"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateApplication inserts app. A second application by the same user to
// the same job violates the composite unique index and returns ErrConflict.
func (r *Repository) CreateApplication(ctx context.Context, app *models.Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	rec := applicationRecord(app)
	result := r.db.WithContext(ctx).Create(rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrConflict
		}
		return result.Error
	}
	app.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *Repository) ApplicationExists(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&records.Application{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// GetApplication loads an application with the job it was submitted to.
func (r *Repository) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app records.Application
	result := r.db.WithContext(ctx).
		Preload("Job").
		First(&app, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return toApplication(&app), nil
}

// ListApplicationsByUser returns the user's applications with job and
// company, most recently applied first.
func (r *Repository) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	var apps []records.Application
	result := r.db.WithContext(ctx).
		Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&apps)
	if result.Error != nil {
		return nil, result.Error
	}
	return toApplications(apps), nil
}

// ListApplicationsByJob returns the applications to a job with the
// applicant, most recently applied first.
func (r *Repository) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	var apps []records.Application
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps)
	if result.Error != nil {
		return nil, result.Error
	}
	return toApplications(apps), nil
}

func (r *Repository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	result := r.db.WithContext(ctx).Model(&records.Application{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}
