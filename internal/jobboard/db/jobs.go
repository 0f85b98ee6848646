package db

import (
	"context"
	"errors"
	"strings"
	"time"

	records "github.com/gartstein/jobboard/internal/jobboard/db/models"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	rec := jobRecord(job)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	job.CreatedAt, job.UpdatedAt = rec.CreatedAt, rec.UpdatedAt
	return nil
}

// GetJob loads a job with its company and poster regardless of whether it is
// active.
func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job records.Job
	result := r.db.WithContext(ctx).
		Preload("Company").
		Preload("PostedBy").
		First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return toJob(&job), nil
}

// ListActiveJobs returns every active job, newest first.
func (r *Repository) ListActiveJobs(ctx context.Context) ([]*models.Job, error) {
	var jobs []records.Job
	result := r.db.WithContext(ctx).
		Preload("Company").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return toJobs(jobs), nil
}

// UpdateJob writes the supplied fields of update. Fields with Set false are
// left unchanged; Set with a nil Value stores NULL.
func (r *Repository) UpdateJob(ctx context.Context, id uuid.UUID, update *models.JobUpdate) error {
	var rec records.Job
	var columns []string

	text := []struct {
		value  *string
		dst    *string
		column string
	}{
		{update.Title, &rec.Title, "title"},
		{update.Description, &rec.Description, "description"},
		{update.Location, &rec.Location, "location"},
		{update.JobType, &rec.JobType, "job_type"},
		{update.EmploymentType, &rec.EmploymentType, "employment_type"},
		{update.Category, &rec.Category, "category"},
	}
	for _, f := range text {
		if f.value != nil {
			*f.dst = *f.value
			columns = append(columns, f.column)
		}
	}
	if update.Tags != nil {
		rec.Tags = update.Tags
		columns = append(columns, "tags")
	}

	ints := []struct {
		field  models.Field[int]
		dst    **int
		column string
	}{
		{update.MinSalary, &rec.MinSalary, "min_salary"},
		{update.MaxSalary, &rec.MaxSalary, "max_salary"},
		{update.ApplicationQuota, &rec.ApplicationQuota, "application_quota"},
	}
	for _, f := range ints {
		if f.field.Set {
			*f.dst = f.field.Value
			columns = append(columns, f.column)
		}
	}
	if update.ExpiresAt.Set {
		rec.ExpiresAt = update.ExpiresAt.Value
		columns = append(columns, "expires_at")
	}

	if len(columns) == 0 {
		return nil
	}
	rec.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	result := r.db.WithContext(ctx).Model(&records.Job{}).
		Where("id = ?", id).
		Select(columns).
		Updates(&rec)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) SetJobActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).Model(&records.Job{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// SearchJobs returns one page of active jobs of active companies matching
// filter, newest first, together with the total number of matches.
func (r *Repository) SearchJobs(ctx context.Context, filter models.JobFilter, offset, limit int) ([]*models.Job, int64, error) {
	var total int64
	if err := r.searchQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []records.Job
	result := r.searchQuery(ctx, filter).
		Select("jobs.*").
		Preload("Company").
		Order("jobs.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return toJobs(jobs), total, nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchQuery builds the predicate shared by the count and the page query.
func (r *Repository) searchQuery(ctx context.Context, filter models.JobFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&records.Job{}).
		Joins("JOIN companies ON companies.id = jobs.company_id").
		Where("jobs.is_active = ? AND companies.is_active = ?", true, true)

	if filter.Category != "" {
		q = q.Where("jobs.category = ?", filter.Category)
	}
	if filter.JobType != "" {
		q = q.Where("jobs.job_type = ?", filter.JobType)
	}
	if filter.EmploymentType != "" {
		q = q.Where("jobs.employment_type = ?", filter.EmploymentType)
	}
	if filter.JobLocation != "" {
		q = q.Where("jobs.location = ?", filter.JobLocation)
	}
	if filter.CompanyLocation != "" {
		q = q.Where("companies.location = ?", filter.CompanyLocation)
	}
	if filter.Tags != "" {
		q = q.Where(`LOWER(jobs.tags) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(filter.Tags))+"%")
	}
	return q
}
