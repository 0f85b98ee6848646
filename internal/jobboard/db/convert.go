package db

import (
	records "github.com/gartstein/jobboard/internal/jobboard/db/models"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

func userRecord(u *models.User) *records.User {
	return &records.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CompanyID:    u.CompanyID,
		ResumeURL:    u.ResumeURL,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUser(rec *records.User) *models.User {
	if rec == nil {
		return nil
	}
	return &models.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Role:         models.Role(rec.Role),
		CompanyID:    rec.CompanyID,
		ResumeURL:    rec.ResumeURL,
		Bio:          rec.Bio,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func companyRecord(c *models.Company) *records.Company {
	return &records.Company{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		Website:     c.Website,
		LogoURL:     c.LogoURL,
		Mission:     c.Mission,
		SocialLinks: c.SocialLinks,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCompany(rec *records.Company) *models.Company {
	if rec == nil {
		return nil
	}
	return &models.Company{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Location:    rec.Location,
		Website:     rec.Website,
		LogoURL:     rec.LogoURL,
		Mission:     rec.Mission,
		SocialLinks: rec.SocialLinks,
		IsActive:    rec.IsActive,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func jobRecord(j *models.Job) *records.Job {
	return &records.Job{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		Location:         j.Location,
		JobType:          j.JobType,
		EmploymentType:   j.EmploymentType,
		MinSalary:        j.MinSalary,
		MaxSalary:        j.MaxSalary,
		Category:         j.Category,
		Tags:             j.Tags,
		ApplicationQuota: j.ApplicationQuota,
		ExpiresAt:        j.ExpiresAt,
		IsActive:         j.IsActive,
		CompanyID:        j.CompanyID,
		PostedByID:       j.PostedByID,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

func toJob(rec *records.Job) *models.Job {
	if rec == nil {
		return nil
	}
	return &models.Job{
		ID:               rec.ID,
		Title:            rec.Title,
		Description:      rec.Description,
		Location:         rec.Location,
		JobType:          rec.JobType,
		EmploymentType:   rec.EmploymentType,
		MinSalary:        rec.MinSalary,
		MaxSalary:        rec.MaxSalary,
		Category:         rec.Category,
		Tags:             rec.Tags,
		ApplicationQuota: rec.ApplicationQuota,
		ExpiresAt:        rec.ExpiresAt,
		IsActive:         rec.IsActive,
		CompanyID:        rec.CompanyID,
		PostedByID:       rec.PostedByID,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
		Company:          toCompany(rec.Company),
		PostedBy:         toUser(rec.PostedBy),
	}
}

func toJobs(recs []records.Job) []*models.Job {
	jobs := make([]*models.Job, 0, len(recs))
	for i := range recs {
		jobs = append(jobs, toJob(&recs[i]))
	}
	return jobs
}

func applicationRecord(a *models.Application) *records.Application {
	return &records.Application{
		ID:          a.ID,
		ResumeURL:   a.ResumeURL,
		CoverLetter: a.CoverLetter,
		JobID:       a.JobID,
		UserID:      a.UserID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toApplication(rec *records.Application) *models.Application {
	if rec == nil {
		return nil
	}
	return &models.Application{
		ID:          rec.ID,
		ResumeURL:   rec.ResumeURL,
		CoverLetter: rec.CoverLetter,
		JobID:       rec.JobID,
		UserID:      rec.UserID,
		Status:      models.ApplicationStatus(rec.Status),
		AppliedAt:   rec.AppliedAt,
		UpdatedAt:   rec.UpdatedAt,
		Job:         toJob(rec.Job),
		User:        toUser(rec.User),
	}
}

func toApplications(recs []records.Application) []*models.Application {
	apps := make([]*models.Application, 0, len(recs))
	for i := range recs {
		apps = append(apps, toApplication(&recs[i]))
	}
	return apps
}
