package handlers

import (
	"time"

	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
)

type userView struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CompanyID *uuid.UUID  `json:"companyId,omitempty"`
}

func toUserView(u *models.User) *userView {
	return &userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
}

func identityView(i *models.Identity) *userView {
	return &userView{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		Role:      i.Role,
		CompanyID: i.CompanyID,
	}
}

type companyView struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Website     string            `json:"website"`
	LogoURL     *string           `json:"logoUrl"`
	Mission     *string           `json:"mission"`
	SocialLinks map[string]string `json:"socialLinks"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toCompanyView(c *models.Company) *companyView {
	return &companyView{
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

// companyStateView is the short form returned after a deactivation.
type companyStateView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"isActive"`
}

func toCompanyStateView(c *models.Company) *companyStateView {
	return &companyStateView{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
}

// jobCompanyView is the company embedded in a job. Which fields are filled
// depends on the endpoint.
type jobCompanyView struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	LogoURL     *string `json:"logoUrl,omitempty"`
	Website     string  `json:"website,omitempty"`
	Description string  `json:"description,omitempty"`
}

type posterView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type jobView struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	JobType          string          `json:"jobType"`
	EmploymentType   string          `json:"employmentType"`
	MinSalary        *int            `json:"minSalary"`
	MaxSalary        *int            `json:"maxSalary"`
	Category         string          `json:"category"`
	Tags             *string         `json:"tags"`
	ApplicationQuota *int            `json:"applicationQuota"`
	ExpiresAt        *time.Time      `json:"expiresAt"`
	IsActive         bool            `json:"isActive"`
	CompanyID        uuid.UUID       `json:"companyId"`
	PostedByID       uuid.UUID       `json:"postedById"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Company          *jobCompanyView `json:"company,omitempty"`
	PostedBy         *posterView     `json:"postedBy,omitempty"`
}

// jobDetail selects how much of the company a job view carries.
type jobDetail int

const (
	jobDetailNone jobDetail = iota
	jobDetailSearch
	jobDetailList
	jobDetailFull
)

func toJobView(j *models.Job, detail jobDetail) *jobView {
	view := &jobView{
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

	if c := j.Company; c != nil && detail != jobDetailNone {
		view.Company = &jobCompanyView{Name: c.Name, Location: c.Location}
		if detail >= jobDetailList {
			view.Company.LogoURL = c.LogoURL
		}
		if detail == jobDetailFull {
			view.Company.Website = c.Website
			view.Company.Description = c.Description
		}
	}
	if p := j.PostedBy; p != nil && detail == jobDetailFull {
		view.PostedBy = &posterView{Name: p.Name, Email: p.Email}
	}
	return view
}

func toJobViews(jobs []*models.Job, detail jobDetail) []*jobView {
	views := make([]*jobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, toJobView(j, detail))
	}
	return views
}

type pageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	TotalJobs  int64 `json:"totalJobs"`
}

type applicationJobView struct {
	Title    string                  `json:"title"`
	Location string                  `json:"location"`
	Company  *applicationCompanyView `json:"company,omitempty"`
}

type applicationCompanyView struct {
	Name string `json:"name"`
}

type applicantView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ResumeURL *string   `json:"resumeUrl"`
	Bio       *string   `json:"bio"`
}

type applicationView struct {
	ID          uuid.UUID                `json:"id"`
	ResumeURL   string                   `json:"resumeUrl"`
	CoverLetter string                   `json:"coverLetter"`
	JobID       uuid.UUID                `json:"jobId"`
	UserID      uuid.UUID                `json:"userId"`
	Status      models.ApplicationStatus `json:"status"`
	AppliedAt   time.Time                `json:"appliedAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	Job         *applicationJobView      `json:"job,omitempty"`
	User        *applicantView           `json:"user,omitempty"`
}

func toApplicationView(a *models.Application) *applicationView {
	view := &applicationView{
		ID:          a.ID,
		ResumeURL:   a.ResumeURL,
		CoverLetter: a.CoverLetter,
		JobID:       a.JobID,
		UserID:      a.UserID,
		Status:      a.Status,
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if j := a.Job; j != nil {
		view.Job = &applicationJobView{Title: j.Title, Location: j.Location}
		if j.Company != nil {
			view.Job.Company = &applicationCompanyView{Name: j.Company.Name}
		}
	}
	if u := a.User; u != nil {
		view.User = &applicantView{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			ResumeURL: u.ResumeURL,
			Bio:       u.Bio,
		}
	}
	return view
}

func toApplicationViews(apps []*models.Application) []*applicationView {
	views := make([]*applicationView, 0, len(apps))
	for _, a := range apps {
		views = append(views, toApplicationView(a))
	}
	return views
}
