package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting that belongs to a company and was created by one employer.
type Job struct {
	ID               uuid.UUID
	Title            string
	Description      string
	Location         string
	JobType          string
	EmploymentType   string
	MinSalary        *int
	MaxSalary        *int
	Category         string
	Tags             *string
	ApplicationQuota *int
	ExpiresAt        *time.Time
	IsActive         bool
	CompanyID        uuid.UUID
	PostedByID       uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Company and PostedBy are filled by reads that join them.
	Company  *Company
	PostedBy *User
}

// MissingRequired reports whether any field a posting cannot exist without
// is blank.
func (j *Job) MissingRequired() bool {
	return j.Title == "" || j.Description == "" || j.Location == "" ||
		j.JobType == "" || j.EmploymentType == "" || j.Category == ""
}

// Field is a patch value for a nullable column. Set false leaves the column
// unchanged; Set true with a nil Value clears it.
type Field[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a Field that writes v.
func SetTo[T any](v *T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// JobUpdate represents the fields an owner can change on a Job. Company and
// poster are fixed at creation.
type JobUpdate struct {
	Title            *string
	Description      *string
	Location         *string
	JobType          *string
	EmploymentType   *string
	Category         *string
	Tags             *string
	MinSalary        Field[int]
	MaxSalary        Field[int]
	ApplicationQuota Field[int]
	ExpiresAt        Field[time.Time]
}

// BlanksRequired reports whether the update supplies an empty value for a
// field every job must have.
func (u *JobUpdate) BlanksRequired() bool {
	for _, f := range []*string{u.Title, u.Description, u.Location, u.JobType, u.EmploymentType, u.Category} {
		if f != nil && *f == "" {
			return true
		}
	}
	return false
}

// JobFilter narrows the public job search. Empty strings match everything.
type JobFilter struct {
	Category        string
	JobType         string
	EmploymentType  string
	Tags            string
	JobLocation     string
	CompanyLocation string
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is a 1-indexed page of a listing.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize replaces out-of-range values with the defaults and caps Limit.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// JobPage is one page of search results plus the totals for the whole match.
type JobPage struct {
	Jobs       []*Job
	Page       int
	Limit      int
	TotalPages int
	TotalJobs  int64
}

// NewJobPage computes the page metadata for total matching rows.
func NewJobPage(jobs []*Job, req PageRequest, total int64) *JobPage {
	pages := 0
	if req.Limit > 0 {
		pages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return &JobPage{
		Jobs:       jobs,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: pages,
		TotalJobs:  total,
	}
}
