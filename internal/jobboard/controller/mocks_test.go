package controller

import (
	"context"
	"sync"

	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
)

// MockRepository implements every repository interface of this package. Tests
// set only the functions the operation under test is expected to call.
type MockRepository struct {
	createUser        func(context.Context, *models.User) error
	getUserByEmail    func(context.Context, string) (*models.User, error)
	userExistsByEmail func(context.Context, string) (bool, error)

	createCompanyForUser func(context.Context, *models.Company, uuid.UUID) error
	getCompany           func(context.Context, uuid.UUID) (*models.Company, error)
	updateCompany        func(context.Context, uuid.UUID, *models.CompanyUpdate) error
	setCompanyActive     func(context.Context, uuid.UUID, bool) error

	createJob      func(context.Context, *models.Job) error
	getJob         func(context.Context, uuid.UUID) (*models.Job, error)
	listActiveJobs func(context.Context) ([]*models.Job, error)
	updateJob      func(context.Context, uuid.UUID, *models.JobUpdate) error
	setJobActive   func(context.Context, uuid.UUID, bool) error
	searchJobs     func(context.Context, models.JobFilter, int, int) ([]*models.Job, int64, error)

	createApplication       func(context.Context, *models.Application) error
	applicationExists       func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	getApplication          func(context.Context, uuid.UUID) (*models.Application, error)
	listApplicationsByUser  func(context.Context, uuid.UUID) ([]*models.Application, error)
	listApplicationsByJob   func(context.Context, uuid.UUID) ([]*models.Application, error)
	updateApplicationStatus func(context.Context, uuid.UUID, models.ApplicationStatus) error
}

func (m *MockRepository) CreateUser(ctx context.Context, u *models.User) error {
	return m.createUser(ctx, u)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getUserByEmail(ctx, email)
}

func (m *MockRepository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.userExistsByEmail(ctx, email)
}

func (m *MockRepository) CreateCompanyForUser(ctx context.Context, c *models.Company, userID uuid.UUID) error {
	return m.createCompanyForUser(ctx, c, userID)
}

func (m *MockRepository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return m.getCompany(ctx, id)
}

func (m *MockRepository) UpdateCompany(ctx context.Context, id uuid.UUID, u *models.CompanyUpdate) error {
	return m.updateCompany(ctx, id, u)
}

func (m *MockRepository) SetCompanyActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.setCompanyActive(ctx, id, active)
}

func (m *MockRepository) CreateJob(ctx context.Context, j *models.Job) error {
	return m.createJob(ctx, j)
}

func (m *MockRepository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.getJob(ctx, id)
}

func (m *MockRepository) ListActiveJobs(ctx context.Context) ([]*models.Job, error) {
	return m.listActiveJobs(ctx)
}

func (m *MockRepository) UpdateJob(ctx context.Context, id uuid.UUID, u *models.JobUpdate) error {
	return m.updateJob(ctx, id, u)
}

func (m *MockRepository) SetJobActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.setJobActive(ctx, id, active)
}

func (m *MockRepository) SearchJobs(ctx context.Context, f models.JobFilter, offset, limit int) ([]*models.Job, int64, error) {
	return m.searchJobs(ctx, f, offset, limit)
}

func (m *MockRepository) CreateApplication(ctx context.Context, a *models.Application) error {
	return m.createApplication(ctx, a)
}

func (m *MockRepository) ApplicationExists(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	return m.applicationExists(ctx, jobID, userID)
}

func (m *MockRepository) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return m.getApplication(ctx, id)
}

func (m *MockRepository) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	return m.listApplicationsByUser(ctx, userID)
}

func (m *MockRepository) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	return m.listApplicationsByJob(ctx, jobID)
}

func (m *MockRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, s models.ApplicationStatus) error {
	return m.updateApplicationStatus(ctx, id, s)
}

type producedEvent struct {
	Type     events.EventType
	EntityID uuid.UUID
}

// MockProducer is a test double for the Kafka producer.
type MockProducer struct {
	mu             sync.Mutex
	producedEvents []producedEvent
}

func (m *MockProducer) Produce(eventType events.EventType, entityID uuid.UUID, _ any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.producedEvents = append(m.producedEvents, producedEvent{eventType, entityID})
}

func (m *MockProducer) types() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.EventType, 0, len(m.producedEvents))
	for _, ev := range m.producedEvents {
		out = append(out, ev.Type)
	}
	return out
}

func employer(companyID *uuid.UUID) *models.Identity {
	return &models.Identity{ID: uuid.New(), Name: "Erin", Email: "erin@example.com", Role: models.RoleEmployer, CompanyID: companyID}
}

func applicant() *models.Identity {
	return &models.Identity{ID: uuid.New(), Name: "Alex", Email: "alex@example.com", Role: models.RoleApplicant}
}
