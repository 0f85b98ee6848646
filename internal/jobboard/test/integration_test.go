package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	"github.com/gartstein/jobboard/internal/jobboard/controller"
	"github.com/gartstein/jobboard/internal/jobboard/db"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/handlers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
)

type recordedEvent struct {
	Type     events.EventType
	EntityID uuid.UUID
}

// recordingProducer keeps every published event in memory.
type recordingProducer struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingProducer) Produce(eventType events.EventType, entityID uuid.UUID, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, EntityID: entityID})
}

func (p *recordingProducer) has(eventType events.EventType, entityID uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ev := range p.events {
		if ev.Type == eventType && ev.EntityID == entityID {
			return true
		}
	}
	return false
}

type IntegrationTestSuite struct {
	suite.Suite
	dbRepo      *db.Repository
	producer    *recordingProducer
	server      *httptest.Server
	logger      *zap.Logger
	testTimeout time.Duration
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.logger = zap.NewNop()
	s.testTimeout = 10 * time.Second

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := db.Open(sqlite.Open(dsn))
	s.Require().NoError(err, "Database initialization failed")
	sqlDB, err := gormDB.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.dbRepo = db.NewRepositoryFromDB(gormDB)
	s.Require().NoError(s.dbRepo.Migrate())

	s.producer = &recordingProducer{}
	tokens := auth.NewTokenManager("integration-secret", time.Hour)
	gate := auth.NewGate(tokens, s.dbRepo, s.logger)
	handler := handlers.NewHandler(
		controller.NewUserService(s.dbRepo, tokens, bcrypt.MinCost, s.logger),
		controller.NewCompanyService(s.dbRepo, s.producer, s.logger),
		controller.NewJobService(s.dbRepo, s.producer, s.logger),
		controller.NewApplicationService(s.dbRepo, s.producer, s.logger),
		s.logger,
	)
	router := handlers.NewRouter(handlers.RouterConfig{}, handler, gate.Middleware(), s.logger)
	s.server = httptest.NewServer(router)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.dbRepo != nil {
		_ = s.dbRepo.Close()
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	for _, table := range []string{"applications", "jobs", "users", "companies"} {
		if err := s.dbRepo.Exec(ctx, "DELETE FROM "+table); err != nil {
			s.T().Fatal("Failed to clean database:", err)
		}
	}
}

type response struct {
	Status int
	Body   map[string]any
}

func (r response) object(key string) map[string]any {
	obj, _ := r.Body[key].(map[string]any)
	return obj
}

func (s *IntegrationTestSuite) call(method, path, token string, body any) response {
	t := s.T()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, s.server.URL+"/api"+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := response{Status: resp.StatusCode}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out.Body))
	return out
}

// signUp registers an account and logs it in, returning the bearer token.
func (s *IntegrationTestSuite) signUp(name, role string) string {
	email := fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8])
	resp := s.call(http.MethodPost, "/users/register", "", map[string]string{
		"name": name, "email": email, "password": "pa55word", "role": role,
	})
	s.Require().Equal(http.StatusCreated, resp.Status, resp.Body)

	resp = s.call(http.MethodPost, "/users/login", "", map[string]string{"email": email, "password": "pa55word"})
	s.Require().Equal(http.StatusOK, resp.Status, resp.Body)
	token, _ := resp.Body["token"].(string)
	s.Require().NotEmpty(token)
	return token
}

func (s *IntegrationTestSuite) createCompany(token, name string) string {
	resp := s.call(http.MethodPost, "/companies/create", token, map[string]string{
		"name": name, "description": "Widgets", "location": "Berlin", "website": "https://" + name + ".example",
	})
	s.Require().Equal(http.StatusCreated, resp.Status, resp.Body)
	return resp.object("company")["id"].(string)
}

func (s *IntegrationTestSuite) createJob(token, title string) string {
	resp := s.call(http.MethodPost, "/jobs/create-job", token, map[string]any{
		"title": title, "description": "Go services", "location": "Berlin", "jobType": "hybrid",
		"employmentType": "full-time", "category": "engineering", "tags": "go,kafka", "minSalary": "60000",
	})
	s.Require().Equal(http.StatusCreated, resp.Status, resp.Body)
	job := resp.object("job")
	assert.Equal(s.T(), true, job["isActive"])
	return job["id"].(string)
}

func (s *IntegrationTestSuite) apply(token, jobID string) response {
	return s.call(http.MethodPost, "/applications/jobs/"+jobID+"/apply", token, map[string]string{
		"resumeUrl": "https://cv.example/bob.pdf", "coverLetter": "I write Go.",
	})
}

// Scenario A: an employer owns at most one company.
func (s *IntegrationTestSuite) TestEmployerSingleCompany() {
	alice := s.signUp("alice", "EMPLOYER")
	companyID := s.createCompany(alice, "acme")
	s.True(s.producer.has(events.CompanyCreated, uuid.MustParse(companyID)))

	resp := s.call(http.MethodPost, "/companies/create", alice, map[string]string{
		"name": "second", "description": "d", "location": "l", "website": "w",
	})
	s.Equal(http.StatusConflict, resp.Status)
	s.Equal("You already have a company profile", resp.Body["error"])

	resp = s.call(http.MethodGet, "/companies/me", alice, nil)
	s.Equal(http.StatusOK, resp.Status)
	s.Equal("acme", resp.object("company")["name"])

	bob := s.signUp("bob", "applicant")
	resp = s.call(http.MethodPost, "/companies/create", bob, map[string]string{
		"name": "bobco", "description": "d", "location": "l", "website": "w",
	})
	s.Equal(http.StatusForbidden, resp.Status)
}

// Scenario B: one application per applicant and job.
func (s *IntegrationTestSuite) TestApplyOnce() {
	alice := s.signUp("alice", "EMPLOYER")
	s.createCompany(alice, "acme")
	jobID := s.createJob(alice, "Backend Engineer")

	bob := s.signUp("bob", "APPLICANT")
	resp := s.apply(bob, jobID)
	s.Require().Equal(http.StatusCreated, resp.Status, resp.Body)
	s.Equal("PENDING", resp.object("application")["status"])

	resp = s.apply(bob, jobID)
	s.Equal(http.StatusConflict, resp.Status)
	s.Equal("You have already applied to this job", resp.Body["error"])

	resp = s.call(http.MethodGet, "/applications/my-applications", bob, nil)
	s.Require().Equal(http.StatusOK, resp.Status)
	apps := resp.Body["applications"].([]any)
	s.Require().Len(apps, 1)
	job := apps[0].(map[string]any)["job"].(map[string]any)
	s.Equal("Backend Engineer", job["title"])
	s.Equal("acme", job["company"].(map[string]any)["name"])

	resp = s.call(http.MethodGet, "/applications/job/"+jobID+"/applicants", alice, nil)
	s.Require().Equal(http.StatusOK, resp.Status)
	s.Len(resp.Body["applicants"].([]any), 1)
}

// Scenario C: a job cannot come back while its company is inactive.
func (s *IntegrationTestSuite) TestReactivateJobOfInactiveCompany() {
	alice := s.signUp("alice", "EMPLOYER")
	s.createCompany(alice, "acme")
	jobID := s.createJob(alice, "Backend Engineer")

	resp := s.call(http.MethodDelete, "/companies/deactivate", alice, nil)
	s.Require().Equal(http.StatusOK, resp.Status)
	s.Equal(false, resp.object("company")["isActive"])

	resp = s.call(http.MethodDelete, "/jobs/"+jobID, alice, nil)
	s.Require().Equal(http.StatusOK, resp.Status)

	resp = s.call(http.MethodDelete, "/jobs/"+jobID, alice, nil)
	s.Equal(http.StatusOK, resp.Status, "deactivating twice is idempotent")

	resp = s.call(http.MethodPatch, "/jobs/reactivate/"+jobID, alice, nil)
	s.Equal(http.StatusBadRequest, resp.Status)
	s.Equal("Cannot reactivate job linked to an inactive company", resp.Body["error"])

	resp = s.call(http.MethodGet, "/jobs/"+jobID, "", nil)
	s.Equal(http.StatusNotFound, resp.Status)

	resp = s.call(http.MethodPatch, "/companies/me/reactivate", alice, nil)
	s.Require().Equal(http.StatusOK, resp.Status)
	resp = s.call(http.MethodPatch, "/companies/me/reactivate", alice, nil)
	s.Equal(http.StatusBadRequest, resp.Status)
	s.Equal("Company profile is already active", resp.Body["error"])

	resp = s.call(http.MethodPatch, "/jobs/reactivate/"+jobID, alice, nil)
	s.Equal(http.StatusOK, resp.Status)
	s.True(s.producer.has(events.JobReactivated, uuid.MustParse(jobID)))
}

// Scenario D: only the poster can reactivate a job.
func (s *IntegrationTestSuite) TestReactivateJobNotOwner() {
	alice := s.signUp("alice", "EMPLOYER")
	s.createCompany(alice, "acme")
	jobID := s.createJob(alice, "Backend Engineer")
	s.Require().Equal(http.StatusOK, s.call(http.MethodDelete, "/jobs/"+jobID, alice, nil).Status)

	carol := s.signUp("carol", "EMPLOYER")
	s.createCompany(carol, "globex")

	resp := s.call(http.MethodPatch, "/jobs/reactivate/"+jobID, carol, nil)
	s.Equal(http.StatusForbidden, resp.Status)
	s.Equal("You can only reactivate jobs you posted", resp.Body["error"])

	resp = s.call(http.MethodPut, "/jobs/"+jobID, carol, map[string]string{"title": "Mine now"})
	s.Equal(http.StatusForbidden, resp.Status)
}

// Scenario E: status input is case-insensitive.
func (s *IntegrationTestSuite) TestUpdateApplicationStatus() {
	alice := s.signUp("alice", "EMPLOYER")
	s.createCompany(alice, "acme")
	jobID := s.createJob(alice, "Backend Engineer")
	bob := s.signUp("bob", "APPLICANT")
	resp := s.apply(bob, jobID)
	s.Require().Equal(http.StatusCreated, resp.Status)
	appID := resp.object("application")["id"].(string)

	resp = s.call(http.MethodPatch, "/applications/"+appID+"/status", alice, map[string]string{"status": "accepted"})
	s.Require().Equal(http.StatusOK, resp.Status, resp.Body)
	s.Equal("ACCEPTED", resp.object("application")["status"])
	s.True(s.producer.has(events.ApplicationStatusChanged, uuid.MustParse(appID)))

	resp = s.call(http.MethodPatch, "/applications/"+appID+"/status", bob, map[string]string{"status": "accepted"})
	s.Equal(http.StatusForbidden, resp.Status)
}

func (s *IntegrationTestSuite) TestSearchJobs() {
	alice := s.signUp("alice", "EMPLOYER")
	s.createCompany(alice, "acme")
	for i := 0; i < 12; i++ {
		s.createJob(alice, fmt.Sprintf("Job %02d", i))
	}

	resp := s.call(http.MethodGet, "/jobs?page=2&limit=5&tags=KAFKA&companyLocation=Berlin", "", nil)
	s.Require().Equal(http.StatusOK, resp.Status)
	s.Len(resp.Body["jobs"].([]any), 5)
	meta := resp.object("meta")
	s.EqualValues(2, meta["page"])
	s.EqualValues(3, meta["totalPages"])
	s.EqualValues(12, meta["totalJobs"])

	resp = s.call(http.MethodGet, "/jobs?category=design", "", nil)
	s.Require().Equal(http.StatusOK, resp.Status)
	s.Empty(resp.Body["jobs"])

	resp = s.call(http.MethodGet, "/jobs/all", "", nil)
	s.Require().Equal(http.StatusOK, resp.Status)
	s.Len(resp.Body["jobs"].([]any), 12)
}

func (s *IntegrationTestSuite) TestAuthGate() {
	resp := s.call(http.MethodGet, "/protected", "", nil)
	s.Equal(http.StatusUnauthorized, resp.Status)
	s.Equal("Not authorized, token missing", resp.Body["error"])

	resp = s.call(http.MethodGet, "/protected", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, resp.Status)
	s.Equal("Not authorized, token invalid", resp.Body["error"])

	alice := s.signUp("alice", "EMPLOYER")
	resp = s.call(http.MethodGet, "/protected", alice, nil)
	s.Require().Equal(http.StatusOK, resp.Status)
	s.Equal("Hello alice, you have access to this protected route!", resp.Body["message"])

	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()
	s.Require().NoError(s.dbRepo.Exec(ctx, "DELETE FROM users"))
	resp = s.call(http.MethodGet, "/protected", alice, nil)
	s.Equal(http.StatusUnauthorized, resp.Status)
	s.Equal("Not authorized, user not found", resp.Body["error"])
}
