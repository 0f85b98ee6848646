package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockUserController struct {
	register func(ctx context.Context, reg *models.Registration) (*models.User, error)
	login    func(ctx context.Context, email, password string) (string, *models.User, error)
}

func (m *mockUserController) Register(ctx context.Context, reg *models.Registration) (*models.User, error) {
	return m.register(ctx, reg)
}

func (m *mockUserController) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return m.login(ctx, email, password)
}

type mockCompanyController struct {
	create     func(ctx context.Context, identity *models.Identity, company *models.Company) (*models.Company, error)
	getMine    func(ctx context.Context, identity *models.Identity) (*models.Company, error)
	update     func(ctx context.Context, identity *models.Identity, update *models.CompanyUpdate) (*models.Company, error)
	deactivate func(ctx context.Context, identity *models.Identity) (*models.Company, error)
	reactivate func(ctx context.Context, identity *models.Identity) (*models.Company, error)
}

func (m *mockCompanyController) Create(ctx context.Context, identity *models.Identity, company *models.Company) (*models.Company, error) {
	return m.create(ctx, identity, company)
}

func (m *mockCompanyController) GetMine(ctx context.Context, identity *models.Identity) (*models.Company, error) {
	return m.getMine(ctx, identity)
}

func (m *mockCompanyController) Update(ctx context.Context, identity *models.Identity, update *models.CompanyUpdate) (*models.Company, error) {
	return m.update(ctx, identity, update)
}

func (m *mockCompanyController) Deactivate(ctx context.Context, identity *models.Identity) (*models.Company, error) {
	return m.deactivate(ctx, identity)
}

func (m *mockCompanyController) Reactivate(ctx context.Context, identity *models.Identity) (*models.Company, error) {
	return m.reactivate(ctx, identity)
}

type mockJobController struct {
	create     func(ctx context.Context, identity *models.Identity, job *models.Job) (*models.Job, error)
	list       func(ctx context.Context) ([]*models.Job, error)
	get        func(ctx context.Context, id uuid.UUID) (*models.Job, error)
	update     func(ctx context.Context, identity *models.Identity, id uuid.UUID, update *models.JobUpdate) (*models.Job, error)
	deactivate func(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Job, error)
	reactivate func(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Job, error)
	search     func(ctx context.Context, filter models.JobFilter, page models.PageRequest) (*models.JobPage, error)
}

func (m *mockJobController) Create(ctx context.Context, identity *models.Identity, job *models.Job) (*models.Job, error) {
	return m.create(ctx, identity, job)
}

func (m *mockJobController) List(ctx context.Context) ([]*models.Job, error) {
	return m.list(ctx)
}

func (m *mockJobController) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.get(ctx, id)
}

func (m *mockJobController) Update(ctx context.Context, identity *models.Identity, id uuid.UUID, update *models.JobUpdate) (*models.Job, error) {
	return m.update(ctx, identity, id, update)
}

func (m *mockJobController) Deactivate(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Job, error) {
	return m.deactivate(ctx, identity, id)
}

func (m *mockJobController) Reactivate(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Job, error) {
	return m.reactivate(ctx, identity, id)
}

func (m *mockJobController) Search(ctx context.Context, filter models.JobFilter, page models.PageRequest) (*models.JobPage, error) {
	return m.search(ctx, filter, page)
}

type mockApplicationController struct {
	apply        func(ctx context.Context, identity *models.Identity, jobID uuid.UUID, input *models.ApplicationInput) (*models.Application, error)
	listMine     func(ctx context.Context, identity *models.Identity) ([]*models.Application, error)
	listForJob   func(ctx context.Context, identity *models.Identity, jobID uuid.UUID) ([]*models.Application, error)
	updateStatus func(ctx context.Context, identity *models.Identity, id uuid.UUID, status string) (*models.Application, error)
}

func (m *mockApplicationController) Apply(ctx context.Context, identity *models.Identity, jobID uuid.UUID, input *models.ApplicationInput) (*models.Application, error) {
	return m.apply(ctx, identity, jobID, input)
}

func (m *mockApplicationController) ListMine(ctx context.Context, identity *models.Identity) ([]*models.Application, error) {
	return m.listMine(ctx, identity)
}

func (m *mockApplicationController) ListForJob(ctx context.Context, identity *models.Identity, jobID uuid.UUID) ([]*models.Application, error) {
	return m.listForJob(ctx, identity, jobID)
}

func (m *mockApplicationController) UpdateStatus(ctx context.Context, identity *models.Identity, id uuid.UUID, status string) (*models.Application, error) {
	return m.updateStatus(ctx, identity, id, status)
}

// services bundles the mocks a test router is built from. Nil fields are
// replaced with empty mocks.
type services struct {
	users        *mockUserController
	companies    *mockCompanyController
	jobs         *mockJobController
	applications *mockApplicationController
}

// fakeAuth stands in for the auth gate: it attaches identity, or rejects the
// request when identity is nil.
func fakeAuth(identity *models.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, token missing"})
			return
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func newTestRouter(t *testing.T, svc services, identity *models.Identity) *gin.Engine {
	t.Helper()
	if svc.users == nil {
		svc.users = &mockUserController{}
	}
	if svc.companies == nil {
		svc.companies = &mockCompanyController{}
	}
	if svc.jobs == nil {
		svc.jobs = &mockJobController{}
	}
	if svc.applications == nil {
		svc.applications = &mockApplicationController{}
	}
	logger := zaptest.NewLogger(t)
	h := NewHandler(svc.users, svc.companies, svc.jobs, svc.applications, logger)
	return NewRouter(RouterConfig{}, h, fakeAuth(identity), logger)
}

// do sends a request to router and decodes the JSON response body.
func do(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func employerIdentity(companyID *uuid.UUID) *models.Identity {
	return &models.Identity{ID: uuid.New(), Name: "Erin", Email: "erin@corp.example", Role: models.RoleEmployer, CompanyID: companyID}
}

func applicantIdentity() *models.Identity {
	return &models.Identity{ID: uuid.New(), Name: "Alex", Email: "alex@mail.example", Role: models.RoleApplicant}
}
