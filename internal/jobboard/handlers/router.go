package handlers

import (
	"context"
	"net/http"

	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultBasePath = "/api"

// UserController defines the account operations the REST API exposes.
type UserController interface {
	Register(ctx context.Context, reg *models.Registration) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// CompanyController defines the company profile operations.
type CompanyController interface {
	Create(ctx context.Context, identity *models.Identity, company *models.Company) (*models.Company, error)
	GetMine(ctx context.Context, identity *models.Identity) (*models.Company, error)
	Update(ctx context.Context, identity *models.Identity, update *models.CompanyUpdate) (*models.Company, error)
	Deactivate(ctx context.Context, identity *models.Identity) (*models.Company, error)
	Reactivate(ctx context.Context, identity *models.Identity) (*models.Company, error)
}

// JobController defines the job posting and search operations.
type JobController interface {
	Create(ctx context.Context, identity *models.Identity, job *models.Job) (*models.Job, error)
	List(ctx context.Context) ([]*models.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, identity *models.Identity, id uuid.UUID, update *models.JobUpdate) (*models.Job, error)
	Deactivate(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Job, error)
	Reactivate(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Job, error)
	Search(ctx context.Context, filter models.JobFilter, page models.PageRequest) (*models.JobPage, error)
}

// ApplicationController defines the application operations.
type ApplicationController interface {
	Apply(ctx context.Context, identity *models.Identity, jobID uuid.UUID, input *models.ApplicationInput) (*models.Application, error)
	ListMine(ctx context.Context, identity *models.Identity) ([]*models.Application, error)
	ListForJob(ctx context.Context, identity *models.Identity, jobID uuid.UUID) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, identity *models.Identity, id uuid.UUID, status string) (*models.Application, error)
}

// Handler maps REST requests onto the job board services.
type Handler struct {
	users        UserController
	companies    CompanyController
	jobs         JobController
	applications ApplicationController
	logger       *zap.Logger
}

// NewHandler constructs a Handler over the given services.
func NewHandler(
	users UserController,
	companies CompanyController,
	jobs JobController,
	applications ApplicationController,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		users:        users,
		companies:    companies,
		jobs:         jobs,
		applications: applications,
		logger:       logger.Named("http_handler"),
	}
}

// RouterConfig holds the options of the REST router.
type RouterConfig struct {
	BasePath    string
	CORSOrigins []string
}

// NewRouter builds the gin engine. requireAuth guards every route that needs
// a caller identity.
func NewRouter(cfg RouterConfig, h *Handler, requireAuth gin.HandlerFunc, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(logger), CORS(cfg.CORSOrigins))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}
	api := router.Group(basePath)

	users := api.Group("/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)

	api.GET("/protected", requireAuth, h.Protected)

	companies := api.Group("/companies", requireAuth)
	companies.POST("/create", h.CreateCompany)
	companies.GET("/me", h.GetMyCompany)
	companies.PUT("/me", h.UpdateCompany)
	companies.DELETE("/deactivate", h.DeactivateCompany)
	companies.PATCH("/me/reactivate", h.ReactivateCompany)

	jobs := api.Group("/jobs")
	jobs.GET("", h.SearchJobs)
	jobs.GET("/all", h.ListJobs)
	jobs.GET("/:id", h.GetJob)
	jobs.POST("/create-job", requireAuth, h.CreateJob)
	jobs.PUT("/:id", requireAuth, h.UpdateJob)
	jobs.DELETE("/:id", requireAuth, h.DeactivateJob)
	jobs.PATCH("/reactivate/:id", requireAuth, h.ReactivateJob)

	applications := api.Group("/applications", requireAuth)
	applications.POST("/jobs/:id/apply", h.Apply)
	applications.GET("/my-applications", h.MyApplications)
	applications.GET("/job/:id/applicants", h.JobApplicants)
	applications.PATCH("/:id/status", h.UpdateApplicationStatus)

	return router
}

// parseID reads the :id path parameter. A malformed id parses to uuid.Nil,
// which no row carries, so it takes each operation's not-found path.
func parseID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}
