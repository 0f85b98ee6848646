package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgNoCompany         = "No company profile found for this user"
	msgCompanyGone       = "Company profile not found or no longer active"
	msgCompanyNotFound   = "Company profile not found"
	msgAlreadyHasCompany = "You already have a company profile"
)

// CompanyService manages the company profile of the calling employer.
type CompanyService struct {
	repo     CompanyRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewCompanyService(repo CompanyRepository, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
	}
}

// Create adds a company profile and links it to the caller. An employer can
// create at most one.
func (s *CompanyService) Create(ctx context.Context, identity *models.Identity, company *models.Company) (*models.Company, error) {
	if err := auth.RequireRole(identity, MsgCreateCompanyRole, models.RoleEmployer); err != nil {
		return nil, err
	}
	if identity.CompanyID != nil {
		return nil, e.New(e.ErrConflict, msgAlreadyHasCompany)
	}
	if company.Name == "" || company.Description == "" || company.Location == "" || company.Website == "" {
		return nil, e.New(e.ErrBadRequest, "Name, description, location and website are required")
	}

	company.ID = uuid.New()
	company.IsActive = true
	if err := s.repo.CreateCompanyForUser(ctx, company, identity.ID); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, e.New(e.ErrConflict, msgAlreadyHasCompany)
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.producer.Produce(events.CompanyCreated, company.ID, company)
	return company, nil
}

// GetMine returns the caller's company, active or not.
func (s *CompanyService) GetMine(ctx context.Context, identity *models.Identity) (*models.Company, error) {
	if err := auth.RequireRole(identity, "Access denied: Only employers can view company profiles", models.RoleEmployer); err != nil {
		return nil, err
	}
	if identity.CompanyID == nil {
		return nil, e.New(e.ErrNotFound, msgNoCompany)
	}

	company, err := s.repo.GetCompany(ctx, *identity.CompanyID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, msgCompanyGone)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// Update applies the supplied fields of update to the caller's company.
func (s *CompanyService) Update(ctx context.Context, identity *models.Identity, update *models.CompanyUpdate) (*models.Company, error) {
	if err := auth.RequireRole(identity, MsgUpdateCompanyRole, models.RoleEmployer); err != nil {
		return nil, err
	}
	if identity.CompanyID == nil {
		return nil, e.New(e.ErrNotFound, msgNoCompany)
	}
	id := *identity.CompanyID

	if !update.IsEmpty() {
		if err := s.repo.UpdateCompany(ctx, id, update); err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return nil, e.New(e.ErrNotFound, msgCompanyGone)
			}
			return nil, fmt.Errorf("failed to update company: %w", err)
		}
	}

	updated, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, msgCompanyGone)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if !update.IsEmpty() {
		s.producer.Produce(events.CompanyUpdated, id, updated)
	}
	return updated, nil
}

// Deactivate soft-deletes the caller's company. Deactivating an inactive
// company succeeds.
func (s *CompanyService) Deactivate(ctx context.Context, identity *models.Identity) (*models.Company, error) {
	if err := auth.RequireRole(identity, "Access denied: Only employers can deactivate company profiles", models.RoleEmployer); err != nil {
		return nil, err
	}
	if identity.CompanyID == nil {
		return nil, e.New(e.ErrNotFound, msgNoCompany)
	}
	id := *identity.CompanyID

	if err := s.repo.SetCompanyActive(ctx, id, false); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, msgCompanyNotFound)
		}
		return nil, fmt.Errorf("failed to deactivate company: %w", err)
	}

	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	s.producer.Produce(events.CompanyDeactivated, id, company)
	return company, nil
}

// Reactivate restores an inactive company.
func (s *CompanyService) Reactivate(ctx context.Context, identity *models.Identity) (*models.Company, error) {
	if err := auth.RequireRole(identity, "Access denied: Only employers can reactivate company profiles", models.RoleEmployer); err != nil {
		return nil, err
	}
	if identity.CompanyID == nil {
		return nil, e.New(e.ErrNotFound, msgNoCompany)
	}
	id := *identity.CompanyID

	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrNotFound, msgCompanyNotFound)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if company.IsActive {
		return nil, e.New(e.ErrInvalidState, "Company profile is already active")
	}

	if err := s.repo.SetCompanyActive(ctx, id, true); err != nil {
		return nil, fmt.Errorf("failed to reactivate company: %w", err)
	}
	company.IsActive = true

	s.producer.Produce(events.CompanyReactivated, id, company)
	return company, nil
}
