package db

import (
	"context"
	"errors"
	"time"

	records "github.com/gartstein/jobboard/internal/jobboard/db/models"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCompanyForUser inserts company and links it to userID in one
// transaction. The link only succeeds while the user has no company, so two
// concurrent creates for the same user cannot both commit.
func (r *Repository) CreateCompanyForUser(ctx context.Context, company *models.Company, userID uuid.UUID) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	rec := companyRecord(company)

	err := r.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.db.Create(rec).Error; err != nil {
			return err
		}
		return tx.linkCompany(userID, rec.ID)
	})
	if err != nil {
		return err
	}

	company.CreatedAt, company.UpdatedAt = rec.CreatedAt, rec.UpdatedAt
	return nil
}

func (r *Repository) linkCompany(userID, companyID uuid.UUID) error {
	result := r.db.Model(&records.User{}).
		Where("id = ? AND company_id IS NULL", userID).
		Update("company_id", companyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrConflict
	}
	return nil
}

func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company records.Company
	result := r.db.WithContext(ctx).First(&company, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return toCompany(&company), nil
}

// UpdateCompany writes the supplied fields of update. An empty update is a
// no-op.
func (r *Repository) UpdateCompany(ctx context.Context, id uuid.UUID, update *models.CompanyUpdate) error {
	var rec records.Company
	var columns []string
	if update.Name != nil {
		rec.Name = *update.Name
		columns = append(columns, "name")
	}
	if update.Description != nil {
		rec.Description = *update.Description
		columns = append(columns, "description")
	}
	if update.Location != nil {
		rec.Location = *update.Location
		columns = append(columns, "location")
	}
	if update.Website != nil {
		rec.Website = *update.Website
		columns = append(columns, "website")
	}
	if update.LogoURL != nil {
		rec.LogoURL = update.LogoURL
		columns = append(columns, "logo_url")
	}
	if update.Mission != nil {
		rec.Mission = update.Mission
		columns = append(columns, "mission")
	}
	if update.SocialLinks != nil {
		rec.SocialLinks = *update.SocialLinks
		columns = append(columns, "social_links")
	}
	if len(columns) == 0 {
		return nil
	}
	rec.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	result := r.db.WithContext(ctx).Model(&records.Company{}).
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

func (r *Repository) SetCompanyActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).Model(&records.Company{}).
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
