package showroom

import (
	"context"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// Repository provides showroom persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns showrooms, optionally active-only.
func (r *Repository) List(ctx context.Context, activeOnly bool, offset, limit int) ([]models.Showroom, error) {
	qb := r.db.WithContext(ctx).Order("id ASC")
	if activeOnly {
		qb = qb.Where("is_active = ?", true)
	}
	var rows []models.Showroom
	err := qb.Offset(offset).Limit(limit).Find(&rows).Error
	return rows, err
}

// FindByID loads a showroom by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Showroom, error) {
	var showroom models.Showroom
	if err := r.db.WithContext(ctx).First(&showroom, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &showroom, nil
}

// Create inserts a new showroom row.
func (r *Repository) Create(ctx context.Context, showroom *models.Showroom) (*models.Showroom, error) {
	if err := r.db.WithContext(ctx).Create(showroom).Error; err != nil {
		return nil, err
	}
	return showroom, nil
}

// Save updates an existing showroom row.
func (r *Repository) Save(ctx context.Context, showroom *models.Showroom) (*models.Showroom, error) {
	if err := r.db.WithContext(ctx).Save(showroom).Error; err != nil {
		return nil, err
	}
	return showroom, nil
}

// Delete removes a showroom by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Showroom{}).Error
}
