package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// Repository provides site-setting persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns all settings, optionally filtered by category.
func (r *Repository) List(ctx context.Context, category string) ([]models.SiteSetting, error) {
	qb := r.db.WithContext(ctx).Order("key ASC")
	if category != "" {
		qb = qb.Where("category = ?", category)
	}
	var rows []models.SiteSetting
	err := qb.Find(&rows).Error
	return rows, err
}

// FindByKey loads a setting by its unique key.
func (r *Repository) FindByKey(ctx context.Context, key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// FindByKeys loads the settings whose keys are in the provided set.
func (r *Repository) FindByKeys(ctx context.Context, keys []string) ([]models.SiteSetting, error) {
	var rows []models.SiteSetting
	err := r.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error
	return rows, err
}

// Create inserts a new setting row.
func (r *Repository) Create(ctx context.Context, setting *models.SiteSetting) (*models.SiteSetting, error) {
	if err := r.db.WithContext(ctx).Create(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}

// Save updates an existing setting row.
func (r *Repository) Save(ctx context.Context, setting *models.SiteSetting) (*models.SiteSetting, error) {
	if err := r.db.WithContext(ctx).Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
