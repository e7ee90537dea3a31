package wishlist

import (
	"context"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// Repository provides wishlist persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns the user's wishlist entries in insertion order, with
// the product and its images preloaded.
func (r *Repository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]models.Wishlist, error) {
	var rows []models.Wishlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.id ASC")
		}).
		Preload("Product").
		Find(&rows).Error
	return rows, err
}

// FindEntry loads the wishlist row for a user/product pair.
func (r *Repository) FindEntry(ctx context.Context, userID, productID int64) (*models.Wishlist, error) {
	var entry models.Wishlist
	err := r.db.WithContext(ctx).
		First(&entry, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a wishlist row.
func (r *Repository) Create(ctx context.Context, entry *models.Wishlist) (*models.Wishlist, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes the user/product pair and reports whether a row was
// actually deleted.
func (r *Repository) DeleteEntry(ctx context.Context, userID, productID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
