package product

import (
	"context"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db/models"
	"github.com/marivelle/catalog-backend/pkg/pagination"
)

// Repository wires together product persistence helpers.
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

// FindByID loads a product with its variants and gallery.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBare loads the product row without associations.
func (r *Repository) FindBare(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save updates an existing product row.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by id; variants and images cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ReplaceVariants replaces all variants for the product.
func (r *Repository) ReplaceVariants(ctx context.Context, productID int64, variants []models.ProductVariant) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}
	if len(variants) == 0 {
		return nil
	}
	return tx.Create(&variants).Error
}

// CreateImages appends gallery rows.
func (r *Repository) CreateImages(ctx context.Context, images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// DeleteImages removes gallery rows by id.
func (r *Repository) DeleteImages(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.ProductImage{}).Error
}

// SetPrimaryImage clears every primary flag for the product, then sets the
// chosen row. Zero id means clear only.
func (r *Repository) SetPrimaryImage(ctx context.Context, productID, imageID int64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Model(&models.ProductImage{}).
		Where("product_id = ?", productID).
		Update("is_primary", false).
		Error; err != nil {
		return err
	}
	if imageID == 0 {
		return nil
	}
	return tx.Model(&models.ProductImage{}).
		Where("id = ? AND product_id = ?", imageID, productID).
		Update("is_primary", true).
		Error
}

// List translates the filter knobs into one filtered/sorted/paginated query.
// Count runs post-filter, pre-pagination.
func (r *Repository) List(ctx context.Context, input ListInput) ([]models.Product, int64, pagination.Normalized, error) {
	page := pagination.Normalize(input.Pagination)
	filters := input.Filters

	joined := filters.Color != "" || filters.Size != ""

	base := func() *gorm.DB {
		qb := r.db.WithContext(ctx).Model(&models.Product{})
		if len(filters.CategoryIDs) > 0 {
			qb = qb.Where("products.category_id IN ?", filters.CategoryIDs)
		} else if filters.CategoryID != nil {
			qb = qb.Where("products.category_id = ?", *filters.CategoryID)
		}
		if filters.Search != "" {
			qb = qb.Where("products.name ILIKE ?", "%"+filters.Search+"%")
		}
		if filters.MinPrice != nil {
			qb = qb.Where("products.base_price >= ?", *filters.MinPrice)
		}
		if filters.MaxPrice != nil {
			qb = qb.Where("products.base_price <= ?", *filters.MaxPrice)
		}
		if joined {
			qb = qb.Joins("JOIN product_variants pv ON pv.product_id = products.id")
			if filters.Color != "" {
				qb = qb.Where("pv.color ILIKE ?", "%"+filters.Color+"%")
			}
			if filters.Size != "" {
				qb = qb.Where("pv.size ILIKE ?", "%"+filters.Size+"%")
			}
		}
		return qb
	}

	var total int64
	countQ := base()
	if joined {
		countQ = countQ.Distinct("products.id")
	}
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, page, err
	}

	itemsQ := base()
	if joined {
		itemsQ = itemsQ.Distinct("products.*")
	}
	var rows []models.Product
	err := itemsQ.
		Order(orderClause(NormalizeSort(input.SortBy))).
		Offset(page.Offset()).
		Limit(page.Size).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, page, err
	}
	return rows, total, page, nil
}

// Trending returns the newest active products.
func (r *Repository) Trending(ctx context.Context, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Find(&rows).
		Error
	return rows, err
}

// Count returns the total number of products.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}
