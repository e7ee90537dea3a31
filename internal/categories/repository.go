package category

import (
	"context"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// Repository provides category persistence on the adjacency list.
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

// ListRoots returns root categories with their immediate children attached
// through an explicit second query.
func (r *Repository) ListRoots(ctx context.Context, offset, limit int) ([]models.Category, error) {
	var roots []models.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&roots).
		Error; err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return roots, nil
	}

	ids := make([]int64, 0, len(roots))
	for _, root := range roots {
		ids = append(ids, root.ID)
	}
	var children []models.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id IN ?", ids).
		Order("id ASC").
		Find(&children).
		Error; err != nil {
		return nil, err
	}

	byParent := make(map[int64][]models.Category, len(roots))
	for _, child := range children {
		byParent[*child.ParentID] = append(byParent[*child.ParentID], child)
	}
	for i := range roots {
		roots[i].Children = byParent[roots[i].ID]
	}
	return roots, nil
}

// FindByID loads a category without children.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindWithChildren loads a category and its immediate children.
func (r *Repository) FindWithChildren(ctx context.Context, id int64) (*models.Category, error) {
	category, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var children []models.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", id).
		Order("id ASC").
		Find(&children).
		Error; err != nil {
		return nil, err
	}
	category.Children = children
	return category, nil
}

// Create inserts a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Save updates an existing category row.
func (r *Repository) Save(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category by id. Children are re-rooted by the FK's
// ON DELETE SET NULL.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// Count returns the total number of categories.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}
