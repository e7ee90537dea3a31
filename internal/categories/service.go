package category

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db"
	"github.com/marivelle/catalog-backend/pkg/db/models"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
)

const defaultListLimit = 100

// Service exposes category tree operations.
type Service interface {
	ListRoots(ctx context.Context, skip, limit int) ([]CategoryDTO, error)
	Get(ctx context.Context, id int64) (*CategoryDTO, error)
	Create(ctx context.Context, input CreateInput) (*CategoryDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*CategoryDTO, error)
	Delete(ctx context.Context, id int64) error
	SetImage(ctx context.Context, id int64, imageURL string) (*CategoryDTO, error)
}

// CreateInput holds the validated payload to create a category.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
	ImageURL    *string
	IsActive    bool
	ParentID    *int64
}

// UpdateInput holds optional mutation values. Parent existence is not
// revalidated here, matching the create/update asymmetry callers rely on.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	IsActive    *bool
	ParentID    *int64
}

type service struct {
	repo *Repository
}

// NewService constructs a category service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("category repository required")
	}
	return &service{repo: repo}, nil
}

// ListRoots returns root categories with one level of children.
func (s *service) ListRoots(ctx context.Context, skip, limit int) ([]CategoryDTO, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}
	roots, err := s.repo.ListRoots(ctx, skip, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	out := make([]CategoryDTO, 0, len(roots))
	for i := range roots {
		out = append(out, *NewCategoryDTO(&roots[i]))
	}
	return out, nil
}

// Get loads one category with its immediate children.
func (s *service) Get(ctx context.Context, id int64) (*CategoryDTO, error) {
	category, err := s.repo.FindWithChildren(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return NewCategoryDTO(category), nil
}

// Create validates the parent reference and inserts the category. A missing
// parent or duplicate slug rejects with a validation error and persists
// nothing.
func (s *service) Create(ctx context.Context, input CreateInput) (*CategoryDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	if input.ParentID != nil && *input.ParentID != 0 {
		if _, err := s.repo.FindByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent category does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load parent category")
		}
	}

	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
		ParentID:    input.ParentID,
	}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return NewCategoryDTO(created), nil
}

// Update mutates non-nil fields; the parent reference is applied as given.
func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}

	applyUpdate(category, input)
	saved, err := s.repo.Save(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return NewCategoryDTO(saved), nil
}

// Delete removes the category by id.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	return nil
}

// SetImage stores the uploaded image URL on the category.
func (s *service) SetImage(ctx context.Context, id int64, imageURL string) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	category.ImageURL = &imageURL
	saved, err := s.repo.Save(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category image")
	}
	return NewCategoryDTO(saved), nil
}

func applyUpdate(category *models.Category, input UpdateInput) {
	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		category.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.ParentID != nil {
		category.ParentID = input.ParentID
	}
}
