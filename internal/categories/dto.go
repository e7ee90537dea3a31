package category

import (
	"time"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// CategoryDTO is the payload returned to clients. Children carry the
// immediate level only; deeper nesting requires a re-query.
type CategoryDTO struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	ImageURL    *string       `json:"image_url,omitempty"`
	IsActive    bool          `json:"is_active"`
	ParentID    *int64        `json:"parent_id,omitempty"`
	Children    []CategoryDTO `json:"children"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewCategoryDTO maps the model with one level of children.
func NewCategoryDTO(category *models.Category) *CategoryDTO {
	children := make([]CategoryDTO, 0, len(category.Children))
	for i := range category.Children {
		child := category.Children[i]
		child.Children = nil
		children = append(children, *NewCategoryDTO(&child))
	}
	return &CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		IsActive:    category.IsActive,
		ParentID:    category.ParentID,
		Children:    children,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
