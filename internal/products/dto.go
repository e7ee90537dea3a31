package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// ProductDTO represents the catalog product payload returned to clients.
type ProductDTO struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	BasePrice   decimal.Decimal   `json:"base_price"`
	IsActive    bool              `json:"is_active"`
	CategoryID  *int64            `json:"category_id,omitempty"`
	Variants    []VariantDTO      `json:"variants"`
	Images      []ProductImageDTO `json:"images"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// VariantDTO exposes one purchasable combination.
type VariantDTO struct {
	ID            int64            `json:"id"`
	SKU           string           `json:"sku"`
	Size          string           `json:"size,omitempty"`
	Color         string           `json:"color,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

// ProductImageDTO captures one gallery entry.
type ProductImageDTO struct {
	ID        int64  `json:"id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
}

// ListResult is the page envelope for the browse endpoint.
type ListResult struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
	Pages int          `json:"pages"`
}

// NewProductDTO maps the model, ordering images primary-first.
func NewProductDTO(product *models.Product) *ProductDTO {
	SortImagesPrimaryFirst(product.Images)

	variants := make([]VariantDTO, 0, len(product.Variants))
	for _, v := range product.Variants {
		variants = append(variants, VariantDTO{
			ID:            v.ID,
			SKU:           v.SKU,
			Size:          v.Size,
			Color:         v.Color,
			StockQuantity: v.StockQuantity,
			PriceOverride: v.PriceOverride,
		})
	}

	images := make([]ProductImageDTO, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, ProductImageDTO{
			ID:        img.ID,
			ImageURL:  img.ImageURL,
			IsPrimary: img.IsPrimary,
		})
	}

	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		IsActive:    product.IsActive,
		CategoryID:  product.CategoryID,
		Variants:    variants,
		Images:      images,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
