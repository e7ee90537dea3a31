package product

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

func mustCreateTestCategory(t *testing.T, tx *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{
		Name:     name,
		Slug:     fmt.Sprintf("cat-%s", uuid.NewString()),
		IsActive: true,
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, categoryID int64, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       "Test Product",
		Slug:       fmt.Sprintf("prod-%s", uuid.NewString()),
		BasePrice:  decimal.RequireFromString(price),
		IsActive:   true,
		CategoryID: &categoryID,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateTestVariant(t *testing.T, tx *gorm.DB, productID int64, size, color string) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID:     productID,
		SKU:           fmt.Sprintf("SKU-%s", uuid.NewString()),
		Size:          size,
		Color:         color,
		StockQuantity: 10,
	}
	if err := tx.Create(variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}
	return variant
}
