package product

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

func TestApplyUpdateTrimsAndCopies(t *testing.T) {
	product := &models.Product{
		Name: "old name",
		Slug: "old-slug",
	}

	input := UpdateInput{
		Name:      stringPtr("  New Name "),
		Slug:      stringPtr(" new-slug  "),
		IsActive:  boolPtr(false),
		BasePrice: decimalPtr("19.99"),
	}
	applyUpdate(product, input)

	if product.Name != "New Name" {
		t.Fatalf("expected trimmed name, got %q", product.Name)
	}
	if product.Slug != "new-slug" {
		t.Fatalf("expected trimmed slug, got %q", product.Slug)
	}
	if product.IsActive {
		t.Fatalf("expected is_active false")
	}
	if !product.BasePrice.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("expected price 19.99, got %s", product.BasePrice)
	}
}

func TestApplyUpdateLeavesNilFieldsAlone(t *testing.T) {
	categoryID := int64(7)
	product := &models.Product{
		Name:       "name",
		Slug:       "slug",
		IsActive:   true,
		CategoryID: &categoryID,
		BasePrice:  decimal.RequireFromString("10.00"),
	}

	applyUpdate(product, UpdateInput{})

	if product.Name != "name" || product.Slug != "slug" || !product.IsActive {
		t.Fatalf("unexpected mutation: %+v", product)
	}
	if product.CategoryID == nil || *product.CategoryID != 7 {
		t.Fatalf("category should be untouched")
	}
}

func TestBuildVariantRowsTrimsSKU(t *testing.T) {
	rows := buildVariantRows(3, []VariantInput{
		{SKU: "  SKU-1 ", Size: "M", Color: "red", StockQuantity: 5},
	})

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ProductID != 3 {
		t.Fatalf("expected product id set, got %d", rows[0].ProductID)
	}
	if rows[0].SKU != "SKU-1" {
		t.Fatalf("expected trimmed sku, got %q", rows[0].SKU)
	}
}

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }
func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
