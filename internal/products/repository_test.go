package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marivelle/catalog-backend/pkg/db/models"
	"github.com/marivelle/catalog-backend/pkg/pagination"
)

func TestRepositoryListPriceSortAndPaging(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	catA := mustCreateTestCategory(t, tx, "Cat A")
	catB := mustCreateTestCategory(t, tx, "Cat B")

	mustCreateTestProduct(t, tx, catA.ID, "10.00")
	mustCreateTestProduct(t, tx, catA.ID, "50.00")
	mustCreateTestProduct(t, tx, catB.ID, "30.00")
	mustCreateTestProduct(t, tx, catB.ID, "20.00")

	page1 := 1
	size := 2
	input := ListInput{
		Filters:    ListFilters{CategoryIDs: []int64{catA.ID, catB.ID}},
		SortBy:     SortPriceHigh,
		Pagination: pagination.Params{Page: &page1, PageSize: &size},
	}

	rows, total, norm, err := repo.List(ctx, input)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected total 4, got %d", total)
	}
	if pagination.Pages(total, norm.Size) != 2 {
		t.Fatalf("expected 2 pages")
	}
	assertPrices(t, rows, "50", "30")

	page2 := 2
	input.Pagination = pagination.Params{Page: &page2, PageSize: &size}
	rows, _, _, err = repo.List(ctx, input)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	assertPrices(t, rows, "20", "10")
}

func TestRepositoryListVariantJoinIsDistinct(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	cat := mustCreateTestCategory(t, tx, "Join Cat")
	prod := mustCreateTestProduct(t, tx, cat.ID, "15.00")
	mustCreateTestVariant(t, tx, prod.ID, "M", "Dark Red")
	mustCreateTestVariant(t, tx, prod.ID, "L", "Red")

	input := ListInput{
		Filters: ListFilters{
			CategoryIDs: []int64{cat.ID},
			Color:       "red",
		},
	}
	rows, total, _, err := repo.List(ctx, input)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected distinct count 1, got %d", total)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row despite two matching variants, got %d", len(rows))
	}
}

func TestRepositorySetPrimaryImageClearsThenSets(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	cat := mustCreateTestCategory(t, tx, "Img Cat")
	prod := mustCreateTestProduct(t, tx, cat.ID, "5.00")

	images := []models.ProductImage{
		{ProductID: prod.ID, ImageURL: "/uploads/a.jpg", IsPrimary: true},
		{ProductID: prod.ID, ImageURL: "/uploads/b.jpg"},
	}
	if err := repo.CreateImages(ctx, images); err != nil {
		t.Fatalf("create images: %v", err)
	}

	if err := repo.SetPrimaryImage(ctx, prod.ID, images[1].ID); err != nil {
		t.Fatalf("set primary: %v", err)
	}

	var primaries []models.ProductImage
	if err := tx.Where("product_id = ? AND is_primary", prod.ID).Find(&primaries).Error; err != nil {
		t.Fatalf("load primaries: %v", err)
	}
	if len(primaries) != 1 || primaries[0].ID != images[1].ID {
		t.Fatalf("expected exactly image %d primary, got %+v", images[1].ID, primaries)
	}
}

func assertPrices(t *testing.T, rows []models.Product, want ...string) {
	t.Helper()
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if !rows[i].BasePrice.Equal(decimal.RequireFromString(w)) {
			t.Fatalf("row %d: expected price %s, got %s", i, w, rows[i].BasePrice)
		}
	}
}
